// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package turn

import (
	"errors"

	"code.hybscloud.com/kont"
)

// Protocol errors reported by driver-side operations. Routine-side
// failures are not errors at this layer: a routine that cannot
// continue encodes the failure in its outcome type.
var (
	// ErrCompleted is returned by Resume after the session has produced
	// its outcome.
	ErrCompleted = errors.New("turn: session already completed")

	// ErrNotSuspended is returned by Resume when no event is pending:
	// the session was closed, or the call is reentrant from inside the
	// routine or an event hook.
	ErrNotSuspended = errors.New("turn: session not suspended")

	// ErrAlreadyStarted is returned by Start when the host has already
	// opened its session.
	ErrAlreadyStarted = errors.New("turn: host already started")

	// ErrInUse is returned by Start while the hosted state is borrowed.
	ErrInUse = errors.New("turn: host state in use")

	// ErrHangup is returned by Relay.Serve after Hangup.
	ErrHangup = errors.New("turn: relay hangup")
)

// OpenError creates an error-aware session: the routine may use
// kont.ThrowError and kont.CatchError in addition to the session
// effects, and the outcome becomes Either — Right on normal return,
// Left on an uncaught throw. An uncaught throw completes the session
// immediately: the remaining routine is discarded and cleanups
// registered through Hold run in reverse order, as on Close.
//
// Catch bodies and handlers must be pure error effects: emitting from
// inside a CatchError body is not supported.
func OpenError[Err, E, I, R any](play func() kont.Eff[R]) *Session[E, I, kont.Either[Err, R]] {
	return OpenErrorExpr[Err, E, I](func() kont.Expr[R] { return kont.Reify(play()) })
}

// OpenErrorExpr is the Expr-world variant of OpenError.
func OpenErrorExpr[Err, E, I, R any](play func() kont.Expr[R]) *Session[E, I, kont.Either[Err, R]] {
	var errCtx kont.ErrorContext[Err]
	throw := func(susp *kont.Suspension[kont.Either[Err, R]]) (kont.Either[Err, R], *kont.Suspension[kont.Either[Err, R]], bool) {
		eop, ok := susp.Op().(interface {
			DispatchError(ctx *kont.ErrorContext[Err]) (kont.Resumed, bool)
		})
		if !ok {
			var zero kont.Either[Err, R]
			return zero, susp, false
		}
		v, _ := eop.DispatchError(&errCtx)
		if errCtx.HasErr {
			susp.Discard()
			return kont.Left[Err, R](errCtx.Err), nil, true
		}
		r, next := susp.Resume(v)
		return r, next, true
	}
	return openExpr[E, I](func() kont.Expr[kont.Either[Err, R]] {
		return kont.ExprMap(play(), func(r R) kont.Either[Err, R] {
			return kont.Right[Err, R](r)
		})
	}, nil, throw)
}
