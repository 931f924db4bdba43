// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package turn

import (
	"code.hybscloud.com/kont"
)

// State is the lifecycle state of a session.
type State uint32

const (
	// StateRunning means the routine is executing on the driver's call
	// stack. Observable only from inside the routine or an event hook.
	StateRunning State = iota
	// StateSuspended means an event is pending and the session is
	// waiting for Resume.
	StateSuspended
	// StateDone means the routine has returned its outcome.
	StateDone
	// StateClosed means the session was cancelled by Close before
	// completing.
	StateClosed
)

// scope is the cleanup ledger for one session. Releases registered by
// Hold run on the matching Release, or at Close for the still-held
// tail. Order is last-in first-out.
type scope struct {
	releases []func()
}

func (sc *scope) hold(release func()) {
	sc.releases = append(sc.releases, release)
}

func (sc *scope) drop() {
	n := len(sc.releases) - 1
	if n < 0 {
		panic("turn: release without matching hold")
	}
	release := sc.releases[n]
	sc.releases[n] = nil
	sc.releases = sc.releases[:n]
	release()
}

func (sc *scope) unwind() {
	for len(sc.releases) > 0 {
		sc.drop()
	}
}

// scopeDispatcher is the structural interface for cleanup-scope
// operations. Dispatch never blocks: the resumed value is produced
// inline on the session's goroutine.
type scopeDispatcher interface {
	DispatchScope(sc *scope) kont.Resumed
}

// Session hosts one run of a routine: suspendable game logic that
// yields events of type E and resumes on inputs of type I until it
// produces an outcome of type R.
//
// A session is strictly single-threaded. The driver and the routine
// alternate on one call stack: Resume hands control to the routine,
// the next Emit hands it back. Use a Relay to drive a session from
// another goroutine.
type Session[E, I, R any] struct {
	serial  Serial
	state   State
	pending E
	result  R
	susp    *kont.Suspension[R]
	sc      scope
	hook    func(E)
	// throw dispatches error effects for sessions opened with OpenError;
	// nil otherwise.
	throw func(*kont.Suspension[R]) (R, *kont.Suspension[R], bool)
}

// Open creates a session and runs play's routine until its first event
// or completion. play is invoked once and must build a fresh routine
// value: effect computations are single-use.
func Open[E, I, R any](play func() kont.Eff[R]) *Session[E, I, R] {
	return openExpr[E, I](func() kont.Expr[R] { return kont.Reify(play()) }, nil, nil)
}

// OpenExpr creates a session from an Expr-world routine factory and
// runs it until its first event or completion.
func OpenExpr[E, I, R any](play func() kont.Expr[R]) *Session[E, I, R] {
	return openExpr[E, I](play, nil, nil)
}

func openExpr[E, I, R any](play func() kont.Expr[R], hook func(E), throw func(*kont.Suspension[R]) (R, *kont.Suspension[R], bool)) *Session[E, I, R] {
	s := &Session[E, I, R]{serial: nextSerial(), state: StateRunning, hook: hook, throw: throw}
	s.settle(kont.StepExpr(play()))
	return s
}

// settle drives the routine from one handoff point to the next:
// cleanup-scope operations are dispatched inline, an Emit parks the
// routine with its event pending, and completion records the outcome
// and unwinds any scopes still held. Dispatch order: Emit → Scope →
// Error (error-aware sessions only).
func (s *Session[E, I, R]) settle(result R, susp *kont.Suspension[R]) {
	for susp != nil {
		op := susp.Op()
		if e, ok := op.(Emit[E, I]); ok {
			s.pending = e.Event
			if s.hook != nil {
				s.hook(e.Event)
			}
			s.susp = susp
			s.state = StateSuspended
			return
		}
		if sop, ok := op.(scopeDispatcher); ok {
			result, susp = susp.Resume(sop.DispatchScope(&s.sc))
			continue
		}
		if s.throw != nil {
			if r, next, ok := s.throw(susp); ok {
				result, susp = r, next
				continue
			}
		}
		panic("turn: unhandled effect in Session")
	}
	s.result = result
	s.state = StateDone
	s.sc.unwind()
}

// Current reports the pending event while the session is suspended, or
// the outcome once it has completed. Polling does not consume the
// event: Current answers the same value until the next Resume, and the
// outcome of a completed session stays observable forever. After Close
// of an uncompleted session the returned Either holds zero values;
// check State to distinguish.
func (s *Session[E, I, R]) Current() kont.Either[E, R] {
	if s.state == StateDone {
		return kont.Right[E, R](s.result)
	}
	return kont.Left[E, R](s.pending)
}

// Resume delivers the input the pending event asked for, runs the
// routine to its next event or to completion, and returns the new
// Current value.
//
// Returns ErrCompleted once the outcome has been produced, and
// ErrNotSuspended when no event is pending: the session is closed, or
// Resume was called reentrantly from inside the routine or an event
// hook. The input is consumed even when the routine completes without
// emitting again.
func (s *Session[E, I, R]) Resume(input I) (kont.Either[E, R], error) {
	switch s.state {
	case StateSuspended:
	case StateDone:
		var zero kont.Either[E, R]
		return zero, ErrCompleted
	default:
		var zero kont.Either[E, R]
		return zero, ErrNotSuspended
	}
	susp := s.susp
	s.susp = nil
	var zeroE E
	s.pending = zeroE
	s.state = StateRunning
	s.settle(susp.Resume(input))
	return s.Current(), nil
}

// Close cancels the session: the parked routine is discarded without
// further execution and cleanups registered through Hold run in
// reverse registration order, exactly once. Close is idempotent and a
// no-op after completion; the outcome stays observable. Close is
// driver-side API: calling it from inside the routine panics.
func (s *Session[E, I, R]) Close() {
	switch s.state {
	case StateRunning:
		panic("turn: session closed from within routine")
	case StateSuspended:
		susp := s.susp
		s.susp = nil
		var zero E
		s.pending = zero
		s.state = StateClosed
		susp.Discard()
		s.sc.unwind()
	}
}

// Done reports whether the routine has produced its outcome.
func (s *Session[E, I, R]) Done() bool {
	return s.state == StateDone
}

// State returns the session lifecycle state.
func (s *Session[E, I, R]) State() State {
	return s.state
}

// Serial returns the serial number assigned to this session.
func (s *Session[E, I, R]) Serial() Serial {
	return s.serial
}
