// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package turn

import (
	"code.hybscloud.com/kont"
)

// Host owns shared game state beside a session. The routine reads and
// writes the state through the host between suspension points; the
// driver renders from it between resumes. Access is borrow-checked:
// the state is handed out to one caller at a time, and reentrant
// access panics, since a routine and a driver callback touching the
// state simultaneously is a logic bug rather than a recoverable
// condition.
type Host[G any] struct {
	state   G
	started bool
	busy    bool
}

// NewHost creates a host owning state.
func NewHost[G any](state G) *Host[G] {
	return &Host[G]{state: state}
}

// View calls f with read access to the hosted state.
// Panics if the state is already in use.
func (h *Host[G]) View(f func(*G)) {
	h.with(f)
}

// Update calls f with write access to the hosted state.
// Panics if the state is already in use.
func (h *Host[G]) Update(f func(*G)) {
	h.with(f)
}

func (h *Host[G]) with(f func(*G)) {
	if h.busy {
		panic("turn: host state in use")
	}
	h.busy = true
	defer func() { h.busy = false }()
	f(&h.state)
}

// Snapshot returns a copy of the hosted state, for rendering between
// turns. Panics if the state is in use.
func (h *Host[G]) Snapshot() G {
	if h.busy {
		panic("turn: host state in use")
	}
	return h.state
}

// Start opens the host's session: play receives the host for state
// access during the routine's run. A host runs at most one session;
// a second Start fails with ErrAlreadyStarted, and starting while the
// state is borrowed fails with ErrInUse.
//
// If *G implements HandleEvent(E), every emitted event is offered to
// the hosted state before the driver observes it. Resuming the session
// from inside the hook fails with ErrNotSuspended.
func Start[E, I, R, G any](h *Host[G], play func(*Host[G]) kont.Eff[R]) (*Session[E, I, R], error) {
	if h.started {
		return nil, ErrAlreadyStarted
	}
	if h.busy {
		return nil, ErrInUse
	}
	h.started = true
	var hook func(E)
	if sink, ok := any(&h.state).(interface{ HandleEvent(E) }); ok {
		hook = sink.HandleEvent
	}
	return openExpr[E, I](func() kont.Expr[R] { return kont.Reify(play(h)) }, hook, nil), nil
}
