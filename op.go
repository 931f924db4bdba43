// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package turn

import (
	"code.hybscloud.com/kont"
)

// Emit is the effect operation for yielding an event of type E.
// Perform(Emit[E, I]{Event: ev}) parks the routine with the event
// pending until the driver resumes the session with an input of type I.
//
// Emit has no dispatch method: the session handles it directly at the
// handoff boundary. A session delivers events of exactly one type;
// performing an Emit whose type parameters differ from the session's
// is an unhandled effect.
type Emit[E, I any] struct {
	kont.Phantom[I]
	Event E
}

// Hold is the effect operation for acquiring a resource with a cleanup.
// Acquire returns the resource and its release; the resource becomes
// the resumed value. The release is recorded on the session's cleanup
// ledger and runs on the matching Release, or during Close while still
// held.
type Hold[T any] struct {
	kont.Phantom[T]
	Acquire func() (T, func())
}

// DispatchScope handles Hold on the session's cleanup ledger.
// Never blocks: Acquire runs inline on the session's goroutine.
func (h Hold[T]) DispatchScope(sc *scope) kont.Resumed {
	v, release := h.Acquire()
	sc.hold(release)
	return v
}

// Release is the effect operation for releasing the most recently held
// resource. Perform(Release{}) runs that cleanup immediately.
// Panics if nothing is held.
type Release struct {
	kont.Phantom[struct{}]
}

// DispatchScope handles Release on the session's cleanup ledger.
// Never blocks.
func (Release) DispatchScope(sc *scope) kont.Resumed {
	sc.drop()
	return struct{}{}
}
