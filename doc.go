// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package turn provides suspendable turn-based game sessions via algebraic effects
// on [code.hybscloud.com/kont].
//
// Game rules are written as one linear routine that yields events and receives
// inputs at each suspension point; a [Session] alternates control between the
// routine and its driver.
//
// # Architecture
//
//   - Handoff: [Open] runs a routine to its first [Emit] or to completion; [Session.Resume] delivers one input and runs to the next. Exactly one side executes at a time; no goroutines, no channels.
//   - Events: At most one event is pending per session, delivered exactly once and in emit order. [Session.Current] polls without consuming.
//   - Cleanup: [Hold] and [Release] register cancellation-safe cleanups; [Session.Close] discards the parked routine and unwinds held scopes last-in first-out.
//   - Transport: [Relay] drives a session from another goroutine over bounded lock-free SPSC queues via [code.hybscloud.com/lfq]; operations return [code.hybscloud.com/iox.ErrWouldBlock] on backpressure.
//
// # API Topologies
//
//   - Operations: [Emit], [Hold], [Release].
//   - Cont-world: [EmitBind], [EmitThen], [Scoped].
//   - Expr-world: Zero-allocation variants [ExprEmitBind], [ExprEmitThen], [ExprScoped]. Bridge via [Reify] and [Reflect].
//   - Recursive: [Loop] and [ExprLoop] for trampoline-based turn loops.
//
// # Integration
//
//   - Polling: [Session.Current] and [Session.Resume] advance one handoff at a time, making sessions easy to embed in event-loop drivers.
//   - Blocking: [Drive] answers every event with a callback until the outcome; [Relay.Serve] pumps with adaptive backoff.
//   - Shared state: [Host] owns game state beside the session, with borrow-checked access and an event hook wired at [Start].
//
// # Example
//
//	s := turn.Open[string, int](func() kont.Eff[int] {
//		return turn.EmitBind("pick a number", func(n int) kont.Eff[int] {
//			return kont.Pure(n * 2)
//		})
//	})
//	result, _ := s.Resume(21)
//	// result holds Right(42)
package turn
