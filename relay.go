// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package turn

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
	"code.hybscloud.com/lfq"
)

// relayCapacity is the bounded capacity for relay transport queues.
// 4 balances amortizing producer-side cached-index refresh cost while
// keeping ring buffers within a single cache line.
const relayCapacity = 4

// Relay drives a session from another goroutine without locks.
// Bounded lock-free SPSC queues carry Either[E, R] outward (events
// while suspended, one outcome to terminate the stream) and inputs
// inward. Delivery preserves emit order end to end.
//
// Exactly one goroutine may own the session side (Pump, Serve) and
// exactly one the driver side (Poll, Offer); Hangup is safe from any
// goroutine.
type Relay[E, I, R any] struct {
	s        *Session[E, I, R]
	outQ     lfq.SPSC[kont.Either[E, R]]
	inQ      lfq.SPSC[I]
	outSlot  kont.Either[E, R]
	inSlot   I
	stop     atomix.Uint32
	emitted  bool
	finished bool
}

// NewRelay creates a relay around s. The relay's serving side owns the
// session from here on: the driver interacts only through Poll and
// Offer.
func NewRelay[E, I, R any](s *Session[E, I, R]) *Relay[E, I, R] {
	r := &Relay[E, I, R]{s: s}
	r.outQ.Init(relayCapacity)
	r.inQ.Init(relayCapacity)
	return r
}

// Serial returns the serial number of the relayed session.
func (r *Relay[E, I, R]) Serial() Serial {
	return r.s.Serial()
}

// Pump makes one step of progress on the session side, non-blocking:
// it publishes the pending event or the outcome, or absorbs one input
// and resumes the routine. Returns true once the outcome has been
// published. Returns iox.ErrWouldBlock when the bounded queue cannot
// make progress.
func (r *Relay[E, I, R]) Pump() (bool, error) {
	if r.finished {
		return true, nil
	}
	if !r.emitted {
		r.outSlot = r.s.Current()
		if err := r.outQ.Enqueue(&r.outSlot); err != nil {
			return false, err
		}
		r.emitted = true
		if r.outSlot.IsRight() {
			r.finished = true
			return true, nil
		}
		return false, nil
	}
	input, err := r.inQ.Dequeue()
	if err != nil {
		return false, err
	}
	if _, err := r.s.Resume(input); err != nil {
		return false, err
	}
	r.emitted = false
	return false, nil
}

// Serve pumps the session until the outcome has been published,
// waiting past iox.ErrWouldBlock boundaries with adaptive backoff
// (iox.Backoff). Returns nil on completion, ErrHangup after Hangup,
// or the session's protocol error. Serve does not close the session;
// the serving side does that after Serve returns.
func (r *Relay[E, I, R]) Serve() error {
	var bo iox.Backoff
	for {
		if r.stop.Add(0) != 0 {
			return ErrHangup
		}
		done, err := r.Pump()
		if err != nil {
			if !iox.IsWouldBlock(err) {
				return err
			}
			bo.Wait()
			continue
		}
		if done {
			return nil
		}
		bo.Reset()
	}
}

// Hangup asks the serving side to stop. Safe to call from any
// goroutine; Serve returns ErrHangup at its next iteration.
func (r *Relay[E, I, R]) Hangup() {
	r.stop.Add(1)
}

// Poll takes the next value from the session: Left(event) while the
// routine keeps playing, Right(outcome) as the final element.
// Non-blocking: returns iox.ErrWouldBlock while the session side has
// not published.
func (r *Relay[E, I, R]) Poll() (kont.Either[E, R], error) {
	return r.outQ.Dequeue()
}

// Offer passes an input to the session in response to the most recent
// polled event. Non-blocking: returns iox.ErrWouldBlock when the
// bounded queue is full.
func (r *Relay[E, I, R]) Offer(input I) error {
	r.inSlot = input
	return r.inQ.Enqueue(&r.inSlot)
}
