// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package turn

// Drive runs a session to completion, answering every pending event
// with next. Returns the outcome, or the protocol error if the session
// stops accepting inputs before completing.
func Drive[E, I, R any](s *Session[E, I, R], next func(E) I) (R, error) {
	for {
		cur := s.Current()
		if r, ok := cur.GetRight(); ok {
			return r, nil
		}
		ev, _ := cur.GetLeft()
		if _, err := s.Resume(next(ev)); err != nil {
			var zero R
			return zero, err
		}
	}
}
