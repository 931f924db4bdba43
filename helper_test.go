// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package turn_test

import (
	"code.hybscloud.com/turn"
)

// script answers each event with the next scripted input.
// Panics when the script runs out, which fails the test loudly.
func script[E, I any](inputs ...I) func(E) I {
	i := 0
	return func(E) I {
		v := inputs[i]
		i++
		return v
	}
}

// collect drives s to completion with next, recording every delivered
// event in emit order. Used by tests that assert full event traces.
func collect[E, I, R any](s *turn.Session[E, I, R], next func(E) I) ([]E, R, error) {
	var events []E
	result, err := turn.Drive(s, func(ev E) I {
		events = append(events, ev)
		return next(ev)
	})
	return events, result, err
}
