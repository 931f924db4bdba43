// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package turn

import (
	"code.hybscloud.com/kont"
)

// EmitBind yields an event and passes the driver's input to f.
// Fuses Perform(Emit[E, I]{Event: ev}) + Bind.
func EmitBind[E, I, B any](ev E, f func(I) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Emit[E, I]{Event: ev}), f)
}

// EmitThen yields an event, discards the driver's input, and continues
// with next. Fuses Perform(Emit[E, I]{Event: ev}) + Then.
// I does not appear in the arguments; pacing protocols instantiate it
// explicitly, usually as struct{}.
func EmitThen[E, I, B any](ev E, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Emit[E, I]{Event: ev}), next)
}

// Scoped acquires a resource for the duration of use. The release runs
// when use completes, or during Close if the session is cancelled
// while the resource is held. Nested scopes release last-in first-out.
// Fuses Perform(Hold[T]) + Bind + Perform(Release).
func Scoped[T, B any](acquire func() (T, func()), use func(T) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Hold[T]{Acquire: acquire}), func(v T) kont.Eff[B] {
		return kont.Bind(use(v), func(b B) kont.Eff[B] {
			return kont.Then(kont.Perform(Release{}), kont.Pure(b))
		})
	})
}
