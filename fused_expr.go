// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package turn

import (
	"code.hybscloud.com/kont"
)

// Pre-allocated erased operations and frames to eliminate heap escapes
// when boxing empty structs into any/kont.Frame during Expr-world execution.
var (
	exprReturnFrame kont.Frame  = kont.ReturnFrame{}
	exprRelease     kont.Erased = Release{}
)

// identityResume is the identity resume function for EffectFrame construction.
// Named function produces a static function value, consistent with kont convention.
func identityResume(v kont.Erased) kont.Erased { return v }

// ExprEmitThen yields an event, discards the driver's input, and
// continues with next. Fuses ExprPerform(Emit[E, I]{Event: ev}) + ExprThen.
func ExprEmitThen[E, I, B any](ev E, next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = Emit[E, I]{Event: ev}
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

func emitBindUnwind[I, B any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	f := data.(func(I) kont.Expr[B])
	result := f(current.(I))
	return kont.Erased(result.Value), result.Frame
}

// ExprEmitBind yields an event and passes the driver's input to f.
// Fuses ExprPerform(Emit[E, I]{Event: ev}) + ExprBind.
func ExprEmitBind[E, I, B any](ev E, f func(I) kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = f
	bf.Unwind = emitBindUnwind[I, B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = Emit[E, I]{Event: ev}
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}

// exprScopedRelease releases the current hold and returns b.
// Fuses ExprPerform(Release{}) + ExprThen + ExprReturn.
func exprScopedRelease[B any](b B) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(b), Frame: exprReturnFrame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = exprRelease
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

func scopedUnwind[T, B any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	use := data.(func(T) kont.Expr[B])
	inner := use(current.(T))
	if _, ok := inner.Frame.(kont.ReturnFrame); ok {
		r := exprScopedRelease(inner.Value)
		return kont.Erased(r.Value), r.Frame
	}
	bf := kont.AcquireBindFrame()
	bf.F = func(b kont.Erased) kont.Expr[kont.Erased] {
		r := exprScopedRelease(b.(B))
		return kont.Expr[kont.Erased]{Value: kont.Erased(r.Value), Frame: r.Frame}
	}
	bf.Next = kont.ReturnFrame{}
	return kont.Erased(inner.Value), kont.ChainFrames(inner.Frame, bf)
}

// ExprScoped acquires a resource for the duration of use. The release
// runs when use completes, or during Close if the session is cancelled
// while the resource is held. Nested scopes release last-in first-out.
// Fuses ExprPerform(Hold[T]) + ExprBind + ExprPerform(Release).
func ExprScoped[T, B any](acquire func() (T, func()), use func(T) kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = use
	bf.Unwind = scopedUnwind[T, B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = Hold[T]{Acquire: acquire}
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}
