package saturate

import (
	"github.com/go-polysat/polysat/cnstr"
	"github.com/go-polysat/polysat/match"
	"github.com/go-polysat/polysat/pdd"
	"github.com/go-polysat/polysat/premise"
	"github.com/go-polysat/polysat/pvar"
	"github.com/go-polysat/polysat/search"
)

// tryMulBounds implements mul_bounds (spec.md §4.5.5): bounds derived
// from a*x+b = 0. Matches [x] a*x+b ≤ y with a non-constant, b and y
// forced zero (so the inequality is really the equation a*x = 0),
// and a, x both forced nonzero.
//
// The primary consequent is that a*x overflows for some combination
// of signs of a and x — unsigned multiplication has no notion of
// sign, so all four combinations are tried. If a trail literal also
// bounds one of ±a, ±x above by a small constant k, a secondary
// consequent bounds the other operand away from the wrap-around
// region.
func tryMulBounds(e *Engine, v pvar.Var, env search.Env, conflict *search.Conflict, i cnstr.Inequality) bool {
	a, b, y, ok := match.AXBLeY(i, v)
	if !ok || a.IsVal() {
		return false
	}
	if !premise.IsForcedTrue(env, cnstr.Eq(b)) {
		return false
	}
	if !premise.IsForcedTrue(env, cnstr.Eq(y)) {
		return false
	}
	if !premise.IsForcedFalse(env, cnstr.Eq(a)) {
		return false
	}
	xpoly := env.Var(v)
	if !premise.IsForcedFalse(env, cnstr.Eq(xpoly)) {
		return false
	}

	insertCommon := func() {
		e.insertEval(i.AsConstraint().Not())
		e.insertEval(cnstr.Eq(b).Not())
		e.insertEval(cnstr.Eq(y).Not())
		e.insertEval(cnstr.Eq(a))
		e.insertEval(cnstr.Eq(xpoly))
	}

	combos := [4][2]pdd.Poly{
		{a, xpoly},
		{a, xpoly.Neg()},
		{a.Neg(), xpoly},
		{a.Neg(), xpoly.Neg()},
	}
	for _, combo := range combos {
		consequent := env.UmulOvfl(combo[0], combo[1])
		if premise.IsForcedTrue(env, consequent) {
			continue
		}
		e.b.Reset()
		insertCommon()
		return e.finishPropagate(env, conflict, consequent)
	}

	return tryMulBoundFromTrailLiteral(e, env, conflict, a, xpoly, insertCommon)
}

// tryMulBoundFromTrailLiteral implements mul_bounds's secondary
// consequent: if ±a or ±x is trail-bounded above by a small constant
// k, the other operand is bounded away from both ends of the range.
func tryMulBoundFromTrailLiteral(e *Engine, env search.Env, conflict *search.Conflict, a, xpoly pdd.Poly, insertCommon func()) bool {
	mgr := a.Manager()
	width := mgr.Width()
	if width >= 64 {
		return false
	}
	half := uint64(1) << (width - 1)
	twoToN := mgr.TwoToN()

	operands := []struct {
		u, other pdd.Poly
	}{
		{a, xpoly},
		{a.Neg(), xpoly},
		{xpoly, a},
		{xpoly.Neg(), a},
	}

	for _, entry := range env.Trail() {
		if !entry.IsBoolean() || entry.IsResolved() {
			continue
		}
		lit := entry.Lit()
		if !lit.IsUle() {
			continue
		}
		i2, ok := cnstr.FromULE(lit)
		if !ok || !i2.Rhs.IsVal() {
			continue
		}
		kVal := i2.Rhs.Val()
		if i2.Strict {
			if kVal == 0 {
				continue
			}
			kVal--
		}
		if kVal < 2 || kVal >= half {
			continue
		}
		for _, op := range operands {
			if !i2.Lhs.Equal(op.u) {
				continue
			}
			bound := (twoToN + kVal - 1) / kVal
			for _, target := range [2]pdd.Poly{op.other, op.other.Neg()} {
				consequent := env.Uge(target, bound)
				if premise.IsForcedTrue(env, consequent) {
					continue
				}
				e.b.Reset()
				insertCommon()
				e.insertEval(lit.Not())
				return e.finishPropagate(env, conflict, consequent)
			}
		}
	}
	return false
}
