package saturate

import (
	"github.com/go-polysat/polysat/cnstr"
	"github.com/go-polysat/polysat/match"
	"github.com/go-polysat/polysat/pdd"
	"github.com/go-polysat/polysat/premise"
	"github.com/go-polysat/polysat/pvar"
	"github.com/go-polysat/polysat/search"
)

// tryParity implements parity (spec.md §4.5.7): parity propagation
// on a*x+b = 0. Matches [x] a*x+b ≤ Y with Y forced zero (the
// equation a*x = -b), and tries, in order: the odd*odd=>odd(b)
// deduction, the odd(b)=>odd(a)/odd(x) deduction, the additive
// parity bound on b from confirmed parities of a and x, and finally
// the contrapositive deduction when b's parity is already pinned
// below what a*x could produce.
func tryParity(e *Engine, v pvar.Var, env search.Env, conflict *search.Conflict, i cnstr.Inequality) bool {
	a, b, y, ok := match.AXBLeY(i, v)
	if !ok {
		return false
	}
	if !premise.IsForcedTrue(env, cnstr.Eq(y)) {
		return false
	}
	if a.IsMax() && b.IsVar() {
		// a*x+b=0 with a=-1 and b a bare variable is just x==b; the
		// engine propagates that directly and doesn't need a parity
		// lemma for it.
		return false
	}
	if a.IsOne() && b.Neg().IsVar() {
		// a*x+b=0 with a=1 and -b a bare variable is just x==-b, same
		// as above with the sides swapped.
		return false
	}
	xpoly := env.Var(v)
	width := a.Manager().Width()

	insertBase := func() {
		e.insertEval(i.AsConstraint().Not())
		e.insertEval(cnstr.Eq(y).Not())
	}

	if env.IsCurrentlyTrue(cnstr.Odd(a)) && env.IsCurrentlyTrue(cnstr.Odd(xpoly)) {
		consequent := cnstr.Odd(b)
		if !premise.IsForcedTrue(env, consequent) {
			e.b.Reset()
			insertBase()
			e.insertEval(cnstr.Odd(a).Not())
			e.insertEval(cnstr.Odd(xpoly).Not())
			return e.finishPropagate(env, conflict, consequent)
		}
	}

	if env.IsCurrentlyTrue(cnstr.Odd(b)) {
		for _, consequent := range [2]cnstr.Constraint{cnstr.Odd(a), cnstr.Odd(xpoly)} {
			if premise.IsForcedTrue(env, consequent) {
				continue
			}
			e.b.Reset()
			insertBase()
			e.insertEval(cnstr.Odd(b).Not())
			return e.finishPropagate(env, conflict, consequent)
		}
	}

	pa := maxConfirmedParity(env, a, width)
	px := maxConfirmedParity(env, xpoly, width)
	if premise.IsForcedFalse(env, cnstr.Eq(a)) && premise.IsForcedFalse(env, cnstr.Eq(xpoly)) && (pa >= 1 || px >= 1) {
		sum := pa + px
		if sum > width {
			sum = width
		}
		consequent := cnstr.Parity(b, sum)
		if !premise.IsForcedTrue(env, consequent) {
			e.b.Reset()
			insertBase()
			e.insertEval(cnstr.Eq(a))
			e.insertEval(cnstr.Eq(xpoly))
			e.insertEval(cnstr.Parity(a, pa).Not())
			e.insertEval(cnstr.Parity(xpoly, px).Not())
			return e.finishPropagate(env, conflict, consequent)
		}
	}

	if premise.IsForcedTrue(env, cnstr.Eq(b)) {
		return false
	}
	pb, ok := smallestFalseParity(env, b, width)
	if !ok {
		return false
	}
	if fired := tryParityContrapositive(e, env, conflict, insertBase, b, pb, a, xpoly); fired {
		return true
	}
	return tryParityContrapositive(e, env, conflict, insertBase, b, pb, xpoly, a)
}

// tryParityContrapositive tries ¬parity(base, pb) first, then scans
// i ∈ [1, width) for a confirmed parity(base, i) to chain into
// ¬parity(other, pb-i).
func tryParityContrapositive(e *Engine, env search.Env, conflict *search.Conflict, insertBase func(), b pdd.Poly, pb uint, base, other pdd.Poly) bool {
	width := b.Manager().Width()

	consequent := cnstr.Parity(base, pb).Not()
	if !premise.IsForcedTrue(env, consequent) {
		e.b.Reset()
		insertBase()
		e.insertEval(cnstr.Parity(b, pb))
		return e.finishPropagate(env, conflict, consequent)
	}

	for k := uint(1); k < width; k++ {
		if k > pb {
			continue
		}
		if !env.IsCurrentlyTrue(cnstr.Parity(base, k)) {
			continue
		}
		chained := cnstr.Parity(other, pb-k).Not()
		if premise.IsForcedTrue(env, chained) {
			continue
		}
		e.b.Reset()
		insertBase()
		e.insertEval(cnstr.Parity(b, pb))
		e.insertEval(cnstr.Parity(base, k).Not())
		return e.finishPropagate(env, conflict, chained)
	}
	return false
}

// maxConfirmedParity returns the largest k <= width with parity(p,k)
// currently true.
func maxConfirmedParity(env search.Env, p pdd.Poly, width uint) uint {
	for k := width; k > 0; k-- {
		if env.IsCurrentlyTrue(cnstr.Parity(p, k)) {
			return k
		}
	}
	return 0
}

// smallestFalseParity returns the smallest k <= width with
// parity(p,k) currently false.
func smallestFalseParity(env search.Env, p pdd.Poly, width uint) (uint, bool) {
	for k := uint(0); k <= width; k++ {
		if env.IsCurrentlyFalse(cnstr.Parity(p, k)) {
			return k, true
		}
	}
	return 0, false
}
