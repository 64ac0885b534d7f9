package saturate

import (
	"github.com/go-polysat/polysat/cnstr"
	"github.com/go-polysat/polysat/match"
	"github.com/go-polysat/polysat/premise"
	"github.com/go-polysat/polysat/pvar"
	"github.com/go-polysat/polysat/search"
)

// tryMulEq1 implements mul_eq_1 (spec.md §4.5.6): units. Matches
// [x] a*x+b ≤ y with b forced -1 and y forced 0 (the equation a*x =
// 1) and a non-overflow witness for a*x. Both x = 1 and a = 1 follow;
// whichever is not yet forced true is propagated, preferring x = 1.
func tryMulEq1(e *Engine, v pvar.Var, env search.Env, conflict *search.Conflict, i cnstr.Inequality) bool {
	a, b, y, ok := match.AXBLeY(i, v)
	if !ok {
		return false
	}
	mgr := a.Manager()
	negOne := cnstr.EqVal(b, mgr.Mask())
	if !premise.IsForcedTrue(env, negOne) {
		return false
	}
	if !premise.IsForcedTrue(env, cnstr.Eq(y)) {
		return false
	}
	xpoly := env.Var(v)
	witness, ok := premise.IsNonOverflow(env, a, xpoly)
	if !ok {
		return false
	}

	insertCommon := func() {
		e.insertEval(i.AsConstraint().Not())
		e.insertEval(negOne.Not())
		e.insertEval(cnstr.Eq(y).Not())
		e.insertEval(witness.Not())
	}

	for _, consequent := range [2]cnstr.Constraint{cnstr.EqVal(xpoly, 1), cnstr.EqVal(a, 1)} {
		if premise.IsForcedTrue(env, consequent) {
			continue
		}
		e.b.Reset()
		insertCommon()
		return e.finishPropagate(env, conflict, consequent)
	}
	return false
}
