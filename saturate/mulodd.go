package saturate

import (
	"github.com/go-polysat/polysat/cnstr"
	"github.com/go-polysat/polysat/match"
	"github.com/go-polysat/polysat/premise"
	"github.com/go-polysat/polysat/pvar"
	"github.com/go-polysat/polysat/search"
)

// tryMulOdd implements mul_odd (spec.md §4.5.8). Matches the same
// a*x+b ≤ Y shape as mul_bounds/parity, with b and Y forced zero (the
// equation a*x = 0) and a not forced zero. Propagates even(x); if x
// is additionally not forced zero, also propagates even(a).
func tryMulOdd(e *Engine, v pvar.Var, env search.Env, conflict *search.Conflict, i cnstr.Inequality) bool {
	a, b, y, ok := match.AXBLeY(i, v)
	if !ok {
		return false
	}
	if !premise.IsForcedTrue(env, cnstr.Eq(y)) {
		return false
	}
	if !premise.IsForcedTrue(env, cnstr.Eq(b)) {
		return false
	}
	if premise.IsForcedTrue(env, cnstr.Eq(a)) {
		return false
	}
	xpoly := env.Var(v)

	insertBase := func() {
		e.insertEval(i.AsConstraint().Not())
		e.insertEval(cnstr.Eq(y).Not())
		e.insertEval(cnstr.Eq(b).Not())
		e.insertEval(cnstr.Eq(a))
	}

	consequent := cnstr.Even(xpoly)
	if !premise.IsForcedTrue(env, consequent) {
		e.b.Reset()
		insertBase()
		return e.finishPropagate(env, conflict, consequent)
	}

	if premise.IsForcedFalse(env, cnstr.Eq(xpoly)) {
		consequent2 := cnstr.Even(a)
		if !premise.IsForcedTrue(env, consequent2) {
			e.b.Reset()
			insertBase()
			e.insertEval(cnstr.Eq(xpoly))
			return e.finishPropagate(env, conflict, consequent2)
		}
	}
	return false
}
