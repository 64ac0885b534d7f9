package saturate

import (
	"github.com/go-polysat/polysat/cnstr"
	"github.com/go-polysat/polysat/premise"
	"github.com/go-polysat/polysat/pvar"
	"github.com/go-polysat/polysat/search"
)

// tryTangent implements tangent (spec.md §4.5.10): the fallback rule
// that always applies in principle to a nonlinear inequality, which
// is why the rule engine tries it last. Matches any ≤ or < inequality
// containing v where both sides are non-constant and at least one is
// non-linear in v, then plugs in the current model's value for
// whichever side the inequality direction allows to be tightened.
func tryTangent(e *Engine, v pvar.Var, env search.Env, conflict *search.Conflict, i cnstr.Inequality) bool {
	lhs, rhs := i.Lhs, i.Rhs
	if lhs.IsVal() || rhs.IsVal() {
		return false
	}
	if lhs.Degree(v) == 0 && rhs.Degree(v) == 0 {
		return false
	}
	if lhs.Degree(v) < 2 && rhs.Degree(v) < 2 {
		return false
	}
	lv, ok := env.TryEval(lhs)
	if !ok {
		return false
	}
	rv, ok := env.TryEval(rhs)
	if !ok {
		return false
	}
	mgr := lhs.Manager()

	if !i.Strict {
		if lv <= rv {
			return false
		}
		sideLit := cnstr.Ule(rhs, mgr.Val(rv))
		if premise.IsForcedFalse(env, sideLit) {
			return false
		}
		consequent := cnstr.Ule(lhs, mgr.Val(rv))
		e.insertEval(i.AsConstraint().Not())
		e.insertEval(sideLit.Not())
		return e.finishPropagate(env, conflict, consequent)
	}

	if lv < rv {
		return false
	}
	sideLit := cnstr.Ule(mgr.Val(lv), lhs)
	if premise.IsForcedFalse(env, sideLit) {
		return false
	}
	consequent := cnstr.Ult(mgr.Val(rv), rhs)
	e.insertEval(i.AsConstraint().Not())
	e.insertEval(sideLit.Not())
	return e.finishPropagate(env, conflict, consequent)
}
