package saturate

import (
	"github.com/go-polysat/polysat/cnstr"
	"github.com/go-polysat/polysat/match"
	"github.com/go-polysat/polysat/premise"
	"github.com/go-polysat/polysat/pvar"
	"github.com/go-polysat/polysat/search"
)

// tryUgtX implements ugt_x (spec.md §4.5.1): cancellation on the
// common factor x. Matches [x] y*x ≤⁺ z*x; given a non-overflow
// witness for x*y, concludes y ≤⁺ z. For a non-strict i the lemma
// also carries x = 0 as an alternative disjunct (and the rule does
// not fire when x is already known to be zero).
func tryUgtX(e *Engine, v pvar.Var, env search.Env, conflict *search.Conflict, i cnstr.Inequality) bool {
	y, z, ok := match.YXLeZX(i, v)
	if !ok {
		return false
	}
	xpoly := env.Var(v)
	if !i.Strict && premise.IsForcedEq(env, xpoly, 0) {
		return false
	}
	witness, ok := premise.IsNonOverflow(env, xpoly, y)
	if !ok {
		return false
	}
	consequent := cnstr.Ineq(i.Strict, y, z)
	if premise.IsForcedTrue(env, consequent) {
		return false
	}

	e.insertEval(i.AsConstraint().Not())
	e.insertEval(witness.Not())
	clause := e.b.Build(env)
	if !i.Strict {
		clause = append(clause, env.Eq(xpoly))
	}
	clause = append(clause, consequent)
	conflict.AddLemma(e.rule, clause)
	return true
}
