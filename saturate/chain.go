package saturate

import (
	"github.com/go-polysat/polysat/cnstr"
	"github.com/go-polysat/polysat/match"
	"github.com/go-polysat/polysat/premise"
	"github.com/go-polysat/polysat/pvar"
	"github.com/go-polysat/polysat/search"
)

// tryChain implements y_l_ax_and_x_l_z (spec.md §4.5.4): chaining.
// Matches [x] y ≤⁺ a*x with a != 1; given an unresolved trail literal
// x ≤⁺' z and a non-overflow witness for a*z, concludes y ≤⁺'' a*z.
func tryChain(e *Engine, v pvar.Var, env search.Env, conflict *search.Conflict, i cnstr.Inequality) bool {
	a, y, ok := match.YLeAX(i, v)
	if !ok || a.IsOne() {
		return false
	}
	xpoly := env.Var(v)

	for _, entry := range env.Trail() {
		if !entry.IsBoolean() || entry.IsResolved() {
			continue
		}
		lit := entry.Lit()
		if !lit.IsUle() {
			continue
		}
		i2, ok := cnstr.FromULE(lit)
		if !ok || !i2.Lhs.Equal(xpoly) {
			continue
		}
		zpoly := i2.Rhs

		witness, ok := premise.IsNonOverflow(env, a, zpoly)
		if !ok {
			continue
		}
		strict := i.Strict || i2.Strict
		consequent := cnstr.Ineq(strict, y, a.Mul(zpoly))
		if premise.IsForcedTrue(env, consequent) {
			continue
		}

		e.insertEval(i.AsConstraint().Not())
		e.insertEval(lit.Not())
		e.insertEval(witness.Not())
		return e.finishPropagate(env, conflict, consequent)
	}
	return false
}
