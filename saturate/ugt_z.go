package saturate

import (
	"github.com/go-polysat/polysat/cnstr"
	"github.com/go-polysat/polysat/match"
	"github.com/go-polysat/polysat/premise"
	"github.com/go-polysat/polysat/pvar"
	"github.com/go-polysat/polysat/search"
)

// tryUgtZ implements ugt_z (spec.md §4.5.3), the dual of ugt_y:
// monotonicity via a trail literal v ≤⁺' y'. Matches [v] y*x ≤⁺ x*v,
// where v is the target variable itself and x is a cofactor only the
// right side need contain (the left side need only be divisible by
// x's own coefficient-scaled variable). Given an unresolved trail
// literal bounding v from above by y', and a non-overflow witness for
// x*y', this derives y*x ≤⁺'' y'*x — and if that derived inequality
// turns out already forced false under the current model, it is
// itself a conflict worth learning directly.
func tryUgtZ(e *Engine, v pvar.Var, env search.Env, conflict *search.Conflict, i cnstr.Inequality) bool {
	x, y, ok := match.YXLeXV(i, v)
	if !ok {
		return false
	}
	z := env.Var(v)

	for _, entry := range env.Trail() {
		if !entry.IsBoolean() || entry.IsResolved() {
			continue
		}
		lit := entry.Lit()
		if !lit.IsUle() {
			continue
		}
		i2, ok := cnstr.FromULE(lit)
		if !ok || !i2.Lhs.Equal(z) {
			continue
		}
		yPrime := i2.Rhs

		witness, ok := premise.IsNonOverflow(env, x, yPrime)
		if !ok {
			continue
		}
		strict := i.Strict || i2.Strict
		consequent := cnstr.Ineq(strict, y.Mul(x), yPrime.Mul(x))

		e.b.Reset()
		e.insertEval(witness.Not())
		if e.addConflict(env, conflict, i.AsConstraint(), lit, consequent) {
			return true
		}
	}
	return false
}
