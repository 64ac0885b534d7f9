package saturate

import (
	"github.com/go-polysat/polysat/cnstr"
	"github.com/go-polysat/polysat/match"
	"github.com/go-polysat/polysat/premise"
	"github.com/go-polysat/polysat/pvar"
	"github.com/go-polysat/polysat/search"
)

// tryUgtY implements ugt_y (spec.md §4.5.2): monotonicity in the
// larger side via a trail literal z' ≤⁺' y. Matches [v] v*x ≤⁺ x*z,
// where v is the target variable itself and x is a cofactor only the
// left side need contain (the right side need only be divisible by
// x's own coefficient-scaled variable). Given an unresolved trail
// literal bounding v from below by z', and a non-overflow witness for
// x*v, this derives z'*x ≤⁺'' z*x — and if that derived inequality
// turns out already forced false under the current model, it is
// itself a conflict worth learning directly.
func tryUgtY(e *Engine, v pvar.Var, env search.Env, conflict *search.Conflict, i cnstr.Inequality) bool {
	x, z, ok := match.VXLeXZ(i, v)
	if !ok {
		return false
	}
	y := env.Var(v)

	for _, entry := range env.Trail() {
		if !entry.IsBoolean() || entry.IsResolved() {
			continue
		}
		lit := entry.Lit()
		if !lit.IsUle() {
			continue
		}
		i2, ok := cnstr.FromULE(lit)
		if !ok || !i2.Rhs.Equal(y) {
			continue
		}
		zPrime := i2.Lhs

		witness, ok := premise.IsNonOverflow(env, x, y)
		if !ok {
			continue
		}
		strict := i.Strict || i2.Strict
		consequent := cnstr.Ineq(strict, zPrime.Mul(x), z.Mul(x))

		e.b.Reset()
		e.insertEval(witness.Not())
		if e.addConflict(env, conflict, lit, i.AsConstraint(), consequent) {
			return true
		}
	}
	return false
}
