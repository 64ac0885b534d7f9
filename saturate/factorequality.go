package saturate

import (
	"github.com/go-polysat/polysat/cnstr"
	"github.com/go-polysat/polysat/pvar"
	"github.com/go-polysat/polysat/search"
)

// tryFactorEquality implements factor_equality (spec.md §4.5.9):
// given inequality a*b*x + p ≤ q and a trail equality a*x + r = 0,
// rewrite to -r*b + p ≤ q. The upstream source this is modeled on
// leaves this rule a stub; this reimplementation preserves that and
// always reports no match (spec.md §9's open questions).
func tryFactorEquality(e *Engine, v pvar.Var, env search.Env, conflict *search.Conflict, i cnstr.Inequality) bool {
	return false
}
