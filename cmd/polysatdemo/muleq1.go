package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-polysat/polysat/pdd"
	"github.com/go-polysat/polysat/pvar"
	"github.com/go-polysat/polysat/saturate"
	"github.com/go-polysat/polysat/search"
)

// mulEq1Cmd reproduces spec.md §8 scenario 2: a*x + (-1) ≤ 0 with
// a=3, x=5 at width 4 (a*x-1 mod 16 == 14, violating the inequality),
// with a non-overflow witness on the trail. The rule fires twice: once
// propagating x=1, once propagating a=1 after the first propagation is
// applied.
func mulEq1Cmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mul-eq-1",
		Short: "Run the mul_eq_1 units scenario across two saturation calls",
		RunE: func(cmd *cobra.Command, args []string) error {
			pvars := pvar.NewManager()
			mgr := pdd.NewManager(pvars, 4)
			env := search.NewMemEnv(mgr)

			a := mgr.NewVar()
			x := mgr.NewVar()
			env.SetValue(a.Var(), 3)
			env.SetValue(x.Var(), 5)

			lhs := a.Mul(x).Add(mgr.Val(mgr.Mask()))
			c := env.Ule(lhs, mgr.Zero())
			env.Assume(c)
			env.Assume(env.UmulOvfl(a, x).Not())

			conflict := search.NewConflict(c)
			eng := saturate.NewEngine(newLogger())

			if !eng.Perform(x.Var(), env, conflict) {
				return fmt.Errorf("no rule fired on first call")
			}
			applyUnitLemmas(env, conflict)

			if !eng.Perform(x.Var(), env, conflict) {
				return fmt.Errorf("no rule fired on second call")
			}
			printLemmas(conflict)
			return nil
		},
	}
}

// applyUnitLemmas simulates the SAT core consuming a freshly learned
// unit propagation by asserting it onto the trail, letting the next
// saturation call see it as forced.
func applyUnitLemmas(env *search.MemEnv, conflict *search.Conflict) {
	lemmas := conflict.Lemmas()
	last := lemmas[len(lemmas)-1]
	if len(last.Clause) == 1 {
		env.Assume(last.Clause[0])
		return
	}
	consequent := last.Clause[len(last.Clause)-1]
	env.Assume(consequent)
}
