package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-polysat/polysat/pdd"
	"github.com/go-polysat/polysat/pvar"
	"github.com/go-polysat/polysat/saturate"
	"github.com/go-polysat/polysat/search"
)

// ugtxCmd reproduces spec.md §8 scenario 1: y*x ≤ z*x with x=3, y=2,
// z=1 at width 4, where 6 ≤ 3 is currently false and x*y does not
// overflow.
func ugtxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ugt-x",
		Short: "Run the ugt_x cancellation scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			pvars := pvar.NewManager()
			mgr := pdd.NewManager(pvars, 4)
			env := search.NewMemEnv(mgr)

			x := mgr.NewVar()
			y := mgr.NewVar()
			z := mgr.NewVar()
			env.SetValue(x.Var(), 3)
			env.SetValue(y.Var(), 2)
			env.SetValue(z.Var(), 1)

			c := env.Ule(y.Mul(x), z.Mul(x))
			env.Assume(c)

			conflict := search.NewConflict(c)
			eng := saturate.NewEngine(newLogger())
			if !eng.Perform(x.Var(), env, conflict) {
				return fmt.Errorf("no rule fired")
			}
			printLemmas(conflict)
			return nil
		},
	}
}
