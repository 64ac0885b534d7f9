package main

import (
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/spf13/cobra"
)

// bitsCmd drives a real gini instance directly, independent of this
// repository's own saturate/search packages, to show the boolean core
// polysat ultimately discharges lemmas against. It encodes sum <-> (x
// XOR y) as CNF and solves it under an assumption, the way a CDCL core
// would discharge a learned clause's abstraction of a theory lemma.
func bitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bits",
		Short: "Solve a small boolean skeleton with the underlying gini solver",
		RunE: func(cmd *cobra.Command, args []string) error {
			g := gini.New()

			x := z.Dimacs2Lit(1)
			y := z.Dimacs2Lit(2)
			sum := z.Dimacs2Lit(3)

			// sum <-> (x XOR y), in clausal form:
			//   (-x, -y, -sum), (x, y, -sum), (x, -y, sum), (-x, y, sum)
			addClause(g, x.Not(), y.Not(), sum.Not())
			addClause(g, x, y, sum.Not())
			addClause(g, x, y.Not(), sum)
			addClause(g, x.Not(), y, sum)

			g.Assume(x, y.Not())

			switch res := g.Solve(); res {
			case 1:
				fmt.Printf("sat: x=%v y=%v sum=%v\n", g.Value(x), g.Value(y), g.Value(sum))
			case -1:
				fmt.Println("unsat")
			default:
				fmt.Println("canceled")
			}
			return nil
		},
	}
}

func addClause(g *gini.Gini, lits ...z.Lit) {
	for _, lit := range lits {
		g.Add(lit)
	}
	g.Add(z.Lit(0))
}
