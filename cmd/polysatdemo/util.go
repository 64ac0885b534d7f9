package main

import (
	"fmt"

	"github.com/go-polysat/polysat/search"
)

func printLemmas(conflict *search.Conflict) {
	for _, l := range conflict.Lemmas() {
		fmt.Printf("[%s]", l.Rule)
		for _, lit := range l.Clause {
			fmt.Printf(" %s", lit)
		}
		fmt.Println()
	}
}
