// Package egraph implements the slice/e-graph adapter (C8): the
// read-only bridge between the solver's polynomial variables and the
// congruence-closure structure that tracks which bit-vector
// sub-ranges ("slices") are known equal.
//
// Grounded on the traversal contract of the original source's
// polysat_egraph.cpp (sub/super-slice visitors, fixed-bit ranges,
// explain callbacks) and, for the Go data layout, on gini's
// internal/xo dense, reuse-before-allocate node tables.
package egraph

import "github.com/go-polysat/polysat/pvar"

// Node is an opaque handle into the congruence-closure structure, an
// e-node in union-find terms.
type Node uint32

// NodeNull is the sentinel for "no node".
const NodeNull Node = 0

// Visitor is invoked once per (node, offset) pair during a
// sub-slice/super-slice traversal. Returning false stops the
// traversal early.
type Visitor func(n Node, offset uint) bool

// EqPair is one equality justification: two e-nodes known equal.
type EqPair struct{ A, B Node }

// Sink receives equality justifications produced by an explain call.
type Sink func(EqPair)

// Graph is the congruence-closure collaborator the adapter queries.
// Offsets are bit offsets from the low end of the owning node's term;
// a slice is the (offset, width) projection of some wider term.
type Graph interface {
	// SubSlices visits every sub-slice of n's term, in traversal
	// order, until v returns false.
	SubSlices(n Node, v Visitor)
	// SuperSlices visits every term n is a sub-slice of.
	SuperSlices(n Node, v Visitor)
	// Interpreted reports whether n's term is a numeric literal.
	Interpreted(n Node) bool
	// NumeralValue returns n's literal value. NumeralValue is only
	// meaningful when Interpreted(n).
	NumeralValue(n Node) uint64
	// Width returns the bit width of n's term.
	Width(n Node) uint
	// GetRoot returns the representative of n's equivalence class.
	GetRoot(n Node) Node
	// ThVar returns the theory (polynomial) variable associated with
	// n's equivalence class, or pvar.VarNull if none.
	ThVar(n Node) pvar.Var
	// Explain emits, via sink, the chain of equalities justifying
	// that a and b are in the same equivalence class.
	Explain(a, b Node, sink Sink)
}

// FixedRange is a sub-range of a polynomial variable's bits pinned to
// a known constant. Hi is exclusive.
type FixedRange struct {
	Lo, Hi uint
	Value  uint64
}

// Adapter answers the five read-only queries spec.md §4.6 asks of
// the e-graph, phrased in terms of polynomial variables rather than
// e-nodes, and deduplicated against a set of already-seen theory
// variables.
type Adapter struct {
	g     Graph
	nodes map[pvar.Var]Node
}

// NewAdapter creates an Adapter over g. nodes maps each polynomial
// variable the rule engine knows about to its owning e-node; the
// caller populates it as variables are introduced.
func NewAdapter(g Graph, nodes map[pvar.Var]Node) *Adapter {
	if nodes == nil {
		nodes = make(map[pvar.Var]Node)
	}
	return &Adapter{g: g, nodes: nodes}
}

// Bind records that pv's owning e-node is n, the node the queries
// start from for pv. It does not change what the graph's ThVar
// reports for n.
func (a *Adapter) Bind(pv pvar.Var, n Node) { a.nodes[pv] = n }

func (a *Adapter) node(pv pvar.Var) (Node, bool) {
	n, ok := a.nodes[pv]
	return n, ok
}

// GetBitvectorSuffixes yields every polynomial variable sharing an
// equivalence class with a zero-offset sub-slice of pv's node,
// deduplicated. Per spec.md §9, this is the one query restricted to
// offset == 0 — the other slice queries are not.
func (a *Adapter) GetBitvectorSuffixes(pv pvar.Var) []pvar.Var {
	n, ok := a.node(pv)
	if !ok {
		return nil
	}
	seen := make(map[pvar.Var]bool)
	var out []pvar.Var
	a.g.SubSlices(n, func(sub Node, offset uint) bool {
		if offset != 0 {
			return true
		}
		tv := a.g.ThVar(a.g.GetRoot(sub))
		if tv != pvar.VarNull && !seen[tv] {
			seen[tv] = true
			out = append(out, tv)
		}
		return true
	})
	return out
}

// GetBitvectorSubSlices yields every polynomial variable sharing an
// equivalence class with any sub-slice of pv's node, at any offset,
// deduplicated.
func (a *Adapter) GetBitvectorSubSlices(pv pvar.Var) []pvar.Var {
	n, ok := a.node(pv)
	if !ok {
		return nil
	}
	seen := make(map[pvar.Var]bool)
	var out []pvar.Var
	a.g.SubSlices(n, func(sub Node, offset uint) bool {
		tv := a.g.ThVar(a.g.GetRoot(sub))
		if tv != pvar.VarNull && !seen[tv] {
			seen[tv] = true
			out = append(out, tv)
		}
		return true
	})
	return out
}

// GetBitvectorSuperSlices is GetBitvectorSubSlices over the
// super-slice traversal instead.
func (a *Adapter) GetBitvectorSuperSlices(pv pvar.Var) []pvar.Var {
	n, ok := a.node(pv)
	if !ok {
		return nil
	}
	seen := make(map[pvar.Var]bool)
	var out []pvar.Var
	a.g.SuperSlices(n, func(super Node, offset uint) bool {
		tv := a.g.ThVar(a.g.GetRoot(super))
		if tv != pvar.VarNull && !seen[tv] {
			seen[tv] = true
			out = append(out, tv)
		}
		return true
	})
	return out
}

// GetFixedBits collects every sub-range of pv's node that is pinned
// to an interpreted constant, one range per interpreted sub-slice, in
// traversal order.
func (a *Adapter) GetFixedBits(pv pvar.Var) []FixedRange {
	n, ok := a.node(pv)
	if !ok {
		return nil
	}
	var out []FixedRange
	a.g.SubSlices(n, func(sub Node, offset uint) bool {
		if !a.g.Interpreted(sub) {
			return true
		}
		w := a.g.Width(sub)
		out = append(out, FixedRange{Lo: offset, Hi: offset + w, Value: a.g.NumeralValue(sub)})
		return true
	})
	return out
}

// ExplainSlice returns the equalities justifying that pw is the
// theory variable of the sub-slice of pv at offset.
func (a *Adapter) ExplainSlice(pv, pw pvar.Var, offset uint) []EqPair {
	n, ok1 := a.node(pv)
	m, ok2 := a.node(pw)
	if !ok1 || !ok2 {
		return nil
	}
	var out []EqPair
	a.g.SubSlices(n, func(sub Node, o uint) bool {
		if o != offset {
			return true
		}
		if a.g.ThVar(a.g.GetRoot(sub)) != a.g.ThVar(a.g.GetRoot(m)) {
			return true
		}
		a.g.Explain(sub, m, func(p EqPair) { out = append(out, p) })
		return false
	})
	return out
}

// ExplainFixed returns the equalities justifying that the sub-range
// [lo,hi) of pv's node equals value.
func (a *Adapter) ExplainFixed(pv pvar.Var, lo, hi uint, value uint64) []EqPair {
	n, ok := a.node(pv)
	if !ok {
		return nil
	}
	var out []EqPair
	a.g.SubSlices(n, func(sub Node, offset uint) bool {
		if offset != lo || a.g.Width(sub) != hi-lo {
			return true
		}
		if !a.g.Interpreted(sub) || a.g.NumeralValue(sub) != value {
			return true
		}
		a.g.Explain(sub, sub, func(p EqPair) { out = append(out, p) })
		return false
	})
	return out
}
