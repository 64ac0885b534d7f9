package egraph

import "github.com/go-polysat/polysat/pvar"

// slice is one entry of subOf[p]: the node stored in its parent field
// is the sub-slice (not p itself), a width-bit window starting at
// offset within p.
type slice struct {
	parent Node
	offset uint
	width  uint
}

// Simple is a minimal in-memory Graph: a dense node table plus a
// union-find over equivalence classes, in the reuse-before-allocate
// style of gini's internal/xo.Active. It exists so this repository's
// own tests and demo binary can drive Adapter without a real
// congruence-closure engine.
type Simple struct {
	widths    []uint
	parent    []Node // union-find parent, parent[n] == n for a root
	thVar     []pvar.Var
	numeral   []bool
	value     []uint64
	subOf     map[Node][]slice // n -> slices of n (sub-slices)
	superOf   map[Node][]Node  // n -> terms n is a sub-slice of
}

// NewSimple creates an empty Simple graph. Node 0 is reserved as
// NodeNull and never allocated.
func NewSimple() *Simple {
	return &Simple{
		widths:  []uint{0},
		parent:  []Node{NodeNull},
		thVar:   []pvar.Var{pvar.VarNull},
		numeral: []bool{false},
		value:   []uint64{0},
		subOf:   make(map[Node][]slice),
		superOf: make(map[Node][]Node),
	}
}

// NewTerm allocates a fresh node of the given width, its own
// singleton equivalence class.
func (s *Simple) NewTerm(width uint) Node {
	n := Node(len(s.widths))
	s.widths = append(s.widths, width)
	s.parent = append(s.parent, n)
	s.thVar = append(s.thVar, pvar.VarNull)
	s.numeral = append(s.numeral, false)
	s.value = append(s.value, 0)
	return n
}

// NewNumeral allocates a fresh interpreted node with the given width
// and value.
func (s *Simple) NewNumeral(width uint, value uint64) Node {
	n := s.NewTerm(width)
	s.numeral[n] = true
	s.value[n] = value
	return n
}

// SetThVar associates the theory variable pv with n's term.
func (s *Simple) SetThVar(n Node, pv pvar.Var) { s.thVar[n] = pv }

// AddSlice records that sub is the (offset, width) sub-slice of
// parent.
func (s *Simple) AddSlice(parent, sub Node, offset, width uint) {
	s.subOf[parent] = append(s.subOf[parent], slice{parent: sub, offset: offset, width: width})
	s.superOf[sub] = append(s.superOf[sub], parent)
}

// Union merges a's and b's equivalence classes.
func (s *Simple) Union(a, b Node) {
	ra, rb := s.find(a), s.find(b)
	if ra != rb {
		s.parent[ra] = rb
		if s.thVar[rb] == pvar.VarNull {
			s.thVar[rb] = s.thVar[ra]
		}
	}
}

func (s *Simple) find(n Node) Node {
	for s.parent[n] != n {
		n = s.parent[n]
	}
	return n
}

func (s *Simple) SubSlices(n Node, v Visitor) {
	for _, sl := range s.subOf[n] {
		if !v(sl.parent, sl.offset) {
			return
		}
	}
}

func (s *Simple) SuperSlices(n Node, v Visitor) {
	for _, parent := range s.superOf[n] {
		offset := uint(0)
		for _, sl := range s.subOf[parent] {
			if sl.parent == n {
				offset = sl.offset
				break
			}
		}
		if !v(parent, offset) {
			return
		}
	}
}

func (s *Simple) Interpreted(n Node) bool     { return s.numeral[n] }
func (s *Simple) NumeralValue(n Node) uint64  { return s.value[n] }
func (s *Simple) Width(n Node) uint           { return s.widths[n] }
func (s *Simple) GetRoot(n Node) Node         { return s.find(n) }
func (s *Simple) ThVar(n Node) pvar.Var       { return s.thVar[s.find(n)] }

func (s *Simple) Explain(a, b Node, sink Sink) {
	if s.find(a) == s.find(b) {
		sink(EqPair{A: a, B: b})
	}
}
