// Package pdd implements the polynomial view the saturation rules
// operate on: multivariate polynomials over GF(2^K)[X1...Xn] in
// canonical sorted-term form, together with the C1 adapter queries
// (degree, factorisation, evaluation, shape recognition) the rule
// engine relies on.
//
// The representation is a flat, hash-consing-free analogue of gini's
// logic.C circuit table: instead of a DAG of AND-gates keyed by a
// strash, a Poly is a canonical sorted list of monomials, each a
// coefficient and a sorted multiset of pvar.Var factors.
package pdd

import (
	"fmt"
	"sort"

	"github.com/go-polysat/polysat/pvar"
)

// term is one monomial: coeff * product(vars), vars sorted ascending
// (repeats encode powers).
type term struct {
	coeff uint64
	vars  []pvar.Var
}

// Poly is an immutable polynomial value, modulo 2^K for the width K
// of the Manager that produced it. The zero value is not a valid
// Poly; always obtain one from a Manager.
type Poly struct {
	mgr   *Manager
	terms []term // canonical: sorted by monomial, no zero coefficients, no duplicate monomials
}

// Manager owns the bit width and variable allocation for one family
// of polynomials. Saturation rules typically operate within a single
// Manager, the one for the pvar currently under analysis.
type Manager struct {
	vars  *pvar.Manager
	width uint
	mask  uint64
}

// NewManager creates a Manager for polynomials of the given width,
// allocating fresh variables from vars.
func NewManager(vars *pvar.Manager, width uint) *Manager {
	if width == 0 || width > pvar.MaxWidth {
		panic(fmt.Sprintf("pdd: width %d out of range", width))
	}
	mask := ^uint64(0)
	if width < 64 {
		mask = (uint64(1) << width) - 1
	}
	return &Manager{vars: vars, width: width, mask: mask}
}

// Width returns K.
func (m *Manager) Width() uint { return m.width }

// Mask returns 2^K-1.
func (m *Manager) Mask() uint64 { return m.mask }

// TwoToN returns 2^K, or 0 for K==64 (see pvar.Manager.TwoToN).
func (m *Manager) TwoToN() uint64 {
	if m.width == 64 {
		return 0
	}
	return uint64(1) << m.width
}

func (m *Manager) normalize(x uint64) uint64 { return x & m.mask }

func (m *Manager) neg(c uint64) uint64 { return m.normalize(^c + 1) }

// Zero returns the constant 0.
func (m *Manager) Zero() Poly { return Poly{mgr: m} }

// One returns the constant 1.
func (m *Manager) One() Poly { return m.Val(1) }

// Max returns the constant 2^K-1.
func (m *Manager) Max() Poly { return m.Val(m.mask) }

// Val returns the constant polynomial with the given value, reduced
// mod 2^K.
func (m *Manager) Val(v uint64) Poly {
	v = m.normalize(v)
	if v == 0 {
		return Poly{mgr: m}
	}
	return Poly{mgr: m, terms: []term{{coeff: v}}}
}

// NewVar allocates a fresh variable of this Manager's width and
// returns the polynomial 1*v.
func (m *Manager) NewVar() Poly {
	v := m.vars.Fresh(m.width)
	return m.VarPoly(v)
}

// VarPoly wraps an already-allocated pvar.Var as a degree-1
// polynomial 1*v. The caller is responsible for v having been
// allocated with this Manager's width.
func (m *Manager) VarPoly(v pvar.Var) Poly {
	return Poly{mgr: m, terms: []term{{coeff: 1, vars: []pvar.Var{v}}}}
}

// Manager returns the owning Manager.
func (p Poly) Manager() *Manager { return p.mgr }

func (p Poly) String() string {
	if len(p.terms) == 0 {
		return "0"
	}
	s := ""
	for i, t := range p.terms {
		if i > 0 {
			s += " + "
		}
		s += fmt.Sprintf("%d", t.coeff)
		for _, v := range t.vars {
			s += "*" + v.String()
		}
	}
	return s
}

// Equal reports whether p and q denote the same canonical polynomial.
func (p Poly) Equal(q Poly) bool {
	if len(p.terms) != len(q.terms) {
		return false
	}
	for i := range p.terms {
		if p.terms[i].coeff != q.terms[i].coeff {
			return false
		}
		if !equalVars(p.terms[i].vars, q.terms[i].vars) {
			return false
		}
	}
	return true
}

func equalVars(a, b []pvar.Var) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func cmpVars(a, b []pvar.Var) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// canon sorts terms by monomial, merges duplicates mod 2^K, and
// drops zero-coefficient terms.
func (m *Manager) canon(ts []term) []term {
	sort.Slice(ts, func(i, j int) bool { return cmpVars(ts[i].vars, ts[j].vars) < 0 })
	out := ts[:0]
	for _, t := range ts {
		if len(out) > 0 && equalVars(out[len(out)-1].vars, t.vars) {
			out[len(out)-1].coeff = m.normalize(out[len(out)-1].coeff + t.coeff)
			continue
		}
		out = append(out, t)
	}
	final := out[:0]
	for _, t := range out {
		if t.coeff != 0 {
			final = append(final, t)
		}
	}
	return final
}

// Add returns p+q mod 2^K.
func (p Poly) Add(q Poly) Poly {
	p.checkSameManager(q)
	ts := make([]term, 0, len(p.terms)+len(q.terms))
	for _, t := range p.terms {
		ts = append(ts, term{coeff: t.coeff, vars: t.vars})
	}
	for _, t := range q.terms {
		ts = append(ts, term{coeff: t.coeff, vars: t.vars})
	}
	return Poly{mgr: p.mgr, terms: p.mgr.canon(ts)}
}

// Neg returns -p mod 2^K.
func (p Poly) Neg() Poly {
	ts := make([]term, len(p.terms))
	for i, t := range p.terms {
		ts[i] = term{coeff: p.mgr.neg(t.coeff), vars: t.vars}
	}
	return Poly{mgr: p.mgr, terms: ts}
}

// Sub returns p-q mod 2^K.
func (p Poly) Sub(q Poly) Poly {
	return p.Add(q.Neg())
}

// Mul returns p*q mod 2^K.
func (p Poly) Mul(q Poly) Poly {
	p.checkSameManager(q)
	ts := make([]term, 0, len(p.terms)*len(q.terms))
	for _, a := range p.terms {
		for _, b := range q.terms {
			c := p.mgr.normalize(a.coeff * b.coeff)
			if c == 0 {
				continue
			}
			vars := make([]pvar.Var, 0, len(a.vars)+len(b.vars))
			vars = append(vars, a.vars...)
			vars = append(vars, b.vars...)
			sort.Slice(vars, func(i, j int) bool { return vars[i] < vars[j] })
			ts = append(ts, term{coeff: c, vars: vars})
		}
	}
	return Poly{mgr: p.mgr, terms: p.mgr.canon(ts)}
}

func (p Poly) checkSameManager(q Poly) {
	if p.mgr != q.mgr {
		panic("pdd: operands from different managers")
	}
}

// IsZero reports whether p is the constant 0.
func (p Poly) IsZero() bool { return len(p.terms) == 0 }

// IsVal reports whether p is a constant.
func (p Poly) IsVal() bool {
	if p.IsZero() {
		return true
	}
	return len(p.terms) == 1 && len(p.terms[0].vars) == 0
}

// Val returns the constant value of p. Val panics if !p.IsVal().
func (p Poly) Val() uint64 {
	if p.IsZero() {
		return 0
	}
	if !p.IsVal() {
		panic("pdd: Val() on non-constant polynomial")
	}
	return p.terms[0].coeff
}

// IsOne reports whether p is the constant 1.
func (p Poly) IsOne() bool { return p.IsVal() && p.Val() == 1 }

// IsMax reports whether p is the constant 2^K-1.
func (p Poly) IsMax() bool { return p.IsVal() && p.Val() == p.mgr.mask }

// IsVar reports whether p is a single variable with coefficient 1.
func (p Poly) IsVar() bool {
	return len(p.terms) == 1 && p.terms[0].coeff == 1 && len(p.terms[0].vars) == 1
}

// Var returns the variable p denotes. Var panics if !p.IsVar().
func (p Poly) Var() pvar.Var {
	if !p.IsVar() {
		panic("pdd: Var() on non-variable polynomial")
	}
	return p.terms[0].vars[0]
}

// IsUnary reports whether p = c*x for a single variable x and
// nonzero constant c (c need not be 1; IsVar is the c==1 case).
func (p Poly) IsUnary() bool {
	return len(p.terms) == 1 && len(p.terms[0].vars) == 1 && p.terms[0].coeff != 0
}

// Hi returns the coefficient of a unary polynomial as a constant
// Poly. Hi panics if !p.IsUnary().
func (p Poly) Hi() Poly {
	if !p.IsUnary() {
		panic("pdd: Hi() on non-unary polynomial")
	}
	return p.mgr.Val(p.terms[0].coeff)
}

// UnaryVar returns the variable of a unary polynomial, regardless of
// its coefficient. UnaryVar panics if !p.IsUnary().
func (p Poly) UnaryVar() pvar.Var {
	if !p.IsUnary() {
		panic("pdd: UnaryVar() on non-unary polynomial")
	}
	return p.terms[0].vars[0]
}

// Degree returns the highest power of v appearing in any monomial of
// p, or 0 if v does not occur.
func (p Poly) Degree(v pvar.Var) uint {
	var d uint
	for _, t := range p.terms {
		c := uint(0)
		for _, w := range t.vars {
			if w == v {
				c++
			}
		}
		if c > d {
			d = c
		}
	}
	return d
}

// Factor decomposes p = a*v + b when p.Degree(v) == 1, returning the
// coefficient polynomial a (not containing v) and the remainder b
// (not containing v). ok is false if p.Degree(v) != 1.
func (p Poly) Factor(v pvar.Var) (a, b Poly, ok bool) {
	if p.Degree(v) != 1 {
		return Poly{}, Poly{}, false
	}
	var aTerms, bTerms []term
	for _, t := range p.terms {
		idx := -1
		for i, w := range t.vars {
			if w == v {
				idx = i
				break
			}
		}
		if idx < 0 {
			bTerms = append(bTerms, t)
			continue
		}
		rest := make([]pvar.Var, 0, len(t.vars)-1)
		rest = append(rest, t.vars[:idx]...)
		rest = append(rest, t.vars[idx+1:]...)
		aTerms = append(aTerms, term{coeff: t.coeff, vars: rest})
	}
	return Poly{mgr: p.mgr, terms: p.mgr.canon(aTerms)}, Poly{mgr: p.mgr, terms: p.mgr.canon(bTerms)}, true
}

// TryEval evaluates p under the given total variable assignment,
// succeeding only if every variable occurring in p has an assigned
// value.
func (p Poly) TryEval(assign func(pvar.Var) (uint64, bool)) (uint64, bool) {
	var sum uint64
	for _, t := range p.terms {
		val := t.coeff
		for _, v := range t.vars {
			a, ok := assign(v)
			if !ok {
				return 0, false
			}
			val = p.mgr.normalize(val * a)
		}
		sum = p.mgr.normalize(sum + val)
	}
	return sum, true
}

// TryDiv divides p by the integer k exactly in the ring Z/2^K, if
// possible. k == 0 always fails (unless p is also the zero
// polynomial, in which case any quotient would do, but no canonical
// one exists, so TryDiv conservatively fails).
func (p Poly) TryDiv(k uint64) (Poly, bool) {
	k = p.mgr.normalize(k)
	if k == 0 {
		return Poly{}, false
	}
	if k&1 == 1 {
		inv, ok := modInverseOdd(k, p.mgr.width)
		if !ok {
			return Poly{}, false
		}
		return p.Mul(p.mgr.Val(inv)), true
	}
	// k even: k = 2^s * odd. Every coefficient must be divisible by
	// 2^s as an integer for exact division to exist.
	s := trailingZeros64(k)
	odd := k >> s
	shiftMask := uint64(1)<<s - 1
	ts := make([]term, len(p.terms))
	for i, t := range p.terms {
		if t.coeff&shiftMask != 0 {
			return Poly{}, false
		}
		ts[i] = term{coeff: t.coeff >> s, vars: t.vars}
	}
	q := Poly{mgr: p.mgr, terms: p.mgr.canon(ts)}
	inv, ok := modInverseOdd(odd, p.mgr.width)
	if !ok {
		return Poly{}, false
	}
	return q.Mul(p.mgr.Val(inv)), true
}

func trailingZeros64(x uint64) uint {
	var n uint
	for x&1 == 0 && n < 64 {
		x >>= 1
		n++
	}
	return n
}

// modInverseOdd returns the multiplicative inverse of the odd number
// k modulo 2^width, via Newton-Hensel lifting (doubles the number of
// correct bits each iteration, starting from the trivial inverse of
// k mod 2).
func modInverseOdd(k uint64, width uint) (uint64, bool) {
	if k&1 == 0 {
		return 0, false
	}
	var mask uint64 = ^uint64(0)
	if width < 64 {
		mask = (uint64(1) << width) - 1
	}
	x := uint64(1) // inverse of any odd k, mod 2
	for bits := uint(1); bits < 64; bits *= 2 {
		// x*k == 1 mod 2^bits; lift to mod 2^(2*bits)
		x = x * (2 - k*x)
	}
	return x & mask, true
}
