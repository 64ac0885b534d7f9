// Package cnstr implements the signed-constraint and inequality
// abstraction (C2): atomic propositions over polynomials, each
// carrying a polarity, together with the constraint factory the
// saturation rules use to build new premises and consequents.
package cnstr

import (
	"fmt"
	"math/bits"

	"github.com/go-polysat/polysat/pdd"
	"github.com/go-polysat/polysat/pvar"
)

// Kind identifies the underlying atom of a Constraint. Ult, Uge and
// Even are not separate Kinds: they are represented as a Ule or Odd
// atom with an appropriate polarity and operand order, matching how
// the rule engine expects to recover an Inequality from any
// ≤-shaped constraint regardless of how it reads on the surface.
type Kind uint8

const (
	KEq Kind = iota
	KEqVal
	KUle
	KUmulOvfl
	KOdd
	KParity
)

func (k Kind) String() string {
	switch k {
	case KEq:
		return "eq"
	case KEqVal:
		return "eqval"
	case KUle:
		return "ule"
	case KUmulOvfl:
		return "umul_ovfl"
	case KOdd:
		return "odd"
	case KParity:
		return "parity"
	default:
		return "?"
	}
}

// Constraint is an atomic proposition paired with a polarity: the
// predicate it denotes is the base atom identified by Kind, P, Q,
// ParityBits and Target, negated when IsNegative reports true.
type Constraint struct {
	kind   Kind
	p, q   pdd.Poly
	target uint64 // KEqVal
	bitsN  uint   // KParity
	neg    bool
}

// Kind returns the underlying atom kind.
func (c Constraint) Kind() Kind { return c.kind }

// IsUle reports whether c's underlying atom is a Ule atom, i.e.
// whether c can be viewed as an Inequality via FromULE.
func (c Constraint) IsUle() bool { return c.kind == KUle }

// IsUmulOvfl reports whether c's underlying atom is a umul_ovfl atom.
func (c Constraint) IsUmulOvfl() bool { return c.kind == KUmulOvfl }

// IsNegative reports whether c negates its base atom.
func (c Constraint) IsNegative() bool { return c.neg }

// P returns the first polynomial operand (meaning depends on Kind).
func (c Constraint) P() pdd.Poly { return c.p }

// Q returns the second polynomial operand (KUle, KUmulOvfl only).
func (c Constraint) Q() pdd.Poly { return c.q }

// Target returns the comparison value for KEqVal.
func (c Constraint) Target() uint64 { return c.target }

// ParityBits returns the bit count for KParity.
func (c Constraint) ParityBits() uint { return c.bitsN }

// Not returns the negation of c (the "~c" used throughout the rules).
func (c Constraint) Not() Constraint {
	c.neg = !c.neg
	return c
}

// Equal reports whether c and d denote the exact same signed atom
// (same kind, operands, and polarity) — used to detect e.g. crit1 ==
// crit2 when the same inequality is both antecedents of a lemma, and
// to recognize a umul_ovfl literal witnessing a given pair on the
// trail.
func (c Constraint) Equal(d Constraint) bool {
	if c.kind != d.kind || c.neg != d.neg {
		return false
	}
	switch c.kind {
	case KEq:
		return c.p.Equal(d.p)
	case KEqVal:
		return c.p.Equal(d.p) && c.target == d.target
	case KUle, KUmulOvfl:
		return c.p.Equal(d.p) && c.q.Equal(d.q)
	case KOdd:
		return c.p.Equal(d.p)
	case KParity:
		return c.p.Equal(d.p) && c.bitsN == d.bitsN
	}
	return false
}

func (c Constraint) String() string {
	pol := ""
	if c.neg {
		pol = "~"
	}
	switch c.kind {
	case KEq:
		return fmt.Sprintf("%s(%s = 0)", pol, c.p)
	case KEqVal:
		return fmt.Sprintf("%s(%s = %d)", pol, c.p, c.target)
	case KUle:
		return fmt.Sprintf("%s(%s <= %s)", pol, c.p, c.q)
	case KUmulOvfl:
		return fmt.Sprintf("%sumul_ovfl(%s, %s)", pol, c.p, c.q)
	case KOdd:
		return fmt.Sprintf("%sodd(%s)", pol, c.p)
	case KParity:
		return fmt.Sprintf("%sparity(%s, %d)", pol, c.p, c.bitsN)
	}
	return "?"
}

// Eval attempts to fully evaluate c under assign, a total function
// from variable to value for whatever variables are committed. ok is
// false unless every variable occurring in c's operands is assigned.
func (c Constraint) Eval(assign func(pvar.Var) (uint64, bool)) (value bool, ok bool) {
	base, ok := c.evalBase(assign)
	if !ok {
		return false, false
	}
	if c.neg {
		base = !base
	}
	return base, true
}

func (c Constraint) evalBase(assign func(pvar.Var) (uint64, bool)) (bool, bool) {
	switch c.kind {
	case KEq:
		v, ok := c.p.TryEval(assign)
		return v == 0, ok
	case KEqVal:
		v, ok := c.p.TryEval(assign)
		return v == c.target, ok
	case KUle:
		lv, ok1 := c.p.TryEval(assign)
		rv, ok2 := c.q.TryEval(assign)
		return lv <= rv, ok1 && ok2
	case KUmulOvfl:
		lv, ok1 := c.p.TryEval(assign)
		rv, ok2 := c.q.TryEval(assign)
		if !ok1 || !ok2 {
			return false, false
		}
		return umulOverflows(lv, rv, c.p.Manager().Width()), true
	case KOdd:
		v, ok := c.p.TryEval(assign)
		return v&1 == 1, ok
	case KParity:
		v, ok := c.p.TryEval(assign)
		if !ok {
			return false, false
		}
		if c.bitsN == 0 {
			return true, true
		}
		if c.bitsN >= 64 {
			return v == 0, true
		}
		return v&((uint64(1)<<c.bitsN)-1) == 0, true
	}
	return false, false
}

func umulOverflows(lv, rv uint64, width uint) bool {
	hi, lo := bits.Mul64(lv, rv)
	if width >= 64 {
		return hi != 0
	}
	if hi != 0 {
		return true
	}
	return lo>>width != 0
}

// Factory is the constraint-construction capability the rule engine
// expects from the surrounding environment (spec.md §6's "Constraint
// factory"). Construction here is stateless — no deduplication or
// interning, which the distilled spec explicitly treats as a
// collaborator out of scope for this core — so Funcs is a trivial,
// zero-size implementation and any Env embeds it for free.
type Factory interface {
	Eq(p pdd.Poly) Constraint
	EqVal(p pdd.Poly, k uint64) Constraint
	Ule(p, q pdd.Poly) Constraint
	Ult(p, q pdd.Poly) Constraint
	Uge(p pdd.Poly, k uint64) Constraint
	UmulOvfl(p, q pdd.Poly) Constraint
	Odd(p pdd.Poly) Constraint
	Even(p pdd.Poly) Constraint
	Parity(p pdd.Poly, k uint) Constraint
}

// Funcs is the stateless Factory implementation.
type Funcs struct{}

func (Funcs) Eq(p pdd.Poly) Constraint { return Eq(p) }
func (Funcs) EqVal(p pdd.Poly, k uint64) Constraint { return EqVal(p, k) }
func (Funcs) Ule(p, q pdd.Poly) Constraint { return Ule(p, q) }
func (Funcs) Ult(p, q pdd.Poly) Constraint { return Ult(p, q) }
func (Funcs) Uge(p pdd.Poly, k uint64) Constraint { return Uge(p, k) }
func (Funcs) UmulOvfl(p, q pdd.Poly) Constraint { return UmulOvfl(p, q) }
func (Funcs) Odd(p pdd.Poly) Constraint { return Odd(p) }
func (Funcs) Even(p pdd.Poly) Constraint { return Even(p) }
func (Funcs) Parity(p pdd.Poly, k uint) Constraint { return Parity(p, k) }

// Eq builds the constraint p = 0.
func Eq(p pdd.Poly) Constraint { return Constraint{kind: KEq, p: p} }

// EqVal builds the constraint p = k.
func EqVal(p pdd.Poly, k uint64) Constraint { return Constraint{kind: KEqVal, p: p, target: k} }

// Ule builds the constraint p <= q.
func Ule(p, q pdd.Poly) Constraint { return Constraint{kind: KUle, p: p, q: q} }

// Ult builds the constraint p < q, represented as ~(q <= p).
func Ult(p, q pdd.Poly) Constraint { return Constraint{kind: KUle, p: q, q: p, neg: true} }

// Uge builds the constraint p >= k, represented as k <= p.
func Uge(p pdd.Poly, k uint64) Constraint { return Ule(p.Manager().Val(k), p) }

// UmulOvfl builds the constraint that p*q overflows mod 2^K.
func UmulOvfl(p, q pdd.Poly) Constraint { return Constraint{kind: KUmulOvfl, p: p, q: q} }

// Odd builds the constraint that p is odd.
func Odd(p pdd.Poly) Constraint { return Constraint{kind: KOdd, p: p} }

// Even builds the constraint that p is even, represented as ~odd(p).
func Even(p pdd.Poly) Constraint { return Odd(p).Not() }

// Parity builds the constraint that the low k bits of p are zero.
func Parity(p pdd.Poly, k uint) Constraint { return Constraint{kind: KParity, p: p, bitsN: k} }

// Inequality is a view of a ≤-shaped Constraint as (Lhs, Rhs,
// Strict), per spec.md §3. "<" is represented as the ≤-constraint
// plus a strictness flag, not as a distinct atom.
type Inequality struct {
	Lhs, Rhs pdd.Poly
	Strict   bool
	src      Constraint
}

// FromULE extracts the Inequality view of c. ok is false if c is not
// a Ule-kind constraint. A negated p <= q is viewed as the strict
// q < p, so FromULE(Ult(x, y)) has Lhs x, Rhs y and Strict set.
func FromULE(c Constraint) (Inequality, bool) {
	if c.kind != KUle {
		return Inequality{}, false
	}
	if c.neg {
		return Inequality{Lhs: c.q, Rhs: c.p, Strict: true, src: c}, true
	}
	return Inequality{Lhs: c.p, Rhs: c.q, Strict: false, src: c}, true
}

// AsConstraint returns the signed constraint i was extracted from.
func (i Inequality) AsConstraint() Constraint { return i.src }

// Ineq builds the ≤ or < constraint between lhs and rhs, matching
// strict for strictness — the "≤⁺" shorthand from spec.md §4.5.
func Ineq(strict bool, lhs, rhs pdd.Poly) Constraint {
	if strict {
		return Ult(lhs, rhs)
	}
	return Ule(lhs, rhs)
}
