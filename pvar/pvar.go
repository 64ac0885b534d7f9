// Package pvar provides dense handles for polynomial variables and
// the bit-width metadata associated with each one.
//
// A Var is the polynomial-arithmetic analogue of a SAT variable: a
// small integer index into a side table, never interpreted on its
// own without consulting a Manager for its width.
package pvar

import "fmt"

// Var is a dense handle for a polynomial variable of some fixed bit
// width. The zero Var is never allocated by a Manager and is used as
// a null sentinel, matching the z.LitNull convention this package is
// modeled on.
type Var uint32

// VarNull is the sentinel for "no variable".
const VarNull Var = 0

// MaxWidth is the largest bit width this implementation supports.
// Values of Width above 64 would require arbitrary precision
// arithmetic throughout pdd and cnstr; this implementation keeps the
// hot path on native uint64 instead.
const MaxWidth = 64

func (v Var) String() string {
	return fmt.Sprintf("v%d", uint32(v))
}

// Manager tracks the bit width of every allocated Var.
type Manager struct {
	widths []uint8 // widths[0] unused (VarNull)
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{widths: make([]uint8, 1, 64)}
}

// Fresh allocates a new Var of the given bit width.
func (m *Manager) Fresh(width uint) Var {
	if width == 0 || width > MaxWidth {
		panic(fmt.Sprintf("pvar: width %d out of range (1..%d)", width, MaxWidth))
	}
	v := Var(len(m.widths))
	m.widths = append(m.widths, uint8(width))
	return v
}

// Width returns the bit width K of v.
func (m *Manager) Width(v Var) uint {
	m.checkKnown(v)
	return uint(m.widths[v])
}

// PowerOf2 returns K, the bit width of v. It is an alias for Width
// kept to match the vocabulary of the saturation rules, which talk
// about "the power of 2" modulus rather than "the width".
func (m *Manager) PowerOf2(v Var) uint {
	return m.Width(v)
}

// TwoToN returns 2^K for v's width K, as a mask-free integer. For
// K == 64 this is 0 (2^64 overflows uint64); callers that can work
// with 2^K-1 instead can use Mask, which is well defined for every
// supported width.
func (m *Manager) TwoToN(v Var) uint64 {
	k := m.Width(v)
	if k == 64 {
		return 0
	}
	return uint64(1) << k
}

// Mask returns 2^K-1 for v's width K, i.e. the bit mask that keeps a
// value in range modulo 2^K.
func (m *Manager) Mask(v Var) uint64 {
	k := m.Width(v)
	if k == 64 {
		return ^uint64(0)
	}
	return (uint64(1) << k) - 1
}

// MaxVal returns 2^K-1, the maximum representable value for v's
// width. It is the same number as Mask but named for parity with
// pdd.Poly.IsMax.
func (m *Manager) MaxVal(v Var) uint64 {
	return m.Mask(v)
}

func (m *Manager) checkKnown(v Var) {
	if v == VarNull || int(v) >= len(m.widths) {
		panic(fmt.Sprintf("pvar: unknown variable %s", v))
	}
}
