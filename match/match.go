// Package match implements the pattern matchers (C5): syntactic
// recognizers for the polynomial-inequality shapes the saturation
// rules key off of, each paired with a verifier that reconstructs the
// shape from the matcher's bindings and checks it reproduces the
// original inequality exactly.
package match

import (
	"github.com/go-polysat/polysat/cnstr"
	"github.com/go-polysat/polysat/pdd"
	"github.com/go-polysat/polysat/pvar"
)

// IsVar reports whether p is exactly the bare variable v.
func IsVar(p pdd.Poly, v pvar.Var) bool {
	return p.IsVar() && p.Var() == v
}

// XLeY matches "x ≤⁺ Y": i's left side is exactly the variable x.
// XLeY binds y := i.Rhs.
func XLeY(i cnstr.Inequality, x pvar.Var) (y pdd.Poly, ok bool) {
	if !IsVar(i.Lhs, x) {
		return pdd.Poly{}, false
	}
	return i.Rhs, true
}

// VerifyXLeY reconstructs the XLeY binding and checks it reproduces i.
func VerifyXLeY(i cnstr.Inequality, x pvar.Var, y pdd.Poly) bool {
	yy, ok := XLeY(i, x)
	return ok && yy.Equal(y)
}

// YLeAX matches "Y ≤⁺ a·x": i's right side has degree 1 in x with a
// zero remainder. YLeAX binds a (the coefficient) and y := i.Lhs.
func YLeAX(i cnstr.Inequality, x pvar.Var) (a, y pdd.Poly, ok bool) {
	coeff, rem, ok := i.Rhs.Factor(x)
	if !ok || !rem.IsZero() {
		return pdd.Poly{}, pdd.Poly{}, false
	}
	return coeff, i.Lhs, true
}

// VerifyYLeAX reconstructs the YLeAX binding and checks it
// reproduces i.
func VerifyYLeAX(i cnstr.Inequality, x pvar.Var, a, y pdd.Poly) bool {
	aa, yy, ok := YLeAX(i, x)
	return ok && aa.Equal(a) && yy.Equal(y)
}

// AXLeY matches "a·x ≤⁺ Y": i's left side has degree 1 in x with a
// zero remainder. AXLeY binds a and y := i.Rhs.
func AXLeY(i cnstr.Inequality, x pvar.Var) (a, y pdd.Poly, ok bool) {
	coeff, rem, ok := i.Lhs.Factor(x)
	if !ok || !rem.IsZero() {
		return pdd.Poly{}, pdd.Poly{}, false
	}
	return coeff, i.Rhs, true
}

// VerifyAXLeY reconstructs the AXLeY binding and checks it
// reproduces i.
func VerifyAXLeY(i cnstr.Inequality, x pvar.Var, a, y pdd.Poly) bool {
	aa, yy, ok := AXLeY(i, x)
	return ok && aa.Equal(a) && yy.Equal(y)
}

// AXBLeY matches "a·x + b ≤⁺ Y": i's left side has degree exactly 1
// in x, for any remainder b. AXBLeY binds a, b and y := i.Rhs.
func AXBLeY(i cnstr.Inequality, x pvar.Var) (a, b, y pdd.Poly, ok bool) {
	coeff, rem, ok := i.Lhs.Factor(x)
	if !ok {
		return pdd.Poly{}, pdd.Poly{}, pdd.Poly{}, false
	}
	return coeff, rem, i.Rhs, true
}

// VerifyAXBLeY reconstructs the AXBLeY binding and checks it
// reproduces i.
func VerifyAXBLeY(i cnstr.Inequality, x pvar.Var, a, b, y pdd.Poly) bool {
	aa, bb, yy, ok := AXBLeY(i, x)
	return ok && aa.Equal(a) && bb.Equal(b) && yy.Equal(y)
}

// YXLeZX matches "y·x ≤⁺ z·x": both sides of i have degree exactly 1
// in x with a zero remainder, i.e. both sides are themselves
// multiples of x. YXLeZX binds the two cofactors y := lhs/x and
// z := rhs/x.
func YXLeZX(i cnstr.Inequality, x pvar.Var) (y, z pdd.Poly, ok bool) {
	lc, lrem, lok := i.Lhs.Factor(x)
	if !lok || !lrem.IsZero() {
		return pdd.Poly{}, pdd.Poly{}, false
	}
	rc, rrem, rok := i.Rhs.Factor(x)
	if !rok || !rrem.IsZero() {
		return pdd.Poly{}, pdd.Poly{}, false
	}
	return lc, rc, true
}

// VerifyYXLeZX reconstructs the YXLeZX binding and checks it
// reproduces i.
func VerifyYXLeZX(i cnstr.Inequality, x pvar.Var, y, z pdd.Poly) bool {
	yy, zz, ok := YXLeZX(i, x)
	return ok && yy.Equal(y) && zz.Equal(z)
}
