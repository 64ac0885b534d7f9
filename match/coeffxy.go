package match

import (
	"github.com/go-polysat/polysat/cnstr"
	"github.com/go-polysat/polysat/pdd"
	"github.com/go-polysat/polysat/pvar"
)

// CoeffXY matches "p == x*y" when x is a scaled single variable
// (x = c*w for a nonzero constant c and variable w): p must be
// divisible by c, and the quotient must itself be a pure multiple of
// w. CoeffXY binds the cofactor y. Both ugt_y and ugt_z depend on this
// to pull a cofactor out from under someone else's coefficient.
func CoeffXY(x, p pdd.Poly) (y pdd.Poly, ok bool) {
	if !x.IsUnary() {
		return pdd.Poly{}, false
	}
	xy, ok := p.TryDiv(x.Hi().Val())
	if !ok {
		return pdd.Poly{}, false
	}
	coeff, rem, ok := xy.Factor(x.UnaryVar())
	if !ok || !rem.IsZero() {
		return pdd.Poly{}, false
	}
	return coeff, true
}

// VXLeXZ matches "[v] v*x ≤⁺ x*z": i's left side is v times some
// cofactor x, and i's right side is that same x (as a scaled
// variable) times a cofactor z. VXLeXZ binds x and z; it does not
// require v to divide the right side at all, only the left.
func VXLeXZ(i cnstr.Inequality, v pvar.Var) (x, z pdd.Poly, ok bool) {
	coeff, rem, ok := i.Lhs.Factor(v)
	if !ok || !rem.IsZero() {
		return pdd.Poly{}, pdd.Poly{}, false
	}
	x = coeff
	z, ok = CoeffXY(x, i.Rhs)
	if !ok {
		return pdd.Poly{}, pdd.Poly{}, false
	}
	return x, z, true
}

// VerifyVXLeXZ reconstructs the VXLeXZ binding and checks it
// reproduces i.
func VerifyVXLeXZ(i cnstr.Inequality, v pvar.Var, x, z pdd.Poly) bool {
	xx, zz, ok := VXLeXZ(i, v)
	return ok && xx.Equal(x) && zz.Equal(z)
}

// YXLeXV matches "[v] y*x ≤⁺ x*v": i's right side is v times some
// cofactor x, and i's left side is that same x (as a scaled variable)
// times a cofactor y. YXLeXV binds x and y; it does not require v to
// divide the left side at all, only the right.
func YXLeXV(i cnstr.Inequality, v pvar.Var) (x, y pdd.Poly, ok bool) {
	coeff, rem, ok := i.Rhs.Factor(v)
	if !ok || !rem.IsZero() {
		return pdd.Poly{}, pdd.Poly{}, false
	}
	x = coeff
	y, ok = CoeffXY(x, i.Lhs)
	if !ok {
		return pdd.Poly{}, pdd.Poly{}, false
	}
	return x, y, true
}

// VerifyYXLeXV reconstructs the YXLeXV binding and checks it
// reproduces i.
func VerifyYXLeXV(i cnstr.Inequality, v pvar.Var, x, y pdd.Poly) bool {
	xx, yy, ok := YXLeXV(i, v)
	return ok && xx.Equal(x) && yy.Equal(y)
}
