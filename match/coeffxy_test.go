package match

import (
	"testing"

	"github.com/go-polysat/polysat/cnstr"
)

func TestCoeffXYScaledCofactor(t *testing.T) {
	mgr := setup(4)
	x := mgr.NewVar()
	z := mgr.NewVar()
	twoX := mgr.Val(2).Mul(x)
	p := twoX.Mul(z)
	zz, ok := CoeffXY(twoX, p)
	if !ok || !zz.Equal(z) {
		t.Fatal("CoeffXY should bind z for p = (2*x)*z")
	}
}

func TestCoeffXYRejectsNonMultiple(t *testing.T) {
	mgr := setup(4)
	x := mgr.NewVar()
	y := mgr.NewVar()
	twoX := mgr.Val(2).Mul(x)
	if _, ok := CoeffXY(twoX, y); ok {
		t.Fatal("CoeffXY should reject p = y, not a multiple of x")
	}
}

func TestVXLeXZ(t *testing.T) {
	mgr := setup(4)
	v := mgr.NewVar()
	x := mgr.NewVar()
	z := mgr.NewVar()
	twoX := mgr.Val(2).Mul(x)
	lhs := v.Mul(twoX)
	rhs := twoX.Mul(z)
	i, _ := cnstr.FromULE(cnstr.Ule(lhs, rhs))
	xx, zz, ok := VXLeXZ(i, v.Var())
	if !ok || !xx.Equal(twoX) || !zz.Equal(z) {
		t.Fatal("VXLeXZ should bind x=2*x and z for v*(2*x) <= (2*x)*z")
	}
	if !VerifyVXLeXZ(i, v.Var(), xx, zz) {
		t.Fatal("VerifyVXLeXZ should reproduce the inequality")
	}
}

func TestVXLeXZRejectsWhenRhsNotMultipleOfCofactor(t *testing.T) {
	mgr := setup(4)
	v := mgr.NewVar()
	x := mgr.NewVar()
	y := mgr.NewVar()
	lhs := v.Mul(x)
	i, _ := cnstr.FromULE(cnstr.Ule(lhs, y))
	if _, _, ok := VXLeXZ(i, v.Var()); ok {
		t.Fatal("VXLeXZ should reject v*x <= y, rhs has no x factor")
	}
}

func TestYXLeXV(t *testing.T) {
	mgr := setup(4)
	v := mgr.NewVar()
	x := mgr.NewVar()
	y := mgr.NewVar()
	twoX := mgr.Val(2).Mul(x)
	lhs := y.Mul(twoX)
	rhs := v.Mul(twoX)
	i, _ := cnstr.FromULE(cnstr.Ule(lhs, rhs))
	xx, yy, ok := YXLeXV(i, v.Var())
	if !ok || !xx.Equal(twoX) || !yy.Equal(y) {
		t.Fatal("YXLeXV should bind x=2*x and y for y*(2*x) <= v*(2*x)")
	}
	if !VerifyYXLeXV(i, v.Var(), xx, yy) {
		t.Fatal("VerifyYXLeXV should reproduce the inequality")
	}
}

func TestYXLeXVRejectsWhenLhsNotMultipleOfCofactor(t *testing.T) {
	mgr := setup(4)
	v := mgr.NewVar()
	x := mgr.NewVar()
	y := mgr.NewVar()
	i, _ := cnstr.FromULE(cnstr.Ule(y, v.Mul(x)))
	if _, _, ok := YXLeXV(i, v.Var()); ok {
		t.Fatal("YXLeXV should reject y <= v*x, lhs has no x factor")
	}
}
