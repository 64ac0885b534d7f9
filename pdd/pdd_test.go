package pdd

import (
	"testing"

	"github.com/go-polysat/polysat/pvar"
)

func newManager(width uint) (*Manager, *pvar.Manager) {
	pvars := pvar.NewManager()
	return NewManager(pvars, width), pvars
}

func TestArithmeticWrapsModulo(t *testing.T) {
	mgr, _ := newManager(4)
	x := mgr.NewVar()
	sum := x.Add(mgr.Val(1))
	val, ok := sum.TryEval(func(v pvar.Var) (uint64, bool) {
		if v == x.Var() {
			return 15, true
		}
		return 0, false
	})
	if !ok || val != 0 {
		t.Fatalf("15+1 mod 16 should be 0, got %d, ok=%v", val, ok)
	}
}

func TestFactorRoundTrips(t *testing.T) {
	mgr, _ := newManager(4)
	x := mgr.NewVar()
	y := mgr.NewVar()
	p := mgr.Val(3).Mul(x).Add(y)

	a, b, ok := p.Factor(x.Var())
	if !ok {
		t.Fatal("expected Factor to succeed on a degree-1 polynomial")
	}
	if !a.Equal(mgr.Val(3)) {
		t.Fatalf("expected coefficient 3, got %s", a)
	}
	if !b.Equal(y) {
		t.Fatalf("expected remainder y, got %s", b)
	}
}

func TestFactorFailsOnHigherDegree(t *testing.T) {
	mgr, _ := newManager(4)
	x := mgr.NewVar()
	if _, _, ok := x.Mul(x).Factor(x.Var()); ok {
		t.Fatal("Factor should fail on x^2, degree 2")
	}
}

func TestTryDivExactOdd(t *testing.T) {
	mgr, _ := newManager(4)
	// 3 is invertible mod 16; 9/3 should be 3.
	p := mgr.Val(9)
	q, ok := p.TryDiv(3)
	if !ok || !q.Equal(mgr.Val(3)) {
		t.Fatalf("expected 9/3=3, got %s, ok=%v", q, ok)
	}
}

func TestTryDivExactEven(t *testing.T) {
	mgr, _ := newManager(4)
	// 12 = 4*3, dividing by 4 should give 3.
	p := mgr.Val(12)
	q, ok := p.TryDiv(4)
	if !ok || !q.Equal(mgr.Val(3)) {
		t.Fatalf("expected 12/4=3, got %s, ok=%v", q, ok)
	}
}

func TestTryDivFailsWhenNotExact(t *testing.T) {
	mgr, _ := newManager(4)
	// 6 is not divisible by 4 exactly in this ring (6 = 4*1 + 2).
	p := mgr.Val(6)
	if _, ok := p.TryDiv(4); ok {
		t.Fatal("6/4 should not divide exactly mod 16")
	}
}

func TestTryDivByZeroFails(t *testing.T) {
	mgr, _ := newManager(4)
	if _, ok := mgr.Val(5).TryDiv(0); ok {
		t.Fatal("dividing by 0 should always fail")
	}
}

func TestIsVarIsVal(t *testing.T) {
	mgr, _ := newManager(4)
	x := mgr.NewVar()
	if !x.IsVar() {
		t.Fatal("a fresh variable polynomial should report IsVar")
	}
	if mgr.Val(1).IsVar() {
		t.Fatal("a constant should not report IsVar")
	}
	if !mgr.Val(7).IsVal() {
		t.Fatal("a constant should report IsVal")
	}
}

func TestDegreeCountsRepeatedFactors(t *testing.T) {
	mgr, _ := newManager(4)
	x := mgr.NewVar()
	y := mgr.NewVar()
	p := x.Mul(x).Mul(y)
	if p.Degree(x.Var()) != 2 {
		t.Fatalf("expected degree 2 in x, got %d", p.Degree(x.Var()))
	}
	if p.Degree(y.Var()) != 1 {
		t.Fatalf("expected degree 1 in y, got %d", p.Degree(y.Var()))
	}
}
