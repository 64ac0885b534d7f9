package premise

import (
	"testing"

	"github.com/go-polysat/polysat/cnstr"
	"github.com/go-polysat/polysat/pdd"
	"github.com/go-polysat/polysat/pvar"
	"github.com/go-polysat/polysat/search"
)

func newEnv(width uint) (*search.MemEnv, *pdd.Manager) {
	mgr := pdd.NewManager(pvar.NewManager(), width)
	return search.NewMemEnv(mgr), mgr
}

func TestIsForcedTrueByModel(t *testing.T) {
	env, mgr := newEnv(4)
	x := mgr.NewVar()
	env.SetValue(x.Var(), 3)
	c := env.Ule(x, mgr.Val(5))
	if !IsForcedTrue(env, c) {
		t.Fatal("3 <= 5 should be forced true by the model")
	}
	if IsForcedFalse(env, c) {
		t.Fatal("3 <= 5 should not be forced false")
	}
}

func TestIsForcedFalseByTrail(t *testing.T) {
	env, mgr := newEnv(4)
	x := mgr.NewVar()
	c := env.Odd(x)
	env.Assume(c.Not())
	if !IsForcedFalse(env, c) {
		t.Fatal("~odd(x) on the trail should force odd(x) false")
	}
}

func TestIsForcedDiseq(t *testing.T) {
	env, mgr := newEnv(4)
	x := mgr.NewVar()
	env.SetValue(x.Var(), 3)
	c, ok := IsForcedDiseq(env, x, 1)
	if !ok {
		t.Fatal("x=3 should force x != 1")
	}
	if c.Kind() != cnstr.KEqVal {
		t.Fatalf("expected an eqval witness, got %s", c)
	}
}

func TestIsNonOverflowValue(t *testing.T) {
	env, mgr := newEnv(4)
	x := mgr.NewVar()
	y := mgr.NewVar()
	env.SetValue(x.Var(), 3)
	env.SetValue(y.Var(), 2)
	if !IsNonOverflowValue(env, x, y) {
		t.Fatal("3*2=6 fits in 4 bits, should not overflow")
	}
	env.SetValue(y.Var(), 6)
	if IsNonOverflowValue(env, x, y) {
		t.Fatal("3*6=18 does not fit in 4 bits, should overflow")
	}
}

func TestIsNonOverflowFromTrail(t *testing.T) {
	env, mgr := newEnv(4)
	x := mgr.NewVar()
	y := mgr.NewVar()
	env.Assume(env.UmulOvfl(x, y).Not())
	if _, ok := IsNonOverflow(env, x, y); !ok {
		t.Fatal("a negated umul_ovfl(x,y) on the trail should witness non-overflow")
	}
	if _, ok := IsNonOverflow(env, y, x); !ok {
		t.Fatal("the witness should be found regardless of operand order")
	}
}

func TestIsNonOverflowAbsentWithoutWitness(t *testing.T) {
	env, mgr := newEnv(4)
	x := mgr.NewVar()
	y := mgr.NewVar()
	if _, ok := IsNonOverflow(env, x, y); ok {
		t.Fatal("no model values and no trail witness should not prove non-overflow")
	}
}
