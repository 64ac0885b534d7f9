package saturate

import (
	"testing"

	"github.com/go-polysat/polysat/pdd"
	"github.com/go-polysat/polysat/pvar"
	"github.com/go-polysat/polysat/search"
	"github.com/sirupsen/logrus"
)

func newTestEnv(width uint) (*search.MemEnv, *pdd.Manager) {
	mgr := pdd.NewManager(pvar.NewManager(), width)
	return search.NewMemEnv(mgr), mgr
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

// TestUgtXBasic reproduces spec.md §8 scenario 1: y*x <= z*x with
// x=3, y=2, z=1, so 6 <= 3 is currently false, and x*y does not
// overflow. The engine should cancel x and propagate y <= z.
func TestUgtXBasic(t *testing.T) {
	env, mgr := newTestEnv(4)
	x := mgr.NewVar()
	y := mgr.NewVar()
	z := mgr.NewVar()
	env.SetValue(x.Var(), 3)
	env.SetValue(y.Var(), 2)
	env.SetValue(z.Var(), 1)

	c := env.Ule(y.Mul(x), z.Mul(x))
	env.Assume(c)

	conflict := search.NewConflict(c)
	eng := NewEngine(quietLogger())
	if !eng.Perform(x.Var(), env, conflict) {
		t.Fatal("expected a rule to fire")
	}
	lemmas := conflict.Lemmas()
	if len(lemmas) != 1 || lemmas[0].Rule != "ugt_x" {
		t.Fatalf("expected ugt_x to fire, got %+v", lemmas)
	}
}

// TestMulEq1TwoCalls reproduces spec.md §8 scenario 2: a*x-1 <= 0
// with a=3, x=5 at width 4, so a*x-1 = 14, violating the inequality
// and giving the rule something to propagate, with a non-overflow
// witness on the trail. The rule fires twice across two Perform
// calls: first x=1, then (after applying it) a=1.
func TestMulEq1TwoCalls(t *testing.T) {
	env, mgr := newTestEnv(4)
	a := mgr.NewVar()
	x := mgr.NewVar()
	env.SetValue(a.Var(), 3)
	env.SetValue(x.Var(), 5)

	lhs := a.Mul(x).Add(mgr.Val(mgr.Mask()))
	c := env.Ule(lhs, mgr.Zero())
	env.Assume(c)
	env.Assume(env.UmulOvfl(a, x).Not())

	conflict := search.NewConflict(c)
	eng := NewEngine(quietLogger())

	if !eng.Perform(x.Var(), env, conflict) {
		t.Fatal("expected a rule to fire on the first call")
	}
	first := conflict.Lemmas()
	if len(first) != 1 || first[0].Rule != "mul_eq_1" {
		t.Fatalf("expected mul_eq_1 to fire first, got %+v", first)
	}
	applied := first[0].Clause[len(first[0].Clause)-1]
	env.Assume(applied)

	if !eng.Perform(x.Var(), env, conflict) {
		t.Fatal("expected a rule to fire on the second call")
	}
	lemmas := conflict.Lemmas()
	if len(lemmas) != 2 {
		t.Fatalf("expected two lemmas emitted across two calls, got %d", len(lemmas))
	}
	if lemmas[1].Rule != "mul_eq_1" {
		t.Fatalf("expected the second lemma to also be mul_eq_1, got %s", lemmas[1].Rule)
	}
}

// TestParityOddTimesOdd: a*x = -b with a and x both confirmed odd
// should propagate odd(b).
func TestParityOddTimesOdd(t *testing.T) {
	env, mgr := newTestEnv(4)
	a := mgr.NewVar()
	x := mgr.NewVar()
	b := mgr.NewVar()
	env.SetValue(a.Var(), 3)
	env.SetValue(x.Var(), 5)
	// b is left unassigned: odd(b) must not already be forced true by
	// the model, so the rule has something to propagate.

	lhs := a.Mul(x).Add(b)
	c := env.Ule(lhs, mgr.Zero())
	env.Assume(c)

	conflict := search.NewConflict(c)
	eng := NewEngine(quietLogger())
	if !eng.Perform(x.Var(), env, conflict) {
		t.Fatal("expected the parity rule to fire")
	}
	lemmas := conflict.Lemmas()
	if lemmas[0].Rule != "parity" {
		t.Fatalf("expected parity, got %s", lemmas[0].Rule)
	}
}

// TestMulBoundsSignCombo: a*x+b <= y with b and y forced zero and
// both a and x forced nonzero should propagate an overflow literal
// umul_ovfl for one sign combination.
func TestMulBoundsSignCombo(t *testing.T) {
	env, mgr := newTestEnv(4)
	a := mgr.NewVar()
	x := mgr.NewVar()
	env.SetValue(a.Var(), 2)
	env.SetValue(x.Var(), 3)

	lhs := a.Mul(x)
	c := env.Ule(lhs, mgr.Zero())
	env.Assume(c)

	conflict := search.NewConflict(c)
	eng := NewEngine(quietLogger())
	if !eng.Perform(x.Var(), env, conflict) {
		t.Fatal("expected mul_bounds to fire")
	}
	lemmas := conflict.Lemmas()
	if lemmas[0].Rule != "mul_bounds" {
		t.Fatalf("expected mul_bounds, got %s", lemmas[0].Rule)
	}
}

// TestTangentNonStrict: a nonlinear inequality x*x <= y that the
// current model violates (9 <= 2) should fire tangent, bounding x*x
// by y's model value.
func TestTangentNonStrict(t *testing.T) {
	env, mgr := newTestEnv(4)
	x := mgr.NewVar()
	y := mgr.NewVar()
	env.SetValue(x.Var(), 3) // 3*3=9
	env.SetValue(y.Var(), 2) // 9 <= 2 is false

	c := env.Ule(x.Mul(x), y)
	env.Assume(c)

	conflict := search.NewConflict(c)
	eng := NewEngine(quietLogger())
	if !eng.Perform(x.Var(), env, conflict) {
		t.Fatal("expected tangent to fire")
	}
	lemmas := conflict.Lemmas()
	if lemmas[0].Rule != "tangent" {
		t.Fatalf("expected tangent, got %s", lemmas[0].Rule)
	}
}

// TestUgtYChain: a violated y*x <= z*x together with a trail literal
// bounding y from below should give the engine ugt_y's conflict
// lemma, derived via VXLeXZ (y divides the left side only; x's own
// coefficient divides the right side).
func TestUgtYChain(t *testing.T) {
	env, mgr := newTestEnv(4)
	x := mgr.NewVar()
	y := mgr.NewVar()
	z := mgr.NewVar()
	zPrime := mgr.NewVar()
	env.SetValue(x.Var(), 2)
	env.SetValue(y.Var(), 5)
	env.SetValue(z.Var(), 1)
	env.SetValue(zPrime.Var(), 3)

	boundLit := env.Ule(zPrime, y)
	env.Assume(boundLit)
	env.Assume(env.UmulOvfl(x, y).Not())

	c := env.Ule(y.Mul(x), z.Mul(x))
	env.Assume(c)

	conflict := search.NewConflict(c)
	eng := NewEngine(quietLogger())
	if !eng.Perform(y.Var(), env, conflict) {
		t.Fatal("expected a rule to fire")
	}
	lemmas := conflict.Lemmas()
	if len(lemmas) != 1 || lemmas[0].Rule != "ugt_y" {
		t.Fatalf("expected ugt_y to fire, got %+v", lemmas)
	}
}

// TestUgtZChain is the dual of TestUgtYChain: the same violated
// y*x <= z*x, with a trail literal bounding z from above, should
// give the engine ugt_z's conflict lemma via YXLeXV (z divides the
// right side only; x's own coefficient divides the left side).
func TestUgtZChain(t *testing.T) {
	env, mgr := newTestEnv(4)
	x := mgr.NewVar()
	y := mgr.NewVar()
	z := mgr.NewVar()
	wPrime := mgr.NewVar()
	env.SetValue(x.Var(), 2)
	env.SetValue(y.Var(), 5)
	env.SetValue(z.Var(), 1)
	env.SetValue(wPrime.Var(), 3)

	boundLit := env.Ule(z, wPrime)
	env.Assume(boundLit)
	env.Assume(env.UmulOvfl(x, wPrime).Not())

	c := env.Ule(y.Mul(x), z.Mul(x))
	env.Assume(c)

	conflict := search.NewConflict(c)
	eng := NewEngine(quietLogger())
	if !eng.Perform(z.Var(), env, conflict) {
		t.Fatal("expected a rule to fire")
	}
	lemmas := conflict.Lemmas()
	if len(lemmas) != 1 || lemmas[0].Rule != "ugt_z" {
		t.Fatalf("expected ugt_z to fire, got %+v", lemmas)
	}
}

// TestNoRuleFiresWhenInequalityAlreadyTrue checks performOn's early
// exit: a currently-true inequality should never produce a lemma.
func TestNoRuleFiresWhenInequalityAlreadyTrue(t *testing.T) {
	env, mgr := newTestEnv(4)
	x := mgr.NewVar()
	env.SetValue(x.Var(), 1)
	c := env.Ule(x, mgr.Val(5))
	env.Assume(c)

	conflict := search.NewConflict(c)
	eng := NewEngine(quietLogger())
	if eng.Perform(x.Var(), env, conflict) {
		t.Fatal("no rule should fire against an already-true inequality")
	}
}
