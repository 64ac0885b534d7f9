// Package premise implements the premise oracle (C3): the predicates
// the saturation rules use to ask the environment whether a
// constraint or a polynomial's value is already pinned down, either
// on the boolean trail or by the current value-level model.
package premise

import (
	"math/bits"

	"github.com/go-polysat/polysat/cnstr"
	"github.com/go-polysat/polysat/pdd"
	"github.com/go-polysat/polysat/search"
)

// IsForcedTrue reports whether c is known true: either its boolean
// trail value is true, or it currently evaluates true under the
// model.
func IsForcedTrue(env search.Env, c cnstr.Constraint) bool {
	return env.BValue(c) == search.BTrue || env.IsCurrentlyTrue(c)
}

// IsForcedFalse reports whether c is known false: either its
// boolean trail value is false, or it currently evaluates false
// under the model.
func IsForcedFalse(env search.Env, c cnstr.Constraint) bool {
	return env.BValue(c) == search.BFalse || env.IsCurrentlyFalse(c)
}

// IsForcedEq reports whether p evaluates, under the current model,
// to exactly val.
func IsForcedEq(env search.Env, p pdd.Poly, val uint64) bool {
	v, ok := env.TryEval(p)
	return ok && v == val
}

// IsForcedDiseq reports whether p is forced different from val,
// returning the witnessing constraint eq(p, val) (whose negation is
// the thing that's forced true).
func IsForcedDiseq(env search.Env, p pdd.Poly, val uint64) (cnstr.Constraint, bool) {
	c := env.EqVal(p, val)
	return c, IsForcedFalse(env, c)
}

// IsForcedOdd reports whether p is forced odd, returning the
// witnessing constraint odd(p).
func IsForcedOdd(env search.Env, p pdd.Poly) (cnstr.Constraint, bool) {
	c := env.Odd(p)
	return c, IsForcedTrue(env, c)
}

// IsNonOverflowValue reports whether x*y is known, purely from the
// current value-level model, not to overflow mod 2^K.
func IsNonOverflowValue(env search.Env, x, y pdd.Poly) bool {
	xv, ok1 := env.TryEval(x)
	yv, ok2 := env.TryEval(y)
	if !ok1 || !ok2 {
		return false
	}
	width := x.Manager().Width()
	hi, lo := bits.Mul64(xv, yv)
	if width >= 64 {
		return hi == 0
	}
	return hi == 0 && lo>>width == 0
}

// IsNonOverflow reports whether x*y is known not to overflow mod
// 2^K, either because the current model proves it directly, or
// because the trail carries an unresolved negated umul_ovfl(x,y) (in
// either operand order) as a witness. On success, c is the negated
// umul_ovfl literal itself, which certifies non-overflow; c.Not() is
// the overflow literal a lemma inserts as its antecedent.
func IsNonOverflow(env search.Env, x, y pdd.Poly) (cnstr.Constraint, bool) {
	if IsNonOverflowValue(env, x, y) {
		return env.UmulOvfl(x, y).Not(), true
	}
	for _, entry := range env.Trail() {
		if !entry.IsBoolean() || entry.IsResolved() {
			continue
		}
		d := entry.Lit()
		if !d.IsUmulOvfl() || !d.IsNegative() {
			continue
		}
		p, q := d.P(), d.Q()
		if !samePair(p, q, x, y) {
			continue
		}
		return d, true
	}
	return cnstr.Constraint{}, false
}

func samePair(p, q, x, y pdd.Poly) bool {
	return (p.Equal(x) && q.Equal(y)) || (p.Equal(y) && q.Equal(x))
}
