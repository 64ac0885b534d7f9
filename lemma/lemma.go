// Package lemma implements the lemma builder (C4): the accumulator
// the saturation rules use to assemble a sound clause and hand it to
// the conflict, plus the two finalizers every rule ends on.
package lemma

import (
	"fmt"

	"github.com/go-polysat/polysat/cnstr"
	"github.com/go-polysat/polysat/premise"
	"github.com/go-polysat/polysat/search"
)

type kind uint8

const (
	evalKind kind = iota
	trailKind
)

// Builder accumulates the literals of an in-progress lemma. A literal
// inserted via InsertEval is a value-level witness, validated against
// the current model (or trail, per is_forced_false) at Build time; a
// literal inserted via Insert is a stronger claim about the trail
// itself, validated strictly against its boolean value. Violating
// either claim is a rule-engine bug, not a runtime condition callers
// should recover from, so Build panics rather than erroring.
type Builder struct {
	lits []cnstr.Constraint
	kind []kind
}

// Reset discards any accumulated literals, preparing the builder for
// the next rule invocation.
func (b *Builder) Reset() {
	b.lits = b.lits[:0]
	b.kind = b.kind[:0]
}

// InsertEval records lit as a literal expected to be forced false
// (by trail or by the current model).
func (b *Builder) InsertEval(lit cnstr.Constraint) {
	b.lits = append(b.lits, lit)
	b.kind = append(b.kind, evalKind)
}

// Insert records lit as a literal that must be false on the boolean
// trail specifically.
func (b *Builder) Insert(lit cnstr.Constraint) {
	b.lits = append(b.lits, lit)
	b.kind = append(b.kind, trailKind)
}

// Build validates every recorded literal against env and returns the
// accumulated clause in insertion order. Build panics if any literal
// fails the claim it was inserted under.
func (b *Builder) Build(env search.Env) []cnstr.Constraint {
	for i, lit := range b.lits {
		switch b.kind[i] {
		case evalKind:
			if !premise.IsForcedFalse(env, lit) {
				panic(fmt.Sprintf("lemma: %s inserted as eval-false but not forced false", lit))
			}
		case trailKind:
			if env.BValue(lit) != search.BFalse {
				panic(fmt.Sprintf("lemma: %s inserted as trail-false but bvalue is %s", lit, env.BValue(lit)))
			}
		}
	}
	out := make([]cnstr.Constraint, len(b.lits))
	copy(out, b.lits)
	return out
}

// FinishPropagate finalizes b — whatever antecedents the rule has
// already inserted — as a propagation lemma with consequent as the
// propagated literal. It returns false without modifying conflict if
// consequent is already forced true (the propagation would be
// redundant).
//
// Invariant: every literal in the built clause except consequent must
// be forced false under env — enforced by Build.
func FinishPropagate(b *Builder, env search.Env, conflict *search.Conflict, rule string, consequent cnstr.Constraint) bool {
	if premise.IsForcedTrue(env, consequent) {
		return false
	}
	clause := append(b.Build(env), consequent)
	conflict.AddLemma(rule, clause)
	return true
}

// FinishConflict finalizes b as a conflict lemma with consequent as
// the newly derived false literal that completes the conflict. It
// returns false without modifying conflict if consequent is not
// forced false, or is already known true on the trail.
func FinishConflict(b *Builder, env search.Env, conflict *search.Conflict, rule string, consequent cnstr.Constraint) bool {
	if !premise.IsForcedFalse(env, consequent) {
		return false
	}
	if env.BValue(consequent) == search.BTrue {
		return false
	}
	b.InsertEval(consequent)
	conflict.AddLemma(rule, b.Build(env))
	return true
}

// Propagate is the common case of FinishPropagate: a single critical
// antecedent, inserted as an eval-false literal.
func Propagate(b *Builder, env search.Env, conflict *search.Conflict, rule string, critical cnstr.Constraint, consequent cnstr.Constraint) bool {
	b.InsertEval(critical.Not())
	return FinishPropagate(b, env, conflict, rule, consequent)
}

// AddConflict is the common case of FinishConflict: one or two
// critical antecedents (deduplicated when they denote the same
// atom), inserted as trail-false literals.
func AddConflict(b *Builder, env search.Env, conflict *search.Conflict, rule string, crit1, crit2 cnstr.Constraint, consequent cnstr.Constraint) bool {
	b.Insert(crit1.Not())
	if !crit1.Equal(crit2) {
		b.Insert(crit2.Not())
	}
	return FinishConflict(b, env, conflict, rule, consequent)
}

// AddConflict1 is AddConflict with a single critical antecedent.
func AddConflict1(b *Builder, env search.Env, conflict *search.Conflict, rule string, crit cnstr.Constraint, consequent cnstr.Constraint) bool {
	return AddConflict(b, env, conflict, rule, crit, crit, consequent)
}
