// Package saturate implements the rule engine (C6) and the
// saturation rules themselves (C7): the driver that, for a target
// variable and a conflict, tries each rule in a fixed order until one
// fires, plus the individual arithmetic rewriting rules.
package saturate

import (
	"github.com/sirupsen/logrus"

	"github.com/go-polysat/polysat/cnstr"
	"github.com/go-polysat/polysat/lemma"
	"github.com/go-polysat/polysat/pvar"
	"github.com/go-polysat/polysat/search"
)

type ruleFn func(*Engine, pvar.Var, search.Env, *search.Conflict, cnstr.Inequality) bool

// rules is the fixed trial order from spec.md §4.4. Multiplicative
// and parity rules go first because they produce the strongest
// propagations when they apply; the overflow-guarded chaining rules
// come next since they each need a trail literal to pair with the
// matched inequality; tangent is last because it always applies in
// principle and would mask more informative derivations.
var rules = []struct {
	tag string
	fn  ruleFn
}{
	{"mul_bounds", tryMulBounds},
	{"mul_eq_1", tryMulEq1},
	{"parity", tryParity},
	{"mul_odd", tryMulOdd},
	{"factor_equality", tryFactorEquality},
	{"ugt_x", tryUgtX},
	{"ugt_y", tryUgtY},
	{"ugt_z", tryUgtZ},
	{"y_l_ax_and_x_l_z", tryChain},
	{"tangent", tryTangent},
}

// Engine drives the saturation rules. It owns the lemma builder (reset
// before every rule attempt) and the current-rule tag, both process-
// local bookkeeping per spec.md §9.
type Engine struct {
	log  logrus.FieldLogger
	b    lemma.Builder
	rule string
}

// NewEngine creates an Engine that logs rule firings to log. A nil
// log is replaced with logrus's standard logger.
func NewEngine(log logrus.FieldLogger) *Engine {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{log: log}
}

// SetRule stashes tag, the human-readable name stored with the next
// emitted lemma.
func (e *Engine) SetRule(tag string) { e.rule = tag }

// Perform tries to fire exactly one saturation rule against v and
// conflict's members, in conflict's iteration order, stopping at the
// first rule to succeed.
func (e *Engine) Perform(v pvar.Var, env search.Env, conflict *search.Conflict) bool {
	for _, c := range conflict.Constraints() {
		if e.performOn(v, c, env, conflict) {
			return true
		}
	}
	return false
}

func (e *Engine) performOn(v pvar.Var, c cnstr.Constraint, env search.Env, conflict *search.Conflict) bool {
	if !c.IsUle() {
		return false
	}
	if env.IsCurrentlyTrue(c) {
		return false
	}
	i, ok := cnstr.FromULE(c)
	if !ok {
		return false
	}
	for _, r := range rules {
		e.b.Reset()
		e.SetRule(r.tag)
		if r.fn(e, v, env, conflict, i) {
			e.log.WithFields(logrus.Fields{
				"rule":     r.tag,
				"conflict": conflict.ID(),
				"var":      v.String(),
			}).Debug("saturation rule fired")
			return true
		}
	}
	return false
}

func (e *Engine) insertEval(lit cnstr.Constraint) { e.b.InsertEval(lit) }

func (e *Engine) insert(lit cnstr.Constraint) { e.b.Insert(lit) }

func (e *Engine) finishPropagate(env search.Env, conflict *search.Conflict, consequent cnstr.Constraint) bool {
	return lemma.FinishPropagate(&e.b, env, conflict, e.rule, consequent)
}

func (e *Engine) finishConflict(env search.Env, conflict *search.Conflict, consequent cnstr.Constraint) bool {
	return lemma.FinishConflict(&e.b, env, conflict, e.rule, consequent)
}

func (e *Engine) propagate(env search.Env, conflict *search.Conflict, critical, consequent cnstr.Constraint) bool {
	return lemma.Propagate(&e.b, env, conflict, e.rule, critical, consequent)
}

func (e *Engine) addConflict(env search.Env, conflict *search.Conflict, crit1, crit2, consequent cnstr.Constraint) bool {
	return lemma.AddConflict(&e.b, env, conflict, e.rule, crit1, crit2, consequent)
}

func (e *Engine) addConflict1(env search.Env, conflict *search.Conflict, crit, consequent cnstr.Constraint) bool {
	return lemma.AddConflict1(&e.b, env, conflict, e.rule, crit, consequent)
}
