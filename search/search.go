// Package search implements the trail and conflict carrier the
// saturation rule engine treats as a collaborator borrowed from the
// surrounding SAT core (spec.md §3's Search and Conflict), plus a
// minimal in-memory Env reference implementation used by this
// repository's own tests and demo binary.
//
// Modeled on gini's internal/xo.S (a driver struct holding pointers
// to its collaborators) and internal/xo.Active's dense, reuse-before-
// allocate bookkeeping.
package search

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/go-polysat/polysat/cnstr"
	"github.com/go-polysat/polysat/pdd"
	"github.com/go-polysat/polysat/pvar"
)

// BVal is a three-valued boolean trail assignment.
type BVal uint8

const (
	BUndef BVal = iota
	BTrue
	BFalse
)

func (b BVal) String() string {
	switch b {
	case BTrue:
		return "true"
	case BFalse:
		return "false"
	default:
		return "undef"
	}
}

// Entry is one position on the trail: either a boolean assignment (a
// literal forced true) or a variable decision.
type Entry struct {
	boolean    bool
	resolved   bool
	lit        cnstr.Constraint
	decidedVar pvar.Var
}

// IsBoolean reports whether this entry is a boolean (literal)
// assignment, as opposed to a variable decision.
func (e Entry) IsBoolean() bool { return e.boolean }

// IsResolved reports whether this entry has already been consumed
// during the current conflict analysis.
func (e Entry) IsResolved() bool { return e.resolved }

// Lit returns the literal assigned true by this entry. Lit panics if
// !e.IsBoolean().
func (e Entry) Lit() cnstr.Constraint {
	if !e.boolean {
		panic("search: Lit() on a variable-decision entry")
	}
	return e.lit
}

// DecidedVar returns the variable decided by this entry. DecidedVar
// panics if e.IsBoolean().
func (e Entry) DecidedVar() pvar.Var {
	if e.boolean {
		panic("search: DecidedVar() on a boolean entry")
	}
	return e.decidedVar
}

// Lemma is a finished clause tagged with the name of the rule that
// derived it.
type Lemma struct {
	Rule   string
	Clause []cnstr.Constraint
}

// Conflict is the ordered, deduplicated carrier of signed constraints
// currently driving conflict analysis. Iteration order is insertion
// order, required for deterministic saturation (spec.md §5).
type Conflict struct {
	id      uuid.UUID
	members []cnstr.Constraint
	lemmas  []Lemma
}

// NewConflict creates an empty Conflict seeded with the given
// constraints, in order, deduplicated.
func NewConflict(cs ...cnstr.Constraint) *Conflict {
	c := &Conflict{id: uuid.New()}
	c.Add(cs...)
	return c
}

// ID returns a correlation identifier for logging/tracing, unique
// per Conflict instance.
func (c *Conflict) ID() uuid.UUID { return c.id }

// Add inserts constraints into the conflict, skipping any already
// present.
func (c *Conflict) Add(cs ...cnstr.Constraint) {
	for _, nc := range cs {
		if !c.contains(nc) {
			c.members = append(c.members, nc)
		}
	}
}

func (c *Conflict) contains(nc cnstr.Constraint) bool {
	for _, m := range c.members {
		if m.Equal(nc) {
			return true
		}
	}
	return false
}

// Constraints returns the conflict's members in insertion order.
func (c *Conflict) Constraints() []cnstr.Constraint {
	return c.members
}

// AddLemma registers a finished clause derived by the named rule.
func (c *Conflict) AddLemma(rule string, clause []cnstr.Constraint) {
	c.lemmas = append(c.lemmas, Lemma{Rule: rule, Clause: clause})
}

// Lemmas returns every lemma registered so far, in the order they
// were added.
func (c *Conflict) Lemmas() []Lemma {
	return c.lemmas
}

// Env is the contract the saturation core needs from the surrounding
// SAT solver (spec.md §6's External Interfaces), narrowed to exactly
// what the rule engine calls.
type Env interface {
	cnstr.Factory

	// TryEval evaluates p under the current model, succeeding only
	// if every variable in p is committed.
	TryEval(p pdd.Poly) (uint64, bool)

	// IsCurrentlyTrue/IsCurrentlyFalse report c's semantic value
	// under the current model; both are false if c cannot be fully
	// evaluated.
	IsCurrentlyTrue(c cnstr.Constraint) bool
	IsCurrentlyFalse(c cnstr.Constraint) bool

	// BValue reports c's boolean trail assignment.
	BValue(c cnstr.Constraint) BVal

	// Trail returns the trail's entries in insertion order.
	Trail() []Entry

	// Var2PDD returns the polynomial manager governing v's width.
	Var2PDD(v pvar.Var) *pdd.Manager

	// TwoToN and PowerOf2 return 2^K and K for v's width.
	TwoToN(v pvar.Var) uint64
	PowerOf2(v pvar.Var) uint

	// Var returns the degree-1 polynomial 1*v.
	Var(v pvar.Var) pdd.Poly
}

// MemEnv is a minimal in-memory Env: a single pdd.Manager, a
// committed-value assignment, and a trail built by Assume/Decide.
// It is not part of the saturation core's public surface — Engine
// only ever depends on the Env interface — but every package's
// tests and the demo binary build one to drive the rules.
type MemEnv struct {
	cnstr.Funcs
	mgr    *pdd.Manager
	values map[pvar.Var]uint64
	trail  []Entry
}

// NewMemEnv creates an empty MemEnv over mgr.
func NewMemEnv(mgr *pdd.Manager) *MemEnv {
	return &MemEnv{mgr: mgr, values: make(map[pvar.Var]uint64)}
}

// Manager returns the underlying pdd.Manager.
func (e *MemEnv) Manager() *pdd.Manager { return e.mgr }

// SetValue commits v to val in the current model.
func (e *MemEnv) SetValue(v pvar.Var, val uint64) {
	e.values[v] = val & e.mgr.Mask()
}

func (e *MemEnv) lookup(v pvar.Var) (uint64, bool) {
	val, ok := e.values[v]
	return val, ok
}

// Assume appends c to the trail as a literal assigned true.
func (e *MemEnv) Assume(c cnstr.Constraint) {
	e.trail = append(e.trail, Entry{boolean: true, lit: c})
}

// AssumeFalse appends ~c to the trail, making c's boolean value
// false.
func (e *MemEnv) AssumeFalse(c cnstr.Constraint) {
	e.Assume(c.Not())
}

// Decide appends a variable-decision entry for v.
func (e *MemEnv) Decide(v pvar.Var) {
	e.trail = append(e.trail, Entry{boolean: false, decidedVar: v})
}

// Resolve marks the i'th trail entry as resolved (consumed by
// conflict analysis).
func (e *MemEnv) Resolve(i int) {
	e.trail[i].resolved = true
}

func (e *MemEnv) TryEval(p pdd.Poly) (uint64, bool) {
	return p.TryEval(e.lookup)
}

func (e *MemEnv) IsCurrentlyTrue(c cnstr.Constraint) bool {
	v, ok := c.Eval(e.lookup)
	return ok && v
}

func (e *MemEnv) IsCurrentlyFalse(c cnstr.Constraint) bool {
	v, ok := c.Eval(e.lookup)
	return ok && !v
}

func (e *MemEnv) BValue(c cnstr.Constraint) BVal {
	for _, entry := range e.trail {
		if !entry.boolean {
			continue
		}
		if entry.lit.Equal(c) {
			return BTrue
		}
		if entry.lit.Equal(c.Not()) {
			return BFalse
		}
	}
	return BUndef
}

func (e *MemEnv) Trail() []Entry { return e.trail }

func (e *MemEnv) Var2PDD(v pvar.Var) *pdd.Manager { return e.mgr }

func (e *MemEnv) TwoToN(v pvar.Var) uint64 { return e.mgr.TwoToN() }

func (e *MemEnv) PowerOf2(v pvar.Var) uint { return e.mgr.Width() }

func (e *MemEnv) Var(v pvar.Var) pdd.Poly { return e.mgr.VarPoly(v) }

// ErrUnknownVar is returned by reference collaborators when asked
// about a variable they have no record of.
type ErrUnknownVar pvar.Var

func (e ErrUnknownVar) Error() string {
	return fmt.Sprintf("search: unknown variable %s", pvar.Var(e))
}
