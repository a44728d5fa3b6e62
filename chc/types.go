// SPDX-License-Identifier: MIT
package chc

import "github.com/golem-chc/chcsolver/logic"

// reserved predicate names; see True/False below.
const (
	trueName  = "true"
	falseName = "false"
)

// PredicateSymbol is a name plus an argument-sort signature. Every
// non-distinguished symbol returns bool.
type PredicateSymbol struct {
	Name string
	Sig  []logic.Sort
}

// Arity returns the number of arguments the symbol expects.
func (s PredicateSymbol) Arity() int { return len(s.Sig) }

// True is the distinguished symbol denoting the entry (⊤). It is never
// user-owned: AddUninterpretedPredicate rejects its name.
var True = PredicateSymbol{Name: trueName}

// False is the distinguished symbol denoting the query (⊥).
var False = PredicateSymbol{Name: falseName}

// IsDistinguished reports whether s is True or False.
func (s PredicateSymbol) IsDistinguished() bool {
	return s.Name == trueName || s.Name == falseName
}

// PredicateInstance is a PredicateSymbol applied to an ordered argument list.
type PredicateInstance struct {
	Symbol PredicateSymbol
	Args   []logic.Term
}

// TrueInstance is the nullary instance of True, used as a clause body element
// meaning "entry".
func TrueInstance() PredicateInstance { return PredicateInstance{Symbol: True} }

// FalseInstance is the nullary instance of False, used as a clause head
// meaning "query".
func FalseInstance() PredicateInstance { return PredicateInstance{Symbol: False} }

// Clause is a Horn clause: (∧ body) ∧ constraint ⇒ head.
type Clause struct {
	Head       PredicateInstance
	Body       []PredicateInstance
	Constraint logic.Term
}

// ClauseSystem collects predicate declarations and clauses over a shared
// logic.Context, per clause ingestion API.
type ClauseSystem struct {
	Ctx *logic.Context

	symbols map[string]PredicateSymbol
	clauses []Clause
}

// NewClauseSystem creates an empty ClauseSystem over ctx.
func NewClauseSystem(ctx *logic.Context) *ClauseSystem {
	return &ClauseSystem{
		Ctx:     ctx,
		symbols: make(map[string]PredicateSymbol),
	}
}

// Clauses returns the clauses added so far, in insertion order.
func (cs *ClauseSystem) Clauses() []Clause {
	return append([]Clause(nil), cs.clauses...)
}

// Predicates returns the registered user predicate symbols (True/False excluded).
func (cs *ClauseSystem) Predicates() []PredicateSymbol {
	out := make([]PredicateSymbol, 0, len(cs.symbols))
	for _, s := range cs.symbols {
		out = append(out, s)
	}
	return out
}

// Symbol looks up a registered predicate symbol by name.
func (cs *ClauseSystem) Symbol(name string) (PredicateSymbol, bool) {
	s, ok := cs.symbols[name]
	return s, ok
}
