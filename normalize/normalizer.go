// SPDX-License-Identifier: MIT
package normalize

import (
	"fmt"

	"github.com/golem-chc/chcsolver/chc"
	"github.com/golem-chc/chcsolver/logic"
)

// Normalizer rewrites a chc.ClauseSystem into a NormalizedSystem following
// four-step algorithm.
type Normalizer struct {
	ctx *logic.Context
}

// NewNormalizer creates a Normalizer over ctx.
func NewNormalizer(ctx *logic.Context) *Normalizer {
	return &Normalizer{ctx: ctx}
}

// Normalize runs the normalization algorithm over every clause of system.
//
// Steps:
//  1. Register each predicate symbol's canonical base/primed vectors.
//  2. Per clause, rewrite every predicate occurrence to canonical form,
//     folding shape mismatches into fresh equalities in the constraint.
//  3. Collect constraint free variables outside any canonical vector as Aux.
//  4. Drop tautologies (head == True) and trivially-safe clauses (False in body).
func (n *Normalizer) Normalize(system *chc.ClauseSystem) (*NormalizedSystem, error) {
	vm := NewVersionManager(n.ctx)
	for _, sym := range system.Predicates() {
		if err := vm.Register(sym); err != nil {
			return nil, fmt.Errorf("Normalize: %w: %v", chc.ErrMalformedClause, err)
		}
	}

	out := make([]NormalizedClause, 0, len(system.Clauses()))
	for _, cl := range system.Clauses() {
		nc, skip, err := n.normalizeClause(vm, cl)
		if err != nil {
			return nil, err
		}
		if skip {
			continue
		}
		out = append(out, nc)
	}

	return &NormalizedSystem{Clauses: out, Versions: vm}, nil
}

func (n *Normalizer) normalizeClause(vm *VersionManager, cl chc.Clause) (NormalizedClause, bool, error) {
	// Tautology: head is True.
	if cl.Head.Symbol.Name == chc.True.Name {
		return NormalizedClause{}, true, nil
	}

	filteredBody := make([]chc.PredicateInstance, 0, len(cl.Body))
	for _, b := range cl.Body {
		switch b.Symbol.Name {
		case chc.False.Name:
			// Trivially safe: body can never hold.
			return NormalizedClause{}, true, nil
		case chc.True.Name:
			continue // "body containing True is equivalent to removing it"
		default:
			filteredBody = append(filteredBody, b)
		}
	}
	if len(filteredBody) == 0 {
		filteredBody = []chc.PredicateInstance{chc.TrueInstance()}
	}

	constraintParts := []logic.Term{cl.Constraint}
	canonVars := make(map[logic.Term]bool)

	occurrences := make(map[string]int, len(filteredBody))
	newBody := make([]chc.PredicateInstance, 0, len(filteredBody))
	for _, b := range filteredBody {
		if b.Symbol.Name == chc.True.Name {
			newBody = append(newBody, b)
			continue
		}
		occurrences[b.Symbol.Name]++
		var canon []logic.Term
		if occurrences[b.Symbol.Name] == 1 {
			canon = vm.Base(b.Symbol)
		} else {
			canon = vm.FreshVector(b.Symbol)
		}
		eq, err := bindCanonical(n.ctx, canon, b.Args)
		if err != nil {
			return NormalizedClause{}, false, fmt.Errorf("normalizeClause: %w", err)
		}
		constraintParts = append(constraintParts, eq...)
		for _, v := range canon {
			canonVars[v] = true
		}
		newBody = append(newBody, chc.PredicateInstance{Symbol: b.Symbol, Args: canon})
	}

	var newHead chc.PredicateInstance
	if cl.Head.Symbol.Name == chc.False.Name {
		newHead = cl.Head
	} else {
		canon := vm.Primed(cl.Head.Symbol)
		eq, err := bindCanonical(n.ctx, canon, cl.Head.Args)
		if err != nil {
			return NormalizedClause{}, false, fmt.Errorf("normalizeClause: %w", err)
		}
		constraintParts = append(constraintParts, eq...)
		for _, v := range canon {
			canonVars[v] = true
		}
		newHead = chc.PredicateInstance{Symbol: cl.Head.Symbol, Args: canon}
	}

	constraint := n.ctx.And(constraintParts...)
	aux := make([]logic.Term, 0)
	for _, v := range n.ctx.FreeVars(constraint) {
		if !canonVars[v] {
			aux = append(aux, v)
		}
	}

	return NormalizedClause{Head: newHead, Body: newBody, Constraint: constraint, Aux: aux}, false, nil
}

// bindCanonical returns the equalities needed to bind canon to args,
// skipping any position that already is canon.
func bindCanonical(ctx *logic.Context, canon, args []logic.Term) ([]logic.Term, error) {
	if len(canon) != len(args) {
		return nil, fmt.Errorf("%w: canonical vector has %d slots, got %d args", chc.ErrArityMismatch, len(canon), len(args))
	}
	var eqs []logic.Term
	for i, arg := range args {
		if arg != canon[i] {
			eqs = append(eqs, ctx.Eq(canon[i], arg))
		}
	}
	return eqs, nil
}
