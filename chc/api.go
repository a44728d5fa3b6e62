// SPDX-License-Identifier: MIT
package chc

import (
	"fmt"

	"github.com/golem-chc/chcsolver/logic"
)

// AddUninterpretedPredicate registers symbol's signature with the system.
// Registering True/False is rejected with ErrReservedName; re-registering an
// existing name with a different signature is rejected with
// ErrSignatureConflict; re-registering with an identical
// signature is idempotent.
func (cs *ClauseSystem) AddUninterpretedPredicate(symbol PredicateSymbol) error {
	if symbol.IsDistinguished() {
		return fmt.Errorf("AddUninterpretedPredicate(%q): %w", symbol.Name, ErrReservedName)
	}
	if existing, ok := cs.symbols[symbol.Name]; ok {
		if !sigEqual(existing.Sig, symbol.Sig) {
			return fmt.Errorf("AddUninterpretedPredicate(%q): %w", symbol.Name, ErrSignatureConflict)
		}
		return nil
	}
	cs.symbols[symbol.Name] = symbol
	return nil
}

func sigEqual(a, b []logic.Sort) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// AddClause appends a Horn clause `(∧ body) ∧ constraint ⇒ head` to the
// system, after validating that every non-distinguished predicate instance
// refers to a registered symbol with matching arity.
//
// Per edge cases, the clause is validated but never
// dropped here — tautology/triviality pruning (head == True, body
// containing False/True) is the Normalizer's job, not ingestion's, so that
// ClauseSystem.Clauses() always reflects exactly what the caller added.
func (cs *ClauseSystem) AddClause(head PredicateInstance, body []PredicateInstance, constraint logic.Term) error {
	if err := cs.checkInstance(head, true); err != nil {
		return fmt.Errorf("AddClause: head: %w", err)
	}
	for i, b := range body {
		if err := cs.checkInstance(b, false); err != nil {
			return fmt.Errorf("AddClause: body[%d]: %w", i, err)
		}
	}
	if constraint.IsZero() {
		return fmt.Errorf("AddClause: %w: nil constraint", ErrMalformedClause)
	}

	cs.clauses = append(cs.clauses, Clause{
		Head:       head,
		Body:       append([]PredicateInstance(nil), body...),
		Constraint: constraint,
	})
	return nil
}

func (cs *ClauseSystem) checkInstance(pi PredicateInstance, headPosition bool) error {
	if pi.Symbol.Name == trueName || pi.Symbol.Name == falseName {
		return nil
	}
	sym, ok := cs.symbols[pi.Symbol.Name]
	if !ok {
		return fmt.Errorf("%q: %w", pi.Symbol.Name, ErrUnknownPredicate)
	}
	if len(pi.Args) != sym.Arity() {
		return fmt.Errorf("%q: %w", pi.Symbol.Name, ErrArityMismatch)
	}
	return nil
}
