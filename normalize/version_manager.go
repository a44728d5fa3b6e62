// SPDX-License-Identifier: MIT
package normalize

import (
	"fmt"

	"github.com/golem-chc/chcsolver/chc"
	"github.com/golem-chc/chcsolver/logic"
)

// VersionManager maps a predicate symbol's identity to its base ("source"),
// primed ("target"), and fresh-occurrence variable vectors. It is the
// single owner of fresh-variable minting for the Normalizer; the vectors it
// mints reach the hypergraph through the NormalizedSystem's clauses.
type VersionManager struct {
	ctx *logic.Context

	base   map[string][]logic.Term
	primed map[string][]logic.Term
	sigs   map[string][]logic.Sort
}

// NewVersionManager creates an empty VersionManager over ctx.
func NewVersionManager(ctx *logic.Context) *VersionManager {
	return &VersionManager{
		ctx:    ctx,
		base:   make(map[string][]logic.Term),
		primed: make(map[string][]logic.Term),
		sigs:   make(map[string][]logic.Sort),
	}
}

// Register allocates symbol's base and primed vectors if not already
// present. Re-registering with a different signature is an error: the
// graph built from clauses that disagree about a symbol's arity would be
// ill-formed.
func (vm *VersionManager) Register(symbol chc.PredicateSymbol) error {
	if existing, ok := vm.sigs[symbol.Name]; ok {
		if !sigEqual(existing, symbol.Sig) {
			return fmt.Errorf("VersionManager.Register(%q): conflicting signature", symbol.Name)
		}
		return nil
	}
	vm.sigs[symbol.Name] = append([]logic.Sort(nil), symbol.Sig...)
	vm.base[symbol.Name] = vm.freshVector(symbol.Name, symbol.Sig)
	vm.primed[symbol.Name] = vm.freshVector(symbol.Name+"'", symbol.Sig)
	return nil
}

func (vm *VersionManager) freshVector(label string, sig []logic.Sort) []logic.Term {
	out := make([]logic.Term, len(sig))
	for i := range sig {
		out[i] = vm.ctx.NewVar(fmt.Sprintf("%s_%d", label, i))
	}
	return out
}

// Base returns symbol's canonical base (state) vector.
func (vm *VersionManager) Base(symbol chc.PredicateSymbol) []logic.Term {
	return vm.base[symbol.Name]
}

// Primed returns symbol's canonical primed (next-state) vector.
func (vm *VersionManager) Primed(symbol chc.PredicateSymbol) []logic.Term {
	return vm.primed[symbol.Name]
}

// FreshVector allocates a new vector with symbol's sort signature, for a
// body occurrence of symbol beyond the first within one clause. It is NOT tracked as Base/Primed: it exists only to let the
// clause's constraint bind it to the desired argument values. The
// hypergraph edge built from the clause records it among its SourceVectors.
func (vm *VersionManager) FreshVector(symbol chc.PredicateSymbol) []logic.Term {
	return vm.freshVector(symbol.Name+"#dup", vm.sigs[symbol.Name])
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
