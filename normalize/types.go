// SPDX-License-Identifier: MIT
package normalize

import (
	"github.com/golem-chc/chcsolver/chc"
	"github.com/golem-chc/chcsolver/logic"
)

// NormalizedClause is a chc.Clause whose Head/Body predicate occurrences
// use only canonical (or primed, or fresh-occurrence) variable vectors.
// Aux records the clause's free constraint variables that do not belong
// to any canonical vector — kept for diagnostics, never renamed.
type NormalizedClause struct {
	Head       chc.PredicateInstance
	Body       []chc.PredicateInstance
	Constraint logic.Term
	Aux        []logic.Term
}

// NormalizedSystem is the Normalizer's output: the rewritten clauses plus
// the VersionManager that produced their canonical vectors.
type NormalizedSystem struct {
	Clauses  []NormalizedClause
	Versions *VersionManager
}
