// SPDX-License-Identifier: MIT
package engine

import (
	"context"

	"github.com/golem-chc/chcsolver/hypergraph"
	"github.com/golem-chc/chcsolver/witness"
)

// Answer is the three-valued verdict a CHC solve produces.
type Answer int

const (
	Unknown Answer = iota
	Safe
	Unsafe
)

// String renders a for diagnostics and CLI output.
func (a Answer) String() string {
	switch a {
	case Safe:
		return "SAFE"
	case Unsafe:
		return "UNSAFE"
	default:
		return "UNKNOWN"
	}
}

// VerificationResult is an engine's answer plus whichever witness it was
// able to produce (: "VerificationResult::answer()",
// "::validity_witness()", "::invalidity_witness()").
type VerificationResult struct {
	answer     Answer
	validity   *witness.ValidityWitness
	invalidity *witness.InvalidityWitness
}

// NewResult constructs a VerificationResult. Exactly one of validity/
// invalidity is meaningfully populated per answer (Safe carries validity,
// Unsafe carries invalidity, Unknown carries neither); passing the wrong
// one is harmless but unused by callers.
func NewResult(answer Answer, validity *witness.ValidityWitness, invalidity *witness.InvalidityWitness) VerificationResult {
	return VerificationResult{answer: answer, validity: validity, invalidity: invalidity}
}

// Answer returns the three-valued verdict.
func (r VerificationResult) Answer() Answer { return r.answer }

// ValidityWitness returns the inductive invariant witness, if one was
// computed.
func (r VerificationResult) ValidityWitness() (*witness.ValidityWitness, bool) {
	return r.validity, r.validity != nil
}

// InvalidityWitness returns the derivation-tree witness, if one was
// computed.
func (r VerificationResult) InvalidityWitness() (*witness.InvalidityWitness, bool) {
	return r.invalidity, r.invalidity != nil
}

// Engine solves a NormalGraph for SAFE/UNSAFE/UNKNOWN (:
// "solve(normal_graph) -> VerificationResult"). Implementations must
// respect ctx cancellation at every outer refinement iteration.
type Engine interface {
	Solve(ctx context.Context, g *hypergraph.NormalGraph) (VerificationResult, error)
}
