// SPDX-License-Identifier: MIT
package witness

import "errors"

// Sentinel errors for witness construction and validation.
var (
	// ErrWitnessUnavailable indicates a witness was requested but not produced;
	// not itself a solve failure.
	ErrWitnessUnavailable = errors.New("witness: unavailable")

	// ErrMissingInterpretation indicates a ValidityWitness lacks a required
	// predicate interpretation.
	ErrMissingInterpretation = errors.New("witness: missing predicate interpretation")

	// ErrDanglingNode indicates an InvalidityWitness arena index is out of range.
	ErrDanglingNode = errors.New("witness: dangling derivation node reference")

	// ErrMalformedDerivation indicates a derivation tree violates its shape
	// invariant (root targets Exit, leaves target Entry).
	ErrMalformedDerivation = errors.New("witness: malformed derivation tree")
)
