// SPDX-License-Identifier: MIT
package solver

import "errors"

// Sentinel errors for Solve. MalformedClause surfaces from chc/normalize
// directly; WitnessUnavailable is witness.ErrWitnessUnavailable. A
// cancelled solve is not reported as an error here — it returns Unknown
// with a nil error, the same way a genuinely unresolved solve does.
var (
	// ErrUnsupportedLogic indicates a LOGIC option this repository's
	// logic.Context cannot serve.
	ErrUnsupportedLogic = errors.New("solver: unsupported logic")

	// ErrSolverFailure wraps an unexpected internal error from a pipeline
	// stage or engine that the refinement loop could not recover from.
	ErrSolverFailure = errors.New("solver: internal failure")
)
