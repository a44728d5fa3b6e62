// SPDX-License-Identifier: MIT

// Package validate independently re-checks a VerificationResult's witness
// against the original chc.ClauseSystem. It reaches only logic.Context's
// exported surface, the public accessors of chc/witness/engine, and the
// public normalize and hypergraph builders (to rebuild the original graph)
// — never engine- or transform-internal state.
package validate
