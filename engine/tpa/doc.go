// Package tpa implements the Transition-Power-Abstraction engine: a fixed-point loop over a chain of normal nodes
// Entry -> q0 -> q1 -> ... -> qm -> Exit (each qi optionally self-looping)
// that decides SAFE/UNSAFE/UNKNOWN by doubling the depth of composed
// self-loop relations each round.
//
// For each qi, the engine maintains Tr_i^(0), Tr_i^(1), Tr_i^(2), ... where
// Tr_i^(k) relates qi's canonical base vector to its canonical primed vector
// after "at most 2^k" self-loop iterations (Tr_i^(0) already includes the
// identity, so "at most 2^k" rather than "exactly"). Because logic.Context's
// existential projection (Fourier-Motzkin elimination) is exact rather than
// a widening abstraction, Tr_i^(k) here is an exact relation, not a true
// over-approximation — a deliberate simplification from the textbook
// algorithm. It still serves both roles the textbook
// algorithm asks of two separate relations: the over-approximate side used
// for the SAFE check, and the exact side used to extract a concrete UNSAFE
// witness, since an exact relation is trivially a sound over-approximation
// of itself.
//
// The refine-and-retry loop (compute level k, test SAFE/UNSAFE, else advance
// to k+1) is grounded on flow/dinic.go's BFS-level-graph-then-augment loop:
// both build a leveled structure, test a global property against it, and
// advance the level on failure, bounded by a hard iteration cap reported as
// non-convergence (Unknown here).
package tpa
