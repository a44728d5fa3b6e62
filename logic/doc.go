// Package logic is the term / logic collaborator for the CHC solver: an
// immutable, hash-consed expression DAG over quantifier-free linear integer
// arithmetic (QF_LIA), plus the handful of theory queries the rest of this
// repository treats as opaque ("external") services — satisfiability,
// model extraction, Craig interpolation, and constant-folding simplification.
//
// This package is a collaborator boundary: nothing outside it is allowed to
// look past logic.Term/logic.Context's exported surface; engine/tpa,
// transform/*, and validate only ever call Context methods.
//
// # Design
//
// A Term is a small, comparable, value-typed handle, a lightweight ID
// rather than a pointer: it identifies a node in a Context's hash-consed
// table and is meaningless outside that Context. Substitution rebuilds
// terms rather than mutating them, so no cyclic term references ever
// arise.
//
// Linear arithmetic terms are represented internally as sparse integer
// coefficient vectors (see linear.go), combined with fail-fast,
// elementwise-kernel arithmetic, and satisfiability/interpolation are
// decided by Fourier-Motzkin elimination over those vectors.
package logic
