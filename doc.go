// Package chcsolver is a solver for Constrained Horn Clause (CHC)
// verification problems over quantifier-free linear integer arithmetic
// (QF_LIA). It decides SAFE, UNSAFE, or UNKNOWN for a clause system and,
// when asked, produces a machine-checkable witness.
//
// The repository is organized as a pipeline of subpackages:
//
//	logic/       — hash-consed term DAG and QF_LIA decision procedure
//	chc/         — clause and predicate-symbol model
//	normalize/   — canonical variable versioning and clause simplification
//	hypergraph/  — the directed hypergraph a normalized system compiles to
//	transform/   — transformation pipeline (simplify, chain, elim, merge)
//	engine/      — solving engines, currently Transition-Power Abstraction
//	witness/     — validity and invalidity witness types
//	validate/    — independent witness re-checker
//	solver/      — top-level orchestration (Solve)
//	render/      — hypergraph DOT/SVG rendering (Graphviz)
//	cmd/chcsolver — CLI front door (cobra)
//
// See solver.Solve for the primary entry point.
package chcsolver
