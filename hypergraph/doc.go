// Package hypergraph implements directed hypergraph: nodes
// are predicate symbols plus the synthetic Entry/Exit nodes, and edges carry
// an ordered source list (possibly repeating a node) plus a constraint term.
// A NormalGraph is the restriction where every edge has exactly one source.
//
// The value-semantics and construction style (immutable after Build, no
// locking, iteration in insertion order) is grounded on
// core.Graph (core/types.go, core/api.go). Cycle detection is adapted from
// dfs/cycle.go's three-color DFS; reachability queries are adapted from
// algorithms/bfs.go's level-order walk, both regrounded on hyperedges instead
// of core.Edge.
package hypergraph
