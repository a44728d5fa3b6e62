// SPDX-License-Identifier: MIT
package hypergraph

import "errors"

// Sentinel errors for hypergraph construction and queries.
var (
	// ErrNodeNotFound indicates a reference to a node absent from the graph.
	ErrNodeNotFound = errors.New("hypergraph: node not found")

	// ErrEdgeIntoEntry indicates an attempt to add an edge targeting Entry.
	ErrEdgeIntoEntry = errors.New("hypergraph: edge into Entry is forbidden")

	// ErrEdgeOutOfExit indicates an attempt to add an edge sourced from Exit.
	ErrEdgeOutOfExit = errors.New("hypergraph: edge out of Exit is forbidden")

	// ErrNotNormal indicates ToNormalGraph was called on a graph with a multi-source edge.
	ErrNotNormal = errors.New("hypergraph: graph is not normal (edge has more than one source)")

	// ErrUnreachableNode indicates a non-Entry/Exit node has no incoming edge in a well-formed graph.
	ErrUnreachableNode = errors.New("hypergraph: node has no incoming edge")
)
