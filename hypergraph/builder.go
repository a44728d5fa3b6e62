// SPDX-License-Identifier: MIT
package hypergraph

import (
	"fmt"

	"github.com/golem-chc/chcsolver/logic"
	"github.com/golem-chc/chcsolver/normalize"
)

// Builder accumulates nodes and edges before producing an immutable
// HyperGraph. Mirrors builder.BuildGraph's single-orchestrator shape
// (builder/api.go): one entry point resolves a NormalizedSystem into a graph
// deterministically, in clause-insertion order, wrapping any failure once at
// the boundary.
type Builder struct {
	nodes    []Node
	seen     map[string]bool
	edges    []HyperEdge
	incoming map[string][]int
	outgoing map[string][]int
}

// NewBuilder creates an empty Builder, pre-seeded with Entry and Exit.
func NewBuilder() *Builder {
	b := &Builder{
		seen:     make(map[string]bool),
		incoming: make(map[string][]int),
		outgoing: make(map[string][]int),
	}
	b.addNode(Entry)
	b.addNode(Exit)
	return b
}

func (b *Builder) addNode(n Node) {
	if b.seen[n.id] {
		return
	}
	b.seen[n.id] = true
	b.nodes = append(b.nodes, n)
	b.incoming[n.id] = nil
	b.outgoing[n.id] = nil
}

// AddEdge appends a hyperedge from sources to target, rejecting edges that
// violate Entry/Exit invariants (never into Entry, never out of
// Exit). Nodes referenced by sources/target are registered implicitly.
func (b *Builder) AddEdge(e HyperEdge) error {
	if e.Target.IsEntry() {
		return fmt.Errorf("Builder.AddEdge: %w", ErrEdgeIntoEntry)
	}
	for _, s := range e.Sources {
		if s.IsExit() {
			return fmt.Errorf("Builder.AddEdge: %w", ErrEdgeOutOfExit)
		}
	}

	b.addNode(e.Target)
	for _, s := range e.Sources {
		b.addNode(s)
	}

	idx := len(b.edges)
	if e.ID == "" {
		e.ID = fmt.Sprintf("e%d", idx)
	}
	b.edges = append(b.edges, e)
	b.incoming[e.Target.id] = append(b.incoming[e.Target.id], idx)

	touched := make(map[string]bool, len(e.Sources))
	for _, s := range e.Sources {
		if touched[s.id] {
			continue
		}
		touched[s.id] = true
		b.outgoing[s.id] = append(b.outgoing[s.id], idx)
	}

	return nil
}

// Build finalizes the Builder into an immutable HyperGraph.
func (b *Builder) Build() *HyperGraph {
	return &HyperGraph{
		nodes:    append([]Node(nil), b.nodes...),
		edges:    append([]HyperEdge(nil), b.edges...),
		incoming: b.incoming,
		outgoing: b.outgoing,
	}
}

// BuildFromNormalized produces a HyperGraph from a normalize.NormalizedSystem
//: one node per user predicate symbol plus Entry/Exit, and one
// edge per normalized clause, with body occurrences of True mapped to Entry
// and head False mapped to Exit.
func BuildFromNormalized(sys *normalize.NormalizedSystem) (*HyperGraph, error) {
	b := NewBuilder()

	for i, cl := range sys.Clauses {
		sources := make([]Node, 0, len(cl.Body))
		sourceVectors := make([][]logic.Term, 0, len(cl.Body))
		for _, bp := range cl.Body {
			sources = append(sources, NodeFor(bp.Symbol))
			sourceVectors = append(sourceVectors, bp.Args)
		}

		edge := HyperEdge{
			ID:            fmt.Sprintf("e%d", i),
			Sources:       sources,
			Target:        NodeFor(cl.Head.Symbol),
			Constraint:    cl.Constraint,
			SourceVectors: sourceVectors,
			TargetVector:  cl.Head.Args,
		}
		if err := b.AddEdge(edge); err != nil {
			return nil, fmt.Errorf("BuildFromNormalized: clause %d: %w", i, err)
		}
	}

	return b.Build(), nil
}
