// SPDX-License-Identifier: MIT
//
// Non-mutating HyperGraph views, grounded on core/view.go's clone-then-adjust
// style: a view copies topology into a fresh Builder rather than touching the
// source, so a Transformation can derive graph' without ever
// mutating graph in place.
package hypergraph

import "github.com/golem-chc/chcsolver/logic"

// Clone returns a Builder pre-populated with every node and edge of g, ready
// for a Transformation to adjust (drop edges, rewrite constraints, add
// summarized edges) before calling Build to produce graph'.
func Clone(g *HyperGraph) *Builder {
	b := NewBuilder()
	for _, n := range g.nodes {
		b.addNode(n)
	}
	for _, e := range g.edges {
		// AddEdge re-validates Entry/Exit invariants; g already satisfies them,
		// so this only fails if a caller mutates the returned edges to
		// violate them, which is a programmer error.
		_ = b.AddEdge(copyEdge(e))
	}
	return b
}

// InducedSubgraph returns the HyperGraph restricted to edges whose target and
// every source are in keep (Entry/Exit are implicitly kept when present in
// keep). Nodes outside keep with no surviving edge are simply absent from the
// result's node list.
func InducedSubgraph(g *HyperGraph, keep map[Node]bool) *HyperGraph {
	b := NewBuilder()
	for _, e := range g.edges {
		if !keep[e.Target] {
			continue
		}
		ok := true
		for _, s := range e.Sources {
			if !keep[s] {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		_ = b.AddEdge(copyEdge(e))
	}
	return b.Build()
}

func copyEdge(e HyperEdge) HyperEdge {
	return HyperEdge{
		ID:            e.ID,
		Sources:       append([]Node(nil), e.Sources...),
		Target:        e.Target,
		Constraint:    e.Constraint,
		SourceVectors: cloneVectors(e.SourceVectors),
		TargetVector:  append([]logic.Term(nil), e.TargetVector...),
	}
}

// cloneVectors deep-copies a per-source list of variable vectors so the
// clone shares no backing array with e's originals.
func cloneVectors(vs [][]logic.Term) [][]logic.Term {
	out := make([][]logic.Term, len(vs))
	for i, v := range vs {
		out[i] = append([]logic.Term(nil), v...)
	}
	return out
}
