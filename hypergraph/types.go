// SPDX-License-Identifier: MIT
package hypergraph

import (
	"sort"

	"github.com/golem-chc/chcsolver/chc"
	"github.com/golem-chc/chcsolver/logic"
)

const (
	entryID = "\x00entry"
	exitID  = "\x00exit"
)

// Node identifies a predicate symbol within a HyperGraph, or one of the two
// synthetic nodes Entry/Exit. Node is a small value type,
// comparable with ==, safe to use as a map key.
type Node struct {
	id string
}

// Entry is the distinguished node corresponding to chc.True: the source of
// every fact edge.
var Entry = Node{id: entryID}

// Exit is the distinguished node corresponding to chc.False: the target of
// every query edge.
var Exit = Node{id: exitID}

// NodeFor returns the Node identifying a user predicate symbol.
func NodeFor(symbol chc.PredicateSymbol) Node {
	switch symbol.Name {
	case chc.True.Name:
		return Entry
	case chc.False.Name:
		return Exit
	default:
		return Node{id: symbol.Name}
	}
}

// IsEntry reports whether n is the distinguished Entry node.
func (n Node) IsEntry() bool { return n.id == entryID }

// IsExit reports whether n is the distinguished Exit node.
func (n Node) IsExit() bool { return n.id == exitID }

// String returns a human-readable label: "Entry", "Exit", or the predicate name.
func (n Node) String() string {
	switch n.id {
	case entryID:
		return "Entry"
	case exitID:
		return "Exit"
	default:
		return n.id
	}
}

// HyperEdge is a directed hyperedge: an ordered, possibly-repeating list of
// source nodes, a single target node, and the constraint term relating the
// source vectors' primed/base variables to the target's.
//
// SourceVectors[i] and TargetVector record the exact canonical (or fresh, or
// primed) variable vector normalize.Normalizer bound to Sources[i] and
// Target respectively — nil for an Entry source or an Exit target, which own
// no variables. Transformations that compose edges (chain summarization,
// node elimination) need these vectors to rename one edge's target vector
// onto the next edge's matching source vector before conjoining and
// existentially projecting the shared node away.
type HyperEdge struct {
	ID            string
	Sources       []Node
	Target        Node
	Constraint    logic.Term
	SourceVectors [][]logic.Term
	TargetVector  []logic.Term
}

// Arity returns the number of sources (a NormalGraph edge always has Arity 1).
func (e HyperEdge) Arity() int { return len(e.Sources) }

// HyperGraph is an immutable-after-construction directed hypergraph: a set of
// nodes plus an ordered list of edges, indexed for O(1) incoming/outgoing
// lookups. Follows core.Graph's value-object style (core/types.go) but drops
// its mutability and RWMutex guards: a HyperGraph is built once by Builder
// and never mutated afterward.
type HyperGraph struct {
	nodes []Node
	edges []HyperEdge

	// incoming[n.id] / outgoing[n.id] hold indices into edges, in insertion order.
	incoming map[string][]int
	outgoing map[string][]int
}

// Nodes returns the graph's nodes, in insertion order (Entry and Exit first).
func (g *HyperGraph) Nodes() []Node {
	return append([]Node(nil), g.nodes...)
}

// Edges returns the graph's edges, in insertion order.
func (g *HyperGraph) Edges() []HyperEdge {
	return append([]HyperEdge(nil), g.edges...)
}

// HasNode reports whether n belongs to the graph.
func (g *HyperGraph) HasNode(n Node) bool {
	_, ok := g.incoming[n.id]
	return ok
}

// Incoming returns the edges targeting n, in insertion order.
func (g *HyperGraph) Incoming(n Node) []HyperEdge {
	idx := g.incoming[n.id]
	out := make([]HyperEdge, len(idx))
	for i, e := range idx {
		out[i] = g.edges[e]
	}
	return out
}

// Outgoing returns the edges sourced from n (once per edge, even if n
// repeats within that edge's source list), in insertion order.
func (g *HyperGraph) Outgoing(n Node) []HyperEdge {
	idx := g.outgoing[n.id]
	out := make([]HyperEdge, len(idx))
	for i, e := range idx {
		out[i] = g.edges[e]
	}
	return out
}

// InDegree returns len(Incoming(n)).
func (g *HyperGraph) InDegree(n Node) int { return len(g.incoming[n.id]) }

// OutDegree returns len(Outgoing(n)).
func (g *HyperGraph) OutDegree(n Node) int { return len(g.outgoing[n.id]) }

// IsNormal reports whether every edge has exactly one source.
func (g *HyperGraph) IsNormal() bool {
	for _, e := range g.edges {
		if len(e.Sources) != 1 {
			return false
		}
	}
	return true
}

// ToNormalGraph returns a NormalGraph view of g, requiring IsNormal().
func (g *HyperGraph) ToNormalGraph() (*NormalGraph, error) {
	if !g.IsNormal() {
		return nil, ErrNotNormal
	}
	return &NormalGraph{g: g}, nil
}

// sortedNodeIDs returns a deterministic ordering of node ids; Entry sorts
// first, Exit last.
func sortedNodeIDs(nodes []Node) []string {
	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if ids[i] == entryID {
			return ids[j] != entryID
		}
		if ids[j] == entryID {
			return false
		}
		if ids[i] == exitID {
			return false
		}
		if ids[j] == exitID {
			return true
		}
		return ids[i] < ids[j]
	})
	return ids
}

// NormalGraph is a HyperGraph known to have exactly one source per edge; it
// admits the path-based reasoning (single predecessor/successor walks) used
// by the TPA engine and the chain-oriented transformations.
type NormalGraph struct {
	g *HyperGraph
}

// Underlying returns the NormalGraph's backing HyperGraph.
func (n *NormalGraph) Underlying() *HyperGraph { return n.g }

// Source returns e's single source node. Panics if e has Arity() != 1;
// callers only ever obtain edges from a NormalGraph, where this always holds.
func (n *NormalGraph) Source(e HyperEdge) Node {
	return e.Sources[0]
}
