// SPDX-License-Identifier: MIT
package witness

import (
	"github.com/golem-chc/chcsolver/hypergraph"
	"github.com/golem-chc/chcsolver/logic"
)

// ValidityWitness maps a predicate symbol name to an interpretation: a
// boolean term over that symbol's canonical base variable vector, meant to
// be read as the predicate's inductive invariant.
type ValidityWitness struct {
	Interpretations map[string]logic.Term
}

// NewValidityWitness creates an empty ValidityWitness.
func NewValidityWitness() *ValidityWitness {
	return &ValidityWitness{Interpretations: make(map[string]logic.Term)}
}

// Set records symbol's interpretation.
func (w *ValidityWitness) Set(symbolName string, interp logic.Term) {
	w.Interpretations[symbolName] = interp
}

// Get returns symbol's recorded interpretation, or (zero, false) if absent.
// Per , the Validator — not this type — decides what a missing
// entry defaults to.
func (w *ValidityWitness) Get(symbolName string) (logic.Term, bool) {
	t, ok := w.Interpretations[symbolName]
	return t, ok
}

// DerivationNode is one arena slot of an InvalidityWitness's derivation tree:
// the hyperedge it was derived across, and the model satisfying that edge's
// constraint under this node's assignment. Children holds arena indices of
// the nodes proving each of Edge.Sources, in the same order.
type DerivationNode struct {
	Edge     hypergraph.HyperEdge
	Model    logic.Model
	Children []int
}

// InvalidityWitness is a derivation tree stored as an arena of DerivationNode,
// indexed by integer id. Root
// indexes the node whose Edge.Target is Exit; Children has one slot per
// edge source, and a slot whose source is Entry holds -1, so a leaf is a
// node derived from an Entry-sourced fact edge.
type InvalidityWitness struct {
	Nodes []DerivationNode
	Root  int
}

// NewInvalidityWitness creates an empty arena with no root.
func NewInvalidityWitness() *InvalidityWitness {
	return &InvalidityWitness{Root: -1}
}

// AddNode appends a node to the arena and returns its index.
func (w *InvalidityWitness) AddNode(n DerivationNode) int {
	w.Nodes = append(w.Nodes, n)
	return len(w.Nodes) - 1
}

// Node returns the arena node at idx, or (zero, false) if out of range.
func (w *InvalidityWitness) Node(idx int) (DerivationNode, bool) {
	if idx < 0 || idx >= len(w.Nodes) {
		return DerivationNode{}, false
	}
	return w.Nodes[idx], true
}
