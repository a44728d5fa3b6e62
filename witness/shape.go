// SPDX-License-Identifier: MIT
package witness

import (
	"fmt"
)

// CheckShape verifies the structural invariants required of an
// InvalidityWitness, independent of whether the recorded models actually
// satisfy their edges' constraints (that check belongs to the validate
// package, which has no business knowing the arena's internal shape rules).
//
// Checks: Root is in range; the root node's Edge.Target is Exit; every node's
// Children indices are in range and match Edge.Arity(); every leaf's Edge has
// a single Entry source (or, for a nullary fact edge, Sources is empty and
// Edge.Target is reached directly from Entry).
func CheckShape(w *InvalidityWitness) error {
	if w == nil || w.Root < 0 || w.Root >= len(w.Nodes) {
		return fmt.Errorf("CheckShape: %w", ErrMalformedDerivation)
	}

	root, _ := w.Node(w.Root)
	if !root.Edge.Target.IsExit() {
		return fmt.Errorf("CheckShape: root edge targets %s, want Exit: %w", root.Edge.Target, ErrMalformedDerivation)
	}

	visited := make(map[int]bool)
	return checkNode(w, w.Root, visited)
}

func checkNode(w *InvalidityWitness, idx int, visited map[int]bool) error {
	if visited[idx] {
		return fmt.Errorf("CheckShape: cycle at node %d: %w", idx, ErrMalformedDerivation)
	}
	visited[idx] = true

	n, ok := w.Node(idx)
	if !ok {
		return fmt.Errorf("CheckShape: node %d: %w", idx, ErrDanglingNode)
	}

	if len(n.Children) != n.Edge.Arity() {
		return fmt.Errorf("CheckShape: node %d has %d children, edge arity %d: %w",
			idx, len(n.Children), n.Edge.Arity(), ErrMalformedDerivation)
	}

	for i, child := range n.Children {
		if n.Edge.Sources[i].IsEntry() {
			// A source of Entry need not have a child node: it is axiomatically true.
			if child >= 0 {
				if err := checkNode(w, child, visited); err != nil {
					return err
				}
			}
			continue
		}
		if child < 0 {
			return fmt.Errorf("CheckShape: node %d source %d (%s) has no child: %w",
				idx, i, n.Edge.Sources[i], ErrMalformedDerivation)
		}
		childNode, ok := w.Node(child)
		if !ok {
			return fmt.Errorf("CheckShape: node %d: %w", idx, ErrDanglingNode)
		}
		if childNode.Edge.Target != n.Edge.Sources[i] {
			return fmt.Errorf("CheckShape: node %d child %d targets %s, want %s: %w",
				idx, child, childNode.Edge.Target, n.Edge.Sources[i], ErrMalformedDerivation)
		}
		if err := checkNode(w, child, visited); err != nil {
			return err
		}
	}

	return nil
}
