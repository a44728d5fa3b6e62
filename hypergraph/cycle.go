// SPDX-License-Identifier: MIT
package hypergraph

// Cycle detection over a HyperGraph's node-to-node reachability graph: an
// edge with sources [s0, ..., sk] and target t contributes an arc s_i -> t
// for each distinct s_i. A node is "on a cycle" if it lies on some closed
// walk in that arc graph — the predicate transform/elim's NonLoopEliminator
// and SimpleNodeEliminator need.
//
// Adapted from dfs/cycle.go's three-color DFS (White/Gray/Black marking,
// Gray->Gray back-edge detection); simplified to a membership set rather
// than enumerating and canonicalizing every simple cycle, since no consumer
// here needs the cycle list itself, only cycle membership per node.

const (
	white = 0
	gray  = 1
	black = 2
)

// OnCycle reports, for every node in g, whether it participates in at least
// one cycle of the node-arc graph induced by g's hyperedges.
func OnCycle(g *HyperGraph) map[Node]bool {
	state := make(map[string]int, len(g.nodes))
	onCycle := make(map[string]bool, len(g.nodes))
	for _, n := range g.nodes {
		state[n.id] = white
	}

	var visit func(n Node, path []string)
	visit = func(n Node, path []string) {
		state[n.id] = gray
		path = append(path, n.id)

		for _, e := range g.Outgoing(n) {
			nbr := e.Target
			switch state[nbr.id] {
			case white:
				visit(nbr, path)
			case gray:
				// Back-edge: every node from nbr's first occurrence in path
				// to the current path end lies on a cycle.
				idx := indexOf(path, nbr.id)
				if idx >= 0 {
					for _, id := range path[idx:] {
						onCycle[id] = true
					}
				}
			case black:
				// already fully explored, not a back-edge
			}
		}

		state[n.id] = black
	}

	for _, n := range g.nodes {
		if state[n.id] == white {
			visit(n, nil)
		}
	}

	// A back-edge marks only the current gray path; a node whose cycle
	// closes through an already-finished node is caught here.
	for _, n := range g.nodes {
		if onCycle[n.id] {
			continue
		}
		for _, e := range g.Outgoing(n) {
			if ReachableFrom(g, e.Target)[n] {
				onCycle[n.id] = true
				break
			}
		}
	}

	out := make(map[Node]bool, len(g.nodes))
	for _, n := range g.nodes {
		out[n] = onCycle[n.id]
	}
	return out
}

// IsOnCycle reports whether n participates in a cycle of g; a convenience
// wrapper over OnCycle for single-node queries.
func IsOnCycle(g *HyperGraph, n Node) bool {
	return OnCycle(g)[n]
}

func indexOf(path []string, id string) int {
	for i, p := range path {
		if p == id {
			return i
		}
	}
	return -1
}
