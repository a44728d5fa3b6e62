// SPDX-License-Identifier: MIT
package hypergraph

// Reachability queries over the node-arc graph induced by g's hyperedges
// (an edge with sources [s0,...,sk] and target t contributes an arc from
// every distinct s_i to t). Adapted from algorithms/bfs.go's level-order
// walk (queue of frontier nodes, visited set, parent map), regrounded on
// HyperGraph.Outgoing instead of core.Graph.Neighbors.

// ReachableFrom returns the set of nodes reachable from start by following
// hyperedges forward, including start itself.
func ReachableFrom(g *HyperGraph, start Node) map[Node]bool {
	visited := map[Node]bool{start: true}
	queue := []Node{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, e := range g.Outgoing(cur) {
			if !visited[e.Target] {
				visited[e.Target] = true
				queue = append(queue, e.Target)
			}
		}
	}

	return visited
}

// ReachesExit reports whether Exit is reachable from n (a node with no path
// to Exit can never contribute to an UNSAFE derivation).
func ReachesExit(g *HyperGraph, n Node) bool {
	return ReachableFrom(g, n)[Exit]
}

// ReachableFromEntry returns the set of nodes reachable from Entry; a
// well-formed graph has every non-Entry/Exit node in this set,
// and the complement is prunable as unreachable.
func ReachableFromEntry(g *HyperGraph) map[Node]bool {
	return ReachableFrom(g, Entry)
}
