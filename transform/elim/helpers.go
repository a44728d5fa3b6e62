// SPDX-License-Identifier: MIT
package elim

import (
	"github.com/golem-chc/chcsolver/hypergraph"
	"github.com/golem-chc/chcsolver/logic"
)

// occurrencePositions returns every index where sources[i] == n, preserving
// order and multiplicity.
func occurrencePositions(sources []hypergraph.Node, n hypergraph.Node) []int {
	var pos []int
	for i, s := range sources {
		if s == n {
			pos = append(pos, i)
		}
	}
	return pos
}

// combinations enumerates every slots-length tuple of indices in [0,k), the
// cartesian product used when a hyperedge's source list repeats the
// eliminated node: each occurrence may be justified by a different
// incoming edge.
func combinations(k, slots int) [][]int {
	if slots == 0 {
		return [][]int{{}}
	}
	rest := combinations(k, slots-1)
	out := make([][]int, 0, k*len(rest))
	for i := 0; i < k; i++ {
		for _, r := range rest {
			combo := append([]int{i}, r...)
			out = append(out, combo)
		}
	}
	return out
}

// cloneVectorList deep-copies a per-position list of variable vectors.
func cloneVectorList(vs [][]logic.Term) [][]logic.Term {
	out := make([][]logic.Term, len(vs))
	for i, v := range vs {
		out[i] = append([]logic.Term(nil), v...)
	}
	return out
}

// freshenConstraint binds e's TargetVector to bindTarget (the occurrence's
// position vector in the outgoing hyperedge) and renames every other free
// variable of e's constraint to a fresh one, so that composing the same
// incoming edge e into two distinct occurrences of the eliminated node
// within one hyperedge does not alias their otherwise-independent
// derivations.
func freshenConstraint(ctx *logic.Context, e hypergraph.HyperEdge, bindTarget []logic.Term) (logic.Term, error) {
	from := append([]logic.Term(nil), e.TargetVector...)
	to := append([]logic.Term(nil), bindTarget...)

	bound := make(map[logic.Term]bool, len(from)+len(e.SourceVectors[0]))
	for _, v := range from {
		bound[v] = true
	}
	for _, v := range e.SourceVectors[0] {
		bound[v] = true
	}

	for _, v := range ctx.FreeVars(e.Constraint) {
		if bound[v] {
			continue
		}
		from = append(from, v)
		to = append(to, ctx.NewVar("aux"))
	}
	return ctx.Substitute(e.Constraint, from, to)
}
