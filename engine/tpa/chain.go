// SPDX-License-Identifier: MIT
package tpa

import (
	"github.com/golem-chc/chcsolver/engine"
	"github.com/golem-chc/chcsolver/hypergraph"
)

// chainNode is one node qi of a discovered chain, together with the edge
// that feeds it (from the previous node, or Entry for q0), its optional
// self-loop, and the edge it feeds forward (to the next node, or Exit).
type chainNode struct {
	node     hypergraph.Node
	in       hypergraph.HyperEdge
	selfLoop *hypergraph.HyperEdge
	out      hypergraph.HyperEdge
}

// discoverChain walks g from Entry and recognizes the shape TPA requires:
// Entry -> q0 -> q1 -> ... -> qm -> Exit, every edge non-hyper, each qi
// carrying at most one self-loop and exactly one forward edge. Any other shape is reported via
// engine.ErrNotChainStructured so a caller can fall back to running the
// transform pipeline first (node elimination, chain summarization) to
// reduce the graph into this shape.
func discoverChain(g *hypergraph.HyperGraph) ([]chainNode, error) {
	entryOut := g.Outgoing(hypergraph.Entry)
	if len(entryOut) != 1 || entryOut[0].Arity() != 1 {
		return nil, engine.ErrNotChainStructured
	}
	inEdge := entryOut[0]

	var chain []chainNode
	cur := inEdge.Target
	for {
		if cur.IsExit() {
			return nil, engine.ErrNotChainStructured
		}

		outs := g.Outgoing(cur)
		var forward, loop *hypergraph.HyperEdge
		for i := range outs {
			e := outs[i]
			if e.Arity() != 1 {
				return nil, engine.ErrNotChainStructured
			}
			switch {
			case e.Target == cur:
				if loop != nil {
					return nil, engine.ErrNotChainStructured
				}
				loop = &outs[i]
			default:
				if forward != nil {
					return nil, engine.ErrNotChainStructured
				}
				forward = &outs[i]
			}
		}
		if forward == nil {
			return nil, engine.ErrNotChainStructured
		}

		wantIncoming := 1
		if loop != nil {
			wantIncoming = 2
		}
		if g.InDegree(cur) != wantIncoming {
			return nil, engine.ErrNotChainStructured
		}

		cn := chainNode{node: cur, in: inEdge, out: *forward}
		if loop != nil {
			l := *loop
			cn.selfLoop = &l
		}
		chain = append(chain, cn)

		if forward.Target.IsExit() {
			return chain, nil
		}
		inEdge = *forward
		cur = forward.Target
	}
}
