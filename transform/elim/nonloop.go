// SPDX-License-Identifier: MIT
package elim

import (
	"fmt"
	"sort"

	"github.com/golem-chc/chcsolver/hypergraph"
	"github.com/golem-chc/chcsolver/logic"
	"github.com/golem-chc/chcsolver/transform"
	"github.com/golem-chc/chcsolver/witness"
)

// NonLoopEliminator is a transform.Transformation removing off-cycle nodes
// whose incident edges are all non-hyper, composing each (incoming,
// outgoing) edge pair directly.
type NonLoopEliminator struct {
	Ctx *logic.Context
}

// Name implements transform.Transformation.
func (NonLoopEliminator) Name() string { return "NonLoopEliminator" }

// Transform implements transform.Transformation.
func (el NonLoopEliminator) Transform(g *hypergraph.HyperGraph) (*hypergraph.HyperGraph, transform.BackTranslator, error) {
	cur := g
	var steps []*nonLoopStep
	for {
		n, ok := pickNonLoopEligible(cur)
		if !ok {
			break
		}
		next, step, err := eliminateNonLoop(el.Ctx, cur, n)
		if err != nil {
			return nil, nil, fmt.Errorf("NonLoopEliminator: %w", err)
		}
		cur = next
		steps = append(steps, step)
	}
	return cur, newNonLoopBackTranslator(el.Ctx, steps), nil
}

// pickNonLoopEligible returns the lexicographically-first off-cycle node
// every one of whose incoming AND outgoing edges is non-hyper (arity 1).
// NonLoopEliminator further requires outgoing edges be non-hyper too;
// eliminating a node that feeds a hyperedge is SimpleNodeEliminator's job.
func pickNonLoopEligible(g *hypergraph.HyperGraph) (hypergraph.Node, bool) {
	onCycle := hypergraph.OnCycle(g)
	nodes := g.Nodes()
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].String() < nodes[j].String() })

	for _, n := range nodes {
		if n.IsEntry() || n.IsExit() || onCycle[n] {
			continue
		}
		in := g.Incoming(n)
		if len(in) == 0 {
			continue
		}
		ok := true
		for _, e := range in {
			if e.Arity() != 1 {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		for _, e := range g.Outgoing(n) {
			if e.Arity() != 1 {
				ok = false
				break
			}
		}
		if ok {
			return n, true
		}
	}
	return hypergraph.Node{}, false
}

// nonLoopStep records one node's elimination: its incoming/outgoing edges
// and which produced edge ID resulted from which (in,out) pair, so the
// back-translator can invert the composition.
type nonLoopStep struct {
	node     hypergraph.Node
	inEdges  []hypergraph.HyperEdge
	outEdges []hypergraph.HyperEdge
	pairOf   map[string][2]int
}

func eliminateNonLoop(ctx *logic.Context, g *hypergraph.HyperGraph, n hypergraph.Node) (*hypergraph.HyperGraph, *nonLoopStep, error) {
	inEdges := g.Incoming(n)
	outEdges := g.Outgoing(n)

	removed := make(map[string]bool, len(inEdges)+len(outEdges))
	for _, e := range inEdges {
		removed[e.ID] = true
	}
	for _, e := range outEdges {
		removed[e.ID] = true
	}

	b := hypergraph.NewBuilder()
	for _, e := range g.Edges() {
		if removed[e.ID] {
			continue
		}
		if err := b.AddEdge(e); err != nil {
			return nil, nil, err
		}
	}

	step := &nonLoopStep{node: n, inEdges: inEdges, outEdges: outEdges, pairOf: make(map[string][2]int)}
	for i, in := range inEdges {
		for j, out := range outEdges {
			merged, err := transform.ComposeSequential(ctx, in, out)
			if err != nil {
				return nil, nil, err
			}
			merged.ID = fmt.Sprintf("nlelim_%s_%d_%d", n, i, j)
			if err := b.AddEdge(merged); err != nil {
				return nil, nil, err
			}
			step.pairOf[merged.ID] = [2]int{i, j}
		}
	}

	return b.Build(), step, nil
}

// NonLoopBackTranslator lifts witnesses past a NonLoopEliminator pass.
type NonLoopBackTranslator struct {
	ctx   *logic.Context
	steps []*nonLoopStep
	byID  map[string]*nonLoopStep
}

func newNonLoopBackTranslator(ctx *logic.Context, steps []*nonLoopStep) *NonLoopBackTranslator {
	byID := make(map[string]*nonLoopStep)
	for _, s := range steps {
		for id := range s.pairOf {
			byID[id] = s
		}
	}
	return &NonLoopBackTranslator{ctx: ctx, steps: steps, byID: byID}
}

// TranslateValidity synthesizes an interpretation for each eliminated node as
// the disjunction of the strongest postcondition of each incoming edge
//.
func (bt *NonLoopBackTranslator) TranslateValidity(w *witness.ValidityWitness) (*witness.ValidityWitness, error) {
	out := witness.NewValidityWitness()
	for k, v := range w.Interpretations {
		out.Set(k, v)
	}

	for _, step := range bt.steps {
		if len(step.outEdges) == 0 {
			continue
		}
		baseVec := step.outEdges[0].SourceVectors[0]

		var disjuncts []logic.Term
		for _, in := range step.inEdges {
			srcInterp := bt.ctx.True()
			if !in.Sources[0].IsEntry() {
				if t, ok := out.Get(in.Sources[0].String()); ok {
					srcInterp = t
				}
			}
			d, err := transform.StrongestPostcondition(bt.ctx, in, srcInterp, baseVec)
			if err != nil {
				return nil, fmt.Errorf("elim.NonLoopBackTranslator: %w", err)
			}
			disjuncts = append(disjuncts, d)
		}
		out.Set(step.node.String(), bt.ctx.Or(disjuncts...))
	}
	return out, nil
}

// TranslateInvalidity expands every derivation node whose edge resulted from
// composing an (incoming, outgoing) pair back into those two original edges,
// deriving each one's model by fixing the shared node's vector to the
// composed model's values and re-solving with logic.Context.Sat.
func (bt *NonLoopBackTranslator) TranslateInvalidity(w *witness.InvalidityWitness) (*witness.InvalidityWitness, error) {
	out := witness.NewInvalidityWitness()
	idxMap := make(map[int]int)

	var convert func(int) (int, error)
	convert = func(i int) (int, error) {
		if j, ok := idxMap[i]; ok {
			return j, nil
		}
		node, ok := w.Node(i)
		if !ok {
			return -1, fmt.Errorf("elim.NonLoopBackTranslator: dangling node %d", i)
		}

		step, isProduced := bt.byID[node.Edge.ID]
		if !isProduced {
			children := make([]int, len(node.Children))
			for pos, c := range node.Children {
				if c < 0 {
					children[pos] = -1
					continue
				}
				cj, err := convert(c)
				if err != nil {
					return -1, err
				}
				children[pos] = cj
			}
			j := out.AddNode(witness.DerivationNode{Edge: node.Edge, Model: node.Model, Children: children})
			idxMap[i] = j
			return j, nil
		}

		pair := step.pairOf[node.Edge.ID]
		inEdge := step.inEdges[pair[0]]
		outEdge := step.outEdges[pair[1]]

		childOfIn := -1
		if len(node.Children) > 0 && node.Children[0] >= 0 {
			var err error
			childOfIn, err = convert(node.Children[0])
			if err != nil {
				return -1, err
			}
		}

		inModel, outModel, err := bt.splitModel(inEdge, outEdge, node.Model)
		if err != nil {
			return -1, err
		}

		nProof := out.AddNode(witness.DerivationNode{Edge: inEdge, Model: inModel, Children: []int{childOfIn}})
		j := out.AddNode(witness.DerivationNode{Edge: outEdge, Model: outModel, Children: []int{nProof}})
		idxMap[i] = j
		return j, nil
	}

	root, err := convert(w.Root)
	if err != nil {
		return nil, err
	}
	out.Root = root
	return out, nil
}

func (bt *NonLoopBackTranslator) splitModel(inEdge, outEdge hypergraph.HyperEdge, merged logic.Model) (logic.Model, logic.Model, error) {
	eqs := make([]logic.Term, 0, len(merged))
	for v, val := range merged {
		eqs = append(eqs, bt.ctx.Eq(v, bt.ctx.Const(val)))
	}
	conj := bt.ctx.And(append([]logic.Term{inEdge.Constraint}, eqs...)...)
	sat, inModel, err := bt.ctx.Sat(conj)
	if err != nil {
		return nil, nil, err
	}
	if !sat {
		return nil, nil, fmt.Errorf("elim.NonLoopBackTranslator: infeasible split for edge %s", inEdge.ID)
	}

	outEqs := make([]logic.Term, 0, len(merged)+len(inEdge.TargetVector))
	for v, val := range merged {
		outEqs = append(outEqs, bt.ctx.Eq(v, bt.ctx.Const(val)))
	}
	for i, tv := range inEdge.TargetVector {
		if val, ok := inModel[tv]; ok {
			outEqs = append(outEqs, bt.ctx.Eq(outEdge.SourceVectors[0][i], bt.ctx.Const(val)))
		}
	}
	outConj := bt.ctx.And(append([]logic.Term{outEdge.Constraint}, outEqs...)...)
	sat2, outModel, err := bt.ctx.Sat(outConj)
	if err != nil {
		return nil, nil, err
	}
	if !sat2 {
		return nil, nil, fmt.Errorf("elim.NonLoopBackTranslator: infeasible split for edge %s", outEdge.ID)
	}
	return inModel, outModel, nil
}
