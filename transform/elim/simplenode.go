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

// SimpleNodeEliminator is a transform.Transformation generalizing
// NonLoopEliminator to nodes that feed a hyperedge: every occurrence of the
// eliminated node in an outgoing hyperedge's source list is replaced by the
// chosen incoming edge's source, cross-producted over repeated occurrences
// and over every incoming edge.
type SimpleNodeEliminator struct {
	Ctx *logic.Context
}

// Name implements transform.Transformation.
func (SimpleNodeEliminator) Name() string { return "SimpleNodeEliminator" }

// Transform implements transform.Transformation.
func (el SimpleNodeEliminator) Transform(g *hypergraph.HyperGraph) (*hypergraph.HyperGraph, transform.BackTranslator, error) {
	cur := g
	var steps []*simpleNodeStep
	for {
		n, ok := pickSimpleNodeEligible(cur)
		if !ok {
			break
		}
		next, step, err := eliminateSimpleNode(el.Ctx, cur, n)
		if err != nil {
			return nil, nil, fmt.Errorf("SimpleNodeEliminator: %w", err)
		}
		cur = next
		steps = append(steps, step)
	}
	return cur, newSimpleNodeBackTranslator(el.Ctx, steps), nil
}

// pickSimpleNodeEligible returns the lexicographically-first off-cycle node
// with at least one incoming edge and every incoming edge non-hyper.
// Outgoing edges may be of any arity, which is the generalization over
// NonLoopEliminator.
func pickSimpleNodeEligible(g *hypergraph.HyperGraph) (hypergraph.Node, bool) {
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
		if ok {
			return n, true
		}
	}
	return hypergraph.Node{}, false
}

// producedInfo records, for one produced hyperedge, the original outgoing
// hyperedge it was derived from, the source-list positions occupied by the
// eliminated node, and which incoming edge (by index into simpleNodeStep.inEdges)
// was substituted at each of those positions.
type producedInfo struct {
	original  hypergraph.HyperEdge
	positions []int
	combo     []int
}

// simpleNodeStep records one node's elimination.
type simpleNodeStep struct {
	node        hypergraph.Node
	inEdges     []hypergraph.HyperEdge
	nodeBaseVec []logic.Term
	produced    map[string]producedInfo
}

func eliminateSimpleNode(ctx *logic.Context, g *hypergraph.HyperGraph, n hypergraph.Node) (*hypergraph.HyperGraph, *simpleNodeStep, error) {
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

	step := &simpleNodeStep{node: n, inEdges: inEdges, produced: make(map[string]producedInfo)}
	count := 0
	for _, h := range outEdges {
		positions := occurrencePositions(h.Sources, n)
		if len(positions) == 0 {
			continue
		}
		if step.nodeBaseVec == nil {
			step.nodeBaseVec = h.SourceVectors[positions[0]]
		}

		for _, combo := range combinations(len(inEdges), len(positions)) {
			newSources := append([]hypergraph.Node(nil), h.Sources...)
			newSourceVectors := cloneVectorList(h.SourceVectors)
			constraint := h.Constraint

			for idx, pos := range positions {
				e := inEdges[combo[idx]]
				newSources[pos] = e.Sources[0]
				renamed, err := freshenConstraint(ctx, e, h.SourceVectors[pos])
				if err != nil {
					return nil, nil, err
				}
				constraint = ctx.And(constraint, renamed)
				newSourceVectors[pos] = e.SourceVectors[0]
			}

			count++
			merged := hypergraph.HyperEdge{
				ID:            fmt.Sprintf("snelim_%s_%d", n, count),
				Sources:       newSources,
				SourceVectors: newSourceVectors,
				Target:        h.Target,
				TargetVector:  h.TargetVector,
				Constraint:    constraint,
			}
			if err := b.AddEdge(merged); err != nil {
				return nil, nil, err
			}
			step.produced[merged.ID] = producedInfo{original: h, positions: positions, combo: append([]int(nil), combo...)}
		}
	}

	return b.Build(), step, nil
}

// SimpleNodeBackTranslator lifts witnesses past a SimpleNodeEliminator pass.
type SimpleNodeBackTranslator struct {
	ctx          *logic.Context
	steps        []*simpleNodeStep
	byProducedID map[string]*simpleNodeStep
}

func newSimpleNodeBackTranslator(ctx *logic.Context, steps []*simpleNodeStep) *SimpleNodeBackTranslator {
	byID := make(map[string]*simpleNodeStep)
	for _, s := range steps {
		for id := range s.produced {
			byID[id] = s
		}
	}
	return &SimpleNodeBackTranslator{ctx: ctx, steps: steps, byProducedID: byID}
}

// TranslateValidity synthesizes an interpretation for each eliminated node as
// the disjunction of the strongest postcondition of each incoming edge, the
// same rule NonLoopBackTranslator uses.
func (bt *SimpleNodeBackTranslator) TranslateValidity(w *witness.ValidityWitness) (*witness.ValidityWitness, error) {
	out := witness.NewValidityWitness()
	for k, v := range w.Interpretations {
		out.Set(k, v)
	}

	for _, step := range bt.steps {
		if step.nodeBaseVec == nil {
			continue
		}
		var disjuncts []logic.Term
		for _, in := range step.inEdges {
			srcInterp := bt.ctx.True()
			if !in.Sources[0].IsEntry() {
				if t, ok := out.Get(in.Sources[0].String()); ok {
					srcInterp = t
				}
			}
			d, err := transform.StrongestPostcondition(bt.ctx, in, srcInterp, step.nodeBaseVec)
			if err != nil {
				return nil, fmt.Errorf("elim.SimpleNodeBackTranslator: %w", err)
			}
			disjuncts = append(disjuncts, d)
		}
		out.Set(step.node.String(), bt.ctx.Or(disjuncts...))
	}
	return out, nil
}

// TranslateInvalidity expands every derivation node whose edge was produced
// by substituting the eliminated node's occurrences back into the original
// hyperedge, inserting one new derivation node per occurrence proving the
// eliminated node via its chosen incoming edge.
func (bt *SimpleNodeBackTranslator) TranslateInvalidity(w *witness.InvalidityWitness) (*witness.InvalidityWitness, error) {
	out := witness.NewInvalidityWitness()
	idxMap := make(map[int]int)

	var convert func(int) (int, error)
	convert = func(i int) (int, error) {
		if j, ok := idxMap[i]; ok {
			return j, nil
		}
		node, ok := w.Node(i)
		if !ok {
			return -1, fmt.Errorf("elim.SimpleNodeBackTranslator: dangling node %d", i)
		}

		step, isProduced := bt.byProducedID[node.Edge.ID]
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

		info := step.produced[node.Edge.ID]
		h := info.original
		posOf := make(map[int]int, len(info.positions))
		for idx, pos := range info.positions {
			posOf[pos] = idx
		}

		children := make([]int, len(h.Sources))
		for pos := range h.Sources {
			if comboIdx, isOcc := posOf[pos]; isOcc {
				e := step.inEdges[info.combo[comboIdx]]
				eModel, err := bt.splitOccurrenceModel(h, e, pos, node.Model)
				if err != nil {
					return -1, err
				}
				childOfE := -1
				if pos < len(node.Children) && node.Children[pos] >= 0 {
					var err error
					childOfE, err = convert(node.Children[pos])
					if err != nil {
						return -1, err
					}
				}
				children[pos] = out.AddNode(witness.DerivationNode{Edge: e, Model: eModel, Children: []int{childOfE}})
				continue
			}
			if pos < len(node.Children) && node.Children[pos] >= 0 {
				cj, err := convert(node.Children[pos])
				if err != nil {
					return -1, err
				}
				children[pos] = cj
			} else {
				children[pos] = -1
			}
		}

		j := out.AddNode(witness.DerivationNode{Edge: h, Model: node.Model, Children: children})
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

// splitOccurrenceModel recovers a model for the incoming edge e that was
// substituted at position pos of h's source list: e's TargetVector values
// come from the merged model's assignment to h.SourceVectors[pos] (the
// position e's target was bound to), and e's own SourceVectors[0] values
// come directly from the merged model (they are literally e.Sources[0]'s
// entry in the merged edge's source list).
func (bt *SimpleNodeBackTranslator) splitOccurrenceModel(h, e hypergraph.HyperEdge, pos int, merged logic.Model) (logic.Model, error) {
	var eqs []logic.Term
	for j, tv := range e.TargetVector {
		if val, ok := merged[h.SourceVectors[pos][j]]; ok {
			eqs = append(eqs, bt.ctx.Eq(tv, bt.ctx.Const(val)))
		}
	}
	for _, sv := range e.SourceVectors[0] {
		if val, ok := merged[sv]; ok {
			eqs = append(eqs, bt.ctx.Eq(sv, bt.ctx.Const(val)))
		}
	}
	conj := bt.ctx.And(append([]logic.Term{e.Constraint}, eqs...)...)
	sat, m, err := bt.ctx.Sat(conj)
	if err != nil {
		return nil, err
	}
	if !sat {
		return nil, fmt.Errorf("elim.SimpleNodeBackTranslator: infeasible occurrence model for edge %s", e.ID)
	}
	return m, nil
}
