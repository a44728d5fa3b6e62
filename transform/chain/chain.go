// SPDX-License-Identifier: MIT
package chain

import (
	"fmt"
	"sort"

	"github.com/golem-chc/chcsolver/hypergraph"
	"github.com/golem-chc/chcsolver/logic"
	"github.com/golem-chc/chcsolver/transform"
	"github.com/golem-chc/chcsolver/witness"
)

// SimpleChainSummarizer is a transform.Transformation collapsing maximal
// simple chains of nodes into single edges.
type SimpleChainSummarizer struct {
	Ctx *logic.Context
}

// Name implements transform.Transformation.
func (SimpleChainSummarizer) Name() string { return "SimpleChainSummarizer" }

// chainPath is one maximal run n0 -e1-> n1 -e2-> ... -ek-> nk with every
// n1..n(k-1) eligible for summarization.
type chainPath struct {
	nodes []hypergraph.Node
	edges []hypergraph.HyperEdge
}

// Transform implements transform.Transformation.
func (s SimpleChainSummarizer) Transform(g *hypergraph.HyperGraph) (*hypergraph.HyperGraph, transform.BackTranslator, error) {
	chains := findChains(g)

	b := hypergraph.NewBuilder()
	consumedEdges := make(map[string]bool)
	var records []*record

	for i, ch := range chains {
		if len(ch.edges) < 2 {
			continue
		}
		merged, err := composeChain(s.Ctx, ch.edges)
		if err != nil {
			return nil, nil, fmt.Errorf("SimpleChainSummarizer: %w", err)
		}
		merged.ID = fmt.Sprintf("chain%d_%s_%s", i, ch.nodes[0], ch.nodes[len(ch.nodes)-1])

		if err := b.AddEdge(merged); err != nil {
			return nil, nil, fmt.Errorf("SimpleChainSummarizer: %w", err)
		}
		for _, e := range ch.edges {
			consumedEdges[e.ID] = true
		}
		records = append(records, &record{mergedID: merged.ID, nodes: ch.nodes, edges: ch.edges})
	}

	for _, e := range g.Edges() {
		if consumedEdges[e.ID] {
			continue
		}
		if err := b.AddEdge(e); err != nil {
			return nil, nil, fmt.Errorf("SimpleChainSummarizer: %w", err)
		}
	}

	return b.Build(), newBackTranslator(s.Ctx, records), nil
}

// findChains walks every edge whose source is not chain-interior, extending
// forward through interior nodes until it reaches a non-interior end node.
// Every maximal chain is discovered exactly once this way, since an
// interior node's single outgoing edge is only ever reached as edges[i>0]
// of the chain starting at its predecessor.
func findChains(g *hypergraph.HyperGraph) []chainPath {
	onCycle := hypergraph.OnCycle(g)
	interior := make(map[hypergraph.Node]bool)
	for _, n := range g.Nodes() {
		if isInterior(g, onCycle, n) {
			interior[n] = true
		}
	}

	edges := g.Edges()
	sort.Slice(edges, func(i, j int) bool { return edges[i].ID < edges[j].ID })

	var chains []chainPath
	for _, e0 := range edges {
		if e0.Arity() != 1 || interior[e0.Sources[0]] {
			continue
		}

		nodes := []hypergraph.Node{e0.Sources[0]}
		chainEdges := []hypergraph.HyperEdge{e0}
		cur := e0
		for interior[cur.Target] {
			next := g.Outgoing(cur.Target)[0]
			nodes = append(nodes, cur.Target)
			chainEdges = append(chainEdges, next)
			cur = next
		}
		nodes = append(nodes, cur.Target)
		chains = append(chains, chainPath{nodes: nodes, edges: chainEdges})
	}
	return chains
}

// isInterior reports whether n is eligible to be summarized away: not
// Entry/Exit, not on a cycle, exactly one incoming and one outgoing edge,
// and both of those edges non-hyper.
func isInterior(g *hypergraph.HyperGraph, onCycle map[hypergraph.Node]bool, n hypergraph.Node) bool {
	if n.IsEntry() || n.IsExit() || onCycle[n] {
		return false
	}
	if g.InDegree(n) != 1 || g.OutDegree(n) != 1 {
		return false
	}
	in := g.Incoming(n)[0]
	out := g.Outgoing(n)[0]
	return in.Arity() == 1 && out.Arity() == 1
}

func composeChain(ctx *logic.Context, edges []hypergraph.HyperEdge) (hypergraph.HyperEdge, error) {
	acc := edges[0]
	for i := 1; i < len(edges); i++ {
		merged, err := transform.ComposeSequential(ctx, acc, edges[i])
		if err != nil {
			return hypergraph.HyperEdge{}, err
		}
		acc = merged
	}
	return acc, nil
}

// record retains enough per-chain context — the original node sequence and
// edges — for the back-translator to synthesize interior interpretations
// and expand summarized derivation steps.
type record struct {
	mergedID string
	nodes    []hypergraph.Node
	edges    []hypergraph.HyperEdge
}

// BackTranslator lifts witnesses on the summarized graph back onto the
// pre-summarization graph.
type BackTranslator struct {
	ctx     *logic.Context
	records []*record
	byID    map[string]*record
}

func newBackTranslator(ctx *logic.Context, records []*record) *BackTranslator {
	byID := make(map[string]*record, len(records))
	for _, r := range records {
		byID[r.mergedID] = r
	}
	return &BackTranslator{ctx: ctx, records: records, byID: byID}
}

// TranslateValidity synthesizes an interpretation for every interior node
// of every summarized chain, by projecting the chain's prefix constraint
// through each interior node's canonical base vector in turn.
func (b *BackTranslator) TranslateValidity(w *witness.ValidityWitness) (*witness.ValidityWitness, error) {
	out := witness.NewValidityWitness()
	for k, v := range w.Interpretations {
		out.Set(k, v)
	}

	for _, r := range b.records {
		if err := b.fillInterior(out, r); err != nil {
			return nil, fmt.Errorf("chain.BackTranslator: %w", err)
		}
	}
	return out, nil
}

func (b *BackTranslator) fillInterior(out *witness.ValidityWitness, r *record) error {
	n0 := r.nodes[0]
	n0Interp := b.ctx.True()
	if !n0.IsEntry() {
		if t, ok := out.Get(n0.String()); ok {
			n0Interp = t
		}
	}

	acc := r.edges[0]
	for i := 1; i < len(r.edges); i++ {
		interior := r.nodes[i]
		baseVec := r.edges[i].SourceVectors[0]

		interp, err := transform.StrongestPostcondition(b.ctx, acc, n0Interp, baseVec)
		if err != nil {
			return err
		}
		out.Set(interior.String(), interp)

		merged, err := transform.ComposeSequential(b.ctx, acc, r.edges[i])
		if err != nil {
			return err
		}
		acc = merged
	}
	return nil
}

// TranslateInvalidity expands every derivation node whose edge is a
// summarized chain edge back into the chain's original k edges, deriving a
// concrete per-edge model by solving each original constraint in turn with
// the already-known endpoint values fixed.
func (b *BackTranslator) TranslateInvalidity(w *witness.InvalidityWitness) (*witness.InvalidityWitness, error) {
	out := witness.NewInvalidityWitness()
	idxMap := make(map[int]int)

	var convert func(int) (int, error)
	convert = func(i int) (int, error) {
		if j, ok := idxMap[i]; ok {
			return j, nil
		}
		node, ok := w.Node(i)
		if !ok {
			return -1, fmt.Errorf("chain.BackTranslator: dangling node %d", i)
		}
		if r, ok := b.byID[node.Edge.ID]; ok {
			j, err := b.expandChain(out, idxMap, i, node, r, convert)
			return j, err
		}

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

	root, err := convert(w.Root)
	if err != nil {
		return nil, err
	}
	out.Root = root
	return out, nil
}

func (b *BackTranslator) expandChain(
	out *witness.InvalidityWitness,
	idxMap map[int]int,
	origIdx int,
	node witness.DerivationNode,
	r *record,
	convert func(int) (int, error),
) (int, error) {
	n0Idx := -1
	if len(node.Children) > 0 && node.Children[0] >= 0 {
		var err error
		n0Idx, err = convert(node.Children[0])
		if err != nil {
			return -1, err
		}
	}

	models, err := b.deriveEdgeModels(r, node.Model)
	if err != nil {
		return -1, err
	}

	child := n0Idx
	last := -1
	for i, e := range r.edges {
		j := out.AddNode(witness.DerivationNode{Edge: e, Model: models[i], Children: []int{child}})
		child = j
		last = j
	}
	idxMap[origIdx] = last
	return last, nil
}

// deriveEdgeModels solves each original edge's constraint in turn, fixing
// already-known variable values (starting from the merged edge's outer
// model) via logic.Context.Sat, and propagates each edge's target-vector
// values onto the next edge's source vector before continuing.
func (b *BackTranslator) deriveEdgeModels(r *record, outer logic.Model) ([]logic.Model, error) {
	models := make([]logic.Model, len(r.edges))
	fixed := make(logic.Model, len(outer))
	for v, val := range outer {
		fixed[v] = val
	}

	for i, e := range r.edges {
		eqs := make([]logic.Term, 0, len(fixed))
		for v, val := range fixed {
			if containsVar(e.Constraint, v, b.ctx) {
				eqs = append(eqs, b.ctx.Eq(v, b.ctx.Const(val)))
			}
		}
		conj := b.ctx.And(append([]logic.Term{e.Constraint}, eqs...)...)
		sat, m, err := b.ctx.Sat(conj)
		if err != nil {
			return nil, err
		}
		if !sat {
			return nil, fmt.Errorf("chain.BackTranslator: infeasible model while expanding edge %s", e.ID)
		}
		models[i] = m
		for v, val := range m {
			fixed[v] = val
		}
		if len(e.TargetVector) > 0 && i+1 < len(r.edges) {
			nextSrc := r.edges[i+1].SourceVectors[0]
			for j, tv := range e.TargetVector {
				if val, ok := m[tv]; ok {
					fixed[nextSrc[j]] = val
				}
			}
		}
	}
	return models, nil
}

func containsVar(t logic.Term, v logic.Term, ctx *logic.Context) bool {
	for _, fv := range ctx.FreeVars(t) {
		if fv == v {
			return true
		}
	}
	return false
}
