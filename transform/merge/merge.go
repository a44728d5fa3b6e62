// SPDX-License-Identifier: MIT
package merge

import (
	"fmt"
	"sort"
	"strings"

	"github.com/golem-chc/chcsolver/hypergraph"
	"github.com/golem-chc/chcsolver/logic"
	"github.com/golem-chc/chcsolver/transform"
	"github.com/golem-chc/chcsolver/witness"
)

// MultiEdgeMerger is a transform.Transformation collapsing parallel edges
// sharing an endpoint pair into one disjunctive edge.
type MultiEdgeMerger struct {
	Ctx *logic.Context
}

// Name implements transform.Transformation.
func (MultiEdgeMerger) Name() string { return "MultiEdgeMerger" }

// Transform implements transform.Transformation.
func (mm MultiEdgeMerger) Transform(g *hypergraph.HyperGraph) (*hypergraph.HyperGraph, transform.BackTranslator, error) {
	edges := g.Edges()
	sort.Slice(edges, func(i, j int) bool { return edges[i].ID < edges[j].ID })

	groups := make(map[string][]hypergraph.HyperEdge)
	var order []string
	for _, e := range edges {
		k := keyFor(e)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], e)
	}

	b := hypergraph.NewBuilder()
	var groupRecords []*mergeGroup
	count := 0

	for _, k := range order {
		es := groups[k]
		if len(es) == 1 {
			if err := b.AddEdge(es[0]); err != nil {
				return nil, nil, fmt.Errorf("MultiEdgeMerger: %w", err)
			}
			continue
		}

		count++
		merged, mg, err := mm.mergeGroup(es, fmt.Sprintf("merge_%d", count))
		if err != nil {
			return nil, nil, fmt.Errorf("MultiEdgeMerger: %w", err)
		}
		if err := b.AddEdge(merged); err != nil {
			return nil, nil, fmt.Errorf("MultiEdgeMerger: %w", err)
		}
		groupRecords = append(groupRecords, mg)
	}

	return b.Build(), newBackTranslator(mm.Ctx, groupRecords), nil
}

// keyFor builds a grouping key from an edge's ordered source list and
// target, the "endpoint pair" groups by.
func keyFor(e hypergraph.HyperEdge) string {
	var b strings.Builder
	for _, s := range e.Sources {
		b.WriteString(s.String())
		b.WriteByte('|')
	}
	b.WriteString(">")
	b.WriteString(e.Target.String())
	return b.String()
}

// flattenVectors concatenates a hyperedge's per-source vectors and target
// vector into one ordered slice, the shape shared by every edge in a merge
// group since they target the same predicate from the same source list.
func flattenVectors(sourceVectors [][]logic.Term, targetVector []logic.Term) []logic.Term {
	var out []logic.Term
	for _, v := range sourceVectors {
		out = append(out, v...)
	}
	return append(out, targetVector...)
}

// mergeGroup records one group of merged edges: the produced edge's ID, the
// canonical vector every disjunct was renamed onto, and each original edge
// paired with its own (pre-rename) vector, so the back-translator can
// recover which original edge a witness model came from.
type mergeGroup struct {
	mergedID      string
	canonical     hypergraph.HyperEdge
	canonicalVars []logic.Term
	originals     []hypergraph.HyperEdge
	ownVars       [][]logic.Term
}

func (mm MultiEdgeMerger) mergeGroup(es []hypergraph.HyperEdge, id string) (hypergraph.HyperEdge, *mergeGroup, error) {
	canonical := es[0]
	canonicalVars := flattenVectors(canonical.SourceVectors, canonical.TargetVector)

	mg := &mergeGroup{mergedID: id, canonical: canonical, canonicalVars: canonicalVars}

	keep := make(map[logic.Term]bool, len(canonicalVars))
	for _, v := range canonicalVars {
		keep[v] = true
	}

	var disjuncts []logic.Term
	for _, e := range es {
		ownVars := flattenVectors(e.SourceVectors, e.TargetVector)

		renamed := e.Constraint
		if len(ownVars) > 0 {
			var err error
			renamed, err = mm.Ctx.Substitute(e.Constraint, ownVars, canonicalVars)
			if err != nil {
				return hypergraph.HyperEdge{}, nil, err
			}
		}

		var aux []logic.Term
		for _, v := range mm.Ctx.FreeVars(renamed) {
			if !keep[v] {
				aux = append(aux, v)
			}
		}
		projected := renamed
		if len(aux) > 0 {
			var err error
			projected, err = mm.Ctx.Exists(renamed, aux)
			if err != nil {
				return hypergraph.HyperEdge{}, nil, err
			}
		}

		disjuncts = append(disjuncts, projected)
		mg.originals = append(mg.originals, e)
		mg.ownVars = append(mg.ownVars, ownVars)
	}

	merged := hypergraph.HyperEdge{
		ID:            id,
		Sources:       canonical.Sources,
		SourceVectors: canonical.SourceVectors,
		Target:        canonical.Target,
		TargetVector:  canonical.TargetVector,
		Constraint:    mm.Ctx.Or(disjuncts...),
	}
	return merged, mg, nil
}

// BackTranslator lifts witnesses past a MultiEdgeMerger pass.
type BackTranslator struct {
	ctx    *logic.Context
	groups []*mergeGroup
	byID   map[string]*mergeGroup
}

func newBackTranslator(ctx *logic.Context, groups []*mergeGroup) *BackTranslator {
	byID := make(map[string]*mergeGroup, len(groups))
	for _, g := range groups {
		byID[g.mergedID] = g
	}
	return &BackTranslator{ctx: ctx, groups: groups, byID: byID}
}

// TranslateValidity is identity: merging parallel edges never changes which
// predicates exist or their canonical variable vectors.
func (bt *BackTranslator) TranslateValidity(w *witness.ValidityWitness) (*witness.ValidityWitness, error) {
	return w, nil
}

// TranslateInvalidity disambiguates, for every derivation node whose edge is
// a merged edge, which original disjunct the witness model actually
// satisfies, and replaces the node's edge and model with that disjunct's
//.
func (bt *BackTranslator) TranslateInvalidity(w *witness.InvalidityWitness) (*witness.InvalidityWitness, error) {
	out := witness.NewInvalidityWitness()
	idxMap := make(map[int]int)

	var convert func(int) (int, error)
	convert = func(i int) (int, error) {
		if j, ok := idxMap[i]; ok {
			return j, nil
		}
		node, ok := w.Node(i)
		if !ok {
			return -1, fmt.Errorf("merge.BackTranslator: dangling node %d", i)
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

		grp, isMerged := bt.byID[node.Edge.ID]
		if !isMerged {
			j := out.AddNode(witness.DerivationNode{Edge: node.Edge, Model: node.Model, Children: children})
			idxMap[i] = j
			return j, nil
		}

		orig, model, err := bt.disambiguate(grp, node.Model)
		if err != nil {
			return -1, err
		}
		j := out.AddNode(witness.DerivationNode{Edge: orig, Model: model, Children: children})
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

// disambiguate tries each original edge in turn, fixing its own vector's
// values from merged (via the canonical<->own positional correspondence)
// and re-solving with logic.Context.Sat; the first satisfiable original is
// the disjunct the witness took.
func (bt *BackTranslator) disambiguate(g *mergeGroup, merged logic.Model) (hypergraph.HyperEdge, logic.Model, error) {
	for idx, orig := range g.originals {
		ownVars := g.ownVars[idx]
		eqs := make([]logic.Term, 0, len(g.canonicalVars))
		for k, cv := range g.canonicalVars {
			if val, ok := merged[cv]; ok {
				eqs = append(eqs, bt.ctx.Eq(ownVars[k], bt.ctx.Const(val)))
			}
		}
		conj := bt.ctx.And(append([]logic.Term{orig.Constraint}, eqs...)...)
		sat, m, err := bt.ctx.Sat(conj)
		if err != nil {
			return hypergraph.HyperEdge{}, nil, err
		}
		if sat {
			return orig, m, nil
		}
	}
	return hypergraph.HyperEdge{}, nil, fmt.Errorf("merge.BackTranslator: no disjunct of %s satisfies the witness model", g.mergedID)
}
