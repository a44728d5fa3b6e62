// SPDX-License-Identifier: MIT
package merge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golem-chc/chcsolver/chc"
	"github.com/golem-chc/chcsolver/hypergraph"
	"github.com/golem-chc/chcsolver/logic"
	"github.com/golem-chc/chcsolver/normalize"
	"github.com/golem-chc/chcsolver/transform/merge"
	"github.com/golem-chc/chcsolver/witness"
)

// twoFactSystem builds two parallel Entry -> P fact edges (x=0 and x=5) plus
// a query P -> Exit requiring x>3, so only the x=5 disjunct can reach Exit.
func twoFactSystem(t *testing.T) (*logic.Context, *hypergraph.HyperGraph) {
	t.Helper()
	ctx := logic.NewContext()
	cs := chc.NewClauseSystem(ctx)
	p := chc.PredicateSymbol{Name: "P", Sig: []logic.Sort{logic.SortInt}}
	require.NoError(t, cs.AddUninterpretedPredicate(p))

	x := ctx.NewVar("x")
	require.NoError(t, cs.AddClause(
		chc.PredicateInstance{Symbol: p, Args: []logic.Term{ctx.Const(0)}},
		[]chc.PredicateInstance{chc.TrueInstance()}, ctx.True(),
	))
	require.NoError(t, cs.AddClause(
		chc.PredicateInstance{Symbol: p, Args: []logic.Term{ctx.Const(5)}},
		[]chc.PredicateInstance{chc.TrueInstance()}, ctx.True(),
	))
	require.NoError(t, cs.AddClause(
		chc.FalseInstance(),
		[]chc.PredicateInstance{{Symbol: p, Args: []logic.Term{x}}}, ctx.Gt(x, ctx.Const(3)),
	))

	sys, err := normalize.NewNormalizer(ctx).Normalize(cs)
	require.NoError(t, err)
	g, err := hypergraph.BuildFromNormalized(sys)
	require.NoError(t, err)
	return ctx, g
}

func TestMultiEdgeMerger_CollapsesParallelEdges(t *testing.T) {
	ctx, g := twoFactSystem(t)
	pNode := hypergraph.NodeFor(chc.PredicateSymbol{Name: "P"})

	require.Len(t, g.Incoming(pNode), 2, "precondition: two parallel fact edges into P")

	mm := merge.MultiEdgeMerger{Ctx: ctx}
	out, bt, err := mm.Transform(g)
	require.NoError(t, err)
	require.NotNil(t, bt)

	pIn := out.Incoming(pNode)
	require.Len(t, pIn, 1, "the two parallel edges should collapse into one")
}

func TestMultiEdgeMerger_DisambiguatesInvalidityWitness(t *testing.T) {
	ctx, g := twoFactSystem(t)
	pNode := hypergraph.NodeFor(chc.PredicateSymbol{Name: "P"})

	mm := merge.MultiEdgeMerger{Ctx: ctx}
	out, bt, err := mm.Transform(g)
	require.NoError(t, err)

	merged := out.Incoming(pNode)[0]
	require.Len(t, merged.TargetVector, 1)

	w := witness.NewInvalidityWitness()
	model := logic.Model{merged.TargetVector[0]: 5}
	w.Root = w.AddNode(witness.DerivationNode{Edge: merged, Model: model, Children: nil})

	translated, err := bt.TranslateInvalidity(w)
	require.NoError(t, err)

	root, ok := translated.Node(translated.Root)
	require.True(t, ok)
	assert.NotEqual(t, "merge_1", root.Edge.ID, "the disambiguated node should carry an original edge, not the merged one")
	assert.Equal(t, int64(5), root.Model[root.Edge.TargetVector[0]])
}
