// SPDX-License-Identifier: MIT
package chain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golem-chc/chcsolver/chc"
	"github.com/golem-chc/chcsolver/hypergraph"
	"github.com/golem-chc/chcsolver/logic"
	"github.com/golem-chc/chcsolver/normalize"
	"github.com/golem-chc/chcsolver/transform/chain"
	"github.com/golem-chc/chcsolver/witness"
)

// pqrSystem builds Entry -> P -> Q -> R -> Exit, a three-node acyclic
// chain in which P, Q and R are all interior (in- and out-degree 1, off
// any cycle).
func pqrSystem(t *testing.T) (*logic.Context, *hypergraph.HyperGraph) {
	t.Helper()
	ctx := logic.NewContext()
	cs := chc.NewClauseSystem(ctx)
	p := chc.PredicateSymbol{Name: "P", Sig: []logic.Sort{logic.SortInt}}
	q := chc.PredicateSymbol{Name: "Q", Sig: []logic.Sort{logic.SortInt}}
	r := chc.PredicateSymbol{Name: "R", Sig: []logic.Sort{logic.SortInt}}
	require.NoError(t, cs.AddUninterpretedPredicate(p))
	require.NoError(t, cs.AddUninterpretedPredicate(q))
	require.NoError(t, cs.AddUninterpretedPredicate(r))

	x := ctx.NewVar("x")
	require.NoError(t, cs.AddClause(
		chc.PredicateInstance{Symbol: p, Args: []logic.Term{ctx.Const(0)}},
		[]chc.PredicateInstance{chc.TrueInstance()}, ctx.True(),
	))
	require.NoError(t, cs.AddClause(
		chc.PredicateInstance{Symbol: q, Args: []logic.Term{x}},
		[]chc.PredicateInstance{{Symbol: p, Args: []logic.Term{x}}}, ctx.True(),
	))
	require.NoError(t, cs.AddClause(
		chc.PredicateInstance{Symbol: r, Args: []logic.Term{x}},
		[]chc.PredicateInstance{{Symbol: q, Args: []logic.Term{x}}}, ctx.True(),
	))
	require.NoError(t, cs.AddClause(
		chc.FalseInstance(),
		[]chc.PredicateInstance{{Symbol: r, Args: []logic.Term{x}}}, ctx.Lt(x, ctx.Const(0)),
	))

	sys, err := normalize.NewNormalizer(ctx).Normalize(cs)
	require.NoError(t, err)
	g, err := hypergraph.BuildFromNormalized(sys)
	require.NoError(t, err)
	return ctx, g
}

func TestSimpleChainSummarizer_CollapsesInteriorNodes(t *testing.T) {
	ctx, g := pqrSystem(t)

	pNode := hypergraph.NodeFor(chc.PredicateSymbol{Name: "P"})
	qNode := hypergraph.NodeFor(chc.PredicateSymbol{Name: "Q"})
	rNode := hypergraph.NodeFor(chc.PredicateSymbol{Name: "R"})

	summ := chain.SimpleChainSummarizer{Ctx: ctx}
	out, bt, err := summ.Transform(g)
	require.NoError(t, err)
	require.NotNil(t, bt)

	// Q should no longer have any edges in the summarized graph.
	assert.Empty(t, out.Incoming(qNode))
	assert.Empty(t, out.Outgoing(qNode))

	// P and R are interior too, so the whole Entry->P->Q->R->Exit chain
	// collapses into one Entry -> Exit edge.
	assert.Empty(t, out.Incoming(pNode))
	assert.Empty(t, out.Incoming(rNode))
	exitIn := out.Incoming(hypergraph.Exit)
	require.Len(t, exitIn, 1)
	assert.Equal(t, []hypergraph.Node{hypergraph.Entry}, exitIn[0].Sources)
}

func TestSimpleChainSummarizer_BackTranslatesValidityWitness(t *testing.T) {
	ctx, g := pqrSystem(t)

	pNode := hypergraph.NodeFor(chc.PredicateSymbol{Name: "P"})
	qNode := hypergraph.NodeFor(chc.PredicateSymbol{Name: "Q"})
	rNode := hypergraph.NodeFor(chc.PredicateSymbol{Name: "R"})

	summ := chain.SimpleChainSummarizer{Ctx: ctx}
	out, bt, err := summ.Transform(g)
	require.NoError(t, err)

	w := witness.NewValidityWitness()
	w.Set(pNode.String(), ctx.True())
	w.Set(rNode.String(), ctx.True())
	translated, err := bt.TranslateValidity(w)
	require.NoError(t, err)

	_, ok := translated.Get(qNode.String())
	assert.True(t, ok, "back-translator should synthesize an interpretation for the eliminated interior node Q")
	_ = out
}
