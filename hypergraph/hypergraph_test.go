// SPDX-License-Identifier: MIT
package hypergraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golem-chc/chcsolver/chc"
	"github.com/golem-chc/chcsolver/hypergraph"
	"github.com/golem-chc/chcsolver/logic"
	"github.com/golem-chc/chcsolver/normalize"
)

func counterClauseSystem(t *testing.T) *chc.ClauseSystem {
	t.Helper()
	ctx := logic.NewContext()
	cs := chc.NewClauseSystem(ctx)
	s := chc.PredicateSymbol{Name: "S", Sig: []logic.Sort{logic.SortInt}}
	require.NoError(t, cs.AddUninterpretedPredicate(s))

	x := ctx.NewVar("x")
	require.NoError(t, cs.AddClause(
		chc.PredicateInstance{Symbol: s, Args: []logic.Term{ctx.Const(0)}},
		[]chc.PredicateInstance{chc.TrueInstance()},
		ctx.True(),
	))
	require.NoError(t, cs.AddClause(
		chc.PredicateInstance{Symbol: s, Args: []logic.Term{ctx.Add(x, ctx.Const(1))}},
		[]chc.PredicateInstance{{Symbol: s, Args: []logic.Term{x}}},
		ctx.True(),
	))
	require.NoError(t, cs.AddClause(
		chc.FalseInstance(),
		[]chc.PredicateInstance{{Symbol: s, Args: []logic.Term{x}}},
		ctx.Lt(x, ctx.Const(0)),
	))
	return cs
}

func TestBuildFromNormalized_CounterChain(t *testing.T) {
	cs := counterClauseSystem(t)
	sys, err := normalize.NewNormalizer(cs.Ctx).Normalize(cs)
	require.NoError(t, err)

	g, err := hypergraph.BuildFromNormalized(sys)
	require.NoError(t, err)

	sNode := hypergraph.NodeFor(chc.PredicateSymbol{Name: "S"})
	assert.True(t, g.HasNode(hypergraph.Entry))
	assert.True(t, g.HasNode(hypergraph.Exit))
	assert.True(t, g.HasNode(sNode))

	assert.Len(t, g.Incoming(sNode), 2) // fact edge + step edge
	assert.Len(t, g.Incoming(hypergraph.Exit), 1)
	assert.Len(t, g.Outgoing(hypergraph.Entry), 1)

	assert.True(t, g.IsNormal())
	ng, err := g.ToNormalGraph()
	require.NoError(t, err)
	edges := ng.Underlying().Outgoing(sNode)
	require.NotEmpty(t, edges)
	assert.Equal(t, sNode, ng.Source(edges[0]))
}

func TestIsNormal_FalseForHyperEdge(t *testing.T) {
	ctx := logic.NewContext()
	cs := chc.NewClauseSystem(ctx)
	p := chc.PredicateSymbol{Name: "P", Sig: []logic.Sort{logic.SortInt}}
	q := chc.PredicateSymbol{Name: "Q", Sig: []logic.Sort{logic.SortInt}}
	require.NoError(t, cs.AddUninterpretedPredicate(p))
	require.NoError(t, cs.AddUninterpretedPredicate(q))

	x, y := ctx.NewVar("x"), ctx.NewVar("y")
	require.NoError(t, cs.AddClause(
		chc.FalseInstance(),
		[]chc.PredicateInstance{{Symbol: p, Args: []logic.Term{x}}, {Symbol: q, Args: []logic.Term{y}}},
		ctx.True(),
	))
	require.NoError(t, cs.AddClause(
		chc.PredicateInstance{Symbol: p, Args: []logic.Term{ctx.Const(0)}},
		[]chc.PredicateInstance{chc.TrueInstance()},
		ctx.True(),
	))
	require.NoError(t, cs.AddClause(
		chc.PredicateInstance{Symbol: q, Args: []logic.Term{ctx.Const(0)}},
		[]chc.PredicateInstance{chc.TrueInstance()},
		ctx.True(),
	))

	sys, err := normalize.NewNormalizer(ctx).Normalize(cs)
	require.NoError(t, err)
	g, err := hypergraph.BuildFromNormalized(sys)
	require.NoError(t, err)

	assert.False(t, g.IsNormal())
	_, err = g.ToNormalGraph()
	assert.ErrorIs(t, err, hypergraph.ErrNotNormal)
}

func TestOnCycle_DetectsSelfLoop(t *testing.T) {
	cs := counterClauseSystem(t)
	sys, err := normalize.NewNormalizer(cs.Ctx).Normalize(cs)
	require.NoError(t, err)
	g, err := hypergraph.BuildFromNormalized(sys)
	require.NoError(t, err)

	sNode := hypergraph.NodeFor(chc.PredicateSymbol{Name: "S"})
	cyc := hypergraph.OnCycle(g)
	assert.True(t, cyc[sNode])
	assert.False(t, cyc[hypergraph.Entry])
	assert.False(t, cyc[hypergraph.Exit])
}

func TestReachability_EntryReachesEverythingCounterReachesExit(t *testing.T) {
	cs := counterClauseSystem(t)
	sys, err := normalize.NewNormalizer(cs.Ctx).Normalize(cs)
	require.NoError(t, err)
	g, err := hypergraph.BuildFromNormalized(sys)
	require.NoError(t, err)

	sNode := hypergraph.NodeFor(chc.PredicateSymbol{Name: "S"})
	reach := hypergraph.ReachableFromEntry(g)
	assert.True(t, reach[sNode])
	assert.True(t, reach[hypergraph.Exit])
	assert.True(t, hypergraph.ReachesExit(g, sNode))
}

func TestAddEdge_RejectsEntryExitViolations(t *testing.T) {
	b := hypergraph.NewBuilder()
	pNode := hypergraph.NodeFor(chc.PredicateSymbol{Name: "P"})

	err := b.AddEdge(hypergraph.HyperEdge{Sources: []hypergraph.Node{pNode}, Target: hypergraph.Entry})
	assert.ErrorIs(t, err, hypergraph.ErrEdgeIntoEntry)

	err = b.AddEdge(hypergraph.HyperEdge{Sources: []hypergraph.Node{hypergraph.Exit}, Target: pNode})
	assert.ErrorIs(t, err, hypergraph.ErrEdgeOutOfExit)
}

func TestClone_ProducesIndependentBuilder(t *testing.T) {
	cs := counterClauseSystem(t)
	sys, err := normalize.NewNormalizer(cs.Ctx).Normalize(cs)
	require.NoError(t, err)
	g, err := hypergraph.BuildFromNormalized(sys)
	require.NoError(t, err)

	b := hypergraph.Clone(g)
	g2 := b.Build()
	assert.Equal(t, len(g.Edges()), len(g2.Edges()))
	assert.Equal(t, len(g.Nodes()), len(g2.Nodes()))
}
