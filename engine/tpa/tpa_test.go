// SPDX-License-Identifier: MIT
package tpa_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golem-chc/chcsolver/chc"
	"github.com/golem-chc/chcsolver/engine"
	"github.com/golem-chc/chcsolver/engine/tpa"
	"github.com/golem-chc/chcsolver/hypergraph"
	"github.com/golem-chc/chcsolver/logic"
	"github.com/golem-chc/chcsolver/normalize"
)

// counterSystem builds "true => S(0)"; "S(x) => S(x+1)"; plus whatever
// queryConstraint(x) a caller supplies for "S(x) & queryConstraint(x) =>
// false".
func counterSystem(t *testing.T, queryConstraint func(ctx *logic.Context, x logic.Term) logic.Term) (*logic.Context, *hypergraph.NormalGraph) {
	t.Helper()
	ctx := logic.NewContext()
	cs := chc.NewClauseSystem(ctx)
	s := chc.PredicateSymbol{Name: "S", Sig: []logic.Sort{logic.SortInt}}
	require.NoError(t, cs.AddUninterpretedPredicate(s))

	require.NoError(t, cs.AddClause(
		chc.PredicateInstance{Symbol: s, Args: []logic.Term{ctx.Const(0)}},
		[]chc.PredicateInstance{chc.TrueInstance()}, ctx.True(),
	))

	x := ctx.NewVar("x")
	require.NoError(t, cs.AddClause(
		chc.PredicateInstance{Symbol: s, Args: []logic.Term{ctx.Add(x, ctx.Const(1))}},
		[]chc.PredicateInstance{{Symbol: s, Args: []logic.Term{x}}}, ctx.True(),
	))

	y := ctx.NewVar("y")
	require.NoError(t, cs.AddClause(
		chc.FalseInstance(),
		[]chc.PredicateInstance{{Symbol: s, Args: []logic.Term{y}}}, queryConstraint(ctx, y),
	))

	sys, err := normalize.NewNormalizer(ctx).Normalize(cs)
	require.NoError(t, err)
	g, err := hypergraph.BuildFromNormalized(sys)
	require.NoError(t, err)
	ng, err := g.ToNormalGraph()
	require.NoError(t, err)
	return ctx, ng
}

func TestEngine_Solve_CounterSafe(t *testing.T) {
	ctx, g := counterSystem(t, func(ctx *logic.Context, x logic.Term) logic.Term {
		return ctx.Lt(x, ctx.Const(0))
	})

	e := tpa.New(ctx)
	result, err := e.Solve(context.Background(), g)
	require.NoError(t, err)

	require.Equal(t, engine.Safe, result.Answer())
	vw, ok := result.ValidityWitness()
	require.True(t, ok)
	_, hasS := vw.Get("S")
	assert.True(t, hasS, "invariant for S should be recorded")
}

func TestEngine_Solve_CounterUnsafe(t *testing.T) {
	ctx, g := counterSystem(t, func(ctx *logic.Context, x logic.Term) logic.Term {
		return ctx.Gt(x, ctx.Const(1))
	})

	e := tpa.New(ctx)
	result, err := e.Solve(context.Background(), g)
	require.NoError(t, err)

	require.Equal(t, engine.Unsafe, result.Answer())
	iw, ok := result.InvalidityWitness()
	if ok {
		root, found := iw.Node(iw.Root)
		require.True(t, found)
		assert.True(t, root.Edge.Target.IsExit())
	}
}

func TestEngine_Solve_CounterSafe_Split(t *testing.T) {
	ctx, g := counterSystem(t, func(ctx *logic.Context, x logic.Term) logic.Term {
		return ctx.Lt(x, ctx.Const(0))
	})

	e := tpa.New(ctx, tpa.WithSplit())
	result, err := e.Solve(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, engine.Safe, result.Answer())
}

func TestEngine_Solve_NotChainStructured(t *testing.T) {
	// Two independent Entry-fed predicates, each with its own query: a valid
	// NormalGraph (every edge arity 1), but Entry has two outgoing edges, so
	// it is not a single chain.
	ctx := logic.NewContext()
	cs := chc.NewClauseSystem(ctx)
	p := chc.PredicateSymbol{Name: "P", Sig: nil}
	m := chc.PredicateSymbol{Name: "M", Sig: nil}
	require.NoError(t, cs.AddUninterpretedPredicate(p))
	require.NoError(t, cs.AddUninterpretedPredicate(m))

	require.NoError(t, cs.AddClause(
		chc.PredicateInstance{Symbol: p}, []chc.PredicateInstance{chc.TrueInstance()}, ctx.True(),
	))
	require.NoError(t, cs.AddClause(
		chc.PredicateInstance{Symbol: m}, []chc.PredicateInstance{chc.TrueInstance()}, ctx.True(),
	))
	require.NoError(t, cs.AddClause(
		chc.FalseInstance(), []chc.PredicateInstance{{Symbol: p}}, ctx.True(),
	))
	require.NoError(t, cs.AddClause(
		chc.FalseInstance(), []chc.PredicateInstance{{Symbol: m}}, ctx.True(),
	))

	sys, err := normalize.NewNormalizer(ctx).Normalize(cs)
	require.NoError(t, err)
	g, err := hypergraph.BuildFromNormalized(sys)
	require.NoError(t, err)
	ng, err := g.ToNormalGraph()
	require.NoError(t, err)

	e := tpa.New(ctx)
	_, err = e.Solve(context.Background(), ng)
	assert.ErrorIs(t, err, engine.ErrNotChainStructured)
}
