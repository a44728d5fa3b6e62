// SPDX-License-Identifier: MIT
package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golem-chc/chcsolver/chc"
	"github.com/golem-chc/chcsolver/logic"
	"github.com/golem-chc/chcsolver/normalize"
)

func buildCounterSystem(t *testing.T) (*logic.Context, *chc.ClauseSystem, chc.PredicateSymbol) {
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
	return ctx, cs, s
}

func TestNormalize_UsesCanonicalVectors(t *testing.T) {
	ctx, cs, s := buildCounterSystem(t)
	sys, err := normalize.NewNormalizer(ctx).Normalize(cs)
	require.NoError(t, err)
	require.Len(t, sys.Clauses, 3)

	base := sys.Versions.Base(s)
	primed := sys.Versions.Primed(s)

	for _, cl := range sys.Clauses {
		for _, b := range cl.Body {
			if b.Symbol.Name == chc.True.Name {
				continue
			}
			assert.Equal(t, base, b.Args)
		}
		if cl.Head.Symbol.Name != chc.False.Name {
			assert.Equal(t, primed, cl.Head.Args)
		}
	}
}

func TestNormalize_DropsTautologyAndTriviallySafe(t *testing.T) {
	ctx := logic.NewContext()
	cs := chc.NewClauseSystem(ctx)
	s := chc.PredicateSymbol{Name: "S", Sig: []logic.Sort{logic.SortInt}}
	require.NoError(t, cs.AddUninterpretedPredicate(s))
	x := ctx.NewVar("x")

	// true => true : tautology
	require.NoError(t, cs.AddClause(chc.TrueInstance(), nil, ctx.True()))
	// false ∧ S(x) => S(x) : trivially safe (never fires)
	require.NoError(t, cs.AddClause(
		chc.PredicateInstance{Symbol: s, Args: []logic.Term{x}},
		[]chc.PredicateInstance{chc.FalseInstance(), {Symbol: s, Args: []logic.Term{x}}},
		ctx.True(),
	))

	sys, err := normalize.NewNormalizer(ctx).Normalize(cs)
	require.NoError(t, err)
	assert.Empty(t, sys.Clauses)
}

func TestNormalize_DuplicateBodyOccurrenceGetsFreshVector(t *testing.T) {
	ctx := logic.NewContext()
	cs := chc.NewClauseSystem(ctx)
	s := chc.PredicateSymbol{Name: "S", Sig: []logic.Sort{logic.SortInt}}
	require.NoError(t, cs.AddUninterpretedPredicate(s))
	x, y := ctx.NewVar("x"), ctx.NewVar("y")

	// S(x) ∧ S(y) ∧ x < y => S(x)
	require.NoError(t, cs.AddClause(
		chc.PredicateInstance{Symbol: s, Args: []logic.Term{x}},
		[]chc.PredicateInstance{{Symbol: s, Args: []logic.Term{x}}, {Symbol: s, Args: []logic.Term{y}}},
		ctx.Lt(x, y),
	))

	sys, err := normalize.NewNormalizer(ctx).Normalize(cs)
	require.NoError(t, err)
	require.Len(t, sys.Clauses, 1)
	body := sys.Clauses[0].Body
	require.Len(t, body, 2)
	assert.NotEqual(t, body[0].Args, body[1].Args)
}
