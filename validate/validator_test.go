// SPDX-License-Identifier: MIT
package validate_test

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
	"github.com/golem-chc/chcsolver/validate"
	"github.com/golem-chc/chcsolver/witness"
)

// buildCounterSystem is scenario 1: true => S(0); S(x) => S(x+1);
// S(x) ∧ x<0 => false. Returns the system and the symbol S.
func buildCounterSystem(t *testing.T) (*chc.ClauseSystem, chc.PredicateSymbol) {
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
	return cs, s
}

func TestValidateSafety_CounterInvariantHolds(t *testing.T) {
	cs, s := buildCounterSystem(t)
	ctx := cs.Ctx

	w := witness.NewValidityWitness()
	vm := normalize.NewVersionManager(ctx)
	require.NoError(t, vm.Register(s))
	base := vm.Base(s)
	w.Set(s.Name, ctx.Ge(base[0], ctx.Const(0)))

	rep := validate.ValidateSafety(ctx, cs, w)
	assert.Equal(t, validate.Validated, rep.Status, rep.Reason)
}

func TestValidateSafety_RejectsUnsoundInterpretation(t *testing.T) {
	cs, s := buildCounterSystem(t)
	ctx := cs.Ctx

	w := witness.NewValidityWitness()
	// S(x) = true is unsound: it does not rule out the bad state x < 0.
	_ = s
	w.Set(s.Name, ctx.True())

	rep := validate.ValidateSafety(ctx, cs, w)
	assert.Equal(t, validate.NotValidated, rep.Status)
}

func TestValidateSafety_MissingRequiredInterpretationFails(t *testing.T) {
	cs, _ := buildCounterSystem(t)
	w := witness.NewValidityWitness()

	rep := validate.ValidateSafety(cs.Ctx, cs, w)
	assert.Equal(t, validate.NotValidated, rep.Status)
}

func TestValidateUnsafety_ValidatesEngineProducedDerivation(t *testing.T) {
	// scenario 2: as the counter system, but the query is
	// triggerable immediately (x >= 0 at the fact), so TPA must return
	// UNSAFE with a two-edge derivation (Entry->S, S->Exit).
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
		chc.FalseInstance(),
		[]chc.PredicateInstance{{Symbol: s, Args: []logic.Term{x}}},
		ctx.Ge(x, ctx.Const(0)),
	))

	n := normalize.NewNormalizer(ctx)
	normalized, err := n.Normalize(cs)
	require.NoError(t, err)
	g, err := hypergraph.BuildFromNormalized(normalized)
	require.NoError(t, err)
	ng, err := g.ToNormalGraph()
	require.NoError(t, err)

	e := tpa.New(ctx)
	result, err := e.Solve(context.Background(), ng)
	require.NoError(t, err)
	require.Equal(t, engine.Unsafe, result.Answer())

	iw, ok := result.InvalidityWitness()
	require.True(t, ok)

	rep := validate.ValidateUnsafety(ctx, cs, iw)
	assert.Equal(t, validate.Validated, rep.Status, rep.Reason)
}

func TestValidateUnsafety_RejectsEdgeNotInOriginalSystem(t *testing.T) {
	cs, s := buildCounterSystem(t)
	ctx := cs.Ctx
	sNode := hypergraph.NodeFor(s)

	bogus := hypergraph.HyperEdge{
		Sources:    []hypergraph.Node{hypergraph.Entry},
		Target:     sNode,
		Constraint: ctx.Eq(ctx.Const(1), ctx.Const(2)), // never appears in cs
	}
	iw := witness.NewInvalidityWitness()
	factIdx := iw.AddNode(witness.DerivationNode{Edge: bogus, Model: logic.Model{}, Children: []int{-1}})
	exitEdge := hypergraph.HyperEdge{Sources: []hypergraph.Node{sNode}, Target: hypergraph.Exit}
	rootIdx := iw.AddNode(witness.DerivationNode{Edge: exitEdge, Model: logic.Model{}, Children: []int{factIdx}})
	iw.Root = rootIdx

	rep := validate.ValidateUnsafety(ctx, cs, iw)
	assert.Equal(t, validate.NotValidated, rep.Status)
}
