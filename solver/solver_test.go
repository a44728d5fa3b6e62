// SPDX-License-Identifier: MIT
package solver_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golem-chc/chcsolver/chc"
	"github.com/golem-chc/chcsolver/engine"
	"github.com/golem-chc/chcsolver/logic"
	"github.com/golem-chc/chcsolver/solver"
	"github.com/golem-chc/chcsolver/validate"
)

// counterSystem builds scenario 1/2's shared topology:
// true => S(0); S(x) => S(x+1); and a caller-supplied bad-state predicate.
func counterSystem(t *testing.T, bad func(ctx *logic.Context, x logic.Term) logic.Term) *chc.ClauseSystem {
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
		bad(ctx, x),
	))
	return cs
}

func TestSolve_CounterSafe(t *testing.T) {
	cs := counterSystem(t, func(ctx *logic.Context, x logic.Term) logic.Term {
		return ctx.Lt(x, ctx.Const(0)) // scenario 1
	})

	result, err := solver.Solve(context.Background(), cs, solver.WithWitness(true))
	require.NoError(t, err)
	assert.Equal(t, engine.Safe, result.Answer())

	_, ok := result.ValidityWitness()
	require.True(t, ok)

	rep := validate.Validate(cs.Ctx, cs, result)
	assert.Equal(t, validate.Validated, rep.Status, rep.Reason)
}

func TestSolve_CounterUnsafe(t *testing.T) {
	cs := counterSystem(t, func(ctx *logic.Context, x logic.Term) logic.Term {
		return ctx.Gt(x, ctx.Const(1)) // scenario 2
	})

	result, err := solver.Solve(context.Background(), cs, solver.WithWitness(true))
	require.NoError(t, err)
	assert.Equal(t, engine.Unsafe, result.Answer())

	rep := validate.Validate(cs.Ctx, cs, result)
	assert.Equal(t, validate.Validated, rep.Status, rep.Reason)
}

func TestSolve_WithoutWitnessOmitsIt(t *testing.T) {
	cs := counterSystem(t, func(ctx *logic.Context, x logic.Term) logic.Term {
		return ctx.Lt(x, ctx.Const(0))
	})

	result, err := solver.Solve(context.Background(), cs)
	require.NoError(t, err)
	assert.Equal(t, engine.Safe, result.Answer())
	_, ok := result.ValidityWitness()
	assert.False(t, ok)
}

func TestSolve_RejectsUnsupportedLogic(t *testing.T) {
	ctx := logic.NewContext()
	cs := chc.NewClauseSystem(ctx)

	_, err := solver.Solve(context.Background(), cs, solver.WithLogic(solver.QFLIA+1))
	assert.ErrorIs(t, err, solver.ErrUnsupportedLogic)
}

func TestSolve_CancellationYieldsUnknown(t *testing.T) {
	cs := counterSystem(t, func(ctx *logic.Context, x logic.Term) logic.Term {
		return ctx.Lt(x, ctx.Const(0))
	})

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := solver.Solve(cancelled, cs)
	require.NoError(t, err)
	assert.Equal(t, engine.Unknown, result.Answer())
}

func TestSolve_WithLoggerReportsStages(t *testing.T) {
	cs := counterSystem(t, func(ctx *logic.Context, x logic.Term) logic.Term {
		return ctx.Lt(x, ctx.Const(0))
	})

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	result, err := solver.Solve(context.Background(), cs, solver.WithLogger(logger))
	require.NoError(t, err)
	assert.Equal(t, engine.Safe, result.Answer())
	assert.Contains(t, buf.String(), "solve finished")
}

func TestSolve_NilLoggerIgnored(t *testing.T) {
	cs := counterSystem(t, func(ctx *logic.Context, x logic.Term) logic.Term {
		return ctx.Lt(x, ctx.Const(0))
	})

	_, err := solver.Solve(context.Background(), cs, solver.WithLogger(nil))
	require.NoError(t, err)
}
