// SPDX-License-Identifier: MIT
package solver_test

import (
	"context"
	"fmt"

	"github.com/golem-chc/chcsolver/chc"
	"github.com/golem-chc/chcsolver/logic"
	"github.com/golem-chc/chcsolver/solver"
)

// ExampleSolve_safe runs scenario 1: a counter starting at 0 and
// incrementing by 1 never goes negative.
func ExampleSolve_safe() {
	ctx := logic.NewContext()
	cs := chc.NewClauseSystem(ctx)
	s := chc.PredicateSymbol{Name: "S", Sig: []logic.Sort{logic.SortInt}}
	if err := cs.AddUninterpretedPredicate(s); err != nil {
		fmt.Println("error:", err)
		return
	}

	x := ctx.NewVar("x")
	cs.AddClause(
		chc.PredicateInstance{Symbol: s, Args: []logic.Term{ctx.Const(0)}},
		[]chc.PredicateInstance{chc.TrueInstance()},
		ctx.True(),
	)
	cs.AddClause(
		chc.PredicateInstance{Symbol: s, Args: []logic.Term{ctx.Add(x, ctx.Const(1))}},
		[]chc.PredicateInstance{{Symbol: s, Args: []logic.Term{x}}},
		ctx.True(),
	)
	cs.AddClause(
		chc.FalseInstance(),
		[]chc.PredicateInstance{{Symbol: s, Args: []logic.Term{x}}},
		ctx.Lt(x, ctx.Const(0)),
	)

	result, err := solver.Solve(context.Background(), cs)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(result.Answer())
	// Output:
	// SAFE
}

// ExampleSolve_unsafe runs scenario 2: the same counter, but the
// bad state x > 1 is reachable, so the answer is UNSAFE.
func ExampleSolve_unsafe() {
	ctx := logic.NewContext()
	cs := chc.NewClauseSystem(ctx)
	s := chc.PredicateSymbol{Name: "S", Sig: []logic.Sort{logic.SortInt}}
	if err := cs.AddUninterpretedPredicate(s); err != nil {
		fmt.Println("error:", err)
		return
	}

	x := ctx.NewVar("x")
	cs.AddClause(
		chc.PredicateInstance{Symbol: s, Args: []logic.Term{ctx.Const(0)}},
		[]chc.PredicateInstance{chc.TrueInstance()},
		ctx.True(),
	)
	cs.AddClause(
		chc.PredicateInstance{Symbol: s, Args: []logic.Term{ctx.Add(x, ctx.Const(1))}},
		[]chc.PredicateInstance{{Symbol: s, Args: []logic.Term{x}}},
		ctx.True(),
	)
	cs.AddClause(
		chc.FalseInstance(),
		[]chc.PredicateInstance{{Symbol: s, Args: []logic.Term{x}}},
		ctx.Gt(x, ctx.Const(1)),
	)

	result, err := solver.Solve(context.Background(), cs)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(result.Answer())
	// Output:
	// UNSAFE
}
