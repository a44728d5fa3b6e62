// SPDX-License-Identifier: MIT
package simplify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golem-chc/chcsolver/chc"
	"github.com/golem-chc/chcsolver/hypergraph"
	"github.com/golem-chc/chcsolver/logic"
	"github.com/golem-chc/chcsolver/transform/simplify"
)

func TestConstraintSimplifier_FoldsConstantComparison(t *testing.T) {
	ctx := logic.NewContext()
	s := hypergraph.NodeFor(chc.PredicateSymbol{Name: "S"})

	b := hypergraph.NewBuilder()
	require.NoError(t, b.AddEdge(hypergraph.HyperEdge{
		Sources:    []hypergraph.Node{hypergraph.Entry},
		Target:     s,
		Constraint: ctx.Lt(ctx.Const(1), ctx.Const(2)), // always true
	}))
	g := b.Build()

	simp := simplify.ConstraintSimplifier{Ctx: ctx}
	out, bt, err := simp.Transform(g)
	require.NoError(t, err)
	require.NotNil(t, bt)

	edges := out.Incoming(s)
	require.Len(t, edges, 1)
	assert.Equal(t, ctx.True(), edges[0].Constraint)
}
