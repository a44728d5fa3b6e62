// SPDX-License-Identifier: MIT
package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golem-chc/chcsolver/logic"
)

func TestParseSystem_CounterTopology(t *testing.T) {
	ctx := logic.NewContext()
	cs, err := parseSystem(ctx, `
pred S 1

true => S(0)
S(x) => S(x + 1)
S(x), x < 0 => false
`)
	require.NoError(t, err)
	assert.Len(t, cs.Clauses(), 3)

	s, ok := cs.Symbol("S")
	require.True(t, ok)
	assert.Equal(t, 1, len(s.Sig))
}

func TestParseSystem_CommentsAndBlankLinesIgnored(t *testing.T) {
	ctx := logic.NewContext()
	cs, err := parseSystem(ctx, "# a comment\n\npred S 1\n\n# another\ntrue => S(0)\n")
	require.NoError(t, err)
	assert.Len(t, cs.Clauses(), 1)
}

func TestParseSystem_RejectsUndeclaredPredicate(t *testing.T) {
	ctx := logic.NewContext()
	_, err := parseSystem(ctx, "true => S(0)\n")
	assert.Error(t, err)
}

func TestParseSystem_RejectsMissingArrow(t *testing.T) {
	ctx := logic.NewContext()
	_, err := parseSystem(ctx, "pred S 1\nS(0)\n")
	assert.Error(t, err)
}

func TestParseSystem_ConjunctionAndComparisonOperators(t *testing.T) {
	ctx := logic.NewContext()
	cs, err := parseSystem(ctx, "pred S 2\nS(x, y), x <= y, y != 0 => S(x, y)\n")
	require.NoError(t, err)
	assert.Len(t, cs.Clauses(), 1)
}

func TestParseSystem_ScalarMultiplication(t *testing.T) {
	ctx := logic.NewContext()
	cs, err := parseSystem(ctx, "pred S 1\nS(x) => S(2 * x)\n")
	require.NoError(t, err)
	assert.Len(t, cs.Clauses(), 1)
}
