// SPDX-License-Identifier: MIT
package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golem-chc/chcsolver/render"
)

func TestSVG_RendersSimpleGraph(t *testing.T) {
	dot := `digraph chc {
  "Entry" -> "S";
  "S" -> "Exit";
}
`
	svg, err := render.SVG(dot)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
}

func TestSVG_RejectsMalformedDOT(t *testing.T) {
	_, err := render.SVG("not a graph {")
	assert.Error(t, err)
}
