// SPDX-License-Identifier: MIT
package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// SVG renders a Graphviz DOT document (such as hypergraph.ToDOT's output)
// to SVG bytes.
//
// Grounded on the example pack's nodelink.RenderSVG (parse DOT, render via
// graphviz.New/ParseBytes/Render), minus the pack's SVG viewBox
// normalization, which is a rendering nicety this CLI has no use for.
func SVG(dot string) ([]byte, error) {
	ctx := context.Background()

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("render: init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("render: parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: render SVG: %w", err)
	}
	return buf.Bytes(), nil
}
