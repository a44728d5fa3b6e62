// SPDX-License-Identifier: MIT
package hypergraph

import (
	"bytes"
	"fmt"
	"strings"
)

// ToDOT renders g as a Graphviz DOT digraph: one node per predicate symbol
// (Entry/Exit styled distinctly) and one edge per HyperEdge. A hyperedge
// with more than one source is rendered as a small synthetic junction node
// (DOT has no native hyperedges), fanning every source into it and the
// junction into the target, labeled with the edge's ID.
//
// Grounded on the node-link DOT export in the example pack
// (nodelink.ToDOT): a header with graph-wide styling defaults, one
// declaration line per node, one line per edge.
func ToDOT(g *HyperGraph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph chc {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=ellipse, style=filled, fillcolor=white, fontsize=12];\n\n")

	for _, n := range g.Nodes() {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.String(), nodeAttrs(n))
	}
	buf.WriteString("\n")

	for i, e := range g.edges {
		writeEdge(&buf, i, e)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n Node) string {
	switch {
	case n.IsEntry():
		return "shape=doublecircle, fillcolor=lightgreen"
	case n.IsExit():
		return "shape=doublecircle, fillcolor=lightcoral"
	default:
		return "shape=ellipse"
	}
}

func writeEdge(buf *bytes.Buffer, i int, e HyperEdge) {
	label := strings.ReplaceAll(e.ID, `"`, `\"`)
	if len(e.Sources) == 1 {
		fmt.Fprintf(buf, "  %q -> %q [label=%q];\n", e.Sources[0].String(), e.Target.String(), label)
		return
	}

	junction := fmt.Sprintf("h%d", i)
	fmt.Fprintf(buf, "  %q [shape=point, width=0.08, fillcolor=black];\n", junction)
	for _, src := range e.Sources {
		fmt.Fprintf(buf, "  %q -> %q;\n", src.String(), junction)
	}
	fmt.Fprintf(buf, "  %q -> %q [label=%q];\n", junction, e.Target.String(), label)
}
