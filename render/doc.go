// SPDX-License-Identifier: MIT

// Package render turns a hypergraph.HyperGraph's DOT representation
// (hypergraph.ToDOT) into an SVG image via Graphviz, for the chcsolver
// CLI's "graph" subcommand.
//
// Grounded on the example pack's nodelink.RenderSVG: parse the DOT text
// with goccy/go-graphviz (a cgo-free reimplementation of the Graphviz
// layout engine) and render it to a format.
package render
