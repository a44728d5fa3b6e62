// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/golem-chc/chcsolver/hypergraph"
	"github.com/golem-chc/chcsolver/logic"
	"github.com/golem-chc/chcsolver/normalize"
	"github.com/golem-chc/chcsolver/render"
)

// newGraphCmd builds the "graph" subcommand: parse a clause file, build its
// HyperGraph, and print either the Graphviz DOT source (--format dot,
// default) or a rendered SVG (--format svg) to stdout or -o/--output.
//
// Grounded on the example pack's ToDOT/RenderSVG split (nodelink package):
// a pure textual DOT step, and a separate Graphviz-backed rendering step.
func newGraphCmd() *cobra.Command {
	var format string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "graph FILE",
		Short: "Render a clause system's hypergraph as Graphviz DOT or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			ctx := logic.NewContext()
			system, err := parseSystem(ctx, string(data))
			if err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}

			normalized, err := normalize.NewNormalizer(ctx).Normalize(system)
			if err != nil {
				return fmt.Errorf("normalize: %w", err)
			}
			g, err := hypergraph.BuildFromNormalized(normalized)
			if err != nil {
				return fmt.Errorf("build graph: %w", err)
			}

			dot := hypergraph.ToDOT(g)

			var payload []byte
			switch format {
			case "dot":
				payload = []byte(dot)
			case "svg":
				payload, err = render.SVG(dot)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown --format %q (want dot or svg)", format)
			}

			if outputPath == "" {
				_, err = cmd.OutOrStdout().Write(payload)
				return err
			}
			return os.WriteFile(outputPath, payload, 0o644)
		},
	}

	cmd.Flags().StringVar(&format, "format", "dot", "output format: dot or svg")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write to this file instead of stdout")
	return cmd
}
