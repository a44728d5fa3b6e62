// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/golem-chc/chcsolver/engine"
	"github.com/golem-chc/chcsolver/logic"
	"github.com/golem-chc/chcsolver/solver"
	"github.com/golem-chc/chcsolver/validate"
)

// addSolveFlags registers the solve flags shared by the root command.
func addSolveFlags(cmd *cobra.Command) {
	cmd.Flags().String("engine", "tpa", "engine to use: tpa or tpa-split")
	cmd.Flags().Bool("witness", false, "compute and print a witness")
	cmd.Flags().Bool("validate", false, "independently validate the produced witness")
	cmd.Flags().Int("max-level", 0, "override the TPA refinement round cap (0 = default)")
}

// runSolve is the root command's RunE: parse the clause file named by
// args[0], solve it, and print the VerificationResult. Each invocation is
// tagged with a UUID so its log lines can be correlated in aggregate
// logging (grounded on the example pack's request-ID idiom, e.g.
// service.go's `uuid.New().String()` per-request identifier).
func runSolve(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	engineName, _ := flags.GetString("engine")
	witness, _ := flags.GetBool("witness")
	validateFlag, _ := flags.GetBool("validate")
	maxLevel, _ := flags.GetInt("max-level")

	var engineKind solver.EngineKind
	switch engineName {
	case "tpa":
		engineKind = solver.EngineTPA
	case "tpa-split":
		engineKind = solver.EngineTPASplit
	default:
		return fmt.Errorf("unknown --engine %q (want tpa or tpa-split)", engineName)
	}

	runID := uuid.New().String()
	logger := loggerFromContext(cmd.Context()).With("run", runID)

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	lctx := logic.NewContext()
	system, err := parseSystem(lctx, string(data))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}
	logger.Debug("parsed clause system", "clauses", len(system.Clauses()))

	opts := []solver.Option{
		solver.WithEngine(engineKind),
		solver.WithWitness(witness || validateFlag),
		solver.WithLogger(logger),
	}
	if maxLevel > 0 {
		opts = append(opts, solver.WithMaxLevel(maxLevel))
	}

	result, err := solver.Solve(cmd.Context(), system, opts...)
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, result.Answer())

	if witness {
		printWitness(out, lctx, result)
	}
	if validateFlag {
		rep := validate.Validate(lctx, system, result)
		fmt.Fprintln(out, rep.Status)
		if rep.Status != validate.Validated && rep.Reason != "" {
			fmt.Fprintln(out, "reason:", rep.Reason)
		}
	}
	return nil
}

// printWitness renders whichever witness result carries.
func printWitness(out io.Writer, ctx *logic.Context, result engine.VerificationResult) {
	if vw, ok := result.ValidityWitness(); ok {
		for name, interp := range vw.Interpretations {
			fmt.Fprintf(out, "  %s := %s\n", name, ctx.String(interp))
		}
		return
	}
	if iw, ok := result.InvalidityWitness(); ok {
		fmt.Fprintf(out, "  derivation: %d nodes, root=%d\n", len(iw.Nodes), iw.Root)
	}
}
