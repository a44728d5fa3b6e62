// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// newRootCmd builds the chcsolver command tree. It is a constructor rather
// than a package-level var so tests can build an isolated instance per
// call instead of sharing mutable global flag state.
//
// Grounded on the example pack's stacktower.Execute: a root command with a
// --verbose persistent flag that installs a leveled logger into the
// command's context before any subcommand runs.
func newRootCmd(out io.Writer) *cobra.Command {
	var verbose bool
	var configPath string

	root := &cobra.Command{
		Use:          "chcsolver [flags] FILE",
		Short:        "Solve Constrained Horn Clause verification problems",
		Long: `chcsolver decides SAFE/UNSAFE/UNKNOWN for a set of Constrained Horn
Clauses over quantifier-free linear integer arithmetic, via the
Transition-Power-Abstraction engine, and can independently validate the
witness it produces.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)
			cmd.SetContext(withLogger(cmd.Context(), logger))

			fc, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			applyFileConfig(cmd, fc)
			return nil
		},
		RunE: runSolve,
	}

	root.SetOut(out)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "TOML file of default flag values")
	addSolveFlags(root)

	root.AddCommand(newGraphCmd())
	return root
}

// applyFileConfig fills in any solve flag the caller did not set explicitly
// on the command line with the value loaded from a --config file.
func applyFileConfig(cmd *cobra.Command, fc fileConfig) {
	flags := cmd.Flags()
	if fc.Engine != "" && !flags.Changed("engine") {
		_ = flags.Set("engine", fc.Engine)
	}
	if fc.Witness && !flags.Changed("witness") {
		_ = flags.Set("witness", "true")
	}
	if fc.Validate && !flags.Changed("validate") {
		_ = flags.Set("validate", "true")
	}
	if fc.MaxLevel > 0 && !flags.Changed("max-level") {
		_ = flags.Set("max-level", strconv.Itoa(fc.MaxLevel))
	}
}

func main() {
	root := newRootCmd(os.Stdout)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "chcsolver:", err)
		os.Exit(1)
	}
}
