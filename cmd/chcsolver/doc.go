// SPDX-License-Identifier: MIT

// Command chcsolver is a small CLI front door over package solver, built
// with spf13/cobra and charmbracelet/log (see root.go, log.go), the way
// the example pack's own CLI (matzehuels-stacktower's internal/cli) is
// built. SMT-LIB parsing and general option handling are treated as
// external frontend concerns, so this command reads a minimal line-oriented
// clause format instead (see parseSystem in parse.go), builds a
// chc.ClauseSystem, runs solver.Solve, and prints the resulting
// VerificationResult.
//
// Usage:
//
//	chcsolver [--engine tpa|tpa-split] [--witness] [--validate] [--max-level N] [--config FILE] [-v] FILE
//	chcsolver graph [--format dot|svg] [-o FILE] FILE
//
// --config loads a TOML file of default flag values (see config.go);
// explicit flags on the command line always take precedence. -v/--verbose
// raises logging to debug level.
//
// File format, one directive per line ("#" starts a line comment):
//
//	pred NAME ARITY
//	BODY => HEAD
//
// BODY is a comma-separated list of predicate atoms ("S(x)"), the literal
// "true", and/or arithmetic constraints ("x < 0"); HEAD is a predicate atom
// or the literal "false". See testdata/counter.chc for a worked example.
package main
