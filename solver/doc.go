// SPDX-License-Identifier: MIT

// Package solver is the top-level orchestrator tying the pipeline stages
// into one call: normalize a chc.ClauseSystem, build its HyperGraph,
// optionally run a transform.Pipeline, hand the result to an engine.Engine,
// and lift any witness back through the pipeline's BackTranslator.
//
// Solve is a single entry point that resolves functional Options into an
// immutable config, then runs each stage in order, wrapping failures with
// the stage that produced them.
package solver
