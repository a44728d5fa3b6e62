// SPDX-License-Identifier: MIT
package solver

import (
	"context"
	"fmt"

	"github.com/golem-chc/chcsolver/chc"
	"github.com/golem-chc/chcsolver/engine"
	"github.com/golem-chc/chcsolver/hypergraph"
	"github.com/golem-chc/chcsolver/normalize"
	"github.com/golem-chc/chcsolver/transform"
)

// Solve runs the full data-flow pipeline over system: normalize, build the
// HyperGraph, run the transform.Pipeline (default or as overridden by
// WithPipeline), hand the result to the selected engine.Engine, and lift
// any produced witness back through the pipeline's BackTranslator onto
// system's own graph.
//
// A solve owns system.Ctx exclusively for its duration; the caller must
// not mutate system concurrently with a Solve call, though independent
// Solve calls over independent ClauseSystems may run in separate
// goroutines.
func Solve(runCtx context.Context, system *chc.ClauseSystem, opts ...Option) (engine.VerificationResult, error) {
	cfg := newConfig(opts...)
	if cfg.logic != QFLIA {
		return engine.VerificationResult{}, fmt.Errorf("Solve: %w", ErrUnsupportedLogic)
	}

	ctx := system.Ctx
	cfg.log.Debug("solve starting", "clauses", len(system.Clauses()))

	normalized, err := normalize.NewNormalizer(ctx).Normalize(system)
	if err != nil {
		return engine.VerificationResult{}, fmt.Errorf("Solve: normalize: %w", err)
	}

	g, err := hypergraph.BuildFromNormalized(normalized)
	if err != nil {
		return engine.VerificationResult{}, fmt.Errorf("Solve: build graph: %w", err)
	}
	cfg.log.Debug("graph built", "nodes", len(g.Nodes()), "edges", len(g.Edges()))

	steps := cfg.pipeline
	if steps == nil && !cfg.noPipeline {
		steps = defaultPipeline(ctx)
	}

	var bt transform.BackTranslator = transform.IdentityBackTranslator{}
	if len(steps) > 0 {
		pipeline := transform.NewPipeline(steps...)
		g, bt, err = pipeline.Run(g)
		if err != nil {
			return engine.VerificationResult{}, fmt.Errorf("Solve: %w: %v", ErrSolverFailure, err)
		}
		cfg.log.Debug("pipeline finished", "steps", len(steps), "nodes", len(g.Nodes()), "edges", len(g.Edges()))
	}

	ng, err := g.ToNormalGraph()
	if err != nil {
		return engine.VerificationResult{}, fmt.Errorf("Solve: %w: %v", ErrSolverFailure, err)
	}

	cfg.log.Debug("engine starting", "engine", engineName(cfg.engineKind))
	eng := cfg.newEngine(ctx)
	result, err := eng.Solve(runCtx, ng)
	if err != nil {
		return engine.VerificationResult{}, fmt.Errorf("Solve: %w: %v", ErrSolverFailure, err)
	}
	cfg.log.Info("solve finished", "answer", result.Answer())

	return liftResult(result, bt, cfg)
}

func engineName(k EngineKind) string {
	if k == EngineTPASplit {
		return "tpa-split"
	}
	return "tpa"
}

// liftResult translates result's witness (if any) back onto the
// pre-transformation graph, then drops it entirely unless
// cfg.computeWitness is set.
func liftResult(result engine.VerificationResult, bt transform.BackTranslator, cfg *config) (engine.VerificationResult, error) {
	if !cfg.computeWitness {
		return engine.NewResult(result.Answer(), nil, nil), nil
	}

	switch result.Answer() {
	case engine.Safe:
		w, ok := result.ValidityWitness()
		if !ok {
			return result, nil
		}
		lifted, err := bt.TranslateValidity(w)
		if err != nil {
			return engine.VerificationResult{}, fmt.Errorf("Solve: back-translate validity: %w", err)
		}
		return engine.NewResult(engine.Safe, lifted, nil), nil
	case engine.Unsafe:
		w, ok := result.InvalidityWitness()
		if !ok {
			return result, nil
		}
		lifted, err := bt.TranslateInvalidity(w)
		if err != nil {
			return engine.VerificationResult{}, fmt.Errorf("Solve: back-translate invalidity: %w", err)
		}
		return engine.NewResult(engine.Unsafe, nil, lifted), nil
	default:
		return result, nil
	}
}
