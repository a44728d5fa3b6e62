// SPDX-License-Identifier: MIT
package solver

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/golem-chc/chcsolver/engine"
	"github.com/golem-chc/chcsolver/engine/tpa"
	"github.com/golem-chc/chcsolver/logic"
	"github.com/golem-chc/chcsolver/transform"
	"github.com/golem-chc/chcsolver/transform/chain"
	"github.com/golem-chc/chcsolver/transform/elim"
	"github.com/golem-chc/chcsolver/transform/merge"
	"github.com/golem-chc/chcsolver/transform/simplify"
)

// discardLogger is the default logger when the caller does not supply one
// via WithLogger: a charmbracelet/log.Logger writing to io.Discard, so
// Solve's logging calls are always safe to make unconditionally rather than
// nil-checked at every call site.
func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

// Logic enumerates the recognized LOGIC option values. Only
// QF_LIA is implemented; any other value is rejected with
// ErrUnsupportedLogic before a solve begins.
type Logic int

const (
	// QFLIA is quantifier-free linear integer arithmetic, the only theory
	// this repository's logic.Context implements.
	QFLIA Logic = iota
)

// EngineKind enumerates the recognized ENGINE option values.
// Only tpa/tpa-split are implemented in this repository; other engine
// families are out of scope — they would need nothing more from this
// package than a new EngineKind case and a constructor in newEngine.
type EngineKind int

const (
	EngineTPA EngineKind = iota
	EngineTPASplit
)

// Option configures a Solve call via functional arguments, following the
// same convention as engine/tpa.Option.
type Option func(*config)

type config struct {
	logic          Logic
	engineKind     EngineKind
	computeWitness bool
	maxLevel       int
	pipeline       []transform.Transformation
	noPipeline     bool
	log            *log.Logger
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		logic:          QFLIA,
		engineKind:     EngineTPA,
		computeWitness: false, // default off: witness construction costs extra solving work
		maxLevel:       tpa.DefaultMaxLevel,
		log:            discardLogger(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithLogger attaches a charmbracelet/log.Logger that Solve reports its
// pipeline stages to (clause/graph sizes before and after transformation,
// engine selection, final answer). A nil logger is ignored, leaving the
// silent default logger in place.
func WithLogger(l *log.Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.log = l
		}
	}
}

// WithLogic selects the LOGIC option. QFLIA is currently the only
// supported value; it is also the default.
func WithLogic(l Logic) Option {
	return func(cfg *config) { cfg.logic = l }
}

// WithEngine selects the ENGINE option (tpa or tpa-split).
func WithEngine(e EngineKind) Option {
	return func(cfg *config) { cfg.engineKind = e }
}

// WithWitness sets COMPUTE_WITNESS.
func WithWitness(compute bool) Option {
	return func(cfg *config) { cfg.computeWitness = compute }
}

// WithMaxLevel overrides the TPA engine's refinement-round cap. A non-positive value is ignored.
func WithMaxLevel(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxLevel = n
		}
	}
}

// WithPipeline overrides the default transform.Pipeline steps. Passing no
// transformations at all (WithPipeline()) disables the pipeline entirely,
// requiring the built HyperGraph to already be chain-structured for the
// engine.
func WithPipeline(steps ...transform.Transformation) Option {
	return func(cfg *config) {
		cfg.pipeline = steps
		cfg.noPipeline = len(steps) == 0
	}
}

// defaultPipeline orders the transformations so each gets the most out of
// the one before it: ConstraintSimplifier first, since a simplified
// constraint gives SimpleChainSummarizer better chain detection; then node
// elimination to a fixpoint; then a final multi-edge merge and re-chaining
// so the engine always sees the smallest chain-structured graph the
// pipeline can produce.
func defaultPipeline(ctx *logic.Context) []transform.Transformation {
	return []transform.Transformation{
		simplify.ConstraintSimplifier{Ctx: ctx},
		chain.SimpleChainSummarizer{Ctx: ctx},
		elim.NonLoopEliminator{Ctx: ctx},
		elim.SimpleNodeEliminator{Ctx: ctx},
		merge.MultiEdgeMerger{Ctx: ctx},
		chain.SimpleChainSummarizer{Ctx: ctx},
	}
}

func (cfg *config) newEngine(ctx *logic.Context) engine.Engine {
	switch cfg.engineKind {
	case EngineTPASplit:
		return tpa.New(ctx, tpa.WithSplit(), tpa.WithMaxLevel(cfg.maxLevel))
	default:
		return tpa.New(ctx, tpa.WithMaxLevel(cfg.maxLevel))
	}
}
