// SPDX-License-Identifier: MIT
package tpa

import (
	"context"
	"fmt"

	"github.com/golem-chc/chcsolver/engine"
	"github.com/golem-chc/chcsolver/hypergraph"
	"github.com/golem-chc/chcsolver/logic"
	"github.com/golem-chc/chcsolver/witness"
)

// DefaultMaxLevel bounds the refine-and-retry loop: Solve runs rounds 0
// through DefaultMaxLevel, and if none reaches either a fixpoint or a
// concrete counterexample it reports Unknown rather than looping forever.
const DefaultMaxLevel = 20

// Option configures an Engine via functional arguments.
type Option func(*Engine)

// WithSplit selects the tpa-split variant: instead of advancing every
// node's level in lockstep, only nodes whose relation has not yet reached a
// fixpoint are advanced, tracking each node's approximation level
// independently.
func WithSplit() Option {
	return func(e *Engine) { e.split = true }
}

// WithMaxLevel overrides DefaultMaxLevel. A non-positive value is ignored.
func WithMaxLevel(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxLevel = n
		}
	}
}

// Engine is the Transition-Power-Abstraction engine.Engine implementation.
type Engine struct {
	ctx      *logic.Context
	split    bool
	maxLevel int
}

// New constructs a TPA Engine bound to ctx's term factory.
func New(ctx *logic.Context, opts ...Option) Engine {
	e := Engine{ctx: ctx, maxLevel: DefaultMaxLevel}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Solve implements engine.Engine.
func (e Engine) Solve(runCtx context.Context, g *hypergraph.NormalGraph) (engine.VerificationResult, error) {
	chain, err := discoverChain(g.Underlying())
	if err != nil {
		return engine.VerificationResult{}, err
	}

	levels := make([]*levelState, len(chain))
	for i, cn := range chain {
		baseVec := cn.out.SourceVectors[0]
		primedVec := cn.in.TargetVector
		var selfLoopTerm logic.Term
		hasLoop := cn.selfLoop != nil
		if hasLoop {
			selfLoopTerm = cn.selfLoop.Constraint
		}
		levels[i] = newLevelState(e.ctx, cn.node, baseVec, primedVec, selfLoopTerm, hasLoop)
	}

	nodeLevel := make([]int, len(chain))

	for round := 0; round <= e.maxLevel; round++ {
		if cerr := runCtx.Err(); cerr != nil {
			return engine.NewResult(engine.Unknown, nil, nil), nil
		}

		ks := make([]int, len(levels))
		for i := range levels {
			if e.split {
				ks[i] = nodeLevel[i]
			} else {
				ks[i] = round
			}
			if err := levels[i].ensureLevel(e.ctx, ks[i]); err != nil {
				return engine.VerificationResult{}, fmt.Errorf("tpa: %w", err)
			}
		}

		full, err := composeFull(e.ctx, chain, levels, ks)
		if err != nil {
			return engine.VerificationResult{}, fmt.Errorf("tpa: %w", err)
		}

		sat, err := e.sat(full)
		if err != nil {
			return engine.VerificationResult{}, fmt.Errorf("tpa: %w", err)
		}
		if sat {
			iw, ok := buildInvalidityWitness(e.ctx, chain, levels, ks)
			if !ok {
				return engine.NewResult(engine.Unsafe, nil, nil), nil
			}
			return engine.NewResult(engine.Unsafe, nil, iw), nil
		}

		fixed, err := e.checkFixpoint(levels, ks)
		if err != nil {
			return engine.VerificationResult{}, fmt.Errorf("tpa: %w", err)
		}
		if allTrue(fixed) {
			vw, err := buildValidityWitness(e.ctx, chain, levels, ks)
			if err != nil {
				return engine.VerificationResult{}, fmt.Errorf("tpa: %w", err)
			}
			return engine.NewResult(engine.Safe, vw, nil), nil
		}

		if e.split {
			for i, f := range fixed {
				if !f {
					nodeLevel[i]++
				}
			}
		}
	}

	return engine.NewResult(engine.Unknown, nil, nil), nil
}

func (e Engine) sat(t logic.Term) (bool, error) {
	sat, _, err := e.ctx.Sat(t)
	return sat, err
}

// checkFixpoint reports, per node, whether doubling its level once more
// would add any reachable (base, primed) pair beyond what level ks[i]
// already covers. Soundness note: because our Tr^(k) is an exact bounded
// relation ("at most 2^k loop iterations") rather than the textbook
// algorithm's widened over-approximation, a bare "composition is UNSAT at
// level k" does not by itself prove the unbounded system safe — only
// reaching a genuine fixpoint does, since at a fixpoint Tr^(k) equals the
// self-loop's full reflexive-transitive closure and is therefore exact for
// the unbounded system too.
func (e Engine) checkFixpoint(levels []*levelState, ks []int) ([]bool, error) {
	fixed := make([]bool, len(levels))
	for i, ls := range levels {
		if err := ls.ensureLevel(e.ctx, ks[i]+1); err != nil {
			return nil, err
		}
		diff := e.ctx.And(ls.level(ks[i]+1), e.ctx.Not(ls.level(ks[i])))
		sat, _, err := e.ctx.Sat(diff)
		if err != nil {
			return nil, err
		}
		fixed[i] = !sat
	}
	return fixed, nil
}

func allTrue(bs []bool) bool {
	for _, b := range bs {
		if !b {
			return false
		}
	}
	return true
}

// buildValidityWitness extracts, for every chain node, a level-k inductive
// invariant via interpolation between the reachable-from-Entry formula and
// the must-avoid (tail-to-Exit) formula, both expressed over the node's
// canonical base vector.
func buildValidityWitness(ctx *logic.Context, chain []chainNode, levels []*levelState, ks []int) (*witness.ValidityWitness, error) {
	vw := witness.NewValidityWitness()

	acc := chain[0].in.Constraint
	accTarget := chain[0].in.TargetVector

	for i, cn := range chain {
		ls := levels[i]
		enter, err := ctx.Substitute(acc, accTarget, ls.baseVec)
		if err != nil {
			return nil, err
		}

		param := make([]logic.Term, len(ls.baseVec))
		for j := range param {
			param[j] = ctx.NewVar(cn.node.String() + "_inv")
		}
		tailParam, err := composeTail(ctx, chain, levels, ks, i, param)
		if err != nil {
			return nil, err
		}
		tail, err := ctx.Substitute(tailParam, param, ls.baseVec)
		if err != nil {
			return nil, err
		}

		// The reachable side includes cn's own level-k loop relation, so the
		// interpolant covers every state the self-loop can reach from enter.
		looped, err := ctx.Exists(ctx.And(enter, ls.level(ks[i])), ls.baseVec)
		if err != nil {
			return nil, err
		}
		reach, err := ctx.Substitute(looped, ls.primedVec, ls.baseVec)
		if err != nil {
			return nil, err
		}

		inv, err := ctx.Interpolate(reach, tail)
		if err != nil {
			return nil, err
		}
		vw.Set(cn.node.String(), inv)

		nextAcc, nextTarget, err := stepForward(ctx, cn, ls, ks[i], enter)
		if err != nil {
			return nil, err
		}
		acc, accTarget = nextAcc, nextTarget
	}
	return vw, nil
}
