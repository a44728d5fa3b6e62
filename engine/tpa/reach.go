// SPDX-License-Identifier: MIT
package tpa

import "github.com/golem-chc/chcsolver/logic"

// stepForward folds node cn's self-loop (at level k) and its outgoing edge
// into enterTerm — a formula over ls.baseVec describing the value flowing
// into cn — producing the formula reachable just past cn's outgoing edge,
// expressed over that edge's TargetVector (nil if the edge targets Exit).
func stepForward(ctx *logic.Context, cn chainNode, ls *levelState, k int, enterTerm logic.Term) (logic.Term, []logic.Term, error) {
	conj := ctx.And(enterTerm, ls.level(k))
	looped, err := ctx.Exists(conj, ls.baseVec)
	if err != nil {
		return logic.Term{}, nil, err
	}

	preStep, err := ctx.Substitute(looped, ls.primedVec, ls.baseVec)
	if err != nil {
		return logic.Term{}, nil, err
	}

	merged := ctx.And(preStep, cn.out.Constraint)
	linked, err := ctx.Exists(merged, ls.baseVec)
	if err != nil {
		return logic.Term{}, nil, err
	}
	return linked, cn.out.TargetVector, nil
}

// composeFull walks the whole chain, folding each node's loop and outgoing
// edge in turn, and returns the closed formula describing exact reachability
// of Exit at the given per-node levels: Init, then each node's k-power
// self-loop relation and step edge in sequence, ending at Bad.
func composeFull(ctx *logic.Context, chain []chainNode, levels []*levelState, ks []int) (logic.Term, error) {
	acc := chain[0].in.Constraint
	accTarget := chain[0].in.TargetVector

	for i, cn := range chain {
		ls := levels[i]
		enter, err := ctx.Substitute(acc, accTarget, ls.baseVec)
		if err != nil {
			return logic.Term{}, err
		}
		next, nextTarget, err := stepForward(ctx, cn, ls, ks[i], enter)
		if err != nil {
			return logic.Term{}, err
		}
		acc, accTarget = next, nextTarget
	}
	return acc, nil
}

// composeTail builds the "must-avoid" side of node startIdx's interpolation
// query: starting from a free
// paramVec standing in for startIdx's current value, continue through its
// loop, its outgoing edge, and every subsequent node to Exit. paramVec must
// be a vector of fresh variables distinct from every chain node's canonical
// base/primed vectors, so the node's own loop relation can be parameterized
// by it without aliasing (see relation.go's composeRelation for the same
// concern in the self-composition case).
func composeTail(ctx *logic.Context, chain []chainNode, levels []*levelState, ks []int, startIdx int, paramVec []logic.Term) (logic.Term, error) {
	ls := levels[startIdx]
	eqs := make([]logic.Term, len(ls.baseVec))
	for i := range ls.baseVec {
		eqs[i] = ctx.Eq(ls.baseVec[i], paramVec[i])
	}

	acc, accTarget, err := stepForward(ctx, chain[startIdx], ls, ks[startIdx], ctx.And(eqs...))
	if err != nil {
		return logic.Term{}, err
	}

	for j := startIdx + 1; j < len(chain); j++ {
		ls2 := levels[j]
		enter, err := ctx.Substitute(acc, accTarget, ls2.baseVec)
		if err != nil {
			return logic.Term{}, err
		}
		next, nextTarget, err := stepForward(ctx, chain[j], ls2, ks[j], enter)
		if err != nil {
			return logic.Term{}, err
		}
		acc, accTarget = next, nextTarget
	}
	return acc, nil
}
