// SPDX-License-Identifier: MIT
package tpa

import (
	"github.com/golem-chc/chcsolver/hypergraph"
	"github.com/golem-chc/chcsolver/logic"
)

// composeRelation sequentially composes two relations r1, r2 — both over
// (base, primed) — into "r1 then r2", via a fresh intermediate vector rather
// than transform.ComposeSequential's rename-in-place: r1 and r2 here always
// share the very same (base, primed) pair (this is self-composition of one
// node's k-power relation with itself), so renaming r1's primed vector onto
// r2's base vector in place — transform.ComposeSequential's approach for
// distinct-symbol chain edges — would alias r1's own base vector with the
// intermediate, losing it. Introducing a fresh "mid" vector keeps base and
// primed free in the result, as a relation over (base, primed) must be.
func composeRelation(ctx *logic.Context, r1, r2 logic.Term, base, primed []logic.Term) (logic.Term, error) {
	mid := make([]logic.Term, len(base))
	for i := range mid {
		mid[i] = ctx.NewVar("tpa_mid")
	}

	r1m, err := ctx.Substitute(r1, primed, mid)
	if err != nil {
		return logic.Term{}, err
	}
	r2m, err := ctx.Substitute(r2, base, mid)
	if err != nil {
		return logic.Term{}, err
	}

	conj := ctx.And(r1m, r2m)
	if len(mid) == 0 {
		return conj, nil
	}
	return ctx.Exists(conj, mid)
}

// levelState tracks node qi's k-power abstractions Tr_i^(0), Tr_i^(1), ...,
// grown lazily as the refine loop advances k.
type levelState struct {
	node        hypergraph.Node
	baseVec     []logic.Term
	primedVec   []logic.Term
	hasSelfLoop bool
	selfLoop    logic.Term
	trLevels    []logic.Term
}

func newLevelState(ctx *logic.Context, node hypergraph.Node, baseVec, primedVec []logic.Term, selfLoop logic.Term, hasSelfLoop bool) *levelState {
	ls := &levelState{
		node:        node,
		baseVec:     baseVec,
		primedVec:   primedVec,
		hasSelfLoop: hasSelfLoop,
		selfLoop:    selfLoop,
	}

	idTerms := make([]logic.Term, len(baseVec))
	for i := range baseVec {
		idTerms[i] = ctx.Eq(baseVec[i], primedVec[i])
	}
	id := ctx.And(idTerms...)

	tr0 := id
	if hasSelfLoop {
		tr0 = ctx.Or(id, selfLoop)
	}
	ls.trLevels = []logic.Term{tr0}
	return ls
}

// ensureLevel grows trLevels up to index k by repeated squaring: each new
// level composes the previous one with itself via composeRelation, doubling
// the number of self-loop iterations it covers.
func (ls *levelState) ensureLevel(ctx *logic.Context, k int) error {
	for len(ls.trLevels) <= k {
		prev := ls.trLevels[len(ls.trLevels)-1]
		next, err := composeRelation(ctx, prev, prev, ls.baseVec, ls.primedVec)
		if err != nil {
			return err
		}
		ls.trLevels = append(ls.trLevels, next)
	}
	return nil
}

func (ls *levelState) level(k int) logic.Term {
	return ls.trLevels[k]
}
