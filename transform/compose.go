// SPDX-License-Identifier: MIT
package transform

import (
	"github.com/golem-chc/chcsolver/hypergraph"
	"github.com/golem-chc/chcsolver/logic"
)

// ComposeSequential composes two edges sharing a node — first.Target and
// second.Sources[0] name the same predicate — into one edge from
// first.Sources to second.Target, existentially projecting the shared
// node's vector away: this is the existentially quantified composition
// chain summarization and node elimination both build on — rename first's
// primed output vector onto second's base input vector, conjoin, then
// project the now-shared vector out since the intermediate node no longer
// exists in the transformed graph.
//
// second must be a non-hyper edge (len(second.Sources) == 1); callers
// (transform/chain, transform/elim) only ever compose across a single-source
// incoming edge of the node being eliminated.
func ComposeSequential(ctx *logic.Context, first, second hypergraph.HyperEdge) (hypergraph.HyperEdge, error) {
	renamed := first.Constraint
	if len(first.TargetVector) > 0 {
		var err error
		renamed, err = ctx.Substitute(first.Constraint, first.TargetVector, second.SourceVectors[0])
		if err != nil {
			return hypergraph.HyperEdge{}, err
		}
	}

	conj := ctx.And(renamed, second.Constraint)

	projected := conj
	if len(second.SourceVectors[0]) > 0 {
		var err error
		projected, err = ctx.Exists(conj, second.SourceVectors[0])
		if err != nil {
			return hypergraph.HyperEdge{}, err
		}
	}

	return hypergraph.HyperEdge{
		Sources:       first.Sources,
		SourceVectors: first.SourceVectors,
		Target:        second.Target,
		TargetVector:  second.TargetVector,
		Constraint:    projected,
	}, nil
}

// StrongestPostcondition computes the interpretation a node n should carry
// in a back-translated ValidityWitness, given the interpretation of an
// upstream node expressed over edge's source vector (or logic.Context.True()
// if the source is Entry): project every free variable except edge's
// TargetVector out of (srcInterp ∧ edge.Constraint), then rename the
// surviving TargetVector onto n's canonical base vector baseVec so the
// result is expressed the way witness.ValidityWitness expects.
func StrongestPostcondition(ctx *logic.Context, edge hypergraph.HyperEdge, srcInterp logic.Term, baseVec []logic.Term) (logic.Term, error) {
	full := ctx.And(srcInterp, edge.Constraint)

	keep := make(map[logic.Term]bool, len(edge.TargetVector))
	for _, v := range edge.TargetVector {
		keep[v] = true
	}
	var toProject []logic.Term
	for _, v := range ctx.FreeVars(full) {
		if !keep[v] {
			toProject = append(toProject, v)
		}
	}

	proj, err := ctx.Exists(full, toProject)
	if err != nil {
		return logic.Term{}, err
	}
	if len(edge.TargetVector) == 0 {
		return proj, nil
	}
	return ctx.Substitute(proj, edge.TargetVector, baseVec)
}
