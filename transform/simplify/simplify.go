// Package simplify implements ConstraintSimplifier: it
// rewrites every edge's constraint through the term subsystem's boolean/
// arithmetic simplifier (logic.Simplify), leaving graph shape untouched.
// Back-translation is identity, since no node or edge is added, removed, or
// renamed.
package simplify

import (
	"github.com/golem-chc/chcsolver/hypergraph"
	"github.com/golem-chc/chcsolver/logic"
	"github.com/golem-chc/chcsolver/transform"
)

// ConstraintSimplifier is a transform.Transformation rewriting every edge's
// constraint via logic.Simplify.
type ConstraintSimplifier struct {
	Ctx *logic.Context
}

// Name implements transform.Transformation.
func (ConstraintSimplifier) Name() string { return "ConstraintSimplifier" }

// Transform implements transform.Transformation.
func (c ConstraintSimplifier) Transform(g *hypergraph.HyperGraph) (*hypergraph.HyperGraph, transform.BackTranslator, error) {
	b := hypergraph.NewBuilder()
	for _, e := range g.Edges() {
		simplified := hypergraph.HyperEdge{
			ID:            e.ID,
			Sources:       e.Sources,
			Target:        e.Target,
			Constraint:    c.Ctx.Simplify(e.Constraint),
			SourceVectors: e.SourceVectors,
			TargetVector:  e.TargetVector,
		}
		if err := b.AddEdge(simplified); err != nil {
			return nil, nil, err
		}
	}
	return b.Build(), transform.IdentityBackTranslator{}, nil
}
