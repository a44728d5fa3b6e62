// SPDX-License-Identifier: MIT
package transform

import (
	"fmt"

	"github.com/golem-chc/chcsolver/hypergraph"
	"github.com/golem-chc/chcsolver/witness"
)

// BackTranslator lifts witnesses computed on a transformed graph back onto
// the graph a Transformation consumed.
type BackTranslator interface {
	// TranslateValidity lifts a ValidityWitness valid on the transformed
	// graph to one valid on the pre-transformation graph.
	TranslateValidity(w *witness.ValidityWitness) (*witness.ValidityWitness, error)

	// TranslateInvalidity lifts an InvalidityWitness valid on the
	// transformed graph to one valid on the pre-transformation graph.
	TranslateInvalidity(w *witness.InvalidityWitness) (*witness.InvalidityWitness, error)
}

// IdentityBackTranslator is a BackTranslator that returns its input
// unchanged; correct whenever a Transformation does not alter the set of
// nodes/edges a witness can reference.
type IdentityBackTranslator struct{}

func (IdentityBackTranslator) TranslateValidity(w *witness.ValidityWitness) (*witness.ValidityWitness, error) {
	return w, nil
}

func (IdentityBackTranslator) TranslateInvalidity(w *witness.InvalidityWitness) (*witness.InvalidityWitness, error) {
	return w, nil
}

// Transformation maps a HyperGraph to an equivalent one plus the BackTranslator that undoes it
// for witness purposes.
type Transformation interface {
	// Name identifies the transformation for diagnostics and pipeline traces.
	Name() string
	// Transform consumes g and returns the transformed graph and its translator.
	Transform(g *hypergraph.HyperGraph) (*hypergraph.HyperGraph, BackTranslator, error)
}

// Pipeline applies a sequence of Transformations strictly in order and
// composes their back-translators in reverse.
type Pipeline struct {
	steps []Transformation
}

// NewPipeline creates a Pipeline over steps, applied in the given order.
func NewPipeline(steps ...Transformation) *Pipeline {
	return &Pipeline{steps: steps}
}

// Run applies every step in order, returning the final graph and a single
// BackTranslator equivalent to composing each step's translator in reverse
// registration order.
func (p *Pipeline) Run(g *hypergraph.HyperGraph) (*hypergraph.HyperGraph, BackTranslator, error) {
	cur := g
	translators := make([]BackTranslator, 0, len(p.steps))

	for _, step := range p.steps {
		next, bt, err := step.Transform(cur)
		if err != nil {
			return nil, nil, fmt.Errorf("Pipeline.Run: %s: %w", step.Name(), err)
		}
		cur = next
		translators = append(translators, bt)
	}

	return cur, composed(translators), nil
}

// composed returns a BackTranslator applying translators in reverse order:
// the last transformation's translator runs first, as it undoes the
// outermost (most recently applied) transformation.
func composed(translators []BackTranslator) BackTranslator {
	return &compositeTranslator{translators: translators}
}

type compositeTranslator struct {
	translators []BackTranslator
}

func (c *compositeTranslator) TranslateValidity(w *witness.ValidityWitness) (*witness.ValidityWitness, error) {
	var err error
	for i := len(c.translators) - 1; i >= 0; i-- {
		w, err = c.translators[i].TranslateValidity(w)
		if err != nil {
			return nil, err
		}
	}
	return w, nil
}

func (c *compositeTranslator) TranslateInvalidity(w *witness.InvalidityWitness) (*witness.InvalidityWitness, error) {
	var err error
	for i := len(c.translators) - 1; i >= 0; i-- {
		w, err = c.translators[i].TranslateInvalidity(w)
		if err != nil {
			return nil, err
		}
	}
	return w, nil
}
