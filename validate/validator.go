// SPDX-License-Identifier: MIT
package validate

import (
	"errors"
	"strconv"

	"github.com/golem-chc/chcsolver/chc"
	"github.com/golem-chc/chcsolver/engine"
	"github.com/golem-chc/chcsolver/hypergraph"
	"github.com/golem-chc/chcsolver/logic"
	"github.com/golem-chc/chcsolver/normalize"
	"github.com/golem-chc/chcsolver/witness"
)

func itoa(n int) string       { return strconv.Itoa(n) }
func errStr(msg string) error { return errors.New(msg) }

// Validate dispatches to ValidateSafety or ValidateUnsafety according to
// result.Answer(): SAFE checks the ValidityWitness, UNSAFE checks the
// InvalidityWitness, anything else (Unknown, or a witness-less result) is
// NotValidated.
func Validate(ctx *logic.Context, system *chc.ClauseSystem, result engine.VerificationResult) Report {
	switch result.Answer() {
	case engine.Safe:
		w, ok := result.ValidityWitness()
		if !ok {
			return fail("SAFE result carries no ValidityWitness")
		}
		return ValidateSafety(ctx, system, w)
	case engine.Unsafe:
		w, ok := result.InvalidityWitness()
		if !ok {
			return fail("UNSAFE result carries no InvalidityWitness")
		}
		return ValidateUnsafety(ctx, system, w)
	default:
		return fail("result answer is UNKNOWN")
	}
}

// ValidateSafety re-checks a ValidityWitness against system:
// for every clause `body ∧ constraint ⇒ head`, substitute each predicate
// instance's recorded interpretation for its arguments and check that the
// negation of the resulting implication is unsatisfiable. Interpretations
// missing for a predicate that never occurs in any clause default to True;
// missing for one that does occur fails validation.
func ValidateSafety(ctx *logic.Context, system *chc.ClauseSystem, w *witness.ValidityWitness) Report {
	if w == nil {
		return fail("nil ValidityWitness")
	}

	vm := normalize.NewVersionManager(ctx)
	for _, sym := range system.Predicates() {
		if err := vm.Register(sym); err != nil {
			return fail("VersionManager.Register: " + err.Error())
		}
	}

	used := usedPredicates(system)

	for i, cl := range system.Clauses() {
		bodyTerms := make([]logic.Term, 0, len(cl.Body)+1)
		for _, b := range cl.Body {
			t, rep, ok := interpret(ctx, vm, w, b, used)
			if !ok {
				return rep
			}
			bodyTerms = append(bodyTerms, t)
		}
		bodyTerms = append(bodyTerms, cl.Constraint)

		headTerm, rep, ok := interpret(ctx, vm, w, cl.Head, used)
		if !ok {
			return rep
		}

		antecedent := ctx.And(bodyTerms...)
		negated := ctx.And(antecedent, ctx.Not(headTerm))

		sat, _, err := ctx.Sat(negated)
		if err != nil {
			return fail("clause " + itoa(i) + ": Sat: " + err.Error())
		}
		if sat {
			return fail("clause " + itoa(i) + ": interpretation does not imply head")
		}
	}

	return ok()
}

// interpret resolves pi's interpretation: True/False for the distinguished
// symbols, the recorded interpretation substituted onto pi.Args otherwise.
func interpret(ctx *logic.Context, vm *normalize.VersionManager, w *witness.ValidityWitness, pi chc.PredicateInstance, used map[string]bool) (logic.Term, Report, bool) {
	switch pi.Symbol.Name {
	case chc.True.Name:
		return ctx.True(), Report{}, true
	case chc.False.Name:
		return ctx.False(), Report{}, true
	}

	interp, found := w.Get(pi.Symbol.Name)
	if !found {
		if !used[pi.Symbol.Name] {
			return ctx.True(), Report{}, true
		}
		return logic.Term{}, fail("missing interpretation for " + pi.Symbol.Name), false
	}

	// The witness's vector was minted by another VersionManager, so its
	// variables are matched to argument positions by name.
	var from, to []logic.Term
	base := vm.Base(pi.Symbol)
	for _, v := range ctx.FreeVars(interp) {
		for j, b := range base {
			if ctx.Name(v) == ctx.Name(b) {
				from = append(from, v)
				to = append(to, pi.Args[j])
			}
		}
	}
	t, err := ctx.Substitute(interp, from, to)
	if err != nil {
		return logic.Term{}, fail("Substitute(" + pi.Symbol.Name + "): " + err.Error()), false
	}
	return t, Report{}, true
}

// usedPredicates collects every non-distinguished predicate name mentioned
// in system's clauses, head or body.
func usedPredicates(system *chc.ClauseSystem) map[string]bool {
	used := make(map[string]bool)
	for _, cl := range system.Clauses() {
		if !cl.Head.Symbol.IsDistinguished() {
			used[cl.Head.Symbol.Name] = true
		}
		for _, b := range cl.Body {
			if !b.Symbol.IsDistinguished() {
				used[b.Symbol.Name] = true
			}
		}
	}
	return used
}

// ValidateUnsafety re-checks an InvalidityWitness against system: the derivation tree's leaves reach Entry, its root targets Exit,
// every node's edge is one of system's own clause edges, and each edge's
// constraint holds under its recorded model, with models agreeing on the
// values shared across a parent/child boundary.
func ValidateUnsafety(ctx *logic.Context, system *chc.ClauseSystem, w *witness.InvalidityWitness) Report {
	if w == nil {
		return fail("nil InvalidityWitness")
	}
	if err := witness.CheckShape(w); err != nil {
		return fail("CheckShape: " + err.Error())
	}

	original, rep, built := buildOriginalGraph(ctx, system)
	if !built {
		return rep
	}

	if err := checkDerivation(ctx, w, w.Root, original); err != nil {
		return fail(err.Error())
	}
	return ok()
}

func buildOriginalGraph(ctx *logic.Context, system *chc.ClauseSystem) (*hypergraph.HyperGraph, Report, bool) {
	n := normalize.NewNormalizer(ctx)
	normalized, err := n.Normalize(system)
	if err != nil {
		return nil, fail("Normalize: " + err.Error()), false
	}
	g, err := hypergraph.BuildFromNormalized(normalized)
	if err != nil {
		return nil, fail("BuildFromNormalized: " + err.Error()), false
	}
	return g, Report{}, true
}

func checkDerivation(ctx *logic.Context, w *witness.InvalidityWitness, idx int, g *hypergraph.HyperGraph) error {
	node, _ := w.Node(idx)

	if !edgeExists(ctx, node.Edge, g) {
		return errStr("node " + itoa(idx) + ": edge not present in original clause system")
	}

	held, err := ctx.Eval(node.Edge.Constraint, node.Model)
	if err != nil {
		return errStr("node " + itoa(idx) + ": Eval: " + err.Error())
	}
	if !held {
		return errStr("node " + itoa(idx) + ": recorded model does not satisfy edge constraint")
	}

	for i, child := range node.Children {
		if node.Edge.Sources[i].IsEntry() {
			continue
		}
		childNode, ok := w.Node(child)
		if !ok {
			return errStr("node " + itoa(idx) + ": dangling child " + itoa(child))
		}
		for j, srcVar := range node.Edge.SourceVectors[i] {
			if j >= len(childNode.Edge.TargetVector) {
				break
			}
			tgtVar := childNode.Edge.TargetVector[j]
			v1, ok1 := node.Model[srcVar]
			v2, ok2 := childNode.Model[tgtVar]
			if ok1 && ok2 && v1 != v2 {
				return errStr("node " + itoa(idx) + ": value mismatch with child " + itoa(child) + " across shared vector")
			}
		}
		if err := checkDerivation(ctx, w, child, g); err != nil {
			return err
		}
	}
	return nil
}

// edgeExists reports whether e (matched structurally: target, sources, and
// constraint identity after renaming the candidate's vectors onto e's — not
// ID, since back-translation may mint fresh IDs) is present among g's edges.
func edgeExists(ctx *logic.Context, e hypergraph.HyperEdge, g *hypergraph.HyperGraph) bool {
	for _, cand := range g.Edges() {
		if cand.Target != e.Target {
			continue
		}
		if len(cand.Sources) != len(e.Sources) || len(cand.SourceVectors) != len(e.SourceVectors) {
			continue
		}
		match := true
		for i := range cand.Sources {
			if cand.Sources[i] != e.Sources[i] {
				match = false
				break
			}
		}
		if !match {
			continue
		}
		from := append([]logic.Term(nil), cand.TargetVector...)
		to := append([]logic.Term(nil), e.TargetVector...)
		for i := range cand.SourceVectors {
			from = append(from, cand.SourceVectors[i]...)
			to = append(to, e.SourceVectors[i]...)
		}
		renamed, err := ctx.Substitute(cand.Constraint, from, to)
		if err == nil && renamed == e.Constraint {
			return true
		}
	}
	return false
}
