// Package witness implements two witness kinds:
//
//   - ValidityWitness: a mapping from predicate symbol to an interpretation
//     term over that symbol's canonical variable vector, proving SAFE.
//   - InvalidityWitness: a derivation tree proving UNSAFE — each node
//     records the hyperedge it was derived from and the model (variable
//     assignment) satisfying that edge's constraint. The tree is stored
//     as an arena of nodes indexed by integer id rather than built from
//     pointers, avoiding cycles and making back-translation
//     (transform.BackTranslator) cheap to reconstruct as a fresh arena.
//
// The arena style is a slice-backed, index-addressed storage idiom applied
// to a tree instead of a general graph.
package witness
