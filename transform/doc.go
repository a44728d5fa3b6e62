// Package transform implements transformation framework: a
// Transformation maps a hypergraph.HyperGraph to a new graph plus a
// BackTranslator capable of lifting witnesses computed on the new graph back
// onto the original. Pipeline composes a sequence of Transformations,
// applying them strictly in order and composing their back-translators in
// reverse.
//
// Modeled, per "Polymorphism" design note, as small capability
// interfaces rather than a class hierarchy — the same shape core.Graph's
// GraphOption/EdgeOption functional options favor over inheritance
// (core/types.go).
package transform
