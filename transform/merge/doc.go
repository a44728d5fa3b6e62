// Package merge implements MultiEdgeMerger: every group of
// edges sharing the same ordered (source list, target) endpoint pair is
// replaced by one edge whose constraint is the disjunction of theirs, each
// disjunct renamed onto a shared canonical vector and existentially closed
// over its own auxiliary variables.
//
// Per explicit open question, the back-translator's invalidity
// side is NOT an identity lift: it disambiguates which disjunct the witness
// model actually satisfies before handing the derivation node its original
// edge back. The validity side IS identity, since merging edges never
// changes a node's canonical variable vector.
package merge
