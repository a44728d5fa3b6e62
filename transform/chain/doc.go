// Package chain implements SimpleChainSummarizer: it finds
// maximal simple chains — sequences of nodes whose interior members have
// in-degree 1, out-degree 1, and no self-loop — and replaces each chain with
// one edge whose constraint is the existentially quantified composition of
// the chain's edge constraints (transform.ComposeSequential, folded left to
// right).
//
// Per open question, a chain ending at Exit is summarized like
// any other: the source does so and this package preserves that behavior.
package chain
