// Package elim implements the node-elimination transformations:
//
//   - NonLoopEliminator removes any node off-cycle whose every incident
//     edge (incoming and outgoing) is non-hyper, composing each
//     (incoming, outgoing) pair via transform.ComposeSequential.
//   - SimpleNodeEliminator generalizes this to nodes that occur as one of
//     several sources of an outgoing hyperedge: eliminating the node
//     replaces its occurrence(s) in the hyperedge's source list with the
//     chosen incoming edge's source, cross-producted over repeated
//     occurrences and over every incoming edge.
//
// Both eliminate nodes one at a time to a fixpoint, since removing one node
// can make its neighbors newly eligible.
package elim
