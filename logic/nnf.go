// SPDX-License-Identifier: MIT
package logic

// nnf pushes Not to the leaves, rewriting negated atoms directly (Not(Eq)
// becomes a disjunction of two strict inequalities, Not(Lt)/Not(Le) flip to
// Le/Lt) so that the result never contains kNot.
func (c *Context) nnf(t Term) Term {
	n := c.node(t)
	switch n.kind {
	case kTrue, kFalse, kEq, kLt, kLe:
		return t
	case kAnd:
		args := make([]Term, len(n.args))
		for i, a := range n.args {
			args[i] = c.nnf(a)
		}
		return c.And(args...)
	case kOr:
		args := make([]Term, len(n.args))
		for i, a := range n.args {
			args[i] = c.nnf(a)
		}
		return c.Or(args...)
	case kNot:
		return c.nnfNot(n.args[0])
	}
	return t
}

func (c *Context) nnfNot(t Term) Term {
	n := c.node(t)
	switch n.kind {
	case kTrue:
		return c.False()
	case kFalse:
		return c.True()
	case kNot:
		return c.nnf(n.args[0])
	case kAnd:
		args := make([]Term, len(n.args))
		for i, a := range n.args {
			args[i] = c.nnfNot(a)
		}
		return c.Or(args...)
	case kOr:
		args := make([]Term, len(n.args))
		for i, a := range n.args {
			args[i] = c.nnfNot(a)
		}
		return c.And(args...)
	case kEq:
		return c.Or(c.Lt(n.args[0], n.args[1]), c.Lt(n.args[1], n.args[0]))
	case kLt:
		return c.Le(n.args[1], n.args[0])
	case kLe:
		return c.Lt(n.args[1], n.args[0])
	}
	return c.Not(t)
}

// toDNF expands a term already in NNF into a sum of products: an OR of ANDs
// of atom terms. True is the empty conjunction [[]]; False is no
// conjunctions at all (nil).
func (c *Context) toDNF(t Term) [][]Term {
	n := c.node(t)
	switch n.kind {
	case kTrue:
		return [][]Term{{}}
	case kFalse:
		return nil
	case kEq, kLt, kLe:
		return [][]Term{{t}}
	case kAnd:
		result := [][]Term{{}}
		for _, a := range n.args {
			sub := c.toDNF(a)
			var next [][]Term
			for _, r := range result {
				for _, s := range sub {
					combo := make([]Term, 0, len(r)+len(s))
					combo = append(combo, r...)
					combo = append(combo, s...)
					next = append(next, combo)
				}
			}
			result = next
		}
		return result
	case kOr:
		var result [][]Term
		for _, a := range n.args {
			result = append(result, c.toDNF(a)...)
		}
		return result
	}
	return nil
}
