// SPDX-License-Identifier: MIT
package logic

// Exists existentially projects vars out of t: the result is implied by t
// and mentions none of vars, built by eliminating vars from each DNF
// disjunct's linear-arithmetic structure via Fourier-Motzkin elimination
// (linear.go), then OR-ing the projected disjuncts back together, since
// ∃x.(A1 ∨ A2) = (∃x.A1) ∨ (∃x.A2).
//
// This is the composition primitive call
// "existentially quantified composition": chain summarization and node
// elimination both conjoin two edges' constraints over a shared versioned
// vector and then project that vector away, since the eliminated node no
// longer exists in the transformed graph. Interpolate (interpolate.go) is
// built on the same projection, restricted to one side of an unsat pair.
func (c *Context) Exists(t Term, vars []Term) (Term, error) {
	elim := make(map[int32]bool, len(vars))
	for _, v := range vars {
		elim[c.node(v).varID] = true
	}

	dnf := c.toDNF(c.nnf(t))
	if len(dnf) == 0 {
		return c.False(), nil
	}

	branches := make([]Term, 0, len(dnf))
	for _, conj := range dnf {
		var ineqs []ineq
		for _, atom := range conj {
			is, err := c.atomToIneqs(atom)
			if err != nil {
				return Term{}, err
			}
			ineqs = append(ineqs, is...)
		}

		var toElim []int32
		for _, v := range varsOf(ineqs) {
			if elim[v] {
				toElim = append(toElim, v)
			}
		}
		projected := eliminateVars(ineqs, toElim)

		contradiction := false
		atomTerms := make([]Term, 0, len(projected))
		for _, e := range projected {
			if len(e.expr.coeffs) == 0 {
				if e.expr.constant > 0 {
					contradiction = true
					break
				}
				continue
			}
			atomTerms = append(atomTerms, c.Le(c.exprToTerm(e.expr), c.Const(0)))
		}
		if contradiction {
			branches = append(branches, c.False())
			continue
		}
		branches = append(branches, c.And(atomTerms...))
	}

	return c.Or(branches...), nil
}
