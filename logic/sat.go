// SPDX-License-Identifier: MIT
package logic

// Model maps variable Terms to their assigned integer value.
type Model map[Term]int64

// Sat decides satisfiability of a closed QF_LIA boolean term by converting
// it to disjunctive normal form and deciding each conjunction with
// Fourier-Motzkin elimination (linear.go). Returns a witnessing Model for
// the first satisfiable disjunct, or a nil Model if t is unsatisfiable.
func (c *Context) Sat(t Term) (bool, Model, error) {
	dnf := c.toDNF(c.nnf(t))
	for _, conj := range dnf {
		sat, raw, err := c.satisfyConjunction(conj)
		if err != nil {
			return false, nil, err
		}
		if sat {
			return true, c.toModel(raw), nil
		}
	}
	return false, nil, nil
}

func (c *Context) toModel(raw map[int32]int64) Model {
	m := make(Model, len(raw))
	for vid, val := range raw {
		m[c.varByID[vid]] = val
	}
	return m
}

// Eval evaluates a closed boolean term under a Model. Every free variable
// of t must be present in m.
func (c *Context) Eval(t Term, m Model) (bool, error) {
	n := c.node(t)
	switch n.kind {
	case kTrue:
		return true, nil
	case kFalse:
		return false, nil
	case kNot:
		v, err := c.Eval(n.args[0], m)
		return !v, err
	case kAnd:
		for _, a := range n.args {
			v, err := c.Eval(a, m)
			if err != nil || !v {
				return false, err
			}
		}
		return true, nil
	case kOr:
		for _, a := range n.args {
			v, err := c.Eval(a, m)
			if err != nil {
				return false, err
			}
			if v {
				return true, nil
			}
		}
		return false, nil
	case kEq, kLt, kLe:
		av, err := c.evalInt(n.args[0], m)
		if err != nil {
			return false, err
		}
		bv, err := c.evalInt(n.args[1], m)
		if err != nil {
			return false, err
		}
		switch n.kind {
		case kEq:
			return av == bv, nil
		case kLt:
			return av < bv, nil
		default:
			return av <= bv, nil
		}
	}
	return false, ErrNotLinear
}

func (c *Context) evalInt(t Term, m Model) (int64, error) {
	n := c.node(t)
	switch n.kind {
	case kVar:
		v, ok := m[t]
		if !ok {
			return 0, ErrUnknownTerm
		}
		return v, nil
	case kConst:
		return n.value, nil
	case kAdd:
		var sum int64
		for _, a := range n.args {
			v, err := c.evalInt(a, m)
			if err != nil {
				return 0, err
			}
			sum += v
		}
		return sum, nil
	case kMul:
		v, err := c.evalInt(n.args[0], m)
		if err != nil {
			return 0, err
		}
		return n.value * v, nil
	}
	return 0, ErrNotLinear
}

// Simplify rewrites t through constant folding: boolean constructors already
// fold eagerly (see context.go's And/Or/Not), so Simplify's job is to fold
// purely-constant arithmetic comparisons down to True/False as well.
func (c *Context) Simplify(t Term) Term {
	n := c.node(t)
	switch n.kind {
	case kNot:
		return c.Not(c.Simplify(n.args[0]))
	case kAnd:
		args := make([]Term, len(n.args))
		for i, a := range n.args {
			args[i] = c.Simplify(a)
		}
		return c.And(args...)
	case kOr:
		args := make([]Term, len(n.args))
		for i, a := range n.args {
			args[i] = c.Simplify(a)
		}
		return c.Or(args...)
	case kEq, kLt, kLe:
		lhs, errA := c.toLinExpr(n.args[0])
		rhs, errB := c.toLinExpr(n.args[1])
		if errA == nil && errB == nil {
			diff := lhs.sub(rhs)
			if len(diff.coeffs) == 0 {
				var holds bool
				switch n.kind {
				case kEq:
					holds = diff.constant == 0
				case kLt:
					holds = diff.constant < 0
				default:
					holds = diff.constant <= 0
				}
				if holds {
					return c.True()
				}
				return c.False()
			}
		}
		return t
	}
	return t
}
