// SPDX-License-Identifier: MIT
package logic

import "sort"

// LinExpr is a sparse linear combination sum(coeff_i * var_i) + constant,
// the internal representation used by the Fourier-Motzkin decision
// procedure, keyed by variable id rather than a dense positional vector.
type LinExpr struct {
	coeffs   map[int32]int64
	constant int64
}

func newLinExpr() LinExpr { return LinExpr{coeffs: make(map[int32]int64)} }

func (e LinExpr) clone() LinExpr {
	out := LinExpr{coeffs: make(map[int32]int64, len(e.coeffs)), constant: e.constant}
	for k, v := range e.coeffs {
		out.coeffs[k] = v
	}
	return out
}

func (e LinExpr) add(o LinExpr) LinExpr {
	out := e.clone()
	out.constant += o.constant
	for k, v := range o.coeffs {
		out.coeffs[k] += v
		if out.coeffs[k] == 0 {
			delete(out.coeffs, k)
		}
	}
	return out
}

func (e LinExpr) scale(k int64) LinExpr {
	out := newLinExpr()
	out.constant = e.constant * k
	for vid, c := range e.coeffs {
		if c*k != 0 {
			out.coeffs[vid] = c * k
		}
	}
	return out
}

func (e LinExpr) sub(o LinExpr) LinExpr { return e.add(o.scale(-1)) }

// toLinExpr interprets t as a linear arithmetic expression over kVar/kConst/kAdd/kMul.
func (c *Context) toLinExpr(t Term) (LinExpr, error) {
	n := c.node(t)
	switch n.kind {
	case kVar:
		e := newLinExpr()
		e.coeffs[n.varID] = 1
		return e, nil
	case kConst:
		return LinExpr{coeffs: map[int32]int64{}, constant: n.value}, nil
	case kAdd:
		sum := newLinExpr()
		for _, a := range n.args {
			ae, err := c.toLinExpr(a)
			if err != nil {
				return LinExpr{}, err
			}
			sum = sum.add(ae)
		}
		return sum, nil
	case kMul:
		ae, err := c.toLinExpr(n.args[0])
		if err != nil {
			return LinExpr{}, err
		}
		return ae.scale(n.value), nil
	}
	return LinExpr{}, ErrNotLinear
}

// exprToTerm rebuilds a Term for a LinExpr, in deterministic variable order.
func (c *Context) exprToTerm(e LinExpr) Term {
	ids := make([]int32, 0, len(e.coeffs))
	for vid := range e.coeffs {
		ids = append(ids, vid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	terms := make([]Term, 0, len(ids)+1)
	for _, vid := range ids {
		coeff := e.coeffs[vid]
		v := c.varByID[vid]
		if coeff == 1 {
			terms = append(terms, v)
		} else {
			terms = append(terms, c.Scale(coeff, v))
		}
	}
	if e.constant != 0 || len(terms) == 0 {
		terms = append(terms, c.Const(e.constant))
	}
	if len(terms) == 1 {
		return terms[0]
	}
	return c.Add(terms...)
}

// ineq represents the constraint expr <= 0 over integers.
type ineq struct {
	expr LinExpr
}

// atomToIneqs expands one QF_LIA atom (Eq/Lt/Le) into one or more <=0 constraints.
func (c *Context) atomToIneqs(t Term) ([]ineq, error) {
	n := c.node(t)
	if n.kind != kEq && n.kind != kLt && n.kind != kLe {
		return nil, ErrNotLinear
	}
	a, err := c.toLinExpr(n.args[0])
	if err != nil {
		return nil, err
	}
	b, err := c.toLinExpr(n.args[1])
	if err != nil {
		return nil, err
	}
	diff := a.sub(b)
	switch n.kind {
	case kEq:
		return []ineq{{expr: diff}, {expr: diff.scale(-1)}}, nil
	case kLe:
		return []ineq{{expr: diff}}, nil
	case kLt:
		// Integer tightening: a < b  <=>  a - b + 1 <= 0.
		tightened := diff.clone()
		tightened.constant++
		return []ineq{{expr: tightened}}, nil
	}
	return nil, ErrNotLinear
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int64) int64 {
	return -floorDiv(-a, b)
}

// eliminateVar performs one round of Fourier-Motzkin elimination on v,
// replacing every positive/negative pair of constraints mentioning v with
// their resolvent and dropping v entirely: a bounded number of rounds, one
// variable resolved per round.
func eliminateVar(ineqs []ineq, v int32) []ineq {
	var pos, neg, zero []ineq
	for _, e := range ineqs {
		switch {
		case e.expr.coeffs[v] > 0:
			pos = append(pos, e)
		case e.expr.coeffs[v] < 0:
			neg = append(neg, e)
		default:
			zero = append(zero, e)
		}
	}
	result := append([]ineq{}, zero...)
	for _, p := range pos {
		cp := p.expr.coeffs[v]
		for _, ng := range neg {
			cn := ng.expr.coeffs[v]
			combined := p.expr.scale(-cn).add(ng.expr.scale(cp))
			delete(combined.coeffs, v)
			result = append(result, ineq{expr: combined})
		}
	}
	return result
}

func eliminateVars(ineqs []ineq, vars []int32) []ineq {
	cur := ineqs
	for _, v := range vars {
		cur = eliminateVar(cur, v)
	}
	return cur
}

// varsOf returns the sorted set of variable ids mentioned by ineqs.
func varsOf(ineqs []ineq) []int32 {
	seen := make(map[int32]bool)
	var out []int32
	for _, e := range ineqs {
		for vid, coeff := range e.expr.coeffs {
			if coeff != 0 && !seen[vid] {
				seen[vid] = true
				out = append(out, vid)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// satisfyConjunction decides satisfiability of a conjunction of QF_LIA
// atoms via Fourier-Motzkin elimination plus integer back-substitution,
// returning a concrete integer model when satisfiable.
func (c *Context) satisfyConjunction(atoms []Term) (bool, map[int32]int64, error) {
	var ineqs []ineq
	for _, a := range atoms {
		is, err := c.atomToIneqs(a)
		if err != nil {
			return false, nil, err
		}
		ineqs = append(ineqs, is...)
	}
	order := varsOf(ineqs)

	snapshots := make([][]ineq, len(order)+1)
	cur := ineqs
	for i, v := range order {
		snapshots[i] = cur
		cur = eliminateVar(cur, v)
	}
	snapshots[len(order)] = cur

	for _, e := range cur {
		if e.expr.constant > 0 {
			return false, nil, nil
		}
	}

	model := make(map[int32]int64, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		v := order[i]
		val, ok := pickValue(snapshots[i], v, model)
		if !ok {
			return false, nil, nil
		}
		model[v] = val
	}
	return true, model, nil
}

// pickValue derives an integer value for v from the constraint set s, given
// that every other variable s mentions is already fixed in model.
func pickValue(s []ineq, v int32, model map[int32]int64) (int64, bool) {
	var hasLower, hasUpper bool
	var lower, upper int64

	for _, e := range s {
		coeff, ok := e.expr.coeffs[v]
		if !ok || coeff == 0 {
			rest := e.expr.constant
			for vid, cf := range e.expr.coeffs {
				rest += cf * model[vid]
			}
			if rest > 0 {
				return 0, false
			}
			continue
		}
		rest := e.expr.constant
		for vid, cf := range e.expr.coeffs {
			if vid == v {
				continue
			}
			rest += cf * model[vid]
		}
		switch {
		case coeff > 0:
			b := floorDiv(-rest, coeff)
			if !hasUpper || b < upper {
				upper, hasUpper = b, true
			}
		default:
			b := ceilDiv(rest, -coeff)
			if !hasLower || b > lower {
				lower, hasLower = b, true
			}
		}
	}

	switch {
	case hasLower && hasUpper:
		if lower > upper {
			return 0, false
		}
		return lower, true
	case hasLower:
		return lower, true
	case hasUpper:
		return upper, true
	default:
		return 0, true
	}
}
