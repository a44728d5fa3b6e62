// SPDX-License-Identifier: MIT
package logic

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Context owns a hash-consed expression table. A Context is the resource a
// single solve owns exclusively; it is safe for concurrent read access —
// construction of new terms is serialized by muTerm.
type Context struct {
	muTerm sync.Mutex

	nextID    int32
	nextVarID int32

	nodes   []node          // id -> node, id is the slice index
	byKey   map[string]Term // structural key -> interned Term
	varByID map[int32]Term  // varID -> canonical var Term (for Substitute/FreeVars)
}

// NewContext creates an empty logic Context with True/False pre-interned.
func NewContext() *Context {
	ctx := &Context{
		byKey:   make(map[string]Term),
		varByID: make(map[int32]Term),
	}
	ctx.intern(node{kind: kTrue, sort: SortBool})
	ctx.intern(node{kind: kFalse, sort: SortBool})
	return ctx
}

// keyOf builds a deterministic structural key for hash-consing.
func keyOf(n node) string {
	var b strings.Builder
	b.WriteByte(byte(n.kind))
	b.WriteByte('|')
	switch n.kind {
	case kVar:
		b.WriteString(strconv.Itoa(int(n.varID)))
	case kConst, kMul:
		b.WriteString(strconv.FormatInt(n.value, 10))
	}
	for _, a := range n.args {
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(int(a.id)))
	}
	return b.String()
}

func (c *Context) intern(n node) Term {
	key := keyOf(n)
	if t, ok := c.byKey[key]; ok {
		return t
	}
	id := c.nextID
	c.nextID++
	c.nodes = append(c.nodes, n)
	t := Term{ctx: c, id: id}
	c.byKey[key] = t
	return t
}

func (c *Context) node(t Term) node {
	return c.nodes[t.id]
}

// own reports whether t was produced by this Context.
func (c *Context) own(t Term) bool {
	return t.ctx == c && int(t.id) < len(c.nodes)
}

// True returns the distinguished boolean truth term.
func (c *Context) True() Term {
	c.muTerm.Lock()
	defer c.muTerm.Unlock()
	return c.intern(node{kind: kTrue, sort: SortBool})
}

// False returns the distinguished boolean falsity term.
func (c *Context) False() Term {
	c.muTerm.Lock()
	defer c.muTerm.Unlock()
	return c.intern(node{kind: kFalse, sort: SortBool})
}

// NewVar declares a fresh integer variable with the given display name.
// Distinct calls always yield distinct variables, even with the same name
// (callers that need stable canonical vectors should keep the returned Term).
func (c *Context) NewVar(name string) Term {
	c.muTerm.Lock()
	defer c.muTerm.Unlock()

	id := c.nextVarID
	c.nextVarID++
	t := c.intern(node{kind: kVar, sort: SortInt, name: name, varID: id})
	c.varByID[id] = t
	return t
}

// Const returns the integer literal v.
func (c *Context) Const(v int64) Term {
	c.muTerm.Lock()
	defer c.muTerm.Unlock()
	return c.intern(node{kind: kConst, sort: SortInt, value: v})
}

// Sort returns the sort of t.
func (c *Context) Sort(t Term) Sort {
	return c.node(t).sort
}

// Name returns the display name of a variable term, or "" for non-variables.
func (c *Context) Name(t Term) string {
	n := c.node(t)
	if n.kind != kVar {
		return ""
	}
	return n.name
}

// --- boolean constructors ---

// And returns the conjunction of args, flattening nested Ands and folding
// True/False (mirrors ConstraintSimplifier's constant folding, but performed
// eagerly at construction so every built term is already partly simplified).
func (c *Context) And(args ...Term) Term {
	c.muTerm.Lock()
	defer c.muTerm.Unlock()

	flat := make([]Term, 0, len(args))
	for _, a := range args {
		n := c.node(a)
		if n.kind == kFalse {
			return c.intern(node{kind: kFalse, sort: SortBool})
		}
		if n.kind == kTrue {
			continue
		}
		if n.kind == kAnd {
			flat = append(flat, n.args...)
			continue
		}
		flat = append(flat, a)
	}
	flat = dedupSortedTerms(flat)
	if len(flat) == 0 {
		return c.intern(node{kind: kTrue, sort: SortBool})
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return c.intern(node{kind: kAnd, sort: SortBool, args: flat})
}

// Or returns the disjunction of args, flattening nested Ors and folding True/False.
func (c *Context) Or(args ...Term) Term {
	c.muTerm.Lock()
	defer c.muTerm.Unlock()

	flat := make([]Term, 0, len(args))
	for _, a := range args {
		n := c.node(a)
		if n.kind == kTrue {
			return c.intern(node{kind: kTrue, sort: SortBool})
		}
		if n.kind == kFalse {
			continue
		}
		if n.kind == kOr {
			flat = append(flat, n.args...)
			continue
		}
		flat = append(flat, a)
	}
	flat = dedupSortedTerms(flat)
	if len(flat) == 0 {
		return c.intern(node{kind: kFalse, sort: SortBool})
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return c.intern(node{kind: kOr, sort: SortBool, args: flat})
}

// Not returns the negation of a, folding double negation and True/False.
func (c *Context) Not(a Term) Term {
	c.muTerm.Lock()
	n := c.node(a)
	switch n.kind {
	case kTrue:
		c.muTerm.Unlock()
		return c.False()
	case kFalse:
		c.muTerm.Unlock()
		return c.True()
	case kNot:
		c.muTerm.Unlock()
		return n.args[0]
	}
	t := c.intern(node{kind: kNot, sort: SortBool, args: []Term{a}})
	c.muTerm.Unlock()
	return t
}

// --- arithmetic constructors ---

// Add returns the sum of args.
func (c *Context) Add(args ...Term) Term {
	c.muTerm.Lock()
	defer c.muTerm.Unlock()
	return c.intern(node{kind: kAdd, sort: SortInt, args: append([]Term(nil), args...)})
}

// Scale returns coeff * a.
func (c *Context) Scale(coeff int64, a Term) Term {
	c.muTerm.Lock()
	defer c.muTerm.Unlock()
	return c.intern(node{kind: kMul, sort: SortInt, value: coeff, args: []Term{a}})
}

// Sub returns a - b.
func (c *Context) Sub(a, b Term) Term {
	return c.Add(a, c.Scale(-1, b))
}

// Eq returns the atom a == b.
func (c *Context) Eq(a, b Term) Term {
	c.muTerm.Lock()
	defer c.muTerm.Unlock()
	return c.intern(node{kind: kEq, sort: SortBool, args: []Term{a, b}})
}

// Lt returns the atom a < b.
func (c *Context) Lt(a, b Term) Term {
	c.muTerm.Lock()
	defer c.muTerm.Unlock()
	return c.intern(node{kind: kLt, sort: SortBool, args: []Term{a, b}})
}

// Le returns the atom a <= b.
func (c *Context) Le(a, b Term) Term {
	c.muTerm.Lock()
	defer c.muTerm.Unlock()
	return c.intern(node{kind: kLe, sort: SortBool, args: []Term{a, b}})
}

// Gt returns the atom a > b.
func (c *Context) Gt(a, b Term) Term { return c.Lt(b, a) }

// Ge returns the atom a >= b.
func (c *Context) Ge(a, b Term) Term { return c.Le(b, a) }

// FreeVars returns the distinct variables occurring in t, in declaration order.
func (c *Context) FreeVars(t Term) []Term {
	seen := make(map[int32]bool)
	var out []Term
	var walk func(Term)
	walk = func(x Term) {
		n := c.node(x)
		if n.kind == kVar {
			if !seen[n.varID] {
				seen[n.varID] = true
				out = append(out, x)
			}
			return
		}
		for _, a := range n.args {
			walk(a)
		}
	}
	walk(t)
	sort.Slice(out, func(i, j int) bool {
		return c.node(out[i]).varID < c.node(out[j]).varID
	})
	return out
}

// String renders t for diagnostics; not used for hash-consing or equality.
func (c *Context) String(t Term) string {
	n := c.node(t)
	switch n.kind {
	case kTrue:
		return "true"
	case kFalse:
		return "false"
	case kVar:
		return n.name
	case kConst:
		return strconv.FormatInt(n.value, 10)
	case kNot:
		return "(not " + c.String(n.args[0]) + ")"
	case kAnd:
		return joinOp(c, "and", n.args)
	case kOr:
		return joinOp(c, "or", n.args)
	case kAdd:
		return joinOp(c, "+", n.args)
	case kMul:
		return fmt.Sprintf("(* %d %s)", n.value, c.String(n.args[0]))
	case kEq:
		return fmt.Sprintf("(= %s %s)", c.String(n.args[0]), c.String(n.args[1]))
	case kLt:
		return fmt.Sprintf("(< %s %s)", c.String(n.args[0]), c.String(n.args[1]))
	case kLe:
		return fmt.Sprintf("(<= %s %s)", c.String(n.args[0]), c.String(n.args[1]))
	}
	return "?"
}

func joinOp(c *Context, op string, args []Term) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = c.String(a)
	}
	return "(" + op + " " + strings.Join(parts, " ") + ")"
}

func dedupSortedTerms(ts []Term) []Term {
	seen := make(map[int32]bool, len(ts))
	out := ts[:0]
	for _, t := range ts {
		if !seen[t.id] {
			seen[t.id] = true
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}
