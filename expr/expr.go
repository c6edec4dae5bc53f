// Package expr implements the expression tree of spec §3/§4.3: a closed
// sum type over Const, VarRef, BinaryOp, UnaryFn, Conditional, Comparison,
// Match, Summation, RangeCase, and Deferred nodes, each a value type
// owning its children. Construction helpers live outside the types
// (the New* functions and the Add/Sub/Mul/Div/Pow wrappers in build.go)
// rather than as methods that mutate shared
// state, matching §9's note that dynamic/metaclass-discovered expression
// trees should become a plain, immutable tagged tree with build helpers
// kept separate from the type definitions.
package expr

import (
	"github.com/tn3wman/qnty/dimension"
	"github.com/tn3wman/qnty/quantity"
)

// Node is implemented by every expression tree variant. It is a closed
// set: only the types defined in this package implement it.
type Node interface {
	isNode()
	// Dimension reports the node's dimension without evaluating it
	// against an Env, when that's computable from the node's own
	// structure and its children's build-time dimensions; ok is false
	// when the node's dimension can only be known at evaluation time
	// (e.g. a Deferred node, a Summation, or a power). A VarRef always
	// reports its declared ExpectedDimension with ok=true.
	Dimension() (dim dimension.Dimension, ok bool)
}

// BinOp identifies a binary arithmetic operator.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpPow
)

func (op BinOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpPow:
		return "^"
	default:
		return "?"
	}
}

// Const wraps a concrete Quantity.
type Const struct {
	Value quantity.Quantity
}

func (Const) isNode() {}
func (c Const) Dimension() (dimension.Dimension, bool) { return c.Value.Dimension(), true }

// VarRef names a variable slot in an evaluation Env, tagged with the
// dimension it is expected to carry.
type VarRef struct {
	Symbol           string
	ExpectedDimension dimension.Dimension
}

func (VarRef) isNode() {}
func (v VarRef) Dimension() (dimension.Dimension, bool) { return v.ExpectedDimension, true }

// BinaryOp is a binary arithmetic node.
type BinaryOp struct {
	Op          BinOp
	Left, Right Node
}

func (BinaryOp) isNode() {}

func (b BinaryOp) Dimension() (dimension.Dimension, bool) {
	ld, lok := b.Left.Dimension()
	rd, rok := b.Right.Dimension()
	if !lok || !rok {
		return dimension.Dimensionless, false
	}
	switch b.Op {
	case OpAdd, OpSub:
		if dimension.Equal(ld, rd) {
			return ld, true
		}
		if ld.IsDimensionless() {
			return rd, true
		}
		if rd.IsDimensionless() {
			return ld, true
		}
		// Mismatched non-dimensionless operands: not computable at
		// build time without knowing which side is the literal zero
		// exception (that's a value fact, not a dimension fact); defer
		// to evaluation.
		return dimension.Dimensionless, false
	case OpMul:
		return dimension.Mul(ld, rd), true
	case OpDiv:
		return dimension.Div(ld, rd), true
	case OpPow:
		// The power's dimension is not computed at build time, not even
		// for a Const dimensionless exponent; it is left to evaluation.
		if c, ok := b.Right.(Const); ok && c.Value.Dimension().IsDimensionless() {
			return dimension.Dimensionless, false // exact exponent only known at eval; computed there
		}
		return dimension.Dimensionless, false
	}
	return dimension.Dimensionless, false
}

// UnaryFnNode applies a unary function to its argument.
type UnaryFnNode struct {
	Fn  quantity.UnaryFn
	Arg Node
}

func (UnaryFnNode) isNode() {}

func (u UnaryFnNode) Dimension() (dimension.Dimension, bool) {
	switch u.Fn {
	case quantity.Sqrt:
		if d, ok := u.Arg.Dimension(); ok {
			return dimension.Sqrt(d), true
		}
		return dimension.Dimensionless, false
	case quantity.Abs, quantity.Neg:
		return u.Arg.Dimension()
	default:
		return dimension.Dimensionless, true
	}
}

// Conditional evaluates Cond (which must yield dimensionless 0 or 1) and
// short-circuits to Then or Else.
type Conditional struct {
	Cond, Then, Else Node
}

func (Conditional) isNode() {}

func (c Conditional) Dimension() (dimension.Dimension, bool) {
	td, tok := c.Then.Dimension()
	ed, eok := c.Else.Dimension()
	if tok && eok && dimension.Equal(td, ed) {
		return td, true
	}
	if tok {
		return td, true
	}
	if eok {
		return ed, true
	}
	return dimension.Dimensionless, false
}

// Comparison yields a dimensionless 0/1.
type Comparison struct {
	Op          quantity.CompareOp
	Left, Right Node
}

func (Comparison) isNode() {}
func (Comparison) Dimension() (dimension.Dimension, bool) { return dimension.Dimensionless, true }

// MatchCase pairs a discrete option label with the expression to use when
// a Match's selector currently holds that value.
type MatchCase struct {
	Option string
	Case   Node
}

// Match selects one of Cases (or Default) based on the current discrete
// value bound to Selector in the Env (spec §3, §4.3).
type Match struct {
	Selector string
	Cases    []MatchCase
	Default  Node // nil if there is no default
}

func (Match) isNode() {}

func (m Match) Dimension() (dimension.Dimension, bool) {
	var best dimension.Dimension
	found := false
	for _, c := range m.Cases {
		if d, ok := c.Case.Dimension(); ok {
			if found && !dimension.Equal(best, d) {
				return dimension.Dimensionless, false
			}
			best, found = d, true
		}
	}
	if m.Default != nil {
		if d, ok := m.Default.Dimension(); ok {
			if found && !dimension.Equal(best, d) {
				return dimension.Dimensionless, false
			}
			best, found = d, true
		}
	}
	return best, found
}

// Bound describes one axis of a Summation as an explicit (lo, hi, step)
// range whose indices run from Lo up to and including Hi. There is no
// separate scalar-upper-bound form: Bound{Hi: N} enumerates 0 through N.
type Bound struct {
	Lo, Hi float64
	Step   float64 // 0 means step=1
}

// Summation enumerates the Cartesian product of Bounds, builds a fresh
// Node per index tuple via Body, evaluates each, and sums the results
// with Quantity addition (spec §3, §4.3).
type Summation struct {
	Bounds []Bound
	Body   func(indices []int, env Env) (Node, error)
	Extra  map[string]any
}

func (Summation) isNode() {}
func (Summation) Dimension() (dimension.Dimension, bool) { return dimension.Dimensionless, false }

// RangeInterval pairs a half-open-or-closed interval with the expression
// used when a RangeCase's value falls in it. A nil Lower/Upper means
// unbounded on that side.
type RangeInterval struct {
	Lower, Upper                   *float64
	LowerInclusive, UpperInclusive bool
	Case                           Node
}

// RangeCase evaluates Value, then finds the first Cases interval
// containing it and evaluates that case, falling back to Otherwise.
type RangeCase struct {
	Value     Node
	Cases     []RangeInterval
	Otherwise Node
}

func (RangeCase) isNode() {}

func (r RangeCase) Dimension() (dimension.Dimension, bool) {
	var best dimension.Dimension
	found := false
	for _, c := range r.Cases {
		if d, ok := c.Case.Dimension(); ok {
			if found && !dimension.Equal(best, d) {
				return dimension.Dimensionless, false
			}
			best, found = d, true
		}
	}
	if r.Otherwise != nil {
		if d, ok := r.Otherwise.Dimension(); ok {
			if found && !dimension.Equal(best, d) {
				return dimension.Dimensionless, false
			}
			best, found = d, true
		}
	}
	return best, found
}

// Deferred wraps a builder invoked at evaluation time, for expressions
// constructed before all the VarRefs they will eventually mention exist
// (used by Problem composition, spec §4.3/§4.7/§9). Thunk must be
// idempotent and side-effect-free: it may be invoked more than once.
type Deferred struct {
	Thunk func() (Node, error)
}

func (Deferred) isNode() {}
func (Deferred) Dimension() (dimension.Dimension, bool) { return dimension.Dimensionless, false }
