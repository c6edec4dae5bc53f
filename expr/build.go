package expr

import (
	"github.com/tn3wman/qnty/dimension"
	"github.com/tn3wman/qnty/errs"
	"github.com/tn3wman/qnty/quantity"
)

// NewConst wraps a Quantity as a Const node.
func NewConst(q quantity.Quantity) Node { return Const{Value: q} }

// NewVarRef builds a reference to symbol, expected to carry dim.
func NewVarRef(symbol string, dim dimension.Dimension) Node {
	return VarRef{Symbol: symbol, ExpectedDimension: dim}
}

// NewBinaryOp builds a binary operation node, enforcing the dimensional
// law of the operator immediately whenever both operands' dimensions are
// known at build time (spec §4.3's build-time contract); when one or both
// operands are VarRefs/Deferred whose dimension can't yet be resolved
// further than what the caller declared, the check is deferred to
// Evaluate.
func NewBinaryOp(op BinOp, left, right Node) (Node, error) {
	node := BinaryOp{Op: op, Left: left, Right: right}
	if op == OpAdd || op == OpSub {
		ld, lok := left.Dimension()
		rd, rok := right.Dimension()
		if lok && rok && !dimension.Equal(ld, rd) && !ld.IsDimensionless() && !rd.IsDimensionless() {
			return nil, &errs.DimensionMismatch{Op: op.String(), LeftDim: ld.String(), RightDim: rd.String()}
		}
	}
	return node, nil
}

// NewUnaryFn builds a unary function node. Domain/dimension checks that
// only a concrete value can decide (argument sign, dimensionlessness of a
// VarRef not yet bound) are deferred to Evaluate.
func NewUnaryFn(fn quantity.UnaryFn, arg Node) Node {
	return UnaryFnNode{Fn: fn, Arg: arg}
}

// NewConditional builds a Conditional node.
func NewConditional(cond, then, els Node) Node {
	return Conditional{Cond: cond, Then: then, Else: els}
}

// NewComparison builds a Comparison node.
func NewComparison(op quantity.CompareOp, left, right Node) Node {
	return Comparison{Op: op, Left: left, Right: right}
}

// NewMatch builds a Match node over the given selector symbol.
func NewMatch(selector string, cases []MatchCase, def Node) Node {
	return Match{Selector: selector, Cases: cases, Default: def}
}

// NewSummation builds a Summation node.
func NewSummation(bounds []Bound, body func(indices []int, env Env) (Node, error)) Node {
	return Summation{Bounds: bounds, Body: body}
}

// NewSummationWithExtra builds a Summation node carrying closure values
// (e.g. a numeric matrix) the body can read from env.Extra.
func NewSummationWithExtra(bounds []Bound, body func(indices []int, env Env) (Node, error), extra map[string]any) Node {
	return Summation{Bounds: bounds, Body: body, Extra: extra}
}

// NewRangeCase builds a RangeCase node.
func NewRangeCase(value Node, cases []RangeInterval, otherwise Node) Node {
	return RangeCase{Value: value, Cases: cases, Otherwise: otherwise}
}

// NewDeferred builds a Deferred node wrapping thunk, which must be
// idempotent and side-effect-free (spec §4.3, §9).
func NewDeferred(thunk func() (Node, error)) Node {
	return Deferred{Thunk: thunk}
}

// Add, Sub, Mul, Div, Pow are ergonomic wrappers over NewBinaryOp for the
// common case where the build-time check can't fail (Mul/Div/Pow have no
// dimensional precondition to violate at build time).
func Add(left, right Node) (Node, error) { return NewBinaryOp(OpAdd, left, right) }
func Sub(left, right Node) (Node, error) { return NewBinaryOp(OpSub, left, right) }
func Mul(left, right Node) Node          { n, _ := NewBinaryOp(OpMul, left, right); return n }
func Div(left, right Node) Node          { n, _ := NewBinaryOp(OpDiv, left, right); return n }
func Pow(left, right Node) Node          { n, _ := NewBinaryOp(OpPow, left, right); return n }
