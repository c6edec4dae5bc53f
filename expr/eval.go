package expr

import (
	"fmt"

	"github.com/tn3wman/qnty/dimension"
	"github.com/tn3wman/qnty/errs"
	"github.com/tn3wman/qnty/quantity"
)

// Evaluate computes the Quantity a Node yields under env, per the
// evaluation contract of spec §4.3.
func Evaluate(n Node, env Env) (quantity.Quantity, error) {
	switch x := n.(type) {
	case Const:
		return x.Value, nil

	case VarRef:
		q, ok := env.Lookup(x.Symbol)
		if !ok {
			return quantity.Quantity{}, &errs.VariableNotFound{Name: x.Symbol, Available: env.Symbols()}
		}
		if !dimension.Equal(q.Dimension(), x.ExpectedDimension) {
			return quantity.Quantity{}, &errs.DimensionMismatch{
				Op:       "variable reference " + x.Symbol,
				LeftDim:  q.Dimension().String(),
				RightDim: x.ExpectedDimension.String(),
			}
		}
		return q, nil

	case BinaryOp:
		return evalBinaryOp(x, env)

	case UnaryFnNode:
		arg, err := Evaluate(x.Arg, env)
		if err != nil {
			return quantity.Quantity{}, err
		}
		return quantity.ApplyUnary(x.Fn, arg)

	case Conditional:
		cond, err := Evaluate(x.Cond, env)
		if err != nil {
			return quantity.Quantity{}, err
		}
		switch cond.SI() {
		case 1:
			return Evaluate(x.Then, env)
		case 0:
			return Evaluate(x.Else, env)
		default:
			return quantity.Quantity{}, &errs.ExpressionEvaluationError{
				Expression: "conditional",
				Reason:     fmt.Sprintf("condition evaluated to %g, expected 0 or 1", cond.SI()),
			}
		}

	case Comparison:
		left, err := Evaluate(x.Left, env)
		if err != nil {
			return quantity.Quantity{}, err
		}
		right, err := Evaluate(x.Right, env)
		if err != nil {
			return quantity.Quantity{}, err
		}
		return quantity.CompareQuantity(x.Op, left, right)

	case Match:
		return evalMatch(x, env)

	case Summation:
		return evalSummation(x, env)

	case RangeCase:
		return evalRangeCase(x, env)

	case Deferred:
		resolved, err := x.Thunk()
		if err != nil {
			return quantity.Quantity{}, &errs.ExpressionEvaluationError{Expression: "deferred", Reason: err.Error()}
		}
		return Evaluate(resolved, env)

	default:
		return quantity.Quantity{}, &errs.ExpressionEvaluationError{Expression: "unknown", Reason: fmt.Sprintf("unrecognized node type %T", n)}
	}
}

func evalBinaryOp(b BinaryOp, env Env) (quantity.Quantity, error) {
	left, err := Evaluate(b.Left, env)
	if err != nil {
		return quantity.Quantity{}, err
	}
	right, err := Evaluate(b.Right, env)
	if err != nil {
		return quantity.Quantity{}, err
	}
	switch b.Op {
	case OpAdd:
		return quantity.Add(left, right)
	case OpSub:
		return quantity.Sub(left, right)
	case OpMul:
		return quantity.Mul(left, right), nil
	case OpDiv:
		return quantity.Div(left, right)
	case OpPow:
		return quantity.PowQuantity(left, right)
	default:
		return quantity.Quantity{}, &errs.ExpressionEvaluationError{Expression: "binary op", Reason: "unknown operator"}
	}
}

func evalMatch(m Match, env Env) (quantity.Quantity, error) {
	selected, ok := env.Discrete[m.Selector]
	if !ok {
		return quantity.Quantity{}, &errs.VariableNotFound{Name: m.Selector, Available: discreteSymbols(env)}
	}
	for _, c := range m.Cases {
		if c.Option == selected {
			return Evaluate(c.Case, env)
		}
	}
	if m.Default != nil {
		return Evaluate(m.Default, env)
	}
	return quantity.Quantity{}, &errs.ExpressionEvaluationError{
		Expression: "match(" + m.Selector + ")",
		Reason:     fmt.Sprintf("no case matches selector value %q and no default is defined", selected),
	}
}

func discreteSymbols(env Env) []string {
	out := make([]string, 0, len(env.Discrete))
	for k := range env.Discrete {
		out = append(out, k)
	}
	return out
}

func evalSummation(s Summation, env Env) (quantity.Quantity, error) {
	extraEnv := env
	if s.Extra != nil {
		extraEnv.Extra = s.Extra
	}
	var total quantity.Quantity
	started := false
	err := forEachIndex(s.Bounds, nil, func(indices []int) error {
		node, err := s.Body(indices, extraEnv)
		if err != nil {
			return err
		}
		term, err := Evaluate(node, extraEnv)
		if err != nil {
			return err
		}
		if !started {
			total = term
			started = true
			return nil
		}
		total, err = quantity.Add(total, term)
		return err
	})
	if err != nil {
		return quantity.Quantity{}, err
	}
	if !started {
		return quantity.Quantity{}, &errs.ExpressionEvaluationError{Expression: "summation", Reason: "empty index range"}
	}
	return total, nil
}

// forEachIndex walks the Cartesian product of bounds, invoking visit with
// each fully-formed index tuple.
func forEachIndex(bounds []Bound, prefix []int, visit func(indices []int) error) error {
	if len(bounds) == 0 {
		idx := make([]int, len(prefix))
		copy(idx, prefix)
		return visit(idx)
	}
	b := bounds[0]
	step := b.Step
	if step == 0 {
		step = 1
	}
	for v := b.Lo; v <= b.Hi+1e-9; v += step {
		if err := forEachIndex(bounds[1:], append(prefix, int(v)), visit); err != nil {
			return err
		}
	}
	return nil
}

func evalRangeCase(r RangeCase, env Env) (quantity.Quantity, error) {
	v, err := Evaluate(r.Value, env)
	if err != nil {
		return quantity.Quantity{}, err
	}
	for _, c := range r.Cases {
		if intervalContains(c, v.SI()) {
			return Evaluate(c.Case, env)
		}
	}
	if r.Otherwise != nil {
		return Evaluate(r.Otherwise, env)
	}
	return quantity.Quantity{}, &errs.ExpressionEvaluationError{
		Expression: "rangecase",
		Reason:     fmt.Sprintf("value %g matches no interval and no otherwise clause is defined", v.SI()),
	}
}

func intervalContains(c RangeInterval, v float64) bool {
	if c.Lower != nil {
		if c.LowerInclusive {
			if v < *c.Lower {
				return false
			}
		} else if v <= *c.Lower {
			return false
		}
	}
	if c.Upper != nil {
		if c.UpperInclusive {
			if v > *c.Upper {
				return false
			}
		} else if v >= *c.Upper {
			return false
		}
	}
	return true
}
