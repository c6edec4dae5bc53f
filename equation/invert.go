package equation

import (
	"fmt"
	"math"

	"github.com/tn3wman/qnty/errs"
	"github.com/tn3wman/qnty/expr"
	"github.com/tn3wman/qnty/quantity"
)

// invert descends node in search of the single VarRef bound to target,
// accumulating into acc the value that node's subtree must evaluate to.
// At each step it evaluates the sibling not containing target (already
// fully known from env) and rewrites acc to be the value the child
// containing target must produce, then recurses into that child.
func invert(node expr.Node, target string, acc quantity.Quantity, env expr.Env, eqName string) (quantity.Quantity, []string, error) {
	switch x := node.(type) {
	case expr.VarRef:
		if x.Symbol != target {
			return quantity.Quantity{}, nil, &errs.EquationUnsolvable{Equation: eqName, Target: target, Reason: "internal: inversion walk reached an unrelated variable"}
		}
		return acc, nil, nil

	case expr.BinaryOp:
		leftHas := expr.CountOccurrences(x.Left, target) > 0
		if x.Op == expr.OpPow {
			return invertPow(x, target, acc, env, eqName, leftHas)
		}
		if leftHas {
			sibling, err := expr.Evaluate(x.Right, env)
			if err != nil {
				return quantity.Quantity{}, nil, err
			}
			newAcc, err := inverseLeft(x.Op, sibling, acc)
			if err != nil {
				return quantity.Quantity{}, nil, err
			}
			return invert(x.Left, target, newAcc, env, eqName)
		}
		sibling, err := expr.Evaluate(x.Left, env)
		if err != nil {
			return quantity.Quantity{}, nil, err
		}
		newAcc, err := inverseRight(x.Op, sibling, acc)
		if err != nil {
			return quantity.Quantity{}, nil, err
		}
		return invert(x.Right, target, newAcc, env, eqName)

	case expr.UnaryFnNode:
		if x.Fn == quantity.Abs {
			return quantity.Quantity{}, nil, &errs.EquationUnsolvable{Equation: eqName, Target: target, Reason: "no analytic inverse implemented for abs"}
		}
		newAcc, warning, err := inverseUnary(x.Fn, acc)
		if err != nil {
			return quantity.Quantity{}, nil, err
		}
		val, warnings, err := invert(x.Arg, target, newAcc, env, eqName)
		if warning != "" {
			warnings = append(warnings, warning)
		}
		return val, warnings, err

	case expr.Conditional:
		condVal, err := expr.Evaluate(x.Cond, env)
		if err != nil {
			return quantity.Quantity{}, nil, err
		}
		var branch expr.Node
		switch condVal.SI() {
		case 1:
			branch = x.Then
		case 0:
			branch = x.Else
		default:
			return quantity.Quantity{}, nil, &errs.ExpressionEvaluationError{
				Expression: "conditional",
				Reason:     fmt.Sprintf("condition evaluated to %g, expected 0 or 1", condVal.SI()),
			}
		}
		if expr.CountOccurrences(branch, target) != 1 {
			return quantity.Quantity{}, nil, &errs.EquationUnsolvable{
				Equation: eqName,
				Target:   target,
				Reason:   "target is not present in the branch selected by the current condition",
			}
		}
		return invert(branch, target, acc, env, eqName)

	case expr.Deferred:
		resolved, err := x.Thunk()
		if err != nil {
			return quantity.Quantity{}, nil, err
		}
		return invert(resolved, target, acc, env, eqName)

	default:
		return quantity.Quantity{}, nil, &errs.EquationUnsolvable{
			Equation: eqName,
			Target:   target,
			Reason:   fmt.Sprintf("no analytic inverse implemented for node type %T", node),
		}
	}
}

// inverseLeft solves X op sibling = acc for X.
func inverseLeft(op expr.BinOp, sibling, acc quantity.Quantity) (quantity.Quantity, error) {
	switch op {
	case expr.OpAdd:
		return quantity.Sub(acc, sibling)
	case expr.OpSub:
		return quantity.Add(acc, sibling)
	case expr.OpMul:
		return quantity.Div(acc, sibling)
	case expr.OpDiv:
		return quantity.Mul(acc, sibling), nil
	default:
		return quantity.Quantity{}, &errs.ExpressionEvaluationError{Expression: "inversion", Reason: fmt.Sprintf("no inverse for operator %s", op)}
	}
}

// inverseRight solves sibling op X = acc for X.
func inverseRight(op expr.BinOp, sibling, acc quantity.Quantity) (quantity.Quantity, error) {
	switch op {
	case expr.OpAdd:
		return quantity.Sub(acc, sibling)
	case expr.OpSub:
		return quantity.Sub(sibling, acc)
	case expr.OpMul:
		return quantity.Div(acc, sibling)
	case expr.OpDiv:
		return quantity.Div(sibling, acc)
	default:
		return quantity.Quantity{}, &errs.ExpressionEvaluationError{Expression: "inversion", Reason: fmt.Sprintf("no inverse for operator %s", op)}
	}
}

// invertPow handles X^n = acc (leftHas) and n^X = acc (!leftHas), the two
// shapes spec §4.4 names: an integer-exponent power (solved by taking the
// corresponding root, with a warning when the root is even-ordered since
// the positive branch is chosen arbitrarily) and a fixed-base exponential
// (solved by a change of base through natural log; both operands must be
// dimensionless, matching the domain ApplyUnary already enforces for Ln).
func invertPow(x expr.BinaryOp, target string, acc quantity.Quantity, env expr.Env, eqName string, leftHas bool) (quantity.Quantity, []string, error) {
	if leftHas {
		exponent, err := expr.Evaluate(x.Right, env)
		if err != nil {
			return quantity.Quantity{}, nil, err
		}
		rounded := math.Round(exponent.SI())
		if math.Abs(exponent.SI()-rounded) > 1e-9 || rounded == 0 {
			return quantity.Quantity{}, nil, &errs.EquationUnsolvable{Equation: eqName, Target: target, Reason: "power inversion requires a nonzero integer exponent"}
		}
		n := int(rounded)
		newAcc, err := quantity.Root(acc, n)
		if err != nil {
			return quantity.Quantity{}, nil, err
		}
		var warnings []string
		if n%2 == 0 {
			warnings = append(warnings, fmt.Sprintf("equation %q: %d-th root of %s has two real solutions; the non-negative branch was selected", eqName, n, target))
		}
		val, childWarnings, err := invert(x.Left, target, newAcc, env, eqName)
		return val, append(warnings, childWarnings...), err
	}

	base, err := expr.Evaluate(x.Left, env)
	if err != nil {
		return quantity.Quantity{}, nil, err
	}
	if !base.Dimension().IsDimensionless() || !acc.Dimension().IsDimensionless() {
		return quantity.Quantity{}, nil, &errs.EquationUnsolvable{Equation: eqName, Target: target, Reason: "exponential inversion requires a dimensionless base and result"}
	}
	lnBase, err := quantity.ApplyUnary(quantity.Ln, base)
	if err != nil {
		return quantity.Quantity{}, nil, err
	}
	lnAcc, err := quantity.ApplyUnary(quantity.Ln, acc)
	if err != nil {
		return quantity.Quantity{}, nil, err
	}
	newAcc, err := quantity.Div(lnAcc, lnBase)
	if err != nil {
		return quantity.Quantity{}, nil, err
	}
	return invert(x.Right, target, newAcc, env, eqName)
}

// inverseUnary solves f(X)=acc for X via f's principal inverse. The
// returned warning is non-empty only for Sqrt, whose inverse (squaring)
// discards the sign of the original argument.
func inverseUnary(fn quantity.UnaryFn, acc quantity.Quantity) (quantity.Quantity, string, error) {
	switch fn {
	case quantity.Sin:
		v, err := applyInverseTrig(math.Asin, acc)
		return v, "", err
	case quantity.Cos:
		v, err := applyInverseTrig(math.Acos, acc)
		return v, "", err
	case quantity.Tan:
		v, err := applyInverseTrig(math.Atan, acc)
		return v, "", err
	case quantity.Ln:
		v, err := quantity.ApplyUnary(quantity.Exp, acc)
		return v, "", err
	case quantity.Log10:
		v := math.Pow(10, acc.SI())
		return quantity.FromSI(v, acc.Dimension(), acc.PreferredUnit()), "", nil
	case quantity.Exp:
		v, err := quantity.ApplyUnary(quantity.Ln, acc)
		return v, "", err
	case quantity.Sqrt:
		squared := quantity.Pow(acc, 2)
		return squared, "sqrt inverse (squaring) discards the sign of the original argument; the non-negative branch was assumed", nil
	case quantity.Neg:
		v, err := quantity.ApplyUnary(quantity.Neg, acc)
		return v, "", err
	default:
		return quantity.Quantity{}, "", &errs.ExpressionEvaluationError{Expression: "inversion", Reason: fmt.Sprintf("no inverse for function %s", fn)}
	}
}

func applyInverseTrig(f func(float64) float64, acc quantity.Quantity) (quantity.Quantity, error) {
	if acc.SI() < -1 || acc.SI() > 1 {
		return quantity.Quantity{}, &errs.ExpressionEvaluationError{Expression: "inverse trig", Reason: "argument must be in [-1, 1]"}
	}
	return quantity.FromSI(f(acc.SI()), acc.Dimension(), acc.PreferredUnit()), nil
}
