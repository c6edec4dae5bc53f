package quantity

import (
	"fmt"
	"math"

	"github.com/tn3wman/qnty/dimension"
	"github.com/tn3wman/qnty/errs"
	"github.com/tn3wman/qnty/unit"
)

// UnaryFn identifies a unary function an expr.UnaryFn node may apply to a
// Quantity (spec §3).
type UnaryFn int

const (
	Sin UnaryFn = iota
	Cos
	Tan
	Ln
	Log10
	Exp
	Sqrt
	Abs
	Neg
)

func (f UnaryFn) String() string {
	switch f {
	case Sin:
		return "sin"
	case Cos:
		return "cos"
	case Tan:
		return "tan"
	case Ln:
		return "ln"
	case Log10:
		return "log10"
	case Exp:
		return "exp"
	case Sqrt:
		return "sqrt"
	case Abs:
		return "abs"
	case Neg:
		return "neg"
	default:
		return "unknown"
	}
}

// ApplyUnary evaluates f(x). Trigonometric and transcendental functions
// require a dimensionless argument (matching conventional engineering
// usage: sin(angle_in_radians), ln(ratio)); Sqrt halves x's dimension
// exponents (generally yielding a non-integral Dimension, per
// dimension.Sqrt); Abs and Neg preserve x's dimension.
func ApplyUnary(f UnaryFn, x Quantity) (Quantity, error) {
	switch f {
	case Sin, Cos, Tan, Ln, Log10, Exp:
		if !x.dim.IsDimensionless() {
			return Quantity{}, &errs.DimensionMismatch{Op: f.String(), LeftDim: x.dim.String(), RightDim: "dimensionless"}
		}
	}
	switch f {
	case Sin:
		return dimensionless(math.Sin(x.si)), nil
	case Cos:
		return dimensionless(math.Cos(x.si)), nil
	case Tan:
		return dimensionless(math.Tan(x.si)), nil
	case Ln:
		if x.si <= 0 {
			return Quantity{}, &errs.ExpressionEvaluationError{Expression: "ln", Reason: "argument must be positive"}
		}
		return dimensionless(math.Log(x.si)), nil
	case Log10:
		if x.si <= 0 {
			return Quantity{}, &errs.ExpressionEvaluationError{Expression: "log10", Reason: "argument must be positive"}
		}
		return dimensionless(math.Log10(x.si)), nil
	case Exp:
		return dimensionless(math.Exp(x.si)), nil
	case Sqrt:
		if x.si < 0 {
			return Quantity{}, &errs.ExpressionEvaluationError{Expression: "sqrt", Reason: "argument must be non-negative"}
		}
		return Quantity{si: math.Sqrt(x.si), dim: dimension.Sqrt(x.dim), preferred: unit.Sqrt(x.preferred)}, nil
	case Abs:
		return Quantity{si: math.Abs(x.si), dim: x.dim, preferred: x.preferred}, nil
	case Neg:
		return Quantity{si: -x.si, dim: x.dim, preferred: x.preferred}, nil
	default:
		return Quantity{}, &errs.ExpressionEvaluationError{Expression: "unary", Reason: fmt.Sprintf("unknown function %v", f)}
	}
}

// dimensionlessUnit is the implicit unit ("1", no symbol) given to
// Quantities produced by dimensionless-valued unary functions and
// comparisons when no more specific preferred unit is available.
var dimensionlessUnit = unit.New("dimensionless", "", dimension.Dimensionless, 1.0, 0, false)

func dimensionless(value float64) Quantity {
	return Quantity{si: value, dim: dimension.Dimensionless, preferred: dimensionlessUnit}
}

// CompareQuantity evaluates x op y via Compare and wraps the 0.0/1.0
// result as a dimensionless Quantity, for use by expr.Comparison nodes.
func CompareQuantity(op CompareOp, x, y Quantity) (Quantity, error) {
	v, err := Compare(op, x, y)
	if err != nil {
		return Quantity{}, err
	}
	return dimensionless(v), nil
}
