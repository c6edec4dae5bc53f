package quantity

import (
	"fmt"
	"math"

	"github.com/tn3wman/qnty/dimension"
	"github.com/tn3wman/qnty/errs"
	"github.com/tn3wman/qnty/unit"
)

// Root returns the n-th root of x: each of x's dimension exponents divided
// by n, and the SI value raised to 1/n. Used by the equation package to
// invert x^n = k for x (spec §4.4). An even n requires a non-negative
// radicand and always yields the non-negative branch; the caller is
// responsible for surfacing the accompanying "positive branch selected"
// warning the spec requires when n is even.
func Root(x Quantity, n int) (Quantity, error) {
	if n == 0 {
		return Quantity{}, &errs.ExpressionEvaluationError{Expression: "root", Reason: "degree must be nonzero"}
	}
	if x.si < 0 && n%2 == 0 {
		return Quantity{}, &errs.ExpressionEvaluationError{
			Expression: "root",
			Reason:     fmt.Sprintf("%d-th root of a negative value has no real solution", n),
		}
	}
	var si float64
	if x.si < 0 {
		si = -math.Pow(-x.si, 1/float64(n))
	} else {
		si = math.Pow(x.si, 1/float64(n))
	}
	return Quantity{si: si, dim: dimension.NthRoot(x.dim, n), preferred: unit.NthRoot(x.preferred, n)}, nil
}
