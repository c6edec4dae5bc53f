// Package quantity implements Quantity: a numeric value stored in SI base
// units, bound to a dimension.Dimension, with a preferred display unit.
// Arithmetic enforces the dimensional laws of spec §4.2, mirroring the
// teacher's own unit.Unit arithmetic (Add/Mul/Div/In) but returning
// structured errors instead of panicking, since these operations run on
// values that ultimately trace back to user input (equation evaluation),
// not just programmer-supplied catalog data.
package quantity

import (
	"fmt"
	"math"

	"github.com/tn3wman/qnty/dimension"
	"github.com/tn3wman/qnty/errs"
	"github.com/tn3wman/qnty/unit"
)

// equalTol is the relative tolerance used when comparing two Quantities
// for equality (spec §3, §8).
const equalTol = 1e-9

// Quantity is a numeric value in SI base units, a Dimension, and a
// preferred display Unit. Quantity has value semantics: every arithmetic
// operation below returns a fresh Quantity.
type Quantity struct {
	si        float64
	dim       dimension.Dimension
	preferred unit.Unit
}

// FromUnit builds a Quantity from a numeric value expressed in u.
func FromUnit(value float64, u unit.Unit) Quantity {
	return Quantity{si: u.ToSI(value), dim: u.Dimension(), preferred: u}
}

// FromSI builds a Quantity directly from an SI-base-unit value, with the
// given preferred display unit (which must share dim's dimension; callers
// within this module are expected to pass a compatible unit).
func FromSI(siValue float64, dim dimension.Dimension, preferred unit.Unit) Quantity {
	return Quantity{si: siValue, dim: dim, preferred: preferred}
}

// SI returns the value in SI base units.
func (q Quantity) SI() float64 { return q.si }

// Dimension returns q's dimension.
func (q Quantity) Dimension() dimension.Dimension { return q.dim }

// PreferredUnit returns q's preferred display unit.
func (q Quantity) PreferredUnit() unit.Unit { return q.preferred }

// IsDimensionlessZero reports whether q is the dimensionless literal zero
// that Add, Sub, and Compare treat as a neutral element able to combine
// with any dimensioned quantity (spec §4.2, §7's DimensionMismatch
// exception, §8's boundary behavior).
func (q Quantity) IsDimensionlessZero() bool {
	return q.dim.IsDimensionless() && q.si == 0
}

// String renders q in its preferred unit for diagnostics.
func (q Quantity) String() string {
	v := q.preferred.FromSI(q.si)
	if q.preferred.Symbol() == "" {
		return fmt.Sprintf("%g", v)
	}
	return fmt.Sprintf("%g %s", v, q.preferred.Symbol())
}

// In returns q's numeric value displayed in u, and an error if u's
// dimension does not match q's.
func (q Quantity) In(u unit.Unit) (float64, error) {
	if !dimension.Equal(q.dim, u.Dimension()) {
		return 0, &errs.UnitConversionError{
			From:   q.dim.String(),
			To:     u.Name(),
			Reason: "incompatible dimension",
		}
	}
	return u.FromSI(q.si), nil
}

// To converts q to a new Quantity whose preferred unit is u. Requires
// u.Dimension() == q.Dimension().
func (q Quantity) To(u unit.Unit) (Quantity, error) {
	if !dimension.Equal(q.dim, u.Dimension()) {
		return Quantity{}, &errs.UnitConversionError{
			From:   q.dim.String(),
			To:     u.Name(),
			Reason: "incompatible dimension",
		}
	}
	return Quantity{si: q.si, dim: q.dim, preferred: u}, nil
}

// Add returns x+y. Dimensions must match, unless one operand is the
// dimensionless literal zero (spec §4.2, §7).
func Add(x, y Quantity) (Quantity, error) {
	if dimension.Equal(x.dim, y.dim) {
		return Quantity{si: x.si + y.si, dim: x.dim, preferred: x.preferred}, nil
	}
	if y.IsDimensionlessZero() {
		return x, nil
	}
	if x.IsDimensionlessZero() {
		return y, nil
	}
	return Quantity{}, &errs.DimensionMismatch{Op: "add", LeftDim: x.dim.String(), RightDim: y.dim.String()}
}

// Sub returns x-y, under the same dimensional rule as Add.
func Sub(x, y Quantity) (Quantity, error) {
	if dimension.Equal(x.dim, y.dim) {
		return Quantity{si: x.si - y.si, dim: x.dim, preferred: x.preferred}, nil
	}
	if y.IsDimensionlessZero() {
		return x, nil
	}
	if x.IsDimensionlessZero() {
		return Quantity{si: -y.si, dim: y.dim, preferred: y.preferred}, nil
	}
	return Quantity{}, &errs.DimensionMismatch{Op: "sub", LeftDim: x.dim.String(), RightDim: y.dim.String()}
}

// Mul returns x*y: dimension and SI value both multiply. The result's
// preferred unit is the composition of the operands' preferred units.
func Mul(x, y Quantity) Quantity {
	return Quantity{
		si:        x.si * y.si,
		dim:       dimension.Mul(x.dim, y.dim),
		preferred: unit.Mul(x.preferred, y.preferred),
	}
}

// Scale multiplies a Quantity by a dimensionless scalar, preserving
// dimension and preferred unit.
func Scale(x Quantity, k float64) Quantity {
	return Quantity{si: x.si * k, dim: x.dim, preferred: x.preferred}
}

// Div returns x/y. There is no "divisor is numerically 1" fast path that
// skips the dimensional division: an earlier optimization of that shape
// is explicitly forbidden by spec §4.2/§8 because it silently returns the
// dividend's dimension unchanged even when the divisor carries a
// dimension (e.g. 5 in / 1 in must be dimensionless(5), not 5 in). The
// formula below always performs the division on both the SI value and the
// dimension signature, so that regression can't reappear.
func Div(x, y Quantity) (Quantity, error) {
	if y.si == 0 {
		return Quantity{}, &errs.DivisionByZero{Dividend: x.String()}
	}
	return Quantity{
		si:        x.si / y.si,
		dim:       dimension.Div(x.dim, y.dim),
		preferred: unit.Div(x.preferred, y.preferred),
	}, nil
}

// Pow raises x to an integer power k.
func Pow(x Quantity, k int) Quantity {
	return Quantity{
		si:        math.Pow(x.si, float64(k)),
		dim:       dimension.Pow(x.dim, k),
		preferred: unit.Pow(x.preferred, k),
	}
}

// PowQuantity raises x to the power of a dimensionless exponent that must
// evaluate to an integer within 1e-12 (spec §4.2).
func PowQuantity(x, exponent Quantity) (Quantity, error) {
	if !exponent.dim.IsDimensionless() {
		return Quantity{}, &errs.DimensionMismatch{Op: "pow", LeftDim: x.dim.String(), RightDim: exponent.dim.String()}
	}
	rounded := math.Round(exponent.si)
	if math.Abs(exponent.si-rounded) > 1e-12 {
		return Quantity{}, &errs.ExpressionEvaluationError{
			Expression: "pow",
			Reason:     fmt.Sprintf("exponent %g is not within 1e-12 of an integer", exponent.si),
		}
	}
	return Pow(x, int(rounded)), nil
}

// CompareOp is a comparison operator yielding a dimensionless 0/1 result.
type CompareOp int

const (
	Less CompareOp = iota
	LessOrEqual
	Greater
	GreaterOrEqual
	Equal
	NotEqual
)

// Compare evaluates x op y, returning 1.0 or 0.0. Dimensions must match,
// or one side must be the dimensionless literal zero (spec §4.2, §8).
func Compare(op CompareOp, x, y Quantity) (float64, error) {
	if !dimension.Equal(x.dim, y.dim) {
		if !(x.IsDimensionlessZero() || y.IsDimensionlessZero()) {
			return 0, &errs.DimensionMismatch{Op: "compare", LeftDim: x.dim.String(), RightDim: y.dim.String()}
		}
	}
	var result bool
	switch op {
	case Less:
		result = x.si < y.si
	case LessOrEqual:
		result = x.si <= y.si
	case Greater:
		result = x.si > y.si
	case GreaterOrEqual:
		result = x.si >= y.si
	case Equal:
		result = approxEqual(x.si, y.si)
	case NotEqual:
		result = !approxEqual(x.si, y.si)
	default:
		return 0, &errs.ExpressionEvaluationError{Expression: "compare", Reason: "unknown comparison operator"}
	}
	if result {
		return 1, nil
	}
	return 0, nil
}

func approxEqual(a, b float64) bool {
	if a == b {
		return true
	}
	denom := math.Max(math.Abs(a), math.Abs(b))
	if denom == 0 {
		return true
	}
	return math.Abs(a-b)/denom < equalTol
}

// EqualQuantity reports whether x and y describe the same dimension and
// have si values within relative tolerance 1e-9 (spec §3, §8).
func EqualQuantity(x, y Quantity) bool {
	return dimension.Equal(x.dim, y.dim) && approxEqual(x.si, y.si)
}
