// Package dimension implements the prime-factor signature algebra used to
// check dimensional compatibility between physical quantities.
//
// Each of the seven SI base dimensions is assigned a distinct prime. A
// dimension's signature is the product of pow(prime, exponent) over the
// base dimensions it involves. Because prime factorization is unique,
// equality of two signatures is equivalent to equality of the underlying
// exponent vectors, so every dimensional check the rest of the engine
// performs — on every arithmetic operation — collapses to one numeric
// comparison instead of a seven-way exponent vector walk.
package dimension

import "math"

// Base identifies one of the seven SI base dimensions and the prime used
// to encode its exponent in a Signature.
type Base int

const (
	Length      Base = 2
	Mass        Base = 3
	Time        Base = 5
	Current     Base = 7
	Temperature Base = 11
	Amount      Base = 13
	Luminosity  Base = 17
)

var bases = [...]Base{Length, Mass, Time, Current, Temperature, Amount, Luminosity}

// exactTol is the relative tolerance used when a Dimension carries
// fractional exponents (e.g. sqrt(area)). Dimensions built exclusively
// from integer exponents are compared exactly.
const exactTol = 1e-12

// Dimension is an immutable rational prime-factor signature: the product
// of Base^exponent across the seven SI base dimensions. The zero value is
// Dimensionless.
type Dimension struct {
	sig float64
}

// Dimensionless is the signature 1: no base dimension contributes.
var Dimensionless = Dimension{sig: 1}

// small cache of common exponent tuples, keyed by the exponent tuple itself.
var cache = map[[7]int]Dimension{}

func packKey(exp [7]int) [7]int { return exp }

// New builds a Dimension from an exponent for each base dimension, in the
// order Length, Mass, Time, Current, Temperature, Amount, Luminosity.
// Exponents must be integers; use NewRational for fractional exponents
// such as those produced by Sqrt.
func New(exponents [7]int) Dimension {
	if d, ok := cache[packKey(exponents)]; ok {
		return d
	}
	sig := 1.0
	for i, e := range exponents {
		if e == 0 {
			continue
		}
		sig *= math.Pow(float64(bases[i]), float64(e))
	}
	d := Dimension{sig: sig}
	cache[packKey(exponents)] = d
	return d
}

// NewRational builds a Dimension from a rational exponent for each base
// dimension. Used for expressions such as sqrt(area) that yield a
// fractional power of a prime.
func NewRational(exponents [7]float64) Dimension {
	sig := 1.0
	for i, e := range exponents {
		if e == 0 {
			continue
		}
		sig *= math.Pow(float64(bases[i]), e)
	}
	return Dimension{sig: sig}
}

// isIntegral reports whether sig is (to floating point precision) an exact
// product of integer powers of the seven base primes. Signatures produced
// exclusively by New and Mul/Div/Pow of such signatures are always
// integral; NewRational and Sqrt of an odd exponent are not.
func (d Dimension) isIntegral() bool {
	// A signature is integral iff it, or its reciprocal, is within
	// floating point rounding of the nearest integer once reduced by
	// repeated division by the base primes. In practice this package
	// only needs to distinguish "built from New/Mul/Div/Pow" values
	// (always integral) from "built from NewRational/Sqrt" values
	// (generally not), so exactness of the signature float itself,
	// rather than deep factorization, is used as the discriminant.
	r := math.Round(d.sig)
	if r != 0 && d.sig == r {
		return true
	}
	if d.sig != 0 {
		inv := 1 / d.sig
		r = math.Round(inv)
		if r != 0 && inv == r {
			return true
		}
	}
	return d.sig == 1
}

// Mul returns the dimension of a product: a's and b's exponents added.
func Mul(a, b Dimension) Dimension {
	return Dimension{sig: a.sig * b.sig}
}

// Div returns the dimension of a quotient: a's exponents minus b's.
func Div(a, b Dimension) Dimension {
	return Dimension{sig: a.sig / b.sig}
}

// Pow raises a dimension to an integer power.
func Pow(a Dimension, k int) Dimension {
	return Dimension{sig: math.Pow(a.sig, float64(k))}
}

// NthRoot returns the dimension of the n-th root of a: each exponent
// divided by n. Like Sqrt, the result is generally non-integral and
// compares with the fractional-exponent tolerance.
func NthRoot(a Dimension, n int) Dimension {
	return Dimension{sig: math.Pow(a.sig, 1/float64(n))}
}

// Sqrt returns the dimension of a square root: each exponent halved. The
// result is generally non-integral (e.g. sqrt(length) has signature 2^0.5)
// and is compared with the relative tolerance reserved for fractional
// exponents.
func Sqrt(a Dimension) Dimension {
	return Dimension{sig: math.Sqrt(a.sig)}
}

// Equal reports whether a and b describe the same dimension. Signatures
// built exclusively from integer exponents compare exactly; if either
// side carries a fractional exponent, a relative tolerance of 1e-12 is
// used instead.
func Equal(a, b Dimension) bool {
	if a.sig == b.sig {
		return true
	}
	if a.isIntegral() && b.isIntegral() {
		return false
	}
	denom := math.Max(math.Abs(a.sig), math.Abs(b.sig))
	if denom == 0 {
		return true
	}
	return math.Abs(a.sig-b.sig)/denom < exactTol
}

// IsDimensionless reports whether d is the dimensionless signature 1.
func (d Dimension) IsDimensionless() bool {
	return Equal(d, Dimensionless)
}

// Signature returns the raw prime-factor signature, primarily for
// diagnostics and error messages; it is not meant to be parsed back into
// exponents by callers outside this package.
func (d Dimension) Signature() float64 { return d.sig }

// Exponents recovers the integer exponent of each base dimension (in the
// order Length, Mass, Time, Current, Temperature, Amount, Luminosity) by
// repeated division of the signature by each base prime. Only meaningful
// for integral signatures; fractional ones (e.g. from Sqrt) return all-zero
// exponents and ok=false.
func (d Dimension) Exponents() (exponents [7]int, ok bool) {
	if !d.isIntegral() {
		return exponents, false
	}
	// The base primes are pairwise coprime, so the exponent of each can
	// be recovered independently: divide out positive powers, then
	// multiply out negative powers (sig is a ratio of prime powers, so
	// exactly one of the two loops below does work for any given prime).
	for i, p := range bases {
		pf := float64(p)
		e := 0
		v := d.sig
		for v != 0 && math.Mod(v, pf) == 0 {
			v /= pf
			e++
		}
		for v != 0 && math.Abs(v) < 1 && math.Abs(math.Mod(1/v, pf)) < 1e-6 {
			v *= pf
			e--
		}
		exponents[i] = e
	}
	return exponents, true
}

// String renders the dimension as its raw signature for diagnostics.
func (d Dimension) String() string {
	return formatSignature(d.sig)
}

func formatSignature(sig float64) string {
	if sig == 1 {
		return "dimensionless"
	}
	return floatToString(sig)
}
