// Package unit implements named scales on a dimension.Dimension: the Unit
// type and the process-wide Registry that resolves names, symbols, and
// aliases to Units. It mirrors the teacher's own unit package
// (gonum.org/v1/gonum/unit), generalized from a closed set of
// hand-declared constants to a registry populated from an external,
// data-driven catalog (§6, §9) and extended with affine (offset) units,
// SI-prefix expansion, and an immutable-after-construction registry
// rather than package-level var declarations.
package unit

import (
	"fmt"
	"math"

	"github.com/tn3wman/qnty/dimension"
)

// Unit is a named scale on one Dimension. Conversion to SI base units is
// x_SI = x*SIFactor + SIOffset; SIOffset is non-zero only for affine
// temperature scales (Fahrenheit, etc.) per the invariant in spec §3.
type Unit struct {
	name       string
	symbol     string
	dim        dimension.Dimension
	siFactor   float64
	siOffset   float64
	prefixable bool
}

// New constructs a Unit. It panics if offset is non-zero and dim is not a
// pure temperature dimension, or if the unit is marked prefixable while
// carrying a non-zero offset — both are programmer errors in catalog data,
// not conditions a caller recovers from, matching the teacher's own
// convention of panicking on malformed construction input (e.g. mat's
// shape mismatches) rather than threading an error through every
// catalog-loading call site.
func New(name, symbol string, dim dimension.Dimension, siFactor, siOffset float64, prefixable bool) Unit {
	if siOffset != 0 {
		if prefixable {
			panic(fmt.Sprintf("unit: offset-bearing unit %q cannot be prefixable", name))
		}
		if exps, ok := dim.Exponents(); !ok || !isPureTemperature(exps) {
			panic(fmt.Sprintf("unit: offset-bearing unit %q must have pure temperature dimension", name))
		}
	}
	return Unit{name: name, symbol: symbol, dim: dim, siFactor: siFactor, siOffset: siOffset, prefixable: prefixable}
}

func isPureTemperature(exps [7]int) bool {
	// Order matches dimension.New: Length, Mass, Time, Current,
	// Temperature, Amount, Luminosity.
	for i, e := range exps {
		if i == 4 {
			if e != 1 {
				return false
			}
			continue
		}
		if e != 0 {
			return false
		}
	}
	return true
}

// Name returns the unit's canonical name, e.g. "pound_per_square_inch".
func (u Unit) Name() string { return u.name }

// Symbol returns the unit's display symbol, e.g. "psi".
func (u Unit) Symbol() string { return u.symbol }

// Dimension returns the unit's dimension.
func (u Unit) Dimension() dimension.Dimension { return u.dim }

// SIFactor returns the multiplicative SI conversion factor.
func (u Unit) SIFactor() float64 { return u.siFactor }

// SIOffset returns the additive SI conversion offset (non-zero only for
// affine temperature scales).
func (u Unit) SIOffset() float64 { return u.siOffset }

// Prefixable reports whether SI prefixes (kilo-, milli-, ...) may be
// applied to this unit by the Registry.
func (u Unit) Prefixable() bool { return u.prefixable }

// ToSI converts a numeric value expressed in u to SI base units.
func (u Unit) ToSI(value float64) float64 {
	return value*u.siFactor + u.siOffset
}

// FromSI converts a numeric value expressed in SI base units to u.
func (u Unit) FromSI(siValue float64) float64 {
	return (siValue - u.siOffset) / u.siFactor
}

// composed builds the zero-offset unit describing the product, quotient,
// or power of other units — composed units never carry an offset even if
// an operand did (the result's dimension generally isn't pure temperature
// anyway, per spec §3).
func composed(name, symbol string, dim dimension.Dimension, siFactor float64) Unit {
	return Unit{name: name, symbol: symbol, dim: dim, siFactor: siFactor}
}

// Mul returns the unit describing the product of u and v, e.g. newton*meter.
func Mul(u, v Unit) Unit {
	return composed(u.name+"_"+v.name, u.symbol+"*"+v.symbol, dimension.Mul(u.dim, v.dim), u.siFactor*v.siFactor)
}

// Div returns the unit describing the quotient of u and v, e.g. meter/second.
func Div(u, v Unit) Unit {
	return composed(u.name+"_per_"+v.name, u.symbol+"/"+v.symbol, dimension.Div(u.dim, v.dim), u.siFactor/v.siFactor)
}

// Pow returns the unit describing u raised to an integer power.
func Pow(u Unit, k int) Unit {
	return composed(fmt.Sprintf("%s^%d", u.name, k), fmt.Sprintf("%s^%d", u.symbol, k), dimension.Pow(u.dim, k), pow64(u.siFactor, k))
}

// NthRoot returns the unit describing the n-th root of u, e.g. the unit of
// sqrt(area) for an area unit. Its siFactor is u's siFactor raised to the
// 1/n power, matching dimension.NthRoot's division of exponents by n, so a
// Quantity's dimension and preferred unit stay in the same algebra after a
// root is taken (spec §3's preferred_unit.dimension == dimension
// invariant).
func NthRoot(u Unit, n int) Unit {
	return composed(fmt.Sprintf("%s^(1/%d)", u.name, n), fmt.Sprintf("%s^(1/%d)", u.symbol, n), dimension.NthRoot(u.dim, n), math.Pow(u.siFactor, 1/float64(n)))
}

// Sqrt returns the unit describing the square root of u.
func Sqrt(u Unit) Unit {
	return composed(u.name+"^(1/2)", u.symbol+"^(1/2)", dimension.Sqrt(u.dim), math.Sqrt(u.siFactor))
}

func pow64(base float64, k int) float64 {
	if k < 0 {
		return 1 / pow64(base, -k)
	}
	result := 1.0
	for i := 0; i < k; i++ {
		result *= base
	}
	return result
}
