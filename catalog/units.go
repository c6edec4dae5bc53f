// Package catalog provides a minimal seed Unit and QuantityType catalog:
// enumerated data, not engine logic. Per spec §1 and §6, the full physical
// catalog (hundreds of units, dozens of named quantity types) is an
// external collaborator and explicitly out of this engine's scope; this
// package exists only so the engine's tests and worked examples (§8's
// end-to-end scenarios) have concrete units and quantity types to build
// against, and is intentionally small rather than exhaustive.
package catalog

import (
	"github.com/tn3wman/qnty/dimension"
	"github.com/tn3wman/qnty/unit"
)

// Base dimensions in the exponent-order dimension.New expects.
var (
	dimLength      = dimension.New([7]int{1, 0, 0, 0, 0, 0, 0})
	dimMass        = dimension.New([7]int{0, 1, 0, 0, 0, 0, 0})
	dimTime        = dimension.New([7]int{0, 0, 1, 0, 0, 0, 0})
	dimTemperature = dimension.New([7]int{0, 0, 0, 0, 1, 0, 0})
	dimArea        = dimension.Pow(dimLength, 2)
	dimForce       = dimension.Mul(dimMass, dimension.Div(dimLength, dimension.Pow(dimTime, 2)))
	dimPressure    = dimension.Div(dimForce, dimArea)
	dimDimensionless = dimension.Dimensionless
)

// SeedRegistry builds a Registry with SI base units plus the handful of
// derived units exercised by the engine's worked examples and tests:
// length (meter, inch, foot), mass (gram, with kilogram from its prefixes),
// time (second, minute, hour), temperature (kelvin, celsius, fahrenheit),
// pressure (pascal, psi, bar), force (newton, pound_force), and
// dimensionless. meter, gram, second, pascal and newton also get every SI
// prefix.
func SeedRegistry() *unit.Registry {
	b := unit.NewBuilder()

	meter := unit.New("meter", "m", dimLength, 1.0, 0, true)
	b.Add(meter, "metre")
	b.Add(unit.New("inch", "in", dimLength, 0.0254, 0, false))
	b.Add(unit.New("foot", "ft", dimLength, 0.3048, 0, false))

	// kilogram is the SI base unit for mass, but the prefixable unit is
	// gram (SI forbids double-prefixing); "kilogram" itself is generated
	// automatically by the kilo- prefix over gram, with factor 1.0.
	b.Add(unit.New("gram", "g", dimMass, 1e-3, 0, true))

	second := unit.New("second", "s", dimTime, 1.0, 0, true)
	b.Add(second, "sec")
	b.Add(unit.New("minute", "min", dimTime, 60.0, 0, false))
	b.Add(unit.New("hour", "hr", dimTime, 3600.0, 0, false))

	kelvin := unit.New("kelvin", "K", dimTemperature, 1.0, 0, false)
	b.Add(kelvin)
	b.Add(unit.New("celsius", "degC", dimTemperature, 1.0, 273.15, false))
	b.Add(unit.New("fahrenheit", "degF", dimTemperature, 5.0/9.0, 459.67*5.0/9.0, false))

	pascal := unit.New("pascal", "Pa", dimPressure, 1.0, 0, true)
	b.Add(pascal)
	b.Add(unit.New("psi", "psi", dimPressure, 6894.757293168, 0, false))
	b.Add(unit.New("bar", "bar", dimPressure, 1e5, 0, false))

	newton := unit.New("newton", "N", dimForce, 1.0, 0, true)
	b.Add(newton)
	b.Add(unit.New("pound_force", "lbf", dimForce, 4.4482216152605, 0, false))

	b.Add(unit.New("dimensionless", "", dimDimensionless, 1.0, 0, false))

	return b.Freeze()
}
