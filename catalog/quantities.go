package catalog

import (
	"github.com/tn3wman/qnty/dimension"
	"github.com/tn3wman/qnty/unit"
)

// QuantityType is a seed entry from the external Quantity catalog of §6:
// a named physical quantity mapped to its expected dimension, default
// display unit, and the set of units a Variable of this type may be
// expressed in.
type QuantityType struct {
	Name         string
	Dimension    dimension.Dimension
	DefaultUnit  unit.Unit
	AllowedUnits []unit.Unit
}

// SeedQuantityTypes returns the handful of named quantity types the
// engine's worked examples and tests instantiate Variables with: Length,
// Mass, Time, Temperature, Pressure, Force, and Dimensionless.
func SeedQuantityTypes(reg *unit.Registry) map[string]QuantityType {
	must := func(name string) unit.Unit {
		u, err := reg.Resolve(name)
		if err != nil {
			panic(err)
		}
		return u
	}

	meter := must("meter")
	inch := must("inch")
	foot := must("foot")
	kilogram := must("kilogram")
	second := must("second")
	kelvin := must("kelvin")
	pascal := must("pascal")
	psi := must("psi")
	newton := must("newton")
	lbf := must("pound_force")
	dimensionless := must("dimensionless")

	return map[string]QuantityType{
		"Length": {
			Name:         "Length",
			Dimension:    meter.Dimension(),
			DefaultUnit:  meter,
			AllowedUnits: []unit.Unit{meter, inch, foot},
		},
		"Mass": {
			Name:         "Mass",
			Dimension:    kilogram.Dimension(),
			DefaultUnit:  kilogram,
			AllowedUnits: []unit.Unit{kilogram},
		},
		"Time": {
			Name:         "Time",
			Dimension:    second.Dimension(),
			DefaultUnit:  second,
			AllowedUnits: []unit.Unit{second},
		},
		"Temperature": {
			Name:         "Temperature",
			Dimension:    kelvin.Dimension(),
			DefaultUnit:  kelvin,
			AllowedUnits: []unit.Unit{kelvin},
		},
		"Pressure": {
			Name:         "Pressure",
			Dimension:    pascal.Dimension(),
			DefaultUnit:  pascal,
			AllowedUnits: []unit.Unit{pascal, psi},
		},
		"Force": {
			Name:         "Force",
			Dimension:    newton.Dimension(),
			DefaultUnit:  newton,
			AllowedUnits: []unit.Unit{newton, lbf},
		},
		"Dimensionless": {
			Name:         "Dimensionless",
			Dimension:    dimension.Dimensionless,
			DefaultUnit:  dimensionless,
			AllowedUnits: []unit.Unit{dimensionless},
		},
	}
}
