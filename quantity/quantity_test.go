package quantity_test

import (
	"math"
	"testing"

	"github.com/tn3wman/qnty/catalog"
	"github.com/tn3wman/qnty/dimension"
	"github.com/tn3wman/qnty/quantity"
)

func TestAddSameDimension(t *testing.T) {
	units := catalog.SeedRegistry()
	m, err := units.ByName("meter")
	if err != nil {
		t.Fatal(err)
	}
	x := quantity.FromUnit(3, m)
	y := quantity.FromUnit(4, m)
	sum, err := quantity.Add(x, y)
	if err != nil {
		t.Fatal(err)
	}
	if sum.SI() != 7 {
		t.Fatalf("sum.SI() = %v, want 7", sum.SI())
	}
	if !sum.Dimension().IsDimensionless() && sum.Dimension().Signature() != x.Dimension().Signature() {
		t.Fatalf("sum dimension should equal operand dimension")
	}
}

func TestAddDimensionMismatch(t *testing.T) {
	units := catalog.SeedRegistry()
	m, _ := units.ByName("meter")
	s, _ := units.ByName("second")
	x := quantity.FromUnit(3, m)
	y := quantity.FromUnit(4, s)
	if _, err := quantity.Add(x, y); err == nil {
		t.Fatalf("expected dimension mismatch error")
	}
}

func TestAddDimensionlessZeroException(t *testing.T) {
	units := catalog.SeedRegistry()
	m, _ := units.ByName("meter")
	dimensionless, _ := units.ByName("dimensionless")
	x := quantity.FromUnit(3, m)
	zero := quantity.FromUnit(0, dimensionless)
	sum, err := quantity.Add(x, zero)
	if err != nil {
		t.Fatalf("adding dimensionless zero should succeed: %v", err)
	}
	if !quantity.EqualQuantity(sum, x) {
		t.Fatalf("x+0 should equal x")
	}
}

func TestDivisionIdentityRegression(t *testing.T) {
	units := catalog.SeedRegistry()
	in, _ := units.ByName("inch")
	r := quantity.FromUnit(5, in)
	d := quantity.FromUnit(1, in)
	result, err := quantity.Div(r, d)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Dimension().IsDimensionless() {
		t.Fatalf("R/D with equal units must be dimensionless, got dim signature %v", result.Dimension().Signature())
	}
	if math.Abs(result.SI()-5) > 1e-12 {
		t.Fatalf("R/D value = %v, want 5", result.SI())
	}
}

func TestDivideByZero(t *testing.T) {
	units := catalog.SeedRegistry()
	m, _ := units.ByName("meter")
	zeroM := quantity.FromUnit(0, m)
	x := quantity.FromUnit(1, m)
	if _, err := quantity.Div(x, zeroM); err == nil {
		t.Fatalf("expected DivisionByZero error")
	}
}

func TestPowAndSqrt(t *testing.T) {
	units := catalog.SeedRegistry()
	in, _ := units.ByName("inch")
	length := quantity.FromUnit(3, in)
	area := quantity.Pow(length, 2)
	if !dimension.Equal(area.Dimension(), area.PreferredUnit().Dimension()) {
		t.Fatalf("pow: preferred unit dimension %v does not match quantity dimension %v", area.PreferredUnit().Dimension(), area.Dimension())
	}
	back, err := quantity.ApplyUnary(quantity.Sqrt, area)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(back.SI()-length.SI()) > 1e-9 {
		t.Fatalf("sqrt(length^2).SI() = %v, want %v", back.SI(), length.SI())
	}
	if !dimension.Equal(back.Dimension(), length.Dimension()) {
		t.Fatalf("sqrt(length^2) dimension = %v, want %v", back.Dimension(), length.Dimension())
	}
	if !dimension.Equal(back.Dimension(), back.PreferredUnit().Dimension()) {
		t.Fatalf("sqrt: preferred unit dimension %v does not match quantity dimension %v", back.PreferredUnit().Dimension(), back.Dimension())
	}
	if v, err := back.In(in); err != nil || math.Abs(v-3) > 1e-9 {
		t.Fatalf("sqrt(length^2).In(inch) = %v, %v; want 3, nil", v, err)
	}
}

func TestRootRecomputesPreferredUnit(t *testing.T) {
	units := catalog.SeedRegistry()
	in, _ := units.ByName("inch")
	length := quantity.FromUnit(2, in)
	volume := quantity.Pow(length, 3)
	root, err := quantity.Root(volume, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !dimension.Equal(root.Dimension(), length.Dimension()) {
		t.Fatalf("cbrt(length^3) dimension = %v, want %v", root.Dimension(), length.Dimension())
	}
	if !dimension.Equal(root.Dimension(), root.PreferredUnit().Dimension()) {
		t.Fatalf("root: preferred unit dimension %v does not match quantity dimension %v", root.PreferredUnit().Dimension(), root.Dimension())
	}
	if v, err := root.In(in); err != nil || math.Abs(v-2) > 1e-9 {
		t.Fatalf("cbrt(length^3).In(inch) = %v, %v; want 2, nil", v, err)
	}
}

func TestConversionRoundTrip(t *testing.T) {
	units := catalog.SeedRegistry()
	psi, _ := units.ByName("psi")
	pascal, _ := units.ByName("pascal")
	p := quantity.FromUnit(100, psi)
	inPa, err := p.In(pascal)
	if err != nil {
		t.Fatal(err)
	}
	back := inPa*pascal.SIFactor() + pascal.SIOffset()
	if math.Abs(back-p.SI())/p.SI() > 1e-12 {
		t.Fatalf("round trip conversion failed: %v vs %v", back, p.SI())
	}
}

func TestComparisonToDimensionlessZero(t *testing.T) {
	units := catalog.SeedRegistry()
	m, _ := units.ByName("meter")
	dimensionless, _ := units.ByName("dimensionless")
	x := quantity.FromUnit(3, m)
	zero := quantity.FromUnit(0, dimensionless)
	v, err := quantity.Compare(quantity.Greater, x, zero)
	if err != nil {
		t.Fatal(err)
	}
	if v != 1 {
		t.Fatalf("3m > 0 should be true")
	}
}

func TestComparisonToDimensionlessNonZeroFails(t *testing.T) {
	units := catalog.SeedRegistry()
	m, _ := units.ByName("meter")
	dimensionless, _ := units.ByName("dimensionless")
	x := quantity.FromUnit(3, m)
	one := quantity.FromUnit(1, dimensionless)
	if _, err := quantity.Compare(quantity.Greater, x, one); err == nil {
		t.Fatalf("comparing length to a non-zero dimensionless quantity must fail")
	}
}
