package problem_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tn3wman/qnty/catalog"
	"github.com/tn3wman/qnty/dimension"
	"github.com/tn3wman/qnty/equation"
	"github.com/tn3wman/qnty/expr"
	"github.com/tn3wman/qnty/problem"
	"github.com/tn3wman/qnty/quantity"
	"github.com/tn3wman/qnty/unit"
)

// buildWallThicknessProblem builds a Barlow's-formula-style worked system
// (spec §8): thickness = pressure * diameter / (2 * stress), with
// thickness the sole unknown.
func buildWallThicknessProblem(t *testing.T) (*problem.Problem, unit.Unit, unit.Unit) {
	t.Helper()
	units := catalog.SeedRegistry()
	psi, err := units.ByName("psi")
	if err != nil {
		t.Fatal(err)
	}
	inch, err := units.ByName("inch")
	if err != nil {
		t.Fatal(err)
	}
	dimensionless, err := units.ByName("dimensionless")
	if err != nil {
		t.Fatal(err)
	}

	p := problem.New("wall_thickness")
	p.AddVariable("pressure", psi.Dimension(), psi)
	p.AddVariable("diameter", inch.Dimension(), inch)
	p.AddVariable("stress", psi.Dimension(), psi)
	p.AddVariable("thickness", inch.Dimension(), inch)

	if err := p.SetInput("pressure", quantity.FromUnit(1000, psi)); err != nil {
		t.Fatal(err)
	}
	if err := p.SetInput("diameter", quantity.FromUnit(12, inch)); err != nil {
		t.Fatal(err)
	}
	if err := p.SetInput("stress", quantity.FromUnit(20000, psi)); err != nil {
		t.Fatal(err)
	}

	pressureRef := expr.NewVarRef("pressure", psi.Dimension())
	diameterRef := expr.NewVarRef("diameter", inch.Dimension())
	stressRef := expr.NewVarRef("stress", psi.Dimension())
	thicknessRef := expr.NewVarRef("thickness", inch.Dimension())
	two := expr.NewConst(quantity.FromUnit(2, dimensionless))

	numerator := expr.Mul(pressureRef, diameterRef)
	denominator := expr.Mul(two, stressRef)
	rhs := expr.Div(numerator, denominator)

	p.AddEquation(equation.Equation{Name: "barlow", LHS: thicknessRef, RHS: rhs})
	return p, psi, inch
}

func TestSolveWallThickness(t *testing.T) {
	p, _, inch := buildWallThicknessProblem(t)
	result, err := p.Solve()
	if err != nil {
		t.Fatal(err)
	}
	got, err := result.Values["thickness"].In(inch)
	if err != nil {
		t.Fatal(err)
	}
	// t = 1000*12/(2*20000) = 0.3 in
	if math.Abs(got-0.3) > 1e-9 {
		t.Fatalf("thickness = %v in, want 0.3", got)
	}
}

func TestSolveDetectsDimensionalError(t *testing.T) {
	units := catalog.SeedRegistry()
	meter, _ := units.ByName("meter")
	second, _ := units.ByName("second")

	p := problem.New("bad_equation")
	p.AddVariable("length", meter.Dimension(), meter)
	p.AddVariable("duration", second.Dimension(), second)
	p.SetInput("duration", quantity.FromUnit(5, second))

	lengthRef := expr.NewVarRef("length", meter.Dimension())
	durationRef := expr.NewVarRef("duration", second.Dimension())

	// length = duration: a dimension mismatch depgraph's plan will assign
	// but SolveFor's evaluation of the known side will still carry the
	// wrong dimension through to the final check.
	p.AddEquation(equation.Equation{Name: "mismatched", LHS: lengthRef, RHS: durationRef})

	if _, err := p.Solve(); err == nil {
		t.Fatalf("expected a dimension mismatch error")
	}
}

func TestResolvePreservesPreferredUnitAndRevertsComputedValues(t *testing.T) {
	p, psi, inch := buildWallThicknessProblem(t)
	if _, err := p.Solve(); err != nil {
		t.Fatal(err)
	}
	thicknessVar := p.Variables["thickness"]
	if !thicknessVar.Known {
		t.Fatalf("expected thickness to be known after first solve")
	}
	if thicknessVar.Preferred.Symbol() != inch.Symbol() {
		t.Fatalf("expected preferred unit to remain inch, got %s", thicknessVar.Preferred.Symbol())
	}

	// Re-solve with a changed input; the previously-computed thickness
	// must be recomputed, not left stale, while pressure/diameter/stress
	// (Input variables) are untouched by the reversion.
	if err := p.SetInput("pressure", quantity.FromUnit(2000, psi)); err != nil {
		t.Fatal(err)
	}
	result, err := p.Solve()
	if err != nil {
		t.Fatal(err)
	}
	got, err := result.Values["thickness"].In(inch)
	if err != nil {
		t.Fatal(err)
	}
	// t = 2000*12/(2*20000) = 0.6 in
	if math.Abs(got-0.6) > 1e-9 {
		t.Fatalf("thickness after re-solve = %v in, want 0.6", got)
	}
	if thicknessVar.Preferred.Symbol() != inch.Symbol() {
		t.Fatalf("preferred unit changed across re-solve")
	}
}

func TestSolveCoupledSystemViaResidualFallback(t *testing.T) {
	units := catalog.SeedRegistry()
	dimensionless, _ := units.ByName("dimensionless")

	p := problem.New("coupled")
	p.AddVariable("x", dimensionless.Dimension(), dimensionless)
	p.AddVariable("y", dimensionless.Dimension(), dimensionless)

	x := expr.NewVarRef("x", dimensionless.Dimension())
	y := expr.NewVarRef("y", dimensionless.Dimension())
	sum, err := expr.Add(x, y)
	if err != nil {
		t.Fatal(err)
	}
	prod := expr.Mul(x, y)

	p.AddEquation(equation.Equation{Name: "sum", LHS: sum, RHS: expr.NewConst(quantity.FromUnit(10, dimensionless))})
	p.AddEquation(equation.Equation{Name: "product", LHS: prod, RHS: expr.NewConst(quantity.FromUnit(21, dimensionless))})

	result, err := p.Solve()
	if err != nil {
		t.Fatal(err)
	}
	xv := result.Values["x"].SI()
	yv := result.Values["y"].SI()
	if math.Abs(xv+yv-10) > 1e-6 || math.Abs(xv*yv-21) > 1e-6 {
		t.Fatalf("x=%v y=%v do not satisfy the coupled system", xv, yv)
	}
}

func TestComposeWithSharedBinding(t *testing.T) {
	units := catalog.SeedRegistry()
	meter, _ := units.ByName("meter")

	areaDim := dimension.Mul(meter.Dimension(), meter.Dimension())
	areaUnitType := unit.Mul(meter, meter)

	// Sub-problem: a square's area from a shared side length.
	square := problem.New("square")
	square.AddVariable("side", meter.Dimension(), meter)
	square.AddVariable("area", areaDim, areaUnitType)
	sideRef := expr.NewVarRef("side", meter.Dimension())
	square.AddEquation(equation.Equation{
		Name: "area_eq",
		LHS:  expr.NewVarRef("area", areaDim),
		RHS:  expr.Mul(sideRef, sideRef),
	})

	parent := problem.New("parent")
	parent.AddVariable("side", meter.Dimension(), meter)
	if err := parent.SetInput("side", quantity.FromUnit(4, meter)); err != nil {
		t.Fatal(err)
	}

	if err := parent.Compose("sq", square, map[string]string{"side": "side"}); err != nil {
		t.Fatal(err)
	}

	result, err := parent.Solve()
	if err != nil {
		t.Fatal(err)
	}
	areaUnit := unit.Mul(meter, meter)
	got, err := result.Values["sq_area"].In(areaUnit)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-16) > 1e-9 {
		t.Fatalf("sq_area = %v, want 16", got)
	}
}

func TestSnapshotReportsUnsolvedVariableAndSubProblem(t *testing.T) {
	units := catalog.SeedRegistry()
	meter, _ := units.ByName("meter")

	p := problem.New("unsolved")
	p.AddVariable("length", meter.Dimension(), meter)
	if err := p.Compose("inner", problem.New("inner"), nil); err != nil {
		t.Fatal(err)
	}

	got, err := p.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	want := problem.State{
		Name: "unsolved",
		Variables: []problem.VariableState{
			{Symbol: "length", Dimension: meter.Dimension().String(), Unit: meter.Symbol()},
		},
		SubProblems: []string{"inner"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Snapshot mismatch (-want +got):\n%s", diff)
	}
}
