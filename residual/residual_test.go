package residual_test

import (
	"math"
	"testing"

	"github.com/tn3wman/qnty/catalog"
	"github.com/tn3wman/qnty/equation"
	"github.com/tn3wman/qnty/expr"
	"github.com/tn3wman/qnty/quantity"
	"github.com/tn3wman/qnty/residual"
)

func TestSolveCoupledSystem(t *testing.T) {
	units := catalog.SeedRegistry()
	dimensionless, _ := units.ByName("dimensionless")

	x := expr.NewVarRef("x", dimensionless.Dimension())
	y := expr.NewVarRef("y", dimensionless.Dimension())

	sum, err := expr.Add(x, y)
	if err != nil {
		t.Fatal(err)
	}
	prod := expr.Mul(x, y)

	eqs := []equation.Equation{
		{Name: "sum", LHS: sum, RHS: expr.NewConst(quantity.FromUnit(10, dimensionless))},
		{Name: "product", LHS: prod, RHS: expr.NewConst(quantity.FromUnit(21, dimensionless))},
	}

	sys := residual.System{
		Equations: eqs,
		Unknowns: []residual.Unknown{
			{Symbol: "x", Dimension: dimensionless.Dimension(), Preferred: dimensionless},
			{Symbol: "y", Dimension: dimensionless.Dimension(), Preferred: dimensionless},
		},
		Env: expr.NewEnv(),
	}

	result, err := residual.Solve(sys, map[string]float64{"x": 2, "y": 8}, 100)
	if err != nil {
		t.Fatal(err)
	}
	xv, yv := result["x"].SI(), result["y"].SI()
	if math.Abs(xv+yv-10) > 1e-6 {
		t.Fatalf("x+y = %v, want 10", xv+yv)
	}
	if math.Abs(xv*yv-21) > 1e-6 {
		t.Fatalf("x*y = %v, want 21", xv*yv)
	}
	// Solution is {3,7} or {7,3}; either root is acceptable.
	low, high := math.Min(xv, yv), math.Max(xv, yv)
	if math.Abs(low-3) > 1e-5 || math.Abs(high-7) > 1e-5 {
		t.Fatalf("x,y = %v,%v; want {3,7} in some order", xv, yv)
	}
}

func TestSolveUnderdeterminedSystem(t *testing.T) {
	units := catalog.SeedRegistry()
	dimensionless, _ := units.ByName("dimensionless")

	x := expr.NewVarRef("x", dimensionless.Dimension())
	y := expr.NewVarRef("y", dimensionless.Dimension())
	sum, err := expr.Add(x, y)
	if err != nil {
		t.Fatal(err)
	}

	sys := residual.System{
		Equations: []equation.Equation{{Name: "sum", LHS: sum, RHS: expr.NewConst(quantity.FromUnit(10, dimensionless))}},
		Unknowns: []residual.Unknown{
			{Symbol: "x", Dimension: dimensionless.Dimension(), Preferred: dimensionless},
			{Symbol: "y", Dimension: dimensionless.Dimension(), Preferred: dimensionless},
		},
		Env: expr.NewEnv(),
	}

	if _, err := residual.Solve(sys, nil, 100); err == nil {
		t.Fatalf("expected UnderdeterminedSystem error")
	}
}
