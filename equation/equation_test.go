package equation_test

import (
	"testing"

	"github.com/tn3wman/qnty/catalog"
	"github.com/tn3wman/qnty/dimension"
	"github.com/tn3wman/qnty/equation"
	"github.com/tn3wman/qnty/expr"
	"github.com/tn3wman/qnty/quantity"
)

func TestSolveForLinearAddition(t *testing.T) {
	units := catalog.SeedRegistry()
	m, _ := units.ByName("meter")

	x := expr.NewVarRef("x", m.Dimension())
	a := expr.NewConst(quantity.FromUnit(4, m))
	lhs, err := expr.Add(x, a)
	if err != nil {
		t.Fatal(err)
	}
	eq := equation.Equation{Name: "sum", LHS: lhs, RHS: expr.NewConst(quantity.FromUnit(10, m))}

	result, err := eq.SolveFor("x", expr.NewEnv())
	if err != nil {
		t.Fatal(err)
	}
	if result.Value.SI() != 6 {
		t.Fatalf("x = %v, want 6", result.Value.SI())
	}
}

func TestSolveForDivision(t *testing.T) {
	units := catalog.SeedRegistry()
	m, _ := units.ByName("meter")
	s, _ := units.ByName("second")

	// x / t = 5  (t known, x unknown)
	x := expr.NewVarRef("x", m.Dimension())
	tConst := expr.NewConst(quantity.FromUnit(2, s))
	lhs := expr.Div(x, tConst)
	speedDim := dimension.Div(m.Dimension(), s.Dimension())
	eq := equation.Equation{Name: "rate", LHS: lhs, RHS: expr.NewConst(quantity.FromSI(5, speedDim, m))}

	result, err := eq.SolveFor("x", expr.NewEnv())
	if err != nil {
		t.Fatal(err)
	}
	if result.Value.SI() != 10 {
		t.Fatalf("x = %v, want 10", result.Value.SI())
	}
}

func TestSolveForMultipleOccurrencesIsUnsolvable(t *testing.T) {
	units := catalog.SeedRegistry()
	m, _ := units.ByName("meter")

	x := expr.NewVarRef("x", m.Dimension())
	lhs, err := expr.Add(x, x)
	if err != nil {
		t.Fatal(err)
	}
	eq := equation.Equation{Name: "self-sum", LHS: lhs, RHS: expr.NewConst(quantity.FromUnit(10, m))}

	if _, err := eq.SolveFor("x", expr.NewEnv()); err == nil {
		t.Fatalf("expected EquationUnsolvable for repeated occurrence")
	}
}

func TestSolveForPowerTakesRootWithWarning(t *testing.T) {
	units := catalog.SeedRegistry()
	dimensionless, _ := units.ByName("dimensionless")

	x := expr.NewVarRef("x", dimensionless.Dimension())
	two := expr.NewConst(quantity.FromUnit(2, dimensionless))
	lhs := expr.Pow(x, two)
	eq := equation.Equation{Name: "square", LHS: lhs, RHS: expr.NewConst(quantity.FromUnit(9, dimensionless))}

	result, err := eq.SolveFor("x", expr.NewEnv())
	if err != nil {
		t.Fatal(err)
	}
	if result.Value.SI() != 3 {
		t.Fatalf("x = %v, want 3", result.Value.SI())
	}
	if len(result.Warnings) == 0 {
		t.Fatalf("expected an even-root warning")
	}
}

func TestResidualIsZeroAtSolution(t *testing.T) {
	units := catalog.SeedRegistry()
	m, _ := units.ByName("meter")

	x := expr.NewVarRef("x", m.Dimension())
	eq := equation.Equation{Name: "identity", LHS: x, RHS: expr.NewConst(quantity.FromUnit(6, m))}

	env := expr.NewEnv()
	env.Values["x"] = quantity.FromUnit(6, m)
	r, err := eq.Residual(env)
	if err != nil {
		t.Fatal(err)
	}
	if r != 0 {
		t.Fatalf("residual = %v, want 0", r)
	}
}
