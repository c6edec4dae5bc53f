package expr_test

import (
	"testing"

	"github.com/tn3wman/qnty/catalog"
	"github.com/tn3wman/qnty/dimension"
	"github.com/tn3wman/qnty/expr"
	"github.com/tn3wman/qnty/quantity"
)

func TestEvaluateBinaryOp(t *testing.T) {
	units := catalog.SeedRegistry()
	m, _ := units.ByName("meter")

	x := expr.NewConst(quantity.FromUnit(3, m))
	y := expr.NewConst(quantity.FromUnit(4, m))
	sum, err := expr.Add(x, y)
	if err != nil {
		t.Fatal(err)
	}
	result, err := expr.Evaluate(sum, expr.NewEnv())
	if err != nil {
		t.Fatal(err)
	}
	if result.SI() != 7 {
		t.Fatalf("3m+4m = %v, want 7", result.SI())
	}
}

func TestEvaluateVarRefMissing(t *testing.T) {
	ref := expr.NewVarRef("x", mustMeterDim(t))
	if _, err := expr.Evaluate(ref, expr.NewEnv()); err == nil {
		t.Fatalf("expected VariableNotFound error")
	}
}

func TestConditionalShortCircuits(t *testing.T) {
	units := catalog.SeedRegistry()
	m, _ := units.ByName("meter")
	dimensionless, _ := units.ByName("dimensionless")

	zero := expr.NewConst(quantity.FromUnit(0, m))
	one := expr.NewConst(quantity.FromUnit(1, dimensionless))

	// else-branch would divide by zero; condition selects then-branch,
	// so the else branch must never be evaluated.
	thenBranch := expr.NewConst(quantity.FromUnit(5, m))
	elseBranch := expr.Div(expr.NewConst(quantity.FromUnit(1, m)), zero)

	cond := expr.NewConditional(one, thenBranch, elseBranch)
	result, err := expr.Evaluate(cond, expr.NewEnv())
	if err != nil {
		t.Fatalf("conditional should short-circuit without error: %v", err)
	}
	if result.SI() != 5 {
		t.Fatalf("conditional result = %v, want 5", result.SI())
	}
}

func TestMatchSelectsCase(t *testing.T) {
	units := catalog.SeedRegistry()
	psi, _ := units.ByName("psi")

	m := expr.NewMatch("schedule", []expr.MatchCase{
		{Option: "40", Case: expr.NewConst(quantity.FromUnit(100, psi))},
		{Option: "80", Case: expr.NewConst(quantity.FromUnit(200, psi))},
	}, nil)

	env := expr.NewEnv()
	env.Discrete["schedule"] = "80"
	result, err := expr.Evaluate(m, env)
	if err != nil {
		t.Fatal(err)
	}
	if want := quantity.FromUnit(200, psi).SI(); result.SI() != want {
		t.Fatalf("match result = %v, want %v (200 psi)", result.SI(), want)
	}
}

func TestMatchExhaustedWithoutDefault(t *testing.T) {
	m := expr.NewMatch("schedule", []expr.MatchCase{}, nil)
	env := expr.NewEnv()
	env.Discrete["schedule"] = "missing"
	if _, err := expr.Evaluate(m, env); err == nil {
		t.Fatalf("expected MatchExhausted-equivalent error")
	}
}

func TestRangeCasePicksInterval(t *testing.T) {
	units := catalog.SeedRegistry()
	dimensionless, _ := units.ByName("dimensionless")
	lower := 0.0
	upper := 10.0
	rc := expr.NewRangeCase(
		expr.NewConst(quantity.FromUnit(5, dimensionless)),
		[]expr.RangeInterval{
			{Lower: &lower, Upper: &upper, LowerInclusive: true, UpperInclusive: false, Case: expr.NewConst(quantity.FromUnit(1, dimensionless))},
		},
		expr.NewConst(quantity.FromUnit(0, dimensionless)),
	)
	result, err := expr.Evaluate(rc, expr.NewEnv())
	if err != nil {
		t.Fatal(err)
	}
	if result.SI() != 1 {
		t.Fatalf("range case result = %v, want 1", result.SI())
	}
}

func TestSummationSumsTerms(t *testing.T) {
	units := catalog.SeedRegistry()
	dimensionless, _ := units.ByName("dimensionless")

	s := expr.NewSummation([]expr.Bound{{Lo: 1, Hi: 3}}, func(indices []int, env expr.Env) (expr.Node, error) {
		i := indices[0]
		return expr.NewConst(quantity.FromUnit(float64(i), dimensionless)), nil
	})
	result, err := expr.Evaluate(s, expr.NewEnv())
	if err != nil {
		t.Fatal(err)
	}
	if result.SI() != 6 {
		t.Fatalf("sum 1..3 = %v, want 6", result.SI())
	}
}

func TestDeferredIsIdempotent(t *testing.T) {
	units := catalog.SeedRegistry()
	m, _ := units.ByName("meter")
	calls := 0
	d := expr.NewDeferred(func() (expr.Node, error) {
		calls++
		return expr.NewConst(quantity.FromUnit(2, m)), nil
	})
	for i := 0; i < 3; i++ {
		result, err := expr.Evaluate(d, expr.NewEnv())
		if err != nil {
			t.Fatal(err)
		}
		if result.SI() != 2 {
			t.Fatalf("deferred result = %v, want 2", result.SI())
		}
	}
}

func TestCountOccurrences(t *testing.T) {
	units := catalog.SeedRegistry()
	dim := mustMeterDim(t)
	_ = units
	x := expr.NewVarRef("x", dim)
	expr1, _ := expr.Add(x, x)
	if got := expr.CountOccurrences(expr1, "x"); got != 2 {
		t.Fatalf("CountOccurrences = %d, want 2", got)
	}
}

func mustMeterDim(t *testing.T) dimension.Dimension {
	t.Helper()
	units := catalog.SeedRegistry()
	m, err := units.ByName("meter")
	if err != nil {
		t.Fatal(err)
	}
	return m.Dimension()
}
