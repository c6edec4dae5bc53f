package depgraph_test

import (
	"testing"

	"github.com/tn3wman/qnty/catalog"
	"github.com/tn3wman/qnty/depgraph"
	"github.com/tn3wman/qnty/equation"
	"github.com/tn3wman/qnty/expr"
	"github.com/tn3wman/qnty/quantity"
)

func TestBuildOrdersChainedEquations(t *testing.T) {
	units := catalog.SeedRegistry()
	m, _ := units.ByName("meter")

	// b = a + 1 ; c = b + 1  — c depends on b depends on a, a is known.
	a := expr.NewVarRef("a", m.Dimension())
	b := expr.NewVarRef("b", m.Dimension())
	c := expr.NewVarRef("c", m.Dimension())
	one := expr.NewConst(quantity.FromUnit(1, m))

	bRHS, err := expr.Add(a, one)
	if err != nil {
		t.Fatal(err)
	}
	cRHS, err := expr.Add(b, one)
	if err != nil {
		t.Fatal(err)
	}

	eqB := equation.Equation{Name: "eqB", LHS: b, RHS: bRHS}
	eqC := equation.Equation{Name: "eqC", LHS: c, RHS: cRHS}

	plan, err := depgraph.Build([]equation.Equation{eqC, eqB}, map[string]bool{"b": true, "c": true})
	if err != nil {
		t.Fatal(err)
	}
	if len(plan.Coupled) != 0 {
		t.Fatalf("unexpected coupled equations: %v", plan.Coupled)
	}
	if len(plan.Order) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(plan.Order))
	}
	if plan.Order[0].Equation != "eqB" || plan.Order[1].Equation != "eqC" {
		t.Fatalf("expected eqB before eqC, got %v", plan.Order)
	}
}

func TestBuildReportsCoupledSystem(t *testing.T) {
	units := catalog.SeedRegistry()
	m, _ := units.ByName("meter")

	x := expr.NewVarRef("x", m.Dimension())
	y := expr.NewVarRef("y", m.Dimension())
	sum, err := expr.Add(x, y)
	if err != nil {
		t.Fatal(err)
	}
	diff, err := expr.Sub(x, y)
	if err != nil {
		t.Fatal(err)
	}
	ten := expr.NewConst(quantity.FromUnit(10, m))
	two := expr.NewConst(quantity.FromUnit(2, m))

	eq1 := equation.Equation{Name: "sum", LHS: sum, RHS: ten}
	eq2 := equation.Equation{Name: "diff", LHS: diff, RHS: two}

	plan, err := depgraph.Build([]equation.Equation{eq1, eq2}, map[string]bool{"x": true, "y": true})
	if err != nil {
		t.Fatal(err)
	}
	if len(plan.Coupled) != 2 {
		t.Fatalf("expected both equations to be coupled, got %v (order=%v)", plan.Coupled, plan.Order)
	}
}

func TestChooseTargetPrefersHigherOutDegree(t *testing.T) {
	candidates := []string{"p", "q"}
	outDegree := map[string]int{"p": 1, "q": 3}
	declOrder := map[string]int{}
	if got := depgraph.ChooseTarget(candidates, outDegree, declOrder); got != "q" {
		t.Fatalf("ChooseTarget = %q, want q", got)
	}
}
