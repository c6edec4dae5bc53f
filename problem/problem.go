// Package problem implements Problem (spec §3, §4.5, §4.7, §4.9): a named
// collection of typed Variables, Equations relating them, and Rules
// checked against the solved bindings, plus the composition and re-solve
// machinery that let Problems be built out of other Problems. Solve's
// control flow mirrors the teacher's own layering in optimize: a cheap,
// structural pass (here, depgraph's topological assignment) is tried
// first, and only equations it cannot place fall through to the general,
// iterative numerical method (the residual package's Levenberg-Marquardt
// solve), the same way optimize/lbfgs is preferred over a general-purpose
// method when gradient structure is available.
package problem

import (
	"sort"

	"github.com/tn3wman/qnty/depgraph"
	"github.com/tn3wman/qnty/dimension"
	"github.com/tn3wman/qnty/equation"
	"github.com/tn3wman/qnty/errs"
	"github.com/tn3wman/qnty/expr"
	"github.com/tn3wman/qnty/quantity"
	"github.com/tn3wman/qnty/rule"
	"github.com/tn3wman/qnty/unit"
)

// Variable is one typed slot in a Problem: a dimension it must carry, a
// preferred unit for display and for scaling the residual solver's
// parameter vector, and its current binding state. Input is true for a
// variable supplied directly by the caller; false for one the solve
// computes. Solve reverts every non-Input variable to unknown before each
// run (spec §4.9's re-solve protocol), so only Input values need to be
// re-supplied across repeated solves.
type Variable struct {
	Symbol    string
	Dimension dimension.Dimension
	Preferred unit.Unit
	Input     bool
	Known     bool
	Value     quantity.Quantity
}

// Problem is a named system of Variables, Equations, and Rules. Equations
// and Rules reference Variables by symbol through the same expr.Node trees
// the equation and rule packages operate on; Problem itself only owns the
// bookkeeping of which symbols are known and routes solving to depgraph,
// equation, and residual.
type Problem struct {
	Name           string
	Variables      map[string]*Variable
	Equations      []equation.Equation
	Rules          []rule.Rule
	SubProblems    map[string]*Problem
	SharedBindings map[string]string
	Discrete       map[string]string
}

// New returns an empty Problem ready for variables, equations, and rules
// to be added.
func New(name string) *Problem {
	return &Problem{
		Name:           name,
		Variables:      make(map[string]*Variable),
		SubProblems:    make(map[string]*Problem),
		SharedBindings: make(map[string]string),
		Discrete:       make(map[string]string),
	}
}

// AddVariable declares a variable's schema: the dimension it must carry
// and the unit it prefers to display/scale in. The variable starts
// unknown; use SetInput to supply a value.
func (p *Problem) AddVariable(symbol string, dim dimension.Dimension, preferred unit.Unit) *Variable {
	v := &Variable{Symbol: symbol, Dimension: dim, Preferred: preferred}
	p.Variables[symbol] = v
	return v
}

// SetInput binds symbol to a caller-supplied value, marking it an input
// that Solve's re-solve reversion must never clear. q's dimension must
// match the variable's declared dimension.
func (p *Problem) SetInput(symbol string, q quantity.Quantity) error {
	v, ok := p.Variables[symbol]
	if !ok {
		return &errs.VariableNotFound{Name: symbol, Available: p.symbolNames()}
	}
	if !dimension.Equal(v.Dimension, q.Dimension()) {
		return &errs.DimensionMismatch{Op: "set " + symbol, LeftDim: v.Dimension.String(), RightDim: q.Dimension().String()}
	}
	v.Input = true
	v.Known = true
	v.Value = q
	return nil
}

// SetDiscrete binds a Match selector to a discrete option value.
func (p *Problem) SetDiscrete(selector, option string) {
	p.Discrete[selector] = option
}

// AddEquation appends eq to the problem's equation set.
func (p *Problem) AddEquation(eq equation.Equation) {
	p.Equations = append(p.Equations, eq)
}

// AddRule appends r to the problem's rule set.
func (p *Problem) AddRule(r rule.Rule) {
	p.Rules = append(p.Rules, r)
}

func (p *Problem) symbolNames() []string {
	out := make([]string, 0, len(p.Variables))
	for k := range p.Variables {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// env builds an expr.Env from every currently-known variable and discrete
// binding.
func (p *Problem) env() expr.Env {
	e := expr.NewEnv()
	for sym, v := range p.Variables {
		if v.Known {
			e.Values[sym] = v.Value
		}
	}
	for k, v := range p.Discrete {
		e.Discrete[k] = v
	}
	return e
}

// depgraphPlan exposes the current assignment plan for diagnostics
// (§6's observable-state view reports which equations are coupled).
func (p *Problem) depgraphPlan() (depgraph.Plan, error) {
	unknowns := make(map[string]bool)
	for sym, v := range p.Variables {
		if !v.Known {
			unknowns[sym] = true
		}
	}
	return depgraph.Build(p.Equations, unknowns)
}
