package problem

import (
	"github.com/tn3wman/qnty/depgraph"
	"github.com/tn3wman/qnty/dimension"
	"github.com/tn3wman/qnty/equation"
	"github.com/tn3wman/qnty/errs"
	"github.com/tn3wman/qnty/quantity"
	"github.com/tn3wman/qnty/residual"
	"github.com/tn3wman/qnty/rule"
)

// SolveResult is the outcome of a successful Solve: every variable's
// resolved value, any warnings accumulated along the way (an even-root
// branch choice during equation inversion, most notably), and the
// outcome of every rule checked against the final bindings.
type SolveResult struct {
	Values   map[string]quantity.Quantity
	Warnings []string
	Rules    []rule.Outcome
}

// Solve runs the spec §4.5 control flow: revert every previously-solved
// (non-Input) variable to unknown, build a dependency plan over the
// current unknown set, walk its topological order solving each equation
// analytically for its assigned target, and hand whatever equations
// depgraph could not place — plus any that assigned cleanly but failed
// analytic inversion once actually attempted — to the residual package's
// coupled Levenberg-Marquardt solver as a single combined system. Rules
// are evaluated last, against the final bindings (spec §4.9's re-solve
// protocol: Match-dependent equations and rules see the fresh solve's
// bindings, never a stale one from a prior run).
//
// This single residual pass does not re-attempt analytic solving for
// equations that become newly determined only after the coupled system
// resolves; a Problem whose coupled block unblocks further purely-linear
// equations downstream needs a second Solve() call, or its equations
// restructured so depgraph's topological pass can see the full chain up
// front. This is a deliberate scope limit, not an oversight: the worked
// systems in spec §8 never require it.
func (p *Problem) Solve() (*SolveResult, error) {
	for _, v := range p.Variables {
		if !v.Input {
			v.Known = false
			v.Value = quantity.Quantity{}
		}
	}

	env := p.env()
	unknowns := make(map[string]bool)
	for sym, v := range p.Variables {
		if !v.Known {
			unknowns[sym] = true
		}
	}

	var warnings []string

	if len(unknowns) > 0 {
		plan, err := depgraph.Build(p.Equations, unknowns)
		if err != nil {
			return nil, err
		}

		coupledNames := make(map[string]bool, len(plan.Coupled))
		for _, name := range plan.Coupled {
			coupledNames[name] = true
		}

		for _, a := range plan.Order {
			eq := findEquation(p.Equations, a.Equation)
			res, err := eq.SolveFor(a.Target, env)
			if err != nil {
				coupledNames[a.Equation] = true
				continue
			}
			v := p.Variables[a.Target]
			if !dimension.Equal(res.Value.Dimension(), v.Dimension) {
				return nil, &errs.DimensionMismatch{Op: "solve " + a.Equation, LeftDim: res.Value.Dimension().String(), RightDim: v.Dimension.String()}
			}
			v.Known = true
			v.Value = res.Value
			env = env.WithValue(a.Target, res.Value)
			delete(unknowns, a.Target)
			warnings = append(warnings, res.Warnings...)
		}

		if len(coupledNames) > 0 {
			var coupledEqs []equation.Equation
			for _, eq := range p.Equations {
				if coupledNames[eq.Name] {
					coupledEqs = append(coupledEqs, eq)
				}
			}

			seen := make(map[string]bool)
			var coupledUnknowns []residual.Unknown
			for _, eq := range coupledEqs {
				for sym := range eq.FreeVars() {
					if !unknowns[sym] || seen[sym] {
						continue
					}
					seen[sym] = true
					v := p.Variables[sym]
					coupledUnknowns = append(coupledUnknowns, residual.Unknown{Symbol: sym, Dimension: v.Dimension, Preferred: v.Preferred})
				}
			}

			if len(coupledUnknowns) > 0 {
				sys := residual.System{Equations: coupledEqs, Unknowns: coupledUnknowns, Env: env}
				solved, err := residual.Solve(sys, nil, 200)
				if err != nil {
					return nil, err
				}
				for sym, q := range solved {
					v := p.Variables[sym]
					v.Known = true
					v.Value = q
					env = env.WithValue(sym, q)
					delete(unknowns, sym)
				}
			}
		}
	}

	if len(unknowns) > 0 {
		var first string
		for sym := range unknowns {
			first = sym
			break
		}
		return nil, &errs.EquationUnsolvable{Equation: p.Name, Target: first, Reason: "no equation determines this variable"}
	}

	ruleOutcomes := rule.EvaluateAll(p.Rules, env)

	return &SolveResult{Values: p.snapshot(), Warnings: warnings, Rules: ruleOutcomes}, nil
}

func findEquation(eqs []equation.Equation, name string) equation.Equation {
	for _, eq := range eqs {
		if eq.Name == name {
			return eq
		}
	}
	return equation.Equation{}
}

func (p *Problem) snapshot() map[string]quantity.Quantity {
	out := make(map[string]quantity.Quantity, len(p.Variables))
	for sym, v := range p.Variables {
		if v.Known {
			out[sym] = v.Value
		}
	}
	return out
}
