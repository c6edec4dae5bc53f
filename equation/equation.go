// Package equation implements single-target symbolic equation inversion
// (spec §4.4): given an equation lhs = rhs and a target variable that
// occurs exactly once across both sides, walk the side containing it,
// peeling off the inverse of each operator on the path until the target
// is isolated. Equations the walk cannot invert — the target occurs more
// than once, or sits under a construct with no analytic inverse (Match,
// Summation, a Conditional whose both branches reference it) — are left
// to the residual package's coupled numerical solver.
package equation

import (
	"fmt"

	"github.com/tn3wman/qnty/errs"
	"github.com/tn3wman/qnty/expr"
	"github.com/tn3wman/qnty/quantity"
)

// Equation pairs the two sides of a named relation lhs = rhs.
type Equation struct {
	Name string
	LHS  expr.Node
	RHS  expr.Node
}

// Result is the outcome of a successful SolveFor: the isolated value for
// the target, plus any warnings accumulated along the inversion path (an
// even-root branch selection, most notably).
type Result struct {
	Value    quantity.Quantity
	Warnings []string
}

// FreeVars returns the set of variable symbols the equation depends on,
// across both sides.
func (eq Equation) FreeVars() map[string]bool {
	vars := expr.FreeVars(eq.LHS)
	for k := range expr.FreeVars(eq.RHS) {
		vars[k] = true
	}
	return vars
}

// Residual evaluates lhs-rhs under env (which must already bind every
// free variable on both sides) as a single SI-unit scalar, for use by the
// residual package's Levenberg-Marquardt solver (spec §4.6).
func (eq Equation) Residual(env expr.Env) (float64, error) {
	l, err := expr.Evaluate(eq.LHS, env)
	if err != nil {
		return 0, err
	}
	r, err := expr.Evaluate(eq.RHS, env)
	if err != nil {
		return 0, err
	}
	d, err := quantity.Sub(l, r)
	if err != nil {
		return 0, err
	}
	return d.SI(), nil
}

// SolveFor isolates target, given env already binds every other free
// variable the equation mentions. It fails with EquationUnsolvable when
// target doesn't appear exactly once, or when an operator on the path to
// it has no analytic inverse implemented here.
func (eq Equation) SolveFor(target string, env expr.Env) (Result, error) {
	leftCount := expr.CountOccurrences(eq.LHS, target)
	rightCount := expr.CountOccurrences(eq.RHS, target)
	total := leftCount + rightCount

	if total == 0 {
		return Result{}, &errs.EquationUnsolvable{Equation: eq.Name, Target: target, Reason: "target does not appear in this equation"}
	}
	if total > 1 {
		return Result{}, &errs.EquationUnsolvable{
			Equation: eq.Name,
			Target:   target,
			Reason:   fmt.Sprintf("target appears %d times; not symbolically separable, requires the residual solver", total),
		}
	}

	var side expr.Node
	var acc quantity.Quantity
	var err error
	if leftCount == 1 {
		side = eq.LHS
		acc, err = expr.Evaluate(eq.RHS, env)
	} else {
		side = eq.RHS
		acc, err = expr.Evaluate(eq.LHS, env)
	}
	if err != nil {
		return Result{}, err
	}

	value, warnings, err := invert(side, target, acc, env, eq.Name)
	if err != nil {
		return Result{}, err
	}
	return Result{Value: value, Warnings: warnings}, nil
}
