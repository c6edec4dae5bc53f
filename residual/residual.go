// Package residual solves coupled systems of equations — those the
// equation package's single-target inversion can't symbolically separate
// — by Levenberg-Marquardt least squares, wrapping the teacher's own
// gonum.org/v1/gonum/optimize/nlls.LM the same way the depgraph package
// wraps gonum's graph/topo: by composing an existing numeric primitive
// rather than re-implementing Levenberg-Marquardt bookkeeping.
//
// Unknowns are scaled by their preferred unit's SI factor before being
// handed to LM, so the optimizer's parameter vector stays well-scaled
// regardless of whether a variable is expressed in pascals or psi (spec
// §9's scaled-variable Open Question resolution). The Jacobian is
// hand-rolled central differences with a per-component step size
// (1e-7*max(1,|x_j|), spec §4.6) rather than gonum/diff/fd.Jacobian,
// because fd.JacobianSettings.Step is a single scalar shared by every
// parameter and can't express a per-component step.
package residual

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/nlls"

	"github.com/tn3wman/qnty/dimension"
	"github.com/tn3wman/qnty/equation"
	"github.com/tn3wman/qnty/errs"
	"github.com/tn3wman/qnty/expr"
	"github.com/tn3wman/qnty/quantity"
	"github.com/tn3wman/qnty/unit"
)

// convergenceFloor and relativeTol implement the convergence test of spec
// §4.6: ||F(x)|| < max(1e-9, rtol*||x||).
const (
	convergenceFloor = 1e-9
	relativeTol      = 1e-10
	jacobianStep     = 1e-7
)

// Unknown names one variable the solver must find a value for, along with
// the dimension it must carry and the unit its numeric guess/result is
// scaled against.
type Unknown struct {
	Symbol    string
	Dimension dimension.Dimension
	Preferred unit.Unit
}

// System is a coupled set of equations over a set of unknowns, evaluated
// against an Env that already binds every other free variable involved.
type System struct {
	Equations []equation.Equation
	Unknowns  []Unknown
	Env       expr.Env
}

// Solve runs Levenberg-Marquardt over sys starting from initialGuess (SI
// units; unknowns absent from the map start at 1 in the corresponding
// preferred unit, a reasonable order-of-magnitude seed for most
// engineering quantities) and returns each unknown's resolved Quantity.
func Solve(sys System, initialGuess map[string]float64, maxIterations int) (map[string]quantity.Quantity, error) {
	n := len(sys.Unknowns)
	m := len(sys.Equations)
	if m < n {
		return nil, &errs.UnderdeterminedSystem{Equations: m, Unknowns: n}
	}
	if maxIterations <= 0 {
		maxIterations = 100
	}

	scale := make([]float64, n)
	init := make([]float64, n)
	for i, u := range sys.Unknowns {
		factor := u.Preferred.SIFactor()
		if factor == 0 {
			factor = 1
		}
		scale[i] = factor
		if g, ok := initialGuess[u.Symbol]; ok {
			init[i] = g / factor
		} else {
			init[i] = 1
		}
	}

	var lastErr error
	evaluate := func(params []float64) []float64 {
		env := sys.Env
		for i, u := range sys.Unknowns {
			siVal := params[i] * scale[i]
			env = env.WithValue(u.Symbol, quantity.FromSI(siVal, u.Dimension, u.Preferred))
		}
		out := make([]float64, m)
		for j, eq := range sys.Equations {
			r, err := eq.Residual(env)
			if err != nil {
				lastErr = err
				out[j] = 1e6 // steer the optimizer away from an invalid region
				continue
			}
			out[j] = r
		}
		return out
	}

	residualFunc := func(dst, params []float64) {
		copy(dst, evaluate(params))
	}

	jac := func(dst *mat.Dense, params []float64) {
		work := make([]float64, len(params))
		copy(work, params)
		for j := range params {
			step := jacobianStep * math.Max(1, math.Abs(params[j]))
			orig := work[j]

			work[j] = orig + step
			plus := evaluate(work)

			work[j] = orig - step
			minus := evaluate(work)

			work[j] = orig

			for i := 0; i < m; i++ {
				dst.Set(i, j, (plus[i]-minus[i])/(2*step))
			}
		}
	}

	problem := nlls.LMProblem{
		Dim:        n,
		Size:       m,
		Func:       residualFunc,
		Jac:        jac,
		InitParams: init,
		Tau:        1e-3,
		Eps1:       1e-12,
		Eps2:       1e-12,
	}
	result, err := nlls.LM(problem, &nlls.Settings{Iterations: maxIterations, ObjectiveTol: 1e-18})
	if err != nil {
		return nil, err
	}

	finalResidual := evaluate(result.X)
	normF := floats.Norm(finalResidual, 2)
	normX := floats.Norm(result.X, 2)
	threshold := math.Max(convergenceFloor, relativeTol*normX)
	if normF >= threshold {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, &errs.SolverDiverged{ResidualNorm: normF, Iterations: maxIterations}
	}

	out := make(map[string]quantity.Quantity, n)
	for i, u := range sys.Unknowns {
		out[u.Symbol] = quantity.FromSI(result.X[i]*scale[i], u.Dimension, u.Preferred)
	}
	return out, nil
}
