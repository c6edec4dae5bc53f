package problem

import (
	"github.com/tn3wman/qnty/equation"
	"github.com/tn3wman/qnty/rule"
)

// Clone returns a deep copy of p: independent Variable pointers (so
// mutating the clone's bindings never touches p's), independently-copied
// sub-problem trees, and shared (read-only, by contract) equation.Equation
// and rule.Rule values — their expr.Node trees are immutable once built
// (spec §4.3), so sharing them across clones is safe and avoids rebuilding
// every closure in a Summation or Deferred node on every Compose call.
//
// SubProblems forms a tree by construction (Compose refuses to wire a
// Problem into itself and always flattens a sub-problem's own
// already-validated content into the parent at composition time), so this
// recursion always terminates.
func (p *Problem) Clone() *Problem {
	np := &Problem{
		Name:           p.Name,
		Variables:      make(map[string]*Variable, len(p.Variables)),
		SubProblems:    make(map[string]*Problem, len(p.SubProblems)),
		SharedBindings: make(map[string]string, len(p.SharedBindings)),
		Discrete:       make(map[string]string, len(p.Discrete)),
	}
	for sym, v := range p.Variables {
		copied := *v
		np.Variables[sym] = &copied
	}
	np.Equations = append([]equation.Equation{}, p.Equations...)
	np.Rules = append([]rule.Rule{}, p.Rules...)
	for k, v := range p.SharedBindings {
		np.SharedBindings[k] = v
	}
	for k, v := range p.Discrete {
		np.Discrete[k] = v
	}
	for prefix, sub := range p.SubProblems {
		np.SubProblems[prefix] = sub.Clone()
	}
	return np
}
