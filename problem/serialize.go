package problem

import "sort"

// VariableState is the serializable view of one Variable (spec §6):
// its current value rendered in its preferred unit, whether it is known,
// and whether the caller supplied it directly (Input) or Solve computed
// it.
type VariableState struct {
	Symbol    string  `json:"symbol"`
	Dimension string  `json:"dimension"`
	Unit      string  `json:"unit"`
	Value     float64 `json:"value,omitempty"`
	Known     bool    `json:"known"`
	Input     bool    `json:"input"`
}

// State is the observable, JSON-serializable snapshot of a Problem (spec
// §6): every variable's current binding, the names of equations the
// latest dependency analysis could not place on the acyclic topological
// path (the candidates for the residual solver), and the problem's
// sub-problem prefixes. It intentionally does not serialize expr.Node
// trees or closures — those aren't meaningful outside this process — only
// the data a caller (a UI, a report generator) needs to display.
type State struct {
	Name        string          `json:"name"`
	Variables   []VariableState `json:"variables"`
	Coupled     []string        `json:"coupled_equations,omitempty"`
	SubProblems []string        `json:"sub_problems,omitempty"`
}

// Snapshot builds p's current State, re-running dependency analysis over
// whatever is presently unknown so Coupled reflects the live plan rather
// than one frozen at the last Solve call.
func (p *Problem) Snapshot() (State, error) {
	s := State{Name: p.Name}

	symbols := make([]string, 0, len(p.Variables))
	for sym := range p.Variables {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	for _, sym := range symbols {
		v := p.Variables[sym]
		vs := VariableState{
			Symbol:    sym,
			Dimension: v.Dimension.String(),
			Unit:      v.Preferred.Symbol(),
			Known:     v.Known,
			Input:     v.Input,
		}
		if v.Known {
			val, err := v.Value.In(v.Preferred)
			if err != nil {
				return State{}, err
			}
			vs.Value = val
		}
		s.Variables = append(s.Variables, vs)
	}

	plan, err := p.depgraphPlan()
	if err != nil {
		return State{}, err
	}
	s.Coupled = plan.Coupled

	for prefix := range p.SubProblems {
		s.SubProblems = append(s.SubProblems, prefix)
	}
	sort.Strings(s.SubProblems)

	return s, nil
}
