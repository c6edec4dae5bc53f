package depgraph

import (
	"sort"
	"strings"

	"github.com/tn3wman/qnty/equation"
	"github.com/tn3wman/qnty/errs"
)

// Assignment pairs an equation with the single unknown variable it has
// been chosen to solve for, in the order it should be evaluated.
type Assignment struct {
	Equation string
	Target   string
}

// Plan is the outcome of Build: the acyclic subset of equations, in
// evaluation order, plus the names of equations that could not be
// uniquely assigned a target and must fall back to the residual solver's
// coupled-system path (spec §4.5, §4.6).
type Plan struct {
	Order   []Assignment
	Coupled []string
}

// Build assigns each equation in eqs a target variable from among its
// currently-unknown free variables and returns a topological evaluation
// order for the resulting acyclic subset.
//
// An equation is assigned as soon as exactly one of its free variables is
// still unknown — the common case, and the only case with a
// unique answer. When the fixed point of that rule leaves equations with
// more than one unknown candidate, ChooseTarget breaks the tie by
// preferring the candidate that unblocks the most other equations (the
// resolution spec's multi-target Open Question settled on, spec §9):
// assigning the higher out-degree variable first tends to let more of the
// remaining system resolve via the simple one-unknown rule before any of
// it needs the residual solver. Equations where no choice can be made —
// every remaining candidate is shared with other still-coupled equations
// in a genuine cycle — are reported in Coupled rather than assigned a
// target.
func Build(eqs []equation.Equation, unknowns map[string]bool) (Plan, error) {
	remaining := make(map[string]bool, len(unknowns))
	for k, v := range unknowns {
		remaining[k] = v
	}

	assigned := make(map[string]string, len(eqs))
	freeVars := make(map[string]map[string]bool, len(eqs))
	for _, eq := range eqs {
		freeVars[eq.Name] = eq.FreeVars()
	}

	outDegree := make(map[string]int)
	for _, fv := range freeVars {
		for v := range fv {
			outDegree[v]++
		}
	}

	declOrder := make(map[string]int, len(eqs))
	for i, eq := range eqs {
		declOrder[eq.Name] = i
	}

	progress := true
	for progress {
		progress = false
		for _, eq := range eqs {
			if _, done := assigned[eq.Name]; done {
				continue
			}
			candidates := unknownCandidates(freeVars[eq.Name], remaining)
			if len(candidates) != 1 {
				continue
			}
			assigned[eq.Name] = candidates[0]
			delete(remaining, candidates[0])
			progress = true
		}
	}

	// Second pass: for equations stalled with more than one remaining
	// candidate, ChooseTarget proposes the candidate most likely to help
	// (highest out-degree). The proposal is accepted only if assigning it
	// still leaves the graph built so far acyclic — verified by actually
	// running a trial topological sort — and only then does the fixed
	// point from the first pass get a chance to re-run. An equation whose
	// only candidates would each close a cycle is left for Coupled: it is
	// genuinely simultaneous with another still-unassigned equation, not
	// just ambiguously orderable.
	progress = true
	for progress {
		progress = false
		var stalled []equation.Equation
		for _, eq := range eqs {
			if _, done := assigned[eq.Name]; done {
				continue
			}
			if len(unknownCandidates(freeVars[eq.Name], remaining)) > 1 {
				stalled = append(stalled, eq)
			}
		}
		sort.Slice(stalled, func(i, j int) bool { return declOrder[stalled[i].Name] < declOrder[stalled[j].Name] })
		for _, eq := range stalled {
			candidates := unknownCandidates(freeVars[eq.Name], remaining)
			if len(candidates) <= 1 {
				continue
			}
			target := ChooseTarget(candidates, outDegree, declOrder)
			trial := map[string]string{eq.Name: target}
			for k, v := range assigned {
				trial[k] = v
			}
			if _, err := buildGraph(eqs, freeVars, trial).TopologicalOrder(); err != nil {
				continue // this choice would close a cycle; leave eq for Coupled
			}
			assigned[eq.Name] = target
			delete(remaining, target)
			progress = true
			for progress2 := true; progress2; {
				progress2 = false
				for _, e2 := range eqs {
					if _, done := assigned[e2.Name]; done {
						continue
					}
					c2 := unknownCandidates(freeVars[e2.Name], remaining)
					if len(c2) == 1 {
						assigned[e2.Name] = c2[0]
						delete(remaining, c2[0])
						progress2 = true
					}
				}
			}
			break // restart the stalled scan from the (now smaller) remaining set
		}
	}

	// The inner progress2 loop above assigns single-candidate equations
	// without rechecking the whole graph, so a cycle closed jointly by
	// several assignments (none of which looked cyclic in isolation) can
	// still surface here. Rather than fail the whole plan, peel the
	// offending equations back out into Coupled and retry: those
	// equations simply are a simultaneous subsystem for the residual
	// solver, same as any other.
	var order []string
	for {
		var err error
		order, err = buildGraph(eqs, freeVars, assigned).TopologicalOrder()
		if err == nil {
			break
		}
		cycle, ok := err.(*errs.DependencyCycle)
		if !ok {
			return Plan{}, err
		}
		removed := false
		for _, member := range cycle.Members {
			name, isEquation := strings.CutPrefix(member, "equation:")
			if !isEquation {
				continue
			}
			if _, ok := assigned[name]; ok {
				delete(assigned, name)
				removed = true
			}
		}
		if !removed {
			return Plan{}, err
		}
	}

	plan := Plan{Order: make([]Assignment, 0, len(order))}
	for _, name := range order {
		plan.Order = append(plan.Order, Assignment{Equation: name, Target: assigned[name]})
	}
	for _, eq := range eqs {
		if _, ok := assigned[eq.Name]; !ok {
			plan.Coupled = append(plan.Coupled, eq.Name)
		}
	}
	return plan, nil
}

func buildGraph(eqs []equation.Equation, freeVars map[string]map[string]bool, assigned map[string]string) *Graph {
	dg := New()
	for _, eq := range eqs {
		target, ok := assigned[eq.Name]
		if !ok {
			continue
		}
		for v := range freeVars[eq.Name] {
			if v == target {
				continue
			}
			dg.AddDependency(v, eq.Name)
		}
		dg.AddProduces(eq.Name, target)
	}
	return dg
}

func unknownCandidates(freeVars map[string]bool, remaining map[string]bool) []string {
	var out []string
	for v := range freeVars {
		if remaining[v] {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// ChooseTarget picks the candidate whose resolution unblocks the most
// other equations (highest out-degree across the whole system). declOrder
// is not consulted: candidates are pre-sorted by name, so ties resolve to
// the alphabetically-first name, keeping the choice deterministic.
func ChooseTarget(candidates []string, outDegree map[string]int, declOrder map[string]int) string {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if outDegree[c] > outDegree[best] {
			best = c
		}
	}
	return best
}
