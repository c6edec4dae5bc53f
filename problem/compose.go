package problem

import (
	"fmt"

	"github.com/tn3wman/qnty/dimension"
	"github.com/tn3wman/qnty/equation"
	"github.com/tn3wman/qnty/errs"
	"github.com/tn3wman/qnty/expr"
	"github.com/tn3wman/qnty/rule"
)

// Compose wires a clone of sub into p under prefix, namespacing every
// variable, equation, and rule sub owns as "prefix_symbol" (spec §4.7).
// shared maps a sub-local symbol to an already-declared symbol in p: the
// two become the same variable rather than two separately-tracked values
// of the same dimension, so a shared binding must already exist on p and
// must carry exactly the sub-local variable's dimension — no coercion to
// a generic dimensionless placeholder is performed.
//
// Because Compose always flattens sub's own (already-validated) content
// directly into p's maps — rather than keeping a live pointer to sub —
// any sub-problems sub itself composed earlier arrive already namespaced
// under sub's own prefixes, so nested composition needs no special
// recursion here and a composition cycle can only arise from composing a
// problem into itself, which is rejected outright.
func (p *Problem) Compose(prefix string, sub *Problem, shared map[string]string) error {
	if prefix == "" {
		return &errs.CompositionError{Prefix: prefix, Reason: "prefix must not be empty"}
	}
	if _, exists := p.SubProblems[prefix]; exists {
		return &errs.CompositionError{Prefix: prefix, Reason: "prefix already in use"}
	}
	if sub == p {
		return &errs.CompositionError{Prefix: prefix, Reason: "a problem cannot compose itself"}
	}

	clone := sub.Clone()
	rename := func(sym string) string {
		if parentSym, ok := shared[sym]; ok {
			return parentSym
		}
		return prefix + "_" + sym
	}

	for sym, v := range clone.Variables {
		if parentSym, ok := shared[sym]; ok {
			existing, ok2 := p.Variables[parentSym]
			if !ok2 {
				return &errs.CompositionError{Prefix: prefix, Reason: fmt.Sprintf("shared binding %q has no matching parent variable %q", sym, parentSym)}
			}
			if !dimension.Equal(existing.Dimension, v.Dimension) {
				return &errs.CompositionError{Prefix: prefix, Reason: fmt.Sprintf("shared binding %q dimension mismatch: sub-problem has %s, parent has %s", sym, v.Dimension.String(), existing.Dimension.String())}
			}
			continue
		}
		newSym := rename(sym)
		if _, exists := p.Variables[newSym]; exists {
			return &errs.CompositionError{Prefix: prefix, Reason: fmt.Sprintf("namespaced variable %q already exists in the parent problem", newSym)}
		}
		p.Variables[newSym] = &Variable{
			Symbol:    newSym,
			Dimension: v.Dimension,
			Preferred: v.Preferred,
			Input:     v.Input,
			Known:     v.Known,
			Value:     v.Value,
		}
	}

	for _, eq := range clone.Equations {
		p.Equations = append(p.Equations, equation.Equation{
			Name: prefix + "_" + eq.Name,
			LHS:  expr.Rename(eq.LHS, rename),
			RHS:  expr.Rename(eq.RHS, rename),
		})
	}

	for _, r := range clone.Rules {
		p.Rules = append(p.Rules, rule.Rule{
			Name:      prefix + "_" + r.Name,
			Condition: expr.Rename(r.Condition, rename),
			Message:   r.Message,
			Severity:  r.Severity,
			Kind:      r.Kind,
		})
	}

	for subLocal, parentSym := range shared {
		p.SharedBindings[prefix+"_"+subLocal] = parentSym
	}

	p.SubProblems[prefix] = clone
	return nil
}
