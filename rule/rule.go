// Package rule implements the declarative check construct of spec §4.8:
// a boolean expression tree evaluated against a Problem's current
// bindings, paired with a message template and severity. Unlike equation
// evaluation, a rule that fails to evaluate (a missing variable, a
// division by zero inside its condition) never aborts the surrounding
// solve — the failure is captured in the outcome instead, mirroring how
// the teacher's stat package returns a NaN/Inf result for a
// degenerate input rather than panicking the caller's whole analysis.
package rule

import (
	"fmt"
	"strings"

	"github.com/tn3wman/qnty/errs"
	"github.com/tn3wman/qnty/expr"
)

// Severity classifies how serious a triggered rule is.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Rule is a named condition checked against a Problem's bindings. Message
// is a template: each "{symbol}" placeholder is substituted with the
// rendered value of that symbol from the Env the rule is evaluated
// against (spec §4.8).
type Rule struct {
	Name      string
	Condition expr.Node
	Message   string
	Severity  Severity
	Kind      string // e.g. "bound_check", "consistency", "advisory"
}

// Outcome is the result of evaluating one Rule: whether its condition
// evaluated to true, the rendered message, and any evaluation error
// (which does not stop the solve that produced it).
type Outcome struct {
	Rule      string
	Severity  Severity
	Triggered bool
	Message   string
	Err       error
}

// Evaluate runs r.Condition against env. If the condition cannot be
// evaluated, Outcome.Err is set to a RuleEvaluationError and Triggered is
// false; callers should surface such outcomes as diagnostics without
// treating them as "rule passed".
func Evaluate(r Rule, env expr.Env) Outcome {
	result, err := expr.Evaluate(r.Condition, env)
	if err != nil {
		return Outcome{
			Rule:     r.Name,
			Severity: r.Severity,
			Err:      &errs.RuleEvaluationError{Rule: r.Name, Reason: err.Error()},
		}
	}
	triggered := result.SI() != 0
	msg := r.Message
	if triggered {
		msg = renderMessage(r.Message, env)
	}
	return Outcome{
		Rule:      r.Name,
		Severity:  r.Severity,
		Triggered: triggered,
		Message:   msg,
	}
}

// EvaluateAll runs every rule in rs against env, in order, collecting one
// Outcome per rule. A rule whose evaluation fails does not prevent the
// remaining rules from running.
func EvaluateAll(rs []Rule, env expr.Env) []Outcome {
	out := make([]Outcome, len(rs))
	for i, r := range rs {
		out[i] = Evaluate(r, env)
	}
	return out
}

// renderMessage substitutes each "{symbol}" placeholder in template with
// the value of that symbol's current binding in env, rendered in its
// preferred unit by Quantity.String, falling back
// to leaving the placeholder untouched if the symbol isn't bound.
func renderMessage(template string, env expr.Env) string {
	var b strings.Builder
	i := 0
	for i < len(template) {
		open := strings.IndexByte(template[i:], '{')
		if open < 0 {
			b.WriteString(template[i:])
			break
		}
		open += i
		close := strings.IndexByte(template[open:], '}')
		if close < 0 {
			b.WriteString(template[i:])
			break
		}
		close += open
		b.WriteString(template[i:open])
		symbol := template[open+1 : close]
		if q, ok := env.Lookup(symbol); ok {
			b.WriteString(q.String())
		} else {
			b.WriteString(fmt.Sprintf("{%s}", symbol))
		}
		i = close + 1
	}
	return b.String()
}
