package expr

// FreeVars returns the set of variable symbols n (and any Match
// selectors) depends on, computed recursively. The depgraph package uses
// this to build dependency edges between equations and variables (spec
// §4.5); a Summation's Body is probed with a zero index tuple to recover
// the free variables of a representative term, since Body must be
// deterministic in its variable references across indices.
func FreeVars(n Node) map[string]bool {
	out := make(map[string]bool)
	collectFreeVars(n, out)
	return out
}

func collectFreeVars(n Node, out map[string]bool) {
	switch x := n.(type) {
	case Const:
	case VarRef:
		out[x.Symbol] = true
	case BinaryOp:
		collectFreeVars(x.Left, out)
		collectFreeVars(x.Right, out)
	case UnaryFnNode:
		collectFreeVars(x.Arg, out)
	case Conditional:
		collectFreeVars(x.Cond, out)
		collectFreeVars(x.Then, out)
		collectFreeVars(x.Else, out)
	case Comparison:
		collectFreeVars(x.Left, out)
		collectFreeVars(x.Right, out)
	case Match:
		out[x.Selector] = true
		for _, c := range x.Cases {
			collectFreeVars(c.Case, out)
		}
		if x.Default != nil {
			collectFreeVars(x.Default, out)
		}
	case Summation:
		if x.Body != nil {
			indices := make([]int, len(x.Bounds))
			sample, err := x.Body(indices, Env{Extra: x.Extra})
			if err == nil && sample != nil {
				collectFreeVars(sample, out)
			}
		}
	case RangeCase:
		collectFreeVars(x.Value, out)
		for _, c := range x.Cases {
			collectFreeVars(c.Case, out)
		}
		if x.Otherwise != nil {
			collectFreeVars(x.Otherwise, out)
		}
	case Deferred:
		if resolved, err := x.Thunk(); err == nil && resolved != nil {
			collectFreeVars(resolved, out)
		}
	}
}

// CountOccurrences counts how many VarRef leaves in n reference symbol;
// used by equation inversion (spec §4.4) to decide whether a target can
// be symbolically isolated.
func CountOccurrences(n Node, symbol string) int {
	count := 0
	var walk func(Node)
	walk = func(n Node) {
		switch x := n.(type) {
		case VarRef:
			if x.Symbol == symbol {
				count++
			}
		case BinaryOp:
			walk(x.Left)
			walk(x.Right)
		case UnaryFnNode:
			walk(x.Arg)
		case Conditional:
			walk(x.Cond)
			walk(x.Then)
			walk(x.Else)
		case Comparison:
			walk(x.Left)
			walk(x.Right)
		case Match:
			for _, c := range x.Cases {
				walk(c.Case)
			}
			if x.Default != nil {
				walk(x.Default)
			}
		case RangeCase:
			walk(x.Value)
			for _, c := range x.Cases {
				walk(c.Case)
			}
			if x.Otherwise != nil {
				walk(x.Otherwise)
			}
		case Summation:
			if x.Body != nil {
				indices := make([]int, len(x.Bounds))
				if sample, err := x.Body(indices, Env{Extra: x.Extra}); err == nil && sample != nil {
					walk(sample)
				}
			}
		case Deferred:
			if resolved, err := x.Thunk(); err == nil && resolved != nil {
				walk(resolved)
			}
		}
	}
	walk(n)
	return count
}
