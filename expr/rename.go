package expr

// Rename rebuilds n with every VarRef symbol and Match selector passed
// through rename, leaving the tree's structure and every Const/dimension
// untouched. Problem composition (spec §4.7) uses this to re-namespace a
// sub-problem's equations under its prefix (or onto a shared parent
// variable) without needing a second, mutable representation of the
// expression tree.
func Rename(n Node, rename func(string) string) Node {
	switch x := n.(type) {
	case Const:
		return x
	case VarRef:
		return VarRef{Symbol: rename(x.Symbol), ExpectedDimension: x.ExpectedDimension}
	case BinaryOp:
		return BinaryOp{Op: x.Op, Left: Rename(x.Left, rename), Right: Rename(x.Right, rename)}
	case UnaryFnNode:
		return UnaryFnNode{Fn: x.Fn, Arg: Rename(x.Arg, rename)}
	case Conditional:
		return Conditional{Cond: Rename(x.Cond, rename), Then: Rename(x.Then, rename), Else: Rename(x.Else, rename)}
	case Comparison:
		return Comparison{Op: x.Op, Left: Rename(x.Left, rename), Right: Rename(x.Right, rename)}
	case Match:
		cases := make([]MatchCase, len(x.Cases))
		for i, c := range x.Cases {
			cases[i] = MatchCase{Option: c.Option, Case: Rename(c.Case, rename)}
		}
		var def Node
		if x.Default != nil {
			def = Rename(x.Default, rename)
		}
		return Match{Selector: rename(x.Selector), Cases: cases, Default: def}
	case Summation:
		body := x.Body
		return Summation{
			Bounds: x.Bounds,
			Body: func(indices []int, env Env) (Node, error) {
				node, err := body(indices, env)
				if err != nil {
					return nil, err
				}
				return Rename(node, rename), nil
			},
			Extra: x.Extra,
		}
	case RangeCase:
		cases := make([]RangeInterval, len(x.Cases))
		for i, c := range x.Cases {
			cases[i] = RangeInterval{
				Lower: c.Lower, Upper: c.Upper,
				LowerInclusive: c.LowerInclusive, UpperInclusive: c.UpperInclusive,
				Case: Rename(c.Case, rename),
			}
		}
		var otherwise Node
		if x.Otherwise != nil {
			otherwise = Rename(x.Otherwise, rename)
		}
		return RangeCase{Value: Rename(x.Value, rename), Cases: cases, Otherwise: otherwise}
	case Deferred:
		thunk := x.Thunk
		return Deferred{Thunk: func() (Node, error) {
			node, err := thunk()
			if err != nil {
				return nil, err
			}
			return Rename(node, rename), nil
		}}
	default:
		return n
	}
}
