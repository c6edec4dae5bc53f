package expr

import "github.com/tn3wman/qnty/quantity"

// Env is the variable-binding environment an expression tree evaluates
// against: quantity bindings by symbol, discrete selector bindings (for
// Match) by selector name, and an arbitrary extra-value map Summation
// bodies may read from without needing a Quantity wrapper (spec §4.3).
type Env struct {
	Values   map[string]quantity.Quantity
	Discrete map[string]string
	Extra    map[string]any
}

// NewEnv returns an empty Env ready for use.
func NewEnv() Env {
	return Env{
		Values:   make(map[string]quantity.Quantity),
		Discrete: make(map[string]string),
		Extra:    make(map[string]any),
	}
}

// WithValue returns a shallow copy of e with symbol bound to q. Shallow
// copying the Values map keeps Env usable as a plain value while letting
// Summation push per-iteration bindings without mutating the caller's Env.
func (e Env) WithValue(symbol string, q quantity.Quantity) Env {
	next := Env{
		Values:   make(map[string]quantity.Quantity, len(e.Values)+1),
		Discrete: e.Discrete,
		Extra:    e.Extra,
	}
	for k, v := range e.Values {
		next.Values[k] = v
	}
	next.Values[symbol] = q
	return next
}

// Lookup returns the quantity bound to symbol, if any.
func (e Env) Lookup(symbol string) (quantity.Quantity, bool) {
	q, ok := e.Values[symbol]
	return q, ok
}

// Symbols returns the known variable symbols, for error-message
// suggestions on a missed lookup.
func (e Env) Symbols() []string {
	out := make([]string, 0, len(e.Values))
	for k := range e.Values {
		out = append(out, k)
	}
	return out
}
