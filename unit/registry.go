package unit

import (
	"fmt"
	"sort"

	"github.com/tn3wman/qnty/errs"
)

// Prefix is an SI multiplicative prefix (kilo, milli, ...) that the
// Registry can apply to any Unit flagged Prefixable.
type Prefix struct {
	Name   string
	Symbol string
	Factor float64
}

// Standard SI prefixes from yotta to yocto, the set §6's external unit
// catalog is expected to combine with prefixable base units.
var StandardPrefixes = []Prefix{
	{"yotta", "Y", 1e24},
	{"zetta", "Z", 1e21},
	{"exa", "E", 1e18},
	{"peta", "P", 1e15},
	{"tera", "T", 1e12},
	{"giga", "G", 1e9},
	{"mega", "M", 1e6},
	{"kilo", "k", 1e3},
	{"hecto", "h", 1e2},
	{"deka", "da", 1e1},
	{"deci", "d", 1e-1},
	{"centi", "c", 1e-2},
	{"milli", "m", 1e-3},
	{"micro", "u", 1e-6},
	{"nano", "n", 1e-9},
	{"pico", "p", 1e-12},
	{"femto", "f", 1e-15},
	{"atto", "a", 1e-18},
	{"zepto", "z", 1e-21},
	{"yocto", "y", 1e-24},
}

// Registry is a process-wide index from canonical unit name, and from
// symbol/alias, to a Unit. It is built with a Builder and then frozen;
// reads are lock-free and safe for concurrent use from that point on,
// matching §5's "construct once, freeze, then pass by reference" model
// for the shared, read-only collaborator every Problem references.
type Registry struct {
	byName   map[string]Unit
	bySymbol map[string]Unit
	frozen   bool
}

// Builder accumulates units and aliases before a Registry is frozen.
// Entries registered through Builder satisfy the external Unit catalog
// contract of §6: (name, symbol, dimension, si_factor, si_offset, aliases,
// prefixable).
type Builder struct {
	reg *Registry
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{reg: &Registry{
		byName:   make(map[string]Unit),
		bySymbol: make(map[string]Unit),
	}}
}

// Add registers u under its canonical name and symbol, plus any aliases,
// and — if u is Prefixable — under every SI-prefixed name/symbol
// combination. It panics on a duplicate name or symbol: the invariant
// "exactly one Unit per name and per symbol" is a catalog-construction
// error, not a runtime condition callers need to recover from.
func (b *Builder) Add(u Unit, aliases ...string) *Builder {
	if b.reg.frozen {
		panic("unit: cannot modify a frozen registry")
	}
	b.insert(u.name, u)
	b.insertSymbol(u.symbol, u)
	for _, alias := range aliases {
		b.insertSymbol(alias, u)
	}
	if u.prefixable {
		for _, p := range StandardPrefixes {
			pu := Unit{
				name:     p.Name + u.name,
				symbol:   p.Symbol + u.symbol,
				dim:      u.dim,
				siFactor: u.siFactor * p.Factor,
			}
			b.insert(pu.name, pu)
			b.insertSymbol(pu.symbol, pu)
		}
	}
	return b
}

func (b *Builder) insert(name string, u Unit) {
	if _, exists := b.reg.byName[name]; exists {
		panic(fmt.Sprintf("unit: duplicate unit name %q", name))
	}
	b.reg.byName[name] = u
}

func (b *Builder) insertSymbol(symbol string, u Unit) {
	if _, exists := b.reg.bySymbol[symbol]; exists {
		panic(fmt.Sprintf("unit: duplicate unit symbol %q", symbol))
	}
	b.reg.bySymbol[symbol] = u
}

// Freeze finalizes the Registry: no further Add calls are permitted, and
// the returned Registry may be shared freely across goroutines.
func (b *Builder) Freeze() *Registry {
	b.reg.frozen = true
	return b.reg
}

// ByName resolves a canonical unit name.
func (r *Registry) ByName(name string) (Unit, error) {
	if u, ok := r.byName[name]; ok {
		return u, nil
	}
	return Unit{}, &errs.UnitConversionError{
		From:   name,
		To:     "",
		Reason: fmt.Sprintf("unknown unit name %q (suggestions: %v)", name, errs.Suggest(name, r.names(), 3)),
	}
}

// BySymbol resolves a unit by its display symbol or any registered alias.
func (r *Registry) BySymbol(symbol string) (Unit, error) {
	if u, ok := r.bySymbol[symbol]; ok {
		return u, nil
	}
	return Unit{}, &errs.UnitConversionError{
		From:   symbol,
		To:     "",
		Reason: fmt.Sprintf("unknown unit symbol %q (suggestions: %v)", symbol, errs.Suggest(symbol, r.symbols(), 3)),
	}
}

// Resolve tries ByName, then BySymbol, returning whichever succeeds.
func (r *Registry) Resolve(nameOrSymbol string) (Unit, error) {
	if u, err := r.ByName(nameOrSymbol); err == nil {
		return u, nil
	}
	return r.BySymbol(nameOrSymbol)
}

func (r *Registry) names() []string {
	out := make([]string, 0, len(r.byName))
	for n := range r.byName {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) symbols() []string {
	out := make([]string, 0, len(r.bySymbol))
	for s := range r.bySymbol {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
