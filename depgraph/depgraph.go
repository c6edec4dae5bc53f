// Package depgraph builds the bipartite variable/equation dependency
// graph spec §4.5 describes and extracts a topological evaluation order
// from it, wrapping gonum.org/v1/gonum/graph/simple and graph/topo the
// same way the teacher's own optimize package builds on gonum/mat: by
// composing an existing, well-tested gonum primitive rather than
// re-implementing graph bookkeeping. Cycle detection comes for free from
// topo.Sort, which reports the offending strongly connected components via
// graph/topo's own Tarjan implementation when no ordering exists.
package depgraph

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/tn3wman/qnty/errs"
)

// Graph is a directed graph over two kinds of node — variables and
// equations — with an edge v->e for every free variable v an equation e
// depends on, and an edge e->v for the single variable e has been
// assigned to produce.
type Graph struct {
	g        *simple.DirectedGraph
	varID    map[string]int64
	eqID     map[string]int64
	idVar    map[int64]string
	idEq     map[int64]string
	nextID   int64
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{
		g:     simple.NewDirectedGraph(),
		varID: make(map[string]int64),
		eqID:  make(map[string]int64),
		idVar: make(map[int64]string),
		idEq:  make(map[int64]string),
	}
}

func (d *Graph) varNode(symbol string) int64 {
	if id, ok := d.varID[symbol]; ok {
		return id
	}
	id := d.nextID
	d.nextID++
	d.varID[symbol] = id
	d.idVar[id] = symbol
	d.g.AddNode(simple.Node(id))
	return id
}

func (d *Graph) eqNode(name string) int64 {
	if id, ok := d.eqID[name]; ok {
		return id
	}
	id := d.nextID
	d.nextID++
	d.eqID[name] = id
	d.idEq[id] = name
	d.g.AddNode(simple.Node(id))
	return id
}

// AddDependency records that equation eqName reads variable symbol.
func (d *Graph) AddDependency(symbol, eqName string) {
	from := simple.Node(d.varNode(symbol))
	to := simple.Node(d.eqNode(eqName))
	d.g.SetEdge(simple.Edge{F: from, T: to})
}

// AddProduces records that equation eqName is assigned to solve for
// variable symbol.
func (d *Graph) AddProduces(eqName, symbol string) {
	from := simple.Node(d.eqNode(eqName))
	to := simple.Node(d.varNode(symbol))
	d.g.SetEdge(simple.Edge{F: from, T: to})
}

// TopologicalOrder returns the equation names in an order where every
// equation appears after every variable it depends on has already been
// produced (or was an input). Returns a DependencyCycle error, naming the
// equations and variables of each offending cycle, when no such order
// exists.
func (d *Graph) TopologicalOrder() ([]string, error) {
	sorted, err := topo.Sort(d.g)
	if err != nil {
		if unorderable, ok := err.(topo.Unorderable); ok {
			return nil, &errs.DependencyCycle{Members: d.describeCycle(unorderable)}
		}
		return nil, err
	}
	order := make([]string, 0, len(d.eqID))
	for _, n := range sorted {
		if n == nil {
			continue // marks a cyclic component's position; reported separately above
		}
		if name, ok := d.idEq[n.ID()]; ok {
			order = append(order, name)
		}
	}
	return order, nil
}

func (d *Graph) describeCycle(u topo.Unorderable) []string {
	var members []string
	for _, component := range u {
		for _, n := range component {
			if n == nil {
				continue
			}
			if name, ok := d.idEq[n.ID()]; ok {
				members = append(members, "equation:"+name)
			} else if name, ok := d.idVar[n.ID()]; ok {
				members = append(members, "variable:"+name)
			}
		}
	}
	return members
}

var _ graph.Directed = (*simple.DirectedGraph)(nil)
