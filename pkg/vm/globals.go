package vm

import (
	"github.com/chazu/seed/pkg/event"
	"github.com/chazu/seed/pkg/value"
)

// cell holds one global variable. Chunks refer to globals by slot; Run
// binds each slot to the cell of the same name, so globals outlive a run
// and closures keep working in later runs.
type cell struct {
	name    string
	value   value.Value
	defined bool
	native  bool
}

// globalTable is the VM's global namespace.
type globalTable struct {
	cells map[string]*cell
	// order lists user globals by first definition.
	order []*cell
}

func newGlobalTable() *globalTable {
	return &globalTable{cells: make(map[string]*cell)}
}

func (g *globalTable) cell(name string) *cell {
	c, ok := g.cells[name]
	if !ok {
		c = &cell{name: name}
		g.cells[name] = c
	}
	return c
}

// link returns the cells for a chunk's global slots.
func (g *globalTable) link(names []string) []*cell {
	out := make([]*cell, len(names))
	for i, n := range names {
		out[i] = g.cell(n)
	}
	return out
}

func (g *globalTable) set(c *cell, v value.Value) {
	// Rebinding a native makes the name a user global.
	if !c.defined || c.native {
		c.defined = true
		c.native = false
		g.order = append(g.order, c)
	}
	c.value = v
}

func (g *globalTable) define(name string, v value.Value) {
	g.set(g.cell(name), v)
}

func (g *globalTable) defineNative(n *Native) {
	c := g.cell(n.name)
	c.native = true
	c.defined = true
	c.value = value.NewFunction(n)
}

func (g *globalTable) lookup(name string) (value.Value, bool) {
	c, ok := g.cells[name]
	if !ok || !c.defined {
		return value.Value{}, false
	}
	return c.value, true
}

// snapshot returns the user globals in definition order.
func (g *globalTable) snapshot() []event.Variable {
	out := make([]event.Variable, 0, len(g.order))
	for _, c := range g.order {
		out = append(out, event.Variable{Name: c.name, Value: c.value})
	}
	return out
}
