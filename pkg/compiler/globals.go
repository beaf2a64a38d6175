package compiler

// GlobalTable assigns slots to global names in first-use order. The final
// table is stored in the top-level chunk so the VM can bind the slots to its
// global cells by name.
type GlobalTable struct {
	names []string
	index map[string]int
}

// NewGlobalTable returns an empty table.
func NewGlobalTable() *GlobalTable {
	return &GlobalTable{index: make(map[string]int)}
}

// Define returns the slot of name, allocating one on first use.
func (g *GlobalTable) Define(name string) int {
	if slot, ok := g.index[name]; ok {
		return slot
	}
	slot := len(g.names)
	g.names = append(g.names, name)
	g.index[name] = slot
	return slot
}

// Lookup returns the slot of name if it has one.
func (g *GlobalTable) Lookup(name string) (int, bool) {
	slot, ok := g.index[name]
	return slot, ok
}

// Names returns the global names indexed by slot.
func (g *GlobalTable) Names() []string {
	out := make([]string, len(g.names))
	copy(out, g.names)
	return out
}
