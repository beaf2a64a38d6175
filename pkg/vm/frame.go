package vm

import (
	"github.com/chazu/seed/pkg/bytecode"
	"github.com/chazu/seed/pkg/value"
)

// ---------------------------------------------------------------------------
// Closures and upvalues
// ---------------------------------------------------------------------------

// Upvalue is a variable captured by a closure. While the defining frame is
// live it points into that frame's registers; when the frame returns the
// value is copied into the upvalue itself.
type Upvalue struct {
	ref    *value.Value
	closed value.Value
}

// Get returns the captured value.
func (u *Upvalue) Get() value.Value { return *u.ref }

func (u *Upvalue) close() {
	u.closed = *u.ref
	u.ref = &u.closed
}

// Closure is a compiled function together with its captured upvalues and
// the global cells its chunk was linked against.
type Closure struct {
	Proto    *bytecode.Chunk
	Upvalues []*Upvalue
	globals  []*cell
}

// Name implements value.Callable.
func (c *Closure) Name() string { return c.Proto.Name }

// ---------------------------------------------------------------------------
// CallFrame: execution state of one function activation
// ---------------------------------------------------------------------------

// CallFrame is one activation on the call stack.
type CallFrame struct {
	Closure   *Closure
	Registers []value.Value
	PC        int
	// Result is the register of the caller that receives the return value.
	Result int

	open map[int]*Upvalue
}

func newFrame(cl *Closure, result int) *CallFrame {
	n := cl.Proto.RegisterCount
	if n < cl.Proto.ParamCount {
		n = cl.Proto.ParamCount
	}
	return &CallFrame{
		Closure:   cl,
		Registers: make([]value.Value, n),
		Result:    result,
	}
}

func (f *CallFrame) chunk() *bytecode.Chunk { return f.Closure.Proto }

// rk reads an RK operand.
func (f *CallFrame) rk(id int) value.Value {
	if bytecode.IsConstantID(id) {
		return f.Closure.Proto.Constants[bytecode.ConstantIndex(id)]
	}
	return f.Registers[id]
}

// capture returns the open upvalue for register reg, creating it on first
// capture so that closures sharing a variable share its upvalue.
func (f *CallFrame) capture(reg int) *Upvalue {
	if u, ok := f.open[reg]; ok {
		return u
	}
	if f.open == nil {
		f.open = make(map[int]*Upvalue)
	}
	u := &Upvalue{ref: &f.Registers[reg]}
	f.open[reg] = u
	return u
}

// closeUpvalues detaches every upvalue from the frame's registers.
func (f *CallFrame) closeUpvalues() {
	for reg, u := range f.open {
		u.close()
		delete(f.open, reg)
	}
}
