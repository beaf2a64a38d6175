package bytecode

import (
	"fmt"
	"sort"

	"github.com/chazu/seed/pkg/source"
	"github.com/chazu/seed/pkg/value"
)

// BytecodeVersion is the current bytecode format version.
// Increment when making incompatible changes to the format.
const BytecodeVersion uint16 = 1

// UpvalueDesc tells CLOSURE where to find a captured variable: a register of
// the enclosing frame (InParent) or an upvalue of the enclosing closure.
type UpvalueDesc struct {
	Name     string
	InParent bool
	Index    int
}

// LocalVar maps a register to a variable name over the instruction range
// [StartPC, EndPC).
type LocalVar struct {
	Name     string
	Register int
	StartPC  int
	EndPC    int
}

// Chunk is one compiled function: its instructions, constant pool,
// notification table and nested function chunks. A chunk is immutable once
// the compiler returns it.
type Chunk struct {
	Version       uint16
	Name          string
	ParamCount    int
	RegisterCount int

	Code   []Instruction
	Ranges []source.Range // Ranges[pc] is the source range of Code[pc]

	// Constants holds numbers and strings referenced by constant ids.
	Constants []value.Value

	Notifications []Notification
	Protos        []*Chunk

	// Globals names the global slots used by GETGLOBAL and SETGLOBAL. Only
	// the top-level chunk carries it; nested chunks share its slots.
	Globals []string

	Upvalues []UpvalueDesc
	Locals   []LocalVar
}

// NewChunk creates a new empty chunk with the current version.
func NewChunk(name string) *Chunk {
	return &Chunk{
		Version: BytecodeVersion,
		Name:    name,
		Code:    make([]Instruction, 0, 32),
		Ranges:  make([]source.Range, 0, 32),
	}
}

// Emit appends an instruction and returns its pc.
func (c *Chunk) Emit(ins Instruction, rng source.Range) int {
	c.Code = append(c.Code, ins)
	c.Ranges = append(c.Ranges, rng)
	return len(c.Code) - 1
}

// EmitABC appends an instruction in ModeABC.
func (c *Chunk) EmitABC(op Opcode, a, b, cc int, rng source.Range) int {
	return c.Emit(ABC(op, a, b, cc), rng)
}

// EmitABx appends an instruction in ModeABx.
func (c *Chunk) EmitABx(op Opcode, a, bx int, rng source.Range) int {
	return c.Emit(ABx(op, a, bx), rng)
}

// EmitAsBx appends an instruction in ModeAsBx.
func (c *Chunk) EmitAsBx(op Opcode, a, sbx int, rng source.Range) int {
	return c.Emit(AsBx(op, a, sbx), rng)
}

// EmitJump emits a jump-family instruction with a placeholder offset.
// Returns the pc of the placeholder for later patching.
func (c *Chunk) EmitJump(op Opcode, a int, rng source.Range) int {
	return c.EmitAsBx(op, a, 0, rng)
}

// PatchJump points the jump at pc to target.
func (c *Chunk) PatchJump(pc, target int) error {
	if pc < 0 || pc >= len(c.Code) {
		return fmt.Errorf("patch of pc %d outside code of length %d", pc, len(c.Code))
	}
	ins := c.Code[pc]
	if !ins.Op().IsJump() {
		return fmt.Errorf("patch of non-jump %s at pc %d", ins.Op(), pc)
	}
	if target < 0 || target > len(c.Code) {
		return fmt.Errorf("jump target %d outside code of length %d", target, len(c.Code))
	}
	offset := target - (pc + 1)
	if offset < -MaxSBx || offset > MaxSBx {
		return fmt.Errorf("jump offset %d exceeds %d", offset, MaxSBx)
	}
	c.Code[pc] = ins.WithSBx(offset)
	return nil
}

// JumpTarget returns the absolute target of the jump at pc.
func (c *Chunk) JumpTarget(pc int) int {
	return pc + 1 + c.Code[pc].SBx()
}

// CurrentPC returns the pc the next emitted instruction will get.
func (c *Chunk) CurrentPC() int {
	return len(c.Code)
}

// AddNotification registers a notification descriptor and returns its id.
func (c *Chunk) AddNotification(n Notification) int {
	c.Notifications = append(c.Notifications, n)
	return len(c.Notifications) - 1
}

// AddProto appends a nested function chunk and returns its index.
func (c *Chunk) AddProto(p *Chunk) int {
	c.Protos = append(c.Protos, p)
	return len(c.Protos) - 1
}

// ConstantCount returns the number of constants in the pool.
func (c *Chunk) ConstantCount() int {
	return len(c.Constants)
}

// ValueOf resolves an operand id to a constant, or reports false for
// register ids.
func (c *Chunk) ValueOf(id int) (value.Value, bool) {
	if !IsConstantID(id) {
		return value.Value{}, false
	}
	idx := ConstantIndex(id)
	if idx >= len(c.Constants) {
		return value.Value{}, false
	}
	return c.Constants[idx], true
}

// RangeAt returns the source range of the instruction at pc.
func (c *Chunk) RangeAt(pc int) source.Range {
	if pc >= 0 && pc < len(c.Ranges) {
		return c.Ranges[pc]
	}
	return source.Range{}
}

// LocalsAt returns the named locals live at pc, ordered by register.
func (c *Chunk) LocalsAt(pc int) []LocalVar {
	var live []LocalVar
	for _, l := range c.Locals {
		if l.StartPC <= pc && pc < l.EndPC {
			live = append(live, l)
		}
	}
	sort.SliceStable(live, func(i, j int) bool { return live[i].Register < live[j].Register })
	return live
}

// Validate checks structural invariants: every jump lands inside the code,
// every operand id is in range and every notification id exists. Nested
// chunks are validated too.
func (c *Chunk) Validate() error {
	if len(c.Code) != len(c.Ranges) {
		return fmt.Errorf("%s: %d instructions but %d ranges", c.Name, len(c.Code), len(c.Ranges))
	}
	if c.RegisterCount > MaxRegisterCount {
		return fmt.Errorf("%s: register count %d exceeds %d", c.Name, c.RegisterCount, MaxRegisterCount)
	}
	for pc, ins := range c.Code {
		op := ins.Op()
		if op >= opcodeCount {
			return fmt.Errorf("%s: unknown opcode %d at pc %d", c.Name, op, pc)
		}
		if op.IsJump() {
			if t := c.JumpTarget(pc); t < 0 || t >= len(c.Code) {
				return fmt.Errorf("%s: jump at pc %d targets %d outside [0, %d)", c.Name, pc, t, len(c.Code))
			}
		}
		if op.IsTest() && (pc+1 >= len(c.Code) || c.Code[pc+1].Op() != OpJmp) {
			return fmt.Errorf("%s: %s at pc %d is not followed by JMP", c.Name, op, pc)
		}
		switch op {
		case OpLoadK:
			if ins.Bx() >= len(c.Constants) {
				return fmt.Errorf("%s: constant %d out of range at pc %d", c.Name, ins.Bx(), pc)
			}
		case OpClosure:
			if ins.Bx() >= len(c.Protos) {
				return fmt.Errorf("%s: proto %d out of range at pc %d", c.Name, ins.Bx(), pc)
			}
		case OpVisNotify:
			if ins.Bx() >= len(c.Notifications) {
				return fmt.Errorf("%s: notification %d out of range at pc %d", c.Name, ins.Bx(), pc)
			}
		}
	}
	for _, p := range c.Protos {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}
