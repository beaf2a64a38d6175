package bytecode

import (
	"fmt"
	"strconv"
	"strings"
)

// Disassemble returns a human-readable bytecode listing for the chunk and
// every nested chunk.
func (c *Chunk) Disassemble() string {
	var sb strings.Builder
	c.disassembleTo(&sb, c.Globals)
	return sb.String()
}

func (c *Chunk) disassembleTo(sb *strings.Builder, globals []string) {
	name := c.Name
	if name == "" {
		name = "<anonymous>"
	}
	fmt.Fprintf(sb, "; function %s (params %d, registers %d, upvalues %d)\n",
		name, c.ParamCount, c.RegisterCount, len(c.Upvalues))

	if len(c.Constants) > 0 {
		sb.WriteString("; Constants:\n")
		for i, k := range c.Constants {
			display := k.Repr()
			if len(display) > 40 {
				display = display[:37] + "..."
			}
			fmt.Fprintf(sb, ";   [%3d] %s\n", ConstantID(i), display)
		}
	}

	if len(c.Upvalues) > 0 {
		sb.WriteString("; Upvalues:\n")
		for i, u := range c.Upvalues {
			where := "upvalue"
			if u.InParent {
				where = "register"
			}
			fmt.Fprintf(sb, ";   [%3d] %s (%s %d)\n", i, u.Name, where, u.Index)
		}
	}

	if len(c.Notifications) > 0 {
		sb.WriteString("; Notifications:\n")
		for i, n := range c.Notifications {
			fmt.Fprintf(sb, ";   [%3d] %s %s\n", i, n.Kind, describeNotification(n))
		}
	}

	sb.WriteString("; Code:\n")
	for pc := range c.Code {
		fmt.Fprintf(sb, "%04d  %s\n", pc, c.disassembleInstruction(pc, globals))
	}

	for _, p := range c.Protos {
		sb.WriteString("\n")
		p.disassembleTo(sb, globals)
	}
}

func describeNotification(n Notification) string {
	if n.Name == "" {
		return n.Range.String()
	}
	return n.Name + " " + n.Range.String()
}

// DisassembleInstruction returns a human-readable representation of the
// instruction at pc: the mnemonic, its operands and an optional comment
// introduced by ';'.
func (c *Chunk) DisassembleInstruction(pc int) string {
	return c.disassembleInstruction(pc, c.Globals)
}

func (c *Chunk) disassembleInstruction(pc int, globals []string) string {
	if pc < 0 || pc >= len(c.Code) {
		return "<end of code>"
	}
	ins := c.Code[pc]
	op := ins.Op()

	var sb strings.Builder
	sb.WriteString(op.String())
	for _, v := range ins.Operands() {
		sb.WriteString(" ")
		sb.WriteString(strconv.Itoa(v))
	}

	comment := c.comment(pc, ins, globals)
	if comment == "" {
		return sb.String()
	}
	return fmt.Sprintf("%-22s ; %s", sb.String(), comment)
}

func (c *Chunk) comment(pc int, ins Instruction, globals []string) string {
	switch op := ins.Op(); {
	case op == OpLoadK:
		if ins.Bx() < len(c.Constants) {
			return c.Constants[ins.Bx()].Repr()
		}
	case op == OpGetGlobal || op == OpSetGlobal:
		if ins.Bx() < len(globals) {
			return globals[ins.Bx()]
		}
	case op.IsJump():
		return fmt.Sprintf("to %d", c.JumpTarget(pc))
	case op == OpClosure:
		if ins.Bx() < len(c.Protos) {
			return c.Protos[ins.Bx()].Name
		}
	case op == OpGetUpval:
		if ins.B() < len(c.Upvalues) {
			return c.Upvalues[ins.B()].Name
		}
	case op == OpVisNotify:
		if ins.Bx() < len(c.Notifications) {
			return c.Notifications[ins.Bx()].Kind.String()
		}
	case op.IsArith() || op == OpEq || op == OpLt || op == OpLe || op == OpIn ||
		op == OpGetElem || op == OpSetElem || op == OpUnm || op == OpNot:
		var parts []string
		ids := []int{ins.B(), ins.C()}
		if op == OpUnm || op == OpNot {
			ids = ids[:1]
		}
		for _, id := range ids {
			if k, ok := c.ValueOf(id); ok {
				parts = append(parts, fmt.Sprintf("%d=%s", id, k.Repr()))
			}
		}
		return strings.Join(parts, " ")
	}
	return ""
}

// DisassembleToLines returns the disassembly of this chunk's code (without
// nested chunks) as a slice of lines.
func (c *Chunk) DisassembleToLines() []string {
	lines := make([]string, 0, len(c.Code))
	for pc := range c.Code {
		lines = append(lines, fmt.Sprintf("%04d  %s", pc, c.DisassembleInstruction(pc)))
	}
	return lines
}

// InstructionCount returns the number of instructions in the chunk.
func (c *Chunk) InstructionCount() int {
	return len(c.Code)
}

// ParseInstruction parses one disassembled instruction back into its
// encoding. It accepts the output of DisassembleInstruction, optionally
// preceded by the pc column of DisassembleToLines.
func ParseInstruction(line string) (Instruction, error) {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) > 0 {
		if _, err := strconv.Atoi(fields[0]); err == nil {
			fields = fields[1:]
		}
	}
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty instruction")
	}
	op, ok := LookupOpcode(fields[0])
	if !ok {
		return 0, fmt.Errorf("unknown mnemonic %q", fields[0])
	}
	info := GetOpcodeInfo(op)
	if len(fields)-1 != info.Operands {
		return 0, fmt.Errorf("%s takes %d operands, got %d", info.Name, info.Operands, len(fields)-1)
	}
	operands := make([]int, info.Operands)
	for i, f := range fields[1:] {
		v, err := strconv.Atoi(f)
		if err != nil {
			return 0, fmt.Errorf("%s operand %d: %w", info.Name, i, err)
		}
		operands[i] = v
	}
	return Encode(op, operands), nil
}
