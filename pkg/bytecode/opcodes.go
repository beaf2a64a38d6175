package bytecode

import "fmt"

// Opcode identifies an instruction. Opcodes occupy the low 6 bits of an
// instruction word.
type Opcode byte

// Notation: R(x) is register x of the current frame, K(x) is constant x of
// the chunk, RK(x) is R(x) if x < MaxRegisterCount and K(x-MaxRegisterCount)
// otherwise, G(x) is the global slot x, U(x) is upvalue x of the running
// closure, and pc is the index of the current instruction.
const (
	// ========================================================================
	// Loads and moves
	// ========================================================================

	OpMove     Opcode = iota // A B     R(A) := R(B)
	OpLoadNil                // A B     R(A), ..., R(A+B-1) := nil
	OpLoadBool               // A B C   R(A) := bool(B); if C != 0 { pc++ }
	OpLoadK                  // A Bx    R(A) := K(Bx)

	// ========================================================================
	// Variables
	// ========================================================================

	OpGetGlobal // A Bx    R(A) := G(Bx)
	OpSetGlobal // A Bx    G(Bx) := R(A)
	OpGetUpval  // A B     R(A) := U(B)

	// ========================================================================
	// Containers
	// ========================================================================

	OpGetElem  // A B C   R(A) := R(B)[RK(C)]
	OpSetElem  // A B C   R(A)[RK(B)] := RK(C)
	OpNewList  // A B C   R(A) := [R(B), ..., R(B+C-1)]
	OpNewTuple // A B C   R(A) := (R(B), ..., R(B+C-1))
	OpNewDict  // A B C   R(A) := {R(B): R(B+1), ...} with C pairs

	// ========================================================================
	// Arithmetic
	// ========================================================================

	OpAdd      // A B C   R(A) := RK(B) + RK(C)
	OpSub      // A B C   R(A) := RK(B) - RK(C)
	OpMul      // A B C   R(A) := RK(B) * RK(C)
	OpDiv      // A B C   R(A) := RK(B) / RK(C)
	OpFloorDiv // A B C   R(A) := RK(B) // RK(C)
	OpPow      // A B C   R(A) := RK(B) ** RK(C)
	OpMod      // A B C   R(A) := RK(B) % RK(C)
	OpUnm      // A B     R(A) := -RK(B)
	OpNot      // A B     R(A) := not RK(B)

	// ========================================================================
	// Tests. Each is followed by a JMP that is taken when the test holds.
	// ========================================================================

	OpEq   // A B C   if (RK(B) == RK(C)) != A { pc++ }
	OpLt   // A B C   if (RK(B) <  RK(C)) != A { pc++ }
	OpLe   // A B C   if (RK(B) <= RK(C)) != A { pc++ }
	OpIn   // A B C   if (RK(B) in RK(C)) != A { pc++ }
	OpTest // A B     if truthy(R(A)) != B { pc++ }

	// ========================================================================
	// Control flow
	// ========================================================================

	OpJmp     // sBx     pc += sBx
	OpForPrep // A sBx   R(A+1) := -1; pc += sBx
	OpForLoop // A sBx   R(A+1)++; if R(A+1) < len(R(A)) { R(A+2) := R(A)[R(A+1)]; pc += sBx }

	// ========================================================================
	// Functions
	// ========================================================================

	OpCall    // A B     R(A) := R(A)(R(A+1), ..., R(A+B))
	OpReturn  // A B     return R(A) if B == 1, nil if B == 0
	OpClosure // A Bx    R(A) := closure(Protos[Bx])

	// ========================================================================
	// Instrumentation
	// ========================================================================

	OpVisNotify // A Bx    dispatch Notifications[Bx]; no effect on program state

	opcodeCount
)

// Mode is the operand layout of an instruction.
type Mode uint8

const (
	ModeABC  Mode = iota // A (8 bits), B and C (9 bits each)
	ModeABx              // A (8 bits), unsigned Bx (18 bits)
	ModeAsBx             // A (8 bits), signed sBx (18 bits, excess-K)
)

// OpcodeInfo provides metadata about each opcode for debugging and validation.
type OpcodeInfo struct {
	Name     string // Mnemonic used by the disassembler
	Mode     Mode   // Operand layout
	Operands int    // Number of operands printed by the disassembler
}

// opcodeInfoTable maps opcodes to their metadata.
var opcodeInfoTable = map[Opcode]OpcodeInfo{
	OpMove:     {"MOVE", ModeABC, 2},
	OpLoadNil:  {"LOADNIL", ModeABC, 2},
	OpLoadBool: {"LOADBOOL", ModeABC, 3},
	OpLoadK:    {"LOADK", ModeABx, 2},

	OpGetGlobal: {"GETGLOBAL", ModeABx, 2},
	OpSetGlobal: {"SETGLOBAL", ModeABx, 2},
	OpGetUpval:  {"GETUPVAL", ModeABC, 2},

	OpGetElem:  {"GETELEM", ModeABC, 3},
	OpSetElem:  {"SETELEM", ModeABC, 3},
	OpNewList:  {"NEWLIST", ModeABC, 3},
	OpNewTuple: {"NEWTUPLE", ModeABC, 3},
	OpNewDict:  {"NEWDICT", ModeABC, 3},

	OpAdd:      {"ADD", ModeABC, 3},
	OpSub:      {"SUB", ModeABC, 3},
	OpMul:      {"MUL", ModeABC, 3},
	OpDiv:      {"DIV", ModeABC, 3},
	OpFloorDiv: {"FLOORDIV", ModeABC, 3},
	OpPow:      {"POW", ModeABC, 3},
	OpMod:      {"MOD", ModeABC, 3},
	OpUnm:      {"UNM", ModeABC, 2},
	OpNot:      {"NOT", ModeABC, 2},

	OpEq:   {"EQ", ModeABC, 3},
	OpLt:   {"LT", ModeABC, 3},
	OpLe:   {"LE", ModeABC, 3},
	OpIn:   {"IN", ModeABC, 3},
	OpTest: {"TEST", ModeABC, 2},

	OpJmp:     {"JMP", ModeAsBx, 2},
	OpForPrep: {"FORPREP", ModeAsBx, 2},
	OpForLoop: {"FORLOOP", ModeAsBx, 2},

	OpCall:    {"CALL", ModeABC, 2},
	OpReturn:  {"RETURN", ModeABC, 2},
	OpClosure: {"CLOSURE", ModeABx, 2},

	OpVisNotify: {"VISNOTIFY", ModeABx, 2},
}

var opcodeByName = func() map[string]Opcode {
	m := make(map[string]Opcode, len(opcodeInfoTable))
	for op, info := range opcodeInfoTable {
		m[info.Name] = op
	}
	return m
}()

// GetOpcodeInfo returns metadata for an opcode.
// Returns a zero OpcodeInfo with name "UNKNOWN" if the opcode is not recognized.
func GetOpcodeInfo(op Opcode) OpcodeInfo {
	if info, ok := opcodeInfoTable[op]; ok {
		return info
	}
	return OpcodeInfo{Name: fmt.Sprintf("UNKNOWN(0x%02X)", byte(op))}
}

// LookupOpcode returns the opcode with the given mnemonic.
func LookupOpcode(name string) (Opcode, bool) {
	op, ok := opcodeByName[name]
	return op, ok
}

// String returns the human-readable name of an opcode.
func (op Opcode) String() string {
	return GetOpcodeInfo(op).Name
}

// Mode returns the operand layout of op.
func (op Opcode) Mode() Mode {
	return GetOpcodeInfo(op).Mode
}

// IsJump returns true if the opcode carries a pc-relative target.
func (op Opcode) IsJump() bool {
	return op == OpJmp || op == OpForPrep || op == OpForLoop
}

// IsTest returns true if the opcode conditionally skips the next instruction.
func (op Opcode) IsTest() bool {
	return op >= OpEq && op <= OpTest
}

// IsArith returns true for binary arithmetic opcodes.
func (op Opcode) IsArith() bool {
	return op >= OpAdd && op <= OpMod
}

// AllOpcodes returns a slice of all defined opcodes.
// Useful for testing that all opcodes have metadata.
func AllOpcodes() []Opcode {
	opcodes := make([]Opcode, 0, opcodeCount)
	for op := Opcode(0); op < opcodeCount; op++ {
		opcodes = append(opcodes, op)
	}
	return opcodes
}

// OpcodeCount returns the number of defined opcodes.
func OpcodeCount() int {
	return int(opcodeCount)
}
