package bytecode

// Instruction is one fixed-width 32-bit instruction word:
//
//	 31        23        14       6      0
//	+---------+---------+--------+------+
//	|    B    |    C    |   A    |  op  |   ModeABC
//	+---------+---------+--------+------+
//	|        Bx         |   A    |  op  |   ModeABx / ModeAsBx
//	+-------------------+--------+------+
type Instruction uint32

const (
	sizeOp = 6
	sizeA  = 8
	sizeB  = 9
	sizeC  = 9
	sizeBx = sizeB + sizeC

	posOp = 0
	posA  = posOp + sizeOp
	posC  = posA + sizeA
	posB  = posC + sizeC
	posBx = posC

	MaxA   = 1<<sizeA - 1
	MaxB   = 1<<sizeB - 1
	MaxC   = 1<<sizeC - 1
	MaxBx  = 1<<sizeBx - 1
	MaxSBx = MaxBx >> 1
)

// MaxRegisterCount is the size of the register id space. Ids at or above it
// address the constant pool, so registers and constants never collide.
const MaxRegisterCount = 250

// MaxRKConstants is the number of constants addressable directly from a B or
// C operand. Constants beyond it are loaded into a register with LOADK.
const MaxRKConstants = MaxB + 1 - MaxRegisterCount

// IsConstantID reports whether id addresses the constant pool.
func IsConstantID(id int) bool { return id >= MaxRegisterCount }

// ConstantID converts a constant pool index into an operand id.
func ConstantID(index int) int { return index + MaxRegisterCount }

// ConstantIndex converts a constant operand id into a pool index.
func ConstantIndex(id int) int { return id - MaxRegisterCount }

func mask(size int) uint32 { return 1<<size - 1 }

// ABC encodes an instruction in ModeABC.
func ABC(op Opcode, a, b, c int) Instruction {
	return Instruction(uint32(op)&mask(sizeOp) |
		(uint32(a)&mask(sizeA))<<posA |
		(uint32(b)&mask(sizeB))<<posB |
		(uint32(c)&mask(sizeC))<<posC)
}

// ABx encodes an instruction in ModeABx.
func ABx(op Opcode, a, bx int) Instruction {
	return Instruction(uint32(op)&mask(sizeOp) |
		(uint32(a)&mask(sizeA))<<posA |
		(uint32(bx)&mask(sizeBx))<<posBx)
}

// AsBx encodes an instruction in ModeAsBx.
func AsBx(op Opcode, a, sbx int) Instruction {
	return ABx(op, a, sbx+MaxSBx)
}

func (i Instruction) Op() Opcode { return Opcode(uint32(i) >> posOp & mask(sizeOp)) }
func (i Instruction) A() int     { return int(uint32(i) >> posA & mask(sizeA)) }
func (i Instruction) B() int     { return int(uint32(i) >> posB & mask(sizeB)) }
func (i Instruction) C() int     { return int(uint32(i) >> posC & mask(sizeC)) }
func (i Instruction) Bx() int    { return int(uint32(i) >> posBx & mask(sizeBx)) }
func (i Instruction) SBx() int   { return i.Bx() - MaxSBx }

// WithSBx returns i with its signed operand replaced.
func (i Instruction) WithSBx(sbx int) Instruction {
	return AsBx(i.Op(), i.A(), sbx)
}

// Operands returns the operands in the order the disassembler prints them.
func (i Instruction) Operands() []int {
	op := i.Op()
	info := GetOpcodeInfo(op)
	var all []int
	switch info.Mode {
	case ModeABC:
		all = []int{i.A(), i.B(), i.C()}
	case ModeABx:
		all = []int{i.A(), i.Bx()}
	case ModeAsBx:
		all = []int{i.A(), i.SBx()}
	}
	if info.Operands < len(all) {
		all = all[:info.Operands]
	}
	return all
}

// Encode builds an instruction from an opcode and the operands returned by
// Operands. It is the inverse of Op and Operands.
func Encode(op Opcode, operands []int) Instruction {
	get := func(n int) int {
		if n < len(operands) {
			return operands[n]
		}
		return 0
	}
	switch op.Mode() {
	case ModeABx:
		return ABx(op, get(0), get(1))
	case ModeAsBx:
		return AsBx(op, get(0), get(1))
	}
	return ABC(op, get(0), get(1), get(2))
}
