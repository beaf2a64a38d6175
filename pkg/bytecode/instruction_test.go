package bytecode

import "testing"

func TestABCFields(t *testing.T) {
	ins := ABC(OpAdd, 7, 300, 511)
	if ins.Op() != OpAdd {
		t.Errorf("Op() = %s, want ADD", ins.Op())
	}
	if ins.A() != 7 || ins.B() != 300 || ins.C() != 511 {
		t.Errorf("fields = %d %d %d, want 7 300 511", ins.A(), ins.B(), ins.C())
	}
}

func TestABxFields(t *testing.T) {
	ins := ABx(OpLoadK, MaxA, MaxBx)
	if ins.Op() != OpLoadK || ins.A() != MaxA || ins.Bx() != MaxBx {
		t.Errorf("got %s %d %d", ins.Op(), ins.A(), ins.Bx())
	}
}

func TestAsBxFields(t *testing.T) {
	for _, sbx := range []int{0, 1, -1, MaxSBx, -MaxSBx, 12345, -54321} {
		ins := AsBx(OpJmp, 0, sbx)
		if ins.SBx() != sbx {
			t.Errorf("AsBx(%d).SBx() = %d", sbx, ins.SBx())
		}
		if ins.Op() != OpJmp {
			t.Errorf("opcode clobbered by sBx %d", sbx)
		}
	}
}

func TestWithSBxKeepsA(t *testing.T) {
	ins := AsBx(OpForLoop, 9, 0).WithSBx(-4)
	if ins.A() != 9 || ins.SBx() != -4 || ins.Op() != OpForLoop {
		t.Errorf("WithSBx() = %s %d %d", ins.Op(), ins.A(), ins.SBx())
	}
}

func TestConstantIDs(t *testing.T) {
	if IsConstantID(MaxRegisterCount - 1) {
		t.Error("last register id reported as constant")
	}
	if !IsConstantID(ConstantID(0)) {
		t.Error("first constant id reported as register")
	}
	if ConstantIndex(ConstantID(42)) != 42 {
		t.Error("constant id round trip failed")
	}
	if ConstantID(MaxRKConstants-1) > MaxB {
		t.Errorf("last RK constant %d does not fit a B operand", ConstantID(MaxRKConstants-1))
	}
}

func TestEncodeInvertsOperands(t *testing.T) {
	tests := []Instruction{
		ABC(OpMove, 1, 2, 0),
		ABC(OpLoadBool, 3, 1, 1),
		ABx(OpGetGlobal, 4, 1000),
		AsBx(OpJmp, 0, -17),
		ABC(OpSetElem, 5, 251, 252),
		ABC(OpReturn, 0, 1, 0),
	}
	for _, ins := range tests {
		got := Encode(ins.Op(), ins.Operands())
		if got != ins {
			t.Errorf("Encode(%s, %v) = %#x, want %#x", ins.Op(), ins.Operands(), uint32(got), uint32(ins))
		}
	}
}
