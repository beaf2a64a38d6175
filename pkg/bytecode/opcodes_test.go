package bytecode

import (
	"strings"
	"testing"
)

func TestAllOpcodesHaveMetadata(t *testing.T) {
	for _, op := range AllOpcodes() {
		info := GetOpcodeInfo(op)
		if info.Name == "" || strings.HasPrefix(info.Name, "UNKNOWN") {
			t.Errorf("Opcode %d has no metadata", op)
		}
		if info.Operands < 1 || info.Operands > 3 {
			t.Errorf("%s prints %d operands", info.Name, info.Operands)
		}
	}
}

func TestOpcodesFitInstructionField(t *testing.T) {
	if OpcodeCount() > 1<<sizeOp {
		t.Fatalf("%d opcodes do not fit in %d bits", OpcodeCount(), sizeOp)
	}
}

func TestOpcodeString(t *testing.T) {
	tests := []struct {
		op   Opcode
		want string
	}{
		{OpMove, "MOVE"},
		{OpLoadK, "LOADK"},
		{OpAdd, "ADD"},
		{OpFloorDiv, "FLOORDIV"},
		{OpEq, "EQ"},
		{OpJmp, "JMP"},
		{OpForLoop, "FORLOOP"},
		{OpCall, "CALL"},
		{OpVisNotify, "VISNOTIFY"},
	}

	for _, tt := range tests {
		got := tt.op.String()
		if got != tt.want {
			t.Errorf("Opcode(%d).String() = %q, want %q", tt.op, got, tt.want)
		}
		back, ok := LookupOpcode(got)
		if !ok || back != tt.op {
			t.Errorf("LookupOpcode(%q) = %v, %v", got, back, ok)
		}
	}
}

func TestUnknownOpcodeString(t *testing.T) {
	op := Opcode(0x3F)
	if got := op.String(); !strings.HasPrefix(got, "UNKNOWN") {
		t.Errorf("Unknown opcode should return UNKNOWN, got %q", got)
	}
}

func TestOpcodeCategories(t *testing.T) {
	for _, op := range []Opcode{OpJmp, OpForPrep, OpForLoop} {
		if !op.IsJump() {
			t.Errorf("%s.IsJump() = false", op)
		}
	}
	for _, op := range []Opcode{OpEq, OpLt, OpLe, OpIn, OpTest} {
		if !op.IsTest() {
			t.Errorf("%s.IsTest() = false", op)
		}
	}
	for _, op := range []Opcode{OpAdd, OpSub, OpMul, OpDiv, OpFloorDiv, OpPow, OpMod} {
		if !op.IsArith() {
			t.Errorf("%s.IsArith() = false", op)
		}
	}
	if OpUnm.IsArith() || OpMove.IsJump() || OpJmp.IsTest() {
		t.Error("category misclassification")
	}
}
