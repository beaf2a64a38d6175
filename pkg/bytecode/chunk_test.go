package bytecode

import (
	"strings"
	"testing"

	"github.com/chazu/seed/pkg/event"
	"github.com/chazu/seed/pkg/source"
	"github.com/chazu/seed/pkg/value"
)

var line1 = source.LineStart(1)

// sampleChunk builds "a = 1 + 2; while a: a = a - 1" by hand.
func sampleChunk() *Chunk {
	c := NewChunk("main")
	c.RegisterCount = 2
	c.Constants = []value.Value{value.Number(1), value.Number(2), value.String("done")}
	c.Globals = []string{"a"}

	c.EmitABC(OpAdd, 0, ConstantID(0), ConstantID(1), line1)
	c.EmitABx(OpSetGlobal, 0, 0, line1)
	loop := c.CurrentPC()
	c.EmitABx(OpGetGlobal, 0, 0, source.LineStart(2))
	c.EmitABC(OpTest, 0, 0, 0, source.LineStart(2))
	exit := c.EmitJump(OpJmp, 0, source.LineStart(2))
	c.EmitABC(OpSub, 0, 0, ConstantID(0), source.LineStart(3))
	c.EmitABx(OpSetGlobal, 0, 0, source.LineStart(3))
	back := c.EmitJump(OpJmp, 0, source.LineStart(3))
	if err := c.PatchJump(back, loop); err != nil {
		panic(err)
	}
	if err := c.PatchJump(exit, c.CurrentPC()); err != nil {
		panic(err)
	}
	id := c.AddNotification(Notification{Kind: event.KindSingleStep, Range: source.LineStart(4)})
	c.EmitABx(OpVisNotify, 0, id, source.LineStart(4))
	c.EmitABx(OpLoadK, 1, 2, source.LineStart(4))
	c.EmitABC(OpReturn, 0, 0, 0, source.LineStart(4))

	fn := NewChunk("f")
	fn.ParamCount = 1
	fn.RegisterCount = 1
	fn.Upvalues = []UpvalueDesc{{Name: "x", InParent: true, Index: 0}}
	fn.EmitABC(OpReturn, 0, 1, 0, source.LineStart(5))
	c.AddProto(fn)
	c.EmitABx(OpClosure, 1, 0, source.LineStart(5))
	return c
}

func TestNewChunk(t *testing.T) {
	c := NewChunk("main")
	if c.Version != BytecodeVersion {
		t.Errorf("Version = %d, want %d", c.Version, BytecodeVersion)
	}
	if c.Name != "main" {
		t.Errorf("Name = %q", c.Name)
	}
	if c.CurrentPC() != 0 {
		t.Errorf("CurrentPC() = %d, want 0", c.CurrentPC())
	}
}

func TestChunkEmitTracksRanges(t *testing.T) {
	c := NewChunk("main")
	pc0 := c.EmitABC(OpMove, 0, 1, 0, line1)
	pc1 := c.EmitABx(OpLoadK, 0, 0, source.LineStart(2))
	if pc0 != 0 || pc1 != 1 {
		t.Errorf("emit pcs = %d, %d", pc0, pc1)
	}
	if c.RangeAt(1).Start.Line != 2 {
		t.Errorf("RangeAt(1) = %s", c.RangeAt(1))
	}
	if !c.RangeAt(5).IsEmpty() {
		t.Error("RangeAt past end should be empty")
	}
}

func TestPatchJump(t *testing.T) {
	c := NewChunk("main")
	j := c.EmitJump(OpJmp, 0, line1)
	c.EmitABC(OpMove, 0, 1, 0, line1)
	c.EmitABC(OpMove, 1, 0, 0, line1)
	if err := c.PatchJump(j, 3); err != nil {
		t.Fatalf("PatchJump() error = %v", err)
	}
	if c.Code[j].SBx() != 2 {
		t.Errorf("sBx = %d, want 2", c.Code[j].SBx())
	}
	if c.JumpTarget(j) != 3 {
		t.Errorf("JumpTarget() = %d, want 3", c.JumpTarget(j))
	}

	if err := c.PatchJump(j, -1); err == nil {
		t.Error("negative target accepted")
	}
	if err := c.PatchJump(j, 10); err == nil {
		t.Error("target past end accepted")
	}
	if err := c.PatchJump(1, 0); err == nil {
		t.Error("patching a MOVE accepted")
	}
	if err := c.PatchJump(7, 0); err == nil {
		t.Error("patching outside code accepted")
	}
}

func TestValueOf(t *testing.T) {
	c := sampleChunk()
	k, ok := c.ValueOf(ConstantID(2))
	if !ok || k.String() != "done" {
		t.Errorf("ValueOf(K2) = %v, %v", k, ok)
	}
	if _, ok := c.ValueOf(3); ok {
		t.Error("register id resolved as constant")
	}
	if _, ok := c.ValueOf(ConstantID(99)); ok {
		t.Error("missing constant resolved")
	}
}

func TestLocalsAt(t *testing.T) {
	c := NewChunk("f")
	c.Locals = []LocalVar{
		{Name: "inner", Register: 2, StartPC: 3, EndPC: 5},
		{Name: "b", Register: 1, StartPC: 1, EndPC: 8},
		{Name: "a", Register: 0, StartPC: 0, EndPC: 8},
	}
	var names []string
	for _, l := range c.LocalsAt(4) {
		names = append(names, l.Name)
	}
	if strings.Join(names, ",") != "a,b,inner" {
		t.Errorf("LocalsAt(4) = %v", names)
	}
	if n := len(c.LocalsAt(0)); n != 1 {
		t.Errorf("LocalsAt(0) has %d locals, want 1", n)
	}
}

func TestValidate(t *testing.T) {
	if err := sampleChunk().Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	c := NewChunk("bad")
	c.EmitAsBx(OpJmp, 0, 5, line1)
	if err := c.Validate(); err == nil {
		t.Error("out of range jump accepted")
	}

	c = NewChunk("bad")
	c.EmitABC(OpEq, 1, 0, 1, line1)
	c.EmitABC(OpReturn, 0, 0, 0, line1)
	if err := c.Validate(); err == nil {
		t.Error("test without JMP accepted")
	}

	c = NewChunk("bad")
	c.EmitABx(OpVisNotify, 0, 0, line1)
	if err := c.Validate(); err == nil {
		t.Error("dangling notification accepted")
	}
}
