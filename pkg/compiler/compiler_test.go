package compiler

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/seed/pkg/ast"
	"github.com/chazu/seed/pkg/bytecode"
	"github.com/chazu/seed/pkg/diag"
	"github.com/chazu/seed/pkg/event"
	"github.com/chazu/seed/pkg/samples"
	"github.com/chazu/seed/pkg/source"
	"github.com/chazu/seed/pkg/value"
)

// listenAll returns a registry with a no-op listener for every kind.
func listenAll() *event.Registry {
	reg := event.NewRegistry()
	for _, k := range event.AllKinds() {
		reg.Register(k, func(event.Event, event.Inspector) {})
	}
	return reg
}

func listen(kinds ...event.Kind) *event.Registry {
	reg := event.NewRegistry()
	for _, k := range kinds {
		reg.Register(k, func(event.Event, event.Inspector) {})
	}
	return reg
}

func mustCompile(t *testing.T, prog *ast.Program, opts Options) *bytecode.Chunk {
	t.Helper()
	chunk, err := Compile(prog, opts)
	require.NoError(t, err)
	require.NotNil(t, chunk)
	return chunk
}

// walk visits chunk and every nested function chunk.
func walk(chunk *bytecode.Chunk, fn func(*bytecode.Chunk)) {
	fn(chunk)
	for _, p := range chunk.Protos {
		walk(p, fn)
	}
}

func countOps(chunk *bytecode.Chunk, op bytecode.Opcode) int {
	n := 0
	walk(chunk, func(c *bytecode.Chunk) {
		for _, ins := range c.Code {
			if ins.Op() == op {
				n++
			}
		}
	})
	return n
}

func notificationsOf(chunk *bytecode.Chunk, kind event.Kind) []bytecode.Notification {
	var out []bytecode.Notification
	walk(chunk, func(c *bytecode.Chunk) {
		for _, n := range c.Notifications {
			if n.Kind == kind {
				out = append(out, n)
			}
		}
	})
	return out
}

func TestConstantCacheDedup(t *testing.T) {
	chunk := bytecode.NewChunk("t")
	cc := NewConstantCache(chunk)

	one := cc.IdOfNumber(1)
	assert.Equal(t, bytecode.MaxRegisterCount, one)
	assert.Equal(t, one, cc.IdOfNumber(1))
	assert.Equal(t, one, cc.IdOf(value.Number(1)))

	s := cc.IdOfString("a")
	assert.Equal(t, bytecode.MaxRegisterCount+1, s)
	assert.Equal(t, s, cc.IdOf(value.String("a")))

	zero := cc.IdOfNumber(0)
	assert.NotEqual(t, zero, cc.IdOfNumber(math.Copysign(0, -1)), "0 and -0 are distinct constants")
	assert.Len(t, chunk.Constants, 4)
}

func TestConstantsDedupAcrossProgram(t *testing.T) {
	l := ast.At(1)
	prog := ast.NewProgram("t",
		l.Assign(l.Id("a"), l.Bin(l.Num(7), ast.Add, l.Num(7))),
		l.Assign(l.Id("b"), l.Str("x")),
		l.Assign(l.Id("c"), l.Str("x")),
	)
	chunk := mustCompile(t, prog, Options{})
	assert.Equal(t, []value.Value{value.Number(7), value.String("x")}, chunk.Constants)
}

func TestGlobalTable(t *testing.T) {
	g := NewGlobalTable()
	assert.Equal(t, 0, g.Define("a"))
	assert.Equal(t, 1, g.Define("b"))
	assert.Equal(t, 0, g.Define("a"))
	slot, ok := g.Lookup("b")
	assert.True(t, ok)
	assert.Equal(t, 1, slot)
	_, ok = g.Lookup("c")
	assert.False(t, ok)
	assert.Equal(t, []string{"a", "b"}, g.Names())
}

func TestResolverScopes(t *testing.T) {
	var reports []*diag.Diagnostic
	r := NewResolver(NewGlobalTable(), func(d *diag.Diagnostic) { reports = append(reports, d) })

	r.BeginFuncScope(bytecode.NewChunk("<module>"), true)
	assert.Equal(t, VarGlobal, r.DefineVariable("g").Kind)

	outer := bytecode.NewChunk("outer")
	r.BeginFuncScope(outer, false)
	x := r.DefineVariable("x")
	assert.Equal(t, Variable{Name: "x", Kind: VarLocal, Index: 0}, x)

	r.BeginExprScope()
	assert.Equal(t, 1, r.DefineTempVariable())
	shadow := r.DefineVariable("x")
	assert.Equal(t, 2, shadow.Index)
	assert.Equal(t, shadow, r.FindVariable("x"))
	r.EndExprScope()
	assert.Equal(t, x, r.FindVariable("x"))
	assert.Equal(t, 1, r.DefineTempVariable(), "registers are released with their scope")

	inner := bytecode.NewChunk("inner")
	r.BeginFuncScope(inner, false)
	up := r.FindVariable("x")
	assert.Equal(t, VarUpvalue, up.Kind)
	assert.Equal(t, up, r.FindVariable("x"), "captures are reused")
	assert.Equal(t, VarGlobal, r.FindVariable("g").Kind)
	r.EndFuncScope()

	assert.Equal(t, []bytecode.UpvalueDesc{{Name: "x", InParent: true, Index: 0}}, inner.Upvalues)
	assert.Equal(t, 3, outer.RegisterCount)
	assert.Empty(t, reports)
}

func TestResolverNestedCapture(t *testing.T) {
	r := NewResolver(NewGlobalTable(), func(*diag.Diagnostic) {})
	r.BeginFuncScope(bytecode.NewChunk("<module>"), true)
	r.BeginFuncScope(bytecode.NewChunk("a"), false)
	r.DefineVariable("v")
	mid := bytecode.NewChunk("b")
	r.BeginFuncScope(mid, false)
	innermost := bytecode.NewChunk("c")
	r.BeginFuncScope(innermost, false)

	assert.Equal(t, VarUpvalue, r.FindVariable("v").Kind)
	assert.Equal(t, []bytecode.UpvalueDesc{{Name: "v", InParent: true, Index: 0}}, mid.Upvalues)
	assert.Equal(t, []bytecode.UpvalueDesc{{Name: "v", Index: 0}}, innermost.Upvalues)
}

func TestRegisterExhaustion(t *testing.T) {
	l := ast.At(1)
	elems := make([]ast.Expr, 300)
	for i := range elems {
		elems[i] = l.Num(float64(i))
	}
	diags := diag.NewCollection()
	_, err := Compile(ast.NewProgram("big", l.Assign(l.Id("a"), l.List(elems...))), Options{Diagnostics: diags})
	require.Error(t, err)
	id, _ := diag.MessageOf(err)
	assert.Equal(t, diag.CompileErrorTooManyRegisters, id)
	assert.Equal(t, 1, diags.Len(), "exhaustion is reported once per function")
}

func TestManyConstantsUseLoadK(t *testing.T) {
	l := ast.At(1)
	var stmts []ast.Stmt
	for i := 0; i < bytecode.MaxRKConstants+10; i++ {
		stmts = append(stmts, l.Assign(l.Id("a"), l.Bin(l.Id("a"), ast.Add, l.Num(float64(i)))))
	}
	chunk := mustCompile(t, ast.NewProgram("k", stmts...), Options{})
	var loaded []int
	for _, ins := range chunk.Code {
		if ins.Op() == bytecode.OpLoadK {
			loaded = append(loaded, ins.Bx())
		}
	}
	require.Len(t, loaded, 10, "constants past the RK range go through LOADK")
	assert.Equal(t, bytecode.MaxRKConstants, loaded[0])
}

func TestJumpTargetsInRange(t *testing.T) {
	for _, s := range samples.All() {
		for _, reg := range []*event.Registry{nil, listenAll()} {
			chunk := mustCompile(t, s.Build(), Options{Registry: reg})
			walk(chunk, func(c *bytecode.Chunk) {
				for pc, ins := range c.Code {
					if !ins.Op().IsJump() {
						continue
					}
					target := c.JumpTarget(pc)
					assert.GreaterOrEqual(t, target, 0, "%s/%s pc %d", s.Name, c.Name, pc)
					assert.Less(t, target, len(c.Code), "%s/%s pc %d", s.Name, c.Name, pc)
				}
			})
		}
	}
}

func TestNoNotificationsWithoutListeners(t *testing.T) {
	for _, s := range samples.All() {
		chunk := mustCompile(t, s.Build(), Options{Mode: ModeInteractive})
		assert.Zero(t, countOps(chunk, bytecode.OpVisNotify), s.Name)
		walk(chunk, func(c *bytecode.Chunk) { assert.Empty(t, c.Notifications) })
	}
}

func TestOnlyListenedKindsCompiled(t *testing.T) {
	chunk := mustCompile(t, samples.Sum(), Options{Registry: listen(event.KindBinary)})
	assert.Len(t, notificationsOf(chunk, event.KindBinary), 2)
	assert.Equal(t, 2, countOps(chunk, bytecode.OpVisNotify))
}

func TestSingleStepOncePerLine(t *testing.T) {
	l1, l2 := ast.At(1), ast.At(2)
	prog := ast.NewProgram("t",
		l1.Assign(l1.Id("a"), l1.Num(1)),
		l1.Assign(l1.Id("b"), l1.Num(2)),
		l2.Assign(l2.Id("c"), l2.Num(3)),
	)
	chunk := mustCompile(t, prog, Options{Registry: listen(event.KindSingleStep)})
	steps := notificationsOf(chunk, event.KindSingleStep)
	require.Len(t, steps, 2)
	assert.Equal(t, 1, steps[0].Range.Start.Line)
	assert.Equal(t, 2, steps[1].Range.Start.Line)
	assert.Equal(t, bytecode.OpVisNotify, chunk.Code[0].Op(), "step precedes the line's first instruction")
}

func TestSingleStepPerFunction(t *testing.T) {
	chunk := mustCompile(t, samples.Fib(), Options{Registry: listen(event.KindSingleStep)})
	fib := chunk.Protos[0]
	lines := map[int]int{}
	for _, n := range fib.Notifications {
		lines[n.Range.Start.Line]++
	}
	assert.Equal(t, map[int]int{2: 1, 3: 1, 4: 1}, lines)
	assert.Len(t, chunk.Notifications, 2, "def line and print line")
}

func TestShortCircuitOrValue(t *testing.T) {
	l := ast.At(1)
	prog := ast.NewProgram("t",
		l.Assign(l.Id("x"), l.Or(l.Id("a"), l.Call(l.Id("f")))),
	)
	chunk := mustCompile(t, prog, Options{Registry: listen(event.KindFuncCalled)})
	var test, call int = -1, -1
	for pc, ins := range chunk.Code {
		switch ins.Op() {
		case bytecode.OpTest:
			test = pc
			assert.Equal(t, 1, ins.B(), "or jumps out when truthy")
		case bytecode.OpCall:
			call = pc
		}
	}
	require.NotEqual(t, -1, test)
	require.Greater(t, call, test)
	jump := test + 1
	require.Equal(t, bytecode.OpJmp, chunk.Code[jump].Op())
	assert.Greater(t, chunk.JumpTarget(jump), call, "truthy left operand skips the call and its notification")
}

func TestComparisonChainEvaluatesMiddleOnce(t *testing.T) {
	l := ast.At(1)
	lt := []ast.ComparisonOperator{ast.Less, ast.Less}
	prog := ast.NewProgram("t",
		l.Assign(l.Id("r"), l.Chain(l.Id("a"), lt, l.Id("b"), l.Id("c"))),
	)
	chunk := mustCompile(t, prog, Options{})
	reads := map[string]int{}
	for _, ins := range chunk.Code {
		if ins.Op() == bytecode.OpGetGlobal {
			reads[chunk.Globals[ins.Bx()]]++
		}
	}
	assert.Equal(t, map[string]int{"a": 1, "b": 1, "c": 1}, reads)
	assert.Equal(t, 2, countOps(chunk, bytecode.OpLt))
}

func TestComparisonMapping(t *testing.T) {
	for _, tc := range []struct {
		op    ast.ComparisonOperator
		code  bytecode.Opcode
		check bool
	}{
		{ast.Less, bytecode.OpLt, true},
		{ast.Greater, bytecode.OpLe, false},
		{ast.LessEqual, bytecode.OpLe, true},
		{ast.GreaterEqual, bytecode.OpLt, false},
		{ast.EqEqual, bytecode.OpEq, true},
		{ast.NotEqual, bytecode.OpEq, false},
		{ast.In, bytecode.OpIn, true},
	} {
		t.Run(tc.op.String(), func(t *testing.T) {
			l := ast.At(1)
			prog := ast.NewProgram("t", l.If(l.Cmp(l.Id("a"), tc.op, l.Id("b")), l.Pass(), nil))
			chunk := mustCompile(t, prog, Options{})
			var found bool
			for _, ins := range chunk.Code {
				if ins.Op().IsTest() {
					found = true
					assert.Equal(t, tc.code, ins.Op())
					// if jumps away when the condition is false
					assert.Equal(t, boolInt(!tc.check), ins.A())
				}
			}
			assert.True(t, found)
		})
	}
}

func TestUpvalueSubscriptDefaultsToGlobal(t *testing.T) {
	l1, l2, l3, l4 := ast.At(1), ast.At(2), ast.At(3), ast.At(4)
	prog := ast.NewProgram("t",
		l1.Def("outer", nil,
			l2.Assign(l2.Id("d"), l2.Dict()),
			l2.Assign(l2.Index(l2.Id("d"), l2.Num(0)), l2.Num(1)),
			l3.Def("inner", nil,
				l4.Assign(l4.Index(l4.Id("d"), l4.Num(1)), l4.Num(2)),
			),
		),
		l1.Assign(l1.Index(l1.Id("g"), l1.Num(0)), l1.Num(3)),
	)
	chunk := mustCompile(t, prog, Options{Registry: listen(event.KindSubscriptAssignment)})

	outer := chunk.Protos[0]
	inner := outer.Protos[0]
	require.Len(t, outer.Notifications, 1)
	assert.Equal(t, event.Local, outer.Notifications[0].Storage)
	require.Len(t, inner.Notifications, 1)
	assert.Equal(t, "d", inner.Notifications[0].Name)
	assert.Equal(t, event.Global, inner.Notifications[0].Storage, "upvalue-backed containers report Global")
	require.Len(t, chunk.Notifications, 1)
	assert.Equal(t, event.Global, chunk.Notifications[0].Storage)
}

func TestFunctionLocalsPredeclared(t *testing.T) {
	l1, l2, l3, l4 := ast.At(1), ast.At(2), ast.At(3), ast.At(4)
	prog := ast.NewProgram("t",
		l1.Def("f", []string{"a"},
			l2.For("i", l2.Id("a"),
				l3.Assign(l3.Id("b"), l3.Id("i")),
			),
			l4.Assign(l4.Id("a"), l4.Id("b")),
		),
	)
	chunk := mustCompile(t, prog, Options{})
	f := chunk.Protos[0]
	assert.Equal(t, 1, f.ParamCount)
	var names []string
	for _, lv := range f.Locals {
		names = append(names, lv.Name)
		assert.Equal(t, len(f.Code), lv.EndPC)
	}
	assert.Equal(t, []string{"a", "i", "b"}, names)
	assert.Equal(t, []string{"f"}, chunk.Globals)
}

func TestClosureCapture(t *testing.T) {
	chunk := mustCompile(t, samples.Counter(), Options{})
	counter := chunk.Protos[0]
	inc := counter.Protos[0]
	assert.Equal(t, []bytecode.UpvalueDesc{{Name: "n", InParent: true, Index: 0}}, inc.Upvalues)
	assert.Positive(t, countOps(inc, bytecode.OpGetUpval))
	assert.Equal(t, 1, countOps(counter, bytecode.OpClosure))
}

func TestInteractiveEcho(t *testing.T) {
	l := ast.At(1)
	prog := ast.NewProgram("t", l.Expr(l.Bin(l.Num(1), ast.Add, l.Num(2))))

	interactive := mustCompile(t, prog, Options{Mode: ModeInteractive, Registry: listenAll()})
	assert.Contains(t, interactive.Globals, printHelper)
	assert.Equal(t, 1, countOps(interactive, bytecode.OpCall))
	assert.Empty(t, notificationsOf(interactive, event.KindFuncCalled), "helper calls are not observed")

	script := mustCompile(t, prog, Options{Mode: ModeScript})
	assert.Zero(t, countOps(script, bytecode.OpCall))
}

func TestCallNotifications(t *testing.T) {
	chunk := mustCompile(t, samples.Fib(), Options{Registry: listen(event.KindFuncCalled, event.KindFuncReturned)})
	called := notificationsOf(chunk, event.KindFuncCalled)
	require.Len(t, called, 4, "two recursive calls, fib(10) and print")
	for _, n := range called {
		assert.Equal(t, 1, n.Argc)
	}
	assert.Len(t, notificationsOf(chunk, event.KindFuncReturned), 4)
}

func TestVTagNotifications(t *testing.T) {
	chunk := mustCompile(t, samples.Tagged(), Options{Registry: listen(event.KindVTagEntered, event.KindVTagExited)})
	entered := notificationsOf(chunk, event.KindVTagEntered)
	exited := notificationsOf(chunk, event.KindVTagExited)
	require.Len(t, entered, 1)
	require.Len(t, exited, 1)
	assert.Equal(t, []bytecode.TagDesc{{Name: "sum", Args: []string{"total"}}}, entered[0].Tags)
	require.Len(t, exited[0].Tags[0].Values, 1)
	assert.Less(t, exited[0].Tags[0].Values[0], chunk.RegisterCount)
}

func TestAssignmentNotifications(t *testing.T) {
	chunk := mustCompile(t, samples.Swap(), Options{Registry: listen(event.KindAssignment)})
	var got []string
	for _, n := range chunk.Notifications {
		got = append(got, fmt.Sprintf("%s:%s", n.Storage, n.Name))
	}
	assert.Equal(t, []string{
		"Global:a", "Global:b",
		"Global:a", "Global:b",
		"Global:p",
		"Global:x", "Global:y",
	}, got)
}

func TestCompileErrors(t *testing.T) {
	l := ast.At(3)
	for _, tc := range []struct {
		name string
		stmt ast.Stmt
		want diag.MessageID
	}{
		{"return at module level", l.Return(), diag.CompileErrorReturnOutsideFunc},
		{"literal target", l.Assign(l.Num(1), l.Num(2)), diag.CompileErrorInvalidTarget},
		{"call target", l.AssignN([]ast.Expr{l.Id("a"), l.Call(l.Id("f"))}, l.Num(1), l.Num(2)), diag.CompileErrorInvalidTarget},
		{"count mismatch", l.AssignN([]ast.Expr{l.Id("a"), l.Id("b"), l.Id("c")}, l.Num(1), l.Num(2)), diag.CompileErrorAssignCount},
	} {
		t.Run(tc.name, func(t *testing.T) {
			diags := diag.NewCollection()
			chunk, err := Compile(ast.NewProgram("t", tc.stmt), Options{Diagnostics: diags})
			assert.Nil(t, chunk)
			var d *diag.Diagnostic
			require.ErrorAs(t, err, &d)
			assert.Equal(t, tc.want, d.MessageID)
			assert.Equal(t, diag.ReporterCompiler, d.Reporter)
			assert.Equal(t, 3, d.Range.Start.Line)
			assert.True(t, diags.HasErrors())
		})
	}
}

func TestEmptyProgram(t *testing.T) {
	_, err := Compile(nil, Options{})
	id, ok := diag.MessageOf(err)
	require.True(t, ok)
	assert.Equal(t, diag.CompileErrorEmptyProgram, id)

	chunk := mustCompile(t, ast.NewProgram("empty"), Options{})
	require.Len(t, chunk.Code, 1)
	assert.Equal(t, bytecode.OpReturn, chunk.Code[0].Op())
}

func TestInternalErrorPanics(t *testing.T) {
	l := ast.At(2)
	prog := ast.NewProgram("t", l.Expr(l.Bin(l.Num(1), ast.BinaryOperator(99), l.Num(2))))
	defer func() {
		r := recover()
		require.NotNil(t, r)
		ie, ok := r.(*InternalError)
		require.True(t, ok, "panic value %T", r)
		assert.Contains(t, ie.Error(), "unmapped binary operator")
		assert.Equal(t, 2, ie.Range.Start.Line)
	}()
	_, _ = Compile(prog, Options{})
}

func TestDisassemblyRoundTrip(t *testing.T) {
	for _, s := range samples.All() {
		chunk := mustCompile(t, s.Build(), Options{Mode: ModeInteractive, Registry: listenAll()})
		walk(chunk, func(c *bytecode.Chunk) {
			for pc, ins := range c.Code {
				text := c.DisassembleInstruction(pc)
				parsed, err := bytecode.ParseInstruction(text)
				require.NoError(t, err, "%s/%s: %q", s.Name, c.Name, text)
				assert.Equal(t, ins.Op(), parsed.Op(), text)
				assert.Equal(t, ins.Operands(), parsed.Operands(), text)
				assert.Equal(t, ins, parsed, text)
			}
		})
	}
}

func TestCompiledChunksSurviveWire(t *testing.T) {
	chunk := mustCompile(t, samples.Counter(), Options{Registry: listenAll()})
	data, err := bytecode.MarshalChunk(chunk)
	require.NoError(t, err)
	back, err := bytecode.UnmarshalChunk(data)
	require.NoError(t, err)
	assert.Equal(t, chunk.Disassemble(), back.Disassemble())
}

func TestAssignInNestedFunctionBindsLocal(t *testing.T) {
	l1, l2, l3, l4, l5 := ast.At(1), ast.At(2), ast.At(3), ast.At(4), ast.At(5)
	prog := ast.NewProgram("t",
		l1.Def("outer", nil,
			l2.Assign(l2.Id("x"), l2.Num(1)),
			l3.Def("set", nil, l4.Assign(l4.Id("x"), l4.Num(2))),
			l5.Return(l5.Id("x")),
		),
	)
	chunk := mustCompile(t, prog, Options{Registry: listen(event.KindAssignment)})
	set := chunk.Protos[0].Protos[0]
	assert.Empty(t, set.Upvalues)
	require.Len(t, set.Notifications, 1)
	assert.Equal(t, event.Local, set.Notifications[0].Storage)
	require.Len(t, set.Locals, 1)
	assert.Equal(t, "x", set.Locals[0].Name)
	assert.Zero(t, countOps(chunk, bytecode.OpGetUpval))
}

func TestEmptyBooleanPanics(t *testing.T) {
	for _, ctx := range []string{"value", "condition"} {
		t.Run(ctx, func(t *testing.T) {
			l := ast.At(4)
			var stmt ast.Stmt = l.Assign(l.Id("b"), l.And())
			if ctx == "condition" {
				stmt = l.If(l.Or(), l.Pass(), nil)
			}
			defer func() {
				ie, ok := recover().(*InternalError)
				require.True(t, ok)
				assert.Contains(t, ie.Error(), "with no operands")
				assert.Equal(t, 4, ie.Range.Start.Line)
			}()
			_, _ = Compile(ast.NewProgram("t", stmt), Options{})
		})
	}
}

func TestUnpatchedJumpPanics(t *testing.T) {
	c := &compiler{globals: NewGlobalTable()}
	c.res = NewResolver(c.globals, c.report)
	c.res.BeginFuncScope(bytecode.NewChunk("f"), false)
	first := c.emitJump(source.Range{})
	c.emitJump(source.Range{})
	c.patchHere([]int{first})

	defer func() {
		ie, ok := recover().(*InternalError)
		require.True(t, ok)
		assert.Contains(t, ie.Error(), "1 unpatched jumps in f")
	}()
	c.res.EndFuncScope()
}

func TestNegatedConditionsPatchEveryJump(t *testing.T) {
	l1, l2, l3 := ast.At(1), ast.At(2), ast.At(3)
	not := func(e ast.Expr) ast.Expr { return l1.Unary(ast.Not, e) }
	prog := ast.NewProgram("t",
		l1.If(not(l1.Id("a")), l1.Assign(l1.Id("b"), l1.Num(1)), nil),
		l2.While(not(l2.And(l2.Id("a"), not(l2.Id("b")))), l2.Pass()),
		l3.Assign(l3.Id("c"), l3.Or(not(l3.Id("a")), l3.Id("b"))),
	)
	chunk := mustCompile(t, prog, Options{})
	for pc, ins := range chunk.Code {
		if ins.Op() == bytecode.OpJmp {
			assert.NotEqual(t, pc+1, chunk.JumpTarget(pc), "jump at pc %d points at the next instruction", pc)
		}
	}
}

func TestPassHasNoStep(t *testing.T) {
	l1, l2 := ast.At(1), ast.At(2)
	prog := ast.NewProgram("t",
		l1.Pass(),
		l2.Assign(l2.Id("a"), l2.Num(1)),
	)
	chunk := mustCompile(t, prog, Options{Registry: listen(event.KindSingleStep)})
	steps := notificationsOf(chunk, event.KindSingleStep)
	require.Len(t, steps, 1)
	assert.Equal(t, 2, steps[0].Range.Start.Line)
}
