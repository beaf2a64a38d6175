package compiler

import (
	"github.com/chazu/seed/pkg/ast"
	"github.com/chazu/seed/pkg/bytecode"
	"github.com/chazu/seed/pkg/diag"
	"github.com/chazu/seed/pkg/event"
	"github.com/chazu/seed/pkg/source"
)

var arithOps = map[ast.BinaryOperator]bytecode.Opcode{
	ast.Add:         bytecode.OpAdd,
	ast.Subtract:    bytecode.OpSub,
	ast.Multiply:    bytecode.OpMul,
	ast.Divide:      bytecode.OpDiv,
	ast.FloorDivide: bytecode.OpFloorDiv,
	ast.Power:       bytecode.OpPow,
	ast.Modulo:      bytecode.OpMod,
}

// expr compiles e and returns an RK operand holding its value: a constant
// id for literals, the variable's register for locals and a temporary of
// the current scope otherwise.
func (c *compiler) expr(e ast.Expr) int {
	switch n := e.(type) {
	case *ast.NumberConstant:
		return c.rk(c.res.Constants().IdOfNumber(n.Value), n.RangeVal)
	case *ast.StringConstant:
		return c.rk(c.res.Constants().IdOfString(n.Value), n.RangeVal)
	case *ast.Identifier:
		if v := c.res.FindVariable(n.Name); v.Kind == VarLocal {
			return v.Index
		}
	}
	t := c.temp()
	c.exprTo(e, t)
	return t
}

// rk returns id if it fits an RK operand, otherwise loads it into a
// temporary.
func (c *compiler) rk(id int, rng source.Range) int {
	if bytecode.ConstantIndex(id) < bytecode.MaxRKConstants {
		return id
	}
	t := c.temp()
	c.loadK(t, id, rng)
	return t
}

// exprReg compiles e and returns a register holding its value.
func (c *compiler) exprReg(e ast.Expr) int {
	id := c.expr(e)
	if !bytecode.IsConstantID(id) {
		return id
	}
	t := c.temp()
	c.loadK(t, id, e.Range())
	return t
}

// exprTo compiles e into register dst.
func (c *compiler) exprTo(e ast.Expr, dst int) {
	switch n := e.(type) {
	case *ast.NilConstant:
		c.emitABC(bytecode.OpLoadNil, dst, 1, 0, n.RangeVal)
	case *ast.BoolConstant:
		b := 0
		if n.Value {
			b = 1
		}
		c.emitABC(bytecode.OpLoadBool, dst, b, 0, n.RangeVal)
	case *ast.NumberConstant:
		c.loadK(dst, c.res.Constants().IdOfNumber(n.Value), n.RangeVal)
	case *ast.StringConstant:
		c.loadK(dst, c.res.Constants().IdOfString(n.Value), n.RangeVal)
	case *ast.Identifier:
		c.identifierTo(n, dst)
	case *ast.Binary:
		c.binaryTo(n, dst)
	case *ast.Unary:
		c.unaryTo(n, dst)
	case *ast.Boolean:
		c.booleanTo(n, dst)
	case *ast.Comparison:
		c.comparisonTo(n, dst)
	case *ast.List:
		c.sequenceTo(bytecode.OpNewList, n.Exprs, dst, n.RangeVal)
	case *ast.Tuple:
		c.sequenceTo(bytecode.OpNewTuple, n.Exprs, dst, n.RangeVal)
	case *ast.Dict:
		c.dictTo(n, dst)
	case *ast.Subscript:
		c.res.BeginExprScope()
		cont := c.exprReg(n.Container)
		key := c.expr(n.Key)
		c.emitABC(bytecode.OpGetElem, dst, cont, key, n.RangeVal)
		c.res.EndExprScope()
	case *ast.Call:
		c.callTo(n, dst)
	default:
		panic(internalf(e.Range(), "unknown expression node %T", e))
	}
}

func (c *compiler) identifierTo(n *ast.Identifier, dst int) {
	v := c.res.FindVariable(n.Name)
	switch v.Kind {
	case VarLocal:
		if v.Index != dst {
			c.emitABC(bytecode.OpMove, dst, v.Index, 0, n.RangeVal)
		}
	case VarUpvalue:
		c.emitABC(bytecode.OpGetUpval, dst, v.Index, 0, n.RangeVal)
	default:
		c.emitABx(bytecode.OpGetGlobal, dst, v.Index, n.RangeVal)
	}
}

// aliases reports whether dst is one of the operand ids. Writing a result
// there would clobber an operand the notification still has to read.
func aliases(dst int, operands ...int) bool {
	for _, o := range operands {
		if o == dst {
			return true
		}
	}
	return false
}

func (c *compiler) binaryTo(n *ast.Binary, dst int) {
	op, ok := arithOps[n.Op]
	if !ok {
		panic(internalf(n.RangeVal, "unmapped binary operator %v", n.Op))
	}
	c.res.BeginExprScope()
	left := c.expr(n.Left)
	right := c.expr(n.Right)
	if !c.listening(event.KindBinary) {
		c.emitABC(op, dst, left, right, n.RangeVal)
		c.res.EndExprScope()
		return
	}
	out := dst
	if aliases(dst, left, right) {
		out = c.temp()
	}
	c.emitABC(op, out, left, right, n.RangeVal)
	c.notify(bytecode.Notification{
		Kind:      event.KindBinary,
		Range:     n.RangeVal,
		Op:        int(n.Op),
		Left:      left,
		LeftName:  nameOf(n.Left),
		Right:     right,
		RightName: nameOf(n.Right),
		Result:    out,
	})
	if out != dst {
		c.emitABC(bytecode.OpMove, dst, out, 0, n.RangeVal)
	}
	c.res.EndExprScope()
}

func (c *compiler) unaryTo(n *ast.Unary, dst int) {
	c.res.BeginExprScope()
	operand := c.expr(n.Expr)
	out := dst
	listening := c.listening(event.KindUnary)
	if listening && aliases(dst, operand) {
		out = c.temp()
	}
	switch n.Op {
	case ast.Positive:
		zero := c.rk(c.res.Constants().IdOfNumber(0), n.RangeVal)
		c.emitABC(bytecode.OpAdd, out, zero, operand, n.RangeVal)
	case ast.Negative:
		c.emitABC(bytecode.OpUnm, out, operand, 0, n.RangeVal)
	case ast.Not:
		c.emitABC(bytecode.OpNot, out, operand, 0, n.RangeVal)
	default:
		panic(internalf(n.RangeVal, "unmapped unary operator %v", n.Op))
	}
	if listening {
		c.notify(bytecode.Notification{
			Kind:     event.KindUnary,
			Range:    n.RangeVal,
			Op:       int(n.Op),
			Left:     operand,
			LeftName: nameOf(n.Expr),
			Result:   out,
		})
	}
	if out != dst {
		c.emitABC(bytecode.OpMove, dst, out, 0, n.RangeVal)
	}
	c.res.EndExprScope()
}

// booleanTo evaluates and/or for its value: the result is the operand that
// decided the outcome, not a boolean.
func (c *compiler) booleanTo(n *ast.Boolean, dst int) {
	sense := 0
	switch n.Op {
	case ast.Or:
		sense = 1
	case ast.And:
	default:
		panic(internalf(n.RangeVal, "unmapped boolean operator %v", n.Op))
	}
	if len(n.Exprs) == 0 {
		panic(internalf(n.RangeVal, "%v with no operands", n.Op))
	}
	c.res.BeginExprScope()
	t := c.temp()
	var done []int
	for i, x := range n.Exprs {
		c.res.BeginExprScope()
		c.exprTo(x, t)
		c.res.EndExprScope()
		if i < len(n.Exprs)-1 {
			c.emitABC(bytecode.OpTest, t, sense, 0, x.Range())
			done = append(done, c.emitJump(x.Range()))
		}
	}
	c.patchHere(done)
	if t != dst {
		c.emitABC(bytecode.OpMove, dst, t, 0, n.RangeVal)
	}
	c.res.EndExprScope()
}

// comparisonTo materializes a comparison chain as True or False.
func (c *compiler) comparisonTo(n *ast.Comparison, dst int) {
	var isFalse []int
	c.cond(n, false, &isFalse)
	c.emitABC(bytecode.OpLoadBool, dst, 1, 1, n.RangeVal)
	c.patchHere(isFalse)
	c.emitABC(bytecode.OpLoadBool, dst, 0, 0, n.RangeVal)
}

// sequenceTo builds a list or tuple from exprs evaluated into consecutive
// registers.
func (c *compiler) sequenceTo(op bytecode.Opcode, exprs []ast.Expr, dst int, rng source.Range) {
	if len(exprs) > bytecode.MaxC {
		c.errorAt(rng, diag.CompileErrorTooManyOperands, op.String(), bytecode.MaxC)
		return
	}
	c.res.BeginExprScope()
	base := c.temps(len(exprs))
	for i, x := range exprs {
		c.res.BeginExprScope()
		c.exprTo(x, base+i)
		c.res.EndExprScope()
	}
	c.emitABC(op, dst, base, len(exprs), rng)
	c.res.EndExprScope()
}

func (c *compiler) dictTo(n *ast.Dict, dst int) {
	if len(n.Items) > bytecode.MaxC {
		c.errorAt(n.RangeVal, diag.CompileErrorTooManyOperands, "dict", bytecode.MaxC)
		return
	}
	c.res.BeginExprScope()
	base := c.temps(2 * len(n.Items))
	for i, kv := range n.Items {
		c.res.BeginExprScope()
		c.exprTo(kv.Key, base+2*i)
		c.res.EndExprScope()
		c.res.BeginExprScope()
		c.exprTo(kv.Value, base+2*i+1)
		c.res.EndExprScope()
	}
	c.emitABC(bytecode.OpNewDict, dst, base, len(n.Items), n.RangeVal)
	c.res.EndExprScope()
}

// temps allocates n consecutive temporaries and returns the first. With
// n == 0 it returns 0 and allocates nothing.
func (c *compiler) temps(n int) int {
	if n == 0 {
		return 0
	}
	base := c.temp()
	for i := 1; i < n; i++ {
		c.temp()
	}
	return base
}

// callTo calls n.Func with n.Args laid out above it and leaves the result
// in dst.
func (c *compiler) callTo(n *ast.Call, dst int) {
	c.res.BeginExprScope()
	base := c.temp()
	c.exprTo(n.Func, base)
	for _, arg := range n.Args {
		r := c.temp()
		c.res.BeginExprScope()
		c.exprTo(arg, r)
		c.res.EndExprScope()
	}
	argc := len(n.Args)
	if argc > bytecode.MaxB {
		c.errorAt(n.RangeVal, diag.CompileErrorTooManyOperands, "call", bytecode.MaxB)
		argc = bytecode.MaxB
	}

	name := nameOf(n.Func)
	observed := !internal(name)
	if observed && c.listening(event.KindFuncCalled) {
		c.notify(bytecode.Notification{
			Kind:  event.KindFuncCalled,
			Range: n.RangeVal,
			Name:  name,
			Func:  base,
			Argc:  argc,
		})
	}
	c.emitABC(bytecode.OpCall, base, argc, 0, n.RangeVal)
	if observed && c.listening(event.KindFuncReturned) {
		c.notify(bytecode.Notification{
			Kind:   event.KindFuncReturned,
			Range:  n.RangeVal,
			Name:   name,
			Result: base,
		})
	}
	if base != dst {
		c.emitABC(bytecode.OpMove, dst, base, 0, n.RangeVal)
	}
	c.res.EndExprScope()
}
