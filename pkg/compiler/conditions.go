package compiler

import (
	"github.com/chazu/seed/pkg/ast"
	"github.com/chazu/seed/pkg/bytecode"
	"github.com/chazu/seed/pkg/event"
)

type compareOp struct {
	op    bytecode.Opcode
	check bool // the opcode's raw result when the operator holds
}

var compareOps = map[ast.ComparisonOperator]compareOp{
	ast.Less:         {bytecode.OpLt, true},
	ast.Greater:      {bytecode.OpLe, false},
	ast.LessEqual:    {bytecode.OpLe, true},
	ast.GreaterEqual: {bytecode.OpLt, false},
	ast.EqEqual:      {bytecode.OpEq, true},
	ast.NotEqual:     {bytecode.OpEq, false},
	ast.In:           {bytecode.OpIn, true},
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// cond compiles e for control flow. When e's truth equals when, control
// jumps through a jump appended to out; otherwise it falls through. Jumps
// internal to e are patched before cond returns.
func (c *compiler) cond(e ast.Expr, when bool, out *[]int) {
	switch n := e.(type) {
	case *ast.BoolConstant:
		if n.Value == when {
			*out = append(*out, c.emitJump(n.RangeVal))
		}
		return
	case *ast.Comparison:
		c.condComparison(n, when, out)
		return
	case *ast.Boolean:
		c.condBoolean(n, when, out)
		return
	case *ast.Unary:
		if n.Op == ast.Not && !c.listening(event.KindUnary) {
			c.cond(n.Expr, !when, out)
			return
		}
	}
	c.res.BeginExprScope()
	r := c.exprReg(e)
	c.emitABC(bytecode.OpTest, r, boolInt(when), 0, e.Range())
	*out = append(*out, c.emitJump(e.Range()))
	c.res.EndExprScope()
}

// condComparison evaluates a chain a op1 b op2 c ... link by link. Each
// middle operand is evaluated once, and only if every link before it held.
func (c *compiler) condComparison(n *ast.Comparison, when bool, out *[]int) {
	if len(n.Ops) == 0 || len(n.Ops) != len(n.Exprs) {
		panic(internalf(n.RangeVal, "comparison with %d operators and %d operands", len(n.Ops), len(n.Exprs)))
	}
	c.res.BeginExprScope()
	var fallthroughs []int
	left, leftExpr := c.expr(n.First), n.First
	for i, op := range n.Ops {
		cmp, ok := compareOps[op]
		if !ok {
			panic(internalf(n.RangeVal, "unmapped comparison operator %v", op))
		}
		rightExpr := n.Exprs[i]
		right := c.expr(rightExpr)
		if c.listening(event.KindComparison) {
			c.notify(bytecode.Notification{
				Kind:      event.KindComparison,
				Range:     n.RangeVal,
				Op:        int(op),
				Left:      left,
				LeftName:  nameOf(leftExpr),
				Right:     right,
				RightName: nameOf(rightExpr),
			})
		}
		if i == len(n.Ops)-1 {
			c.emitABC(cmp.op, boolInt(cmp.check == when), left, right, n.RangeVal)
			*out = append(*out, c.emitJump(n.RangeVal))
			break
		}
		// A failing middle link decides the chain is false.
		c.emitABC(cmp.op, boolInt(!cmp.check), left, right, n.RangeVal)
		j := c.emitJump(n.RangeVal)
		if when {
			fallthroughs = append(fallthroughs, j)
		} else {
			*out = append(*out, j)
		}
		left, leftExpr = right, rightExpr
	}
	c.patchHere(fallthroughs)
	c.res.EndExprScope()
}

// condBoolean short-circuits and/or. Operands that alone decide the outcome
// in the sense of when jump out; the others jump to the fall-through point.
func (c *compiler) condBoolean(n *ast.Boolean, when bool, out *[]int) {
	if len(n.Exprs) == 0 {
		panic(internalf(n.RangeVal, "%v with no operands", n.Op))
	}
	var decides bool
	switch n.Op {
	case ast.And:
		decides = !when
	case ast.Or:
		decides = when
	default:
		panic(internalf(n.RangeVal, "unmapped boolean operator %v", n.Op))
	}
	if decides {
		for _, x := range n.Exprs {
			c.cond(x, when, out)
		}
		return
	}
	var fallthroughs []int
	last := len(n.Exprs) - 1
	for i, x := range n.Exprs {
		if i < last {
			c.cond(x, !when, &fallthroughs)
		} else {
			c.cond(x, when, out)
		}
	}
	c.patchHere(fallthroughs)
}
