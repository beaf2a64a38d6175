package compiler

import (
	"github.com/chazu/seed/pkg/ast"
	"github.com/chazu/seed/pkg/bytecode"
	"github.com/chazu/seed/pkg/diag"
	"github.com/chazu/seed/pkg/event"
	"github.com/chazu/seed/pkg/source"
)

func (c *compiler) block(b *ast.Block) {
	for _, s := range b.Stmts {
		c.stmt(s)
	}
}

func (c *compiler) stmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Block:
		c.block(n)
	case *ast.While:
		c.whileStmt(n)
	case *ast.ExprStmt:
		c.step(n.RangeVal)
		c.exprStmt(n)
	case *ast.Assign:
		c.step(n.RangeVal)
		c.assign(n)
	case *ast.If:
		c.step(n.RangeVal)
		c.ifStmt(n)
	case *ast.ForIn:
		c.step(n.RangeVal)
		c.forIn(n)
	case *ast.FuncDef:
		c.step(n.RangeVal)
		c.funcDef(n)
	case *ast.Return:
		c.step(n.RangeVal)
		c.returnStmt(n)
	case *ast.Pass:
		// No instruction, so no step.
	case *ast.VTag:
		c.step(n.RangeVal)
		c.vtag(n)
	default:
		panic(internalf(s.Range(), "unknown statement node %T", s))
	}
}

func (c *compiler) exprStmt(n *ast.ExprStmt) {
	c.res.BeginExprScope()
	defer c.res.EndExprScope()
	if c.opts.Mode == ModeInteractive && !c.res.InFunction() {
		rng := n.Expr.Range()
		echo := &ast.Call{
			RangeVal: rng,
			Func:     &ast.Identifier{RangeVal: rng, Name: printHelper},
			Args:     []ast.Expr{n.Expr},
		}
		c.callTo(echo, c.temp())
		return
	}
	c.exprTo(n.Expr, c.temp())
}

func (c *compiler) assign(n *ast.Assign) {
	targets, values := len(n.Targets), len(n.Values)
	c.res.BeginExprScope()
	defer c.res.EndExprScope()
	switch {
	case targets == 1 && values == 1:
		c.assignSingle(n.Targets[0], n.Values[0], n.RangeVal)
	case targets == 1 && values > 1:
		t := c.temp()
		c.sequenceTo(bytecode.OpNewTuple, n.Values, t, n.RangeVal)
		c.store(n.Targets[0], t, n.RangeVal)
	case targets > 1 && values == 1:
		src := c.temp()
		c.exprTo(n.Values[0], src)
		for i, target := range n.Targets {
			c.res.BeginExprScope()
			elem := c.temp()
			key := c.rk(c.res.Constants().IdOfNumber(float64(i)), n.RangeVal)
			c.emitABC(bytecode.OpGetElem, elem, src, key, n.RangeVal)
			c.store(target, elem, n.RangeVal)
			c.res.EndExprScope()
		}
	case targets == values:
		base := c.temps(values)
		for i, v := range n.Values {
			c.res.BeginExprScope()
			c.exprTo(v, base+i)
			c.res.EndExprScope()
		}
		for i, target := range n.Targets {
			c.store(target, base+i, n.RangeVal)
		}
	default:
		c.errorAt(n.RangeVal, diag.CompileErrorAssignCount, values, targets)
	}
}

// assignSingle compiles target = value, evaluating a local's new value
// straight into its register.
func (c *compiler) assignSingle(target, val ast.Expr, rng source.Range) {
	if id, ok := target.(*ast.Identifier); ok {
		if v := c.target(id.Name, rng); v.Kind == VarLocal {
			c.exprTo(val, v.Index)
			c.notifyAssign(rng, id.Name, event.Local, v.Index)
			return
		}
	}
	if !isTarget(target) {
		c.errorAt(target.Range(), diag.CompileErrorInvalidTarget, describe(target))
		return
	}
	c.store(target, c.expr(val), rng)
}

func isTarget(e ast.Expr) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.Subscript:
		return true
	}
	return false
}

// store assigns the value held by RK operand src to target.
func (c *compiler) store(target ast.Expr, src int, rng source.Range) {
	switch t := target.(type) {
	case *ast.Identifier:
		v := c.target(t.Name, rng)
		switch v.Kind {
		case VarLocal:
			if bytecode.IsConstantID(src) {
				c.loadK(v.Index, src, rng)
			} else if src != v.Index {
				c.emitABC(bytecode.OpMove, v.Index, src, 0, rng)
			}
			c.notifyAssign(rng, t.Name, event.Local, v.Index)
		default:
			r := c.inReg(src, rng)
			c.emitABx(bytecode.OpSetGlobal, r, v.Index, rng)
			c.notifyAssign(rng, t.Name, event.Global, r)
		}
	case *ast.Subscript:
		c.res.BeginExprScope()
		cont := c.exprReg(t.Container)
		key := c.expr(t.Key)
		c.emitABC(bytecode.OpSetElem, cont, key, src, rng)
		if name := nameOf(t.Container); name != "" && c.listening(event.KindSubscriptAssignment) {
			c.notify(bytecode.Notification{
				Kind:    event.KindSubscriptAssignment,
				Range:   rng,
				Name:    name,
				Storage: c.storageOf(name),
				Key:     key,
				Value:   src,
			})
		}
		c.res.EndExprScope()
	default:
		c.errorAt(target.Range(), diag.CompileErrorInvalidTarget, describe(target))
	}
}

// inReg returns src if it is a register, otherwise loads the constant into
// a temporary.
func (c *compiler) inReg(src int, rng source.Range) int {
	if !bytecode.IsConstantID(src) {
		return src
	}
	t := c.temp()
	c.loadK(t, src, rng)
	return t
}

func describe(e ast.Expr) string {
	switch e.(type) {
	case *ast.Call:
		return "function call"
	case *ast.Binary, *ast.Unary, *ast.Boolean, *ast.Comparison:
		return "operator"
	case *ast.List:
		return "list"
	case *ast.Tuple:
		return "tuple"
	case *ast.Dict:
		return "dict"
	}
	return "literal"
}

func (c *compiler) ifStmt(n *ast.If) {
	var skip []int
	c.cond(n.Test, false, &skip)
	c.stmt(n.Then)
	if n.Else == nil {
		c.patchHere(skip)
		return
	}
	exit := c.emitJump(n.RangeVal)
	c.patchHere(skip)
	c.stmt(n.Else)
	c.patchHere([]int{exit})
}

func (c *compiler) whileStmt(n *ast.While) {
	start := c.chunk().CurrentPC()
	c.step(n.RangeVal)
	var exit []int
	c.cond(n.Test, false, &exit)
	c.stmt(n.Body)
	back := c.emitJump(n.RangeVal)
	c.patch([]int{back}, start)
	c.patchHere(exit)
}

// forIn lays out the loop state in three consecutive registers: the
// sequence, the index and the current element.
func (c *compiler) forIn(n *ast.ForIn) {
	c.res.BeginExprScope()
	defer c.res.EndExprScope()
	base := c.temps(3)
	c.res.BeginExprScope()
	c.exprTo(n.Expr, base)
	c.res.EndExprScope()
	prep := c.openJump(bytecode.OpForPrep, base, n.RangeVal)
	body := c.chunk().CurrentPC()
	c.store(n.Var, base+2, n.Var.RangeVal)
	c.stmt(n.Body)
	loop := c.openJump(bytecode.OpForLoop, base, n.RangeVal)
	c.patch([]int{loop}, body)
	c.patch([]int{prep}, loop)
}

func (c *compiler) funcDef(n *ast.FuncDef) {
	proto := bytecode.NewChunk(n.Name)
	proto.ParamCount = len(n.Params)

	c.res.BeginFuncScope(proto, false)
	declared := make(map[string]bool)
	for _, p := range n.Params {
		c.res.DefineVariable(p)
		declared[p] = true
	}
	for _, name := range assignedNames(n.Body) {
		if !declared[name] {
			c.res.DefineVariable(name)
			declared[name] = true
		}
	}
	c.stmt(n.Body)
	c.emitABC(bytecode.OpReturn, 0, 0, 0, endOf(n.Body))
	c.res.EndFuncScope()

	idx := c.chunk().AddProto(proto)
	c.res.BeginExprScope()
	defer c.res.EndExprScope()
	switch v := c.target(n.Name, n.RangeVal); v.Kind {
	case VarLocal:
		c.emitABx(bytecode.OpClosure, v.Index, idx, n.RangeVal)
	default:
		t := c.temp()
		c.emitABx(bytecode.OpClosure, t, idx, n.RangeVal)
		c.emitABx(bytecode.OpSetGlobal, t, v.Index, n.RangeVal)
	}
}

// assignedNames lists, in order of first appearance, the names a function
// body binds: assignment targets, loop variables and nested def names.
// Nested function bodies are not entered.
func assignedNames(s ast.Stmt) []string {
	var names []string
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	var walk func(ast.Stmt)
	walk = func(s ast.Stmt) {
		switch n := s.(type) {
		case *ast.Block:
			for _, st := range n.Stmts {
				walk(st)
			}
		case *ast.Assign:
			for _, t := range n.Targets {
				if id, ok := t.(*ast.Identifier); ok {
					add(id.Name)
				}
			}
		case *ast.If:
			walk(n.Then)
			if n.Else != nil {
				walk(n.Else)
			}
		case *ast.While:
			walk(n.Body)
		case *ast.ForIn:
			add(n.Var.Name)
			walk(n.Body)
		case *ast.FuncDef:
			add(n.Name)
		case *ast.VTag:
			walk(n.Body)
		}
	}
	walk(s)
	return names
}

func (c *compiler) returnStmt(n *ast.Return) {
	if !c.res.InFunction() {
		c.errorAt(n.RangeVal, diag.CompileErrorReturnOutsideFunc)
		return
	}
	c.res.BeginExprScope()
	defer c.res.EndExprScope()
	switch len(n.Exprs) {
	case 0:
		c.emitABC(bytecode.OpReturn, 0, 0, 0, n.RangeVal)
	case 1:
		c.emitABC(bytecode.OpReturn, c.exprReg(n.Exprs[0]), 1, 0, n.RangeVal)
	default:
		t := c.temp()
		c.sequenceTo(bytecode.OpNewTuple, n.Exprs, t, n.RangeVal)
		c.emitABC(bytecode.OpReturn, t, 1, 0, n.RangeVal)
	}
}

// vtag brackets the region with entry and exit notifications. Exit
// arguments are evaluated into private temporaries only when someone
// listens for them.
func (c *compiler) vtag(n *ast.VTag) {
	if c.listening(event.KindVTagEntered) {
		c.notify(bytecode.Notification{
			Kind:  event.KindVTagEntered,
			Range: n.RangeVal,
			Tags:  vtagDescs(n.Tags, nil),
		})
	}
	c.block(n.Body)
	if !c.listening(event.KindVTagExited) {
		return
	}
	c.res.BeginExprScope()
	var values []int
	for _, t := range n.Tags {
		for _, a := range t.Args {
			r := c.temp()
			c.res.BeginExprScope()
			c.exprTo(a.Expr, r)
			c.res.EndExprScope()
			values = append(values, r)
		}
	}
	if values == nil {
		values = []int{}
	}
	c.notify(bytecode.Notification{
		Kind:  event.KindVTagExited,
		Range: n.RangeVal,
		Tags:  vtagDescs(n.Tags, values),
	})
	c.res.EndExprScope()
}
