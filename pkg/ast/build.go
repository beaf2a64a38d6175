package ast

import "github.com/chazu/seed/pkg/source"

// Builder constructs nodes positioned on one source line. Hosts without a
// parser, and tests, build programs with it:
//
//	l1, l2 := ast.At(1), ast.At(2)
//	prog := ast.NewProgram("main",
//		l1.Assign(l1.Id("a"), l1.Num(1)),
//		l2.Expr(l2.Call(l2.Id("print"), l2.Id("a"))),
//	)
type Builder struct {
	line int
}

// At returns a builder for nodes on line.
func At(line int) Builder { return Builder{line: line} }

func (b Builder) rng() source.Range { return source.LineStart(b.line) }

// NewProgram wraps stmts into a named program.
func NewProgram(name string, stmts ...Stmt) *Program {
	return &Program{Name: name, Body: NewBlock(stmts...)}
}

// NewBlock builds a block whose range spans its statements.
func NewBlock(stmts ...Stmt) *Block {
	blk := &Block{Stmts: stmts}
	if len(stmts) > 0 {
		blk.RangeVal = source.Range{
			Start: stmts[0].Range().Start,
			End:   stmts[len(stmts)-1].Range().End,
		}
	}
	return blk
}

func (b Builder) Nil() *NilConstant { return &NilConstant{RangeVal: b.rng()} }

func (b Builder) Bool(v bool) *BoolConstant { return &BoolConstant{RangeVal: b.rng(), Value: v} }

func (b Builder) Num(v float64) *NumberConstant {
	return &NumberConstant{RangeVal: b.rng(), Value: v}
}

func (b Builder) Str(v string) *StringConstant {
	return &StringConstant{RangeVal: b.rng(), Value: v}
}

func (b Builder) Id(name string) *Identifier { return &Identifier{RangeVal: b.rng(), Name: name} }

func (b Builder) Bin(left Expr, op BinaryOperator, right Expr) *Binary {
	return &Binary{RangeVal: b.rng(), Left: left, Op: op, Right: right}
}

func (b Builder) Unary(op UnaryOperator, e Expr) *Unary {
	return &Unary{RangeVal: b.rng(), Op: op, Expr: e}
}

func (b Builder) And(exprs ...Expr) *Boolean {
	return &Boolean{RangeVal: b.rng(), Op: And, Exprs: exprs}
}

func (b Builder) Or(exprs ...Expr) *Boolean {
	return &Boolean{RangeVal: b.rng(), Op: Or, Exprs: exprs}
}

// Cmp builds a single comparison left op right.
func (b Builder) Cmp(left Expr, op ComparisonOperator, right Expr) *Comparison {
	return &Comparison{RangeVal: b.rng(), First: left, Ops: []ComparisonOperator{op}, Exprs: []Expr{right}}
}

// Chain builds a comparison chain first ops[0] exprs[0] ...
func (b Builder) Chain(first Expr, ops []ComparisonOperator, exprs ...Expr) *Comparison {
	return &Comparison{RangeVal: b.rng(), First: first, Ops: ops, Exprs: exprs}
}

func (b Builder) List(exprs ...Expr) *List { return &List{RangeVal: b.rng(), Exprs: exprs} }

func (b Builder) Tuple(exprs ...Expr) *Tuple { return &Tuple{RangeVal: b.rng(), Exprs: exprs} }

func (b Builder) Dict(items ...KeyValue) *Dict { return &Dict{RangeVal: b.rng(), Items: items} }

func (b Builder) Index(container, key Expr) *Subscript {
	return &Subscript{RangeVal: b.rng(), Container: container, Key: key}
}

func (b Builder) Call(fn Expr, args ...Expr) *Call {
	return &Call{RangeVal: b.rng(), Func: fn, Args: args}
}

func (b Builder) Expr(e Expr) *ExprStmt { return &ExprStmt{RangeVal: b.rng(), Expr: e} }

// Assign builds the single assignment target = value.
func (b Builder) Assign(target, value Expr) *Assign {
	return &Assign{RangeVal: b.rng(), Targets: []Expr{target}, Values: []Expr{value}}
}

// AssignN builds a multiple, packing or unpacking assignment.
func (b Builder) AssignN(targets []Expr, values ...Expr) *Assign {
	return &Assign{RangeVal: b.rng(), Targets: targets, Values: values}
}

func (b Builder) If(test Expr, then, els Stmt) *If {
	return &If{RangeVal: b.rng(), Test: test, Then: then, Else: els}
}

func (b Builder) While(test Expr, body ...Stmt) *While {
	return &While{RangeVal: b.rng(), Test: test, Body: NewBlock(body...)}
}

func (b Builder) For(name string, seq Expr, body ...Stmt) *ForIn {
	return &ForIn{RangeVal: b.rng(), Var: b.Id(name), Expr: seq, Body: NewBlock(body...)}
}

func (b Builder) Def(name string, params []string, body ...Stmt) *FuncDef {
	return &FuncDef{RangeVal: b.rng(), Name: name, Params: params, Body: NewBlock(body...)}
}

func (b Builder) Return(exprs ...Expr) *Return { return &Return{RangeVal: b.rng(), Exprs: exprs} }

func (b Builder) Pass() *Pass { return &Pass{RangeVal: b.rng()} }

func (b Builder) VTag(tags []VTagInfo, body ...Stmt) *VTag {
	return &VTag{RangeVal: b.rng(), Tags: tags, Body: NewBlock(body...)}
}
