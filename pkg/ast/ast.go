// Package ast defines the syntax tree consumed by the bytecode compiler.
//
// The node set is closed: every expression implements Expr and every
// statement implements Stmt through unexported marker methods, so passes
// over the tree can switch exhaustively on the concrete node types.
package ast

import "github.com/chazu/seed/pkg/source"

// Node is the interface implemented by all AST nodes.
type Node interface {
	Range() source.Range
	node() // marker method
}

// ---------------------------------------------------------------------------
// Expression nodes
// ---------------------------------------------------------------------------

// Expr is the interface for expression nodes.
type Expr interface {
	Node
	expr() // marker method
}

// NilConstant is the literal None.
type NilConstant struct {
	RangeVal source.Range
}

func (n *NilConstant) Range() source.Range { return n.RangeVal }
func (n *NilConstant) node()               {}
func (n *NilConstant) expr()               {}

// BoolConstant is True or False.
type BoolConstant struct {
	RangeVal source.Range
	Value    bool
}

func (n *BoolConstant) Range() source.Range { return n.RangeVal }
func (n *BoolConstant) node()               {}
func (n *BoolConstant) expr()               {}

// NumberConstant is a numeric literal.
type NumberConstant struct {
	RangeVal source.Range
	Value    float64
}

func (n *NumberConstant) Range() source.Range { return n.RangeVal }
func (n *NumberConstant) node()               {}
func (n *NumberConstant) expr()               {}

// StringConstant is a string literal.
type StringConstant struct {
	RangeVal source.Range
	Value    string
}

func (n *StringConstant) Range() source.Range { return n.RangeVal }
func (n *StringConstant) node()               {}
func (n *StringConstant) expr()               {}

// Identifier is a variable reference.
type Identifier struct {
	RangeVal source.Range
	Name     string
}

func (n *Identifier) Range() source.Range { return n.RangeVal }
func (n *Identifier) node()               {}
func (n *Identifier) expr()               {}

// Binary is an arithmetic expression (left op right).
type Binary struct {
	RangeVal source.Range
	Left     Expr
	Op       BinaryOperator
	Right    Expr
}

func (n *Binary) Range() source.Range { return n.RangeVal }
func (n *Binary) node()               {}
func (n *Binary) expr()               {}

// Unary is a prefix operator applied to one operand.
type Unary struct {
	RangeVal source.Range
	Op       UnaryOperator
	Expr     Expr
}

func (n *Unary) Range() source.Range { return n.RangeVal }
func (n *Unary) node()               {}
func (n *Unary) expr()               {}

// Boolean is a chain of two or more operands joined by the same boolean
// operator: a and b and c.
type Boolean struct {
	RangeVal source.Range
	Op       BooleanOperator
	Exprs    []Expr
}

func (n *Boolean) Range() source.Range { return n.RangeVal }
func (n *Boolean) node()               {}
func (n *Boolean) expr()               {}

// Comparison is a comparison chain: First Ops[0] Exprs[0] Ops[1] Exprs[1] ...
// len(Ops) == len(Exprs) >= 1.
type Comparison struct {
	RangeVal source.Range
	First    Expr
	Ops      []ComparisonOperator
	Exprs    []Expr
}

func (n *Comparison) Range() source.Range { return n.RangeVal }
func (n *Comparison) node()               {}
func (n *Comparison) expr()               {}

// List is a list display [a, b, c].
type List struct {
	RangeVal source.Range
	Exprs    []Expr
}

func (n *List) Range() source.Range { return n.RangeVal }
func (n *List) node()               {}
func (n *List) expr()               {}

// Tuple is a tuple display (a, b).
type Tuple struct {
	RangeVal source.Range
	Exprs    []Expr
}

func (n *Tuple) Range() source.Range { return n.RangeVal }
func (n *Tuple) node()               {}
func (n *Tuple) expr()               {}

// KeyValue is one entry of a dict display.
type KeyValue struct {
	Key   Expr
	Value Expr
}

// Dict is a dict display {k: v, ...}.
type Dict struct {
	RangeVal source.Range
	Items    []KeyValue
}

func (n *Dict) Range() source.Range { return n.RangeVal }
func (n *Dict) node()               {}
func (n *Dict) expr()               {}

// Subscript is an element read container[key].
type Subscript struct {
	RangeVal  source.Range
	Container Expr
	Key       Expr
}

func (n *Subscript) Range() source.Range { return n.RangeVal }
func (n *Subscript) node()               {}
func (n *Subscript) expr()               {}

// Call is a function call.
type Call struct {
	RangeVal source.Range
	Func     Expr
	Args     []Expr
}

func (n *Call) Range() source.Range { return n.RangeVal }
func (n *Call) node()               {}
func (n *Call) expr()               {}

// ---------------------------------------------------------------------------
// Statement nodes
// ---------------------------------------------------------------------------

// Stmt is the interface for statement nodes.
type Stmt interface {
	Node
	stmt() // marker method
}

// ExprStmt evaluates an expression for its effect.
type ExprStmt struct {
	RangeVal source.Range
	Expr     Expr
}

func (n *ExprStmt) Range() source.Range { return n.RangeVal }
func (n *ExprStmt) node()               {}
func (n *ExprStmt) stmt()               {}

// Assign stores values into targets. Targets are Identifier or Subscript
// nodes. With one target and several values the values are packed into a
// tuple; with several targets and one value the value is unpacked.
type Assign struct {
	RangeVal source.Range
	Targets  []Expr
	Values   []Expr
}

func (n *Assign) Range() source.Range { return n.RangeVal }
func (n *Assign) node()               {}
func (n *Assign) stmt()               {}

// Block is a statement sequence.
type Block struct {
	RangeVal source.Range
	Stmts    []Stmt
}

func (n *Block) Range() source.Range { return n.RangeVal }
func (n *Block) node()               {}
func (n *Block) stmt()               {}

// If runs Then when Test is truthy, otherwise Else (which may be nil).
type If struct {
	RangeVal source.Range
	Test     Expr
	Then     Stmt
	Else     Stmt
}

func (n *If) Range() source.Range { return n.RangeVal }
func (n *If) node()               {}
func (n *If) stmt()               {}

// While repeats Body while Test is truthy.
type While struct {
	RangeVal source.Range
	Test     Expr
	Body     Stmt
}

func (n *While) Range() source.Range { return n.RangeVal }
func (n *While) node()               {}
func (n *While) stmt()               {}

// ForIn iterates Var over the elements of Expr.
type ForIn struct {
	RangeVal source.Range
	Var      *Identifier
	Expr     Expr
	Body     Stmt
}

func (n *ForIn) Range() source.Range { return n.RangeVal }
func (n *ForIn) node()               {}
func (n *ForIn) stmt()               {}

// FuncDef defines a named function.
type FuncDef struct {
	RangeVal source.Range
	Name     string
	Params   []string
	Body     Stmt
}

func (n *FuncDef) Range() source.Range { return n.RangeVal }
func (n *FuncDef) node()               {}
func (n *FuncDef) stmt()               {}

// Return leaves the current function. Exprs may be empty (returns None) or
// hold several values (returns a tuple).
type Return struct {
	RangeVal source.Range
	Exprs    []Expr
}

func (n *Return) Range() source.Range { return n.RangeVal }
func (n *Return) node()               {}
func (n *Return) stmt()               {}

// Pass does nothing.
type Pass struct {
	RangeVal source.Range
}

func (n *Pass) Range() source.Range { return n.RangeVal }
func (n *Pass) node()               {}
func (n *Pass) stmt()               {}

// VTagArg is one argument of a VTag: its source text and its expression.
type VTagArg struct {
	Text string
	Expr Expr
}

// VTagInfo names one tag of a VTag statement.
type VTagInfo struct {
	Name string
	Args []VTagArg
}

// VTag marks Body as an observable region.
type VTag struct {
	RangeVal source.Range
	Tags     []VTagInfo
	Body     *Block
}

func (n *VTag) Range() source.Range { return n.RangeVal }
func (n *VTag) node()               {}
func (n *VTag) stmt()               {}

// ---------------------------------------------------------------------------
// Program root
// ---------------------------------------------------------------------------

// Program is the root of a parsed module.
type Program struct {
	Name string
	Body *Block
}
