package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/seed/pkg/source"
)

func TestOperatorNames(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"binary", Add.String(), "Add"},
		{"binary symbol", FloorDivide.Symbol(), "//"},
		{"unary", Negative.String(), "Negative"},
		{"boolean", Or.String(), "Or"},
		{"comparison", GreaterEqual.String(), "GreaterEqual"},
		{"comparison symbol", In.Symbol(), "in"},
		{"out of range", BinaryOperator(42).String(), "BinaryOperator(42)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestBuilderRanges(t *testing.T) {
	l1, l3 := At(1), At(3)
	prog := NewProgram("main",
		l1.Assign(l1.Id("a"), l1.Num(1)),
		l3.Expr(l3.Call(l3.Id("print"), l3.Id("a"))),
	)
	require.Len(t, prog.Body.Stmts, 2)
	assert.Equal(t, source.LineStart(1).Start, prog.Body.Range().Start)
	assert.Equal(t, source.LineStart(3).End, prog.Body.Range().End)

	call := prog.Body.Stmts[1].(*ExprStmt).Expr.(*Call)
	assert.Equal(t, 3, call.Range().Start.Line)
	assert.Equal(t, "print", call.Func.(*Identifier).Name)
}

func TestEmptyBlockRange(t *testing.T) {
	assert.True(t, NewBlock().Range().IsEmpty())
}

func TestChain(t *testing.T) {
	b := At(2)
	c := b.Chain(b.Num(1), []ComparisonOperator{Less, LessEqual}, b.Id("x"), b.Num(3))
	assert.Len(t, c.Ops, 2)
	assert.Len(t, c.Exprs, 2)
}
