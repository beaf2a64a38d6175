// Package samples holds small programs built directly as ASTs. They serve
// as CLI demos and as end-to-end fixtures for the compiler and VM.
package samples

import (
	"sort"

	"github.com/chazu/seed/pkg/ast"
	"github.com/chazu/seed/pkg/diag"
)

// Sample is a named program with its expected script-mode output.
type Sample struct {
	Name        string
	Description string
	Build       func() *ast.Program
	// Output is what the program prints when run in script mode.
	Output string
	// Error is the message id of the runtime error that ends the run, if
	// any.
	Error diag.MessageID
}

var registry = map[string]Sample{}

func register(s Sample) { registry[s.Name] = s }

// All returns every sample sorted by name.
func All() []Sample {
	out := make([]Sample, 0, len(registry))
	for _, s := range registry {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the sample called name.
func Lookup(name string) (Sample, bool) {
	s, ok := registry[name]
	return s, ok
}

func block(stmts ...ast.Stmt) *ast.Block { return ast.NewBlock(stmts...) }

func init() {
	register(Sample{
		Name:        "sum",
		Description: "while loop accumulating 1..10 onto 2",
		Build:       Sum,
		Output:      "57\n",
	})
	register(Sample{
		Name:        "fib",
		Description: "recursive fibonacci",
		Build:       Fib,
		Output:      "55\n",
	})
	register(Sample{
		Name:        "containers",
		Description: "dicts, lists, tuples and ranges",
		Build:       Containers,
		Output:      "a 1\nb [1, 2]\n{'a': 1, 'b': [1, 2]}\n(1,) 2\n[0, 1, 2]\n",
	})
	register(Sample{
		Name:        "counter",
		Description: "closure updating a captured list",
		Build:       Counter,
		Output:      "2\n",
	})
	register(Sample{
		Name:        "logic",
		Description: "comparison chains, and/or/not and arithmetic",
		Build:       Logic,
		Output:      "True False\ndefault 4 False\nTrue -5 3 1 1024\n",
	})
	register(Sample{
		Name:        "vtag",
		Description: "tagged region around a for loop",
		Build:       Tagged,
		Output:      "6\n",
	})
	register(Sample{
		Name:        "divzero",
		Description: "division by zero ends the run",
		Build:       DivZero,
		Output:      "before\n",
		Error:       diag.RuntimeErrorDivideByZero,
	})
	register(Sample{
		Name:        "swap",
		Description: "packing, unpacking and multiple assignment",
		Build:       Swap,
		Output:      "2 1\n(3, 4) 3 4\n",
	})
}

// Sum is
//
//	a = 1
//	b = 2
//	while a <= 10:
//	    b = b + a
//	    a = a + 1
//	print(b)
func Sum() *ast.Program {
	l1, l2, l3, l4, l5, l6 := ast.At(1), ast.At(2), ast.At(3), ast.At(4), ast.At(5), ast.At(6)
	return ast.NewProgram("sum",
		l1.Assign(l1.Id("a"), l1.Num(1)),
		l2.Assign(l2.Id("b"), l2.Num(2)),
		l3.While(l3.Cmp(l3.Id("a"), ast.LessEqual, l3.Num(10)),
			l4.Assign(l4.Id("b"), l4.Bin(l4.Id("b"), ast.Add, l4.Id("a"))),
			l5.Assign(l5.Id("a"), l5.Bin(l5.Id("a"), ast.Add, l5.Num(1))),
		),
		l6.Expr(l6.Call(l6.Id("print"), l6.Id("b"))),
	)
}

// Fib is
//
//	def fib(n):
//	    if n < 2:
//	        return n
//	    return fib(n - 1) + fib(n - 2)
//	print(fib(10))
func Fib() *ast.Program {
	l1, l2, l3, l4, l5 := ast.At(1), ast.At(2), ast.At(3), ast.At(4), ast.At(5)
	return ast.NewProgram("fib",
		l1.Def("fib", []string{"n"},
			l2.If(l2.Cmp(l2.Id("n"), ast.Less, l2.Num(2)),
				block(l3.Return(l3.Id("n"))), nil),
			l4.Return(l4.Bin(
				l4.Call(l4.Id("fib"), l4.Bin(l4.Id("n"), ast.Subtract, l4.Num(1))),
				ast.Add,
				l4.Call(l4.Id("fib"), l4.Bin(l4.Id("n"), ast.Subtract, l4.Num(2))),
			)),
		),
		l5.Expr(l5.Call(l5.Id("print"), l5.Call(l5.Id("fib"), l5.Num(10)))),
	)
}

// Containers is
//
//	d = {"a": 1}
//	d["b"] = [1, 2]
//	t = (1,)
//	for k in d:
//	    print(k, d[k])
//	print(d)
//	print(t, len(d))
//	print(list(range(3)))
func Containers() *ast.Program {
	l1, l2, l3, l4, l5 := ast.At(1), ast.At(2), ast.At(3), ast.At(4), ast.At(5)
	l6, l7, l8 := ast.At(6), ast.At(7), ast.At(8)
	return ast.NewProgram("containers",
		l1.Assign(l1.Id("d"), l1.Dict(ast.KeyValue{Key: l1.Str("a"), Value: l1.Num(1)})),
		l2.Assign(l2.Index(l2.Id("d"), l2.Str("b")), l2.List(l2.Num(1), l2.Num(2))),
		l3.Assign(l3.Id("t"), l3.Tuple(l3.Num(1))),
		l4.For("k", l4.Id("d"),
			l5.Expr(l5.Call(l5.Id("print"), l5.Id("k"), l5.Index(l5.Id("d"), l5.Id("k")))),
		),
		l6.Expr(l6.Call(l6.Id("print"), l6.Id("d"))),
		l7.Expr(l7.Call(l7.Id("print"), l7.Id("t"), l7.Call(l7.Id("len"), l7.Id("d")))),
		l8.Expr(l8.Call(l8.Id("print"), l8.Call(l8.Id("list"), l8.Call(l8.Id("range"), l8.Num(3))))),
	)
}

// Counter is
//
//	def counter():
//	    n = [0]
//	    def inc():
//	        n[0] = n[0] + 1
//	        return n[0]
//	    return inc
//	c = counter()
//	c()
//	print(c())
func Counter() *ast.Program {
	l1, l2, l3, l4, l5 := ast.At(1), ast.At(2), ast.At(3), ast.At(4), ast.At(5)
	l6, l7, l8, l9 := ast.At(6), ast.At(7), ast.At(8), ast.At(9)
	return ast.NewProgram("counter",
		l1.Def("counter", nil,
			l2.Assign(l2.Id("n"), l2.List(l2.Num(0))),
			l3.Def("inc", nil,
				l4.Assign(l4.Index(l4.Id("n"), l4.Num(0)),
					l4.Bin(l4.Index(l4.Id("n"), l4.Num(0)), ast.Add, l4.Num(1))),
				l5.Return(l5.Index(l5.Id("n"), l5.Num(0))),
			),
			l6.Return(l6.Id("inc")),
		),
		l7.Assign(l7.Id("c"), l7.Call(l7.Id("counter"))),
		l8.Expr(l8.Call(l8.Id("c"))),
		l9.Expr(l9.Call(l9.Id("print"), l9.Call(l9.Id("c")))),
	)
}

// Logic is
//
//	x = 5
//	print(1 < x < 10, x < 1 < 10)
//	print(0 or "default", 3 and 4, not x == 5)
//	print(2 in [1, 2], -x, 7 // 2, 7 % 3, 2 ** 10)
func Logic() *ast.Program {
	l1, l2, l3, l4 := ast.At(1), ast.At(2), ast.At(3), ast.At(4)
	lt := []ast.ComparisonOperator{ast.Less, ast.Less}
	return ast.NewProgram("logic",
		l1.Assign(l1.Id("x"), l1.Num(5)),
		l2.Expr(l2.Call(l2.Id("print"),
			l2.Chain(l2.Num(1), lt, l2.Id("x"), l2.Num(10)),
			l2.Chain(l2.Id("x"), lt, l2.Num(1), l2.Num(10)),
		)),
		l3.Expr(l3.Call(l3.Id("print"),
			l3.Or(l3.Num(0), l3.Str("default")),
			l3.And(l3.Num(3), l3.Num(4)),
			l3.Unary(ast.Not, l3.Cmp(l3.Id("x"), ast.EqEqual, l3.Num(5))),
		)),
		l4.Expr(l4.Call(l4.Id("print"),
			l4.Cmp(l4.Num(2), ast.In, l4.List(l4.Num(1), l4.Num(2))),
			l4.Unary(ast.Negative, l4.Id("x")),
			l4.Bin(l4.Num(7), ast.FloorDivide, l4.Num(2)),
			l4.Bin(l4.Num(7), ast.Modulo, l4.Num(3)),
			l4.Bin(l4.Num(2), ast.Power, l4.Num(10)),
		)),
	)
}

// Tagged is
//
//	total = 0
//	vtag(sum, total):
//	    for i in range(1, 4):
//	        total = total + i
//	print(total)
func Tagged() *ast.Program {
	l1, l2, l3, l4, l5 := ast.At(1), ast.At(2), ast.At(3), ast.At(4), ast.At(5)
	tags := []ast.VTagInfo{{
		Name: "sum",
		Args: []ast.VTagArg{{Text: "total", Expr: l2.Id("total")}},
	}}
	return ast.NewProgram("vtag",
		l1.Assign(l1.Id("total"), l1.Num(0)),
		l2.VTag(tags,
			l3.For("i", l3.Call(l3.Id("range"), l3.Num(1), l3.Num(4)),
				l4.Assign(l4.Id("total"), l4.Bin(l4.Id("total"), ast.Add, l4.Id("i"))),
			),
		),
		l5.Expr(l5.Call(l5.Id("print"), l5.Id("total"))),
	)
}

// DivZero is
//
//	print("before")
//	x = 1 / 0
//	print("after")
func DivZero() *ast.Program {
	l1, l2, l3 := ast.At(1), ast.At(2), ast.At(3)
	return ast.NewProgram("divzero",
		l1.Expr(l1.Call(l1.Id("print"), l1.Str("before"))),
		l2.Assign(l2.Id("x"), l2.Bin(l2.Num(1), ast.Divide, l2.Num(0))),
		l3.Expr(l3.Call(l3.Id("print"), l3.Str("after"))),
	)
}

// Swap is
//
//	a, b = 1, 2
//	a, b = b, a
//	print(a, b)
//	p = 3, 4
//	x, y = p
//	print(p, x, y)
func Swap() *ast.Program {
	l1, l2, l3, l4, l5, l6 := ast.At(1), ast.At(2), ast.At(3), ast.At(4), ast.At(5), ast.At(6)
	return ast.NewProgram("swap",
		l1.AssignN([]ast.Expr{l1.Id("a"), l1.Id("b")}, l1.Num(1), l1.Num(2)),
		l2.AssignN([]ast.Expr{l2.Id("a"), l2.Id("b")}, l2.Id("b"), l2.Id("a")),
		l3.Expr(l3.Call(l3.Id("print"), l3.Id("a"), l3.Id("b"))),
		l4.AssignN([]ast.Expr{l4.Id("p")}, l4.Num(3), l4.Num(4)),
		l5.AssignN([]ast.Expr{l5.Id("x"), l5.Id("y")}, l5.Id("p")),
		l6.Expr(l6.Call(l6.Id("print"), l6.Id("p"), l6.Id("x"), l6.Id("y"))),
	)
}
