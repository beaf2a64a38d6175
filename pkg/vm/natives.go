package vm

import (
	"fmt"
	"math"
	"strings"

	"github.com/chazu/seed/pkg/diag"
	"github.com/chazu/seed/pkg/value"
)

// Native is a built-in function implemented in Go.
type Native struct {
	name string
	// arity is the exact argument count, or -1 when any count is accepted.
	arity int
	fn    func(v *VM, args []value.Value) (value.Value, error)
}

// Name implements value.Callable.
func (n *Native) Name() string { return n.name }

func (n *Native) call(v *VM, args []value.Value) (value.Value, error) {
	if n.arity >= 0 && len(args) != n.arity {
		return value.Value{}, runtimeError(diag.RuntimeErrorArgumentCount, n.name, n.arity, len(args))
	}
	return n.fn(v, args)
}

func runtimeError(id diag.MessageID, args ...any) error {
	return diag.New(diag.ReporterRuntime, diag.SeverityError, id, args...)
}

func badArgument(fn, want string, got value.Value) error {
	return runtimeError(diag.RuntimeErrorBadArgument, fn, want, got.TypeName())
}

var natives = []*Native{
	{name: "print", arity: -1, fn: nativePrint},
	{name: "__print__", arity: 1, fn: nativeEcho},
	{name: "len", arity: 1, fn: nativeLen},
	{name: "range", arity: -1, fn: nativeRange},
	{name: "list", arity: -1, fn: nativeList},
	{name: "tuple", arity: -1, fn: nativeTuple},
	{name: "abs", arity: 1, fn: nativeAbs},
	{name: "str", arity: 1, fn: nativeStr},
}

func nativePrint(v *VM, args []value.Value) (value.Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	_, err := fmt.Fprintln(v.stdout, strings.Join(parts, " "))
	return value.Nil(), err
}

// nativeEcho prints the value of an interactive expression statement.
func nativeEcho(v *VM, args []value.Value) (value.Value, error) {
	if args[0].IsNil() {
		return value.Nil(), nil
	}
	_, err := fmt.Fprintln(v.stdout, args[0].Repr())
	return value.Nil(), err
}

func nativeLen(_ *VM, args []value.Value) (value.Value, error) {
	n, err := value.Len(args[0])
	if err != nil {
		return value.Value{}, err
	}
	return value.Number(float64(n)), nil
}

func intArg(fn string, v value.Value) (int, error) {
	f, ok := value.ToNumber(v)
	if !ok || v.IsString() || v.IsNil() || f != math.Trunc(f) {
		return 0, badArgument(fn, "an integer", v)
	}
	return int(f), nil
}

func nativeRange(_ *VM, args []value.Value) (value.Value, error) {
	if len(args) < 1 || len(args) > 3 {
		return value.Value{}, runtimeError(diag.RuntimeErrorArgumentCount, "range", 3, len(args))
	}
	bounds := make([]int, len(args))
	for i, a := range args {
		n, err := intArg("range", a)
		if err != nil {
			return value.Value{}, err
		}
		bounds[i] = n
	}
	start, stop, step := 0, bounds[0], 1
	if len(bounds) > 1 {
		start, stop = bounds[0], bounds[1]
	}
	if len(bounds) > 2 {
		step = bounds[2]
	}
	if step == 0 {
		return value.Value{}, badArgument("range", "a non-zero step", args[2])
	}
	return value.NewRange(start, stop, step), nil
}

func elementsOf(fn string, args []value.Value) ([]value.Value, error) {
	switch len(args) {
	case 0:
		return nil, nil
	case 1:
		return value.Unpack(args[0])
	}
	return nil, runtimeError(diag.RuntimeErrorArgumentCount, fn, 1, len(args))
}

func nativeList(_ *VM, args []value.Value) (value.Value, error) {
	elems, err := elementsOf("list", args)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewList(elems), nil
}

func nativeTuple(_ *VM, args []value.Value) (value.Value, error) {
	elems, err := elementsOf("tuple", args)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewTuple(elems), nil
}

func nativeAbs(_ *VM, args []value.Value) (value.Value, error) {
	a := args[0]
	if !a.IsNumber() && !a.IsBool() {
		return value.Value{}, badArgument("abs", "a number", a)
	}
	f, _ := value.ToNumber(a)
	return value.Number(math.Abs(f)), nil
}

func nativeStr(_ *VM, args []value.Value) (value.Value, error) {
	return value.String(args[0].String()), nil
}
