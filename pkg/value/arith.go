package value

import (
	"math"
	"strconv"
	"strings"

	"github.com/chazu/seed/pkg/diag"
)

func runtimeError(id diag.MessageID, args ...any) error {
	return diag.New(diag.ReporterRuntime, diag.SeverityError, id, args...)
}

func unsupported(op string, lhs, rhs Value) error {
	return runtimeError(diag.RuntimeErrorUnsupportedOperands, op, lhs.TypeName(), rhs.TypeName())
}

// checkOverflow rejects infinite and not-a-number results.
func checkOverflow(f float64) (Value, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return Value{}, diag.New(diag.ReporterRuntime, diag.SeverityFatal, diag.RuntimeErrorOverflow)
	}
	return Number(f), nil
}

// ToNumber applies the numeric coercion used by arithmetic: nil is 0,
// booleans are 0 or 1, strings are parsed (0 when unparsable). Containers and
// functions have no numeric value.
func ToNumber(v Value) (float64, bool) {
	switch v.kind {
	case KindNil:
		return 0, true
	case KindBool, KindNumber:
		return v.num, true
	}
	if v.obj.kind == ObjString {
		f, err := strconv.ParseFloat(strings.TrimSpace(v.obj.str), 64)
		if err != nil {
			return 0, true
		}
		return f, true
	}
	return 0, false
}

func numbers(op string, lhs, rhs Value) (float64, float64, error) {
	l, ok := ToNumber(lhs)
	if !ok {
		return 0, 0, unsupported(op, lhs, rhs)
	}
	r, ok := ToNumber(rhs)
	if !ok {
		return 0, 0, unsupported(op, lhs, rhs)
	}
	return l, r, nil
}

func scalar(v Value) bool { return v.kind == KindBool || v.kind == KindNumber }

// Add implements +.
func Add(lhs, rhs Value) (Value, error) {
	switch {
	case scalar(lhs) && scalar(rhs):
		return checkOverflow(lhs.num + rhs.num)
	case lhs.IsString() && rhs.IsString():
		return String(lhs.obj.str + rhs.obj.str), nil
	case lhs.IsList() && rhs.IsList():
		return NewList(concat(lhs.obj.elems, rhs.obj.elems)), nil
	case lhs.IsTuple() && rhs.IsTuple():
		return NewTuple(concat(lhs.obj.elems, rhs.obj.elems)), nil
	}
	return Value{}, unsupported("+", lhs, rhs)
}

func concat(a, b []Value) []Value {
	out := make([]Value, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// Subtract implements -.
func Subtract(lhs, rhs Value) (Value, error) {
	l, r, err := numbers("-", lhs, rhs)
	if err != nil {
		return Value{}, err
	}
	return checkOverflow(l - r)
}

// Multiply implements *.
func Multiply(lhs, rhs Value) (Value, error) {
	l, r, err := numbers("*", lhs, rhs)
	if err != nil {
		return Value{}, err
	}
	return checkOverflow(l * r)
}

// Divide implements /.
func Divide(lhs, rhs Value) (Value, error) {
	l, r, err := numbers("/", lhs, rhs)
	if err != nil {
		return Value{}, err
	}
	if r == 0 {
		return Value{}, runtimeError(diag.RuntimeErrorDivideByZero)
	}
	return checkOverflow(l / r)
}

// FloorDivide implements //.
func FloorDivide(lhs, rhs Value) (Value, error) {
	l, r, err := numbers("//", lhs, rhs)
	if err != nil {
		return Value{}, err
	}
	if r == 0 {
		return Value{}, runtimeError(diag.RuntimeErrorDivideByZero)
	}
	return checkOverflow(math.Floor(l / r))
}

// Power implements **.
func Power(lhs, rhs Value) (Value, error) {
	l, r, err := numbers("**", lhs, rhs)
	if err != nil {
		return Value{}, err
	}
	return checkOverflow(math.Pow(l, r))
}

// Modulo implements %. The result takes the sign of the dividend.
func Modulo(lhs, rhs Value) (Value, error) {
	l, r, err := numbers("%", lhs, rhs)
	if err != nil {
		return Value{}, err
	}
	if r == 0 {
		return Value{}, runtimeError(diag.RuntimeErrorDivideByZero)
	}
	return checkOverflow(math.Mod(l, r))
}

// Negate implements unary -.
func Negate(v Value) (Value, error) {
	f, ok := ToNumber(v)
	if !ok {
		return Value{}, runtimeError(diag.RuntimeErrorBadUnaryOperand, "-", v.TypeName())
	}
	return checkOverflow(-f)
}

// Not implements logical not.
func Not(v Value) Value { return Bool(!v.Truthy()) }
