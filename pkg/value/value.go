// Package value implements the tagged runtime value of the VM.
//
// A Value is either an inline scalar (nil, boolean, number) or a reference to
// a heap Object (string, list, tuple, dict, range, function). Values are
// passed by copy; objects are shared by reference.
package value

import "fmt"

// Kind is the tag of a Value.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindObject
)

// Value is the runtime value held in registers, globals and containers.
// The zero Value is nil.
type Value struct {
	kind Kind
	num  float64
	obj  *Object
}

// Nil returns the nil value.
func Nil() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value {
	if b {
		return Value{kind: KindBool, num: 1}
	}
	return Value{kind: KindBool}
}

// Number returns a number value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindObject, obj: &Object{kind: ObjString, str: s}}
}

// NewList returns a list value that takes ownership of elems.
func NewList(elems []Value) Value {
	return Value{kind: KindObject, obj: &Object{kind: ObjList, elems: elems}}
}

// NewTuple returns a tuple value that takes ownership of elems.
func NewTuple(elems []Value) Value {
	return Value{kind: KindObject, obj: &Object{kind: ObjTuple, elems: elems}}
}

// NewDict returns an empty dict value.
func NewDict() Value {
	return Value{kind: KindObject, obj: &Object{kind: ObjDict, dict: newDict()}}
}

// NewRange returns a range value. step must not be zero.
func NewRange(start, stop, step int) Value {
	return Value{kind: KindObject, obj: &Object{kind: ObjRange, rng: Range{Start: start, Stop: stop, Step: step}}}
}

// NewFunction wraps a callable.
func NewFunction(fn Callable) Value {
	return Value{kind: KindObject, obj: &Object{kind: ObjFunction, fn: fn}}
}

// Kind returns the tag of v.
func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNil() bool      { return v.kind == KindNil }
func (v Value) IsBool() bool     { return v.kind == KindBool }
func (v Value) IsNumber() bool   { return v.kind == KindNumber }
func (v Value) IsObject() bool   { return v.kind == KindObject }
func (v Value) IsString() bool   { return v.isObj(ObjString) }
func (v Value) IsList() bool     { return v.isObj(ObjList) }
func (v Value) IsTuple() bool    { return v.isObj(ObjTuple) }
func (v Value) IsDict() bool     { return v.isObj(ObjDict) }
func (v Value) IsRange() bool    { return v.isObj(ObjRange) }
func (v Value) IsFunction() bool { return v.isObj(ObjFunction) }

func (v Value) isObj(k ObjectKind) bool {
	return v.kind == KindObject && v.obj.kind == k
}

// Object returns the heap object of v, or nil for scalars.
func (v Value) Object() *Object { return v.obj }

// AsBool returns the boolean payload. It is only meaningful for booleans;
// use Truthy for general truth testing.
func (v Value) AsBool() bool { return v.kind == KindBool && v.num != 0 }

// AsString returns the string payload, or "" if v is not a string.
func (v Value) AsString() string {
	if v.IsString() {
		return v.obj.str
	}
	return ""
}

// Elements returns the backing slice of a list or tuple. Callers must not
// modify tuple elements.
func (v Value) Elements() []Value {
	if v.IsList() || v.IsTuple() {
		return v.obj.elems
	}
	return nil
}

// AsDict returns the dict payload, or nil.
func (v Value) AsDict() *Dict {
	if v.IsDict() {
		return v.obj.dict
	}
	return nil
}

// AsRange returns the range payload.
func (v Value) AsRange() (Range, bool) {
	if v.IsRange() {
		return v.obj.rng, true
	}
	return Range{}, false
}

// AsFunction returns the callable payload, or nil.
func (v Value) AsFunction() Callable {
	if v.IsFunction() {
		return v.obj.fn
	}
	return nil
}

// TypeName returns the user-facing name of v's type.
func (v Value) TypeName() string {
	switch v.kind {
	case KindNil:
		return "NoneType"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	}
	return v.obj.kind.String()
}

// Truthy implements truth testing.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNil:
		return false
	case KindBool, KindNumber:
		return v.num != 0
	}
	switch v.obj.kind {
	case ObjString:
		return v.obj.str != ""
	case ObjList, ObjTuple:
		return len(v.obj.elems) > 0
	case ObjDict:
		return v.obj.dict.Len() > 0
	case ObjRange:
		return v.obj.rng.Len() > 0
	}
	return true
}

// GoString supports %#v in test failure output.
func (v Value) GoString() string {
	return fmt.Sprintf("value.Value(%s)", v.Repr())
}
