package value

import (
	"math"

	"github.com/chazu/seed/pkg/diag"
)

// Len returns the length of a string, list, tuple, dict or range.
func Len(v Value) (int, error) {
	if v.kind == KindObject {
		switch v.obj.kind {
		case ObjString:
			return len([]rune(v.obj.str)), nil
		case ObjList, ObjTuple:
			return len(v.obj.elems), nil
		case ObjDict:
			return v.obj.dict.Len(), nil
		case ObjRange:
			return v.obj.rng.Len(), nil
		}
	}
	return 0, runtimeError(diag.RuntimeErrorNotIterable, v.TypeName())
}

// position converts an index value to a slice offset. Negative indices count
// from the end.
func position(container, key Value, length int) (int, error) {
	if !scalar(key) || key.num != math.Trunc(key.num) {
		return 0, runtimeError(diag.RuntimeErrorInvalidIndex, container.TypeName(), key.TypeName())
	}
	i := int(key.num)
	if i < 0 {
		i += length
	}
	if i < 0 || i >= length {
		return 0, runtimeError(diag.RuntimeErrorOutOfRange, key.Repr())
	}
	return i, nil
}

// Index implements container[key].
func Index(container, key Value) (Value, error) {
	if container.kind == KindObject {
		switch o := container.obj; o.kind {
		case ObjString:
			runes := []rune(o.str)
			i, err := position(container, key, len(runes))
			if err != nil {
				return Value{}, err
			}
			return String(string(runes[i])), nil
		case ObjList, ObjTuple:
			i, err := position(container, key, len(o.elems))
			if err != nil {
				return Value{}, err
			}
			return o.elems[i], nil
		case ObjRange:
			i, err := position(container, key, o.rng.Len())
			if err != nil {
				return Value{}, err
			}
			return Number(float64(o.rng.At(i))), nil
		case ObjDict:
			v, ok, err := o.dict.Get(key)
			if err != nil {
				return Value{}, err
			}
			if !ok {
				return Value{}, runtimeError(diag.RuntimeErrorNoKey, key.Repr())
			}
			return v, nil
		}
	}
	return Value{}, runtimeError(diag.RuntimeErrorNotSubscriptable, container.TypeName())
}

// SetIndex implements container[key] = val. Only lists and dicts are
// mutable.
func SetIndex(container, key, val Value) error {
	if container.kind == KindObject {
		switch o := container.obj; o.kind {
		case ObjList:
			i, err := position(container, key, len(o.elems))
			if err != nil {
				return err
			}
			o.elems[i] = val
			return nil
		case ObjDict:
			return o.dict.Set(key, val)
		case ObjString, ObjTuple, ObjRange:
			return runtimeError(diag.RuntimeErrorNotSupportAssign, container.TypeName())
		}
	}
	return runtimeError(diag.RuntimeErrorNotSubscriptable, container.TypeName())
}

// ElementAt returns the i-th element produced by iterating v: characters of
// a string, elements of a list, tuple or range, keys of a dict.
func ElementAt(v Value, i int) (Value, error) {
	if v.IsDict() {
		keys := v.obj.dict.keys
		if i < 0 || i >= len(keys) {
			return Value{}, runtimeError(diag.RuntimeErrorOutOfRange, i)
		}
		return keys[i], nil
	}
	return Index(v, Number(float64(i)))
}

// Unpack returns the elements of an iterable as a slice.
func Unpack(v Value) ([]Value, error) {
	n, err := Len(v)
	if err != nil {
		return nil, err
	}
	out := make([]Value, n)
	for i := range out {
		if out[i], err = ElementAt(v, i); err != nil {
			return nil, err
		}
	}
	return out, nil
}
