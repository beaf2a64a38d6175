package value

import (
	"strings"

	"github.com/chazu/seed/pkg/diag"
)

// Equal reports structural equality. Booleans and numbers compare
// numerically; functions compare by identity.
func Equal(lhs, rhs Value) bool {
	if scalar(lhs) && scalar(rhs) {
		return lhs.num == rhs.num
	}
	if lhs.kind != rhs.kind {
		return false
	}
	if lhs.kind == KindNil {
		return true
	}
	a, b := lhs.obj, rhs.obj
	if a == b {
		return true
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case ObjString:
		return a.str == b.str
	case ObjList, ObjTuple:
		return equalSlices(a.elems, b.elems)
	case ObjDict:
		if a.dict.Len() != b.dict.Len() {
			return false
		}
		for i, k := range a.dict.keys {
			v, ok, err := b.dict.Get(k)
			if err != nil || !ok || !Equal(a.dict.vals[i], v) {
				return false
			}
		}
		return true
	case ObjRange:
		return a.rng == b.rng
	}
	return false
}

func equalSlices(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Less implements <. Numbers (and booleans) and strings order naturally;
// lists and tuples order lexicographically against the same kind.
func Less(lhs, rhs Value) (bool, error) {
	c, err := compare("<", lhs, rhs)
	return c < 0, err
}

// LessEqual implements <=.
func LessEqual(lhs, rhs Value) (bool, error) {
	c, err := compare("<=", lhs, rhs)
	return c <= 0, err
}

func compare(op string, lhs, rhs Value) (int, error) {
	switch {
	case scalar(lhs) && scalar(rhs):
		switch {
		case lhs.num < rhs.num:
			return -1, nil
		case lhs.num > rhs.num:
			return 1, nil
		}
		return 0, nil
	case lhs.IsString() && rhs.IsString():
		return strings.Compare(lhs.obj.str, rhs.obj.str), nil
	case lhs.IsList() && rhs.IsList(), lhs.IsTuple() && rhs.IsTuple():
		a, b := lhs.obj.elems, rhs.obj.elems
		for i := 0; i < len(a) && i < len(b); i++ {
			if Equal(a[i], b[i]) {
				continue
			}
			return compare(op, a[i], b[i])
		}
		return len(a) - len(b), nil
	}
	return 0, unsupported(op, lhs, rhs)
}

// Contains implements item in container.
func Contains(container, item Value) (bool, error) {
	if container.kind == KindObject {
		switch container.obj.kind {
		case ObjString:
			if !item.IsString() {
				return false, unsupported("in", item, container)
			}
			return strings.Contains(container.obj.str, item.obj.str), nil
		case ObjList, ObjTuple:
			for _, e := range container.obj.elems {
				if Equal(e, item) {
					return true, nil
				}
			}
			return false, nil
		case ObjDict:
			_, ok, err := container.obj.dict.Get(item)
			return ok, err
		case ObjRange:
			f, ok := ToNumber(item)
			if !ok || !scalar(item) || f != float64(int(f)) {
				return false, nil
			}
			r := container.obj.rng
			n := int(f)
			if r.Len() == 0 || (n-r.Start)%r.Step != 0 {
				return false, nil
			}
			i := (n - r.Start) / r.Step
			return i >= 0 && i < r.Len(), nil
		}
	}
	return false, runtimeError(diag.RuntimeErrorNotIterable, container.TypeName())
}
