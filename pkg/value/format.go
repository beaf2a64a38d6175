package value

import (
	"math"
	"strconv"
	"strings"
)

// String returns the printed form of v: strings print without quotes.
func (v Value) String() string {
	if v.IsString() {
		return v.obj.str
	}
	return v.Repr()
}

// Repr returns the display form of v used inside containers and events.
func (v Value) Repr() string {
	var sb strings.Builder
	writeRepr(&sb, v)
	return sb.String()
}

// FormatNumber prints integral values without a fractional part.
func FormatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e16 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func writeRepr(sb *strings.Builder, v Value) {
	switch v.kind {
	case KindNil:
		sb.WriteString("None")
		return
	case KindBool:
		if v.num != 0 {
			sb.WriteString("True")
		} else {
			sb.WriteString("False")
		}
		return
	case KindNumber:
		sb.WriteString(FormatNumber(v.num))
		return
	}
	switch o := v.obj; o.kind {
	case ObjString:
		sb.WriteString("'")
		sb.WriteString(strings.ReplaceAll(o.str, "'", `\'`))
		sb.WriteString("'")
	case ObjList:
		sb.WriteString("[")
		writeElems(sb, o.elems)
		sb.WriteString("]")
	case ObjTuple:
		sb.WriteString("(")
		writeElems(sb, o.elems)
		if len(o.elems) == 1 {
			sb.WriteString(",")
		}
		sb.WriteString(")")
	case ObjDict:
		sb.WriteString("{")
		for i, k := range o.dict.keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeRepr(sb, k)
			sb.WriteString(": ")
			writeRepr(sb, o.dict.vals[i])
		}
		sb.WriteString("}")
	case ObjRange:
		sb.WriteString("range(")
		sb.WriteString(strconv.Itoa(o.rng.Start))
		sb.WriteString(", ")
		sb.WriteString(strconv.Itoa(o.rng.Stop))
		if o.rng.Step != 1 {
			sb.WriteString(", ")
			sb.WriteString(strconv.Itoa(o.rng.Step))
		}
		sb.WriteString(")")
	case ObjFunction:
		sb.WriteString("<function ")
		sb.WriteString(o.fn.Name())
		sb.WriteString(">")
	}
}

func writeElems(sb *strings.Builder, elems []Value) {
	for i, e := range elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeRepr(sb, e)
	}
}
