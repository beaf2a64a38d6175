package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chazu/seed/pkg/diag"
)

// hashKey is the comparable identity of a hashable value. Booleans and
// numbers share a key space so that True and 1 address the same dict entry.
type hashKey string

func keyOf(v Value) (hashKey, error) {
	var sb strings.Builder
	if err := writeKey(&sb, v); err != nil {
		return "", err
	}
	return hashKey(sb.String()), nil
}

func writeKey(sb *strings.Builder, v Value) error {
	switch v.kind {
	case KindNil:
		sb.WriteString("z")
		return nil
	case KindBool, KindNumber:
		sb.WriteString("n")
		sb.WriteString(strconv.FormatFloat(v.num, 'g', -1, 64))
		return nil
	}
	switch v.obj.kind {
	case ObjString:
		sb.WriteString("s")
		sb.WriteString(strconv.Quote(v.obj.str))
	case ObjTuple:
		sb.WriteString("t(")
		for i, e := range v.obj.elems {
			if i > 0 {
				sb.WriteString(",")
			}
			if err := writeKey(sb, e); err != nil {
				return err
			}
		}
		sb.WriteString(")")
	case ObjRange:
		r := v.obj.rng
		fmt.Fprintf(sb, "r%d:%d:%d", r.Start, r.Stop, r.Step)
	case ObjFunction:
		fmt.Fprintf(sb, "f%p", v.obj)
	default:
		return diag.New(diag.ReporterRuntime, diag.SeverityError,
			diag.RuntimeErrorUnhashable, v.TypeName())
	}
	return nil
}

// Hashable reports whether v can be used as a dict key.
func Hashable(v Value) bool {
	_, err := keyOf(v)
	return err == nil
}
