package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/seed/pkg/ast"
	"github.com/chazu/seed/pkg/source"
	"github.com/chazu/seed/pkg/value"
)

func TestEventStrings(t *testing.T) {
	r := source.LineStart(3)
	tests := []struct {
		ev   Event
		want string
	}{
		{SingleStep{Range: r}, "[Ln 3, Col 0 - Ln 3, Col 0] SingleStep"},
		{
			Binary{Range: r, Left: Operand{Value: value.Number(1)}, Op: ast.Add, Right: Operand{Value: value.Number(2)}, Result: value.Number(3)},
			"[Ln 3, Col 0 - Ln 3, Col 0] 1 Add 2 = 3",
		},
		{
			Assignment{Range: r, Target: Target{Name: "a", Storage: Local}, Value: value.String("x")},
			"[Ln 3, Col 0 - Ln 3, Col 0] Local:a = 'x'",
		},
		{
			Comparison{Range: r, Left: Operand{Name: "a", Value: value.Number(1)}, Op: ast.Less, Right: Operand{Value: value.Number(2)}, Result: true},
			"[Ln 3, Col 0 - Ln 3, Col 0] a:1 Less 2 = True",
		},
		{
			FuncCalled{Range: r, Name: "add", Args: []value.Value{value.Number(1), value.Nil()}},
			"[Ln 3, Col 0 - Ln 3, Col 0] FuncCalled: add(1, None)",
		},
		{
			VTagEntered{Range: r, Tags: []VTag{{Name: "Swap", Args: []string{"a", "b"}}}},
			"[Ln 3, Col 0 - Ln 3, Col 0] VTagEntered: Swap(a,b)",
		},
		{
			VTagExited{Range: r, Tags: []VTag{{Name: "Swap", Args: []string{"a"}, Values: []value.Value{value.Number(2)}}}},
			"[Ln 3, Col 0 - Ln 3, Col 0] VTagExited: Swap(2)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.ev.Kind().String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ev.String())
		})
	}
}

func TestRegistryDispatchOrder(t *testing.T) {
	reg := NewRegistry()
	var order []string
	reg.Register(KindSingleStep, func(Event, Inspector) { order = append(order, "first") })
	h := reg.Register(KindSingleStep, func(Event, Inspector) { order = append(order, "second") })
	reg.Register(KindSingleStep, func(Event, Inspector) { order = append(order, "third") })

	assert.True(t, reg.Has(KindSingleStep))
	assert.False(t, reg.Has(KindBinary))

	reg.Dispatch(SingleStep{}, nil)
	assert.Equal(t, []string{"first", "second", "third"}, order)

	require.True(t, reg.Unregister(h))
	assert.False(t, reg.Unregister(h))

	order = nil
	reg.Dispatch(SingleStep{}, nil)
	assert.Equal(t, []string{"first", "third"}, order)
}

func TestNilRegistry(t *testing.T) {
	var reg *Registry
	assert.False(t, reg.Has(KindAssignment))
	reg.Dispatch(SingleStep{}, nil)
}

func TestTypedListener(t *testing.T) {
	reg := NewRegistry()
	var got []Binary
	On(reg, func(e Binary, _ Inspector) { got = append(got, e) })

	assert.True(t, reg.Has(KindBinary))
	reg.Dispatch(Binary{Op: ast.Multiply}, nil)
	reg.Dispatch(Unary{}, nil)
	require.Len(t, got, 1)
	assert.Equal(t, ast.Multiply, got[0].Op)
}

func TestRecorder(t *testing.T) {
	reg := NewRegistry()
	rec := &Recorder{}
	rec.Listen(reg, KindSingleStep, KindUnary)
	reg.Dispatch(SingleStep{Range: source.LineStart(1)}, nil)
	reg.Dispatch(Unary{Op: ast.Not, Value: Operand{Value: value.Bool(true)}, Result: value.Bool(false)}, nil)
	reg.Dispatch(Binary{}, nil)

	assert.Len(t, rec.Events, 2)
	assert.Len(t, rec.OfKind(KindUnary), 1)
	assert.Equal(t, "[Ln 1, Col 0 - Ln 1, Col 0] SingleStep", rec.Strings()[0])
}

func TestParseKinds(t *testing.T) {
	kinds, err := ParseKinds("binary, SingleStep")
	require.NoError(t, err)
	assert.Equal(t, []Kind{KindBinary, KindSingleStep}, kinds)

	kinds, err = ParseKinds("all")
	require.NoError(t, err)
	assert.Len(t, kinds, len(AllKinds()))

	kinds, err = ParseKinds("")
	require.NoError(t, err)
	assert.Empty(t, kinds)

	_, err = ParseKinds("bogus")
	assert.Error(t, err)
}
