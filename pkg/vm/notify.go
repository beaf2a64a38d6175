package vm

import (
	"github.com/chazu/seed/pkg/ast"
	"github.com/chazu/seed/pkg/bytecode"
	"github.com/chazu/seed/pkg/diag"
	"github.com/chazu/seed/pkg/event"
	"github.com/chazu/seed/pkg/value"
)

// ---------------------------------------------------------------------------
// Notification dispatch
// ---------------------------------------------------------------------------

// inspector is the view of the VM handed to listeners. It goes stale as
// soon as dispatch returns.
type inspector struct {
	vm   *VM
	live bool
}

func (in *inspector) Globals() ([]event.Variable, bool) {
	if !in.live {
		return nil, false
	}
	return in.vm.Globals()
}

func (in *inspector) Locals() ([]event.Variable, bool) {
	if !in.live {
		return nil, false
	}
	return in.vm.Locals()
}

func (in *inspector) Pause() error {
	if !in.live {
		return in.vm.control(diag.VMPauseOutsideHook)
	}
	return in.vm.Pause()
}

func (in *inspector) Stop() error {
	if !in.live {
		return in.vm.control(diag.VMNotRunning)
	}
	return in.vm.Stop()
}

// dispatch builds the event for n from the frame's registers and delivers
// it to the registry's listeners.
func (v *VM) dispatch(f *CallFrame, n bytecode.Notification) {
	if !v.registry.Has(n.Kind) {
		return
	}
	ev, ok := buildEvent(f, n)
	if !ok {
		return
	}
	in := &inspector{vm: v, live: true}
	v.dispatching = true
	defer func() {
		in.live = false
		v.dispatching = false
	}()
	v.registry.Dispatch(ev, in)
}

func operand(f *CallFrame, id int, name string) event.Operand {
	return event.Operand{Name: name, Value: f.rk(id)}
}

// buildEvent materializes the payload of n. It reports false when the event
// cannot be built, which only happens for a comparison whose operands the
// following test instruction is about to reject.
func buildEvent(f *CallFrame, n bytecode.Notification) (event.Event, bool) {
	switch n.Kind {
	case event.KindAssignment:
		return event.Assignment{
			Range:  n.Range,
			Target: event.Target{Name: n.Name, Storage: n.Storage},
			Value:  f.rk(n.Value),
		}, true

	case event.KindSubscriptAssignment:
		return event.SubscriptAssignment{
			Range:     n.Range,
			Container: event.Target{Name: n.Name, Storage: n.Storage},
			Key:       f.rk(n.Key),
			Value:     f.rk(n.Value),
		}, true

	case event.KindBinary:
		return event.Binary{
			Range:  n.Range,
			Left:   operand(f, n.Left, n.LeftName),
			Op:     ast.BinaryOperator(n.Op),
			Right:  operand(f, n.Right, n.RightName),
			Result: f.Registers[n.Result],
		}, true

	case event.KindUnary:
		return event.Unary{
			Range:  n.Range,
			Op:     ast.UnaryOperator(n.Op),
			Value:  operand(f, n.Left, n.LeftName),
			Result: f.Registers[n.Result],
		}, true

	case event.KindComparison:
		op := ast.ComparisonOperator(n.Op)
		left, right := operand(f, n.Left, n.LeftName), operand(f, n.Right, n.RightName)
		result, err := evalComparison(op, left.Value, right.Value)
		if err != nil {
			return nil, false
		}
		return event.Comparison{Range: n.Range, Left: left, Op: op, Right: right, Result: result}, true

	case event.KindFuncCalled:
		args := make([]value.Value, n.Argc)
		copy(args, f.Registers[n.Func+1:n.Func+1+n.Argc])
		return event.FuncCalled{Range: n.Range, Name: n.Name, Args: args}, true

	case event.KindFuncReturned:
		return event.FuncReturned{Range: n.Range, Name: n.Name, Result: f.Registers[n.Result]}, true

	case event.KindSingleStep:
		return event.SingleStep{Range: n.Range}, true

	case event.KindVTagEntered:
		return event.VTagEntered{Range: n.Range, Tags: tags(f, n.Tags, false)}, true

	case event.KindVTagExited:
		return event.VTagExited{Range: n.Range, Tags: tags(f, n.Tags, true)}, true
	}
	return nil, false
}

func tags(f *CallFrame, descs []bytecode.TagDesc, withValues bool) []event.VTag {
	out := make([]event.VTag, len(descs))
	for i, d := range descs {
		t := event.VTag{Name: d.Name, Args: d.Args}
		if withValues {
			t.Values = make([]value.Value, len(d.Values))
			for j, id := range d.Values {
				t.Values[j] = f.rk(id)
			}
		}
		out[i] = t
	}
	return out
}

// evalComparison computes a comparison the way the compiled test
// instructions do, so the event agrees with the branch taken.
func evalComparison(op ast.ComparisonOperator, l, r value.Value) (bool, error) {
	switch op {
	case ast.Less:
		return value.Less(l, r)
	case ast.Greater:
		le, err := value.LessEqual(l, r)
		return !le, err
	case ast.LessEqual:
		return value.LessEqual(l, r)
	case ast.GreaterEqual:
		lt, err := value.Less(l, r)
		return !lt, err
	case ast.EqEqual:
		return value.Equal(l, r), nil
	case ast.NotEqual:
		return !value.Equal(l, r), nil
	default:
		return value.Contains(r, l)
	}
}
