package vm

import (
	"errors"
	"fmt"

	"github.com/chazu/seed/pkg/bytecode"
	"github.com/chazu/seed/pkg/diag"
	"github.com/chazu/seed/pkg/value"
)

// ---------------------------------------------------------------------------
// Dispatch loop
// ---------------------------------------------------------------------------

var arith = map[bytecode.Opcode]func(value.Value, value.Value) (value.Value, error){
	bytecode.OpAdd:      value.Add,
	bytecode.OpSub:      value.Subtract,
	bytecode.OpMul:      value.Multiply,
	bytecode.OpDiv:      value.Divide,
	bytecode.OpFloorDiv: value.FloorDivide,
	bytecode.OpPow:      value.Power,
	bytecode.OpMod:      value.Modulo,
}

// execute runs instructions until the module returns, a runtime error
// occurs, or a listener pauses or stops the run. Operand ids that escape a
// frame's registers surface as invalid bytecode.
func (v *VM) execute() (err error) {
	defer func() {
		if r := recover(); r != nil {
			v.dispatching = false
			err = v.fail(runtimeError(diag.RuntimeErrorInvalidBytecode, fmt.Sprint(r)))
		}
	}()
	for len(v.frames) > 0 {
		f := v.frames[len(v.frames)-1]
		code := f.chunk().Code
		if f.PC >= len(code) {
			return v.fail(runtimeError(diag.RuntimeErrorInvalidBytecode, "fell off the end of "+f.chunk().Name))
		}
		pc := f.PC
		f.PC++
		if err := v.step(f, code[pc]); err != nil {
			f.PC = pc
			return v.fail(err)
		}
		if v.stopRequested {
			v.stopRequested = false
			v.pauseRequested = false
			v.terminate(Stopped)
			return nil
		}
		if v.pauseRequested {
			v.pauseRequested = false
			v.setState(Paused)
			return nil
		}
	}
	v.setState(Completed)
	return nil
}

// step applies one instruction. f.PC already points past it.
func (v *VM) step(f *CallFrame, ins bytecode.Instruction) error {
	regs := f.Registers
	a := ins.A()
	switch op := ins.Op(); op {
	case bytecode.OpMove:
		regs[a] = regs[ins.B()]

	case bytecode.OpLoadNil:
		for i := 0; i < ins.B(); i++ {
			regs[a+i] = value.Nil()
		}

	case bytecode.OpLoadBool:
		regs[a] = value.Bool(ins.B() != 0)
		if ins.C() != 0 {
			f.PC++
		}

	case bytecode.OpLoadK:
		regs[a] = f.chunk().Constants[ins.Bx()]

	case bytecode.OpGetGlobal:
		c := f.Closure.globals[ins.Bx()]
		if !c.defined {
			return runtimeError(diag.RuntimeErrorUndefinedVariable, c.name)
		}
		regs[a] = c.value

	case bytecode.OpSetGlobal:
		v.globals.set(f.Closure.globals[ins.Bx()], regs[a])

	case bytecode.OpGetUpval:
		regs[a] = f.Closure.Upvalues[ins.B()].Get()

	case bytecode.OpGetElem:
		elem, err := value.Index(regs[ins.B()], f.rk(ins.C()))
		if err != nil {
			return err
		}
		regs[a] = elem

	case bytecode.OpSetElem:
		return value.SetIndex(regs[a], f.rk(ins.B()), f.rk(ins.C()))

	case bytecode.OpNewList, bytecode.OpNewTuple:
		b, n := ins.B(), ins.C()
		elems := make([]value.Value, n)
		copy(elems, regs[b:b+n])
		if op == bytecode.OpNewList {
			regs[a] = value.NewList(elems)
		} else {
			regs[a] = value.NewTuple(elems)
		}

	case bytecode.OpNewDict:
		d := value.NewDict()
		b := ins.B()
		for i := 0; i < ins.C(); i++ {
			if err := d.AsDict().Set(regs[b+2*i], regs[b+2*i+1]); err != nil {
				return err
			}
		}
		regs[a] = d

	case bytecode.OpAdd, bytecode.OpSub, bytecode.OpMul, bytecode.OpDiv,
		bytecode.OpFloorDiv, bytecode.OpPow, bytecode.OpMod:
		res, err := arith[op](f.rk(ins.B()), f.rk(ins.C()))
		if err != nil {
			return err
		}
		regs[a] = res

	case bytecode.OpUnm:
		res, err := value.Negate(f.rk(ins.B()))
		if err != nil {
			return err
		}
		regs[a] = res

	case bytecode.OpNot:
		regs[a] = value.Not(f.rk(ins.B()))

	case bytecode.OpEq, bytecode.OpLt, bytecode.OpLe, bytecode.OpIn:
		ok, err := compareOp(op, f.rk(ins.B()), f.rk(ins.C()))
		if err != nil {
			return err
		}
		if ok != (a != 0) {
			f.PC++
		}

	case bytecode.OpTest:
		if regs[a].Truthy() != (ins.B() != 0) {
			f.PC++
		}

	case bytecode.OpJmp:
		f.PC += ins.SBx()

	case bytecode.OpForPrep:
		regs[a+1] = value.Number(-1)
		f.PC += ins.SBx()

	case bytecode.OpForLoop:
		n, err := value.Len(regs[a])
		if err != nil {
			return err
		}
		idx, _ := value.ToNumber(regs[a+1])
		next := int(idx) + 1
		regs[a+1] = value.Number(float64(next))
		if next < n {
			elem, err := value.ElementAt(regs[a], next)
			if err != nil {
				return err
			}
			regs[a+2] = elem
			f.PC += ins.SBx()
		}

	case bytecode.OpCall:
		return v.call(f, a, ins.B())

	case bytecode.OpReturn:
		result := value.Nil()
		if ins.B() != 0 {
			result = regs[a]
		}
		v.ret(f, result)

	case bytecode.OpClosure:
		proto := f.chunk().Protos[ins.Bx()]
		cl := &Closure{
			Proto:    proto,
			Upvalues: make([]*Upvalue, len(proto.Upvalues)),
			globals:  f.Closure.globals,
		}
		for i, desc := range proto.Upvalues {
			if desc.InParent {
				cl.Upvalues[i] = f.capture(desc.Index)
			} else {
				cl.Upvalues[i] = f.Closure.Upvalues[desc.Index]
			}
		}
		regs[a] = value.NewFunction(cl)

	case bytecode.OpVisNotify:
		v.dispatch(f, f.chunk().Notifications[ins.Bx()])

	default:
		return runtimeError(diag.RuntimeErrorInvalidBytecode, "unknown opcode "+op.String())
	}
	return nil
}

// compareOp evaluates the raw result of a test opcode.
func compareOp(op bytecode.Opcode, lhs, rhs value.Value) (bool, error) {
	switch op {
	case bytecode.OpEq:
		return value.Equal(lhs, rhs), nil
	case bytecode.OpLt:
		return value.Less(lhs, rhs)
	case bytecode.OpLe:
		return value.LessEqual(lhs, rhs)
	default:
		return value.Contains(rhs, lhs)
	}
}

// ---------------------------------------------------------------------------
// Calls
// ---------------------------------------------------------------------------

func (v *VM) call(f *CallFrame, base, argc int) error {
	callee := f.Registers[base]
	if !callee.IsFunction() {
		return runtimeError(diag.RuntimeErrorNotCallable, callee.TypeName())
	}
	args := f.Registers[base+1 : base+1+argc]
	switch fn := callee.AsFunction().(type) {
	case *Native:
		res, err := fn.call(v, args)
		if err != nil {
			return err
		}
		f.Registers[base] = res
		return nil
	case *Closure:
		if argc != fn.Proto.ParamCount {
			return runtimeError(diag.RuntimeErrorArgumentCount, fn.Proto.Name, fn.Proto.ParamCount, argc)
		}
		if len(v.frames) >= v.maxCallDepth {
			return diag.New(diag.ReporterRuntime, diag.SeverityFatal, diag.RuntimeErrorStackOverflow, v.maxCallDepth)
		}
		frame := newFrame(fn, base)
		copy(frame.Registers, args)
		v.frames = append(v.frames, frame)
		return nil
	}
	return runtimeError(diag.RuntimeErrorNotCallable, callee.TypeName())
}

// ret pops f and delivers result to the caller.
func (v *VM) ret(f *CallFrame, result value.Value) {
	f.closeUpvalues()
	v.frames[len(v.frames)-1] = nil
	v.frames = v.frames[:len(v.frames)-1]
	if len(v.frames) > 0 {
		v.frames[len(v.frames)-1].Registers[f.Result] = result
	}
}

// fail ends the run with err attached to the failing instruction. Every
// runtime error aborts the whole run, so it is reported as fatal.
func (v *VM) fail(err error) error {
	var d *diag.Diagnostic
	if !errors.As(err, &d) {
		d = diag.New(diag.ReporterRuntime, diag.SeverityFatal, diag.GenericError, err)
	}
	if len(v.frames) > 0 {
		f := v.frames[len(v.frames)-1]
		d = d.At(f.chunk().RangeAt(f.PC))
		d.Module = f.chunk().Name
	} else {
		d = d.At(d.Range)
	}
	d.Severity = diag.SeverityFatal
	if v.diagnostics != nil {
		v.diagnostics.Report(d)
	}
	log.Errorf("%s", d.Error())
	v.terminate(Stopped)
	return d
}
