package compiler

import (
	"github.com/chazu/seed/pkg/bytecode"
	"github.com/chazu/seed/pkg/diag"
	"github.com/chazu/seed/pkg/source"
)

// VarKind says where a resolved name lives.
type VarKind int

const (
	VarLocal   VarKind = iota // register of the current frame
	VarUpvalue                // captured from an enclosing function
	VarGlobal                 // global slot
)

func (k VarKind) String() string {
	switch k {
	case VarLocal:
		return "local"
	case VarUpvalue:
		return "upvalue"
	}
	return "global"
}

// Variable is the result of resolving a name. Index is a register, an
// upvalue index or a global slot depending on Kind.
type Variable struct {
	Name  string
	Kind  VarKind
	Index int
}

type scope struct {
	names map[string]int
	base  int
}

// funcState tracks one function being compiled.
type funcState struct {
	parent   *funcState
	chunk    *bytecode.Chunk
	consts   *ConstantCache
	scopes   []*scope
	next     int
	upvalues map[string]int
	prevLine int
	module   bool

	openJumps int
}

func (fs *funcState) lookupLocal(name string) (int, bool) {
	for i := len(fs.scopes) - 1; i >= 0; i-- {
		if reg, ok := fs.scopes[i].names[name]; ok {
			return reg, true
		}
	}
	return 0, false
}

// Resolver maps names to registers, upvalues and global slots across the
// functions being compiled. Registers are handed out in stack order: ending
// a scope releases every register allocated since it began.
type Resolver struct {
	fs      *funcState
	globals *GlobalTable
	report  func(*diag.Diagnostic)
}

// NewResolver returns a resolver that allocates global slots from globals
// and reports register exhaustion through report.
func NewResolver(globals *GlobalTable, report func(*diag.Diagnostic)) *Resolver {
	return &Resolver{globals: globals, report: report}
}

// BeginFuncScope starts compiling chunk. The module function resolves every
// name it defines to a global.
func (r *Resolver) BeginFuncScope(chunk *bytecode.Chunk, module bool) {
	r.fs = &funcState{
		parent:   r.fs,
		chunk:    chunk,
		consts:   NewConstantCache(chunk),
		scopes:   []*scope{{names: make(map[string]int)}},
		upvalues: make(map[string]int),
		prevLine: -1,
		module:   module,
	}
}

// EndFuncScope finishes the current function and closes the live ranges of
// its locals.
func (r *Resolver) EndFuncScope() {
	fs := r.fs
	if fs.openJumps != 0 {
		panic(internalf(source.Range{}, "%d unpatched jumps in %s", fs.openJumps, fs.chunk.Name))
	}
	end := len(fs.chunk.Code)
	for i := range fs.chunk.Locals {
		fs.chunk.Locals[i].EndPC = end
	}
	r.fs = fs.parent
}

// BeginExprScope opens a scope for temporaries.
func (r *Resolver) BeginExprScope() {
	r.fs.scopes = append(r.fs.scopes, &scope{names: make(map[string]int), base: r.fs.next})
}

// EndExprScope releases the registers allocated since the matching
// BeginExprScope.
func (r *Resolver) EndExprScope() {
	fs := r.fs
	top := fs.scopes[len(fs.scopes)-1]
	fs.scopes = fs.scopes[:len(fs.scopes)-1]
	fs.next = top.base
}

// DefineVariable binds name in the innermost scope. Inside a function it
// always allocates a fresh register, so shadowing is allowed; at module
// level the name becomes a global.
func (r *Resolver) DefineVariable(name string) Variable {
	fs := r.fs
	if fs.module {
		return Variable{Name: name, Kind: VarGlobal, Index: r.globals.Define(name)}
	}
	reg := r.alloc()
	fs.scopes[len(fs.scopes)-1].names[name] = reg
	fs.chunk.Locals = append(fs.chunk.Locals, bytecode.LocalVar{Name: name, Register: reg})
	return Variable{Name: name, Kind: VarLocal, Index: reg}
}

// DefineTempVariable allocates an unnamed register in the innermost scope.
func (r *Resolver) DefineTempVariable() int {
	return r.alloc()
}

// FindVariable resolves name: locals of the current function first, then
// captures from enclosing functions, then globals.
func (r *Resolver) FindVariable(name string) Variable {
	if reg, ok := r.fs.lookupLocal(name); ok {
		return Variable{Name: name, Kind: VarLocal, Index: reg}
	}
	if idx, ok := r.upvalue(r.fs, name); ok {
		return Variable{Name: name, Kind: VarUpvalue, Index: idx}
	}
	return Variable{Name: name, Kind: VarGlobal, Index: r.globals.Define(name)}
}

// upvalue returns the capture slot for name in fs, creating it (and any
// intermediate captures) on first reference.
func (r *Resolver) upvalue(fs *funcState, name string) (int, bool) {
	if idx, ok := fs.upvalues[name]; ok {
		return idx, true
	}
	parent := fs.parent
	if parent == nil || parent.module {
		return 0, false
	}
	desc := bytecode.UpvalueDesc{Name: name}
	if reg, ok := parent.lookupLocal(name); ok {
		desc.InParent = true
		desc.Index = reg
	} else if idx, ok := r.upvalue(parent, name); ok {
		desc.Index = idx
	} else {
		return 0, false
	}
	idx := len(fs.chunk.Upvalues)
	fs.chunk.Upvalues = append(fs.chunk.Upvalues, desc)
	fs.upvalues[name] = idx
	return idx, true
}

func (r *Resolver) alloc() int {
	fs := r.fs
	if fs.next >= bytecode.MaxRegisterCount {
		if fs.chunk.RegisterCount <= bytecode.MaxRegisterCount {
			r.report(diag.New(diag.ReporterCompiler, diag.SeverityError,
				diag.CompileErrorTooManyRegisters, fs.chunk.Name, bytecode.MaxRegisterCount))
			// Mark the function so the report happens once.
			fs.chunk.RegisterCount = bytecode.MaxRegisterCount + 1
		}
		return bytecode.MaxRegisterCount - 1
	}
	reg := fs.next
	fs.next++
	if fs.next > fs.chunk.RegisterCount {
		fs.chunk.RegisterCount = fs.next
	}
	return reg
}

// Constants returns the constant cache of the current function.
func (r *Resolver) Constants() *ConstantCache { return r.fs.consts }

// Chunk returns the chunk of the current function.
func (r *Resolver) Chunk() *bytecode.Chunk { return r.fs.chunk }

// InFunction reports whether a function body (not the module) is being
// compiled.
func (r *Resolver) InFunction() bool { return !r.fs.module }
