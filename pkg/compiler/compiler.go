// Package compiler translates a program AST into register bytecode.
//
// Each function (and the module body) compiles into its own chunk. Names
// resolve to registers, upvalues or global slots through a Resolver;
// constants are pooled per chunk by a ConstantCache. Notifications for the
// event kinds that have listeners in Options.Registry are compiled into the
// instruction stream as VISNOTIFY instructions; kinds nobody listens to cost
// nothing at run time.
package compiler

import (
	"github.com/chazu/seed/pkg/ast"
	"github.com/chazu/seed/pkg/bytecode"
	"github.com/chazu/seed/pkg/diag"
	"github.com/chazu/seed/pkg/event"
	"github.com/chazu/seed/pkg/source"
)

// Mode selects how module-level expression statements behave.
type Mode int

const (
	// ModeScript evaluates expression statements and discards the result.
	ModeScript Mode = iota
	// ModeInteractive echoes the value of each module-level expression
	// statement, except None.
	ModeInteractive
)

func (m Mode) String() string {
	if m == ModeInteractive {
		return "interactive"
	}
	return "script"
}

// ParseMode parses "script" or "interactive".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "script":
		return ModeScript, true
	case "interactive":
		return ModeInteractive, true
	}
	return ModeScript, false
}

// Options configures a compilation.
type Options struct {
	Mode Mode
	// Registry decides which notifications are compiled in. Listeners
	// registered after Compile returns are not seen by the chunk.
	Registry *event.Registry
	// Diagnostics, if set, receives every compile error.
	Diagnostics *diag.Collection
}

// internalPrefix marks helper functions that never produce call events.
const internalPrefix = "__"

// printHelper echoes values in interactive mode.
const printHelper = "__print__"

type compiler struct {
	opts    Options
	res     *Resolver
	globals *GlobalTable
	errs    []*diag.Diagnostic
}

// Compile compiles prog into its module chunk. Compile errors are reported
// to opts.Diagnostics and the first one is returned; the chunk is nil in
// that case.
func Compile(prog *ast.Program, opts Options) (*bytecode.Chunk, error) {
	c := &compiler{opts: opts, globals: NewGlobalTable()}
	c.res = NewResolver(c.globals, c.report)

	if prog == nil || prog.Body == nil {
		c.report(diag.New(diag.ReporterCompiler, diag.SeverityError, diag.CompileErrorEmptyProgram))
		return nil, c.errs[0]
	}

	name := prog.Name
	if name == "" {
		name = "<module>"
	}
	root := bytecode.NewChunk(name)
	c.res.BeginFuncScope(root, true)
	c.block(prog.Body)
	c.emitABC(bytecode.OpReturn, 0, 0, 0, endOf(prog.Body))
	c.res.EndFuncScope()
	root.Globals = c.globals.Names()

	if len(c.errs) > 0 {
		log.Debugf("compile of %s failed with %d errors", name, len(c.errs))
		return nil, c.errs[0]
	}
	if err := root.Validate(); err != nil {
		panic(internalf(source.Range{}, "%v", err))
	}
	logChunk(root)
	return root, nil
}

func (c *compiler) report(d *diag.Diagnostic) {
	c.errs = append(c.errs, d)
	if c.opts.Diagnostics != nil {
		c.opts.Diagnostics.Report(d)
	}
}

func (c *compiler) errorAt(rng source.Range, id diag.MessageID, args ...any) {
	c.report(diag.New(diag.ReporterCompiler, diag.SeverityError, id, args...).At(rng))
}

func (c *compiler) chunk() *bytecode.Chunk { return c.res.Chunk() }

func (c *compiler) emitABC(op bytecode.Opcode, a, b, cc int, rng source.Range) int {
	return c.chunk().EmitABC(op, a, b, cc, rng)
}

func (c *compiler) emitABx(op bytecode.Opcode, a, bx int, rng source.Range) int {
	return c.chunk().EmitABx(op, a, bx, rng)
}

func (c *compiler) temp() int { return c.res.DefineTempVariable() }

// loadK loads constant id into register dst.
func (c *compiler) loadK(dst, id int, rng source.Range) {
	idx := bytecode.ConstantIndex(id)
	if idx > bytecode.MaxBx {
		c.errorAt(rng, diag.CompileErrorTooManyConstants, c.chunk().Name, bytecode.MaxBx+1)
		idx = 0
	}
	c.emitABx(bytecode.OpLoadK, dst, idx, rng)
}

// target resolves name as an assignment target. Inside functions every
// assigned name was declared as a local on entry, so assigning to a name of
// an enclosing function binds a new local instead of the captured one.
func (c *compiler) target(name string, rng source.Range) Variable {
	if !c.res.InFunction() {
		return c.res.DefineVariable(name)
	}
	v := c.res.FindVariable(name)
	if v.Kind != VarLocal {
		panic(internalf(rng, "assignment target %q was not declared as a local", name))
	}
	return v
}

func endOf(n ast.Node) source.Range {
	r := n.Range()
	return source.Range{Start: r.End, End: r.End}
}
