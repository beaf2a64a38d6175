// Package vm executes compiled chunks.
//
// A VM owns its global variables and call stack. Execution is
// single-threaded and synchronous: Run returns when the program completes,
// fails, is stopped, or is paused by a listener. A paused run is resumed
// with Continue or abandoned with Stop.
package vm

import (
	"io"
	"os"

	"github.com/chazu/seed/pkg/bytecode"
	"github.com/chazu/seed/pkg/diag"
	"github.com/chazu/seed/pkg/event"
	"github.com/chazu/seed/pkg/value"
)

// State is the lifecycle state of a VM.
type State int

const (
	Ready State = iota
	Running
	Paused
	Stopped
	Completed
)

var stateNames = [...]string{"Ready", "Running", "Paused", "Stopped", "Completed"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}

// DefaultMaxCallDepth bounds the call stack when no limit is configured.
const DefaultMaxCallDepth = 256

// Option configures a VM.
type Option func(*config)

type config struct {
	registry     *event.Registry
	diagnostics  *diag.Collection
	stdout       io.Writer
	maxCallDepth int
}

// WithRegistry sets the registry notifications are dispatched through. It
// should be the registry the chunks were compiled against.
func WithRegistry(r *event.Registry) Option {
	return func(c *config) { c.registry = r }
}

// WithDiagnostics makes the VM report runtime and control errors to d in
// addition to returning them.
func WithDiagnostics(d *diag.Collection) Option {
	return func(c *config) { c.diagnostics = d }
}

// WithStdout redirects program output.
func WithStdout(w io.Writer) Option {
	return func(c *config) { c.stdout = w }
}

// WithMaxCallDepth bounds the number of active frames.
func WithMaxCallDepth(n int) Option {
	return func(c *config) { c.maxCallDepth = n }
}

// VM is a register virtual machine.
type VM struct {
	registry     *event.Registry
	diagnostics  *diag.Collection
	stdout       io.Writer
	maxCallDepth int

	globals *globalTable
	frames  []*CallFrame
	state   State

	// Set while listeners run; see dispatch.
	dispatching    bool
	pauseRequested bool
	stopRequested  bool
}

// New creates a VM with the built-in functions defined.
func New(opts ...Option) *VM {
	cfg := &config{
		stdout:       os.Stdout,
		maxCallDepth: DefaultMaxCallDepth,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.maxCallDepth <= 0 {
		cfg.maxCallDepth = DefaultMaxCallDepth
	}
	v := &VM{
		registry:     cfg.registry,
		diagnostics:  cfg.diagnostics,
		stdout:       cfg.stdout,
		maxCallDepth: cfg.maxCallDepth,
		globals:      newGlobalTable(),
	}
	for _, n := range natives {
		v.globals.defineNative(n)
	}
	return v
}

// State returns the current lifecycle state.
func (v *VM) State() State { return v.state }

// RedirectStdout sends program output to w.
func (v *VM) RedirectStdout(w io.Writer) { v.stdout = w }

// Registry returns the registry notifications are dispatched through.
func (v *VM) Registry() *event.Registry { return v.registry }

// LookupGlobal returns the value of a defined global.
func (v *VM) LookupGlobal(name string) (value.Value, bool) {
	return v.globals.lookup(name)
}

// DefineGlobal binds a global before a run.
func (v *VM) DefineGlobal(name string, val value.Value) {
	v.globals.define(name, val)
}

// Run executes chunk as a module. Globals defined by earlier runs remain
// visible. It returns nil when the run completes, is paused or is stopped
// by a listener, and the runtime diagnostic when it fails.
func (v *VM) Run(chunk *bytecode.Chunk) error {
	if v.state == Running || v.state == Paused {
		return v.control(diag.VMBusy)
	}
	if err := chunk.Validate(); err != nil {
		return v.fail(runtimeError(diag.RuntimeErrorInvalidBytecode, err.Error()))
	}
	module := &Closure{Proto: chunk, globals: v.globals.link(chunk.Globals)}
	v.frames = append(v.frames[:0], newFrame(module, 0))
	v.pauseRequested, v.stopRequested = false, false
	v.setState(Running)
	return v.execute()
}

// Continue resumes a paused run. When the VM is not paused it reports a
// diagnostic and does nothing.
func (v *VM) Continue() error {
	if v.state != Paused {
		return v.control(diag.VMNotPaused)
	}
	v.setState(Running)
	return v.execute()
}

// Stop ends a paused run for good. Called from a listener it ends the run
// once the listener returns. Otherwise it reports a diagnostic and does
// nothing.
func (v *VM) Stop() error {
	if v.dispatching {
		v.stopRequested = true
		return nil
	}
	if v.state != Paused {
		return v.control(diag.VMNotPaused)
	}
	v.terminate(Stopped)
	return nil
}

// Pause suspends the run once the current notification has been
// delivered. It may only be called from a listener.
func (v *VM) Pause() error {
	if !v.dispatching {
		return v.control(diag.VMPauseOutsideHook)
	}
	v.pauseRequested = true
	return nil
}

// Globals returns the user globals in definition order. The snapshot is
// only available while paused or while a listener runs.
func (v *VM) Globals() ([]event.Variable, bool) {
	if !v.inspectable() {
		return nil, false
	}
	return v.globals.snapshot(), true
}

// Locals returns the named locals of the innermost frame. It is only
// available while paused or while a listener runs.
func (v *VM) Locals() ([]event.Variable, bool) {
	if !v.inspectable() || len(v.frames) == 0 {
		return nil, false
	}
	f := v.frames[len(v.frames)-1]
	live := f.chunk().LocalsAt(f.PC)
	out := make([]event.Variable, 0, len(live))
	for _, l := range live {
		out = append(out, event.Variable{Name: l.Name, Value: f.Registers[l.Register]})
	}
	return out, true
}

// CallDepth returns the number of active frames.
func (v *VM) CallDepth() int { return len(v.frames) }

func (v *VM) inspectable() bool {
	return v.dispatching || v.state == Paused
}

func (v *VM) setState(s State) {
	if v.state != s {
		log.Debugf("state %s -> %s", v.state, s)
		v.state = s
	}
}

// terminate unwinds every frame and enters s.
func (v *VM) terminate(s State) {
	for i := len(v.frames) - 1; i >= 0; i-- {
		v.frames[i].closeUpvalues()
		v.frames[i] = nil
	}
	v.frames = v.frames[:0]
	v.setState(s)
}

// control builds a control-surface diagnostic.
func (v *VM) control(id diag.MessageID) error {
	d := diag.New(diag.ReporterVM, diag.SeverityWarning, id)
	if v.diagnostics != nil {
		v.diagnostics.Report(d)
	}
	log.Debugf("%s in state %s", d.Message(), v.state)
	return d
}
