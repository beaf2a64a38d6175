// Package debug builds line debugging and call profiling on top of the
// event registry. Both attach to a registry before chunks are compiled
// against it, so the notifications they need are compiled in.
package debug

import (
	"fmt"
	"sort"
	"sync"

	"github.com/chazu/seed/pkg/event"
	"github.com/chazu/seed/pkg/source"
)

// ---------------------------------------------------------------------------
// Debugger: breakpoints and stepping over SingleStep notifications
// ---------------------------------------------------------------------------

// StepMode indicates the current stepping mode.
type StepMode int

const (
	StepNone StepMode = iota
	StepOver
	StepInto
	StepOut
)

func (m StepMode) String() string {
	switch m {
	case StepOver:
		return "over"
	case StepInto:
		return "into"
	case StepOut:
		return "out"
	default:
		return "none"
	}
}

// StopEvent describes why the debugger paused a run.
type StopEvent struct {
	Reason string // "breakpoint" or "step"
	Range  source.Range
	Depth  int // call depth at the stop
}

func (e StopEvent) String() string {
	return fmt.Sprintf("%s at %s (depth %d)", e.Reason, e.Range, e.Depth)
}

// Debugger pauses a run at breakpoint lines or after a step. Call depth is
// tracked through FuncCalled and FuncReturned notifications.
type Debugger struct {
	mu          sync.Mutex
	breakpoints map[int]bool
	handles     []event.Handle
	reg         *event.Registry

	// Stepping state
	stepMode  StepMode
	stepDepth int
	depth     int

	last   *StopEvent
	OnStop func(StopEvent)
}

// NewDebugger creates a debugger with no breakpoints.
func NewDebugger() *Debugger {
	return &Debugger{breakpoints: make(map[int]bool)}
}

// Attach registers the debugger's listeners on reg. A debugger attaches to
// one registry at a time.
func (d *Debugger) Attach(reg *event.Registry) {
	d.Detach()
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reg = reg
	d.handles = []event.Handle{
		event.On(reg, d.onStep),
		event.On(reg, func(event.FuncCalled, event.Inspector) { d.enter() }),
		event.On(reg, func(event.FuncReturned, event.Inspector) { d.leave() }),
	}
}

// Detach removes the debugger's listeners.
func (d *Debugger) Detach() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, h := range d.handles {
		d.reg.Unregister(h)
	}
	d.handles = nil
	d.reg = nil
}

// Reset forgets stepping and depth state, keeping breakpoints. Call it
// before each new run.
func (d *Debugger) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stepMode = StepNone
	d.depth = 0
	d.last = nil
}

// SetBreakpoint sets a breakpoint on line.
func (d *Debugger) SetBreakpoint(line int) error {
	if line < 1 {
		return fmt.Errorf("invalid breakpoint line %d", line)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.breakpoints[line] = true
	return nil
}

// RemoveBreakpoint removes the breakpoint on line.
func (d *Debugger) RemoveBreakpoint(line int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.breakpoints[line]; !exists {
		return fmt.Errorf("no breakpoint at line %d", line)
	}
	delete(d.breakpoints, line)
	return nil
}

// DisableBreakpoint keeps a breakpoint without stopping at it.
func (d *Debugger) DisableBreakpoint(line int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.breakpoints[line]; !exists {
		return fmt.Errorf("no breakpoint at line %d", line)
	}
	d.breakpoints[line] = false
	return nil
}

// HasBreakpoint reports whether an enabled breakpoint is set on line.
func (d *Debugger) HasBreakpoint(line int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.breakpoints[line]
}

// Breakpoints returns the lines with breakpoints, sorted.
func (d *Debugger) Breakpoints() []int {
	d.mu.Lock()
	defer d.mu.Unlock()
	lines := make([]int, 0, len(d.breakpoints))
	for l := range d.breakpoints {
		lines = append(lines, l)
	}
	sort.Ints(lines)
	return lines
}

// Step arms stepping for the next resume. StepInto stops at the next line
// anywhere, StepOver at the next line not inside a deeper call, StepOut at
// the next line after the current function returns.
func (d *Debugger) Step(mode StepMode) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stepMode = mode
	d.stepDepth = d.depth
}

// LastStop returns the most recent stop.
func (d *Debugger) LastStop() (StopEvent, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.last == nil {
		return StopEvent{}, false
	}
	return *d.last, true
}

// Depth returns the current call depth.
func (d *Debugger) Depth() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.depth
}

func (d *Debugger) enter() {
	d.mu.Lock()
	d.depth++
	d.mu.Unlock()
}

func (d *Debugger) leave() {
	d.mu.Lock()
	if d.depth > 0 {
		d.depth--
	}
	d.mu.Unlock()
}

func (d *Debugger) onStep(ev event.SingleStep, in event.Inspector) {
	d.mu.Lock()
	reason := ""
	switch d.stepMode {
	case StepInto:
		reason = "step"
	case StepOver:
		if d.depth <= d.stepDepth {
			reason = "step"
		}
	case StepOut:
		if d.depth < d.stepDepth {
			reason = "step"
		}
	}
	if reason == "" && d.breakpoints[ev.Range.Start.Line] {
		reason = "breakpoint"
	}
	if reason == "" {
		d.mu.Unlock()
		return
	}
	d.stepMode = StepNone
	stop := StopEvent{Reason: reason, Range: ev.Range, Depth: d.depth}
	d.last = &stop
	onStop := d.OnStop
	d.mu.Unlock()

	if onStop != nil {
		onStop(stop)
	}
	_ = in.Pause()
}
