package debug

import (
	"sort"
	"sync"

	"github.com/chazu/seed/pkg/event"
)

// FunctionProfile holds profiling data for one function name.
type FunctionProfile struct {
	Name  string
	Calls uint64
	Hot   bool // True once Calls reached the hot threshold
}

// Profiler counts function calls and line executions.
type Profiler struct {
	mu      sync.Mutex
	funcs   map[string]*FunctionProfile
	lines   map[int]uint64
	handles []event.Handle
	reg     *event.Registry

	// HotThreshold is the call count at which a function becomes hot.
	HotThreshold uint64
	// OnHot is called once per function when it becomes hot.
	OnHot func(FunctionProfile)
}

// NewProfiler creates a profiler with the default threshold.
func NewProfiler() *Profiler {
	return &Profiler{
		funcs:        make(map[string]*FunctionProfile),
		lines:        make(map[int]uint64),
		HotThreshold: 100,
	}
}

// Attach registers the profiler's listeners on reg.
func (p *Profiler) Attach(reg *event.Registry) {
	p.Detach()
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reg = reg
	p.handles = []event.Handle{
		event.On(reg, func(ev event.FuncCalled, _ event.Inspector) { p.recordCall(ev.Name) }),
		event.On(reg, func(ev event.SingleStep, _ event.Inspector) { p.recordLine(ev.Range.Start.Line) }),
	}
}

// Detach removes the profiler's listeners.
func (p *Profiler) Detach() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, h := range p.handles {
		p.reg.Unregister(h)
	}
	p.handles = nil
	p.reg = nil
}

func (p *Profiler) recordCall(name string) {
	p.mu.Lock()
	fp, ok := p.funcs[name]
	if !ok {
		fp = &FunctionProfile{Name: name}
		p.funcs[name] = fp
	}
	fp.Calls++
	becameHot := !fp.Hot && p.HotThreshold > 0 && fp.Calls >= p.HotThreshold
	if becameHot {
		fp.Hot = true
	}
	snapshot, onHot := *fp, p.OnHot
	p.mu.Unlock()

	if becameHot && onHot != nil {
		onHot(snapshot)
	}
}

func (p *Profiler) recordLine(line int) {
	p.mu.Lock()
	p.lines[line]++
	p.mu.Unlock()
}

// Functions returns the function profiles, most called first.
func (p *Profiler) Functions() []FunctionProfile {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]FunctionProfile, 0, len(p.funcs))
	for _, fp := range p.funcs {
		out = append(out, *fp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Calls != out[j].Calls {
			return out[i].Calls > out[j].Calls
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// HotFunctions returns the names of hot functions, sorted.
func (p *Profiler) HotFunctions() []string {
	var hot []string
	for _, fp := range p.Functions() {
		if fp.Hot {
			hot = append(hot, fp.Name)
		}
	}
	sort.Strings(hot)
	return hot
}

// LineHits returns how many times each line was entered.
func (p *Profiler) LineHits() map[int]uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[int]uint64, len(p.lines))
	for l, n := range p.lines {
		out[l] = n
	}
	return out
}

// ProfilerStats holds aggregate profiling statistics.
type ProfilerStats struct {
	Functions    int    // Number of distinct functions called
	HotFunctions int    // Number of hot functions
	Calls        uint64 // Total calls
	LinesHit     int    // Number of distinct lines entered
	LineEntries  uint64 // Total line entries
}

// Stats returns aggregate profiling statistics.
func (p *Profiler) Stats() ProfilerStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	var stats ProfilerStats
	for _, fp := range p.funcs {
		stats.Functions++
		stats.Calls += fp.Calls
		if fp.Hot {
			stats.HotFunctions++
		}
	}
	for _, n := range p.lines {
		stats.LinesHit++
		stats.LineEntries += n
	}
	return stats
}

// Reset clears all collected data.
func (p *Profiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.funcs = make(map[string]*FunctionProfile)
	p.lines = make(map[int]uint64)
}
