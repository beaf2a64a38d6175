package main

import (
	"bufio"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/chazu/seed/pkg/debug"
	"github.com/chazu/seed/pkg/event"
	"github.com/chazu/seed/pkg/vm"
)

// handleRunCommand processes the `seed run` subcommand.
// Usage:
//
//	seed run fib                       # run a sample
//	seed run -trace Binary,FuncCalled out/fib.sbc
//	seed run -break 4 sum              # pause whenever line 4 is entered
//	seed run -step 3f9a                # pause on every line of a stored chunk
//	seed run -profile fib              # print call and line counts
func (e *env) handleRunCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	trace := fs.String("trace", "", "Event kinds to print as they fire")
	step := fs.Bool("step", false, "Pause before every line and show variables")
	breaks := fs.String("break", "", "Comma separated lines to pause at")
	profile := fs.Bool("profile", false, "Print call and line counts when the run ends")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(e.stderr, "Usage: seed run [-trace KINDS] [-step] [-break LINES] [-profile] FILE|HASH|SAMPLE")
		return errUsage
	}
	kinds, err := event.ParseKinds(*trace)
	if err != nil {
		fmt.Fprintf(e.stderr, "Error: %v\n", err)
		return errUsage
	}
	lines, err := parseLines(*breaks)
	if err != nil {
		fmt.Fprintf(e.stderr, "Error: %v\n", err)
		return errUsage
	}

	reg := event.NewRegistry()
	for _, k := range kinds {
		reg.Register(k, func(ev event.Event, _ event.Inspector) {
			fmt.Fprintf(e.stderr, "trace: %s\n", ev)
		})
	}

	var dbg *debug.Debugger
	if *step || len(lines) > 0 {
		dbg = debug.NewDebugger()
		for _, l := range lines {
			_ = dbg.SetBreakpoint(l)
		}
		dbg.OnStop = func(s debug.StopEvent) { fmt.Fprintf(e.stderr, "%s\n", s) }
		dbg.Attach(reg)
		if *step {
			dbg.Step(debug.StepInto)
		}
	}
	var prof *debug.Profiler
	if *profile {
		prof = debug.NewProfiler()
		prof.Attach(reg)
	}

	chunk, err := e.loadChunk(fs.Arg(0), reg)
	if err != nil {
		return err
	}

	machine := vm.New(
		vm.WithRegistry(reg),
		vm.WithDiagnostics(e.diags),
		vm.WithStdout(e.stdout),
		vm.WithMaxCallDepth(e.cfg.Run.MaxCallDepth),
	)
	runErr := machine.Run(chunk)
	if runErr == nil {
		runErr = e.debugLoop(machine, dbg, *step)
	}
	if prof != nil {
		e.printProfile(prof)
	}
	log.Infof("%s finished in state %s", chunk.Name, machine.State())
	return runErr
}

// debugLoop prompts on stdin while the run is paused.
func (e *env) debugLoop(machine *vm.VM, dbg *debug.Debugger, step bool) error {
	in := bufio.NewReader(e.stdin)
	for machine.State() == vm.Paused {
		e.printVariables(machine)
		fmt.Fprint(e.stderr, "-- paused [c]ontinue [s]tep [n]ext [o]ut [q]uit: ")
		line, readErr := in.ReadString('\n')
		cmd := strings.TrimSpace(line)
		if readErr != nil && cmd == "" {
			cmd = "q"
		}
		switch cmd {
		case "q":
			return machine.Stop()
		case "s":
			dbg.Step(debug.StepInto)
		case "n":
			dbg.Step(debug.StepOver)
		case "o":
			dbg.Step(debug.StepOut)
		default:
			if step {
				dbg.Step(debug.StepInto)
			}
		}
		if err := machine.Continue(); err != nil {
			return err
		}
	}
	return nil
}

func parseLines(list string) ([]int, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	var lines []int
	for _, part := range strings.Split(list, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid line %q", part)
		}
		lines = append(lines, n)
	}
	return lines, nil
}

func (e *env) printVariables(machine *vm.VM) {
	if locals, ok := machine.Locals(); ok && len(locals) > 0 {
		fmt.Fprintf(e.stderr, "  locals:  %s\n", formatVariables(locals))
	}
	if globals, ok := machine.Globals(); ok {
		fmt.Fprintf(e.stderr, "  globals: %s\n", formatVariables(globals))
	}
}

func formatVariables(vars []event.Variable) string {
	parts := make([]string, len(vars))
	for i, v := range vars {
		parts[i] = v.Name + "=" + v.Value.Repr()
	}
	return strings.Join(parts, " ")
}

func (e *env) printProfile(p *debug.Profiler) {
	stats := p.Stats()
	fmt.Fprintf(e.stderr, "profile: %d calls to %d functions, %d line entries\n",
		stats.Calls, stats.Functions, stats.LineEntries)
	for _, fp := range p.Functions() {
		hot := ""
		if fp.Hot {
			hot = " (hot)"
		}
		fmt.Fprintf(e.stderr, "  %-12s %8d%s\n", fp.Name, fp.Calls, hot)
	}
}
