package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/seed/pkg/bytecode"
	"github.com/chazu/seed/pkg/compiler"
	"github.com/chazu/seed/pkg/diag"
	"github.com/chazu/seed/pkg/event"
	"github.com/chazu/seed/pkg/samples"
	"github.com/chazu/seed/pkg/store"
)

// chunkExt is the file extension of serialized chunks.
const chunkExt = ".sbc"

// listenRegistry returns a registry with a no-op listener for each kind, so
// the compiler emits notifications for them.
func listenRegistry(kinds []event.Kind) *event.Registry {
	reg := event.NewRegistry()
	for _, k := range kinds {
		reg.Register(k, func(event.Event, event.Inspector) {})
	}
	return reg
}

func (e *env) compileMode() compiler.Mode {
	mode, ok := compiler.ParseMode(e.cfg.Run.Mode)
	if !ok {
		return compiler.ModeScript
	}
	return mode
}

// compileSample compiles the named sample against reg.
func (e *env) compileSample(name string, reg *event.Registry) (*bytecode.Chunk, error) {
	s, ok := samples.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown sample %q", name)
	}
	chunk, err := compiler.Compile(s.Build(), compiler.Options{
		Mode:        e.compileMode(),
		Registry:    reg,
		Diagnostics: e.diags,
	})
	if err != nil {
		return nil, err
	}
	return chunk, nil
}

// loadChunk resolves ref as a chunk file, a sample name or a store hash, in
// that order. Samples are compiled against reg; files and stored chunks
// carry whatever notifications they were compiled with.
func (e *env) loadChunk(ref string, reg *event.Registry) (*bytecode.Chunk, error) {
	if data, err := os.ReadFile(ref); err == nil {
		chunk, err := bytecode.UnmarshalChunk(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ref, err)
		}
		return chunk, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if _, ok := samples.Lookup(ref); ok {
		return e.compileSample(ref, reg)
	}

	s, err := store.Open(e.cfg.StorePath())
	if err != nil {
		return nil, e.fail(diag.ReporterStore, err)
	}
	defer s.Close()
	chunk, err := s.Get(ref)
	if err != nil {
		return nil, e.fail(diag.ReporterStore, err)
	}
	return chunk, nil
}

func (e *env) handleSamplesCommand(args []string) error {
	fs := flag.NewFlagSet("samples", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	outDir := fs.String("o", "", "Write compiled samples to this directory")
	listen := fs.String("listen", "", "Event kinds to compile notifications for")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	kinds, err := event.ParseKinds(*listen)
	if err != nil {
		fmt.Fprintf(e.stderr, "Error: %v\n", err)
		return errUsage
	}

	if *outDir == "" {
		for _, s := range samples.All() {
			fmt.Fprintf(e.stdout, "%-12s %s\n", s.Name, s.Description)
		}
		return nil
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", *outDir, err)
	}
	reg := listenRegistry(kinds)
	for _, s := range samples.All() {
		chunk, err := e.compileSample(s.Name, reg)
		if err != nil {
			return err
		}
		data, err := bytecode.MarshalChunk(chunk)
		if err != nil {
			return err
		}
		path := filepath.Join(*outDir, s.Name+chunkExt)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Fprintf(e.stdout, "wrote %s (%d instructions, %d notifications)\n",
			path, chunk.InstructionCount(), countNotifications(chunk))
	}
	return nil
}

func countNotifications(chunk *bytecode.Chunk) int {
	n := len(chunk.Notifications)
	for _, p := range chunk.Protos {
		n += countNotifications(p)
	}
	return n
}

func (e *env) handleDisasmCommand(args []string) error {
	fs := flag.NewFlagSet("disasm", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	listen := fs.String("listen", "", "Event kinds to compile notifications for (samples only)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(e.stderr, "Usage: seed disasm [-listen KINDS] FILE|HASH|SAMPLE")
		return errUsage
	}
	kinds, err := event.ParseKinds(*listen)
	if err != nil {
		fmt.Fprintf(e.stderr, "Error: %v\n", err)
		return errUsage
	}
	chunk, err := e.loadChunk(fs.Arg(0), listenRegistry(kinds))
	if err != nil {
		return err
	}
	text := chunk.Disassemble()
	fmt.Fprint(e.stdout, text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Fprintln(e.stdout)
	}
	return nil
}
