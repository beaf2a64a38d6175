// Seed CLI - compiles the built-in sample programs, inspects chunks and runs
// them with event tracing.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/seed/config"
	"github.com/chazu/seed/pkg/diag"
)

var log = commonlog.GetLogger("seed.cli")

// errUsage marks errors already explained by a usage message.
var errUsage = errors.New("usage")

// env is what every subcommand runs against.
type env struct {
	cfg    *config.Config
	diags  *diag.Collection
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	configDir := flag.String("config", ".", "Directory to start searching for seed.toml")
	verbosity := flag.Int("v", -1, "Log verbosity (overrides seed.toml when >= 0)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: seed [options] <command> [arguments]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nCommands:\n")
		fmt.Fprintf(os.Stderr, "  samples [-o DIR] [-listen KINDS]   List or compile the built-in samples\n")
		fmt.Fprintf(os.Stderr, "  disasm FILE|HASH|SAMPLE            Print a chunk's disassembly\n")
		fmt.Fprintf(os.Stderr, "  run [-trace KINDS] [-step] FILE|HASH|SAMPLE\n")
		fmt.Fprintf(os.Stderr, "                                     Run a chunk, printing traced events\n")
		fmt.Fprintf(os.Stderr, "  store put FILE...                  Add chunk files to the store\n")
		fmt.Fprintf(os.Stderr, "  store ls                           List stored chunks\n")
		fmt.Fprintf(os.Stderr, "  store rm HASH                      Remove a stored chunk\n")
		fmt.Fprintf(os.Stderr, "\nKINDS is a comma separated list of event kinds, or \"all\".\n")
	}
	flag.Parse()

	cfg, err := config.FindAndLoad(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if *verbosity >= 0 {
		cfg.Log.Verbosity = *verbosity
	}
	configureLogging(cfg.Log.Verbosity, cfg.LogFile())

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	e := &env{cfg: cfg, diags: diag.NewCollection(), stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	err = e.dispatch(args[0], args[1:])
	e.printDiagnostics()
	if err != nil && !errors.Is(err, errUsage) && e.diags.Len() == 0 {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	switch {
	case errors.Is(err, errUsage):
		os.Exit(2)
	case err != nil:
		os.Exit(1)
	}
}

func configureLogging(verbosity int, file string) {
	if file == "" {
		commonlog.Configure(verbosity, nil)
		return
	}
	commonlog.Configure(verbosity, &file)
}

func (e *env) dispatch(cmd string, args []string) error {
	log.Debugf("command %s %v", cmd, args)
	switch cmd {
	case "samples":
		return e.handleSamplesCommand(args)
	case "disasm":
		return e.handleDisasmCommand(args)
	case "run":
		return e.handleRunCommand(args)
	case "store":
		return e.handleStoreCommand(args)
	default:
		fmt.Fprintf(e.stderr, "Unknown command: %s\n", cmd)
		return errUsage
	}
}

// fail records err and returns it so handlers can `return e.fail(...)`.
func (e *env) fail(reporter diag.Reporter, err error) error {
	e.diags.ReportError(reporter, err)
	return err
}

func (e *env) printDiagnostics() {
	for _, d := range e.diags.Diagnostics() {
		fmt.Fprintln(e.stderr, d.Error())
	}
}
