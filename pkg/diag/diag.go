// Package diag carries compile-time, run-time and control-surface failures
// through one structured report type so hosts can display them uniformly.
package diag

import (
	"errors"
	"fmt"

	"github.com/chazu/seed/pkg/source"
)

// Severity orders diagnostics from informational to fatal.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "Info"
	case SeverityWarning:
		return "Warning"
	case SeverityError:
		return "Error"
	case SeverityFatal:
		return "Fatal"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Reporter names the subsystem that produced a diagnostic.
type Reporter string

const (
	ReporterCompiler Reporter = "SeedCompiler"
	ReporterRuntime  Reporter = "SeedRuntime"
	ReporterVM       Reporter = "SeedVM"
	ReporterStore    Reporter = "SeedStore"
)

// Diagnostic is a single structured report. It implements error so that it
// can travel through ordinary Go error returns.
type Diagnostic struct {
	Reporter  Reporter
	Severity  Severity
	Module    string
	MessageID MessageID
	Range     source.Range
	Args      []any
}

// New creates a diagnostic without a source range.
func New(reporter Reporter, severity Severity, id MessageID, args ...any) *Diagnostic {
	return &Diagnostic{Reporter: reporter, Severity: severity, MessageID: id, Args: args}
}

// At returns a copy of d attached to r.
func (d *Diagnostic) At(r source.Range) *Diagnostic {
	c := *d
	c.Range = r
	return &c
}

// Message renders the message id with its arguments.
func (d *Diagnostic) Message() string {
	return d.MessageID.Format(d.Args...)
}

func (d *Diagnostic) Error() string {
	if d.Range.IsEmpty() {
		return fmt.Sprintf("%s %s: %s", d.Reporter, d.Severity, d.Message())
	}
	return fmt.Sprintf("%s %s %s: %s", d.Range, d.Reporter, d.Severity, d.Message())
}

// Is matches diagnostics by message id, so errors.Is(err, diag.New(..., id))
// holds for any diagnostic carrying id.
func (d *Diagnostic) Is(target error) bool {
	var t *Diagnostic
	if !errors.As(target, &t) {
		return false
	}
	return d.MessageID == t.MessageID
}

// MessageOf returns the message id of err if it is (or wraps) a diagnostic.
func MessageOf(err error) (MessageID, bool) {
	var d *Diagnostic
	if errors.As(err, &d) {
		return d.MessageID, true
	}
	return "", false
}
