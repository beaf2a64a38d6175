package diag

import (
	"errors"
	"sync"
)

// Collection maintains a set of diagnostics. A session may keep one
// collection for everything or one per compile/run, as it prefers.
type Collection struct {
	mu          sync.Mutex
	diagnostics []*Diagnostic
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Report appends a diagnostic.
func (c *Collection) Report(d *Diagnostic) {
	c.mu.Lock()
	c.diagnostics = append(c.diagnostics, d)
	c.mu.Unlock()
}

// ReportError records err. Diagnostics are stored as-is; any other error is
// wrapped as an error-severity report from reporter. It returns false when
// err is nil.
func (c *Collection) ReportError(reporter Reporter, err error) bool {
	if err == nil {
		return false
	}
	var d *Diagnostic
	if !errors.As(err, &d) {
		d = New(reporter, SeverityError, GenericError, err)
	}
	c.Report(d)
	return true
}

// Diagnostics returns a snapshot of the reported diagnostics in order.
func (c *Collection) Diagnostics() []*Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Diagnostic, len(c.diagnostics))
	copy(out, c.diagnostics)
	return out
}

// HasErrors reports whether any diagnostic is an error or worse.
func (c *Collection) HasErrors() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range c.diagnostics {
		if d.Severity >= SeverityError {
			return true
		}
	}
	return false
}

// Len returns the number of diagnostics.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.diagnostics)
}
