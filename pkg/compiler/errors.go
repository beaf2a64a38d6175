package compiler

import (
	"fmt"

	"github.com/chazu/seed/pkg/source"
)

// InternalError reports a defect in the compiler itself, such as an AST node
// it does not know or a jump it cannot patch. Compile panics with it rather
// than returning it, since no input program should be able to cause one.
type InternalError struct {
	Range   source.Range
	Message string
}

func (e *InternalError) Error() string {
	if e.Range.IsEmpty() {
		return "internal compiler error: " + e.Message
	}
	return fmt.Sprintf("%s internal compiler error: %s", e.Range, e.Message)
}

func internalf(rng source.Range, format string, args ...any) *InternalError {
	return &InternalError{Range: rng, Message: fmt.Sprintf(format, args...)}
}
