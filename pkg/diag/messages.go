package diag

import "fmt"

// MessageID identifies a diagnostic message. Hosts may localize messages by
// id; the defaults below are used when no catalog is installed.
type MessageID string

const (
	CompileErrorTooManyRegisters  MessageID = "CompileErrorTooManyRegisters"
	CompileErrorTooManyConstants  MessageID = "CompileErrorTooManyConstants"
	CompileErrorInvalidTarget     MessageID = "CompileErrorInvalidAssignTarget"
	CompileErrorAssignCount       MessageID = "CompileErrorAssignCount"
	CompileErrorTooManyOperands   MessageID = "CompileErrorTooManyOperands"
	CompileErrorReturnOutsideFunc MessageID = "CompileErrorReturnOutsideFunc"
	CompileErrorEmptyProgram      MessageID = "CompileErrorEmptyProgram"

	RuntimeErrorDivideByZero        MessageID = "RuntimeErrorDivideByZero"
	RuntimeErrorOverflow            MessageID = "RuntimeErrorOverflow"
	RuntimeErrorUnsupportedOperands MessageID = "RuntimeErrorUnsupportedOperands"
	RuntimeErrorBadUnaryOperand     MessageID = "RuntimeErrorBadUnaryOperand"
	RuntimeErrorNotCallable         MessageID = "RuntimeErrorNotCallable"
	RuntimeErrorBadArgument         MessageID = "RuntimeErrorBadArgument"
	RuntimeErrorArgumentCount       MessageID = "RuntimeErrorArgumentCount"
	RuntimeErrorOutOfRange          MessageID = "RuntimeErrorOutOfRange"
	RuntimeErrorInvalidIndex        MessageID = "RuntimeErrorInvalidIndex"
	RuntimeErrorNoKey               MessageID = "RuntimeErrorNoKey"
	RuntimeErrorUnhashable          MessageID = "RuntimeErrorUnhashable"
	RuntimeErrorNotSubscriptable    MessageID = "RuntimeErrorNotSubscriptable"
	RuntimeErrorNotSupportAssign    MessageID = "RuntimeErrorNotSupportAssignment"
	RuntimeErrorNotIterable         MessageID = "RuntimeErrorNotIterable"
	RuntimeErrorUnpackCount         MessageID = "RuntimeErrorUnpackCount"
	RuntimeErrorStackOverflow       MessageID = "RuntimeErrorStackOverflow"
	RuntimeErrorUndefinedVariable   MessageID = "RuntimeErrorUndefinedVariable"
	RuntimeErrorInvalidBytecode     MessageID = "RuntimeErrorInvalidBytecode"

	VMNotPaused        MessageID = "VMNotPaused"
	VMNotRunning       MessageID = "VMNotRunning"
	VMPauseOutsideHook MessageID = "VMPauseOutsideNotification"
	VMBusy             MessageID = "VMBusy"

	GenericError MessageID = "GenericError"
)

var defaultMessages = map[MessageID]string{
	CompileErrorTooManyRegisters:  "function %q needs more than %d registers",
	CompileErrorTooManyConstants:  "function %q has more than %d constants",
	CompileErrorInvalidTarget:     "cannot assign to %s",
	CompileErrorAssignCount:       "cannot assign %d values to %d targets",
	CompileErrorTooManyOperands:   "%s has more than %d elements",
	CompileErrorReturnOutsideFunc: "'return' outside function",
	CompileErrorEmptyProgram:      "program is empty",

	RuntimeErrorDivideByZero:        "division by zero",
	RuntimeErrorOverflow:            "numeric overflow",
	RuntimeErrorUnsupportedOperands: "unsupported operand types for %s: %s and %s",
	RuntimeErrorBadUnaryOperand:     "bad operand type for unary %s: %s",
	RuntimeErrorNotCallable:         "%s value is not callable",
	RuntimeErrorArgumentCount:       "%s expects %d arguments, got %d",
	RuntimeErrorBadArgument:         "%s() argument must be %s, not %s",
	RuntimeErrorOutOfRange:          "index %v out of range",
	RuntimeErrorInvalidIndex:        "%s indices must be integers, not %s",
	RuntimeErrorNoKey:               "key %s not found",
	RuntimeErrorUnhashable:          "unhashable type: %s",
	RuntimeErrorNotSubscriptable:    "%s value is not subscriptable",
	RuntimeErrorNotSupportAssign:    "%s does not support item assignment",
	RuntimeErrorNotIterable:         "%s value is not iterable",
	RuntimeErrorUnpackCount:         "expected %d values to unpack, got %d",
	RuntimeErrorStackOverflow:       "call depth exceeded %d",
	RuntimeErrorUndefinedVariable:   "name %q is not defined",
	RuntimeErrorInvalidBytecode:     "invalid bytecode: %s",

	VMNotPaused:        "execution is not paused",
	VMNotRunning:       "execution is not running",
	VMPauseOutsideHook: "pause can only be requested from a notification callback",
	VMBusy:             "a program is already running",

	GenericError: "%v",
}

// Format renders the default text for the id with args.
func (id MessageID) Format(args ...any) string {
	tmpl, ok := defaultMessages[id]
	if !ok {
		if len(args) == 0 {
			return string(id)
		}
		return fmt.Sprintf("%s %v", id, args)
	}
	return fmt.Sprintf(tmpl, args...)
}
