// Package event defines the execution events observable while a chunk runs
// and the registry that delivers them to listeners.
package event

import (
	"fmt"
	"strings"

	"github.com/chazu/seed/pkg/ast"
	"github.com/chazu/seed/pkg/source"
	"github.com/chazu/seed/pkg/value"
)

// Event is implemented by every event payload.
type Event interface {
	Kind() Kind
	Where() source.Range
	String() string
}

// Storage says where an assigned variable lives.
type Storage int

const (
	Global Storage = iota
	Local
)

func (s Storage) String() string {
	if s == Local {
		return "Local"
	}
	return "Global"
}

// Target names an assigned variable.
type Target struct {
	Name    string
	Storage Storage
}

func (t Target) String() string { return fmt.Sprintf("%s:%s", t.Storage, t.Name) }

// Variable is one entry of a globals or locals snapshot.
type Variable struct {
	Name  string
	Value value.Value
}

// Operand is one side of an operator evaluation. Name is set when the
// operand was read directly from a variable.
type Operand struct {
	Name  string
	Value value.Value
}

func (o Operand) String() string {
	if o.Name != "" {
		return fmt.Sprintf("%s:%s", o.Name, o.Value.Repr())
	}
	return o.Value.Repr()
}

// Assignment fires after a value is stored into a variable.
type Assignment struct {
	Range  source.Range
	Target Target
	Value  value.Value
}

func (Assignment) Kind() Kind            { return KindAssignment }
func (e Assignment) Where() source.Range { return e.Range }
func (e Assignment) String() string {
	return fmt.Sprintf("%s %s = %s", e.Range, e.Target, e.Value.Repr())
}

// SubscriptAssignment fires after an element of a container variable is set.
type SubscriptAssignment struct {
	Range     source.Range
	Container Target
	Key       value.Value
	Value     value.Value
}

func (SubscriptAssignment) Kind() Kind            { return KindSubscriptAssignment }
func (e SubscriptAssignment) Where() source.Range { return e.Range }
func (e SubscriptAssignment) String() string {
	return fmt.Sprintf("%s %s[%s] = %s", e.Range, e.Container, e.Key.Repr(), e.Value.Repr())
}

// Binary fires after an arithmetic operator is evaluated.
type Binary struct {
	Range  source.Range
	Left   Operand
	Op     ast.BinaryOperator
	Right  Operand
	Result value.Value
}

func (Binary) Kind() Kind            { return KindBinary }
func (e Binary) Where() source.Range { return e.Range }
func (e Binary) String() string {
	return fmt.Sprintf("%s %s %s %s = %s", e.Range, e.Left, e.Op, e.Right, e.Result.Repr())
}

// Unary fires after a unary operator is evaluated.
type Unary struct {
	Range  source.Range
	Op     ast.UnaryOperator
	Value  Operand
	Result value.Value
}

func (Unary) Kind() Kind            { return KindUnary }
func (e Unary) Where() source.Range { return e.Range }
func (e Unary) String() string {
	return fmt.Sprintf("%s %s %s = %s", e.Range, e.Op, e.Value, e.Result.Repr())
}

// Comparison fires when one link of a comparison chain is evaluated. Links
// skipped by short-circuiting fire nothing.
type Comparison struct {
	Range  source.Range
	Left   Operand
	Op     ast.ComparisonOperator
	Right  Operand
	Result bool
}

func (Comparison) Kind() Kind            { return KindComparison }
func (e Comparison) Where() source.Range { return e.Range }
func (e Comparison) String() string {
	return fmt.Sprintf("%s %s %s %s = %s", e.Range, e.Left, e.Op, e.Right, value.Bool(e.Result))
}

// FuncCalled fires before a user function is entered.
type FuncCalled struct {
	Range source.Range
	Name  string
	Args  []value.Value
}

func (FuncCalled) Kind() Kind            { return KindFuncCalled }
func (e FuncCalled) Where() source.Range { return e.Range }
func (e FuncCalled) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.Repr()
	}
	return fmt.Sprintf("%s FuncCalled: %s(%s)", e.Range, e.Name, strings.Join(args, ", "))
}

// FuncReturned fires after a user function returns to its caller.
type FuncReturned struct {
	Range  source.Range
	Name   string
	Result value.Value
}

func (FuncReturned) Kind() Kind            { return KindFuncReturned }
func (e FuncReturned) Where() source.Range { return e.Range }
func (e FuncReturned) String() string {
	return fmt.Sprintf("%s FuncReturned: %s %s", e.Range, e.Name, e.Result.Repr())
}

// SingleStep fires before the first instruction of each source line.
type SingleStep struct {
	Range source.Range
}

func (SingleStep) Kind() Kind            { return KindSingleStep }
func (e SingleStep) Where() source.Range { return e.Range }
func (e SingleStep) String() string      { return fmt.Sprintf("%s SingleStep", e.Range) }

// VTag describes one tag of a tagged region. Args holds the argument source
// texts; Values is filled on exit with the evaluated arguments.
type VTag struct {
	Name   string
	Args   []string
	Values []value.Value
}

func (t VTag) String() string {
	if t.Values == nil {
		return fmt.Sprintf("%s(%s)", t.Name, strings.Join(t.Args, ","))
	}
	vals := make([]string, len(t.Values))
	for i, v := range t.Values {
		vals[i] = v.Repr()
	}
	return fmt.Sprintf("%s(%s)", t.Name, strings.Join(vals, ","))
}

func joinTags(tags []VTag) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = t.String()
	}
	return strings.Join(parts, ",")
}

// VTagEntered fires when a tagged region is entered.
type VTagEntered struct {
	Range source.Range
	Tags  []VTag
}

func (VTagEntered) Kind() Kind            { return KindVTagEntered }
func (e VTagEntered) Where() source.Range { return e.Range }
func (e VTagEntered) String() string {
	return fmt.Sprintf("%s VTagEntered: %s", e.Range, joinTags(e.Tags))
}

// VTagExited fires when a tagged region is left.
type VTagExited struct {
	Range source.Range
	Tags  []VTag
}

func (VTagExited) Kind() Kind            { return KindVTagExited }
func (e VTagExited) Where() source.Range { return e.Range }
func (e VTagExited) String() string {
	return fmt.Sprintf("%s VTagExited: %s", e.Range, joinTags(e.Tags))
}
