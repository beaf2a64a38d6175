package ast

import "fmt"

// BinaryOperator is an arithmetic operator.
type BinaryOperator int

const (
	Add BinaryOperator = iota
	Subtract
	Multiply
	Divide
	FloorDivide
	Power
	Modulo
)

var binaryNames = [...]string{"Add", "Subtract", "Multiply", "Divide", "FloorDivide", "Power", "Modulo"}
var binarySymbols = [...]string{"+", "-", "*", "/", "//", "**", "%"}

func (op BinaryOperator) String() string {
	if int(op) < len(binaryNames) {
		return binaryNames[op]
	}
	return fmt.Sprintf("BinaryOperator(%d)", int(op))
}

// Symbol returns the source spelling of op.
func (op BinaryOperator) Symbol() string {
	if int(op) < len(binarySymbols) {
		return binarySymbols[op]
	}
	return "?"
}

// UnaryOperator is a prefix operator.
type UnaryOperator int

const (
	Positive UnaryOperator = iota
	Negative
	Not
)

var unaryNames = [...]string{"Positive", "Negative", "Not"}

func (op UnaryOperator) String() string {
	if int(op) < len(unaryNames) {
		return unaryNames[op]
	}
	return fmt.Sprintf("UnaryOperator(%d)", int(op))
}

// BooleanOperator joins the operands of a Boolean expression.
type BooleanOperator int

const (
	And BooleanOperator = iota
	Or
)

func (op BooleanOperator) String() string {
	switch op {
	case And:
		return "And"
	case Or:
		return "Or"
	}
	return fmt.Sprintf("BooleanOperator(%d)", int(op))
}

// ComparisonOperator is one link of a comparison chain.
type ComparisonOperator int

const (
	Less ComparisonOperator = iota
	Greater
	LessEqual
	GreaterEqual
	EqEqual
	NotEqual
	In
)

var comparisonNames = [...]string{"Less", "Greater", "LessEqual", "GreaterEqual", "EqEqual", "NotEqual", "In"}
var comparisonSymbols = [...]string{"<", ">", "<=", ">=", "==", "!=", "in"}

func (op ComparisonOperator) String() string {
	if int(op) < len(comparisonNames) {
		return comparisonNames[op]
	}
	return fmt.Sprintf("ComparisonOperator(%d)", int(op))
}

// Symbol returns the source spelling of op.
func (op ComparisonOperator) Symbol() string {
	if int(op) < len(comparisonSymbols) {
		return comparisonSymbols[op]
	}
	return "?"
}
