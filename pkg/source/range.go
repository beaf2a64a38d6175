// Package source describes positions and ranges in program text.
package source

import "fmt"

// Position is a 1-based line and 0-based column in a source file.
type Position struct {
	Line   int `cbor:"1,keyasint"`
	Column int `cbor:"2,keyasint"`
}

// Range is an inclusive span of source text. The zero Range is empty and is
// used when a node or diagnostic cannot be tied to a location.
type Range struct {
	Start Position `cbor:"1,keyasint"`
	End   Position `cbor:"2,keyasint"`
}

// NewRange builds a range from line/column pairs.
func NewRange(startLine, startCol, endLine, endCol int) Range {
	return Range{
		Start: Position{Line: startLine, Column: startCol},
		End:   Position{Line: endLine, Column: endCol},
	}
}

// LineStart returns the empty range marking the beginning of line.
func LineStart(line int) Range {
	return NewRange(line, 0, line, 0)
}

// IsEmpty reports whether the range carries no location.
func (r Range) IsEmpty() bool {
	return r == Range{}
}

func (r Range) String() string {
	return fmt.Sprintf("[Ln %d, Col %d - Ln %d, Col %d]",
		r.Start.Line, r.Start.Column, r.End.Line, r.End.Column)
}
