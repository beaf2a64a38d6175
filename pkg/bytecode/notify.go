package bytecode

import (
	"github.com/chazu/seed/pkg/event"
	"github.com/chazu/seed/pkg/source"
)

// Notification is the static description of one event site. A VISNOTIFY
// instruction refers to it by index; the VM fills in run-time values from
// the operand ids recorded here.
//
// Operand use by kind:
//
//	Assignment           Name, Storage, Value
//	SubscriptAssignment  Name, Storage, Key, Value
//	Binary               Op, Left, Right, Result
//	Unary                Op, Left, Result
//	Comparison           Op, Left, Right
//	FuncCalled           Name, Func, Argc
//	FuncReturned         Name, Result
//	SingleStep           (range only)
//	VTagEntered          Tags (names and argument texts)
//	VTagExited           Tags (names, argument texts and value ids)
type Notification struct {
	Kind  event.Kind   `cbor:"1,keyasint"`
	Range source.Range `cbor:"2,keyasint"`

	Name    string        `cbor:"3,keyasint,omitempty"`
	Storage event.Storage `cbor:"4,keyasint,omitempty"`
	Op      int           `cbor:"5,keyasint,omitempty"`

	Left      int    `cbor:"6,keyasint,omitempty"`
	LeftName  string `cbor:"7,keyasint,omitempty"`
	Right     int    `cbor:"8,keyasint,omitempty"`
	RightName string `cbor:"9,keyasint,omitempty"`
	Result    int    `cbor:"10,keyasint,omitempty"`

	Key   int `cbor:"11,keyasint,omitempty"`
	Value int `cbor:"12,keyasint,omitempty"`
	Func  int `cbor:"13,keyasint,omitempty"`
	Argc  int `cbor:"14,keyasint,omitempty"`

	Tags []TagDesc `cbor:"15,keyasint,omitempty"`
}

// TagDesc describes one tag of a VTag region.
type TagDesc struct {
	Name   string   `cbor:"1,keyasint"`
	Args   []string `cbor:"2,keyasint,omitempty"`
	Values []int    `cbor:"3,keyasint,omitempty"`
}
