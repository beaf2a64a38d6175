package bytecode

import (
	"bytes"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/chazu/seed/pkg/source"
	"github.com/chazu/seed/pkg/value"
)

// Magic identifies serialized chunk files: "SBC1" (Seed ByteCode).
var Magic = []byte{'S', 'B', 'C', '1'}

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("bytecode: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

type constKind uint8

const (
	constNumber constKind = iota
	constString
	constNil
	constBool
)

type wireConstant struct {
	Kind constKind `cbor:"1,keyasint"`
	Num  float64   `cbor:"2,keyasint,omitempty"`
	Str  string    `cbor:"3,keyasint,omitempty"`
}

type wireChunk struct {
	Version       uint16         `cbor:"1,keyasint"`
	Name          string         `cbor:"2,keyasint"`
	ParamCount    int            `cbor:"3,keyasint"`
	RegisterCount int            `cbor:"4,keyasint"`
	Code          []uint32       `cbor:"5,keyasint"`
	Ranges        []source.Range `cbor:"6,keyasint"`
	Constants     []wireConstant `cbor:"7,keyasint,omitempty"`
	Notifications []Notification `cbor:"8,keyasint,omitempty"`
	Protos        []*wireChunk   `cbor:"9,keyasint,omitempty"`
	Upvalues      []wireUpvalue  `cbor:"10,keyasint,omitempty"`
	Locals        []wireLocal    `cbor:"11,keyasint,omitempty"`
	Globals       []string       `cbor:"12,keyasint,omitempty"`
}

type wireUpvalue struct {
	Name     string `cbor:"1,keyasint"`
	InParent bool   `cbor:"2,keyasint"`
	Index    int    `cbor:"3,keyasint"`
}

type wireLocal struct {
	Name     string `cbor:"1,keyasint"`
	Register int    `cbor:"2,keyasint"`
	StartPC  int    `cbor:"3,keyasint"`
	EndPC    int    `cbor:"4,keyasint"`
}

// MarshalChunk serializes a chunk tree to canonical CBOR prefixed with Magic.
// Equal chunks always produce identical bytes.
func MarshalChunk(c *Chunk) ([]byte, error) {
	w, err := toWire(c)
	if err != nil {
		return nil, err
	}
	body, err := cborEncMode.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("bytecode: marshal chunk: %w", err)
	}
	return append(append([]byte{}, Magic...), body...), nil
}

// UnmarshalChunk deserializes a chunk tree produced by MarshalChunk and
// validates it.
func UnmarshalChunk(data []byte) (*Chunk, error) {
	if !bytes.HasPrefix(data, Magic) {
		return nil, fmt.Errorf("bytecode: invalid magic")
	}
	var w wireChunk
	if err := cbor.Unmarshal(data[len(Magic):], &w); err != nil {
		return nil, fmt.Errorf("bytecode: unmarshal chunk: %w", err)
	}
	c, err := fromWire(&w)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("bytecode: invalid chunk: %w", err)
	}
	return c, nil
}

func toWire(c *Chunk) (*wireChunk, error) {
	w := &wireChunk{
		Version:       c.Version,
		Name:          c.Name,
		ParamCount:    c.ParamCount,
		RegisterCount: c.RegisterCount,
		Code:          make([]uint32, len(c.Code)),
		Ranges:        c.Ranges,
		Notifications: c.Notifications,
		Globals:       c.Globals,
	}
	for i, ins := range c.Code {
		w.Code[i] = uint32(ins)
	}
	for _, k := range c.Constants {
		switch {
		case k.IsNumber():
			n, _ := value.ToNumber(k)
			w.Constants = append(w.Constants, wireConstant{Kind: constNumber, Num: n})
		case k.IsString():
			w.Constants = append(w.Constants, wireConstant{Kind: constString, Str: k.AsString()})
		case k.IsNil():
			w.Constants = append(w.Constants, wireConstant{Kind: constNil})
		case k.IsBool():
			n, _ := value.ToNumber(k)
			w.Constants = append(w.Constants, wireConstant{Kind: constBool, Num: n})
		default:
			return nil, fmt.Errorf("bytecode: %s constant cannot be serialized", k.TypeName())
		}
	}
	for _, u := range c.Upvalues {
		w.Upvalues = append(w.Upvalues, wireUpvalue(u))
	}
	for _, l := range c.Locals {
		w.Locals = append(w.Locals, wireLocal(l))
	}
	for _, p := range c.Protos {
		pw, err := toWire(p)
		if err != nil {
			return nil, err
		}
		w.Protos = append(w.Protos, pw)
	}
	return w, nil
}

func fromWire(w *wireChunk) (*Chunk, error) {
	if w.Version > BytecodeVersion {
		return nil, fmt.Errorf("bytecode: version %d is newer than supported version %d", w.Version, BytecodeVersion)
	}
	c := &Chunk{
		Version:       w.Version,
		Name:          w.Name,
		ParamCount:    w.ParamCount,
		RegisterCount: w.RegisterCount,
		Code:          make([]Instruction, len(w.Code)),
		Ranges:        w.Ranges,
		Notifications: w.Notifications,
		Globals:       w.Globals,
	}
	for i, ins := range w.Code {
		c.Code[i] = Instruction(ins)
	}
	for _, k := range w.Constants {
		switch k.Kind {
		case constNumber:
			c.Constants = append(c.Constants, value.Number(k.Num))
		case constString:
			c.Constants = append(c.Constants, value.String(k.Str))
		case constNil:
			c.Constants = append(c.Constants, value.Nil())
		case constBool:
			c.Constants = append(c.Constants, value.Bool(k.Num != 0))
		default:
			return nil, fmt.Errorf("bytecode: unknown constant kind %d", k.Kind)
		}
	}
	for _, u := range w.Upvalues {
		c.Upvalues = append(c.Upvalues, UpvalueDesc(u))
	}
	for _, l := range w.Locals {
		c.Locals = append(c.Locals, LocalVar(l))
	}
	for _, pw := range w.Protos {
		p, err := fromWire(pw)
		if err != nil {
			return nil, err
		}
		c.Protos = append(c.Protos, p)
	}
	return c, nil
}
