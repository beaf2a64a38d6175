package compiler

import (
	"math"

	"github.com/chazu/seed/pkg/bytecode"
	"github.com/chazu/seed/pkg/value"
)

// ConstantCache deduplicates the constants of one function. Numbers are
// compared bit for bit, so 0 and -0 get distinct entries; strings are
// compared by content.
type ConstantCache struct {
	chunk   *bytecode.Chunk
	numbers map[uint64]int
	strings map[string]int
}

// NewConstantCache returns a cache that appends to chunk's constant pool.
func NewConstantCache(chunk *bytecode.Chunk) *ConstantCache {
	return &ConstantCache{
		chunk:   chunk,
		numbers: make(map[uint64]int),
		strings: make(map[string]int),
	}
}

// IdOfNumber returns the constant id of f, adding it on first use.
func (cc *ConstantCache) IdOfNumber(f float64) int {
	bits := math.Float64bits(f)
	if id, ok := cc.numbers[bits]; ok {
		return id
	}
	id := cc.add(value.Number(f))
	cc.numbers[bits] = id
	return id
}

// IdOfString returns the constant id of s, adding it on first use.
func (cc *ConstantCache) IdOfString(s string) int {
	if id, ok := cc.strings[s]; ok {
		return id
	}
	id := cc.add(value.String(s))
	cc.strings[s] = id
	return id
}

// IdOf returns the constant id of a number or string value.
func (cc *ConstantCache) IdOf(v value.Value) int {
	if v.IsString() {
		return cc.IdOfString(v.AsString())
	}
	f, _ := value.ToNumber(v)
	return cc.IdOfNumber(f)
}

func (cc *ConstantCache) add(v value.Value) int {
	cc.chunk.Constants = append(cc.chunk.Constants, v)
	return bytecode.ConstantID(len(cc.chunk.Constants) - 1)
}
