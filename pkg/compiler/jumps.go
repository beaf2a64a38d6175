package compiler

import (
	"github.com/chazu/seed/pkg/bytecode"
	"github.com/chazu/seed/pkg/source"
)

// emitJump emits a JMP placeholder. Every placeholder stays open until
// patch resolves it; EndFuncScope rejects a function that still has one.
func (c *compiler) emitJump(rng source.Range) int {
	return c.openJump(bytecode.OpJmp, 0, rng)
}

func (c *compiler) openJump(op bytecode.Opcode, a int, rng source.Range) int {
	c.res.fs.openJumps++
	return c.chunk().EmitJump(op, a, rng)
}

// patch points every jump in pcs at target.
func (c *compiler) patch(pcs []int, target int) {
	chunk := c.res.Chunk()
	for _, pc := range pcs {
		if err := chunk.PatchJump(pc, target); err != nil {
			panic(internalf(chunk.RangeAt(pc), "%v", err))
		}
		c.res.fs.openJumps--
	}
}

// patchHere points every jump in pcs at the next instruction to be emitted.
func (c *compiler) patchHere(pcs []int) {
	c.patch(pcs, c.res.Chunk().CurrentPC())
}
