package compiler

import (
	"github.com/tliron/commonlog"

	"github.com/chazu/seed/pkg/bytecode"
)

var log = commonlog.GetLogger("seed.compiler")

func logChunk(c *bytecode.Chunk) {
	log.Debugf("compiled %s: %d instructions, %d registers, %d constants, %d notifications, %d functions",
		c.Name, len(c.Code), c.RegisterCount, len(c.Constants), len(c.Notifications), len(c.Protos))
	for _, p := range c.Protos {
		logChunk(p)
	}
}
