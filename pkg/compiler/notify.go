package compiler

import (
	"github.com/chazu/seed/pkg/ast"
	"github.com/chazu/seed/pkg/bytecode"
	"github.com/chazu/seed/pkg/event"
	"github.com/chazu/seed/pkg/source"
)

// listening reports whether kind has a listener at compile time.
func (c *compiler) listening(kind event.Kind) bool {
	return c.opts.Registry.Has(kind)
}

// notify registers n and emits the VISNOTIFY that dispatches it.
func (c *compiler) notify(n bytecode.Notification) {
	idx := c.chunk().AddNotification(n)
	c.emitABx(bytecode.OpVisNotify, 0, idx, n.Range)
}

// step emits a SingleStep the first time a line is reached in the current
// function.
func (c *compiler) step(rng source.Range) {
	if !c.listening(event.KindSingleStep) {
		return
	}
	fs := c.res.fs
	if rng.Start.Line == fs.prevLine {
		return
	}
	fs.prevLine = rng.Start.Line
	c.notify(bytecode.Notification{Kind: event.KindSingleStep, Range: rng})
}

func nameOf(e ast.Expr) string {
	if id, ok := e.(*ast.Identifier); ok {
		return id.Name
	}
	return ""
}

func internal(name string) bool {
	return len(name) >= len(internalPrefix) && name[:len(internalPrefix)] == internalPrefix
}

func (c *compiler) notifyAssign(rng source.Range, name string, storage event.Storage, val int) {
	if !c.listening(event.KindAssignment) {
		return
	}
	c.notify(bytecode.Notification{
		Kind:    event.KindAssignment,
		Range:   rng,
		Name:    name,
		Storage: storage,
		Value:   val,
	})
}

// storageOf classifies a subscript container for its notification. Only
// locals of the current function report Local; upvalue-backed containers
// report Global.
func (c *compiler) storageOf(name string) event.Storage {
	if v := c.res.FindVariable(name); v.Kind == VarLocal {
		return event.Local
	}
	return event.Global
}

// vtagDescs builds the tag descriptors of a VTag. values, when non-nil,
// holds the registers of the evaluated arguments in tag order.
func vtagDescs(tags []ast.VTagInfo, values []int) []bytecode.TagDesc {
	out := make([]bytecode.TagDesc, len(tags))
	next := 0
	for i, t := range tags {
		d := bytecode.TagDesc{Name: t.Name}
		for _, a := range t.Args {
			d.Args = append(d.Args, a.Text)
			if values != nil {
				d.Values = append(d.Values, values[next])
				next++
			}
		}
		out[i] = d
	}
	return out
}
