package interaction

import (
	"github.com/dshills/collabboard/internal/board"
	"github.com/dshills/collabboard/internal/geometry"
)

// Project returns o as it should be drawn with the live preview applied.
// The board itself is never modified.
func (c *Controller) Project(o board.Object) board.Object {
	if p, ok := c.DragPreview(); ok && p.Has(o.Base().ID) {
		o = o.Translate(p.DX, p.DY)
	}
	if p, ok := c.ResizePreview(); ok && p.ID == o.Base().ID {
		if n, isNote := o.(board.Note); isNote {
			n.Width, n.Height = p.Width, p.Height
			o = n
		}
	}
	return o
}

// Objects returns the present objects in paint order with the preview
// applied.
func (c *Controller) Objects() []board.Object {
	objs := c.session.Board().Objects
	out := make([]board.Object, len(objs))
	for i, o := range objs {
		out[i] = c.Project(o)
	}
	return out
}

// Resolve maps a client point to the element under it, for drivers that do
// no hit testing of their own. The resize handle is only live on selected
// notes.
func (c *Controller) Resolve(client geometry.Point) Target {
	world := c.toWorld(client)
	b := c.session.Board()

	o, ok := board.HitTest(b, world)
	if !ok {
		return Target{Kind: TargetCanvas}
	}
	id := o.Base().ID
	if c.session.Selection().Has(id) {
		if handle, ok := board.ResizeHandle(o); ok && handle.Contains(world) {
			return Target{Kind: TargetResizeHandle, ID: id}
		}
	}
	return Target{Kind: TargetObject, ID: id}
}
