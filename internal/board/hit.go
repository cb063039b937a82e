package board

import "github.com/dshills/collabboard/internal/geometry"

// Hit-test tuning, in world units.
const (
	ArrowHitPadding = 12.0
	HandleSize      = 16.0
	HandleInset     = 4.0
)

// HitTest returns the topmost object under the world point p.
// Arrows get a padded box so thin lines remain easy to grab.
func HitTest(b Board, p geometry.Point) (Object, bool) {
	for i := len(b.Objects) - 1; i >= 0; i-- {
		o := b.Objects[i]
		box := o.Bounds()
		if o.Kind() == KindArrow {
			box = box.Inset(-ArrowHitPadding)
		}
		if box.Contains(p) {
			return o, true
		}
	}
	return nil, false
}

// ResizeHandle returns the bottom-right resize affordance of a note.
// ok is false for shapes that cannot be resized interactively.
func ResizeHandle(o Object) (geometry.Rect, bool) {
	n, isNote := o.(Note)
	if !isNote {
		return geometry.Rect{}, false
	}
	return geometry.Rect{
		X:      n.X + n.Width - HandleInset - HandleSize,
		Y:      n.Y + n.Height - HandleInset - HandleSize,
		Width:  HandleSize,
		Height: HandleSize,
	}, true
}
