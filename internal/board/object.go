package board

import (
	"math"
	"strconv"

	"github.com/dshills/collabboard/internal/geometry"
)

// Size and stroke bounds. Width and height apply to notes and rectangles.
const (
	MinWidth       = 140.0
	MaxWidth       = 960.0
	MinHeight      = 100.0
	MaxHeight      = 720.0
	MinStrokeWidth = 1.0
	MaxStrokeWidth = 12.0
)

// Object is a drawable shape. The set of implementations is closed:
// Note, Rect and Arrow.
type Object interface {
	// Kind returns the type tag.
	Kind() Kind

	// Base returns the fields shared by every shape.
	Base() Common

	// Bounds returns the axis-aligned world-space box of the shape.
	Bounds() geometry.Rect

	// Translate returns the shape moved by (dx, dy), every positional
	// field included.
	Translate(dx, dy float64) Object

	applyPatch(p Patch) (Object, bool)
	withBase(c Common) Object
}

// Common holds the fields every shape carries.
type Common struct {
	ID        string  `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Color     string  `json:"color"`
	CreatedAt int64   `json:"createdAt"`
	UpdatedAt int64   `json:"updatedAt"`
}

func (c Common) patchColor(p Patch) (Common, bool) {
	if p.Color == nil {
		return c, false
	}
	color, ok := NormalizeColor(*p.Color)
	if !ok || color == c.Color {
		return c, false
	}
	c.Color = color
	return c, true
}

// Note is a resizable sticky note.
type Note struct {
	Common
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Text   string  `json:"text"`
}

// Kind implements Object.
func (n Note) Kind() Kind { return KindNote }

// Base implements Object.
func (n Note) Base() Common { return n.Common }

// Bounds implements Object.
func (n Note) Bounds() geometry.Rect {
	return geometry.Rect{X: n.X, Y: n.Y, Width: n.Width, Height: n.Height}
}

// Translate implements Object.
func (n Note) Translate(dx, dy float64) Object {
	n.X += dx
	n.Y += dy
	return n
}

func (n Note) applyPatch(p Patch) (Object, bool) {
	var changed bool
	n.Common, changed = n.Common.patchColor(p)
	if p.Text != nil && *p.Text != n.Text {
		n.Text = *p.Text
		changed = true
	}
	var sized bool
	n.Width, n.Height, sized = patchSize(n.Width, n.Height, p)
	return n, changed || sized
}

func (n Note) withBase(c Common) Object {
	n.Common = c
	return n
}

// Rect is a resizable rectangle.
type Rect struct {
	Common
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Text   string  `json:"text"`
}

// Kind implements Object.
func (r Rect) Kind() Kind { return KindRect }

// Base implements Object.
func (r Rect) Base() Common { return r.Common }

// Bounds implements Object.
func (r Rect) Bounds() geometry.Rect {
	return geometry.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// Translate implements Object.
func (r Rect) Translate(dx, dy float64) Object {
	r.X += dx
	r.Y += dy
	return r
}

func (r Rect) applyPatch(p Patch) (Object, bool) {
	var changed bool
	r.Common, changed = r.Common.patchColor(p)
	if p.Text != nil && *p.Text != r.Text {
		r.Text = *p.Text
		changed = true
	}
	var sized bool
	r.Width, r.Height, sized = patchSize(r.Width, r.Height, p)
	return r, changed || sized
}

func (r Rect) withBase(c Common) Object {
	r.Common = c
	return r
}

// Arrow is a line from (X, Y) to (X2, Y2). Text is kept for round-tripping
// but is not drawn.
type Arrow struct {
	Common
	X2          float64 `json:"x2"`
	Y2          float64 `json:"y2"`
	StrokeWidth float64 `json:"strokeWidth"`
	Text        string  `json:"text"`
}

// Kind implements Object.
func (a Arrow) Kind() Kind { return KindArrow }

// Base implements Object.
func (a Arrow) Base() Common { return a.Common }

// Bounds implements Object. Width and height are floored to 1 so an
// axis-aligned arrow still has a hittable box.
func (a Arrow) Bounds() geometry.Rect {
	minX, maxX := math.Min(a.X, a.X2), math.Max(a.X, a.X2)
	minY, maxY := math.Min(a.Y, a.Y2), math.Max(a.Y, a.Y2)

	width := maxX - minX
	if width == 0 {
		width = 1
	}
	height := maxY - minY
	if height == 0 {
		height = 1
	}
	return geometry.Rect{X: minX, Y: minY, Width: width, Height: height}
}

// Translate implements Object. Both endpoints move.
func (a Arrow) Translate(dx, dy float64) Object {
	a.X += dx
	a.Y += dy
	a.X2 += dx
	a.Y2 += dy
	return a
}

func (a Arrow) applyPatch(p Patch) (Object, bool) {
	var changed bool
	a.Common, changed = a.Common.patchColor(p)
	if p.Text != nil && *p.Text != a.Text {
		a.Text = *p.Text
		changed = true
	}
	if p.StrokeWidth != nil && finite(*p.StrokeWidth) {
		w := ClampStrokeWidth(*p.StrokeWidth)
		if w != a.StrokeWidth {
			a.StrokeWidth = w
			changed = true
		}
	}
	return a, changed
}

func (a Arrow) withBase(c Common) Object {
	a.Common = c
	return a
}

// Start returns the tail of the arrow.
func (a Arrow) Start() geometry.Point { return geometry.Point{X: a.X, Y: a.Y} }

// End returns the head of the arrow.
func (a Arrow) End() geometry.Point { return geometry.Point{X: a.X2, Y: a.Y2} }

// ClampWidth limits a note/rect width to its bounds.
func ClampWidth(w float64) float64 { return geometry.Clamp(w, MinWidth, MaxWidth) }

// ClampHeight limits a note/rect height to its bounds.
func ClampHeight(h float64) float64 { return geometry.Clamp(h, MinHeight, MaxHeight) }

// ClampStrokeWidth limits an arrow stroke width to its bounds.
func ClampStrokeWidth(w float64) float64 {
	return geometry.Clamp(w, MinStrokeWidth, MaxStrokeWidth)
}

func patchSize(width, height float64, p Patch) (float64, float64, bool) {
	changed := false
	if p.Width != nil && finite(*p.Width) {
		if w := ClampWidth(*p.Width); w != width {
			width = w
			changed = true
		}
	}
	if p.Height != nil && finite(*p.Height) {
		if h := ClampHeight(*p.Height); h != height {
			height = h
			changed = true
		}
	}
	return width, height, changed
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Bounds returns the world-space box of o.
func Bounds(o Object) geometry.Rect {
	return o.Bounds()
}

// Translate moves o by (dx, dy), snapping the delta to the grid first when
// shouldSnap is set. A grid-aligned object therefore stays grid-aligned.
func Translate(o Object, dx, dy float64, shouldSnap bool) Object {
	if shouldSnap {
		dx = geometry.Snap(dx, geometry.GridSize)
		dy = geometry.Snap(dy, geometry.GridSize)
	}
	return o.Translate(dx, dy)
}

// Label returns the display label for the object at position index.
func Label(o Object, index int) string {
	return o.Kind().Title() + " " + strconv.Itoa(index+1)
}
