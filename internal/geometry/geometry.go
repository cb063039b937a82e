// Package geometry provides the coordinate math shared by the board engine.
//
// All functions are pure. World space is the fixed coordinate system object
// geometry is stored in; screen (client) space is pixel coordinates as
// reported by the input device.
package geometry

import "math"

// GridSize is the snap-to-grid step in world units.
const GridSize = 16.0

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.MaxX() && p.Y >= r.Y && p.Y <= r.MaxY()
}

// Inset grows (negative pad) or shrinks (positive pad) r on every side.
func (r Rect) Inset(pad float64) Rect {
	return Rect{
		X:      r.X + pad,
		Y:      r.Y + pad,
		Width:  r.Width - 2*pad,
		Height: r.Height - 2*pad,
	}
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// Snap rounds v to the nearest multiple of step.
// A non-positive step uses GridSize.
func Snap(v, step float64) float64 {
	if step <= 0 {
		step = GridSize
	}
	s := math.Round(v/step) * step
	if s == 0 {
		// Avoid handing out negative zero.
		return 0
	}
	return s
}

// SnapPoint snaps both axes of p to step.
func SnapPoint(p Point, step float64) Point {
	return Point{X: Snap(p.X, step), Y: Snap(p.Y, step)}
}

// ScreenToWorld maps a client point to world space given the container
// origin, the viewport pan, and zoom.
func ScreenToWorld(client, origin, pan Point, zoom float64) Point {
	return Point{
		X: (client.X - origin.X - pan.X) / zoom,
		Y: (client.Y - origin.Y - pan.Y) / zoom,
	}
}

// WorldToScreen is the inverse of ScreenToWorld.
func WorldToScreen(world, origin, pan Point, zoom float64) Point {
	return Point{
		X: world.X*zoom + pan.X + origin.X,
		Y: world.Y*zoom + pan.Y + origin.Y,
	}
}
