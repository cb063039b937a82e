// Package viewport maps between world and screen coordinates for a zoomable,
// pannable canvas. Viewport values are session state and are never stored
// in history.
package viewport

import (
	"math"

	"github.com/dshills/collabboard/internal/geometry"
)

// Zoom bounds.
const (
	MinZoom = 0.35
	MaxZoom = 2.5
)

// Wheel zoom factors.
const (
	WheelZoomOut = 0.92
	WheelZoomIn  = 1.08
)

// Toolbar zoom button factors.
const (
	StepZoomOut = 0.9
	StepZoomIn  = 1.1
)

// Viewport is a (zoom, pan) pair. Pan is the screen offset of the world
// origin relative to the container origin.
type Viewport struct {
	Zoom float64        `json:"zoom"`
	Pan  geometry.Point `json:"pan"`
}

// Default returns zoom 1 with no pan.
func Default() Viewport {
	return Viewport{Zoom: 1}
}

// ClampZoom limits z to [MinZoom, MaxZoom]. NaN maps to 1.
func ClampZoom(z float64) float64 {
	if math.IsNaN(z) {
		return 1
	}
	return geometry.Clamp(z, MinZoom, MaxZoom)
}

// WithZoom returns v with its zoom replaced by the clamped z.
func (v Viewport) WithZoom(z float64) Viewport {
	v.Zoom = ClampZoom(z)
	return v
}

// WithPan returns v with its pan replaced. A non-finite component keeps
// its previous value.
func (v Viewport) WithPan(p geometry.Point) Viewport {
	if finite(p.X) {
		v.Pan.X = p.X
	}
	if finite(p.Y) {
		v.Pan.Y = p.Y
	}
	return v
}

// ScreenToWorld maps a container-relative screen point to world space.
func (v Viewport) ScreenToWorld(p geometry.Point) geometry.Point {
	return geometry.ScreenToWorld(p, geometry.Point{}, v.Pan, v.zoom())
}

// WorldToScreen maps a world point to a container-relative screen point.
func (v Viewport) WorldToScreen(p geometry.Point) geometry.Point {
	return geometry.WorldToScreen(p, geometry.Point{}, v.Pan, v.zoom())
}

// ZoomAt changes the zoom while keeping the world point under the
// container-relative anchor fixed on screen.
func (v Viewport) ZoomAt(anchor geometry.Point, zoom float64) Viewport {
	world := v.ScreenToWorld(anchor)
	next := ClampZoom(zoom)
	return Viewport{
		Zoom: next,
		Pan: geometry.Point{
			X: anchor.X - world.X*next,
			Y: anchor.Y - world.Y*next,
		},
	}
}

// Wheel applies one wheel step at the anchor. Positive deltaY zooms out.
func (v Viewport) Wheel(anchor geometry.Point, deltaY float64) Viewport {
	return v.ZoomAt(anchor, v.zoom()*WheelFactor(deltaY))
}

// ZoomAroundCenter zooms keeping the center of a width×height container
// fixed.
func (v Viewport) ZoomAroundCenter(width, height, zoom float64) Viewport {
	return v.ZoomAt(geometry.Point{X: width / 2, Y: height / 2}, zoom)
}

// Equal reports whether both viewports have identical zoom and pan.
func (v Viewport) Equal(o Viewport) bool {
	return v.Zoom == o.Zoom && v.Pan == o.Pan
}

// WheelFactor returns the multiplier for one wheel step.
func WheelFactor(deltaY float64) float64 {
	if deltaY > 0 {
		return WheelZoomOut
	}
	return WheelZoomIn
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (v Viewport) zoom() float64 {
	if v.Zoom <= 0 {
		return 1
	}
	return v.Zoom
}
