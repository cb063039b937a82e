package viewport

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/collabboard/internal/geometry"
)

func TestClampZoom(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1, 1},
		{0.1, MinZoom},
		{10, MaxZoom},
		{math.NaN(), 1},
		{math.Inf(1), MaxZoom},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampZoom(tt.in), "ClampZoom(%v)", tt.in)
	}
}

func TestWheelFactor(t *testing.T) {
	assert.Equal(t, WheelZoomOut, WheelFactor(120))
	assert.Equal(t, WheelZoomIn, WheelFactor(-120))
	assert.Equal(t, WheelZoomIn, WheelFactor(0))
}

func TestZoomAnchorLaw(t *testing.T) {
	starts := []Viewport{
		Default(),
		{Zoom: 1.7, Pan: geometry.Point{X: -320, Y: 45}},
		{Zoom: MinZoom, Pan: geometry.Point{X: 12.5, Y: 900}},
		{Zoom: MaxZoom, Pan: geometry.Point{X: 0, Y: -3}},
	}
	anchors := []geometry.Point{{X: 0, Y: 0}, {X: 400, Y: 300}, {X: 1279, Y: 17}}
	deltas := []float64{-100, 100}

	for _, v := range starts {
		for _, a := range anchors {
			for _, d := range deltas {
				before := v.ScreenToWorld(a)
				next := v.Wheel(a, d)
				after := next.ScreenToWorld(a)

				assert.InDelta(t, before.X, after.X, 1e-9)
				assert.InDelta(t, before.Y, after.Y, 1e-9)
				assert.GreaterOrEqual(t, next.Zoom, MinZoom)
				assert.LessOrEqual(t, next.Zoom, MaxZoom)
			}
		}
	}
}

func TestWheelDirection(t *testing.T) {
	v := Default()
	assert.InDelta(t, 0.92, v.Wheel(geometry.Point{}, 1).Zoom, 1e-12)
	assert.InDelta(t, 1.08, v.Wheel(geometry.Point{}, -1).Zoom, 1e-12)

	top := Viewport{Zoom: MaxZoom}
	assert.Equal(t, MaxZoom, top.Wheel(geometry.Point{X: 10, Y: 10}, -1).Zoom)
}

func TestZoomAroundCenter(t *testing.T) {
	v := Viewport{Zoom: 1, Pan: geometry.Point{X: 40, Y: -20}}
	center := geometry.Point{X: 400, Y: 300}

	before := v.ScreenToWorld(center)
	next := v.ZoomAroundCenter(800, 600, 2)
	after := next.ScreenToWorld(center)

	assert.Equal(t, 2.0, next.Zoom)
	assert.InDelta(t, before.X, after.X, 1e-9)
	assert.InDelta(t, before.Y, after.Y, 1e-9)
}

func TestScreenWorldRoundTrip(t *testing.T) {
	v := Viewport{Zoom: 1.25, Pan: geometry.Point{X: 100, Y: -50}}
	p := geometry.Point{X: 321, Y: 654}
	back := v.WorldToScreen(v.ScreenToWorld(p))
	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)
}

func TestWithZoomAndPan(t *testing.T) {
	v := Default().WithZoom(9).WithPan(geometry.Point{X: 1, Y: 2})
	assert.Equal(t, MaxZoom, v.Zoom)
	assert.True(t, v.Equal(Viewport{Zoom: MaxZoom, Pan: geometry.Point{X: 1, Y: 2}}))
}

func TestWithPanKeepsFiniteComponents(t *testing.T) {
	v := Default().WithPan(geometry.Point{X: 10, Y: 20})

	v = v.WithPan(geometry.Point{X: math.NaN(), Y: 30})
	assert.Equal(t, geometry.Point{X: 10, Y: 30}, v.Pan)

	v = v.WithPan(geometry.Point{X: -5, Y: math.Inf(1)})
	assert.Equal(t, geometry.Point{X: -5, Y: 30}, v.Pan)
}
