package interaction

import (
	"slices"

	"github.com/dshills/collabboard/internal/geometry"
)

// State is the controller's single capture slot. The set of
// implementations is closed: Idle, Panning, Dragging and Resizing.
type State interface {
	// Name returns the state name for logs and debugging.
	Name() string

	pointer() (int, bool)
}

// Idle means no gesture holds the capture.
type Idle struct{}

// Name implements State.
func (Idle) Name() string { return "idle" }

func (Idle) pointer() (int, bool) { return 0, false }

// Panning moves the viewport with the pointer.
type Panning struct {
	PointerID   int
	StartClient geometry.Point
	StartPan    geometry.Point
}

// Name implements State.
func (Panning) Name() string { return "panning" }

func (p Panning) pointer() (int, bool) { return p.PointerID, true }

// Dragging moves the working set with the pointer.
type Dragging struct {
	PointerID  int
	IDs        []string
	StartWorld geometry.Point

	preview *DragPreview
}

// Name implements State.
func (Dragging) Name() string { return "dragging" }

func (d Dragging) pointer() (int, bool) { return d.PointerID, true }

// Resizing changes a note's size with the pointer.
type Resizing struct {
	PointerID   int
	ID          string
	StartWorld  geometry.Point
	StartWidth  float64
	StartHeight float64

	preview *ResizePreview
}

// Name implements State.
func (Resizing) Name() string { return "resizing" }

func (r Resizing) pointer() (int, bool) { return r.PointerID, true }

// DragPreview is an uncommitted move of IDs by (DX, DY).
type DragPreview struct {
	IDs    []string
	DX, DY float64
}

// Has reports whether id is part of the preview.
func (p DragPreview) Has(id string) bool {
	return slices.Contains(p.IDs, id)
}

// ResizePreview is an uncommitted resize of the note ID.
type ResizePreview struct {
	ID            string
	Width, Height float64
}
