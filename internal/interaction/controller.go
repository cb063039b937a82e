package interaction

import (
	"errors"
	"slices"

	"github.com/dshills/collabboard/internal/board"
	"github.com/dshills/collabboard/internal/geometry"
	"github.com/dshills/collabboard/internal/selection"
	"github.com/dshills/collabboard/internal/session"
	"github.com/dshills/collabboard/internal/viewport"
)

// ErrCaptureHeld is returned by PointerDown while another gesture holds the
// pointer capture.
var ErrCaptureHeld = errors.New("pointer capture held by another interaction")

// Session is the command surface the controller drives.
// *session.Session implements it.
type Session interface {
	Board() board.Board
	Tool() session.Tool
	SnapToGrid() bool
	Viewport() viewport.Viewport
	Selection() selection.Set

	SetPan(pan geometry.Point)
	SetViewport(zoom float64, pan geometry.Point)
	SetSelectedIDs(ids ...string)
	ToggleSelectedID(id string)
	ClearSelection()
	AddObjectAt(k board.Kind, p geometry.Point, opts ...board.CreateOption) (board.Object, bool)
	MoveObjects(ids []string, dx, dy float64)
	ResizeNote(id string, width, height float64)
}

// Controller converts input events into session commands.
type Controller struct {
	session Session
	env     Env
	state   State
}

// New creates a controller for s.
func New(s Session, env Env) *Controller {
	return &Controller{session: s, env: env, state: Idle{}}
}

// Env returns the container description.
func (c *Controller) Env() Env {
	return c.env
}

// SetEnv updates the container description, for example after a resize.
func (c *Controller) SetEnv(env Env) {
	c.env = env
}

// State returns the current capture state.
func (c *Controller) State() State {
	return c.state
}

// Active reports whether a gesture holds the capture.
func (c *Controller) Active() bool {
	_, held := c.state.pointer()
	return held
}

// DragPreview returns the live drag preview, if any.
func (c *Controller) DragPreview() (DragPreview, bool) {
	if d, ok := c.state.(Dragging); ok && d.preview != nil {
		return *d.preview, true
	}
	return DragPreview{}, false
}

// ResizePreview returns the live resize preview, if any.
func (c *Controller) ResizePreview() (ResizePreview, bool) {
	if r, ok := c.state.(Resizing); ok && r.preview != nil {
		return *r.preview, true
	}
	return ResizePreview{}, false
}

// Handle dispatches ev to the matching method.
func (c *Controller) Handle(ev Event) error {
	switch e := ev.(type) {
	case PointerDown:
		return c.PointerDown(e)
	case PointerMove:
		c.PointerMove(e)
	case PointerUp:
		c.PointerUp(e)
	case PointerCancel:
		c.PointerCancel(e)
	case Wheel:
		c.Wheel(e)
	}
	return nil
}

func (c *Controller) toWorld(client geometry.Point) geometry.Point {
	v := c.session.Viewport()
	return geometry.ScreenToWorld(client, c.env.Origin, v.Pan, v.Zoom)
}

// PointerDown starts a gesture. Non-primary buttons are ignored. While a
// gesture holds the capture it returns ErrCaptureHeld and changes nothing.
func (c *Controller) PointerDown(ev PointerDown) error {
	if c.Active() {
		return ErrCaptureHeld
	}
	if ev.Button != ButtonPrimary {
		return nil
	}

	world := c.toWorld(ev.Client)
	b := c.session.Board()
	tool := c.session.Tool()

	target := ev.Target
	if target.Kind != TargetCanvas && !b.Has(target.ID) {
		target = Target{Kind: TargetCanvas}
	}
	// Placement tools create objects wherever the press lands.
	if tool != session.ToolSelect {
		target = Target{Kind: TargetCanvas}
	}

	switch target.Kind {
	case TargetResizeHandle:
		if c.startResize(ev, target.ID, world) {
			return nil
		}
		c.pressObject(ev, target, world)
	case TargetObject:
		c.pressObject(ev, target, world)
	default:
		c.pressCanvas(ev, world, tool)
	}
	return nil
}

func (c *Controller) pressCanvas(ev PointerDown, world geometry.Point, tool session.Tool) {
	if kind, ok := tool.Kind(); ok {
		if c.session.SnapToGrid() {
			world = geometry.SnapPoint(world, geometry.GridSize)
		}
		c.session.AddObjectAt(kind, world)
		return
	}

	c.session.ClearSelection()
	c.state = Panning{
		PointerID:   ev.PointerID,
		StartClient: ev.Client,
		StartPan:    c.session.Viewport().Pan,
	}
}

func (c *Controller) pressObject(ev PointerDown, target Target, world geometry.Point) {
	if ev.Modifiers.HasShift() && c.env.WideViewport {
		c.session.ToggleSelectedID(target.ID)
		return
	}

	sel := c.session.Selection()
	working := []string{target.ID}
	if sel.Has(target.ID) {
		working = sel.IDs()
	}
	c.session.SetSelectedIDs(working...)

	if target.NoDrag {
		return
	}
	c.state = Dragging{
		PointerID:  ev.PointerID,
		IDs:        slices.Clone(working),
		StartWorld: world,
	}
}

// startResize enters Resizing for a selected note. It reports false when the
// handle is not live (the object is not a selected note).
func (c *Controller) startResize(ev PointerDown, id string, world geometry.Point) bool {
	o, ok := c.session.Board().Object(id)
	if !ok || !c.session.Selection().Has(id) {
		return false
	}
	n, isNote := o.(board.Note)
	if !isNote {
		return false
	}
	c.state = Resizing{
		PointerID:   ev.PointerID,
		ID:          id,
		StartWorld:  world,
		StartWidth:  n.Width,
		StartHeight: n.Height,
	}
	return true
}

func (c *Controller) owns(pointerID int) bool {
	id, held := c.state.pointer()
	return held && id == pointerID
}

// PointerMove updates the active gesture. Moves from pointers other than
// the captured one are ignored.
func (c *Controller) PointerMove(ev PointerMove) {
	if !c.owns(ev.PointerID) {
		return
	}

	switch s := c.state.(type) {
	case Panning:
		c.session.SetPan(s.StartPan.Add(ev.Client.Sub(s.StartClient)))

	case Dragging:
		delta := c.toWorld(ev.Client).Sub(s.StartWorld)
		if c.session.SnapToGrid() {
			delta = geometry.SnapPoint(delta, geometry.GridSize)
		}
		s.preview = &DragPreview{IDs: s.IDs, DX: delta.X, DY: delta.Y}
		c.state = s

	case Resizing:
		delta := c.toWorld(ev.Client).Sub(s.StartWorld)
		width := s.StartWidth + delta.X
		height := s.StartHeight + delta.Y
		if c.session.SnapToGrid() {
			width = geometry.Snap(width, geometry.GridSize)
			height = geometry.Snap(height, geometry.GridSize)
		}
		s.preview = &ResizePreview{
			ID:     s.ID,
			Width:  board.ClampWidth(width),
			Height: board.ClampHeight(height),
		}
		c.state = s
	}
}

// PointerUp commits the active gesture's preview and returns to Idle.
func (c *Controller) PointerUp(ev PointerUp) {
	if !c.owns(ev.PointerID) {
		return
	}
	c.finish()
}

// PointerCancel ends the active gesture. The last preview is committed, the
// same as a release.
func (c *Controller) PointerCancel(ev PointerCancel) {
	if !c.owns(ev.PointerID) {
		return
	}
	c.finish()
}

// Cancel ends whatever gesture is active regardless of pointer id.
func (c *Controller) Cancel() {
	if c.Active() {
		c.finish()
	}
}

func (c *Controller) finish() {
	state := c.state
	c.state = Idle{}

	switch s := state.(type) {
	case Dragging:
		if s.preview != nil {
			c.session.MoveObjects(s.preview.IDs, s.preview.DX, s.preview.DY)
		}
	case Resizing:
		if s.preview != nil {
			c.session.ResizeNote(s.preview.ID, s.preview.Width, s.preview.Height)
		}
	}
}

// Wheel zooms around the cursor.
func (c *Controller) Wheel(ev Wheel) {
	anchor := ev.Client.Sub(c.env.Origin)
	next := c.session.Viewport().Wheel(anchor, ev.DeltaY)
	c.session.SetViewport(next.Zoom, next.Pan)
}
