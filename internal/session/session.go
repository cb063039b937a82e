// Package session owns the state of one editing session: the board history,
// the selection, the viewport and the tool settings. It exposes the command
// API that input drivers call.
//
// A Session is not safe for concurrent use. Drivers serialize calls on a
// single goroutine; every command runs to completion before the next one
// starts, so no partially applied transition is ever observable.
package session

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dshills/collabboard/internal/board"
	"github.com/dshills/collabboard/internal/geometry"
	"github.com/dshills/collabboard/internal/history"
	"github.com/dshills/collabboard/internal/selection"
	"github.com/dshills/collabboard/internal/viewport"
)

// ChangeHandler is called after every transition that replaces the present
// board: commits, undo, redo and loads.
type ChangeHandler func(b board.Board)

// Session is the single owner of editor state.
type Session struct {
	history  *history.History
	factory  *board.Factory
	sel      selection.Set
	view     viewport.Viewport
	tool     Tool
	snap     bool
	showHint bool

	handlers []ChangeHandler
	log      logrus.FieldLogger
}

// Option configures a Session.
type Option func(*options)

type options struct {
	limit    int
	snap     bool
	showHint bool
	factory  *board.Factory
	clock    func() time.Time
	log      logrus.FieldLogger
}

// WithHistoryLimit sets the undo limit. See history.NormalizeLimit.
func WithHistoryLimit(n int) Option {
	return func(o *options) { o.limit = n }
}

// WithSnapToGrid sets the initial snap-to-grid flag.
func WithSnapToGrid(on bool) Option {
	return func(o *options) { o.snap = on }
}

// WithHint shows the first-run hint.
func WithHint(show bool) Option {
	return func(o *options) { o.showHint = show }
}

// WithFactory sets the object factory used for new and duplicated objects.
func WithFactory(f *board.Factory) Option {
	return func(o *options) { o.factory = f }
}

// WithClock sets the clock used to stamp mutations.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.clock = now }
}

// WithLogger sets the logger. Commands are logged at debug level.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) { o.log = l }
}

// New creates a session whose present board is b.
func New(b board.Board, opts ...Option) *Session {
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.factory == nil {
		o.factory = board.NewFactory()
		o.factory.Now = o.clock
	}
	if o.log == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		o.log = l
	}

	return &Session{
		history:  history.New(b, o.limit, history.WithClock(o.clock)),
		factory:  o.factory,
		view:     viewport.Default(),
		tool:     ToolSelect,
		snap:     o.snap,
		showHint: o.showHint,
		log:      o.log,
	}
}

// OnChange registers a handler for board changes.
func (s *Session) OnChange(handler ChangeHandler) {
	if handler != nil {
		s.handlers = append(s.handlers, handler)
	}
}

func (s *Session) notify() {
	b := s.history.Present()
	for _, h := range s.handlers {
		h(b)
	}
}

// execute runs cmd through the history and notifies observers on change.
func (s *Session) execute(cmd history.Command) bool {
	sel, changed := s.history.Execute(cmd, s.sel)
	if !changed {
		s.log.WithField("command", cmd.Description()).Debug("no-op command")
		return false
	}
	s.sel = sel
	s.log.WithFields(logrus.Fields{
		"command": cmd.Description(),
		"objects": s.history.Present().Len(),
		"undo":    s.history.UndoCount(),
	}).Debug("command committed")
	s.notify()
	return true
}

// Board returns the present board.
func (s *Session) Board() board.Board {
	return s.history.Present()
}

// Objects returns the present objects in paint order.
func (s *Session) Objects() []board.Object {
	return s.history.Present().Objects
}

// Object returns the object with the given id.
func (s *Session) Object(id string) (board.Object, bool) {
	return s.history.Present().Object(id)
}

// Factory returns the factory used for new objects.
func (s *Session) Factory() *board.Factory {
	return s.factory
}

// Tool returns the active tool.
func (s *Session) Tool() Tool {
	return s.tool
}

// SetTool changes the active tool. Unknown tools are ignored.
func (s *Session) SetTool(t Tool) {
	if _, err := ParseTool(string(t)); err != nil {
		return
	}
	s.tool = t
}

// SelectedIDs returns the selection in order.
func (s *Session) SelectedIDs() []string {
	return s.sel.IDs()
}

// Selection returns the selection set.
func (s *Session) Selection() selection.Set {
	return s.sel
}

// SelectedObjects returns the selected objects in paint order.
func (s *Session) SelectedObjects() []board.Object {
	var out []board.Object
	for _, o := range s.Objects() {
		if s.sel.Has(o.Base().ID) {
			out = append(out, o)
		}
	}
	return out
}

// SetSelectedIDs replaces the selection. Unknown ids are dropped.
func (s *Session) SetSelectedIDs(ids ...string) {
	s.sel = selection.New(ids...).SanitizeBoard(s.Board())
}

// ToggleSelectedID flips membership of id in the selection.
func (s *Session) ToggleSelectedID(id string) {
	s.sel = s.sel.Toggle(id).SanitizeBoard(s.Board())
}

// ClearSelection empties the selection.
func (s *Session) ClearSelection() {
	s.sel = selection.Set{}
}

// AddObjectAt creates an object of kind k at p, commits it and selects it.
func (s *Session) AddObjectAt(k board.Kind, p geometry.Point, opts ...board.CreateOption) (board.Object, bool) {
	o, err := s.factory.New(k, p.X, p.Y, opts...)
	if err != nil {
		s.log.WithError(err).Debug("add ignored")
		return nil, false
	}
	if !s.execute(history.AddObjects{Objects: []board.Object{o}}) {
		return nil, false
	}
	return o, true
}

// PatchSelected applies p to every selected object.
func (s *Session) PatchSelected(p board.Patcher) {
	s.PatchObjects(s.sel.IDs(), p)
}

// PatchObjects applies p to the objects in ids.
func (s *Session) PatchObjects(ids []string, p board.Patcher) {
	if len(ids) == 0 || p == nil {
		return
	}
	s.execute(history.PatchObjects{IDs: ids, Patcher: p})
}

// DeleteSelection removes every selected object.
func (s *Session) DeleteSelection() {
	if s.sel.Empty() {
		return
	}
	s.execute(history.DeleteObjects{IDs: s.sel.IDs()})
}

// DuplicateSelection copies every selected object and selects the copies.
func (s *Session) DuplicateSelection() {
	if s.sel.Empty() {
		return
	}
	s.execute(history.DuplicateObjects{
		IDs:     s.sel.IDs(),
		Factory: s.factory,
		Offset:  board.DuplicateOffset,
	})
}

// MoveObjects translates ids by (dx, dy), snapping the delta when
// snap-to-grid is on.
func (s *Session) MoveObjects(ids []string, dx, dy float64) {
	if len(ids) == 0 {
		return
	}
	s.execute(history.MoveObjects{IDs: ids, DX: dx, DY: dy, Snap: s.snap})
}

// ResizeNote sets the size of a note.
func (s *Session) ResizeNote(id string, width, height float64) {
	s.execute(history.ResizeNote{ID: id, Width: width, Height: height})
}

// Group collapses every command fn issues into one undo entry.
func (s *Session) Group(name string, fn func()) {
	s.history.BeginGroup(name)
	defer s.history.EndGroup()
	fn()
}

// Undo reverts the last committed change.
func (s *Session) Undo() {
	sel, ok := s.history.Undo(s.sel)
	if !ok {
		return
	}
	s.sel = sel
	s.log.Debug("undo")
	s.notify()
}

// Redo re-applies the last undone change.
func (s *Session) Redo() {
	sel, ok := s.history.Redo(s.sel)
	if !ok {
		return
	}
	s.sel = sel
	s.log.Debug("redo")
	s.notify()
}

// CanUndo reports whether Undo would do anything.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether Redo would do anything.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// UndoInfo describes the undo stack, oldest first.
func (s *Session) UndoInfo() []history.EntryInfo { return s.history.UndoInfo() }

// RedoInfo describes the redo stack, next redo first.
func (s *Session) RedoInfo() []history.EntryInfo { return s.history.RedoInfo() }

// Past returns the past boards, oldest first.
func (s *Session) Past() []board.Board { return s.history.Past() }

// Future returns the future boards, next redo first.
func (s *Session) Future() []board.Board { return s.history.Future() }

// HistoryLimit returns the undo limit.
func (s *Session) HistoryLimit() int { return s.history.Limit() }

// SetHistoryLimit changes the undo limit.
func (s *Session) SetHistoryLimit(n int) {
	s.history.SetLimit(n)
}

// LoadBoard replaces the present board, dropping history and selection.
func (s *Session) LoadBoard(b board.Board) {
	s.history.Reset(b)
	s.sel = selection.Set{}
	s.log.WithField("objects", b.Len()).Debug("board loaded")
	s.notify()
}

// Viewport returns the current viewport.
func (s *Session) Viewport() viewport.Viewport {
	return s.view
}

// SetViewport sets zoom (clamped) and pan together.
func (s *Session) SetViewport(zoom float64, pan geometry.Point) {
	s.view = s.view.WithZoom(zoom).WithPan(pan)
}

// SetPan changes the pan only.
func (s *Session) SetPan(pan geometry.Point) {
	s.view = s.view.WithPan(pan)
}

// SetZoom changes the zoom only, keeping the pan.
func (s *Session) SetZoom(zoom float64) {
	s.view = s.view.WithZoom(zoom)
}

// ZoomAroundCenter zooms keeping the center of a width×height container
// fixed.
func (s *Session) ZoomAroundCenter(width, height, zoom float64) {
	s.view = s.view.ZoomAroundCenter(width, height, zoom)
}

// SnapToGrid reports whether moves and placements snap to the grid.
func (s *Session) SnapToGrid() bool {
	return s.snap
}

// SetSnapToGrid turns snapping on or off.
func (s *Session) SetSnapToGrid(on bool) {
	s.snap = on
}

// ToggleSnapToGrid flips snapping.
func (s *Session) ToggleSnapToGrid() {
	s.snap = !s.snap
}

// ShowHint reports whether the first-run hint is visible.
func (s *Session) ShowHint() bool {
	return s.showHint
}

// DismissHint hides the first-run hint.
func (s *Session) DismissHint() {
	s.showHint = false
}
