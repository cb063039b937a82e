// Package terminal runs a board session in a terminal using tcell.
//
// Each cell stands for a CellWidth×CellHeight block of client pixels, so
// the interaction controller sees the same coordinates a pointer-driven
// front end would produce.
package terminal

import (
	"context"
	"errors"
	"io"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/dshills/collabboard/internal/board"
	"github.com/dshills/collabboard/internal/geometry"
	"github.com/dshills/collabboard/internal/interaction"
	"github.com/dshills/collabboard/internal/session"
	"github.com/dshills/collabboard/internal/viewport"
)

// mousePointer is the pointer id used for the terminal mouse.
const mousePointer = 1

// Driver turns terminal input into controller events and draws the board.
type Driver struct {
	screen  tcell.Screen
	session *session.Session
	ctrl    *interaction.Controller
	log     logrus.FieldLogger

	cellW     int
	cellH     int
	wideWidth float64

	pressed bool
}

// Option configures a Driver.
type Option func(*Driver)

// WithCellSize sets the client-pixel size of one cell.
func WithCellSize(w, h int) Option {
	return func(d *Driver) {
		if w > 0 {
			d.cellW = w
		}
		if h > 0 {
			d.cellH = h
		}
	}
}

// WithWideViewportWidth sets the client width at or above which
// shift-click toggles selection.
func WithWideViewportWidth(w float64) Option {
	return func(d *Driver) { d.wideWidth = w }
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(d *Driver) { d.log = l }
}

// New returns a driver drawing to screen. The screen must not be
// initialised yet; Run does that.
func New(screen tcell.Screen, s *session.Session, ctrl *interaction.Controller, opts ...Option) *Driver {
	d := &Driver{
		screen:    screen,
		session:   s,
		ctrl:      ctrl,
		cellW:     8,
		cellH:     16,
		wideWidth: 768,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		d.log = l
	}
	return d
}

// Init prepares the screen and enables mouse reporting.
func (d *Driver) Init() error {
	if err := d.screen.Init(); err != nil {
		return err
	}
	d.screen.EnableMouse()
	d.resize()
	return nil
}

// Run initialises the screen and processes events until the user quits or
// ctx is done.
func (d *Driver) Run(ctx context.Context) error {
	if err := d.Init(); err != nil {
		return err
	}
	defer d.screen.Fini()

	go func() {
		<-ctx.Done()
		_ = d.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	for {
		d.Draw()
		ev := d.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if _, ok := ev.(*tcell.EventInterrupt); ok && ctx.Err() != nil {
			return nil
		}
		if !d.HandleEvent(ev) {
			return nil
		}
	}
}

// funcEvent carries a function to run on the event loop goroutine.
type funcEvent struct {
	tcell.EventTime
	fn func()
}

// Post schedules fn to run on the event loop goroutine, so callers on
// other goroutines can touch the session safely. It reports false when the
// event could not be queued.
func (d *Driver) Post(fn func()) bool {
	ev := &funcEvent{fn: fn}
	ev.SetEventNow()
	return d.screen.PostEvent(ev) == nil
}

// HandleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (d *Driver) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventResize:
		d.resize()
		d.screen.Sync()
	case *tcell.EventMouse:
		d.handleMouse(e)
	case *tcell.EventKey:
		return d.handleKey(e)
	case *funcEvent:
		e.fn()
	}
	return true
}

// resize recomputes the controller environment from the screen size.
func (d *Driver) resize() {
	cols, _ := d.screen.Size()
	env := d.ctrl.Env()
	env.WideViewport = float64(cols*d.cellW) >= d.wideWidth
	d.ctrl.SetEnv(env)
}

// clientPoint returns the client-space center of a cell.
func (d *Driver) clientPoint(col, row int) geometry.Point {
	return geometry.Point{
		X: float64(col*d.cellW) + float64(d.cellW)/2,
		Y: float64(row*d.cellH) + float64(d.cellH)/2,
	}
}

// cellOf returns the cell containing a client point.
func (d *Driver) cellOf(p geometry.Point) (int, int) {
	return int(math.Floor(p.X / float64(d.cellW))), int(math.Floor(p.Y / float64(d.cellH)))
}

func (d *Driver) handleMouse(e *tcell.EventMouse) {
	col, row := e.Position()
	client := d.clientPoint(col, row)
	buttons := e.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		d.ctrl.Wheel(interaction.Wheel{Client: client, DeltaY: -1})
		return
	case buttons&tcell.WheelDown != 0:
		d.ctrl.Wheel(interaction.Wheel{Client: client, DeltaY: 1})
		return
	}

	primary := buttons&tcell.Button1 != 0
	switch {
	case primary && !d.pressed:
		d.pressed = true
		var mods interaction.Modifier
		if e.Modifiers()&tcell.ModShift != 0 {
			mods |= interaction.ModShift
		}
		err := d.ctrl.PointerDown(interaction.PointerDown{
			PointerID: mousePointer,
			Button:    interaction.ButtonPrimary,
			Client:    client,
			Modifiers: mods,
			Target:    d.ctrl.Resolve(client),
		})
		if errors.Is(err, interaction.ErrCaptureHeld) {
			d.log.WithError(err).Debug("pointer down ignored")
		}
	case primary:
		d.ctrl.PointerMove(interaction.PointerMove{PointerID: mousePointer, Client: client})
	case d.pressed:
		d.pressed = false
		d.ctrl.PointerMove(interaction.PointerMove{PointerID: mousePointer, Client: client})
		d.ctrl.PointerUp(interaction.PointerUp{PointerID: mousePointer})
	}
}

func (d *Driver) handleKey(e *tcell.EventKey) bool {
	switch e.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		d.ctrl.Cancel()
		return false
	case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
		d.session.DeleteSelection()
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch r := e.Rune(); r {
	case 'q':
		d.ctrl.Cancel()
		return false
	case '1', '2', '3', '4':
		d.session.SetTool(session.Tools[r-'1'])
	case 'u':
		d.session.Undo()
	case 'r':
		d.session.Redo()
	case 'd':
		d.session.DuplicateSelection()
	case 'g':
		d.session.ToggleSnapToGrid()
	case 'h':
		d.session.DismissHint()
	case 'n':
		d.addNoteAtCenter()
	case '+', '=':
		d.zoomStep(viewport.StepZoomIn)
	case '-', '_':
		d.zoomStep(viewport.StepZoomOut)
	case '0':
		w, h := d.canvasSize()
		d.session.ZoomAroundCenter(w, h, 1)
	}
	return true
}

// canvasSize returns the screen size in client pixels.
func (d *Driver) canvasSize() (float64, float64) {
	cols, rows := d.screen.Size()
	return float64(cols * d.cellW), float64(rows * d.cellH)
}

func (d *Driver) zoomStep(factor float64) {
	w, h := d.canvasSize()
	d.session.ZoomAroundCenter(w, h, d.session.Viewport().Zoom*factor)
}

// addNoteAtCenter places a note at the world point under the screen center.
func (d *Driver) addNoteAtCenter() {
	w, h := d.canvasSize()
	center := d.session.Viewport().ScreenToWorld(geometry.Point{X: w / 2, Y: h / 2})
	d.session.AddObjectAt(board.KindNote, center)
}
