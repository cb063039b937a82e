package terminal

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/collabboard/internal/board"
	"github.com/dshills/collabboard/internal/geometry"
	"github.com/dshills/collabboard/internal/interaction"
	"github.com/dshills/collabboard/internal/session"
)

type fixture struct {
	screen  tcell.SimulationScreen
	session *session.Session
	ctrl    *interaction.Controller
	driver  *Driver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := func() time.Time { return time.UnixMilli(1_700_000_000_000) }
	s := session.New(board.Empty(0), session.WithClock(clock))
	ctrl := interaction.New(s, interaction.Env{})
	screen := tcell.NewSimulationScreen("UTF-8")
	d := New(screen, s, ctrl, WithCellSize(8, 16))
	require.NoError(t, d.Init())
	screen.SetSize(100, 40)
	d.HandleEvent(tcell.NewEventResize(100, 40))
	t.Cleanup(screen.Fini)
	return &fixture{screen: screen, session: s, ctrl: ctrl, driver: d}
}

func (f *fixture) key(r rune) bool {
	return f.driver.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
}

func (f *fixture) mouse(col, row int, buttons tcell.ButtonMask) {
	f.driver.HandleEvent(tcell.NewEventMouse(col, row, buttons, tcell.ModNone))
}

func (f *fixture) row(y int) string {
	cols, _ := f.screen.Size()
	var b strings.Builder
	for x := 0; x < cols; x++ {
		r, _, _, _ := f.screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestPlaceWithTool(t *testing.T) {
	f := newFixture(t)

	f.key('2')
	assert.Equal(t, session.ToolNote, f.session.Tool())

	f.mouse(5, 5, tcell.Button1)
	f.mouse(5, 5, tcell.ButtonNone)

	objs := f.session.Objects()
	require.Len(t, objs, 1)
	n, ok := objs[0].(board.Note)
	require.True(t, ok)
	assert.Equal(t, 44.0, n.X)
	assert.Equal(t, 88.0, n.Y)
	assert.Equal(t, []string{n.ID}, f.session.SelectedIDs())
}

func TestDragMovesObject(t *testing.T) {
	f := newFixture(t)
	o, ok := f.session.AddObjectAt(board.KindNote, geometry.Point{X: 80, Y: 160})
	require.True(t, ok)
	f.session.ClearSelection()

	f.mouse(12, 12, tcell.Button1)
	assert.Equal(t, "dragging", f.ctrl.State().Name())
	f.mouse(14, 13, tcell.Button1)

	preview, ok := f.ctrl.DragPreview()
	require.True(t, ok)
	assert.Equal(t, 16.0, preview.DX)
	assert.Equal(t, 16.0, preview.DY)
	// Nothing committed while dragging.
	got, _ := f.session.Object(o.Base().ID)
	assert.Equal(t, 80.0, got.Base().X)

	f.mouse(14, 13, tcell.ButtonNone)
	assert.Equal(t, "idle", f.ctrl.State().Name())
	got, _ = f.session.Object(o.Base().ID)
	assert.Equal(t, 96.0, got.Base().X)
	assert.Equal(t, 176.0, got.Base().Y)

	f.key('u')
	got, _ = f.session.Object(o.Base().ID)
	assert.Equal(t, 80.0, got.Base().X)
}

func TestWheelZooms(t *testing.T) {
	f := newFixture(t)

	f.mouse(10, 10, tcell.WheelUp)
	assert.InDelta(t, 1.08, f.session.Viewport().Zoom, 1e-9)

	f.mouse(10, 10, tcell.WheelDown)
	assert.InDelta(t, 1.08*0.92, f.session.Viewport().Zoom, 1e-9)
}

func TestKeys(t *testing.T) {
	f := newFixture(t)
	_, ok := f.session.AddObjectAt(board.KindRect, geometry.Point{X: 0, Y: 0})
	require.True(t, ok)

	assert.True(t, f.key('d'))
	assert.Len(t, f.session.Objects(), 2)

	assert.True(t, f.driver.HandleEvent(tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModNone)))
	assert.Len(t, f.session.Objects(), 1)

	f.key('u')
	assert.Len(t, f.session.Objects(), 2)
	f.key('r')
	assert.Len(t, f.session.Objects(), 1)

	f.key('g')
	assert.True(t, f.session.SnapToGrid())

	f.key('+')
	assert.InDelta(t, 1.1, f.session.Viewport().Zoom, 1e-9)
	f.key('-')
	assert.InDelta(t, 0.99, f.session.Viewport().Zoom, 1e-9)

	f.key('4')
	assert.Equal(t, session.ToolArrow, f.session.Tool())
	f.key('1')
	assert.Equal(t, session.ToolSelect, f.session.Tool())

	assert.False(t, f.key('q'))
	assert.False(t, f.driver.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestQuickAddNoteAtCenter(t *testing.T) {
	f := newFixture(t)

	// 100×40 cells of 8×16 is an 800×640 canvas.
	f.key('n')
	objs := f.session.Objects()
	require.Len(t, objs, 1)
	assert.Equal(t, board.KindNote, objs[0].Kind())
	assert.Equal(t, geometry.Point{X: 400, Y: 320}, geometry.Point{X: objs[0].Base().X, Y: objs[0].Base().Y})
	assert.Equal(t, []string{objs[0].Base().ID}, f.session.SelectedIDs())

	f.session.SetViewport(2, geometry.Point{X: 100, Y: 40})
	f.key('n')
	objs = f.session.Objects()
	require.Len(t, objs, 2)
	assert.Equal(t, 150.0, objs[1].Base().X)
	assert.Equal(t, 140.0, objs[1].Base().Y)
}

func TestZoomReset(t *testing.T) {
	f := newFixture(t)

	f.key('+')
	f.key('+')
	require.NotEqual(t, 1.0, f.session.Viewport().Zoom)

	f.key('0')
	v := f.session.Viewport()
	assert.Equal(t, 1.0, v.Zoom)
	assert.InDelta(t, 0, v.Pan.X, 1e-9)
	assert.InDelta(t, 0, v.Pan.Y, 1e-9)
}

func TestDrawBoxAndStatus(t *testing.T) {
	f := newFixture(t)
	_, ok := f.session.AddObjectAt(board.KindNote, geometry.Point{X: 80, Y: 160}, board.WithText("Hello\nworld"))
	require.True(t, ok)

	f.driver.Draw()

	r, _, _, _ := f.screen.GetContent(10, 10)
	assert.Equal(t, tcell.RuneULCorner, r)
	assert.Contains(t, f.row(11), "Hello")
	assert.NotContains(t, f.row(11), "world")

	_, rows := f.screen.Size()
	status := f.row(rows - 1)
	assert.Contains(t, status, "Select")
	assert.Contains(t, status, "zoom 100%")
	assert.Contains(t, status, "1 objects")
	assert.Contains(t, status, "1 selected")
}

func TestDrawArrow(t *testing.T) {
	f := newFixture(t)
	o, ok := f.session.AddObjectAt(board.KindArrow, geometry.Point{X: 80, Y: 160})
	require.True(t, ok)
	a := o.(board.Arrow)

	f.driver.Draw()

	ex, ey := f.driver.toCell(a.End())
	r, _, _, _ := f.screen.GetContent(ex, ey)
	assert.Equal(t, '▶', r)
}

func TestWideViewportFollowsResize(t *testing.T) {
	f := newFixture(t)
	assert.True(t, f.ctrl.Env().WideViewport)

	f.screen.SetSize(40, 20)
	f.driver.HandleEvent(tcell.NewEventResize(40, 20))
	assert.False(t, f.ctrl.Env().WideViewport)
}

func TestRunStopsOnCancel(t *testing.T) {
	clock := func() time.Time { return time.UnixMilli(0) }
	s := session.New(board.Empty(0), session.WithClock(clock))
	ctrl := interaction.New(s, interaction.Env{})
	d := New(tcell.NewSimulationScreen("UTF-8"), s, ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 5, "hello"},
		{"héllo wörld", 5, "héllo"},
		{"日本語", 4, "日本"},
		{"日本語", 3, "日"},
		{"first\nsecond", 20, "first"},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate(tt.in, tt.width), "Truncate(%q, %d)", tt.in, tt.width)
	}
}
