package terminal

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/collabboard/internal/board"
	"github.com/dshills/collabboard/internal/geometry"
)

// HintText is shown on the top row until dismissed.
const HintText = "Tip: 1-4 tools, n note, drag to move, u/r undo/redo, d duplicate, g snap, 0 reset zoom, h hide tip, q quit"

var (
	statusStyle = tcell.StyleDefault.Reverse(true)
	hintStyle   = tcell.StyleDefault.Italic(true).Dim(true)
)

// Draw renders the projected board and the status line, then shows the
// screen.
func (d *Driver) Draw() {
	d.screen.Clear()
	cols, rows := d.screen.Size()

	sel := d.session.Selection()
	for i, o := range d.ctrl.Objects() {
		style := objectStyle(o)
		if sel.Has(o.Base().ID) {
			style = style.Bold(true).Underline(true)
		}
		switch v := o.(type) {
		case board.Arrow:
			d.drawArrow(v, style, cols, rows-1)
		default:
			d.drawBox(o, board.Label(o, i), style, cols, rows-1)
		}
	}

	if d.session.ShowHint() && rows > 1 {
		drawText(d.screen, 0, 0, cols, Truncate(HintText, cols), hintStyle)
	}
	d.drawStatus(cols, rows)
	d.screen.Show()
}

func objectStyle(o board.Object) tcell.Style {
	c := tcell.GetColor(o.Base().Color)
	if c == tcell.ColorDefault {
		return tcell.StyleDefault
	}
	return tcell.StyleDefault.Foreground(c)
}

// toCell maps a world point to a screen cell.
func (d *Driver) toCell(p geometry.Point) (int, int) {
	screen := d.session.Viewport().WorldToScreen(p)
	return d.cellOf(screen.Add(d.ctrl.Env().Origin))
}

// drawBox draws a note or rectangle outline with its text, or its label
// when the text is empty.
func (d *Driver) drawBox(o board.Object, label string, style tcell.Style, maxX, maxY int) {
	r := o.Bounds()
	x0, y0 := d.toCell(geometry.Point{X: r.X, Y: r.Y})
	x1, y1 := d.toCell(geometry.Point{X: r.MaxX(), Y: r.MaxY()})
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	set := func(x, y int, ch rune) {
		if x >= 0 && y >= 0 && x < maxX && y < maxY {
			d.screen.SetContent(x, y, ch, nil, style)
		}
	}
	for x := x0 + 1; x < x1; x++ {
		set(x, y0, tcell.RuneHLine)
		set(x, y1, tcell.RuneHLine)
	}
	for y := y0 + 1; y < y1; y++ {
		set(x0, y, tcell.RuneVLine)
		set(x1, y, tcell.RuneVLine)
	}
	set(x0, y0, tcell.RuneULCorner)
	set(x1, y0, tcell.RuneURCorner)
	set(x0, y1, tcell.RuneLLCorner)
	set(x1, y1, tcell.RuneLRCorner)

	if _, isNote := o.(board.Note); isNote && d.session.Selection().Has(o.Base().ID) {
		set(x1-1, y1-1, '◢')
	}

	text := label
	switch v := o.(type) {
	case board.Note:
		if v.Text != "" {
			text = v.Text
		}
	case board.Rect:
		if v.Text != "" {
			text = v.Text
		}
	}
	row := y0 + 1
	if row >= y1 || row < 0 || row >= maxY {
		return
	}
	start := max(x0+1, 0)
	end := min(x1, maxX)
	drawText(d.screen, start, row, end, Truncate(text, end-start), style)
}

// drawArrow plots the arrow shaft and marks the head.
func (d *Driver) drawArrow(a board.Arrow, style tcell.Style, maxX, maxY int) {
	sx, sy := d.toCell(a.Start())
	ex, ey := d.toCell(a.End())

	set := func(x, y int, ch rune) {
		if x >= 0 && y >= 0 && x < maxX && y < maxY {
			d.screen.SetContent(x, y, ch, nil, style)
		}
	}

	steps := max(abs(ex-sx), abs(ey-sy))
	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps)
		x := sx + int(math.Round(t*float64(ex-sx)))
		y := sy + int(math.Round(t*float64(ey-sy)))
		set(x, y, '·')
	}
	set(ex, ey, arrowHead(ex-sx, ey-sy))
}

func arrowHead(dx, dy int) rune {
	if abs(dx) >= abs(dy) {
		if dx < 0 {
			return '◀'
		}
		return '▶'
	}
	if dy < 0 {
		return '▲'
	}
	return '▼'
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// drawStatus fills the bottom row.
func (d *Driver) drawStatus(cols, rows int) {
	if rows <= 0 {
		return
	}
	y := rows - 1
	for x := 0; x < cols; x++ {
		d.screen.SetContent(x, y, ' ', nil, statusStyle)
	}

	snap := "off"
	if d.session.SnapToGrid() {
		snap = "on"
	}
	status := fmt.Sprintf(" %s | zoom %d%% | snap %s | %d objects | %d selected | %s",
		d.session.Tool().Label(),
		int(math.Round(d.session.Viewport().Zoom*100)),
		snap,
		len(d.session.Objects()),
		len(d.session.SelectedIDs()),
		d.ctrl.State().Name(),
	)
	drawText(d.screen, 0, y, cols, Truncate(status, cols), statusStyle)
}
