package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/collabboard/internal/board"
	"github.com/dshills/collabboard/internal/geometry"
	"github.com/dshills/collabboard/internal/session"
)

// register installs print and the board table into L.
func (r *Runner) register(L *lua.LState) {
	L.SetGlobal("print", L.NewFunction(r.print))

	mod := L.NewTable()
	L.SetField(mod, "add", L.NewFunction(r.add))
	L.SetField(mod, "get", L.NewFunction(r.get))
	L.SetField(mod, "select", L.NewFunction(r.selectIDs))
	L.SetField(mod, "toggle", L.NewFunction(r.toggle))
	L.SetField(mod, "selected", L.NewFunction(r.selected))
	L.SetField(mod, "objects", L.NewFunction(r.objects))
	L.SetField(mod, "patch", L.NewFunction(r.patch))
	L.SetField(mod, "move", L.NewFunction(r.move))
	L.SetField(mod, "resize", L.NewFunction(r.resize))
	L.SetField(mod, "delete", L.NewFunction(r.remove))
	L.SetField(mod, "duplicate", L.NewFunction(r.duplicate))
	L.SetField(mod, "undo", L.NewFunction(r.undo))
	L.SetField(mod, "redo", L.NewFunction(r.redo))
	L.SetField(mod, "batch", L.NewFunction(r.batch))
	L.SetField(mod, "zoom", L.NewFunction(r.zoom))
	L.SetField(mod, "pan", L.NewFunction(r.pan))
	L.SetField(mod, "snap", L.NewFunction(r.snap))
	L.SetField(mod, "tool", L.NewFunction(r.tool))
	L.SetField(mod, "count", L.NewFunction(r.count))
	L.SetGlobal("board", mod)
}

// add(kind, x, y [, {text=, color=}]) -> id | nil
func (r *Runner) add(L *lua.LState) int {
	kind, err := board.ParseKind(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	p := geometry.Point{X: float64(L.CheckNumber(2)), Y: float64(L.CheckNumber(3))}

	var opts []board.CreateOption
	if tbl, ok := L.Get(4).(*lua.LTable); ok {
		if s, ok := tbl.RawGetString("text").(lua.LString); ok {
			opts = append(opts, board.WithText(string(s)))
		}
		if s, ok := tbl.RawGetString("color").(lua.LString); ok {
			opts = append(opts, board.WithColor(string(s)))
		}
	}

	o, ok := r.session.AddObjectAt(kind, p, opts...)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(o.Base().ID))
	return 1
}

// get(id) -> object | nil
func (r *Runner) get(L *lua.LState) int {
	o, ok := r.session.Object(L.CheckString(1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(objectTable(L, o))
	return 1
}

// select(ids) or select(id, ...)
func (r *Runner) selectIDs(L *lua.LState) int {
	r.session.SetSelectedIDs(stringArgs(L, 1)...)
	return 0
}

// toggle(id)
func (r *Runner) toggle(L *lua.LState) int {
	r.session.ToggleSelectedID(L.CheckString(1))
	return 0
}

// selected() -> {ids}
func (r *Runner) selected(L *lua.LState) int {
	L.Push(stringTable(L, r.session.SelectedIDs()))
	return 1
}

// objects() -> {objects} in paint order
func (r *Runner) objects(L *lua.LState) int {
	tbl := L.NewTable()
	for _, o := range r.session.Objects() {
		tbl.Append(objectTable(L, o))
	}
	L.Push(tbl)
	return 1
}

// patch({color=, text=, width=, height=, strokeWidth=}) edits the selection.
func (r *Runner) patch(L *lua.LState) int {
	tbl := L.CheckTable(1)
	var p board.Patch
	if s, ok := tbl.RawGetString("color").(lua.LString); ok {
		p.Color = board.Ptr(string(s))
	}
	if s, ok := tbl.RawGetString("text").(lua.LString); ok {
		p.Text = board.Ptr(string(s))
	}
	if n, ok := tbl.RawGetString("width").(lua.LNumber); ok {
		p.Width = board.Ptr(float64(n))
	}
	if n, ok := tbl.RawGetString("height").(lua.LNumber); ok {
		p.Height = board.Ptr(float64(n))
	}
	if n, ok := tbl.RawGetString("strokeWidth").(lua.LNumber); ok {
		p.StrokeWidth = board.Ptr(float64(n))
	}
	if !p.IsZero() {
		r.session.PatchSelected(p)
	}
	return 0
}

// move(dx, dy) translates the selection.
func (r *Runner) move(L *lua.LState) int {
	dx := float64(L.CheckNumber(1))
	dy := float64(L.CheckNumber(2))
	r.session.MoveObjects(r.session.SelectedIDs(), dx, dy)
	return 0
}

// resize(id, width, height)
func (r *Runner) resize(L *lua.LState) int {
	r.session.ResizeNote(L.CheckString(1), float64(L.CheckNumber(2)), float64(L.CheckNumber(3)))
	return 0
}

// delete() removes the selection.
func (r *Runner) remove(L *lua.LState) int {
	r.session.DeleteSelection()
	return 0
}

// duplicate() copies the selection.
func (r *Runner) duplicate(L *lua.LState) int {
	r.session.DuplicateSelection()
	return 0
}

// undo() -> bool
func (r *Runner) undo(L *lua.LState) int {
	ok := r.session.CanUndo()
	r.session.Undo()
	L.Push(lua.LBool(ok))
	return 1
}

// redo() -> bool
func (r *Runner) redo(L *lua.LState) int {
	ok := r.session.CanRedo()
	r.session.Redo()
	L.Push(lua.LBool(ok))
	return 1
}

// batch(name, fn) records everything fn does as one undo step.
func (r *Runner) batch(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)
	r.session.Group(name, func() {
		L.Push(fn)
		L.Call(0, 0)
	})
	return 0
}

// zoom([z]) -> current zoom
func (r *Runner) zoom(L *lua.LState) int {
	if L.GetTop() >= 1 {
		r.session.SetZoom(float64(L.CheckNumber(1)))
	}
	L.Push(lua.LNumber(r.session.Viewport().Zoom))
	return 1
}

// pan([x, y]) -> x, y
func (r *Runner) pan(L *lua.LState) int {
	if L.GetTop() >= 2 {
		r.session.SetPan(geometry.Point{X: float64(L.CheckNumber(1)), Y: float64(L.CheckNumber(2))})
	}
	p := r.session.Viewport().Pan
	L.Push(lua.LNumber(p.X))
	L.Push(lua.LNumber(p.Y))
	return 2
}

// snap([on]) -> on
func (r *Runner) snap(L *lua.LState) int {
	if L.GetTop() >= 1 {
		r.session.SetSnapToGrid(L.CheckBool(1))
	}
	L.Push(lua.LBool(r.session.SnapToGrid()))
	return 1
}

// tool([name]) -> name
func (r *Runner) tool(L *lua.LState) int {
	if L.GetTop() >= 1 {
		t, err := session.ParseTool(L.CheckString(1))
		if err != nil {
			L.ArgError(1, err.Error())
			return 0
		}
		r.session.SetTool(t)
	}
	L.Push(lua.LString(r.session.Tool()))
	return 1
}

// count() -> number of objects
func (r *Runner) count(L *lua.LState) int {
	L.Push(lua.LNumber(len(r.session.Objects())))
	return 1
}

// stringArgs accepts either a table of strings at position n or the
// remaining arguments as strings.
func stringArgs(L *lua.LState, n int) []string {
	if tbl, ok := L.Get(n).(*lua.LTable); ok {
		out := make([]string, 0, tbl.Len())
		tbl.ForEach(func(_, v lua.LValue) {
			if s, ok := v.(lua.LString); ok {
				out = append(out, string(s))
			}
		})
		return out
	}
	top := L.GetTop()
	out := make([]string, 0, top)
	for i := n; i <= top; i++ {
		out = append(out, L.CheckString(i))
	}
	return out
}

func stringTable(L *lua.LState, values []string) *lua.LTable {
	tbl := L.CreateTable(len(values), 0)
	for _, v := range values {
		tbl.Append(lua.LString(v))
	}
	return tbl
}

func objectTable(L *lua.LState, o board.Object) *lua.LTable {
	c := o.Base()
	tbl := L.NewTable()
	tbl.RawSetString("id", lua.LString(c.ID))
	tbl.RawSetString("type", lua.LString(o.Kind()))
	tbl.RawSetString("x", lua.LNumber(c.X))
	tbl.RawSetString("y", lua.LNumber(c.Y))
	tbl.RawSetString("color", lua.LString(c.Color))

	switch v := o.(type) {
	case board.Note:
		tbl.RawSetString("width", lua.LNumber(v.Width))
		tbl.RawSetString("height", lua.LNumber(v.Height))
		tbl.RawSetString("text", lua.LString(v.Text))
	case board.Rect:
		tbl.RawSetString("width", lua.LNumber(v.Width))
		tbl.RawSetString("height", lua.LNumber(v.Height))
		tbl.RawSetString("text", lua.LString(v.Text))
	case board.Arrow:
		tbl.RawSetString("x2", lua.LNumber(v.X2))
		tbl.RawSetString("y2", lua.LNumber(v.Y2))
		tbl.RawSetString("strokeWidth", lua.LNumber(v.StrokeWidth))
		tbl.RawSetString("text", lua.LString(v.Text))
	}
	return tbl
}
