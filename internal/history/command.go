package history

import (
	"fmt"
	"time"

	"github.com/dshills/collabboard/internal/board"
	"github.com/dshills/collabboard/internal/selection"
)

// Command is a pure board transition.
type Command interface {
	// Apply returns the next board and selection. changed is false when
	// the result equals the input, in which case nothing is recorded.
	Apply(b board.Board, sel selection.Set, now time.Time) (board.Board, selection.Set, bool)

	// Description returns a human-readable description of the command.
	Description() string
}

// AddObjects appends objects and selects them.
type AddObjects struct {
	Objects []board.Object
}

// Apply implements Command.
func (c AddObjects) Apply(b board.Board, sel selection.Set, now time.Time) (board.Board, selection.Set, bool) {
	next, changed := b.WithObjectAdded(now.UnixMilli(), c.Objects...)
	if !changed {
		return b, sel, false
	}
	added := make([]string, 0, len(c.Objects))
	for _, o := range c.Objects {
		if o != nil {
			added = append(added, o.Base().ID)
		}
	}
	return next, selection.New(added...), true
}

// Description implements Command.
func (c AddObjects) Description() string {
	if len(c.Objects) == 1 && c.Objects[0] != nil {
		return "Add " + c.Objects[0].Kind().Title()
	}
	return fmt.Sprintf("Add %d objects", len(c.Objects))
}

// PatchObjects applies Patcher to every object in IDs.
type PatchObjects struct {
	IDs     []string
	Patcher board.Patcher
}

// Apply implements Command.
func (c PatchObjects) Apply(b board.Board, sel selection.Set, now time.Time) (board.Board, selection.Set, bool) {
	next, changed := b.WithPatched(c.IDs, c.Patcher, now.UnixMilli())
	return next, sel, changed
}

// Description implements Command.
func (c PatchObjects) Description() string {
	return describeN("Edit", len(c.IDs))
}

// MoveObjects translates every object in IDs by (DX, DY).
type MoveObjects struct {
	IDs    []string
	DX, DY float64
	Snap   bool
}

// Apply implements Command.
func (c MoveObjects) Apply(b board.Board, sel selection.Set, now time.Time) (board.Board, selection.Set, bool) {
	next, changed := b.WithMoved(c.IDs, c.DX, c.DY, c.Snap, now.UnixMilli())
	return next, sel, changed
}

// Description implements Command.
func (c MoveObjects) Description() string {
	return describeN("Move", len(c.IDs))
}

// ResizeNote sets the size of a note. Other kinds are ignored.
type ResizeNote struct {
	ID            string
	Width, Height float64
}

// Apply implements Command.
func (c ResizeNote) Apply(b board.Board, sel selection.Set, now time.Time) (board.Board, selection.Set, bool) {
	next, changed := b.WithNoteResized(c.ID, c.Width, c.Height, now.UnixMilli())
	return next, sel, changed
}

// Description implements Command.
func (c ResizeNote) Description() string {
	return "Resize Note"
}

// DeleteObjects removes every object in IDs. Removed ids drop out of the
// selection when the history sanitizes it.
type DeleteObjects struct {
	IDs []string
}

// Apply implements Command.
func (c DeleteObjects) Apply(b board.Board, sel selection.Set, now time.Time) (board.Board, selection.Set, bool) {
	next, changed := b.WithoutObjects(c.IDs, now.UnixMilli())
	return next, sel, changed
}

// Description implements Command.
func (c DeleteObjects) Description() string {
	return describeN("Delete", len(c.IDs))
}

// DuplicateObjects copies every object in IDs, shifted by Offset, and
// selects the copies. A zero Offset uses board.DuplicateOffset.
type DuplicateObjects struct {
	IDs     []string
	Factory *board.Factory
	Offset  float64
}

// Apply implements Command.
func (c DuplicateObjects) Apply(b board.Board, sel selection.Set, now time.Time) (board.Board, selection.Set, bool) {
	offset := c.Offset
	if offset == 0 {
		offset = board.DuplicateOffset
	}
	next, copies, changed := b.WithDuplicates(c.Factory, c.IDs, offset, now.UnixMilli())
	if !changed {
		return b, sel, false
	}
	return next, selection.New(copies...), true
}

// Description implements Command.
func (c DuplicateObjects) Description() string {
	return describeN("Duplicate", len(c.IDs))
}

// Compound applies several commands in order as one undo unit.
type Compound struct {
	Name     string
	Commands []Command
}

// Apply implements Command. It reports a change when any step changed.
func (c Compound) Apply(b board.Board, sel selection.Set, now time.Time) (board.Board, selection.Set, bool) {
	changed := false
	for _, cmd := range c.Commands {
		var stepChanged bool
		b, sel, stepChanged = cmd.Apply(b, sel, now)
		changed = changed || stepChanged
	}
	return b, sel, changed
}

// Description implements Command.
func (c Compound) Description() string {
	if c.Name != "" {
		return c.Name
	}
	if len(c.Commands) == 1 {
		return c.Commands[0].Description()
	}
	return fmt.Sprintf("%d operations", len(c.Commands))
}

func describeN(verb string, n int) string {
	if n == 1 {
		return verb + " object"
	}
	return fmt.Sprintf("%s %d objects", verb, n)
}
