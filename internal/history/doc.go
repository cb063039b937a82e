// Package history provides bounded undo/redo for the board engine.
//
// The history keeps a present board plus two stacks of snapshots: past
// (oldest first) and future (next redo first). Boards are immutable values
// that share their objects with neighbouring snapshots, so pushing a
// snapshot costs a slice header, not a deep copy.
//
// # Commands
//
// Mutations implement the Command interface. A command maps the present
// board and selection to a new board and selection and reports whether
// anything changed; unchanged results are never recorded. Built-in commands:
//   - AddObjects: append new objects and select them
//   - PatchObjects: apply a Patcher to a set of ids
//   - MoveObjects: translate a set of ids, optionally grid-snapped
//   - ResizeNote: set a note's size
//   - DeleteObjects: remove a set of ids and clear them from the selection
//   - DuplicateObjects: copy a set of ids and select the copies
//   - Compound: several commands recorded as one entry
//
// # Usage
//
//	h := history.New(b, 60)
//	sel, changed := h.Execute(history.MoveObjects{IDs: ids, DX: 10}, sel)
//	sel, ok := h.Undo(sel)
//	sel, ok = h.Redo(sel)
//
// Each entry remembers the selection that was current when its board was
// the present one, so undo and redo restore it (sanitized against the
// restored board).
//
// # Grouping
//
// Commands executed between BeginGroup and EndGroup collapse into a single
// undo entry.
package history
