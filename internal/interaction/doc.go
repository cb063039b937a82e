// Package interaction turns raw pointer and wheel input into session
// commands.
//
// The Controller is a small state machine. At most one gesture holds the
// pointer capture at a time:
//
//   - Idle: no gesture in progress
//   - Panning: the canvas follows the pointer; pan is applied immediately
//   - Dragging: selected objects follow the pointer as a live preview
//   - Resizing: a note's size follows the pointer as a live preview
//
// Previews never touch the board or the history. Releasing or cancelling
// the pointer commits the last preview as one undoable command, so a long
// drag produces a single undo entry.
//
// Wheel input zooms around the cursor and is applied to the viewport
// immediately; viewport changes are not undoable.
//
// The Controller is not safe for concurrent use; feed it events from the
// goroutine that owns the session.
package interaction
