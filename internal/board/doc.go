// Package board provides the object model for the whiteboard engine.
//
// A Board is an immutable snapshot: an ordered sequence of drawable objects
// plus a version tag and a last-modified stamp. Objects are a closed sum
// type over three shape kinds:
//
//   - Note: resizable sticky note with text
//   - Rect: resizable rectangle with an optional caption
//   - Arrow: line between two world points with a stroke width
//
// # Immutability
//
// Every transition (append, patch, move, resize, delete, duplicate) returns
// a new Board value together with a changed flag. When nothing changed the
// receiver is returned as-is, which lets the history layer skip no-op
// commits. Object values are shared between successive boards; only the
// slice holding them is copied.
//
// # Patching
//
// Heterogeneous selections are edited through the Patcher interface. A
// literal Patch applies to every target; a PatchFunc decides per object and
// returns ok=false to leave that object untouched:
//
//	strokeOnly := board.PatchFunc(func(o board.Object) (board.Patch, bool) {
//	    if o.Kind() != board.KindArrow {
//	        return board.Patch{}, false
//	    }
//	    return board.Patch{StrokeWidth: board.Ptr(6.0)}, true
//	})
//
// Numeric fields are clamped to their bounds; fields that do not apply to a
// shape are ignored.
package board
