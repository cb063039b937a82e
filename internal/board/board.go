package board

import (
	"errors"
	"fmt"

	"github.com/dshills/collabboard/internal/geometry"
)

// Version is the board schema version.
const Version = 1

// ErrInvalidBoard is returned by Validate.
var ErrInvalidBoard = errors.New("invalid board")

// Board is an immutable snapshot of every object on the canvas. Objects are
// in insertion order, which is also paint order: later objects draw on top.
//
// Transitions return a new Board and leave the receiver untouched. Callers
// must not modify the Objects slice of a Board they did not build.
type Board struct {
	Version       int
	Objects       []Object
	LastUpdatedAt int64
}

// Empty returns a board with no objects.
func Empty(now int64) Board {
	return Board{Version: Version, Objects: []Object{}, LastUpdatedAt: now}
}

// Len returns the number of objects.
func (b Board) Len() int {
	return len(b.Objects)
}

// Index returns the position of the object with the given id, or -1.
func (b Board) Index(id string) int {
	for i, o := range b.Objects {
		if o.Base().ID == id {
			return i
		}
	}
	return -1
}

// Object returns the object with the given id.
func (b Board) Object(id string) (Object, bool) {
	if i := b.Index(id); i >= 0 {
		return b.Objects[i], true
	}
	return nil, false
}

// Has reports whether an object with the given id exists.
func (b Board) Has(id string) bool {
	return b.Index(id) >= 0
}

// IDs returns the object ids in paint order.
func (b Board) IDs() []string {
	out := make([]string, len(b.Objects))
	for i, o := range b.Objects {
		out[i] = o.Base().ID
	}
	return out
}

// Validate checks the structural rules: known version, no nil objects,
// non-empty unique ids.
func (b Board) Validate() error {
	if b.Version != Version {
		return fmt.Errorf("%w: version %d", ErrInvalidBoard, b.Version)
	}
	seen := make(map[string]struct{}, len(b.Objects))
	for i, o := range b.Objects {
		if o == nil {
			return fmt.Errorf("%w: nil object at %d", ErrInvalidBoard, i)
		}
		id := o.Base().ID
		if id == "" {
			return fmt.Errorf("%w: object at %d has no id", ErrInvalidBoard, i)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidBoard, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// withObjects returns a copy of b holding objs.
func (b Board) withObjects(objs []Object, now int64) Board {
	b.Objects = objs
	b.LastUpdatedAt = now
	return b
}

// mapObjects rebuilds the object slice, replacing each object whose id is in
// ids with fn's result. fn reports whether it changed the object.
func (b Board) mapObjects(ids []string, now int64, fn func(Object) (Object, bool)) (Board, bool) {
	if len(ids) == 0 {
		return b, false
	}
	want := idSet(ids)

	var next []Object
	for i, o := range b.Objects {
		if _, ok := want[o.Base().ID]; !ok {
			continue
		}
		updated, changed := fn(o)
		if !changed {
			continue
		}
		if next == nil {
			next = make([]Object, len(b.Objects))
			copy(next, b.Objects)
		}
		c := updated.Base()
		c.UpdatedAt = now
		next[i] = updated.withBase(c)
	}
	if next == nil {
		return b, false
	}
	return b.withObjects(next, now), true
}

// WithObjectAdded appends objs. Objects whose id is empty or already present
// are skipped.
func (b Board) WithObjectAdded(now int64, objs ...Object) (Board, bool) {
	known := idSet(b.IDs())
	var added []Object
	for _, o := range objs {
		if o == nil {
			continue
		}
		id := o.Base().ID
		if _, dup := known[id]; dup || id == "" {
			continue
		}
		known[id] = struct{}{}
		added = append(added, o)
	}
	if len(added) == 0 {
		return b, false
	}

	next := make([]Object, 0, len(b.Objects)+len(added))
	next = append(next, b.Objects...)
	next = append(next, added...)
	return b.withObjects(next, now), true
}

// WithPatched applies p to every object in ids. Objects for which p declines
// or nothing actually differs keep their identity.
func (b Board) WithPatched(ids []string, p Patcher, now int64) (Board, bool) {
	if p == nil {
		return b, false
	}
	return b.mapObjects(ids, now, func(o Object) (Object, bool) {
		patch, ok := p.PatchFor(o)
		if !ok {
			return o, false
		}
		return o.applyPatch(patch)
	})
}

// WithMoved translates every object in ids by (dx, dy). With snap set the
// delta is rounded to the grid first; a delta that rounds to zero is a
// no-op. Non-finite deltas are treated as zero.
func (b Board) WithMoved(ids []string, dx, dy float64, snap bool, now int64) (Board, bool) {
	if !finite(dx) {
		dx = 0
	}
	if !finite(dy) {
		dy = 0
	}
	if snap {
		dx = geometry.Snap(dx, geometry.GridSize)
		dy = geometry.Snap(dy, geometry.GridSize)
	}
	if dx == 0 && dy == 0 {
		return b, false
	}
	return b.mapObjects(ids, now, func(o Object) (Object, bool) {
		return o.Translate(dx, dy), true
	})
}

// WithNoteResized sets the size of the note with the given id. Other kinds
// are left alone. Sizes are clamped.
func (b Board) WithNoteResized(id string, width, height float64, now int64) (Board, bool) {
	if id == "" {
		return b, false
	}
	resize := PatchFunc(func(o Object) (Patch, bool) {
		if o.Kind() != KindNote {
			return Patch{}, false
		}
		return Patch{Width: &width, Height: &height}, true
	})
	return b.WithPatched([]string{id}, resize, now)
}

// WithoutObjects removes every object in ids.
func (b Board) WithoutObjects(ids []string, now int64) (Board, bool) {
	if len(ids) == 0 {
		return b, false
	}
	drop := idSet(ids)
	next := make([]Object, 0, len(b.Objects))
	for _, o := range b.Objects {
		if _, ok := drop[o.Base().ID]; ok {
			continue
		}
		next = append(next, o)
	}
	if len(next) == len(b.Objects) {
		return b, false
	}
	return b.withObjects(next, now), true
}

// WithDuplicates appends a copy of every object in ids, in paint order,
// shifted by offset. It returns the ids of the copies.
func (b Board) WithDuplicates(f *Factory, ids []string, offset float64, now int64) (Board, []string, bool) {
	if len(ids) == 0 || f == nil {
		return b, nil, false
	}
	want := idSet(ids)
	var copies []Object
	for _, o := range b.Objects {
		if _, ok := want[o.Base().ID]; ok {
			copies = append(copies, f.Duplicate(o, offset))
		}
	}
	next, changed := b.WithObjectAdded(now, copies...)
	if !changed {
		return b, nil, false
	}
	newIDs := make([]string, len(copies))
	for i, o := range copies {
		newIDs[i] = o.Base().ID
	}
	return next, newIDs, true
}

func idSet(ids []string) map[string]struct{} {
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return m
}
