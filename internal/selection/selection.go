// Package selection holds the ordered set of selected object ids.
//
// A Set is an immutable value. Every operation returns a new Set, so a Set
// can be stored alongside a board snapshot and restored later.
package selection

import (
	"slices"

	"github.com/dshills/collabboard/internal/board"
)

// Set is an ordered, duplicate-free sequence of object ids.
type Set struct {
	ids []string
}

// New returns a set holding ids in order, dropping repeats and empty ids.
func New(ids ...string) Set {
	if len(ids) == 0 {
		return Set{}
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return Set{ids: out}
}

// IDs returns a copy of the ids in selection order.
func (s Set) IDs() []string {
	return slices.Clone(s.ids)
}

// Len returns the number of selected ids.
func (s Set) Len() int {
	return len(s.ids)
}

// Empty reports whether nothing is selected.
func (s Set) Empty() bool {
	return len(s.ids) == 0
}

// Has reports whether id is selected.
func (s Set) Has(id string) bool {
	return slices.Contains(s.ids, id)
}

// Toggle adds id when absent and removes it when present.
func (s Set) Toggle(id string) Set {
	if id == "" {
		return s
	}
	if s.Has(id) {
		return s.filter(func(x string) bool { return x != id })
	}
	out := make([]string, len(s.ids), len(s.ids)+1)
	copy(out, s.ids)
	return Set{ids: append(out, id)}
}

// Sanitize keeps only the ids for which known returns true.
func (s Set) Sanitize(known func(id string) bool) Set {
	return s.filter(known)
}

// SanitizeBoard keeps only the ids present on b.
func (s Set) SanitizeBoard(b board.Board) Set {
	if len(s.ids) == 0 {
		return s
	}
	present := make(map[string]struct{}, b.Len())
	for _, id := range b.IDs() {
		present[id] = struct{}{}
	}
	return s.filter(func(id string) bool {
		_, ok := present[id]
		return ok
	})
}

// Equal reports whether both sets hold the same ids in the same order.
func (s Set) Equal(o Set) bool {
	return slices.Equal(s.ids, o.ids)
}

func (s Set) filter(keep func(string) bool) Set {
	var out []string
	for i, id := range s.ids {
		if keep(id) {
			if out != nil {
				out = append(out, id)
			}
			continue
		}
		if out == nil {
			out = make([]string, i, len(s.ids))
			copy(out, s.ids[:i])
		}
	}
	if out == nil {
		return s
	}
	return Set{ids: out}
}
