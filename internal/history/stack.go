package history

import (
	"sync"
	"time"

	"github.com/dshills/collabboard/internal/board"
	"github.com/dshills/collabboard/internal/selection"
)

// Limits on the number of undo entries.
const (
	DefaultLimit = 60
	MinLimit     = 20
)

// EntryInfo describes one recorded transition.
type EntryInfo struct {
	Description string
	Timestamp   time.Time
}

// entry is a snapshot on the past or future stack. The description names
// the command that leads from this snapshot toward the present.
type entry struct {
	board       board.Board
	selection   selection.Set
	description string
	timestamp   time.Time
}

func (e entry) info() EntryInfo {
	return EntryInfo{Description: e.description, Timestamp: e.timestamp}
}

// History manages the present board and its undo/redo stacks.
type History struct {
	mu sync.Mutex

	past    []entry // oldest first
	present board.Board
	future  []entry // next redo first

	limit int
	now   func() time.Time

	grouping    bool
	groupName   string
	groupPushed bool
}

// Option configures a History.
type Option func(*History)

// WithClock overrides the clock used to stamp commands and entries.
func WithClock(now func() time.Time) Option {
	return func(h *History) {
		h.now = now
	}
}

// New creates a history whose present is b. The limit is normalized with
// NormalizeLimit.
func New(b board.Board, limit int, opts ...Option) *History {
	h := &History{
		present: b,
		limit:   NormalizeLimit(limit),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// NormalizeLimit maps a non-positive limit to DefaultLimit and raises
// anything smaller than MinLimit to MinLimit.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit < MinLimit {
		return MinLimit
	}
	return limit
}

// Execute applies cmd to the present board. When the command changes the
// board, the old present is pushed onto the past, the future is cleared and
// the new selection, sanitized against the new board, is returned. When
// nothing changed sel is returned unchanged and changed is false.
func (h *History) Execute(cmd Command, sel selection.Set) (selection.Set, bool) {
	if cmd == nil {
		return sel, false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	next, nextSel, changed := cmd.Apply(h.present, sel, now)
	if !changed {
		return sel, false
	}

	if !h.grouping || !h.groupPushed {
		desc := cmd.Description()
		if h.grouping && h.groupName != "" {
			desc = h.groupName
		}
		h.pushPastLocked(entry{
			board:       h.present,
			selection:   sel,
			description: desc,
			timestamp:   now,
		})
		h.groupPushed = h.grouping
	}
	h.future = nil
	h.present = next
	return nextSel.SanitizeBoard(next), true
}

// pushPastLocked appends e and drops the oldest entries beyond the limit.
func (h *History) pushPastLocked(e entry) {
	h.past = append(h.past, e)
	if len(h.past) > h.limit {
		excess := len(h.past) - h.limit
		h.past = h.past[excess:]
	}
}

// Undo restores the most recent past snapshot. The current present moves
// to the front of the future together with sel. ok is false when there is
// nothing to undo.
func (h *History) Undo(sel selection.Set) (selection.Set, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.past) == 0 {
		return sel, false
	}
	h.endGroupLocked()

	prev := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]

	future := make([]entry, 0, len(h.future)+1)
	future = append(future, entry{
		board:       h.present,
		selection:   sel,
		description: prev.description,
		timestamp:   prev.timestamp,
	})
	h.future = append(future, h.future...)

	h.present = prev.board
	return prev.selection.SanitizeBoard(prev.board), true
}

// Redo re-applies the next future snapshot. ok is false when there is
// nothing to redo.
func (h *History) Redo(sel selection.Set) (selection.Set, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.future) == 0 {
		return sel, false
	}
	h.endGroupLocked()

	next := h.future[0]
	h.future = h.future[1:]

	h.pushPastLocked(entry{
		board:       h.present,
		selection:   sel,
		description: next.description,
		timestamp:   next.timestamp,
	})
	h.present = next.board
	return next.selection.SanitizeBoard(next.board), true
}

// Reset replaces the present and drops both stacks.
func (h *History) Reset(b board.Board) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.past = nil
	h.future = nil
	h.present = b
	h.endGroupLocked()
}

// Present returns the current board.
func (h *History) Present() board.Board {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.present
}

// Past returns the past boards, oldest first.
func (h *History) Past() []board.Board {
	h.mu.Lock()
	defer h.mu.Unlock()
	return boards(h.past)
}

// Future returns the future boards, next redo first.
func (h *History) Future() []board.Board {
	h.mu.Lock()
	defer h.mu.Unlock()
	return boards(h.future)
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.past) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.future) > 0
}

// UndoCount returns the number of undo steps available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.past)
}

// RedoCount returns the number of redo steps available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.future)
}

// UndoInfo describes the undo steps, oldest first.
func (h *History) UndoInfo() []EntryInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return infos(h.past)
}

// RedoInfo describes the redo steps, next redo first.
func (h *History) RedoInfo() []EntryInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return infos(h.future)
}

// PeekUndo describes the step Undo would revert.
func (h *History) PeekUndo() (EntryInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.past) == 0 {
		return EntryInfo{}, false
	}
	return h.past[len(h.past)-1].info(), true
}

// PeekRedo describes the step Redo would re-apply.
func (h *History) PeekRedo() (EntryInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.future) == 0 {
		return EntryInfo{}, false
	}
	return h.future[0].info(), true
}

// SetLimit changes the undo limit. Oldest entries beyond the new limit are
// dropped.
func (h *History) SetLimit(limit int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.limit = NormalizeLimit(limit)
	if len(h.past) > h.limit {
		excess := len(h.past) - h.limit
		h.past = h.past[excess:]
	}
}

// Limit returns the undo limit.
func (h *History) Limit() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.limit
}

// BeginGroup starts collapsing executed commands into one undo entry named
// name. Nested calls are ignored.
func (h *History) BeginGroup(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		return
	}
	h.grouping = true
	h.groupName = name
	h.groupPushed = false
}

// EndGroup finishes the current group.
func (h *History) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.endGroupLocked()
}

// IsGrouping returns true while a group is open.
func (h *History) IsGrouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.grouping
}

func (h *History) endGroupLocked() {
	h.grouping = false
	h.groupName = ""
	h.groupPushed = false
}

func boards(entries []entry) []board.Board {
	out := make([]board.Board, len(entries))
	for i, e := range entries {
		out[i] = e.board
	}
	return out
}

func infos(entries []entry) []EntryInfo {
	out := make([]EntryInfo, len(entries))
	for i, e := range entries {
		out[i] = e.info()
	}
	return out
}
