package session

import (
	"fmt"

	"github.com/dshills/collabboard/internal/board"
)

// Tool is the active canvas tool.
type Tool string

const (
	// ToolSelect selects, drags and pans.
	ToolSelect Tool = "select"
	// ToolNote places sticky notes.
	ToolNote Tool = "note"
	// ToolRect places rectangles.
	ToolRect Tool = "rect"
	// ToolArrow places arrows.
	ToolArrow Tool = "arrow"
)

// Tools lists every tool in toolbar order.
var Tools = []Tool{ToolSelect, ToolNote, ToolRect, ToolArrow}

// ParseTool converts a name into a Tool.
func ParseTool(s string) (Tool, error) {
	for _, t := range Tools {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tool %q", s)
}

// Kind returns the shape a placement tool creates. ok is false for
// ToolSelect.
func (t Tool) Kind() (board.Kind, bool) {
	switch t {
	case ToolNote:
		return board.KindNote, true
	case ToolRect:
		return board.KindRect, true
	case ToolArrow:
		return board.KindArrow, true
	}
	return "", false
}

// Label returns the toolbar label.
func (t Tool) Label() string {
	switch t {
	case ToolSelect:
		return "Select"
	case ToolNote:
		return "Sticky"
	case ToolRect:
		return "Rect"
	case ToolArrow:
		return "Arrow"
	}
	return string(t)
}
