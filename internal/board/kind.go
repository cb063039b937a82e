package board

import (
	"errors"
	"fmt"
)

// Kind identifies a shape variant.
type Kind string

const (
	// KindNote is a sticky note.
	KindNote Kind = "note"
	// KindRect is a rectangle.
	KindRect Kind = "rect"
	// KindArrow is an arrow between two points.
	KindArrow Kind = "arrow"
)

// Kinds lists every shape kind in toolbar order.
var Kinds = []Kind{KindNote, KindRect, KindArrow}

// ErrUnknownKind is returned for an unrecognised shape kind.
var ErrUnknownKind = errors.New("unknown object kind")

// ParseKind converts a type tag into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindNote, KindRect, KindArrow:
		return Kind(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// String returns the type tag.
func (k Kind) String() string {
	return string(k)
}

// Title returns the human-readable name used in object labels.
func (k Kind) Title() string {
	switch k {
	case KindNote:
		return "Note"
	case KindRect:
		return "Rectangle"
	case KindArrow:
		return "Arrow"
	default:
		return "Object"
	}
}

// DefaultColor returns the fill/stroke color a new object of this kind gets.
func (k Kind) DefaultColor() string {
	switch k {
	case KindRect:
		return "#60a5fa"
	case KindArrow:
		return "#f43f5e"
	default:
		return "#fbbf24"
	}
}
