package interaction

import (
	"strings"

	"github.com/dshills/collabboard/internal/geometry"
)

// Button identifies a pointer button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonPrimary is the main (left) button or a touch contact.
	ButtonPrimary
	// ButtonMiddle is the middle button.
	ButtonMiddle
	// ButtonSecondary is the right button.
	ButtonSecondary
)

// String returns the button name.
func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonMiddle:
		return "middle"
	case ButtonSecondary:
		return "secondary"
	default:
		return "none"
	}
}

// Modifier is a set of keyboard modifiers held during an event.
type Modifier uint8

// ModNone indicates no modifiers.
const ModNone Modifier = 0

const (
	// ModShift is the Shift key.
	ModShift Modifier = 1 << iota
	// ModCtrl is the Control key.
	ModCtrl
	// ModAlt is the Alt (Option) key.
	ModAlt
	// ModMeta is the Meta (Cmd/Win) key.
	ModMeta
)

// Has returns true if m contains mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// HasShift returns true if Shift is pressed.
func (m Modifier) HasShift() bool {
	return m.Has(ModShift)
}

// String returns a representation like "Ctrl+Shift".
func (m Modifier) String() string {
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	if m.Has(ModMeta) {
		parts = append(parts, "Meta")
	}
	return strings.Join(parts, "+")
}

// TargetKind says what a pointer-down landed on.
type TargetKind uint8

const (
	// TargetCanvas is empty canvas.
	TargetCanvas TargetKind = iota
	// TargetObject is the body of an object.
	TargetObject
	// TargetResizeHandle is the resize affordance of a selected note.
	TargetResizeHandle
)

// String returns the target kind name.
func (k TargetKind) String() string {
	switch k {
	case TargetObject:
		return "object"
	case TargetResizeHandle:
		return "resize-handle"
	default:
		return "canvas"
	}
}

// Target is the element under a pointer-down.
type Target struct {
	Kind TargetKind
	// ID is the object id for object and handle targets.
	ID string
	// NoDrag marks a region of the object (an editable text field, say)
	// that selects without starting a drag.
	NoDrag bool
}

// Event is one input event. The set of implementations is closed.
type Event interface {
	isEvent()
}

// PointerDown starts a gesture.
type PointerDown struct {
	PointerID int
	Button    Button
	Client    geometry.Point
	Modifiers Modifier
	Target    Target
}

// PointerMove reports pointer motion.
type PointerMove struct {
	PointerID int
	Client    geometry.Point
}

// PointerUp ends a gesture normally.
type PointerUp struct {
	PointerID int
}

// PointerCancel ends a gesture abnormally (capture lost, touch cancelled).
type PointerCancel struct {
	PointerID int
}

// Wheel is one wheel step at Client. Positive DeltaY zooms out.
type Wheel struct {
	Client geometry.Point
	DeltaY float64
}

func (PointerDown) isEvent()   {}
func (PointerMove) isEvent()   {}
func (PointerUp) isEvent()     {}
func (PointerCancel) isEvent() {}
func (Wheel) isEvent()         {}

// Env describes the canvas container.
type Env struct {
	// Origin is the client-space position of the container's top-left
	// corner.
	Origin geometry.Point
	// WideViewport enables shift-click selection toggling. Narrow (touch)
	// layouts treat shift like a plain press.
	WideViewport bool
}
