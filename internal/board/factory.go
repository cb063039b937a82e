package board

import (
	"time"

	"github.com/dshills/collabboard/internal/ids"
)

// Creation defaults.
const (
	DefaultNoteWidth   = 220.0
	DefaultNoteHeight  = 160.0
	DefaultNoteText    = "Add your note here"
	DefaultRectWidth   = 240.0
	DefaultRectHeight  = 140.0
	DefaultArrowDX     = 180.0
	DefaultArrowDY     = 70.0
	DefaultStrokeWidth = 3.0

	// DuplicateOffset is how far a copy is shifted on both axes.
	DuplicateOffset = 28.0
)

// Factory creates objects with fresh identifiers and timestamps.
type Factory struct {
	IDs *ids.Generator
	Now func() time.Time
}

// NewFactory returns a factory backed by its own id generator and the wall
// clock.
func NewFactory() *Factory {
	return &Factory{IDs: ids.NewGenerator(), Now: time.Now}
}

// CreateOption customises a new object.
type CreateOption func(*createOptions)

type createOptions struct {
	color string
	text  *string
}

// WithColor sets the initial color. Invalid colors fall back to the kind
// default.
func WithColor(color string) CreateOption {
	return func(o *createOptions) {
		o.color = color
	}
}

// WithText sets the initial text.
func WithText(text string) CreateOption {
	return func(o *createOptions) {
		o.text = &text
	}
}

func (f *Factory) stamp() int64 {
	if f.Now == nil {
		return time.Now().UnixMilli()
	}
	return f.Now().UnixMilli()
}

func (f *Factory) nextID(k Kind) string {
	if f.IDs == nil {
		f.IDs = ids.NewGenerator()
	}
	return f.IDs.Next(string(k))
}

// New creates an object of kind k anchored at (x, y). Non-finite
// coordinates are treated as zero.
func (f *Factory) New(k Kind, x, y float64, opts ...CreateOption) (Object, error) {
	if _, err := ParseKind(string(k)); err != nil {
		return nil, err
	}
	if !finite(x) {
		x = 0
	}
	if !finite(y) {
		y = 0
	}

	var o createOptions
	for _, opt := range opts {
		opt(&o)
	}
	color, ok := NormalizeColor(o.color)
	if !ok {
		color = k.DefaultColor()
	}

	now := f.stamp()
	common := Common{
		ID:        f.nextID(k),
		X:         x,
		Y:         y,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	text := func(def string) string {
		if o.text != nil {
			return *o.text
		}
		return def
	}

	switch k {
	case KindNote:
		return Note{
			Common: common,
			Width:  DefaultNoteWidth,
			Height: DefaultNoteHeight,
			Text:   text(DefaultNoteText),
		}, nil
	case KindRect:
		return Rect{
			Common: common,
			Width:  DefaultRectWidth,
			Height: DefaultRectHeight,
			Text:   text(""),
		}, nil
	default:
		return Arrow{
			Common:      common,
			X2:          x + DefaultArrowDX,
			Y2:          y + DefaultArrowDY,
			StrokeWidth: DefaultStrokeWidth,
			Text:        text(""),
		}, nil
	}
}

// Duplicate returns a copy of o with a fresh id, every positional field
// shifted by offset and both timestamps reset. o is not modified.
func (f *Factory) Duplicate(o Object, offset float64) Object {
	now := f.stamp()
	c := o.Base()
	c.ID = f.nextID(o.Kind())
	c.CreatedAt = now
	c.UpdatedAt = now
	return o.withBase(c).Translate(offset, offset)
}

// Demo returns the board shown on first run.
func (f *Factory) Demo() Board {
	note, _ := f.New(KindNote, 120, 120,
		WithText("Welcome to Collab Board Lite. Drag, edit, and create."))
	rect, _ := f.New(KindRect, 460, 150, WithText("Goal\nShip the MVP"))
	arrow, _ := f.New(KindArrow, 320, 220)
	a := arrow.(Arrow)
	a.X2, a.Y2 = 460, 220

	return Board{
		Version:       Version,
		Objects:       []Object{note, rect, a},
		LastUpdatedAt: f.stamp(),
	}
}
