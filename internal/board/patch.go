package board

// Patch is a partial update. Nil fields are left alone. Fields that do not
// apply to a shape (Width on an arrow, StrokeWidth on a note) are ignored.
type Patch struct {
	Color       *string  `json:"color,omitempty"`
	Text        *string  `json:"text,omitempty"`
	Width       *float64 `json:"width,omitempty"`
	Height      *float64 `json:"height,omitempty"`
	StrokeWidth *float64 `json:"strokeWidth,omitempty"`
}

// IsZero reports whether the patch sets no field.
func (p Patch) IsZero() bool {
	return p.Color == nil && p.Text == nil && p.Width == nil &&
		p.Height == nil && p.StrokeWidth == nil
}

// PatchFor implements Patcher. A literal patch applies to every object.
func (p Patch) PatchFor(Object) (Patch, bool) {
	return p, true
}

// Patcher produces the patch for one object of a batch edit.
// Returning ok=false skips that object.
type Patcher interface {
	PatchFor(o Object) (p Patch, ok bool)
}

// PatchFunc adapts a function to the Patcher interface.
type PatchFunc func(o Object) (Patch, bool)

// PatchFor implements Patcher.
func (f PatchFunc) PatchFor(o Object) (Patch, bool) {
	if f == nil {
		return Patch{}, false
	}
	return f(o)
}

// Ptr returns a pointer to v. Handy for building patches inline.
func Ptr[T any](v T) *T {
	return &v
}

// Apply returns o with p applied and whether any field actually changed.
// UpdatedAt is not touched; callers stamp it when committing.
func Apply(o Object, p Patch) (Object, bool) {
	return o.applyPatch(p)
}
