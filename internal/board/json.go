package board

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// MarshalJSON writes the flat tagged shape {"type":"note","id":...}.
func (n Note) MarshalJSON() ([]byte, error) {
	type note Note
	return json.Marshal(struct {
		Type Kind `json:"type"`
		note
	}{KindNote, note(n)})
}

// MarshalJSON writes the flat tagged shape {"type":"rect","id":...}.
func (r Rect) MarshalJSON() ([]byte, error) {
	type rect Rect
	return json.Marshal(struct {
		Type Kind `json:"type"`
		rect
	}{KindRect, rect(r)})
}

// MarshalJSON writes the flat tagged shape {"type":"arrow","id":...}.
func (a Arrow) MarshalJSON() ([]byte, error) {
	type arrow Arrow
	return json.Marshal(struct {
		Type Kind `json:"type"`
		arrow
	}{KindArrow, arrow(a)})
}

type boardJSON struct {
	Version       int               `json:"version"`
	Objects       []json.RawMessage `json:"objects"`
	LastUpdatedAt int64             `json:"lastUpdatedAt"`
}

// MarshalJSON implements json.Marshaler.
func (b Board) MarshalJSON() ([]byte, error) {
	objs := b.Objects
	if objs == nil {
		objs = []Object{}
	}
	return json.Marshal(struct {
		Version       int      `json:"version"`
		Objects       []Object `json:"objects"`
		LastUpdatedAt int64    `json:"lastUpdatedAt"`
	}{b.Version, objs, b.LastUpdatedAt})
}

// UnmarshalJSON implements json.Unmarshaler. Objects with an unknown type
// tag, a field of the wrong type, a missing id or a repeated id are
// dropped. Sizes and stroke widths are clamped.
func (b *Board) UnmarshalJSON(data []byte) error {
	var raw boardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	objs := make([]Object, 0, len(raw.Objects))
	seen := make(map[string]struct{}, len(raw.Objects))
	for _, msg := range raw.Objects {
		kind, err := ParseKind(gjson.GetBytes(msg, "type").String())
		if err != nil {
			continue
		}
		o, err := decodeObject(kind, msg)
		if err != nil {
			continue
		}
		id := o.Base().ID
		if _, dup := seen[id]; dup || id == "" {
			continue
		}
		seen[id] = struct{}{}
		objs = append(objs, o)
	}

	*b = Board{
		Version:       raw.Version,
		Objects:       objs,
		LastUpdatedAt: raw.LastUpdatedAt,
	}
	return nil
}

// DecodeObject parses a single tagged object.
func DecodeObject(data []byte) (Object, error) {
	kind, err := ParseKind(gjson.GetBytes(data, "type").String())
	if err != nil {
		return nil, err
	}
	return decodeObject(kind, data)
}

func decodeObject(kind Kind, data []byte) (Object, error) {
	switch kind {
	case KindNote:
		var n Note
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		n.Width, n.Height = ClampWidth(n.Width), ClampHeight(n.Height)
		return n, nil
	case KindRect:
		var r Rect
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, err
		}
		r.Width, r.Height = ClampWidth(r.Width), ClampHeight(r.Height)
		return r, nil
	case KindArrow:
		var a Arrow
		if err := json.Unmarshal(data, &a); err != nil {
			return nil, err
		}
		a.StrokeWidth = ClampStrokeWidth(a.StrokeWidth)
		return a, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}
