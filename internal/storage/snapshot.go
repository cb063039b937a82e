package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/collabboard/internal/board"
	"github.com/dshills/collabboard/internal/config"
)

// StorageVersion is the envelope format version.
const StorageVersion = 1

// DefaultKey names the snapshot in keyed backends.
const DefaultKey = config.DefaultStorageKey

// isoMillis matches JavaScript's Date.toISOString output.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// ErrInvalidSnapshot is returned for payloads that fail structural checks.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Encode wraps b in a versioned envelope stamped with now.
func Encode(b board.Board, now time.Time) ([]byte, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("marshal board: %w", err)
	}

	out := []byte(`{}`)
	if out, err = sjson.SetBytes(out, "storageVersion", StorageVersion); err != nil {
		return nil, err
	}
	if out, err = sjson.SetBytes(out, "updatedAt", now.UTC().Format(isoMillis)); err != nil {
		return nil, err
	}
	if out, err = sjson.SetRawBytes(out, "data", data); err != nil {
		return nil, err
	}
	return out, nil
}

// Validate checks the envelope shape: storageVersion 1, data.version 1 and
// data.objects an array. Individual objects are not inspected.
func Validate(payload []byte) error {
	if !gjson.ValidBytes(payload) {
		return fmt.Errorf("%w: malformed json", ErrInvalidSnapshot)
	}
	doc := gjson.ParseBytes(payload)
	if !doc.IsObject() {
		return fmt.Errorf("%w: not an object", ErrInvalidSnapshot)
	}
	if v := doc.Get("storageVersion"); v.Type != gjson.Number || v.Num != StorageVersion {
		return fmt.Errorf("%w: storageVersion %s", ErrInvalidSnapshot, v.Raw)
	}
	data := doc.Get("data")
	if !data.IsObject() {
		return fmt.Errorf("%w: data is not an object", ErrInvalidSnapshot)
	}
	if v := data.Get("version"); v.Type != gjson.Number || v.Num != board.Version {
		return fmt.Errorf("%w: board version %s", ErrInvalidSnapshot, v.Raw)
	}
	if !data.Get("objects").IsArray() {
		return fmt.Errorf("%w: objects is not an array", ErrInvalidSnapshot)
	}
	return nil
}

// Decode validates payload and returns the board inside it.
func Decode(payload []byte) (board.Board, error) {
	if err := Validate(payload); err != nil {
		return board.Board{}, err
	}
	var b board.Board
	raw := gjson.GetBytes(payload, "data").Raw
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		return board.Board{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return b, nil
}

// UpdatedAt returns the envelope timestamp.
func UpdatedAt(payload []byte) (time.Time, bool) {
	v := gjson.GetBytes(payload, "updatedAt")
	if v.Type != gjson.String {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, v.String())
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
