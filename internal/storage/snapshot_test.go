package storage

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/dshills/collabboard/internal/board"
	"github.com/dshills/collabboard/internal/ids"
)

var testNow = time.Date(2024, 3, 1, 12, 30, 45, 123_000_000, time.UTC)

func demoBoard() board.Board {
	f := &board.Factory{
		IDs: ids.NewGenerator(),
		Now: func() time.Time { return testNow },
	}
	return f.Demo()
}

func TestEncodeEnvelope(t *testing.T) {
	b := demoBoard()
	payload, err := Encode(b, testNow)
	require.NoError(t, err)

	doc := gjson.ParseBytes(payload)
	assert.Equal(t, int64(1), doc.Get("storageVersion").Int())
	assert.Equal(t, "2024-03-01T12:30:45.123Z", doc.Get("updatedAt").String())
	assert.Equal(t, int64(1), doc.Get("data.version").Int())
	assert.Equal(t, int64(3), doc.Get("data.objects.#").Int())
	assert.Equal(t, "note", doc.Get("data.objects.0.type").String())

	at, ok := UpdatedAt(payload)
	require.True(t, ok)
	assert.True(t, at.Equal(testNow))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	boards := map[string]board.Board{
		"demo":  demoBoard(),
		"empty": board.Empty(testNow.UnixMilli()),
	}
	for name, b := range boards {
		t.Run(name, func(t *testing.T) {
			payload, err := Encode(b, testNow)
			require.NoError(t, err)

			got, err := Decode(payload)
			require.NoError(t, err)
			if diff := cmp.Diff(b, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		ok      bool
	}{
		{"valid", `{"storageVersion":1,"updatedAt":"x","data":{"version":1,"objects":[]}}`, true},
		{"unknown objects kept for decode", `{"storageVersion":1,"data":{"version":1,"objects":[{"type":"circle"}]}}`, true},
		{"malformed", `{"storageVersion":1,`, false},
		{"array", `[]`, false},
		{"wrong storage version", `{"storageVersion":2,"data":{"version":1,"objects":[]}}`, false},
		{"string storage version", `{"storageVersion":"1","data":{"version":1,"objects":[]}}`, false},
		{"fractional storage version", `{"storageVersion":1.5,"data":{"version":1,"objects":[]}}`, false},
		{"fractional board version", `{"storageVersion":1,"data":{"version":1.5,"objects":[]}}`, false},
		{"missing data", `{"storageVersion":1}`, false},
		{"wrong board version", `{"storageVersion":1,"data":{"version":2,"objects":[]}}`, false},
		{"objects not array", `{"storageVersion":1,"data":{"version":1,"objects":{}}}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate([]byte(tt.payload))
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidSnapshot)
		})
	}
}

func TestDecodeDropsUnknownObjects(t *testing.T) {
	payload := `{"storageVersion":1,"data":{"version":1,"lastUpdatedAt":5,"objects":[
		{"id":"c1","type":"circle","x":0,"y":0},
		{"id":"n1","type":"note","x":1,"y":2,"width":220,"height":160,"text":"hi","color":"#fbbf24","createdAt":1,"updatedAt":1}
	]}}`
	b, err := Decode([]byte(payload))
	require.NoError(t, err)
	require.Equal(t, 1, b.Len())
	assert.Equal(t, []string{"n1"}, b.IDs())
	assert.Equal(t, int64(5), b.LastUpdatedAt)
}

func TestUpdatedAtMissing(t *testing.T) {
	_, ok := UpdatedAt([]byte(`{"storageVersion":1}`))
	assert.False(t, ok)
}
