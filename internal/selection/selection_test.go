package selection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/collabboard/internal/board"
	"github.com/dshills/collabboard/internal/ids"
)

func TestNewDedupes(t *testing.T) {
	s := New("a", "b", "a", "", "c", "b")
	assert.Equal(t, []string{"a", "b", "c"}, s.IDs())
	assert.Equal(t, 3, s.Len())
	assert.True(t, New().Empty())
}

func TestIDsReturnsCopy(t *testing.T) {
	s := New("a", "b")
	got := s.IDs()
	got[0] = "z"
	assert.Equal(t, []string{"a", "b"}, s.IDs())
}

func TestToggle(t *testing.T) {
	s := New("a", "b")

	added := s.Toggle("c")
	assert.Equal(t, []string{"a", "b", "c"}, added.IDs())
	assert.Equal(t, []string{"a", "b"}, s.IDs(), "receiver must not change")

	removed := added.Toggle("a")
	assert.Equal(t, []string{"b", "c"}, removed.IDs())

	assert.True(t, s.Toggle("").Equal(s))
}

func TestSanitize(t *testing.T) {
	s := New("a", "b", "c", "d")
	keep := map[string]bool{"b": true, "d": true}

	got := s.Sanitize(func(id string) bool { return keep[id] })
	assert.Equal(t, []string{"b", "d"}, got.IDs())

	same := s.Sanitize(func(string) bool { return true })
	assert.True(t, same.Equal(s))

	none := s.Sanitize(func(string) bool { return false })
	assert.True(t, none.Empty())
}

func TestSanitizeBoard(t *testing.T) {
	f := &board.Factory{IDs: ids.NewGenerator(), Now: time.Now}
	b := f.Demo()
	all := b.IDs()

	s := New(all[0], "ghost", all[2])
	got := s.SanitizeBoard(b)
	assert.Equal(t, []string{all[0], all[2]}, got.IDs())

	next, changed := b.WithoutObjects(all[:1], 0)
	require.True(t, changed)
	assert.Equal(t, []string{all[2]}, got.SanitizeBoard(next).IDs())
}

func TestEqual(t *testing.T) {
	assert.True(t, New("a", "b").Equal(New("a", "b")))
	assert.False(t, New("a", "b").Equal(New("b", "a")))
	assert.True(t, New().Equal(Set{}))
}
