// Package ids generates object identifiers of the form "prefix-suffix".
package ids

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// DefaultPrefix is used when Next is called with an empty prefix.
const DefaultPrefix = "obj"

// Generator hands out identifiers that are unique for its lifetime.
// It prefers random UUIDs; when the random source fails it falls back to a
// per-generator counter combined with a timestamp.
//
// A Generator is owned by a session; tests create their own so sequences
// never leak between instances.
type Generator struct {
	seq    atomic.Uint64
	random func() (uuid.UUID, error)
	now    func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithRandom overrides the random UUID source.
func WithRandom(fn func() (uuid.UUID, error)) Option {
	return func(g *Generator) {
		g.random = fn
	}
}

// WithClock overrides the clock used by the fallback form.
func WithClock(fn func() time.Time) Option {
	return func(g *Generator) {
		g.now = fn
	}
}

// NewGenerator creates a generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		random: uuid.NewRandom,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Next returns a new identifier with the given prefix.
func (g *Generator) Next(prefix string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	if g.random != nil {
		if id, err := g.random(); err == nil {
			return prefix + "-" + id.String()
		}
	}

	n := g.seq.Add(1)
	stamp := strconv.FormatInt(g.now().UnixMilli(), 36)
	suffix := strconv.FormatUint(n, 36)
	if len(suffix) < 3 {
		suffix = strings.Repeat("0", 3-len(suffix)) + suffix
	}
	return fmt.Sprintf("%s-%s-%s", prefix, stamp, suffix)
}
