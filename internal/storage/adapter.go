package storage

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dshills/collabboard/internal/board"
)

// LoadResult is the outcome of Adapter.Load.
type LoadResult struct {
	Board board.Board
	// FirstRun is true when nothing usable was stored and the board came
	// from the seed.
	FirstRun bool
}

// Adapter reads and writes board snapshots through a Backend. Failures are
// logged and never returned.
type Adapter struct {
	backend Backend
	log     logrus.FieldLogger
	now     func() time.Time
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithLogger sets the logger used for swallowed failures.
func WithLogger(l logrus.FieldLogger) AdapterOption {
	return func(a *Adapter) { a.log = l }
}

// WithClock sets the clock used for envelope timestamps.
func WithClock(now func() time.Time) AdapterOption {
	return func(a *Adapter) { a.now = now }
}

// NewAdapter returns an adapter over backend.
func NewAdapter(backend Backend, opts ...AdapterOption) *Adapter {
	a := &Adapter{backend: backend, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		a.log = l
	}
	return a
}

// Backend returns the underlying backend.
func (a *Adapter) Backend() Backend {
	return a.backend
}

// Save writes b. Boards that fail validation are skipped.
func (a *Adapter) Save(ctx context.Context, b board.Board) {
	if err := b.Validate(); err != nil {
		a.log.WithError(err).Debug("skipping save of invalid board")
		return
	}
	payload, err := Encode(b, a.now())
	if err != nil {
		a.log.WithError(err).Warn("encode snapshot")
		return
	}
	if err := a.backend.Put(ctx, payload); err != nil {
		a.log.WithError(err).Warn("save snapshot")
		return
	}
	a.log.WithField("objects", b.Len()).Debug("snapshot saved")
}

// Load returns the stored board. When nothing usable is stored it calls
// seed, saves the result and reports FirstRun.
func (a *Adapter) Load(ctx context.Context, seed func() board.Board) LoadResult {
	payload, err := a.backend.Get(ctx)
	switch {
	case errors.Is(err, ErrNotFound):
		a.log.Debug("no stored snapshot")
	case err != nil:
		a.log.WithError(err).Warn("load snapshot")
	default:
		b, err := Decode(payload)
		if err == nil {
			return LoadResult{Board: b}
		}
		a.log.WithError(err).Warn("discarding stored snapshot")
	}

	b := seed()
	a.Save(ctx, b)
	return LoadResult{Board: b, FirstRun: true}
}

// Clear removes the stored snapshot.
func (a *Adapter) Clear(ctx context.Context) {
	if err := a.backend.Delete(ctx); err != nil {
		a.log.WithError(err).Warn("clear snapshot")
	}
}
