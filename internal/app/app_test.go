package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/collabboard/internal/board"
	"github.com/dshills/collabboard/internal/config"
	"github.com/dshills/collabboard/internal/geometry"
	"github.com/dshills/collabboard/internal/storage"
)

func testClock() time.Time { return time.UnixMilli(1_700_000_000_000) }

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.Backend = backend
	cfg.Storage.Path = filepath.Join(t.TempDir(), "board.json")
	cfg.Logging.Level = "error"
	return &cfg
}

func newTestApp(t *testing.T, cfg *config.Config) *Application {
	t.Helper()
	app, err := New(Options{Config: cfg, Now: testClock})
	require.NoError(t, err)
	app.Logger().SetOutput(io.Discard)
	t.Cleanup(app.Shutdown)
	return app
}

func TestFirstRunSeedsDemo(t *testing.T) {
	app := newTestApp(t, testConfig(t, config.BackendMemory))

	assert.True(t, app.FirstRun())
	assert.True(t, app.Session().ShowHint())
	require.Len(t, app.Session().Objects(), 3)
	assert.False(t, app.Session().CanUndo())
}

func TestChangesArePersisted(t *testing.T) {
	app := newTestApp(t, testConfig(t, config.BackendMemory))

	_, ok := app.Session().AddObjectAt(board.KindRect, geometry.Point{X: 10, Y: 10})
	require.True(t, ok)

	payload, err := app.store.Get(context.Background())
	require.NoError(t, err)
	b, err := storage.Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, app.Session().Board().IDs(), b.IDs())

	app.Session().Undo()
	payload, err = app.store.Get(context.Background())
	require.NoError(t, err)
	b, err = storage.Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, 3, b.Len())
}

func TestReloadFromFileBackend(t *testing.T) {
	cfg := testConfig(t, config.BackendFile)

	first, err := New(Options{Config: cfg, Now: testClock})
	require.NoError(t, err)
	first.Logger().SetOutput(io.Discard)
	_, ok := first.Session().AddObjectAt(board.KindNote, geometry.Point{X: 500, Y: 500}, board.WithText("kept"))
	require.True(t, ok)
	want := first.Session().Board().IDs()
	first.Shutdown()

	second := newTestApp(t, cfg)
	assert.False(t, second.FirstRun())
	assert.False(t, second.Session().ShowHint())
	assert.Equal(t, want, second.Session().Board().IDs())
}

func TestClearBoard(t *testing.T) {
	app := newTestApp(t, testConfig(t, config.BackendMemory))
	app.Session().SetSelectedIDs(app.Session().Board().IDs()...)

	app.ClearBoard(context.Background())
	assert.Empty(t, app.Session().Objects())
	assert.Empty(t, app.Session().SelectedIDs())
	assert.False(t, app.Session().CanUndo())
}

func TestRunScript(t *testing.T) {
	app := newTestApp(t, testConfig(t, config.BackendMemory))
	path := filepath.Join(t.TempDir(), "seed.lua")
	require.NoError(t, os.WriteFile(path, []byte(`
		board.add("note", 0, 0)
		print("count", board.count())
	`), 0o644))

	var out strings.Builder
	require.NoError(t, app.RunScript(context.Background(), path, &out))
	assert.Equal(t, "count\t4\n", out.String())
	assert.Equal(t, "4 objects (2 notes, 1 rectangles, 1 arrows), 1 selected, 1 undo, 0 redo", app.Summary())
}

func TestApplyHotSettings(t *testing.T) {
	app := newTestApp(t, testConfig(t, config.BackendMemory))

	next := app.Config()
	next.Canvas.SnapToGrid = true
	next.History.Limit = 25
	next.Logging.Level = "debug"
	next.Storage.Backend = config.BackendRedis
	app.Apply(next)

	assert.True(t, app.Session().SnapToGrid())
	assert.Equal(t, 25, app.Session().HistoryLimit())
	assert.Equal(t, logrus.DebugLevel, app.Logger().GetLevel())
	// Storage settings are not hot-reloadable.
	assert.Equal(t, config.BackendMemory, app.Config().Storage.Backend)
}

func TestReloadWaitsForScript(t *testing.T) {
	app := newTestApp(t, testConfig(t, config.BackendMemory))
	next := app.Config()
	next.Canvas.SnapToGrid = true

	// Holding the session lock stands in for a running script.
	app.sessionMu.Lock()
	done := make(chan struct{})
	go func() {
		app.onReload(next, nil)
		close(done)
	}()

	assert.Never(t, func() bool { return app.Config().Canvas.SnapToGrid }, 50*time.Millisecond, 5*time.Millisecond)
	app.sessionMu.Unlock()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("reload did not run")
	}
	assert.True(t, app.Config().Canvas.SnapToGrid)
	assert.True(t, app.Session().SnapToGrid())
}

func TestInitErrors(t *testing.T) {
	cfg := testConfig(t, "tape")
	_, err := New(Options{Config: cfg, Now: testClock})
	require.Error(t, err)

	var ie *InitError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "config", ie.Component)
	assert.ErrorIs(t, err, config.ErrUnknownBackend)
}

func TestRunTerminalStopsOnCancel(t *testing.T) {
	app := newTestApp(t, testConfig(t, config.BackendMemory))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.RunTerminal(ctx, tcell.NewSimulationScreen("UTF-8")) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("RunTerminal did not return")
	}
}

func TestShutdownTwice(t *testing.T) {
	app, err := New(Options{Config: testConfig(t, config.BackendMemory), Now: testClock})
	require.NoError(t, err)
	app.Logger().SetOutput(io.Discard)
	app.Shutdown()
	assert.NotPanics(t, app.Shutdown)
}
