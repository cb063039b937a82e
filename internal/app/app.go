// Package app wires configuration, logging, storage, the editing session
// and the interaction controller into one application.
package app

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/dshills/collabboard/internal/board"
	"github.com/dshills/collabboard/internal/config"
	"github.com/dshills/collabboard/internal/geometry"
	"github.com/dshills/collabboard/internal/interaction"
	"github.com/dshills/collabboard/internal/logging"
	"github.com/dshills/collabboard/internal/script"
	"github.com/dshills/collabboard/internal/session"
	"github.com/dshills/collabboard/internal/storage"
	"github.com/dshills/collabboard/internal/terminal"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the path to a TOML or YAML config file.
	ConfigPath string

	// LogLevel overrides the configured level when set.
	LogLevel string

	// Watch reloads ConfigPath when it changes.
	Watch bool

	// Config, when set, is used instead of loading ConfigPath.
	Config *config.Config

	// Now overrides the wall clock.
	Now func() time.Time
}

// Application owns every long-lived component.
type Application struct {
	mu sync.Mutex

	// sessionMu is held by callers that drive the session off the terminal
	// event loop: scripts, direct reloads and shutdown.
	sessionMu sync.Mutex

	cfg       config.Config
	log       *logrus.Logger
	logCloser io.Closer

	store   storage.Backend
	adapter *storage.Adapter
	session *session.Session
	ctrl    *interaction.Controller

	firstRun    bool
	stopWatch   context.CancelFunc
	post        func(fn func()) bool
	shutdownOne sync.Once
}

// New loads configuration and builds the application. The stored board is
// loaded, or the demo board is seeded on first run.
func New(opts Options) (*Application, error) {
	app := &Application{}
	if err := app.bootstrap(opts); err != nil {
		app.closeResources()
		return nil, err
	}
	return app, nil
}

func (app *Application) bootstrap(opts Options) error {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	// 1. Configuration
	if opts.Config != nil {
		app.cfg = *opts.Config
		app.cfg.Normalize()
		if err := app.cfg.Validate(); err != nil {
			return &InitError{Component: "config", Err: err}
		}
	} else {
		cfg, err := config.Load(opts.ConfigPath)
		if err != nil {
			return &InitError{Component: "config", Err: err}
		}
		app.cfg = cfg
	}
	if opts.LogLevel != "" {
		app.cfg.Logging.Level = opts.LogLevel
	}

	// 2. Logging
	log, closer, err := logging.New(app.cfg.Logging)
	if err != nil {
		return &InitError{Component: "logging", Err: err}
	}
	app.log, app.logCloser = log, closer

	// 3. Storage
	store, err := storage.Open(app.cfg.Storage)
	if err != nil {
		return &InitError{Component: "storage", Err: err}
	}
	app.store = store
	app.adapter = storage.NewAdapter(store,
		storage.WithLogger(logging.WithComponent(log, "storage")),
		storage.WithClock(now),
	)

	// 4. Board and session
	factory := board.NewFactory()
	factory.Now = now
	loaded := app.adapter.Load(context.Background(), factory.Demo)
	app.firstRun = loaded.FirstRun

	app.session = session.New(loaded.Board,
		session.WithFactory(factory),
		session.WithClock(now),
		session.WithHistoryLimit(app.cfg.History.Limit),
		session.WithSnapToGrid(app.cfg.Canvas.SnapToGrid),
		session.WithHint(loaded.FirstRun),
		session.WithLogger(logging.WithComponent(log, "session")),
	)
	app.session.OnChange(func(b board.Board) {
		app.adapter.Save(context.Background(), b)
	})

	// 5. Interaction
	app.ctrl = interaction.New(app.session, interaction.Env{
		Origin: geometry.Point{X: app.cfg.Canvas.OriginX, Y: app.cfg.Canvas.OriginY},
	})

	// 6. Config reload
	if opts.Watch && opts.ConfigPath != "" {
		ctx, cancel := context.WithCancel(context.Background())
		app.stopWatch = cancel
		if err := config.Watch(ctx, opts.ConfigPath, app.onReload); err != nil {
			log.WithError(err).Warn("config watch disabled")
		}
	}

	log.WithFields(logrus.Fields{
		"backend":  app.cfg.Storage.Backend,
		"objects":  loaded.Board.Len(),
		"firstRun": loaded.FirstRun,
	}).Info("board ready")
	return nil
}

func (app *Application) onReload(cfg config.Config, err error) {
	if err != nil {
		app.log.WithError(err).Warn("config reload failed")
		return
	}
	app.mu.Lock()
	post := app.post
	app.mu.Unlock()
	if post != nil && post(func() { app.Apply(cfg) }) {
		return
	}
	app.sessionMu.Lock()
	defer app.sessionMu.Unlock()
	app.Apply(cfg)
}

// Apply takes the hot-reloadable settings from cfg: log level, snap and
// history limit. Storage and terminal settings need a restart.
func (app *Application) Apply(cfg config.Config) {
	app.mu.Lock()
	defer app.mu.Unlock()

	logging.SetLevel(app.log, cfg.Logging.Level)
	app.session.SetSnapToGrid(cfg.Canvas.SnapToGrid)
	app.session.SetHistoryLimit(cfg.History.Limit)

	app.cfg.Logging.Level = cfg.Logging.Level
	app.cfg.Canvas.SnapToGrid = cfg.Canvas.SnapToGrid
	app.cfg.History.Limit = cfg.History.Limit
	app.log.Info("config reloaded")
}

// Config returns the active configuration.
func (app *Application) Config() config.Config {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.cfg
}

// Logger returns the application logger.
func (app *Application) Logger() *logrus.Logger {
	return app.log
}

// Session returns the editing session.
func (app *Application) Session() *session.Session {
	return app.session
}

// Controller returns the interaction controller.
func (app *Application) Controller() *interaction.Controller {
	return app.ctrl
}

// FirstRun reports whether the board was seeded on this start.
func (app *Application) FirstRun() bool {
	return app.firstRun
}

// ClearBoard deletes the stored snapshot and replaces the board with an
// empty one. History is reset.
func (app *Application) ClearBoard(ctx context.Context) {
	app.adapter.Clear(ctx)
	app.session.LoadBoard(board.Empty(app.session.Factory().Now().UnixMilli()))
}

// RunScript executes the Lua script at path against the session. Config
// reloads wait until it returns.
func (app *Application) RunScript(ctx context.Context, path string, out io.Writer) error {
	app.sessionMu.Lock()
	defer app.sessionMu.Unlock()
	r := script.New(app.session,
		script.WithOutput(out),
		script.WithLogger(logging.WithComponent(app.log, "script")),
	)
	return r.RunFile(ctx, path)
}

// RunTerminal drives the session from a terminal until the user quits.
// A nil screen opens the controlling terminal.
func (app *Application) RunTerminal(ctx context.Context, screen tcell.Screen) error {
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		screen = s
	}
	cfg := app.Config()
	d := terminal.New(screen, app.session, app.ctrl,
		terminal.WithCellSize(cfg.Terminal.CellWidth, cfg.Terminal.CellHeight),
		terminal.WithWideViewportWidth(cfg.Canvas.WideViewportWidth),
		terminal.WithLogger(logging.WithComponent(app.log, "terminal")),
	)

	app.mu.Lock()
	app.post = d.Post
	app.mu.Unlock()
	defer func() {
		app.mu.Lock()
		app.post = nil
		app.mu.Unlock()
	}()
	return d.Run(ctx)
}

// Summary describes the present board in one line.
func (app *Application) Summary() string {
	s := app.session
	counts := map[board.Kind]int{}
	for _, o := range s.Objects() {
		counts[o.Kind()]++
	}
	return fmt.Sprintf("%d objects (%d notes, %d rectangles, %d arrows), %d selected, %d undo, %d redo",
		len(s.Objects()),
		counts[board.KindNote], counts[board.KindRect], counts[board.KindArrow],
		len(s.SelectedIDs()),
		len(s.UndoInfo()), len(s.RedoInfo()),
	)
}

// Shutdown interrupts any active gesture, writes the final board and
// releases resources. It is safe to call more than once.
func (app *Application) Shutdown() {
	app.shutdownOne.Do(func() {
		app.sessionMu.Lock()
		defer app.sessionMu.Unlock()
		if app.ctrl != nil {
			app.ctrl.Cancel()
		}
		if app.session != nil {
			app.adapter.Save(context.Background(), app.session.Board())
		}
		if app.log != nil {
			app.log.Info("shutting down")
		}
		app.closeResources()
	})
}

func (app *Application) closeResources() {
	if app.stopWatch != nil {
		app.stopWatch()
	}
	if app.store != nil {
		if err := app.store.Close(); err != nil && app.log != nil {
			app.log.WithError(err).Warn("close storage")
		}
	}
	if app.logCloser != nil {
		_ = app.logCloser.Close()
	}
}
