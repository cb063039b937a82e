package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/collabboard/internal/history"
)

// Storage backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Defaults.
const (
	DefaultStorageKey        = "collab-board-lite:board"
	DefaultWideViewportWidth = 768.0
	DefaultCellWidth         = 8
	DefaultCellHeight        = 16
	DefaultLogLevel          = "info"
)

// Config is the full set of settings.
type Config struct {
	History  HistoryConfig  `toml:"history" yaml:"history"`
	Canvas   CanvasConfig   `toml:"canvas" yaml:"canvas"`
	Storage  StorageConfig  `toml:"storage" yaml:"storage"`
	Logging  LoggingConfig  `toml:"logging" yaml:"logging"`
	Terminal TerminalConfig `toml:"terminal" yaml:"terminal"`
}

// HistoryConfig controls undo/redo.
type HistoryConfig struct {
	// Limit is the maximum number of undo steps kept.
	Limit int `toml:"limit" yaml:"limit"`
}

// CanvasConfig controls canvas behaviour.
type CanvasConfig struct {
	// SnapToGrid is the initial snap setting.
	SnapToGrid bool `toml:"snapToGrid" yaml:"snapToGrid"`

	// WideViewportWidth is the width at or above which shift+click
	// toggles selection.
	WideViewportWidth float64 `toml:"wideViewportWidth" yaml:"wideViewportWidth"`

	// OriginX and OriginY locate the canvas container in client space.
	OriginX float64 `toml:"originX" yaml:"originX"`
	OriginY float64 `toml:"originY" yaml:"originY"`
}

// StorageConfig selects and configures the snapshot store.
type StorageConfig struct {
	// Backend is one of memory, file, sqlite or redis.
	Backend string `toml:"backend" yaml:"backend"`

	// Path is the file or database path for file and sqlite.
	Path string `toml:"path" yaml:"path"`

	// Key names the snapshot in sqlite and redis.
	Key string `toml:"key" yaml:"key"`

	// RedisURL is a redis:// connection URL.
	RedisURL string `toml:"redisURL" yaml:"redisURL"`
}

// LoggingConfig controls the logger.
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
	// File receives log output when set. Empty means stderr.
	File string `toml:"file" yaml:"file"`
}

// TerminalConfig maps terminal cells to client pixels.
type TerminalConfig struct {
	CellWidth  int `toml:"cellWidth" yaml:"cellWidth"`
	CellHeight int `toml:"cellHeight" yaml:"cellHeight"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		History: HistoryConfig{Limit: history.DefaultLimit},
		Canvas: CanvasConfig{
			WideViewportWidth: DefaultWideViewportWidth,
		},
		Storage: StorageConfig{
			Backend: BackendFile,
			Path:    filepath.Join(DataDir(), "board.json"),
			Key:     DefaultStorageKey,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: FormatText,
		},
		Terminal: TerminalConfig{
			CellWidth:  DefaultCellWidth,
			CellHeight: DefaultCellHeight,
		},
	}
}

// DataDir returns $XDG_DATA_HOME/collabboard, falling back to
// ~/.local/share/collabboard and then to the working directory.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "collabboard")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "collabboard"
	}
	return filepath.Join(home, ".local", "share", "collabboard")
}

// Load builds a Config from defaults, the file at path (if any) and the
// process environment. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.MergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Normalize fills zero values with defaults and clamps the history limit.
func (c *Config) Normalize() {
	c.History.Limit = history.NormalizeLimit(c.History.Limit)
	if c.Canvas.WideViewportWidth <= 0 {
		c.Canvas.WideViewportWidth = DefaultWideViewportWidth
	}
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendFile
	}
	if c.Storage.Key == "" {
		c.Storage.Key = DefaultStorageKey
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	c.Logging.Format = strings.ToLower(c.Logging.Format)
	if c.Logging.Format == "" {
		c.Logging.Format = FormatText
	}
	if c.Terminal.CellWidth <= 0 {
		c.Terminal.CellWidth = DefaultCellWidth
	}
	if c.Terminal.CellHeight <= 0 {
		c.Terminal.CellHeight = DefaultCellHeight
	}
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory:
	case BackendFile, BackendSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path required for %s backend: %w", c.Storage.Backend, ErrInvalidValue)
		}
	case BackendRedis:
		if c.Storage.RedisURL == "" {
			return fmt.Errorf("storage.redisURL required for redis backend: %w", ErrInvalidValue)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Storage.Backend)
	}
	switch c.Logging.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("logging.format %q: %w", c.Logging.Format, ErrInvalidValue)
	}
	return nil
}
