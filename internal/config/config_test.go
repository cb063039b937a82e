package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	cfg := Default()

	assert.Equal(t, 60, cfg.History.Limit)
	assert.False(t, cfg.Canvas.SnapToGrid)
	assert.Equal(t, 768.0, cfg.Canvas.WideViewportWidth)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join("/data", "collabboard", "board.json"), cfg.Storage.Path)
	assert.Equal(t, "collab-board-lite:board", cfg.Storage.Key)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, FormatText, cfg.Logging.Format)
	assert.Equal(t, 8, cfg.Terminal.CellWidth)
	assert.Equal(t, 16, cfg.Terminal.CellHeight)
	assert.NoError(t, cfg.Validate())
}

func TestMergeFileTOML(t *testing.T) {
	path := writeFile(t, "board.toml", `
[history]
limit = 25

[canvas]
snapToGrid = true

[storage]
backend = "sqlite"
path = "/tmp/board.db"
`)
	cfg := Default()
	require.NoError(t, cfg.MergeFile(path))

	assert.Equal(t, 25, cfg.History.Limit)
	assert.True(t, cfg.Canvas.SnapToGrid)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/board.db", cfg.Storage.Path)
	// Untouched keys keep their defaults.
	assert.Equal(t, DefaultStorageKey, cfg.Storage.Key)
	assert.Equal(t, 768.0, cfg.Canvas.WideViewportWidth)
}

func TestMergeFileYAML(t *testing.T) {
	path := writeFile(t, "board.yaml", `
storage:
  backend: redis
  redisURL: redis://localhost:6379/0
logging:
  level: debug
  format: json
terminal:
  cellWidth: 10
`)
	cfg := Default()
	require.NoError(t, cfg.MergeFile(path))

	assert.Equal(t, BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Storage.RedisURL)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, FormatJSON, cfg.Logging.Format)
	assert.Equal(t, 10, cfg.Terminal.CellWidth)
	assert.Equal(t, 16, cfg.Terminal.CellHeight)
}

func TestMergeFileMissing(t *testing.T) {
	cfg := Default()
	want := cfg
	require.NoError(t, cfg.MergeFile(filepath.Join(t.TempDir(), "absent.toml")))
	assert.Equal(t, want, cfg)
}

func TestMergeFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		target  error
	}{
		{"bad toml", "bad.toml", "[history\nlimit = ", nil},
		{"bad yaml", "bad.yaml", "history: [1, 2", nil},
		{"unknown extension", "board.ini", "limit=1", ErrUnknownFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			cfg := Default()
			err := cfg.MergeFile(path)
			require.Error(t, err)

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, path, pe.Path)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{
		"COLLABBOARD_HISTORY_LIMIT":       "30",
		"COLLABBOARD_SNAP_TO_GRID":        "true",
		"COLLABBOARD_WIDE_VIEWPORT_WIDTH": "1024",
		"COLLABBOARD_STORAGE_BACKEND":     "memory",
		"COLLABBOARD_STORAGE_KEY":         "k",
		"COLLABBOARD_LOG_LEVEL":           "warn",
		"UNRELATED":                       "x",
	}))
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.History.Limit)
	assert.True(t, cfg.Canvas.SnapToGrid)
	assert.Equal(t, 1024.0, cfg.Canvas.WideViewportWidth)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, "k", cfg.Storage.Key)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestApplyEnvInvalid(t *testing.T) {
	tests := map[string]string{
		"COLLABBOARD_HISTORY_LIMIT":       "many",
		"COLLABBOARD_SNAP_TO_GRID":        "perhaps",
		"COLLABBOARD_WIDE_VIEWPORT_WIDTH": "wide",
	}
	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			err := cfg.ApplyEnv(envMap(map[string]string{name: value}))
			assert.ErrorIs(t, err, ErrInvalidValue)
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestNormalize(t *testing.T) {
	cfg := Config{
		History: HistoryConfig{Limit: 5},
		Storage: StorageConfig{Backend: " SQLite "},
		Logging: LoggingConfig{Format: "JSON"},
	}
	cfg.Normalize()

	assert.Equal(t, 20, cfg.History.Limit)
	assert.Equal(t, DefaultWideViewportWidth, cfg.Canvas.WideViewportWidth)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, DefaultStorageKey, cfg.Storage.Key)
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
	assert.Equal(t, FormatJSON, cfg.Logging.Format)
	assert.Equal(t, DefaultCellWidth, cfg.Terminal.CellWidth)
	assert.Equal(t, DefaultCellHeight, cfg.Terminal.CellHeight)

	cfg.History.Limit = 0
	cfg.Normalize()
	assert.Equal(t, 60, cfg.History.Limit)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		storage StorageConfig
		format  string
		target  error
	}{
		{"memory", StorageConfig{Backend: BackendMemory}, FormatText, nil},
		{"file", StorageConfig{Backend: BackendFile, Path: "b.json"}, FormatText, nil},
		{"file without path", StorageConfig{Backend: BackendFile}, FormatText, ErrInvalidValue},
		{"redis without url", StorageConfig{Backend: BackendRedis}, FormatText, ErrInvalidValue},
		{"unknown backend", StorageConfig{Backend: "s3"}, FormatText, ErrUnknownBackend},
		{"bad format", StorageConfig{Backend: BackendMemory}, "xml", ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Storage: tt.storage, Logging: LoggingConfig{Format: tt.format}}
			err := cfg.Validate()
			if tt.target == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestLoadPrecedence(t *testing.T) {
	path := writeFile(t, "board.toml", `
[history]
limit = 40

[storage]
backend = "memory"
`)
	t.Setenv("COLLABBOARD_HISTORY_LIMIT", "45")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 45, cfg.History.Limit)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
}

func TestLoadUnknownBackend(t *testing.T) {
	path := writeFile(t, "board.yaml", "storage:\n  backend: tape\n")
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestEnvVarsSorted(t *testing.T) {
	names := EnvVars()
	require.NotEmpty(t, names)
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
}

func TestWatchReloads(t *testing.T) {
	path := writeFile(t, "board.toml", "[storage]\nbackend = \"memory\"\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan Config, 4)
	err := Watch(ctx, path, func(cfg Config, err error) {
		if err != nil {
			return
		}
		select {
		case reloaded <- cfg:
		default:
		}
	})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("[storage]\nbackend = \"memory\"\n[canvas]\nsnapToGrid = true\n"), 0o644))

	select {
	case cfg := <-reloaded:
		assert.True(t, cfg.Canvas.SnapToGrid)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}
