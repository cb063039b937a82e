package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/collabboard/internal/config"
)

// Open constructs the backend named by cfg.
func Open(cfg config.StorageConfig) (Backend, error) {
	key := cfg.Key
	if key == "" {
		key = DefaultKey
	}
	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemory(), nil
	case config.BackendFile, "":
		return NewFile(cfg.Path), nil
	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
		return OpenSQLite(cfg.Path, key)
	case config.BackendRedis:
		return OpenRedis(cfg.RedisURL, key)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Backend)
	}
}
