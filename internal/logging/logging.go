// Package logging builds the application logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/dshills/collabboard/internal/config"
)

// ComponentKey is the field naming the subsystem that logged an entry.
const ComponentKey = "component"

// ParseLevel parses a level name. Unknown names map to info.
func ParseLevel(s string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// New builds a logger from cfg. The returned closer releases the log file
// when one is configured and is never nil.
func New(cfg config.LoggingConfig) (*logrus.Logger, io.Closer, error) {
	l := logrus.New()
	l.SetLevel(ParseLevel(cfg.Level))

	switch cfg.Format {
	case config.FormatJSON:
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if cfg.File == "" {
		l.SetOutput(os.Stderr)
		return l, nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	l.SetOutput(f)
	return l, f, nil
}

// SetLevel applies a level name to l.
func SetLevel(l *logrus.Logger, level string) {
	l.SetLevel(ParseLevel(level))
}

// WithComponent returns an entry tagged with the component name.
func WithComponent(l logrus.FieldLogger, name string) *logrus.Entry {
	return l.WithField(ComponentKey, name)
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
