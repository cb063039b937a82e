package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/collabboard/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		"DEBUG":   logrus.DebugLevel,
		"info":    logrus.InfoLevel,
		"warn":    logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"":        logrus.InfoLevel,
		"loud":    logrus.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestNewJSONFormat(t *testing.T) {
	l, closer, err := New(config.LoggingConfig{Level: "debug", Format: config.FormatJSON})
	require.NoError(t, err)
	defer closer.Close()

	var buf bytes.Buffer
	l.SetOutput(&buf)
	WithComponent(l, "storage").Debug("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "storage", entry[ComponentKey])
	assert.Equal(t, "debug", entry["level"])
}

func TestNewTextFormatFiltersLevel(t *testing.T) {
	l, closer, err := New(config.LoggingConfig{Level: "warn", Format: config.FormatText})
	require.NoError(t, err)
	defer closer.Close()

	var buf bytes.Buffer
	l.SetOutput(&buf)
	l.Info("quiet")
	assert.Empty(t, buf.String())

	l.Warn("loud")
	assert.Contains(t, buf.String(), "loud")
}

func TestNewLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "board.log")
	l, closer, err := New(config.LoggingConfig{Level: "info", Format: config.FormatText, File: path})
	require.NoError(t, err)

	l.Info("written")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written")
}

func TestWithComponent(t *testing.T) {
	l, hook := logtest.NewNullLogger()
	WithComponent(l, "session").Info("x")

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, "session", hook.LastEntry().Data[ComponentKey])
}

func TestSetLevel(t *testing.T) {
	l := Discard()
	SetLevel(l, "error")
	assert.Equal(t, logrus.ErrorLevel, l.GetLevel())
}
