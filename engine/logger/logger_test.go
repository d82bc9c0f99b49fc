package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":        zap.InfoLevel,
		"DEBUG":   zap.DebugLevel,
		"warning": zap.WarnLevel,
		" error ": zap.ErrorLevel,
	}
	for name, want := range cases {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestNewWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.log")
	l, err := New(Options{Level: "warn", OutputPaths: []string{path}})
	require.NoError(t, err)

	l.Info("dropped")
	l.Warn("render failed", zap.String("session", "abc"))
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "render failed", entry["msg"])
	assert.Equal(t, "abc", entry["session"])
}
