package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("text output honours level", func(t *testing.T) {
		var buf bytes.Buffer
		log, err := New("warn", "text", &buf)
		require.NoError(t, err)

		log.Info("hidden")
		log.Warn("shown", "key", "value")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
		assert.Contains(t, buf.String(), "key=value")
	})

	t.Run("json output", func(t *testing.T) {
		var buf bytes.Buffer
		log, err := New("debug", "json", &buf)
		require.NoError(t, err)

		log.Debug("hello")
		assert.Contains(t, buf.String(), `"msg":"hello"`)
	})

	t.Run("off discards everything", func(t *testing.T) {
		var buf bytes.Buffer
		log, err := New("off", "text", &buf)
		require.NoError(t, err)

		log.Error("nope")
		assert.Empty(t, buf.String())
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		_, err := New("info", "xml", nil)
		assert.Error(t, err)
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		_, err := New("loud", "text", nil)
		assert.Error(t, err)
	})
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("info", "text", &buf)
	require.NoError(t, err)

	Component(log, "cache").Info("ready")
	assert.Contains(t, buf.String(), "component=cache")

	assert.NotNil(t, Component(nil, "cache"))
}
