package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRejectsInvalidLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "shouty"})
	require.Error(t, err)
}

func TestLoggerWritesStructuredFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := New(Options{Level: "debug", Writer: &buf})
	require.NoError(t, err)

	log.WithComponent("button").WithLibrary("vuetify").Debug("transforming")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "button", entry["component"])
	require.Equal(t, "vuetify", entry["library"])
	require.Equal(t, "transforming", entry["message"])
}

func TestLevelFiltersDebug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := New(Options{Level: "info", Writer: &buf})
	require.NoError(t, err)

	log.Debug("hidden")
	require.Zero(t, buf.Len())
}

func TestNilLoggerIsSafe(t *testing.T) {
	t.Parallel()

	var log *Logger
	log.Info("no panic")
	log.Error(nil, "still no panic")
	require.Nil(t, log.WithFields(map[string]any{"k": "v"}))
}

func TestNoopDiscards(t *testing.T) {
	t.Parallel()

	log := Noop()
	log.Info("dropped")
	log.Warn("dropped")
}
