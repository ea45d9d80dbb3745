package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withGlobalLogger swaps in a fresh global logger for the duration of a test
func withGlobalLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	original := L
	L = logrus.NewEntry(newLogger())
	t.Cleanup(func() { L = original })

	var buf bytes.Buffer
	SetLogOutput(&buf)
	return &buf
}

func TestNewLogger(t *testing.T) {
	logger := newLogger()

	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
	formatter, ok := logger.Formatter.(*logrus.TextFormatter)
	require.True(t, ok)
	assert.Equal(t, time.RFC3339Nano, formatter.TimestampFormat)
	assert.True(t, formatter.FullTimestamp)
}

func TestGetLogger(t *testing.T) {
	t.Run("falls back to global", func(t *testing.T) {
		entry := G(context.Background())
		assert.Equal(t, L.Logger, entry.Logger)
	})

	t.Run("uses context logger", func(t *testing.T) {
		custom := logrus.NewEntry(logrus.New()).WithField("command", "add")
		ctx := WithLogger(context.Background(), custom)

		entry := G(ctx)
		assert.Equal(t, custom.Logger, entry.Logger)
		assert.Equal(t, "add", entry.Data["command"])
	})
}

func TestSetLogLevel(t *testing.T) {
	withGlobalLogger(t)

	require.NoError(t, SetLogLevel("debug"))
	assert.Equal(t, logrus.DebugLevel, L.Logger.GetLevel())

	err := SetLogLevel("loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
	assert.Equal(t, logrus.DebugLevel, L.Logger.GetLevel())
}

func TestSetLogFormat(t *testing.T) {
	tests := []struct {
		format   string
		expected logrus.Formatter
	}{
		{"json", &logrus.JSONFormatter{}},
		{"fmt", &logrus.TextFormatter{}},
		{"text", &logrus.TextFormatter{}},
		{"unknown", &logrus.TextFormatter{}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			withGlobalLogger(t)
			SetLogFormat(tt.format)
			assert.IsType(t, tt.expected, L.Logger.Formatter)
		})
	}
}

func TestConfigure(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		withGlobalLogger(t)
		require.NoError(t, Configure("", ""))
		assert.Equal(t, logrus.WarnLevel, L.Logger.GetLevel())
		assert.IsType(t, &logrus.TextFormatter{}, L.Logger.Formatter)
	})

	t.Run("json output", func(t *testing.T) {
		buf := withGlobalLogger(t)
		require.NoError(t, Configure("info", "json"))

		G(context.Background()).WithField("skill", "alpha").Info("installed skill")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "installed skill", entry["message"])
		assert.Equal(t, "info", entry["logLevel"])
		assert.Equal(t, "alpha", entry["skill"])
		assert.Contains(t, entry, "timestamp")
	})

	t.Run("invalid level", func(t *testing.T) {
		withGlobalLogger(t)
		assert.Error(t, Configure("nope", "fmt"))
	})
}

func TestLevelFiltering(t *testing.T) {
	buf := withGlobalLogger(t)

	G(context.Background()).Info("hidden")
	assert.Empty(t, buf.String())

	G(context.Background()).Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}
