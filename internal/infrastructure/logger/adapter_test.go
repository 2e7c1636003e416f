package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved() (*LoggerAdapter, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return New(zap.New(core)), logs
}

func TestLoggerAdapter_Levels(t *testing.T) {
	l, logs := newObserved()

	l.Debug("debug msg", "k", 1)
	l.Info("info msg")
	l.Warn("warn msg")
	l.Error("error msg", "error", "boom")

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, int64(1), entries[0].ContextMap()["k"])
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
	assert.Equal(t, "boom", entries[3].ContextMap()["error"])
}

func TestLoggerAdapter_WithFields(t *testing.T) {
	l, logs := newObserved()

	l.WithField("run_id", "abc").
		WithFields(map[string]any{"stage": "research", "agent": "researcher"}).
		Info("stage started")

	entries := logs.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "abc", ctx["run_id"])
	assert.Equal(t, "research", ctx["stage"])
	assert.Equal(t, "researcher", ctx["agent"])
}

func TestLoggerAdapter_Named(t *testing.T) {
	l, logs := newObserved()

	l.Named("orchestrator").Info("hello")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "orchestrator", entries[0].LoggerName)
}

func TestNewNop(t *testing.T) {
	l := NewNop()
	l.Info("dropped")
	assert.NoError(t, l.Close())
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "renewable_energy", sanitize("renewable energy"))
	assert.Equal(t, "run", sanitize("   "))
	assert.Len(t, sanitize(string(make([]byte, 100))+"abc"), 3)
	long := ""
	for i := 0; i < 100; i++ {
		long += "a"
	}
	assert.Len(t, sanitize(long), 60)
}
