package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"agent-pipeline/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogWriter_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	w := &requestLogWriter{log: logger.New(zap.New(core))}

	lines := []string{
		`{"level":"info","service":"svc","message":"Request: GET /"}`,
		`{"level":"warn","message":"Response: 404 Not Found"}`,
		`{"level":"error","message":"Response: 500 Internal Server Error"}`,
		`{"level":"debug","message":"trace"}`,
	}
	for _, line := range lines {
		n, err := w.Write([]byte(line + "\n"))
		require.NoError(t, err)
		assert.Equal(t, len(line)+1, n)
	}

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "Request: GET /", entries[0].Message)
	assert.Equal(t, "svc", entries[0].ContextMap()["service"])
	assert.NotContains(t, entries[0].ContextMap(), "level")
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, zapcore.DebugLevel, entries[3].Level)
}

func TestRequestLogWriter_UndecodableLine(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	w := &requestLogWriter{log: logger.New(zap.New(core))}

	n, err := w.Write([]byte("not json"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "not json", entries[0].ContextMap()["line"])
}

func TestRoutes_RequestLogsGoToAppLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := New(&fakePipeline{}, logger.New(zap.New(core)), Config{ServiceName: "Pipeline-Test"})
	srv := httptest.NewServer(s.Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()

	requestLogs := logs.FilterLoggerName("http.request").All()
	require.NotEmpty(t, requestLogs)

	var sawHealth bool
	for _, e := range requestLogs {
		assert.Equal(t, "pipeline-test", e.ContextMap()["service"])
		if strings.Contains(e.Message, "/healthz") {
			sawHealth = true
		}
	}
	assert.True(t, sawHealth, "no request log line mentions /healthz")
}
