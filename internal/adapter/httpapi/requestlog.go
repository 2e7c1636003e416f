package httpapi

import (
	"encoding/json"

	"agent-pipeline/internal/application/port/output"
)

// requestLogWriter receives the request logger's JSON events and re-emits them
// through log, so request lines land in the same sink as the rest of the app.
// zerolog hands each event to Write as one complete document.
type requestLogWriter struct {
	log output.LoggerPort
}

func (w *requestLogWriter) Write(p []byte) (int, error) {
	var event map[string]any
	if err := json.Unmarshal(p, &event); err != nil {
		w.log.Warn("Undecodable request log line", "line", string(p), "error", err)
		return len(p), nil
	}

	msg, _ := event["message"].(string)
	level, _ := event["level"].(string)
	for _, key := range []string{"message", "level", "timestamp"} {
		delete(event, key)
	}

	l := w.log.WithFields(event)
	switch level {
	case "debug", "trace":
		l.Debug(msg)
	case "warn":
		l.Warn(msg)
	case "error", "fatal", "panic":
		l.Error(msg)
	default:
		l.Info(msg)
	}
	return len(p), nil
}
