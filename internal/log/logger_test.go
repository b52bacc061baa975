package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newBufferLogger(buf *bytes.Buffer, level slog.Level) *Logger {
	return New(Config{Level: level, Component: ComponentApp, JSON: true, Output: buf})
}

func decodeLine(t *testing.T, line string) map[string]any {
	t.Helper()
	var rec map[string]any
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		t.Fatalf("invalid JSON log line %q: %v", line, err)
	}
	return rec
}

func TestLoggerAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf, slog.LevelInfo).WithComponent(ComponentHTTP)
	logger.Info("hello", "k", "v")

	rec := decodeLine(t, strings.TrimSpace(buf.String()))
	if rec["component"] != ComponentHTTP {
		t.Errorf("component = %v, want %s", rec["component"], ComponentHTTP)
	}
	if rec["k"] != "v" {
		t.Errorf("k = %v, want v", rec["k"])
	}
	if logger.Component() != ComponentHTTP {
		t.Errorf("Component() = %s", logger.Component())
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf, slog.LevelWarn)
	logger.Info("dropped")
	logger.Debug("dropped")
	logger.Warn("kept")
	if got := strings.Count(buf.String(), "\n"); got != 1 {
		t.Fatalf("expected 1 record, got %d: %s", got, buf.String())
	}
}

func TestMiddlewareAndFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf, slog.LevelInfo)

	var got *Logger
	h := Middleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := NewContext(r.Context(), FromContext(r.Context()).With(FieldRequestID, "req_1"))
		got = FromContext(ctx)
		got.Info("inside")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if got == nil {
		t.Fatal("handler did not run")
	}
	rec := decodeLine(t, strings.TrimSpace(buf.String()))
	if rec[FieldRequestID] != "req_1" {
		t.Errorf("request_id = %v, want req_1", rec[FieldRequestID])
	}

	if FromContext(context.Background()).Component() != "unknown" {
		t.Errorf("expected fallback logger for empty context")
	}
}

func TestStructuredLogger(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(newBufferLogger(&buf, slog.LevelDebug))

	sl.LogExpenseSplit(context.Background(), "Dinner", 1000, 1, 3, "msg-1")
	sl.LogError(context.Background(), "publish failed", errors.New("boom"), ComponentAMQP, OpPublish, nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 records, got %d", len(lines))
	}
	first := decodeLine(t, lines[0])
	if first["component"] != ComponentSplit || first[FieldMessageID] != "msg-1" {
		t.Errorf("unexpected expense record: %v", first)
	}
	second := decodeLine(t, lines[1])
	if second["level"] != "ERROR" || second[FieldError] != "boom" || second["component"] != ComponentAMQP {
		t.Errorf("unexpected error record: %v", second)
	}
}
