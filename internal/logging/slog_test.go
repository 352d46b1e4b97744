package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	out := buf.String()

	tests := []struct {
		level string
		msg   string
		attr  string
	}{
		{"DEBUG", "dbg", "a=1"},
		{"INFO", "inf", "b=2"},
		{"WARN", "wrn", "c=3"},
		{"ERROR", "err", "d=4"},
	}
	for _, tt := range tests {
		if !strings.Contains(out, "level="+tt.level) ||
			!strings.Contains(out, "msg="+tt.msg) ||
			!strings.Contains(out, tt.attr) {
			t.Errorf("missing %s record with %q: output %q", tt.level, tt.attr, out)
		}
	}
}

func TestSlogLogger_With(t *testing.T) {
	log, buf := newTestLogger(t)

	child := log.With("backend", "embedded")
	child.Info(context.Background(), "opened")

	if out := buf.String(); !strings.Contains(out, "backend=embedded") {
		t.Errorf("child logger lost bound attribute: %q", out)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	// must not panic, even with odd arguments
	log := NewNopLogger()
	log.Debug(context.Background(), "x")
	log.With("k").Error(context.Background(), "y", "z")
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLogger(&buf, slog.LevelInfo)

	log.Debug(context.Background(), "hidden")
	log.Info(context.Background(), "shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record leaked below level: %q", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) {
		t.Errorf("info record missing: %q", out)
	}
}
