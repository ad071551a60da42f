package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNewFanoutHandlerNilHandlers(t *testing.T) {
	h := newFanoutHandler(nil, nil, nil)
	if _, ok := h.(NoopHandler); !ok {
		t.Errorf("expected NoopHandler for all nil handlers, got %T", h)
	}
}

func TestNewFanoutHandlerFiltersNil(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)

	h := newFanoutHandler(nil, inner, nil)
	if h != inner {
		t.Error("expected single non-nil handler to be returned unwrapped")
	}
}

func TestFanoutHandlerEnabled(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	h1 := slog.NewJSONHandler(&buf1, &slog.HandlerOptions{Level: slog.LevelWarn})
	h2 := slog.NewJSONHandler(&buf2, &slog.HandlerOptions{Level: slog.LevelDebug})

	h := newFanoutHandler(h1, h2)
	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected fanout to be enabled for debug")
	}

	none := newFanoutHandler(h1, slog.NewJSONHandler(&buf2, &slog.HandlerOptions{Level: slog.LevelError}))
	if none.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected fanout to be disabled for info")
	}
}

func TestFanoutHandlerRespectsPerHandlerLevels(t *testing.T) {
	var warnBuf, debugBuf bytes.Buffer
	h1 := slog.NewJSONHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn})
	h2 := slog.NewJSONHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug})

	logger := slog.New(newFanoutHandler(h1, h2)).With("album", "1989")
	logger.Info("info message")
	logger.Warn("warn message")

	if strings.Contains(warnBuf.String(), "info message") {
		t.Error("warn handler should not receive info records")
	}
	if !strings.Contains(warnBuf.String(), "warn message") {
		t.Error("warn handler missing warn record")
	}
	if strings.Count(debugBuf.String(), `"album":"1989"`) != 2 {
		t.Errorf("debug handler should receive both records with attrs, got %q", debugBuf.String())
	}
}
