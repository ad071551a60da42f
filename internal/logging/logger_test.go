package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lyricsync/internal/config"
	"lyricsync/internal/logging"
)

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-info.log")

	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "info",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message without caller")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if strings.Contains(string(content), ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message with caller")

	if !strings.Contains(buf.String(), ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", buf.String())
	}
}

func TestConsoleLoggerFormatsSubject(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := logging.WithAlbum(context.Background(), "Taylor Swift", "1989")
	logging.WithContext(ctx, logging.NewComponentLogger(logger, "matcher")).
		Info("album matched", logging.Int("matched", 13))

	line := buf.String()
	if !strings.Contains(line, "INFO matcher: Taylor Swift / 1989: album matched") {
		t.Fatalf("unexpected console line %q", line)
	}
	if !strings.Contains(line, "matched=13") {
		t.Fatalf("expected matched attribute, got %q", line)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContextAddsFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := logging.WithRunID(context.Background(), "run-xyz")
	ctx = logging.WithAlbum(ctx, "Taylor Swift", "1989")
	logging.WithContext(ctx, logger).Info("contextual log")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode json log: %v (%q)", err, buf.String())
	}
	want := map[string]string{
		logging.FieldRunID:  "run-xyz",
		logging.FieldArtist: "Taylor Swift",
		logging.FieldAlbum:  "1989",
		"msg":               "contextual log",
		"level":             "info",
	}
	for key, value := range want {
		if record[key] != value {
			t.Fatalf("field %s = %v, want %q", key, record[key], value)
		}
	}
}

func TestRunLoggerTeesIntoFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Logging.RunLog = true

	var buf bytes.Buffer
	base, err := logging.New(logging.Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger, closer, err := logging.RunLogger(base, &cfg, "abc")
	if err != nil {
		t.Fatalf("RunLogger returned error: %v", err)
	}
	logger.Info("run started")
	if err := closer.Close(); err != nil {
		t.Fatalf("close run log: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, "run_abc.log"))
	if err != nil {
		t.Fatalf("read run log: %v", err)
	}
	if !strings.Contains(string(content), `"msg":"run started"`) {
		t.Fatalf("run log missing record: %q", content)
	}
	if !strings.Contains(buf.String(), "run started") {
		t.Fatalf("console output missing record: %q", buf.String())
	}
}

func TestRunLoggerDisabledReturnsBase(t *testing.T) {
	cfg := config.Default()
	base := logging.NewNop()
	logger, closer, err := logging.RunLogger(base, &cfg, "abc")
	if err != nil {
		t.Fatalf("RunLogger returned error: %v", err)
	}
	if logger != base {
		t.Fatal("expected base logger when run_log is disabled")
	}
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
