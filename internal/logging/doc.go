// Package logging assembles structured slog loggers and formatting helpers used
// across lyricsync.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so album workers automatically
// tag log lines with the run ID, artist, and album. The package also provides
// a no-op logger for tests and wiring code that cannot fail.
package logging
