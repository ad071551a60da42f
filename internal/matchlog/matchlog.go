package matchlog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/gosimple/slug"
)

// Reasons recorded in the missing log beyond the matcher's own.
const (
	ReasonDuplicateTrack = "duplicate-track"
	ReasonMissingField   = "missing-field"
	ReasonAlbumFailed    = "album-unreadable"
	ReasonPersistFailed  = "persist-failed"
)

// Writer appends matched and missing records to two run-scoped files. Albums
// buffer their lines in an AlbumLog and hand it to Flush, which writes the
// whole album under one lock so concurrent albums never interleave.
type Writer struct {
	mu          sync.Mutex
	matched     *os.File
	missing     *os.File
	matchedPath string
	missingPath string
}

// Open creates dir if needed and opens matched_<run>.log and missing_<run>.log
// for appending.
func Open(dir, runID string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	name := slug.Make(runID)
	if name == "" {
		name = "run"
	}
	w := &Writer{
		matchedPath: filepath.Join(dir, "matched_"+name+".log"),
		missingPath: filepath.Join(dir, "missing_"+name+".log"),
	}
	var err error
	if w.matched, err = openAppend(w.matchedPath); err != nil {
		return nil, err
	}
	if w.missing, err = openAppend(w.missingPath); err != nil {
		_ = w.matched.Close()
		return nil, err
	}
	return w, nil
}

func openAppend(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

// Paths returns the matched and missing log file paths.
func (w *Writer) Paths() (matched, missing string) {
	return w.matchedPath, w.missingPath
}

// Flush writes an album's buffered lines and resets the buffer.
func (w *Writer) Flush(log *AlbumLog) error {
	if w == nil || log == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	var errs []error
	if len(log.matched) > 0 {
		if _, err := w.matched.WriteString(strings.Join(log.matched, "")); err != nil {
			errs = append(errs, fmt.Errorf("write matched log: %w", err))
		}
	}
	if len(log.missing) > 0 {
		if _, err := w.missing.WriteString(strings.Join(log.missing, "")); err != nil {
			errs = append(errs, fmt.Errorf("write missing log: %w", err))
		}
	}
	log.matched, log.missing = nil, nil
	return errors.Join(errs...)
}

// Close flushes and closes both files.
func (w *Writer) Close() error {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return errors.Join(w.matched.Close(), w.missing.Close())
}

// AlbumLog buffers one album's log lines. It is owned by a single worker.
type AlbumLog struct {
	artist  string
	album   string
	matched []string
	missing []string
}

// NewAlbumLog returns an empty buffer for one album.
func NewAlbumLog(artist, album string) *AlbumLog {
	return &AlbumLog{artist: artist, album: album}
}

// Matched records a track bound to a document.
func (l *AlbumLog) Matched(track, document string, score float64) {
	l.matched = append(l.matched, l.line(track, document, strconv.FormatFloat(score, 'f', 3, 64)))
}

// Missing records a track or document that was not bound, with the reason.
func (l *AlbumLog) Missing(title, reason string) {
	l.missing = append(l.missing, l.line(title, reason))
}

// Len reports the buffered matched and missing line counts.
func (l *AlbumLog) Len() (matched, missing int) {
	return len(l.matched), len(l.missing)
}

func (l *AlbumLog) line(fields ...string) string {
	parts := make([]string, 0, len(fields)+2)
	parts = append(parts, clean(l.artist), clean(l.album))
	for _, f := range fields {
		parts = append(parts, clean(f))
	}
	return strings.Join(parts, "\t") + "\n"
}

func clean(field string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r':
			return ' '
		}
		return r
	}, field)
}
