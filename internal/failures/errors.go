package failures

import (
	"errors"
	"fmt"
	"strings"
)

// Per-item markers: logged with a reason, the album keeps processing.
var (
	ErrMalformedDocument = errors.New("malformed document")
	ErrUnmatched         = errors.New("unmatched")
	ErrMissingField      = errors.New("missing metadata field")
)

// Per-album markers: the album's tracks become unmatched, siblings continue.
var (
	ErrAlbumUnreadable = errors.New("album unreadable")
)

// Fatal markers: the run aborts. Persisted albums stay valid because writes are upserts.
var (
	ErrPersistence   = errors.New("persistence failure")
	ErrCorruptInput  = errors.New("corrupt input")
	ErrConfiguration = errors.New("configuration error")
)

// Class describes how far a failure propagates.
type Class int

const (
	ClassPerItem Class = iota
	ClassPerAlbum
	ClassFatal
)

func (c Class) String() string {
	switch c {
	case ClassPerItem:
		return "per-item"
	case ClassPerAlbum:
		return "per-album"
	default:
		return "fatal"
	}
}

// Classifier allows errors to declare their own class.
type Classifier interface {
	FailureClass() Class
}

// ClassOf maps an error to its propagation class. Unknown errors are fatal so
// nothing is silently skipped.
func ClassOf(err error) Class {
	if err == nil {
		return ClassPerItem
	}
	var classifier Classifier
	if errors.As(err, &classifier) {
		return classifier.FailureClass()
	}
	switch {
	case errors.Is(err, ErrMalformedDocument), errors.Is(err, ErrUnmatched), errors.Is(err, ErrMissingField):
		return ClassPerItem
	case errors.Is(err, ErrAlbumUnreadable):
		return ClassPerAlbum
	default:
		return ClassFatal
	}
}

// IsFatal reports whether err must abort the run.
func IsFatal(err error) bool {
	return err != nil && ClassOf(err) == ClassFatal
}

// Wrap builds an error message that includes scope context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, scope, operation, message string, err error) error {
	detail := buildDetail(scope, operation, message)
	if marker == nil {
		marker = ErrPersistence
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(scope, operation, message string) string {
	parts := make([]string, 0, 3)
	for _, part := range []string{scope, operation, message} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return "failure"
	}
	return strings.Join(parts, ": ")
}
