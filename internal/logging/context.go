package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID identifies one pipeline run.
	FieldRunID  = "run_id"
	FieldArtist = "artist"
	FieldAlbum  = "album"
	FieldTrack  = "track"
	// FieldReason carries a match or failure reason code such as no-candidate.
	FieldReason = "reason"
	// FieldEventType is the machine-readable event name on warnings and errors.
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step to an operator.
	FieldErrorHint = "error_hint"
	// FieldAlert flags warnings or anomalies that should stand out in structured logs.
	FieldAlert = "alert"
)

type contextKey string

const (
	runIDKey  contextKey = "run_id"
	artistKey contextKey = "artist"
	albumKey  contextKey = "album"
)

// WithRunID stores the run identifier on ctx.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// RunIDFromContext returns the run identifier stored by WithRunID.
func RunIDFromContext(ctx context.Context) (string, bool) {
	value, ok := ctx.Value(runIDKey).(string)
	return value, ok && value != ""
}

// WithAlbum stores the artist and album currently being processed on ctx.
func WithAlbum(ctx context.Context, artist, album string) context.Context {
	ctx = context.WithValue(ctx, artistKey, artist)
	return context.WithValue(ctx, albumKey, album)
}

// AlbumFromContext returns the artist and album stored by WithAlbum.
func AlbumFromContext(ctx context.Context) (artist, album string, ok bool) {
	artist, _ = ctx.Value(artistKey).(string)
	album, _ = ctx.Value(albumKey).(string)
	return artist, album, artist != "" || album != ""
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if id, ok := RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if artist, album, ok := AlbumFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldArtist, artist), slog.String(FieldAlbum, album))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
