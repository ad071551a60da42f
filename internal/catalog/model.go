package catalog

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"lyricsync/internal/failures"
)

// Artist is identified by name and birth date. Biographical fields are
// optional and come from artist.csv when present.
type Artist struct {
	Name        string
	BirthName   string
	BirthDate   string
	BirthPlace  string
	Country     string
	ActiveYears string
	Genres      string
	Instruments string
	VocalType   string
}

// Album belongs to exactly one artist and is identified by (Name, Artist).
type Album struct {
	Artist      string
	Name        string
	ReleaseDate string
	Popularity  *int
	// Dir is the folder the album was loaded from.
	Dir string
}

// Track is one metadata row. It is identified by (Name, Album).
type Track struct {
	Name        string
	TrackNumber int
	DurationMs  *int64
	Explicit    *bool
	Popularity  *int
	// Row is the 0-based position in the metadata table.
	Row int
}

// MissingFields counts optional metadata fields that are unset.
func (t Track) MissingFields() int {
	missing := 0
	if strings.TrimSpace(t.Name) == "" {
		missing++
	}
	if t.TrackNumber <= 0 {
		missing++
	}
	if t.DurationMs == nil {
		missing++
	}
	if t.Explicit == nil {
		missing++
	}
	if t.Popularity == nil {
		missing++
	}
	return missing
}

// Position is the 0-based ordinal used when comparing a track with document order.
func (t Track) Position() int {
	if t.TrackNumber > 0 {
		return t.TrackNumber - 1
	}
	return t.Row
}

// Document is one lyric text scoped to an album, not yet bound to a track.
type Document struct {
	Title string
	Path  string
	Text  string
	// Order is the 0-based position of the document in file-name order.
	Order int
	// Err is set when the document could not be read or decoded.
	Err error
}

// Usable reports whether the document has decodable, non-blank text.
func (d Document) Usable() bool {
	if d.Err != nil || strings.TrimSpace(d.Title) == "" {
		return false
	}
	if !utf8.ValidString(d.Text) {
		return false
	}
	return strings.TrimSpace(d.Text) != ""
}

// AlbumSource is everything loaded for one album folder.
type AlbumSource struct {
	Artist    Artist
	Album     Album
	Tracks    []Track
	Documents []Document
	// DocumentsErr is set when the album's lyric folder could not be read at all.
	DocumentsErr error
	// Issues are per-row metadata problems found while loading tracks.
	Issues []Issue
}

// Issue is a metadata row problem. Rows without a name are dropped; rows
// with an unparseable optional field keep the field unset.
type Issue struct {
	Row   int
	Track string
	Field string
}

func (i Issue) Error() string {
	if i.Track == "" {
		return fmt.Sprintf("%v: row %d: %s", failures.ErrMissingField, i.Row+1, i.Field)
	}
	return fmt.Sprintf("%v: row %d (%s): invalid %s", failures.ErrMissingField, i.Row+1, i.Track, i.Field)
}

// Unwrap lets errors.Is match failures.ErrMissingField.
func (i Issue) Unwrap() error {
	return failures.ErrMissingField
}

// Title names the issue in match logs.
func (i Issue) Title() string {
	if i.Track != "" {
		return i.Track + " [" + i.Field + "]"
	}
	return fmt.Sprintf("row %d [%s]", i.Row+1, i.Field)
}

// Label identifies the album in logs.
func (s AlbumSource) Label() string {
	return s.Artist.Name + "/" + s.Album.Name
}
