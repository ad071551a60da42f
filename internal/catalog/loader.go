package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"lyricsync/internal/failures"
	"lyricsync/internal/textutil"
)

const (
	artistFile = "artist.csv"
	tracksFile = "tracks.csv"
	lyricsDir  = "lyrics"
	lyricsExt  = ".txt"
)

// AlbumRef locates one album folder found by Discover.
type AlbumRef struct {
	Artist Artist
	Dir    string
	// Name is the folder-derived album name; tracks.csv may override it.
	Name string
}

// Loader reads the artist/album folder tree under a root directory.
type Loader struct {
	root string
}

// NewLoader returns a loader rooted at dir.
func NewLoader(dir string) *Loader {
	return &Loader{root: dir}
}

// Discover lists every album folder that has a tracks.csv, in artist then
// album folder order.
func (l *Loader) Discover(ctx context.Context) ([]AlbumRef, error) {
	artistDirs, err := subdirs(l.root)
	if err != nil {
		return nil, failures.Wrap(failures.ErrCorruptInput, "catalog", "discover", "read input directory", err)
	}
	var refs []AlbumRef
	for _, artistDir := range artistDirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		artist, err := loadArtist(artistDir)
		if err != nil {
			return nil, err
		}
		albumDirs, err := subdirs(artistDir)
		if err != nil {
			return nil, failures.Wrap(failures.ErrCorruptInput, "catalog", "discover", "read artist directory "+artistDir, err)
		}
		for _, albumDir := range albumDirs {
			if _, err := os.Stat(filepath.Join(albumDir, tracksFile)); err != nil {
				continue
			}
			refs = append(refs, AlbumRef{Artist: artist, Dir: albumDir, Name: displayName(filepath.Base(albumDir))})
		}
	}
	return refs, nil
}

// Load reads one album's metadata and lyric documents. Per-document problems
// are recorded on the documents; an unreadable lyric folder is recorded in
// DocumentsErr. A returned error means the album's metadata is unusable.
func (l *Loader) Load(ctx context.Context, ref AlbumRef) (AlbumSource, error) {
	src := AlbumSource{Artist: ref.Artist}
	if err := ctx.Err(); err != nil {
		return src, err
	}
	album, tracks, issues, err := loadTracks(filepath.Join(ref.Dir, tracksFile))
	if err != nil {
		return src, err
	}
	if album.Name == "" {
		album.Name = ref.Name
	}
	album.Artist = ref.Artist.Name
	album.Dir = ref.Dir
	src.Album = album
	src.Tracks = tracks
	src.Issues = issues
	src.Documents, src.DocumentsErr = loadDocuments(ref.Dir)
	return src, nil
}

func loadArtist(dir string) (Artist, error) {
	artist := Artist{Name: displayName(filepath.Base(dir))}
	path := filepath.Join(dir, artistFile)
	t, err := readTable(path)
	if errors.Is(err, fs.ErrNotExist) {
		return artist, nil
	}
	if err != nil {
		return artist, failures.Wrap(failures.ErrCorruptInput, "catalog", "load artist", path, err)
	}
	if len(t.rows) == 0 {
		return artist, nil
	}
	row := t.rows[0]
	if name := t.get(row, "name"); name != "" {
		artist.Name = name
	}
	artist.BirthName = t.get(row, "birth_name")
	artist.BirthDate = normalizeDate(t.get(row, "birth_date"))
	artist.BirthPlace = t.get(row, "birth_place")
	artist.Country = t.get(row, "country")
	artist.ActiveYears = normalizeDate(t.get(row, "active_years"))
	artist.Genres = joinNonEmpty(", ", t.get(row, "genres"), t.get(row, "genres_extra"))
	artist.Instruments = t.get(row, "instruments")
	artist.VocalType = t.get(row, "vocal_type")
	return artist, nil
}

func loadTracks(path string) (Album, []Track, []Issue, error) {
	var album Album
	t, err := readTable(path)
	if err != nil {
		return album, nil, nil, failures.Wrap(failures.ErrAlbumUnreadable, "catalog", "load tracks", path, err)
	}
	if !t.has("name") {
		return album, nil, nil, failures.Wrap(failures.ErrCorruptInput, "catalog", "load tracks", path+": no track name column", nil)
	}
	if len(t.rows) > 0 {
		first := t.rows[0]
		album.Name = t.get(first, "album_name")
		album.ReleaseDate = normalizeDate(t.get(first, "album_release_date"))
		album.Popularity, _ = parseOptionalInt(t.get(first, "album_popularity"))
	}

	var (
		tracks []Track
		issues []Issue
	)
	for i, row := range t.rows {
		if isBlankRow(row) {
			continue
		}
		name := t.get(row, "name")
		if name == "" {
			issues = append(issues, Issue{Row: i, Field: "name"})
			continue
		}
		track := Track{Name: name, Row: i}
		if n, ok := parseOptionalInt(t.get(row, "track_number")); ok && n != nil && *n > 0 {
			track.TrackNumber = *n
		} else {
			track.TrackNumber = i + 1
		}
		var ok bool
		if track.DurationMs, ok = parseDuration(t.get(row, "duration")); !ok {
			issues = append(issues, Issue{Row: i, Track: name, Field: "duration"})
		}
		if track.Explicit, ok = parseOptionalBool(t.get(row, "explicit")); !ok {
			issues = append(issues, Issue{Row: i, Track: name, Field: "explicit"})
		}
		if track.Popularity, ok = parseOptionalInt(t.get(row, "popularity")); !ok {
			issues = append(issues, Issue{Row: i, Track: name, Field: "popularity"})
		}
		tracks = append(tracks, track)
	}
	return album, tracks, issues, nil
}

// loadDocuments reads lyrics/*.txt, or *.txt beside tracks.csv when there is
// no lyrics folder. Documents are ordered by file name.
func loadDocuments(albumDir string) ([]Document, error) {
	dir := filepath.Join(albumDir, lyricsDir)
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		dir = albumDir
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, failures.Wrap(failures.ErrAlbumUnreadable, "catalog", "load documents", dir, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), lyricsExt) {
			continue
		}
		names = append(names, entry.Name())
	}
	slices.Sort(names)

	docs := make([]Document, 0, len(names))
	for order, name := range names {
		path := filepath.Join(dir, name)
		doc := Document{
			Title: displayName(strings.TrimSuffix(name, filepath.Ext(name))),
			Path:  path,
			Order: order,
		}
		data, err := os.ReadFile(path)
		switch {
		case err != nil:
			doc.Err = fmt.Errorf("%w: %s: %v", failures.ErrMalformedDocument, name, err)
		case !textutil.ValidText(data):
			doc.Err = fmt.Errorf("%w: %s: not valid UTF-8", failures.ErrMalformedDocument, name)
		default:
			doc.Text = CleanLyrics(string(data))
			if doc.Text == "" {
				doc.Err = fmt.Errorf("%w: %s: no lyric text", failures.ErrMalformedDocument, name)
			}
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func subdirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") || entry.Name() == lyricsDir {
			continue
		}
		dirs = append(dirs, filepath.Join(dir, entry.Name()))
	}
	return dirs, nil
}

// displayName turns a folder or file stem into a title: underscores become spaces.
func displayName(stem string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(stem, "_", " ")), " ")
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func joinNonEmpty(sep string, values ...string) string {
	var parts []string
	for _, v := range values {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, sep)
}
