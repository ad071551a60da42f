package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// AlbumFixture describes one album folder under an input catalog.
type AlbumFixture struct {
	Artist string
	Album  string
	// TracksCSV is written verbatim to tracks.csv.
	TracksCSV string
	// Lyrics maps a file stem to its text, written under lyrics/.
	Lyrics map[string]string
}

// WriteAlbum lays out an album folder and returns its path.
func WriteAlbum(t testing.TB, inputDir string, fixture AlbumFixture) string {
	t.Helper()

	dir := filepath.Join(inputDir, fixture.Artist, fixture.Album)
	WriteFile(t, filepath.Join(dir, "tracks.csv"), fixture.TracksCSV)
	for stem, text := range fixture.Lyrics {
		WriteFile(t, filepath.Join(dir, "lyrics", stem+".txt"), text)
	}
	if len(fixture.Lyrics) == 0 {
		if err := os.MkdirAll(filepath.Join(dir, "lyrics"), 0o755); err != nil {
			t.Fatalf("mkdir lyrics: %v", err)
		}
	}
	return dir
}
