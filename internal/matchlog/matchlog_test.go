package matchlog_test

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"lyricsync/internal/matchlog"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestFlushWritesTabSeparatedLines(t *testing.T) {
	w, err := matchlog.Open(t.TempDir(), "Run 2026-10-17")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer w.Close()

	log := matchlog.NewAlbumLog("Taylor Swift", "1989")
	log.Matched("Blank Space", "Blank Space", 1)
	log.Missing("Intro (Skit)", "no-candidate")
	log.Missing("Tab\tTitle", "malformed-document")
	if err := w.Flush(log); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if m, x := log.Len(); m != 0 || x != 0 {
		t.Fatalf("buffer not reset: %d %d", m, x)
	}

	matchedPath, missingPath := w.Paths()
	if !strings.HasSuffix(matchedPath, "matched_run-2026-10-17.log") {
		t.Fatalf("unexpected matched path %q", matchedPath)
	}
	if got := readLines(t, matchedPath); len(got) != 1 || got[0] != "Taylor Swift\t1989\tBlank Space\tBlank Space\t1.000" {
		t.Fatalf("unexpected matched lines %q", got)
	}
	missing := readLines(t, missingPath)
	want := []string{
		"Taylor Swift\t1989\tIntro (Skit)\tno-candidate",
		"Taylor Swift\t1989\tTab Title\tmalformed-document",
	}
	if strings.Join(missing, "|") != strings.Join(want, "|") {
		t.Fatalf("missing lines = %q, want %q", missing, want)
	}
}

func TestConcurrentFlushesDoNotInterleave(t *testing.T) {
	w, err := matchlog.Open(t.TempDir(), "concurrent")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer w.Close()

	const albums, tracks = 8, 50
	var wg sync.WaitGroup
	for a := range albums {
		wg.Add(1)
		go func() {
			defer wg.Done()
			log := matchlog.NewAlbumLog("Artist", fmt.Sprintf("Album %d", a))
			for i := range tracks {
				log.Missing(fmt.Sprintf("Track %d", i), "no-candidate")
			}
			if err := w.Flush(log); err != nil {
				t.Errorf("Flush: %v", err)
			}
		}()
	}
	wg.Wait()

	_, missingPath := w.Paths()
	lines := readLines(t, missingPath)
	if len(lines) != albums*tracks {
		t.Fatalf("expected %d lines, got %d", albums*tracks, len(lines))
	}
	// Each album's block must be contiguous and in order.
	for start := 0; start < len(lines); start += tracks {
		album := strings.Split(lines[start], "\t")[1]
		for i := range tracks {
			fields := strings.Split(lines[start+i], "\t")
			if len(fields) != 4 || fields[1] != album || fields[2] != fmt.Sprintf("Track %d", i) {
				t.Fatalf("interleaved line %d: %q", start+i, lines[start+i])
			}
		}
	}
}
