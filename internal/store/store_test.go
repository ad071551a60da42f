package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"lyricsync/internal/catalog"
	"lyricsync/internal/failures"
	"lyricsync/internal/metrics"
	"lyricsync/internal/store"
	"lyricsync/internal/testsupport"
	"lyricsync/internal/wordfreq"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func sampleBundle(popularity int) store.AlbumBundle {
	text := "Cause baby now we got bad blood"
	return store.AlbumBundle{
		Artist: catalog.Artist{Name: "Taylor Swift", BirthDate: "1989-12-13", Genres: "pop"},
		Album:  catalog.Album{Name: "1989", ReleaseDate: "2014-10-27", Popularity: intPtr(popularity)},
		Tracks: []store.TrackBundle{
			{
				Track:   catalog.Track{Name: "Bad Blood", TrackNumber: 8, Popularity: intPtr(70)},
				Lyrics:  &text,
				Metrics: &metrics.Record{Readability: 90.5, Sentiment: -0.4, LexicalDensity: 1, Words: 7, Lines: 1, Chars: len(text), Sentences: 1, Syllables: 7},
				Words:   []wordfreq.Entry{{Word: "bad", Count: 1}, {Word: "blood", Count: 1}},
			},
			{
				Track: catalog.Track{Name: "Wonderland", TrackNumber: 14},
			},
		},
		AlbumWords: []wordfreq.Entry{{Word: "bad", Count: 1}, {Word: "blood", Count: 1}},
	}
}

func TestOpenCreatesSchemaAndReopens(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	if st.Dialect() != "sqlite" {
		t.Fatalf("unexpected dialect %q", st.Dialect())
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := testsupport.MustOpenStore(t, cfg)
	counts, err := reopened.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if counts != (store.TableCounts{}) {
		t.Fatalf("expected empty tables, got %+v", counts)
	}
}

func TestUpsertsKeepIDsStable(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	artist := catalog.Artist{Name: "Taylor Swift"}
	artistID, err := st.UpsertArtist(ctx, artist)
	if err != nil {
		t.Fatalf("UpsertArtist: %v", err)
	}
	artist.Country = "United States"
	again, err := st.UpsertArtist(ctx, artist)
	if err != nil || again != artistID {
		t.Fatalf("artist id changed: %d -> %d (%v)", artistID, again, err)
	}

	albumID, err := st.UpsertAlbum(ctx, artistID, catalog.Album{Name: "Red", Popularity: intPtr(50)})
	if err != nil {
		t.Fatalf("UpsertAlbum: %v", err)
	}
	albumAgain, err := st.UpsertAlbum(ctx, artistID, catalog.Album{Name: "Red", Popularity: intPtr(99)})
	if err != nil || albumAgain != albumID {
		t.Fatalf("album id changed: %d -> %d (%v)", albumID, albumAgain, err)
	}

	trackID, err := st.UpsertTrack(ctx, albumID, catalog.Track{Name: "State of Grace", TrackNumber: 1})
	if err != nil {
		t.Fatalf("UpsertTrack: %v", err)
	}
	trackAgain, err := st.UpsertTrack(ctx, albumID, catalog.Track{Name: "State of Grace", TrackNumber: 1, Popularity: intPtr(40)})
	if err != nil || trackAgain != trackID {
		t.Fatalf("track id changed: %d -> %d (%v)", trackID, trackAgain, err)
	}

	counts, err := st.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if counts.Artists != 1 || counts.Albums != 1 || counts.Tracks != 1 {
		t.Fatalf("unexpected counts %+v", counts)
	}
}

func TestSameNameDifferentBirthDateAreDistinctArtists(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	a, err := st.UpsertArtist(ctx, catalog.Artist{Name: "Nirvana", BirthDate: "1987"})
	if err != nil {
		t.Fatalf("UpsertArtist: %v", err)
	}
	b, err := st.UpsertArtist(ctx, catalog.Artist{Name: "Nirvana", BirthDate: "1967"})
	if err != nil {
		t.Fatalf("UpsertArtist: %v", err)
	}
	if a == b {
		t.Fatal("artists with different birth dates should not collapse")
	}
}

func TestLyricsAndMetricsRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	artistID, _ := st.UpsertArtist(ctx, catalog.Artist{Name: "A"})
	albumID, _ := st.UpsertAlbum(ctx, artistID, catalog.Album{Name: "B"})
	trackID, err := st.UpsertTrack(ctx, albumID, catalog.Track{Name: "C", TrackNumber: 1})
	if err != nil {
		t.Fatalf("UpsertTrack: %v", err)
	}

	if err := st.UpsertLyrics(ctx, trackID, nil, nil); err != nil {
		t.Fatalf("UpsertLyrics(nil): %v", err)
	}
	row, err := st.LyricsMetrics(ctx, trackID)
	if err != nil || row == nil {
		t.Fatalf("LyricsMetrics: %v %v", row, err)
	}
	if row.Text != nil || row.Metrics != nil {
		t.Fatalf("expected null lyrics row, got %+v", row)
	}

	rec := metrics.Record{Readability: 80, Sentiment: 0.5, LexicalDensity: 0.75, Words: 4, Lines: 1, Chars: 20, Sentences: 1, Syllables: 5}
	if err := st.UpsertLyrics(ctx, trackID, strPtr("la la land"), &rec); err != nil {
		t.Fatalf("UpsertLyrics: %v", err)
	}
	rec.Sentiment = -0.25
	if err := st.UpsertMetrics(ctx, trackID, rec); err != nil {
		t.Fatalf("UpsertMetrics: %v", err)
	}
	row, err = st.LyricsMetrics(ctx, trackID)
	if err != nil {
		t.Fatalf("LyricsMetrics: %v", err)
	}
	if row.Text == nil || *row.Text != "la la land" {
		t.Fatalf("UpsertMetrics must keep text, got %v", row.Text)
	}
	if diff := cmp.Diff(&rec, row.Metrics); diff != "" {
		t.Fatalf("metrics mismatch (-want +got):\n%s", diff)
	}

	missing, err := st.LyricsMetrics(ctx, trackID+100)
	if err != nil || missing != nil {
		t.Fatalf("expected nil row for unknown track, got %+v (%v)", missing, err)
	}
}

func TestReplaceWordFrequenciesLeavesNoStaleWords(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	artistID, _ := st.UpsertArtist(ctx, catalog.Artist{Name: "A"})
	albumID, _ := st.UpsertAlbum(ctx, artistID, catalog.Album{Name: "B"})
	trackID, _ := st.UpsertTrack(ctx, albumID, catalog.Track{Name: "C"})

	first := []wordfreq.Entry{{Word: "old", Count: 3}, {Word: "shared", Count: 1}}
	if err := st.ReplaceTrackWordFrequencies(ctx, trackID, first); err != nil {
		t.Fatalf("ReplaceTrackWordFrequencies: %v", err)
	}
	second := []wordfreq.Entry{{Word: "shared", Count: 2}, {Word: "new", Count: 1}}
	if err := st.ReplaceTrackWordFrequencies(ctx, trackID, second); err != nil {
		t.Fatalf("ReplaceTrackWordFrequencies: %v", err)
	}
	got, err := st.TrackWords(ctx, trackID)
	if err != nil {
		t.Fatalf("TrackWords: %v", err)
	}
	if diff := cmp.Diff(second, got); diff != "" {
		t.Fatalf("track words mismatch (-want +got):\n%s", diff)
	}

	if err := st.ReplaceAlbumWordFrequencies(ctx, "A", "B", first); err != nil {
		t.Fatalf("ReplaceAlbumWordFrequencies: %v", err)
	}
	if err := st.ReplaceAlbumWordFrequencies(ctx, "A", "B", second); err != nil {
		t.Fatalf("ReplaceAlbumWordFrequencies: %v", err)
	}
	top, err := st.TopWords(ctx, "A", "B", 1)
	if err != nil {
		t.Fatalf("TopWords: %v", err)
	}
	if diff := cmp.Diff([]wordfreq.Entry{{Word: "shared", Count: 2}}, top); diff != "" {
		t.Fatalf("top words mismatch (-want +got):\n%s", diff)
	}
	all, err := st.TopWords(ctx, "A", "B", 0)
	if err != nil || len(all) != 2 {
		t.Fatalf("expected 2 album words, got %v (%v)", all, err)
	}
}

func TestPersistAlbumIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	first, err := st.PersistAlbum(ctx, sampleBundle(80))
	if err != nil {
		t.Fatalf("PersistAlbum: %v", err)
	}
	countsBefore, err := st.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	want := store.TableCounts{Artists: 1, Albums: 1, Tracks: 2, Lyrics: 2, WithText: 1, TrackWords: 2, AlbumWords: 2}
	if countsBefore != want {
		t.Fatalf("counts = %+v, want %+v", countsBefore, want)
	}

	second, err := st.PersistAlbum(ctx, sampleBundle(95))
	if err != nil {
		t.Fatalf("PersistAlbum rerun: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("ids changed on rerun (-first +second):\n%s", diff)
	}
	countsAfter, err := st.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if countsAfter != countsBefore {
		t.Fatalf("rerun changed row counts: %+v -> %+v", countsBefore, countsAfter)
	}

	id, ok, err := st.TrackID(ctx, "Taylor Swift", "1989", "Bad Blood")
	if err != nil || !ok || id != first.Tracks[0] {
		t.Fatalf("TrackID = %d %v %v, want %d", id, ok, err, first.Tracks[0])
	}
	if _, ok, _ := st.TrackID(ctx, "Taylor Swift", "1989", "Shake It Off"); ok {
		t.Fatal("unexpected track found")
	}

	summaries, err := st.AlbumSummaries(ctx)
	if err != nil {
		t.Fatalf("AlbumSummaries: %v", err)
	}
	if len(summaries) != 1 || summaries[0].Tracks != 2 || summaries[0].WithLyrics != 1 {
		t.Fatalf("unexpected summaries %+v", summaries)
	}
	if summaries[0].AvgSentiment == nil || *summaries[0].AvgSentiment != -0.4 {
		t.Fatalf("unexpected average sentiment %v", summaries[0].AvgSentiment)
	}
}

func TestPersistAlbumFailureIsFatalPersistenceError(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	_, err := st.PersistAlbum(context.Background(), sampleBundle(1))
	if !errors.Is(err, failures.ErrPersistence) || !failures.IsFatal(err) {
		t.Fatalf("expected fatal persistence error, got %v", err)
	}
}
