package merge

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"lyricsync/internal/catalog"
	"lyricsync/internal/match"
	"lyricsync/internal/normalize"
)

// CanonicalRecord is the merged, one-per-track result. Lyrics is nil when no
// document was matched; downstream code treats that as "metrics not
// computable", never as zero-valued metrics.
type CanonicalRecord struct {
	Artist        catalog.Artist
	Album         catalog.Album
	Track         catalog.Track
	Key           normalize.Key
	Lyrics        *string
	DocumentTitle string
	DocumentPath  string
	Score         float64
	Reason        match.Reason
}

// HasLyrics reports whether the record carries lyric text.
func (r CanonicalRecord) HasLyrics() bool {
	return r.Lyrics != nil
}

// Duplicate records a metadata row dropped in favour of a more complete one.
type Duplicate struct {
	Key     normalize.Key
	Kept    catalog.Track
	Dropped catalog.Track
}

// DedupeTracks collapses tracks whose names normalize to the same key within
// one album. The row with the fewest missing fields wins; ties keep the first
// row in input order. Survivors keep their input order.
func DedupeTracks(tracks []catalog.Track) ([]catalog.Track, []Duplicate) {
	names := make([]string, len(tracks))
	for i, t := range tracks {
		names[i] = t.Name
	}
	keys := normalize.Album(names, normalize.ScopeTrack)

	winner := make(map[normalize.Key]int, len(tracks))
	order := make([]normalize.Key, 0, len(tracks))
	var dupes []Duplicate
	for i, track := range tracks {
		key := keys[i]
		current, ok := winner[key]
		if !ok {
			winner[key] = i
			order = append(order, key)
			continue
		}
		if track.MissingFields() < tracks[current].MissingFields() {
			dupes = append(dupes, Duplicate{Key: key, Kept: track, Dropped: tracks[current]})
			winner[key] = i
			continue
		}
		dupes = append(dupes, Duplicate{Key: key, Kept: tracks[current], Dropped: track})
	}

	kept := make([]int, 0, len(order))
	for _, key := range order {
		kept = append(kept, winner[key])
	}
	slices.Sort(kept)
	out := make([]catalog.Track, len(kept))
	for i, idx := range kept {
		out[i] = tracks[idx]
	}
	// A row replaced later may appear as Kept in an earlier entry; report the final winner.
	for i := range dupes {
		dupes[i].Kept = tracks[winner[dupes[i].Key]]
	}
	return out, dupes
}

// Assemble builds the canonical record for one track. doc is nil when the
// decision is unmatched.
func Assemble(artist catalog.Artist, album catalog.Album, track catalog.Track, doc *catalog.Document, decision match.Decision) CanonicalRecord {
	record := CanonicalRecord{
		Artist: artist,
		Album:  album,
		Track:  track,
		Key:    decision.TrackKey,
		Score:  decision.Score,
		Reason: decision.Reason,
	}
	if doc == nil || !decision.Matched() {
		return record
	}
	text := strings.TrimSpace(doc.Text)
	record.Lyrics = &text
	record.DocumentTitle = doc.Title
	record.DocumentPath = doc.Path
	return record
}

// AssembleAlbum produces one record per track of src from a completed match.
// src.Tracks must be the slice that was matched. Records are ordered by track
// number, then input row.
func AssembleAlbum(src catalog.AlbumSource, result match.Result) ([]CanonicalRecord, error) {
	if len(result.Decisions) != len(src.Tracks) {
		return nil, fmt.Errorf("assemble %s: %d decisions for %d tracks", src.Label(), len(result.Decisions), len(src.Tracks))
	}
	bound := make(map[int]int, len(result.Decisions))
	records := make([]CanonicalRecord, 0, len(src.Tracks))
	for i, decision := range result.Decisions {
		var doc *catalog.Document
		if decision.Matched() {
			if decision.Document >= len(src.Documents) {
				return nil, fmt.Errorf("assemble %s: track %q bound to unknown document %d", src.Label(), src.Tracks[i].Name, decision.Document)
			}
			if prev, dup := bound[decision.Document]; dup {
				return nil, fmt.Errorf("assemble %s: document %q bound to both %q and %q",
					src.Label(), src.Documents[decision.Document].Title, src.Tracks[prev].Name, src.Tracks[i].Name)
			}
			bound[decision.Document] = i
			doc = &src.Documents[decision.Document]
		}
		records = append(records, Assemble(src.Artist, src.Album, src.Tracks[i], doc, decision))
	}
	slices.SortStableFunc(records, func(a, b CanonicalRecord) int {
		if c := cmp.Compare(a.Track.Position(), b.Track.Position()); c != 0 {
			return c
		}
		return cmp.Compare(a.Track.Row, b.Track.Row)
	})
	return records, nil
}
