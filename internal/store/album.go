package store

import (
	"context"
	"database/sql"

	"lyricsync/internal/catalog"
	"lyricsync/internal/failures"
	"lyricsync/internal/metrics"
	"lyricsync/internal/wordfreq"
)

// TrackBundle is one canonical track ready to persist.
type TrackBundle struct {
	Track   catalog.Track
	Lyrics  *string
	Metrics *metrics.Record
	Words   []wordfreq.Entry
}

// AlbumBundle is everything one album run writes.
type AlbumBundle struct {
	Artist     catalog.Artist
	Album      catalog.Album
	Tracks     []TrackBundle
	AlbumWords []wordfreq.Entry
}

// AlbumIDs are the row ids an album persisted to.
type AlbumIDs struct {
	Artist int64
	Album  int64
	Tracks []int64
}

// PersistAlbum writes an album bundle in a single transaction: artist,
// album, every track with its lyrics row and word table, then the album word
// table. Failures are persistence errors and abort the run.
func (s *Store) PersistAlbum(ctx context.Context, bundle AlbumBundle) (AlbumIDs, error) {
	var ids AlbumIDs
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		ids = AlbumIDs{Tracks: make([]int64, 0, len(bundle.Tracks))}
		var err error
		if ids.Artist, err = s.upsertArtist(ctx, tx, bundle.Artist); err != nil {
			return err
		}
		if ids.Album, err = s.upsertAlbum(ctx, tx, ids.Artist, bundle.Album); err != nil {
			return err
		}
		for _, tb := range bundle.Tracks {
			trackID, err := s.upsertTrack(ctx, tx, ids.Album, tb.Track)
			if err != nil {
				return err
			}
			if err := s.upsertLyrics(ctx, tx, trackID, tb.Lyrics, tb.Metrics); err != nil {
				return err
			}
			if err := s.replaceTrackWords(ctx, tx, trackID, tb.Words); err != nil {
				return err
			}
			ids.Tracks = append(ids.Tracks, trackID)
		}
		return s.replaceAlbumWords(ctx, tx, bundle.Artist.Name, bundle.Album.Name, bundle.AlbumWords)
	})
	if err != nil {
		return AlbumIDs{}, failures.Wrap(failures.ErrPersistence, "store", "persist album",
			bundle.Artist.Name+"/"+bundle.Album.Name, err)
	}
	return ids, nil
}
