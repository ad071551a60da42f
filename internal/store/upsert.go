package store

import (
	"context"
	"database/sql"
	"fmt"

	"lyricsync/internal/catalog"
	"lyricsync/internal/metrics"
	"lyricsync/internal/wordfreq"
)

const upsertArtistSQL = `INSERT INTO artists (
    name, birth_name, birth_date, birth_place, country,
    active_years, genres, instruments, vocal_type
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (name, birth_date) DO UPDATE SET
    birth_name = excluded.birth_name,
    birth_place = excluded.birth_place,
    country = excluded.country,
    active_years = excluded.active_years,
    genres = excluded.genres,
    instruments = excluded.instruments,
    vocal_type = excluded.vocal_type
RETURNING id`

const upsertAlbumSQL = `INSERT INTO albums (artist_id, name, release_date, popularity)
VALUES (?, ?, ?, ?)
ON CONFLICT (name, artist_id) DO UPDATE SET
    release_date = excluded.release_date,
    popularity = excluded.popularity
RETURNING id`

const upsertTrackSQL = `INSERT INTO tracks (album_id, name, track_number, duration_ms, explicit, popularity)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (name, album_id) DO UPDATE SET
    track_number = excluded.track_number,
    duration_ms = excluded.duration_ms,
    explicit = excluded.explicit,
    popularity = excluded.popularity
RETURNING id`

const upsertLyricsSQL = `INSERT INTO lyrics (
    track_id, text, readability_score, sentiment_score, lexical_density,
    word_count, line_count, char_count, sentence_count, syllable_count, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (track_id) DO UPDATE SET
    text = excluded.text,
    readability_score = excluded.readability_score,
    sentiment_score = excluded.sentiment_score,
    lexical_density = excluded.lexical_density,
    word_count = excluded.word_count,
    line_count = excluded.line_count,
    char_count = excluded.char_count,
    sentence_count = excluded.sentence_count,
    syllable_count = excluded.syllable_count,
    updated_at = excluded.updated_at`

const upsertMetricsSQL = `INSERT INTO lyrics (
    track_id, readability_score, sentiment_score, lexical_density,
    word_count, line_count, char_count, sentence_count, syllable_count, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (track_id) DO UPDATE SET
    readability_score = excluded.readability_score,
    sentiment_score = excluded.sentiment_score,
    lexical_density = excluded.lexical_density,
    word_count = excluded.word_count,
    line_count = excluded.line_count,
    char_count = excluded.char_count,
    sentence_count = excluded.sentence_count,
    syllable_count = excluded.syllable_count,
    updated_at = excluded.updated_at`

// UpsertArtist inserts or updates an artist by (name, birth date) and returns its id.
func (s *Store) UpsertArtist(ctx context.Context, artist catalog.Artist) (int64, error) {
	var id int64
	err := retryOnBusy(ctx, func() (err error) {
		id, err = s.upsertArtist(ctx, s.db, artist)
		return err
	})
	return id, err
}

// UpsertAlbum inserts or updates an album by (name, artist) and returns its id.
func (s *Store) UpsertAlbum(ctx context.Context, artistID int64, album catalog.Album) (int64, error) {
	var id int64
	err := retryOnBusy(ctx, func() (err error) {
		id, err = s.upsertAlbum(ctx, s.db, artistID, album)
		return err
	})
	return id, err
}

// UpsertTrack inserts or updates a track's metadata by (name, album) and returns its id.
func (s *Store) UpsertTrack(ctx context.Context, albumID int64, track catalog.Track) (int64, error) {
	var id int64
	err := retryOnBusy(ctx, func() (err error) {
		id, err = s.upsertTrack(ctx, s.db, albumID, track)
		return err
	})
	return id, err
}

// UpsertLyrics writes a track's lyrics row. Nil text marks a track without
// lyrics; nil metrics store NULL scores.
func (s *Store) UpsertLyrics(ctx context.Context, trackID int64, text *string, rec *metrics.Record) error {
	return retryOnBusy(ctx, func() error {
		return s.upsertLyrics(ctx, s.db, trackID, text, rec)
	})
}

// UpsertMetrics replaces the scores on a track's lyrics row, leaving the text alone.
func (s *Store) UpsertMetrics(ctx context.Context, trackID int64, rec metrics.Record) error {
	_, err := s.execWithRetry(ctx, upsertMetricsSQL,
		trackID, rec.Readability, rec.Sentiment, rec.LexicalDensity,
		rec.Words, rec.Lines, rec.Chars, rec.Sentences, rec.Syllables, timestamp(),
	)
	if err != nil {
		return fmt.Errorf("upsert metrics: %w", err)
	}
	return nil
}

// ReplaceTrackWordFrequencies swaps a track's word table in one transaction.
func (s *Store) ReplaceTrackWordFrequencies(ctx context.Context, trackID int64, entries []wordfreq.Entry) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.replaceTrackWords(ctx, tx, trackID, entries)
	})
}

// ReplaceAlbumWordFrequencies swaps an album's word table in one transaction.
func (s *Store) ReplaceAlbumWordFrequencies(ctx context.Context, artist, album string, entries []wordfreq.Entry) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.replaceAlbumWords(ctx, tx, artist, album, entries)
	})
}

func (s *Store) upsertArtist(ctx context.Context, q querier, artist catalog.Artist) (int64, error) {
	id, err := s.returningID(ctx, q, upsertArtistSQL,
		artist.Name,
		nullableString(artist.BirthName),
		artist.BirthDate,
		nullableString(artist.BirthPlace),
		nullableString(artist.Country),
		nullableString(artist.ActiveYears),
		nullableString(artist.Genres),
		nullableString(artist.Instruments),
		nullableString(artist.VocalType),
	)
	if err != nil {
		return 0, fmt.Errorf("upsert artist %q: %w", artist.Name, err)
	}
	return id, nil
}

func (s *Store) upsertAlbum(ctx context.Context, q querier, artistID int64, album catalog.Album) (int64, error) {
	id, err := s.returningID(ctx, q, upsertAlbumSQL,
		artistID, album.Name, nullableString(album.ReleaseDate), nullableInt(album.Popularity),
	)
	if err != nil {
		return 0, fmt.Errorf("upsert album %q: %w", album.Name, err)
	}
	return id, nil
}

func (s *Store) upsertTrack(ctx context.Context, q querier, albumID int64, track catalog.Track) (int64, error) {
	var number any
	if track.TrackNumber > 0 {
		number = int64(track.TrackNumber)
	}
	id, err := s.returningID(ctx, q, upsertTrackSQL,
		albumID, track.Name, number,
		nullableInt64(track.DurationMs), nullableBool(track.Explicit), nullableInt(track.Popularity),
	)
	if err != nil {
		return 0, fmt.Errorf("upsert track %q: %w", track.Name, err)
	}
	return id, nil
}

func (s *Store) upsertLyrics(ctx context.Context, q querier, trackID int64, text *string, rec *metrics.Record) error {
	args := []any{trackID, nil, nil, nil, nil, nil, nil, nil, nil, nil, timestamp()}
	if text != nil {
		args[1] = *text
	}
	if rec != nil {
		args[2], args[3], args[4] = rec.Readability, rec.Sentiment, rec.LexicalDensity
		args[5], args[6], args[7] = int64(rec.Words), int64(rec.Lines), int64(rec.Chars)
		args[8], args[9] = int64(rec.Sentences), int64(rec.Syllables)
	}
	if _, err := q.ExecContext(ctx, s.dialect.rebind(upsertLyricsSQL), args...); err != nil {
		return fmt.Errorf("upsert lyrics for track %d: %w", trackID, err)
	}
	return nil
}

func (s *Store) replaceTrackWords(ctx context.Context, q querier, trackID int64, entries []wordfreq.Entry) error {
	if _, err := q.ExecContext(ctx, s.dialect.rebind(`DELETE FROM word_frequencies_track WHERE track_id = ?`), trackID); err != nil {
		return fmt.Errorf("clear track words: %w", err)
	}
	insert := s.dialect.rebind(`INSERT INTO word_frequencies_track (track_id, word, count) VALUES (?, ?, ?)`)
	for _, entry := range entries {
		if _, err := q.ExecContext(ctx, insert, trackID, entry.Word, int64(entry.Count)); err != nil {
			return fmt.Errorf("insert track word %q: %w", entry.Word, err)
		}
	}
	return nil
}

func (s *Store) replaceAlbumWords(ctx context.Context, q querier, artist, album string, entries []wordfreq.Entry) error {
	if _, err := q.ExecContext(ctx, s.dialect.rebind(`DELETE FROM word_frequencies_album WHERE artist = ? AND album = ?`), artist, album); err != nil {
		return fmt.Errorf("clear album words: %w", err)
	}
	insert := s.dialect.rebind(`INSERT INTO word_frequencies_album (artist, album, word, count) VALUES (?, ?, ?, ?)`)
	for _, entry := range entries {
		if _, err := q.ExecContext(ctx, insert, artist, album, entry.Word, int64(entry.Count)); err != nil {
			return fmt.Errorf("insert album word %q: %w", entry.Word, err)
		}
	}
	return nil
}
