package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lyricsync/internal/catalog"
	"lyricsync/internal/metrics"
	"lyricsync/internal/wordfreq"
)

// TableCounts reports row counts per table.
type TableCounts struct {
	Artists    int `json:"artists"`
	Albums     int `json:"albums"`
	Tracks     int `json:"tracks"`
	Lyrics     int `json:"lyrics"`
	WithText   int `json:"with_text"`
	TrackWords int `json:"track_words"`
	AlbumWords int `json:"album_words"`
}

// LyricsRow is a stored lyrics row. Metrics is nil when the track has no text.
type LyricsRow struct {
	Text      *string
	Metrics   *metrics.Record
	UpdatedAt string
}

// AlbumStats aggregates one stored album.
type AlbumStats struct {
	Artist         string   `json:"artist"`
	Album          string   `json:"album"`
	Tracks         int      `json:"tracks"`
	WithLyrics     int      `json:"with_lyrics"`
	AvgSentiment   *float64 `json:"avg_sentiment,omitempty"`
	AvgReadability *float64 `json:"avg_readability,omitempty"`
}

// Counts returns the number of rows in every table.
func (s *Store) Counts(ctx context.Context) (TableCounts, error) {
	var counts TableCounts
	queries := []struct {
		sql  string
		dest *int
	}{
		{"SELECT COUNT(*) FROM artists", &counts.Artists},
		{"SELECT COUNT(*) FROM albums", &counts.Albums},
		{"SELECT COUNT(*) FROM tracks", &counts.Tracks},
		{"SELECT COUNT(*) FROM lyrics", &counts.Lyrics},
		{"SELECT COUNT(*) FROM lyrics WHERE text IS NOT NULL", &counts.WithText},
		{"SELECT COUNT(*) FROM word_frequencies_track", &counts.TrackWords},
		{"SELECT COUNT(*) FROM word_frequencies_album", &counts.AlbumWords},
	}
	for _, q := range queries {
		if err := s.db.QueryRowContext(ctx, q.sql).Scan(q.dest); err != nil {
			return TableCounts{}, fmt.Errorf("count rows: %w", err)
		}
	}
	return counts, nil
}

// TopWords returns an album's most frequent words. n <= 0 returns all.
func (s *Store) TopWords(ctx context.Context, artist, album string, n int) ([]wordfreq.Entry, error) {
	query := `SELECT word, count FROM word_frequencies_album
        WHERE artist = ? AND album = ?
        ORDER BY count DESC, word ASC`
	args := []any{artist, album}
	if n > 0 {
		query += " LIMIT ?"
		args = append(args, n)
	}
	return s.queryEntries(ctx, query, args...)
}

// TrackWords returns a track's stored word table in rank order.
func (s *Store) TrackWords(ctx context.Context, trackID int64) ([]wordfreq.Entry, error) {
	return s.queryEntries(ctx, `SELECT word, count FROM word_frequencies_track
        WHERE track_id = ? ORDER BY count DESC, word ASC`, trackID)
}

func (s *Store) queryEntries(ctx context.Context, query string, args ...any) ([]wordfreq.Entry, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()
	var entries []wordfreq.Entry
	for rows.Next() {
		var entry wordfreq.Entry
		if err := rows.Scan(&entry.Word, &entry.Count); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// TrackID looks a track up by its natural key. The bool is false when no
// such track is stored.
func (s *Store) TrackID(ctx context.Context, artist, album, track string) (int64, bool, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, s.dialect.rebind(`SELECT t.id FROM tracks t
        JOIN albums al ON al.id = t.album_id
        JOIN artists ar ON ar.id = al.artist_id
        WHERE ar.name = ? AND al.name = ? AND t.name = ?
        ORDER BY t.id LIMIT 1`), artist, album, track).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("find track: %w", err)
	}
	return id, true, nil
}

// Track returns the stored metadata of a track by id.
func (s *Store) Track(ctx context.Context, trackID int64) (catalog.Track, error) {
	var (
		track      catalog.Track
		number     sql.NullInt64
		duration   sql.NullInt64
		explicit   sql.NullBool
		popularity sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, s.dialect.rebind(`SELECT name, track_number, duration_ms, explicit, popularity
        FROM tracks WHERE id = ?`), trackID).Scan(&track.Name, &number, &duration, &explicit, &popularity)
	if err != nil {
		return track, fmt.Errorf("get track %d: %w", trackID, err)
	}
	track.TrackNumber = int(number.Int64)
	if duration.Valid {
		track.DurationMs = &duration.Int64
	}
	if explicit.Valid {
		track.Explicit = &explicit.Bool
	}
	if popularity.Valid {
		p := int(popularity.Int64)
		track.Popularity = &p
	}
	return track, nil
}

// LyricsMetrics returns the stored lyrics row for a track, or nil when none exists.
func (s *Store) LyricsMetrics(ctx context.Context, trackID int64) (*LyricsRow, error) {
	var (
		text                                 sql.NullString
		readability, sentiment, density      sql.NullFloat64
		words, lines, chars, sentences, syls sql.NullInt64
		row                                  LyricsRow
	)
	err := s.db.QueryRowContext(ctx, s.dialect.rebind(`SELECT text, readability_score, sentiment_score,
        lexical_density, word_count, line_count, char_count, sentence_count, syllable_count, updated_at
        FROM lyrics WHERE track_id = ?`), trackID).Scan(
		&text, &readability, &sentiment, &density,
		&words, &lines, &chars, &sentences, &syls, &row.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get lyrics: %w", err)
	}
	if text.Valid {
		row.Text = &text.String
	}
	if readability.Valid {
		row.Metrics = &metrics.Record{
			Readability:    readability.Float64,
			Sentiment:      sentiment.Float64,
			LexicalDensity: density.Float64,
			Words:          int(words.Int64),
			Lines:          int(lines.Int64),
			Chars:          int(chars.Int64),
			Sentences:      int(sentences.Int64),
			Syllables:      int(syls.Int64),
		}
	}
	return &row, nil
}

// AlbumSummaries aggregates every stored album, ordered by artist and album.
func (s *Store) AlbumSummaries(ctx context.Context) ([]AlbumStats, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT ar.name, al.name, COUNT(t.id),
            COUNT(l.text), AVG(l.sentiment_score), AVG(l.readability_score)
        FROM albums al
        JOIN artists ar ON ar.id = al.artist_id
        LEFT JOIN tracks t ON t.album_id = al.id
        LEFT JOIN lyrics l ON l.track_id = t.id
        GROUP BY ar.name, al.name
        ORDER BY ar.name, al.name`)
	if err != nil {
		return nil, fmt.Errorf("query albums: %w", err)
	}
	defer rows.Close()
	var stats []AlbumStats
	for rows.Next() {
		var (
			st                  AlbumStats
			sentiment, readable sql.NullFloat64
		)
		if err := rows.Scan(&st.Artist, &st.Album, &st.Tracks, &st.WithLyrics, &sentiment, &readable); err != nil {
			return nil, fmt.Errorf("scan album: %w", err)
		}
		if sentiment.Valid {
			st.AvgSentiment = &sentiment.Float64
		}
		if readable.Valid {
			st.AvgReadability = &readable.Float64
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}
