package pipeline

import (
	"context"
	"log/slog"
	"time"

	"lyricsync/internal/catalog"
	"lyricsync/internal/failures"
	"lyricsync/internal/logging"
	"lyricsync/internal/matchlog"
	"lyricsync/internal/merge"
	"lyricsync/internal/store"
	"lyricsync/internal/telemetry"
	"lyricsync/internal/wordfreq"
)

// processAlbum runs load, match, merge, metrics, word counts and persistence
// for one album. The returned error is only non-nil for failures that must
// abort the run or for context cancellation.
func (r *Runner) processAlbum(ctx context.Context, base *slog.Logger, ref catalog.AlbumRef, w *matchlog.Writer) (res AlbumSummary, err error) {
	started := time.Now()
	res = AlbumSummary{Artist: ref.Artist.Name, Album: ref.Name, Status: StatusOK}
	ctx = logging.WithAlbum(ctx, ref.Artist.Name, ref.Name)
	logger := logging.WithContext(ctx, base)
	alog := matchlog.NewAlbumLog(ref.Artist.Name, ref.Name)

	defer func() {
		if flushErr := w.Flush(alog); flushErr != nil {
			logging.WarnWithContext(logger, "match log flush failed", "matchlog_flush_failed",
				"check log_dir permissions and free space", logging.Error(flushErr))
		}
		res.Duration = time.Since(started)
		if err != nil {
			res.Status = StatusFailed
			res.Error = err.Error()
		}
		outcome := telemetry.OutcomeOK
		if res.Status == StatusFailed {
			outcome = telemetry.OutcomeFailed
		}
		r.recorder.AlbumDone(outcome, res.Duration)
	}()

	src, err := r.loader.Load(ctx, ref)
	if err != nil {
		if failures.IsFatal(err) {
			return res, err
		}
		res.Status = StatusFailed
		res.Error = err.Error()
		res.Failed++
		alog.Missing(ref.Name, matchlog.ReasonAlbumFailed)
		r.recorder.Missing(matchlog.ReasonAlbumFailed)
		logging.WarnWithContext(logger, "album skipped", "album_unreadable",
			"check tracks.csv exists and is readable", logging.Error(err))
		return res, nil
	}
	res.Album = src.Album.Name
	if res.Album != ref.Name {
		ctx = logging.WithAlbum(ctx, src.Artist.Name, src.Album.Name)
		logger = logging.WithContext(ctx, base)
		alog = matchlog.NewAlbumLog(src.Artist.Name, src.Album.Name)
	}

	for _, issue := range src.Issues {
		res.Failed++
		alog.Missing(issue.Title(), matchlog.ReasonMissingField)
		r.recorder.Missing(matchlog.ReasonMissingField)
		logger.Debug("metadata row issue", logging.Error(issue))
	}

	tracks, dupes := merge.DedupeTracks(src.Tracks)
	for _, d := range dupes {
		res.Failed++
		alog.Missing(d.Dropped.Name, matchlog.ReasonDuplicateTrack)
		r.recorder.Missing(matchlog.ReasonDuplicateTrack)
		logger.Debug("duplicate track row dropped",
			logging.String(logging.FieldTrack, d.Dropped.Name),
			logging.Int("kept_row", d.Kept.Row+1),
			logging.Int("dropped_row", d.Dropped.Row+1),
		)
	}
	src.Tracks = tracks
	res.Tracks = len(tracks)

	if src.DocumentsErr != nil {
		res.Status = StatusDocumentsUnreadable
		res.Failed++
		src.Documents = nil
		alog.Missing(ref.Name, matchlog.ReasonAlbumFailed)
		r.recorder.Missing(matchlog.ReasonAlbumFailed)
		logging.WarnWithContext(logger, "lyric documents unreadable; tracks stay unmatched", "documents_unreadable",
			"check the album's lyrics folder permissions", logging.Error(src.DocumentsErr))
	}

	result := r.matcher.Match(src.Tracks, src.Documents)
	for i, d := range result.Decisions {
		track := src.Tracks[i]
		if d.Matched() {
			res.Matched++
			alog.Matched(track.Name, src.Documents[d.Document].Title, d.Score)
			r.recorder.Matched(d.Score)
			continue
		}
		res.Unmatched++
		alog.Missing(track.Name, string(d.Reason))
		r.recorder.Unmatched()
		r.recorder.Missing(string(d.Reason))
		logger.Debug("track unmatched",
			logging.String(logging.FieldTrack, track.Name),
			logging.String(logging.FieldReason, string(d.Reason)),
			logging.Float64("best_score", d.Score),
		)
	}
	for _, doc := range result.Rejected {
		res.Failed++
		alog.Missing(doc.Title, string(doc.Reason))
		r.recorder.Missing(string(doc.Reason))
		attrs := []logging.Attr{logging.String("document", doc.Title), logging.String(logging.FieldReason, string(doc.Reason))}
		if doc.Err != nil {
			attrs = append(attrs, logging.Error(doc.Err))
		}
		logger.Debug("lyric document rejected", logging.Args(attrs...)...)
	}
	for _, doc := range result.Orphans {
		res.Orphans++
		alog.Missing(doc.Title, string(doc.Reason))
		r.recorder.Missing(string(doc.Reason))
	}

	records, err := merge.AssembleAlbum(src, result)
	if err != nil {
		return res, failures.Wrap(failures.ErrCorruptInput, "pipeline", "assemble", src.Label(), err)
	}

	bundle := store.AlbumBundle{
		Artist: src.Artist,
		Album:  src.Album,
		Tracks: make([]store.TrackBundle, 0, len(records)),
	}
	tables := make([]wordfreq.Table, 0, len(records))
	for _, rec := range records {
		tb := store.TrackBundle{Track: rec.Track}
		if rec.HasLyrics() {
			m := r.engine.Compute(*rec.Lyrics)
			table := r.counter.Count(*rec.Lyrics)
			tables = append(tables, table)
			tb.Lyrics = rec.Lyrics
			tb.Metrics = &m
			tb.Words = wordfreq.Entries(table)
		}
		bundle.Tracks = append(bundle.Tracks, tb)
	}
	albumWords := wordfreq.Rollup(tables...)
	bundle.AlbumWords = wordfreq.Entries(albumWords)
	res.TopWords = wordfreq.Top(albumWords, r.cfg.Analysis.TopWords)

	if err := ctx.Err(); err != nil {
		return res, err
	}
	if _, err := r.store.PersistAlbum(ctx, bundle); err != nil {
		for _, rec := range records {
			alog.Missing(rec.Track.Name, matchlog.ReasonPersistFailed)
			r.recorder.Missing(matchlog.ReasonPersistFailed)
		}
		return res, err
	}

	logger.Info("album processed",
		logging.Int("tracks", res.Tracks),
		logging.Int("matched", res.Matched),
		logging.Int("unmatched", res.Unmatched),
		logging.Int("failed", res.Failed),
		logging.Int("orphan_documents", res.Orphans),
	)
	return res, nil
}
