package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"lyricsync/internal/catalog"
	"lyricsync/internal/config"
	"lyricsync/internal/failures"
	"lyricsync/internal/lexicon"
	"lyricsync/internal/logging"
	"lyricsync/internal/match"
	"lyricsync/internal/matchlog"
	"lyricsync/internal/metrics"
	"lyricsync/internal/store"
	"lyricsync/internal/telemetry"
	"lyricsync/internal/wordfreq"
)

// ErrRunInProgress is returned when another run holds the state directory lock.
var ErrRunInProgress = errors.New("another lyricsync run is in progress")

// Runner processes every album under the input directory. Albums are
// independent units of work scheduled on a bounded worker pool.
type Runner struct {
	cfg      *config.Config
	store    *store.Store
	loader   *catalog.Loader
	matcher  *match.Matcher
	engine   *metrics.Engine
	counter  *wordfreq.Counter
	recorder *telemetry.Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// New wires a runner from configuration. The store is owned by the caller.
func New(cfg *config.Config, st *store.Store, logger *slog.Logger) (*Runner, error) {
	if cfg == nil || st == nil {
		return nil, errors.New("runner requires config and store")
	}
	sentiment, err := lexicon.LoadSentiment(cfg.Analysis.SentimentLexicon)
	if err != nil {
		return nil, failures.Wrap(failures.ErrConfiguration, "pipeline", "load lexicon", cfg.Analysis.SentimentLexicon, err)
	}
	stop, err := lexicon.LoadStopwords(cfg.Analysis.Stopwords)
	if err != nil {
		return nil, failures.Wrap(failures.ErrConfiguration, "pipeline", "load stopwords", cfg.Analysis.Stopwords, err)
	}
	recorder, err := telemetry.New()
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}
	return &Runner{
		cfg:    cfg,
		store:  st,
		loader: catalog.NewLoader(cfg.Paths.InputDir),
		matcher: match.New(match.Policy{
			AcceptThreshold: cfg.Matching.AcceptThreshold,
			CandidateFloor:  cfg.Matching.CandidateFloor,
			EditWeight:      cfg.Matching.EditWeight,
			TokenWeight:     cfg.Matching.TokenWeight,
			PrefixLength:    cfg.Matching.PrefixLength,
		}),
		engine:   metrics.New(sentiment, stop),
		counter:  wordfreq.NewCounter(stop),
		recorder: recorder,
		logger:   logging.NewComponentLogger(logger, "pipeline"),
		now:      time.Now,
	}, nil
}

// Telemetry exposes the run metrics recorder.
func (r *Runner) Telemetry() *telemetry.Recorder {
	return r.recorder
}

// Run processes every discovered album. Per-item and per-album failures are
// logged and counted; a fatal failure stops scheduling, waits for running
// albums, and is returned alongside the partial summary.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	if err := r.cfg.EnsureDirectories(); err != nil {
		return nil, failures.Wrap(failures.ErrConfiguration, "pipeline", "prepare", "", err)
	}
	lock := flock.New(r.cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrRunInProgress, r.cfg.LockPath())
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			r.logger.Warn("failed to release run lock", logging.Error(err))
		}
	}()

	summary := &Summary{RunID: newRunID(r.now()), Started: r.now()}
	ctx = logging.WithRunID(ctx, summary.RunID)
	runLogger, closer, err := logging.RunLogger(r.logger, r.cfg, summary.RunID)
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	logger := logging.WithContext(ctx, runLogger)

	mlog, err := matchlog.Open(r.cfg.Paths.LogDir, summary.RunID)
	if err != nil {
		return nil, failures.Wrap(failures.ErrConfiguration, "pipeline", "open match logs", "", err)
	}
	defer func() {
		if err := mlog.Close(); err != nil {
			logger.Warn("failed to close match logs", logging.Error(err))
		}
	}()
	summary.MatchedLog, summary.MissingLog = mlog.Paths()

	refs, err := r.loader.Discover(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info("run started",
		logging.String("input_dir", r.cfg.Paths.InputDir),
		logging.Int("albums", len(refs)),
		logging.Int("workers", r.cfg.Pipeline.Workers),
		logging.String("store", r.store.Target()),
	)

	results := make([]AlbumSummary, len(refs))
	scheduled := make([]bool, len(refs))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.cfg.Pipeline.Workers)
	for i, ref := range refs {
		if groupCtx.Err() != nil {
			break
		}
		scheduled[i] = true
		group.Go(func() error {
			res, err := r.processAlbum(groupCtx, runLogger, ref, mlog)
			results[i] = res
			if err != nil && failures.IsFatal(err) {
				return err
			}
			return nil
		})
	}
	runErr := group.Wait()
	if runErr == nil {
		runErr = ctx.Err()
	}

	for i, res := range results {
		if scheduled[i] {
			summary.Albums = append(summary.Albums, res)
		}
	}
	summary.Finished = r.now()
	summary.tally()

	r.recorder.RunFinished(summary.Finished, runErr == nil)
	if path := r.cfg.Pipeline.MetricsFile; path != "" {
		if err := r.recorder.WriteTextfile(path); err != nil {
			logging.WarnWithContext(logger, "metrics export failed", "metrics_export_failed",
				"check pipeline.metrics_file permissions", logging.Error(err))
		} else {
			summary.MetricsFile = path
		}
	}

	attrs := []logging.Attr{
		logging.Int("albums", len(summary.Albums)),
		logging.Int("matched", summary.Matched),
		logging.Int("unmatched", summary.Unmatched),
		logging.Int("failed", summary.Failed),
		logging.Duration("elapsed", summary.Finished.Sub(summary.Started)),
	}
	if runErr != nil {
		logger.Error("run aborted", logging.Args(append(attrs, logging.Alert("run_aborted"), logging.Error(runErr))...)...)
		return summary, runErr
	}
	logger.Info("run finished", logging.Args(attrs...)...)
	return summary, nil
}

// newRunID is sortable by start time and unique across hosts.
func newRunID(at time.Time) string {
	short, _, _ := strings.Cut(uuid.NewString(), "-")
	return at.UTC().Format("20060102T150405Z") + "-" + short
}
