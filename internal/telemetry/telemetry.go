package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "lyricsync"

// Album outcomes.
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

// Recorder collects run metrics on a private registry. A nil Recorder
// discards everything.
type Recorder struct {
	registry *prometheus.Registry

	albumsTotal       *prometheus.CounterVec
	tracksTotal       *prometheus.CounterVec
	missingTotal      *prometheus.CounterVec
	matchScore        prometheus.Histogram
	albumDuration     prometheus.Histogram
	lastRunTimestamp  prometheus.Gauge
	lastRunSuccessful prometheus.Gauge
}

// New registers the run collectors on a fresh registry.
func New() (*Recorder, error) {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		albumsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "albums_total",
			Help:      "Albums processed, by outcome.",
		}, []string{"outcome"}),
		tracksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tracks_total",
			Help:      "Canonical tracks assembled, by whether lyrics were bound.",
		}, []string{"status"}),
		missingTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "missing_items_total",
			Help:      "Tracks and documents written to the missing log, by reason.",
		}, []string{"reason"}),
		matchScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "match_score",
			Help:      "Similarity score of accepted track/document pairs.",
			Buckets:   []float64{0.6, 0.7, 0.8, 0.9, 0.95, 0.99, 1},
		}),
		albumDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "album_duration_seconds",
			Help:      "Wall time to process one album.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		lastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished.",
		}),
		lastRunSuccessful: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_success",
			Help:      "1 if the last run finished without a fatal error.",
		}),
	}
	collectors := []prometheus.Collector{
		r.albumsTotal, r.tracksTotal, r.missingTotal,
		r.matchScore, r.albumDuration, r.lastRunTimestamp, r.lastRunSuccessful,
	}
	for _, c := range collectors {
		if err := r.registry.Register(c); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}
	return r, nil
}

// Registry exposes the underlying registry for gathering.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// AlbumDone records one album's outcome and duration.
func (r *Recorder) AlbumDone(outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.albumsTotal.WithLabelValues(outcome).Inc()
	r.albumDuration.Observe(elapsed.Seconds())
}

// Matched records a track bound to lyrics with its score.
func (r *Recorder) Matched(score float64) {
	if r == nil {
		return
	}
	r.tracksTotal.WithLabelValues("matched").Inc()
	r.matchScore.Observe(score)
}

// Unmatched records a track persisted without lyrics.
func (r *Recorder) Unmatched() {
	if r == nil {
		return
	}
	r.tracksTotal.WithLabelValues("unmatched").Inc()
}

// Missing records one missing-log entry.
func (r *Recorder) Missing(reason string) {
	if r == nil {
		return
	}
	r.missingTotal.WithLabelValues(reason).Inc()
}

// RunFinished stamps the end of a run.
func (r *Recorder) RunFinished(at time.Time, success bool) {
	if r == nil {
		return
	}
	r.lastRunTimestamp.Set(float64(at.Unix()))
	if success {
		r.lastRunSuccessful.Set(1)
	} else {
		r.lastRunSuccessful.Set(0)
	}
}

// WriteTextfile exports the registry in the node-exporter textfile format.
// The write is atomic.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := prometheus.WriteToTextfile(tmp, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Join(fmt.Errorf("install metrics textfile: %w", err), os.Remove(tmp))
	}
	return nil
}
