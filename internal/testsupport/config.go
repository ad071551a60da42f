package testsupport

import (
	"path/filepath"
	"testing"

	"lyricsync/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test
// and a sqlite database inside them. It applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.InputDir = filepath.Join(base, "catalog")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Database.DSN = filepath.Join(base, "state", "lyricsync.db")
	cfgVal.Pipeline.MetricsFile = filepath.Join(base, "state", "lyricsync.prom")
	cfgVal.Pipeline.Workers = 2

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return builder.cfg
}

// WithWorkers sets the album worker count.
func WithWorkers(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Pipeline.Workers = n
	}
}

// WithAcceptThreshold overrides the matcher acceptance threshold.
func WithAcceptThreshold(threshold float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matching.AcceptThreshold = threshold
	}
}

// WithStopwords selects the stop-word list version.
func WithStopwords(version string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Analysis.Stopwords = version
	}
}

// WithoutMetricsFile disables the telemetry textfile export.
func WithoutMetricsFile() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Pipeline.MetricsFile = ""
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.InputDir)
}
