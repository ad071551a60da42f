package preflight

import (
	"context"
	"errors"
	"fmt"

	"lyricsync/internal/config"
	"lyricsync/internal/failures"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the filesystem and lexicon checks for the given config.
// The database check is separate because callers usually open the store
// themselves right after.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	if ctx.Err() != nil {
		return []Result{{Name: "Preflight", Detail: ctx.Err().Error()}}
	}

	return []Result{
		CheckReadableDirectory("Input directory", cfg.Paths.InputDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
		CheckDirectoryAccess("State directory", cfg.Paths.StateDir),
		CheckStopwords(cfg.Analysis.Stopwords),
		CheckSentimentLexicon(cfg.Analysis.SentimentLexicon),
	}
}

// Err joins every failed result into one configuration error, or returns nil.
func Err(results []Result) error {
	var errs []error
	for _, r := range results {
		if !r.Passed {
			errs = append(errs, fmt.Errorf("%s: %s", r.Name, r.Detail))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return failures.Wrap(failures.ErrConfiguration, "preflight", "", "", errors.Join(errs...))
}
