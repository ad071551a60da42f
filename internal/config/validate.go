package config

import (
	"errors"
	"fmt"
	"strings"

	"lyricsync/internal/lexicon"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	if err := c.validatePipeline(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.InputDir == "" {
		return errors.New("paths.input_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if strings.TrimSpace(c.Database.DSN) == "" {
			return errors.New("database.dsn must be set for sqlite")
		}
	case DriverPostgres:
		if strings.TrimSpace(c.Database.DSN) != "" {
			return nil
		}
		if c.Database.Name == "" {
			return errors.New("database.name is required for postgres. Set POSTGRES_DB or database.dsn")
		}
		if c.Database.User == "" {
			return errors.New("database.user is required for postgres. Set POSTGRES_USER or database.dsn")
		}
		if c.Database.Port <= 0 || c.Database.Port > 65535 {
			return fmt.Errorf("database.port %d is out of range", c.Database.Port)
		}
	default:
		return fmt.Errorf("database.driver %q is not supported (use sqlite or postgres)", c.Database.Driver)
	}
	return nil
}

func (c *Config) validateMatching() error {
	m := c.Matching
	if m.AcceptThreshold <= 0 || m.AcceptThreshold > 1 {
		return errors.New("matching.accept_threshold must be in (0, 1]")
	}
	if m.CandidateFloor < 0 || m.CandidateFloor > m.AcceptThreshold {
		return errors.New("matching.candidate_floor must be between 0 and matching.accept_threshold")
	}
	if m.EditWeight < 0 || m.TokenWeight < 0 {
		return errors.New("matching weights must be non-negative")
	}
	if m.EditWeight+m.TokenWeight == 0 {
		return errors.New("matching.edit_weight and matching.token_weight cannot both be zero")
	}
	if m.PrefixLength < 0 {
		return errors.New("matching.prefix_length must be non-negative")
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	if c.Analysis.TopWords < 0 {
		return errors.New("analysis.top_words must be non-negative")
	}
	if _, err := lexicon.LoadStopwords(c.Analysis.Stopwords); err != nil {
		return fmt.Errorf("analysis.stopwords: %w", err)
	}
	if _, err := lexicon.LoadSentiment(c.Analysis.SentimentLexicon); err != nil {
		return fmt.Errorf("analysis.sentiment_lexicon: %w", err)
	}
	return nil
}

func (c *Config) validatePipeline() error {
	if c.Pipeline.Workers < 1 {
		return errors.New("pipeline.workers must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q is not supported (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not supported", c.Logging.Level)
	}
	return nil
}
