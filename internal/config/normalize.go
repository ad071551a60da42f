package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeDatabase(); err != nil {
		return err
	}
	c.normalizeAnalysis()
	if err := c.normalizePipeline(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if value, ok := os.LookupEnv("LYRICSYNC_INPUT_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.InputDir = value
	}
	if c.Paths.InputDir, err = expandPath(c.Paths.InputDir); err != nil {
		return fmt.Errorf("paths.input_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDatabase() error {
	db := &c.Database
	db.Driver = strings.ToLower(strings.TrimSpace(db.Driver))
	switch db.Driver {
	case "", "sqlite3":
		db.Driver = DriverSQLite
	case "pgx", "postgresql":
		db.Driver = DriverPostgres
	}
	if value, ok := os.LookupEnv("LYRICSYNC_DSN"); ok && strings.TrimSpace(value) != "" {
		db.DSN = strings.TrimSpace(value)
	}
	if db.BusyTimeoutMS <= 0 {
		db.BusyTimeoutMS = defaultBusyTimeoutMS
	}

	if db.Driver == DriverSQLite {
		if strings.TrimSpace(db.DSN) == "" {
			db.DSN = filepath.Join(c.Paths.StateDir, defaultDatabaseFile)
			return nil
		}
		if db.DSN == ":memory:" || strings.HasPrefix(db.DSN, "file:") {
			return nil
		}
		expanded, err := expandPath(db.DSN)
		if err != nil {
			return fmt.Errorf("database.dsn: %w", err)
		}
		db.DSN = expanded
		return nil
	}

	lookup := func(field *string, key string) {
		if strings.TrimSpace(*field) != "" {
			return
		}
		if value, ok := os.LookupEnv(key); ok {
			*field = strings.TrimSpace(value)
		}
	}
	lookup(&db.Name, "POSTGRES_DB")
	lookup(&db.User, "POSTGRES_USER")
	lookup(&db.Password, "POSTGRES_PASSWORD")
	lookup(&db.Host, "POSTGRES_HOST")
	if db.Port == 0 {
		if value, ok := os.LookupEnv("POSTGRES_PORT"); ok && strings.TrimSpace(value) != "" {
			port, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return fmt.Errorf("POSTGRES_PORT: %w", err)
			}
			db.Port = port
		}
	}
	if db.Host == "" {
		db.Host = "localhost"
	}
	if db.Port == 0 {
		db.Port = defaultPostgresPort
	}
	if db.SSLMode == "" {
		db.SSLMode = defaultPostgresSSLMode
	}
	return nil
}

func (c *Config) normalizeAnalysis() {
	c.Analysis.Stopwords = strings.TrimSpace(c.Analysis.Stopwords)
	if c.Analysis.Stopwords == "" {
		c.Analysis.Stopwords = defaultStopwords
	}
	c.Analysis.SentimentLexicon = strings.TrimSpace(c.Analysis.SentimentLexicon)
	if c.Analysis.SentimentLexicon == "" {
		c.Analysis.SentimentLexicon = defaultSentimentLexicon
	}
}

func (c *Config) normalizePipeline() error {
	if c.Pipeline.Workers == 0 {
		c.Pipeline.Workers = defaultWorkers
	}
	file := strings.TrimSpace(c.Pipeline.MetricsFile)
	if file == "" {
		c.Pipeline.MetricsFile = filepath.Join(c.Paths.StateDir, defaultMetricsFile)
		return nil
	}
	if file == "-" || strings.EqualFold(file, "off") {
		c.Pipeline.MetricsFile = ""
		return nil
	}
	expanded, err := expandPath(file)
	if err != nil {
		return fmt.Errorf("pipeline.metrics_file: %w", err)
	}
	c.Pipeline.MetricsFile = expanded
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
