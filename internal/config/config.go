package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the input catalog and output directories.
type Paths struct {
	InputDir string `toml:"input_dir"`
	LogDir   string `toml:"log_dir"`
	StateDir string `toml:"state_dir"`
}

// Database selects the persistence backend and its credentials.
type Database struct {
	Driver        string `toml:"driver"` // "sqlite" or "postgres"
	DSN           string `toml:"dsn"`
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	Name          string `toml:"name"`
	User          string `toml:"user"`
	Password      string `toml:"password"`
	SSLMode       string `toml:"sslmode"`
	BusyTimeoutMS int    `toml:"busy_timeout_ms"`
}

// Matching tunes how lyric documents are paired with tracks.
type Matching struct {
	// AcceptThreshold is the minimum similarity for a pair to be accepted.
	AcceptThreshold float64 `toml:"accept_threshold"`
	// CandidateFloor separates "below-threshold" from "no-candidate" when
	// reporting unmatched tracks.
	CandidateFloor float64 `toml:"candidate_floor"`
	EditWeight     float64 `toml:"edit_weight"`
	TokenWeight    float64 `toml:"token_weight"`
	PrefixLength   int     `toml:"prefix_length"`
}

// Analysis selects the lexical resources used by the metrics engine.
type Analysis struct {
	Stopwords        string `toml:"stopwords"`
	SentimentLexicon string `toml:"sentiment_lexicon"`
	TopWords         int    `toml:"top_words"`
}

// Pipeline controls run scheduling.
type Pipeline struct {
	Workers     int    `toml:"workers"`
	MetricsFile string `toml:"metrics_file"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// RunLog tees every run's log records into a file under paths.log_dir.
	RunLog bool `toml:"run_log"`
}

// Config encapsulates all configuration values for lyricsync.
//
// Configuration sections by subsystem:
//   - Paths: catalog input, match logs, and state (database, lock, metrics)
//   - Database: sqlite or postgres connection settings
//   - Matching: similarity weights and acceptance threshold
//   - Analysis: stop-word list and sentiment lexicon versions
//   - Pipeline: album worker count and metrics export
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Database Database `toml:"database"`
	Matching Matching `toml:"matching"`
	Analysis Analysis `toml:"analysis"`
	Pipeline Pipeline `toml:"pipeline"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized. A .env file in the working directory or beside
// the config file is loaded first so database credentials can stay out of the TOML.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if err := loadDotEnv(resolvedPath); err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func loadDotEnv(configPath string) error {
	candidates := []string{".env"}
	if configPath != "" {
		candidates = append(candidates, filepath.Join(filepath.Dir(configPath), ".env"))
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		// godotenv never overrides variables already present in the environment.
		if err := godotenv.Load(candidate); err != nil {
			return fmt.Errorf("load %s: %w", candidate, err)
		}
	}
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("lyricsync.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the log and state directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LogDir, c.Paths.StateDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LockPath is the file guarding a state directory against concurrent runs.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "lyricsync.lock")
}

// DriverName returns the database/sql driver registered for the configured backend.
func (d Database) DriverName() string {
	if d.Driver == DriverPostgres {
		return "pgx"
	}
	return "sqlite"
}

// ConnString returns the DSN handed to sql.Open. An explicit dsn wins; otherwise
// postgres settings are assembled into a URL.
func (d Database) ConnString() string {
	if strings.TrimSpace(d.DSN) != "" || d.Driver != DriverPostgres {
		return d.DSN
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   d.Host,
		Path:   "/" + d.Name,
	}
	if d.Port > 0 {
		u.Host = d.Host + ":" + strconv.Itoa(d.Port)
	}
	if d.User != "" {
		if d.Password != "" {
			u.User = url.UserPassword(d.User, d.Password)
		} else {
			u.User = url.User(d.User)
		}
	}
	if d.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{d.SSLMode}}.Encode()
	}
	return u.String()
}

// Redacted returns the connection string with any password masked.
func (d Database) Redacted() string {
	conn := d.ConnString()
	if d.Driver != DriverPostgres {
		return conn
	}
	u, err := url.Parse(conn)
	if err != nil {
		return "postgres://<unparseable>"
	}
	return u.Redacted()
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the effective configuration as TOML with the password masked.
func (c *Config) Encode() ([]byte, error) {
	clone := *c
	if clone.Database.Password != "" {
		clone.Database.Password = "********"
	}
	data, err := toml.Marshal(clone)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}
