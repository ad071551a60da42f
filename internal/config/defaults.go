package config

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	defaultConfigPath       = "~/.config/lyricsync/config.toml"
	defaultInputDir         = "~/lyricsync/catalog"
	defaultLogDir           = "~/.local/share/lyricsync/logs"
	defaultStateDir         = "~/.local/share/lyricsync"
	defaultDatabaseFile     = "lyricsync.db"
	defaultMetricsFile      = "lyricsync.prom"
	defaultPostgresPort     = 5432
	defaultPostgresSSLMode  = "disable"
	defaultBusyTimeoutMS    = 5000
	defaultAcceptThreshold  = 0.6
	defaultCandidateFloor   = 0.3
	defaultEditWeight       = 0.5
	defaultTokenWeight      = 0.5
	defaultPrefixLength     = 10
	defaultStopwords        = "en-v1"
	defaultSentimentLexicon = "vader-lite-1"
	defaultTopWords         = 20
	defaultWorkers          = 4
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir: defaultInputDir,
			LogDir:   defaultLogDir,
			StateDir: defaultStateDir,
		},
		Database: Database{
			Driver:        DriverSQLite,
			BusyTimeoutMS: defaultBusyTimeoutMS,
		},
		Matching: Matching{
			AcceptThreshold: defaultAcceptThreshold,
			CandidateFloor:  defaultCandidateFloor,
			EditWeight:      defaultEditWeight,
			TokenWeight:     defaultTokenWeight,
			PrefixLength:    defaultPrefixLength,
		},
		Analysis: Analysis{
			Stopwords:        defaultStopwords,
			SentimentLexicon: defaultSentimentLexicon,
			TopWords:         defaultTopWords,
		},
		Pipeline: Pipeline{
			Workers: defaultWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
