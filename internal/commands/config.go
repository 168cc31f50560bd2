package commands

import "os"

// Environment variable names understood by the CLI.
const (
	EnvHistoryFile = "RESTORECOST_HISTORY_FILE"
	EnvLogLevel    = "RESTORECOST_LOG_LEVEL"
	EnvOpenAIModel = "RESTORECOST_OPENAI_MODEL"
	EnvOpenAIKey   = "OPENAI_API_KEY"
)

// defaultHistoryFile keeps parity with where earlier versions of the tool
// wrote their log.
const defaultHistoryFile = "history.jsonl"

// Config holds the environment-derived settings shared by commands.
type Config struct {
	// HistoryFile is the JSONL decision log path.
	HistoryFile string

	// LogLevel overrides the default zerolog level when set.
	LogLevel string

	// OpenAIKey enables AI narratives when non-empty.
	OpenAIKey string

	// OpenAIModel overrides the narrative model when set.
	OpenAIModel string
}

// envConfig reads settings from the environment, applying defaults.
func envConfig() Config {
	cfg := Config{
		HistoryFile: os.Getenv(EnvHistoryFile),
		LogLevel:    os.Getenv(EnvLogLevel),
		OpenAIKey:   os.Getenv(EnvOpenAIKey),
		OpenAIModel: os.Getenv(EnvOpenAIModel),
	}
	if cfg.HistoryFile == "" {
		cfg.HistoryFile = defaultHistoryFile
	}
	return cfg
}
