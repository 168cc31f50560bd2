// Package logging configures the global zerolog logger for CLI use.
package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init routes logs to stderr through the console writer so structured
// output never mixes with report output on stdout. The default level is
// warn to keep human runs quiet; verbose switches to debug, and an explicit
// level (from RESTORECOST_LOG_LEVEL) wins over both.
func Init(verbose bool, level string) {
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()

	resolved := zerolog.WarnLevel
	if verbose {
		resolved = zerolog.DebugLevel
	}
	if level != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(level)); err == nil {
			resolved = parsed
		} else {
			log.Warn().Str("level", level).Msg("unknown log level, keeping default")
		}
	}
	zerolog.SetGlobalLevel(resolved)
}
