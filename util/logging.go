package util

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	Logger = zerolog.Nop()
)

func ParseLevel(inlevel string) zerolog.Level {
	switch strings.ToLower(inlevel) {
	case "debug":
		return zerolog.DebugLevel
	case "trace":
		return zerolog.TraceLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func LogInit(inlevel string) {
	LogInitWriter(inlevel, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

// LogInitWriter is LogInit with an explicit destination. Reports go to
// stdout, so logs must never share it.
func LogInitWriter(inlevel string, out io.Writer) {
	level := ParseLevel(inlevel)
	Logger = zerolog.New(out).Level(level).With().Timestamp().Caller().Logger()

	Logger.Info().Msgf("logging initialized at level %v", level)
}
