package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs the process-wide JSON logger on stdout. Once the
// database is up, main replaces it with a multi-handler that also
// persists ERROR+ records; this plain handler covers everything logged
// before that point (config, connect, migrate).
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelFromEnv(),
	})
	slog.SetDefault(slog.New(handler))
}

// levelFromEnv maps LOG_LEVEL to an slog level, defaulting to info.
func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
