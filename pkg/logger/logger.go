package logger

import (
	"log/slog"
	"os"
)

// SetupPrettySlog returns a text slog logger for local development.
// JSON handlers for dev/prod are configured in components.SetupLogger.
func SetupPrettySlog() *slog.Logger {
	return slog.New(
		slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}),
	)
}
