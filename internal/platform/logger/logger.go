package logger

import (
	"log/slog"
	"os"
)

// New returns the root structured logger. Services receive it through
// functional options so tests can swap in a silent handler.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
