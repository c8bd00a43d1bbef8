package logger

import (
	"log/slog"
	"os"
)

// New returns the process logger. JSON in production, text in dev mode where
// a human is reading the terminal.
func New(devMode bool) *slog.Logger {
	if devMode {
		return slog.New(slog.NewTextHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}
