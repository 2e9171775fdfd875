package commands

import (
	"io"
	"log/slog"
)

// newLogger returns the operational logger. Parse diagnostics are not logged
// here; they are printed to stdout as part of the command's output.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
