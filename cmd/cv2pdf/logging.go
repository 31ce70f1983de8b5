package main

import (
	"log/slog"
	"os"
)

// newLogger builds the process-wide logger: human-readable text on
// stderr, level from the verbosity flags. Quiet wins over verbose.
func newLogger(verbose, quiet bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
