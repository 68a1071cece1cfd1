// Package log configures structured logging for blueprint using log/slog.
package log

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// Level maps the verbosity flags to a slog level.
//
//   - quiet mode:   only WARN and ERROR messages
//   - normal mode:  INFO and above
//   - verbose mode: DEBUG and above
func Level(verbose, quiet bool) slog.Level {
	switch {
	case quiet:
		return slog.LevelWarn
	case verbose:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// Setup installs a slog.TextHandler on w as the default logger. Every record
// carries a run_id so separate invocations can be told apart. It returns the
// run id.
func Setup(w io.Writer, verbose, quiet bool) string {
	runID := uuid.NewString()
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: Level(verbose, quiet),
	})
	slog.SetDefault(slog.New(handler).With("run_id", runID))
	return runID
}
