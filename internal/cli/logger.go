package cli

import (
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewLogger creates the structured logger shared by every subcommand.
// Output goes to a slog.TextHandler when stderr is a terminal and a
// slog.JSONHandler otherwise, so piped invocations stay
// machine-parseable. verbosity 0 logs at Info, 1 (-v) at Debug, 2+
// (-vv) also enables source locations.
func NewLogger(verbosity int) *slog.Logger {
	level := slog.LevelInfo
	addSource := false
	if verbosity >= 1 {
		level = slog.LevelDebug
	}
	if verbosity >= 2 {
		addSource = true
	}

	options := &slog.HandlerOptions{Level: level, AddSource: addSource}
	var handler slog.Handler
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}
