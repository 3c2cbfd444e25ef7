package app

import (
	"io"
	"log/slog"
)

// newLogger builds the logger for one conversion run. It is never installed
// globally: the XML document goes to its own file, diagnostics go to the
// writer given here, and each App instance keeps its output capturable in
// isolation. An unknown level falls back to info instead of failing, since
// level strings are validated at the CLI boundary.
func newLogger(level, format string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
