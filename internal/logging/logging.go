// Package logging configures structured logging for aihelp using log/slog.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options selects the level and handler of the default logger.
type Options struct {
	Level   string
	Format  string
	Verbose bool
	Quiet   bool
	Output  io.Writer
}

// Setup installs the default slog logger and returns it.
//
//   - quiet mode:   only WARN and ERROR messages
//   - verbose mode: DEBUG and above
//   - otherwise the configured level, INFO when unset
//
// Output goes to stderr unless opts.Output is set. Format "json" selects
// slog.JSONHandler, anything else slog.TextHandler.
func Setup(opts Options) *slog.Logger {
	level := ParseLevel(opts.Level)
	switch {
	case opts.Quiet:
		level = slog.LevelWarn
	case opts.Verbose:
		level = slog.LevelDebug
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps debug, info, warn and error to slog levels. Unknown
// values fall back to info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
