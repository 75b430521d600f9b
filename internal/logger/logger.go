package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options configures the process logger
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// New builds the process logger and installs it as the slog default
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	var h slog.Handler
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "json":
		h = slog.NewJSONHandler(out, handlerOpts)
	default:
		h = slog.NewTextHandler(out, handlerOpts)
	}

	base := slog.New(h)
	slog.SetDefault(base)
	return base
}

// ParseLevel maps a level name to a slog.Level, defaulting to info
func ParseLevel(lvl string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
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
