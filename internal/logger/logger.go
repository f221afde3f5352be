// Package logger provides structured logging configuration for the application.
// It configures log/slog with JSON output and source location tracking by default,
// and a human-readable text handler for interactive use.
package logger

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// Format selects the slog handler used for output.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
	// FormatAuto uses text on a terminal and JSON otherwise.
	FormatAuto Format = "auto"
)

// Setup initializes the global slog logger writing to stdout.
func Setup(level slog.Level, format Format) {
	slog.SetDefault(New(os.Stdout, level, resolve(format, os.Stdout)))
}

// New builds a logger for w. FormatAuto must be resolved by the caller.
func New(w io.Writer, level slog.Level, format Format) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	}

	if format == FormatText {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func resolve(format Format, f *os.File) Format {
	if format != FormatAuto {
		return format
	}
	if term.IsTerminal(int(f.Fd())) {
		return FormatText
	}
	return FormatJSON
}

// ParseLevel converts a string log level to slog.Level.
// Valid values: "debug", "info", "warn", "error".
// Unrecognized values default to info level.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseFormat converts a string to a Format. Unrecognized values default to JSON.
func ParseFormat(format string) Format {
	switch Format(format) {
	case FormatText:
		return FormatText
	case FormatAuto:
		return FormatAuto
	default:
		return FormatJSON
	}
}
