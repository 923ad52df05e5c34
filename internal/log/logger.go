// Package log wraps log/slog with a per-component attribute so every
// line identifies which part of the pipeline emitted it.
package log

import (
	"log/slog"
	"os"
	"strings"
)

// Logger carries its component name on every record.
type Logger struct {
	*slog.Logger
	component string
}

// New builds a text logger writing to stdout at the given level.
func New(level slog.Level, component string) *Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return &Logger{Logger: slog.New(handler).With("component", component), component: component}
}

// WithComponent returns a logger for a different component sharing the
// same handler.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.Logger.With("component", component), component: component}
}

// Component returns the logger's component name.
func (l *Logger) Component() string {
	return l.component
}

// SetDefault installs the logger as the process default so packages
// using plain slog pick it up.
func SetDefault(l *Logger) {
	slog.SetDefault(l.Logger)
}

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
