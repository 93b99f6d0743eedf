// Package logging provides the structured file logger. The terminal belongs
// to the TUI, so log output always goes to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	clog "github.com/charmbracelet/log"
)

// Logger is the structured logging interface used across the app.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	// With returns a logger that adds the given key-value pairs.
	With(args ...any) Logger
}

type Config struct {
	Path  string
	Level string
}

type clogLogger struct {
	l *clog.Logger
}

// Open creates the log file (and its directory) and returns a logger
// writing logfmt lines to it. The returned closer releases the file.
func Open(cfg Config) (Logger, io.Closer, error) {
	if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, cfg.Level), f, nil
}

// New returns a logger writing to w.
func New(w io.Writer, level string) Logger {
	l := clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           ParseLevel(level),
		Prefix:          "fiets",
	})
	l.SetFormatter(clog.LogfmtFormatter)
	return clogLogger{l: l}
}

// Discard returns a logger that drops everything.
func Discard() Logger {
	return New(io.Discard, "error")
}

// ParseLevel maps a level name to clog.Level, defaulting to info.
func ParseLevel(level string) clog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return clog.DebugLevel
	case "warn", "warning":
		return clog.WarnLevel
	case "error":
		return clog.ErrorLevel
	default:
		return clog.InfoLevel
	}
}

func (c clogLogger) Debug(msg string, args ...any) { c.l.Debug(msg, args...) }
func (c clogLogger) Info(msg string, args ...any)  { c.l.Info(msg, args...) }
func (c clogLogger) Warn(msg string, args ...any)  { c.l.Warn(msg, args...) }
func (c clogLogger) Error(msg string, args ...any) { c.l.Error(msg, args...) }

func (c clogLogger) With(args ...any) Logger {
	return clogLogger{l: c.l.With(args...)}
}
