package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Logger owns the log file behind a slog.Logger. The terminal belongs to the
// UI, so nothing is ever written to stdout or stderr.
type Logger struct {
	*slog.Logger

	level *slog.LevelVar
	file  *os.File
	path  string
}

// DefaultPath resolves $XDG_STATE_HOME/thoughtforge/thoughtforge.log, falling
// back to the temp dir.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "thoughtforge", "thoughtforge.log")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state", "thoughtforge", "thoughtforge.log")
	}
	return filepath.Join(os.TempDir(), "thoughtforge.log")
}

// Open creates the parent directory and appends to the log file at path.
func Open(path string, level slog.Level) (*Logger, error) {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log dir for %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	levelVar := new(slog.LevelVar)
	levelVar.Set(level)
	l := &Logger{
		Logger: slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar})),
		level:  levelVar,
		file:   f,
		path:   path,
	}
	l.Info("Logger initialized", "path", path, "level", level.String())
	return l, nil
}

// Path returns the file the logger writes to.
func (l *Logger) Path() string { return l.path }

// SetLevel changes the minimum level at runtime.
func (l *Logger) SetLevel(level slog.Level) { l.level.Set(level) }

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps debug/info/warn/error (case-insensitive) to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
