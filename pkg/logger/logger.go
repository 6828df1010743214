// Package logger provides the printf-style leveled logger used across the service.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Logger writes leveled, formatted messages through slog
type Logger struct {
	log  *slog.Logger
	file *os.File
}

// New creates a logger writing to stdout and, when path is set, to the file as well.
// level is one of debug, info, warn, error (case-insensitive, default info).
func New(path string, level string) (*Logger, error) {
	var (
		out  io.Writer = os.Stdout
		file *os.File
	)

	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("logger: create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logger: open log file: %w", err)
		}
		file = f
		out = io.MultiWriter(os.Stdout, f)
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: ParseLevel(level)})

	return &Logger{
		log:  slog.New(handler),
		file: file,
	}, nil
}

// NewWithWriter creates a logger over an arbitrary writer (tests, stderr)
func NewWithWriter(w io.Writer, level string) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	return &Logger{log: slog.New(handler)}
}

// ParseLevel converts a textual level into slog.Level
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

func (l *Logger) Debug(format string, v ...interface{}) {
	l.log.Debug(fmt.Sprintf(format, v...))
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.log.Info(fmt.Sprintf(format, v...))
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.log.Warn(fmt.Sprintf(format, v...))
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.log.Error(fmt.Sprintf(format, v...))
}

// Fatal logs at error level and terminates the process
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.log.Error(fmt.Sprintf(format, v...), "fatal", true)
	_ = l.Close()
	os.Exit(1)
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
