// Package logging provides a structured logging wrapper around log/slog with
// rotated file output and execution timing helpers. The TUI owns the
// terminal, so logs only ever go to a file or to an explicit writer.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps slog.Logger with convenience methods for novix
type Logger struct {
	logger  *slog.Logger
	enabled bool
}

// LogFormat represents the output format for logs
type LogFormat string

const (
	// FormatText outputs human-readable text logs
	FormatText LogFormat = "text"
	// FormatJSON outputs structured JSON logs
	FormatJSON LogFormat = "json"
)

// Config holds configuration for logger initialization
type Config struct {
	// FilePath is the path to the log file (empty = no logging)
	FilePath string
	// Output replaces the rotated file when set. Used by tests and by
	// the one-shot CLI commands that log to stderr.
	Output io.Writer
	// Level is the minimum log level (debug, info, warn, error)
	Level slog.Level
	// Format is the output format (text or json)
	Format LogFormat
	// MaxSizeMB is the maximum size in MB before rotation
	MaxSizeMB int
	// MaxBackups is the maximum number of old log files to keep
	MaxBackups int
}

var (
	mu           sync.Mutex
	globalLogger *Logger
	closer       io.Closer
	noopLogger   = &Logger{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
)

// Init initializes the global logger with the given configuration.
// With neither FilePath nor Output set, logging is disabled.
func Init(config Config) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()

	writer := config.Output
	if writer == nil {
		if config.FilePath == "" {
			globalLogger = noopLogger
			return nil
		}
		if err := os.MkdirAll(filepath.Dir(config.FilePath), 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		rotated := &lumberjack.Logger{
			Filename:   config.FilePath,
			MaxSize:    config.MaxSizeMB,
			MaxBackups: config.MaxBackups,
			Compress:   true,
		}
		writer = rotated
		closer = rotated
	}

	opts := &slog.HandlerOptions{Level: config.Level}
	var handler slog.Handler
	switch config.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(writer, opts)
	default:
		handler = slog.NewTextHandler(writer, opts)
	}

	globalLogger = &Logger{logger: slog.New(handler), enabled: true}
	return nil
}

// Get returns the global logger instance.
// Returns a noop logger if Init was not called or logging is disabled.
func Get() *Logger {
	mu.Lock()
	defer mu.Unlock()
	if globalLogger == nil {
		return noopLogger
	}
	return globalLogger
}

// Named returns the global logger tagged with a component name.
func Named(component string) *Logger {
	return Get().With("component", component)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

// Info logs an info message
func (l *Logger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Error logs an error message
func (l *Logger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

// With returns a new Logger with the given key-value pairs added as context
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		logger:  l.logger.With(args...),
		enabled: l.enabled,
	}
}

// IsEnabled returns true if logging is enabled (not noop)
func (l *Logger) IsEnabled() bool {
	return l.enabled
}

// Debug logs a debug message using the global logger
func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}

// Info logs an info message using the global logger
func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

// Warn logs a warning message using the global logger
func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

// Error logs an error message using the global logger
func Error(msg string, args ...any) {
	Get().Error(msg, args...)
}

// IsEnabled returns true if logging is enabled globally
func IsEnabled() bool {
	return Get().IsEnabled()
}

// ParseLevel converts a string to slog.Level
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// ParseFormat converts a string to LogFormat
func ParseFormat(format string) LogFormat {
	if strings.EqualFold(format, "json") {
		return FormatJSON
	}
	return FormatText
}

// Shutdown closes the log file and disables logging.
func Shutdown() error {
	mu.Lock()
	defer mu.Unlock()
	err := closeLocked()
	globalLogger = noopLogger
	return err
}

func closeLocked() error {
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	return err
}
