// Package logger provides the process-wide structured logger.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	// LevelDebug is for verbose debugging information
	LevelDebug LogLevel = iota
	// LevelInfo is for general operational information
	LevelInfo
	// LevelWarn is for warning conditions
	LevelWarn
	// LevelError is for error conditions
	LevelError
)

func (l LogLevel) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// String returns the lower-case level name used in config files.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// ParseLevel converts a level name from config or flags.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

var (
	slogLogger   *slog.Logger
	levelVar     = new(slog.LevelVar)
	logFile      *os.File
	mu           sync.Mutex
	currentLevel = LevelInfo
)

// SetLevel sets the minimum log level to output
func SetLevel(level LogLevel) {
	mu.Lock()
	defer mu.Unlock()
	currentLevel = level
	levelVar.Set(level.toSlogLevel())
}

// Level returns the current minimum level.
func Level() LogLevel {
	mu.Lock()
	defer mu.Unlock()
	return currentLevel
}

// SetDebug enables debug level logging
func SetDebug(enabled bool) {
	if enabled {
		SetLevel(LevelDebug)
	} else {
		SetLevel(LevelInfo)
	}
}

// Init directs log output to the file at path, or to stderr when path is
// empty. Calling Init again replaces the previous destination.
func Init(path string) error {
	if path == "" {
		InitWriter(os.Stderr)
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	mu.Lock()
	defer mu.Unlock()
	closeFile()
	logFile = f
	slogLogger = newLogger(f)
	return nil
}

// InitWriter directs log output to w.
func InitWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	closeFile()
	slogLogger = newLogger(w)
}

func newLogger(w io.Writer) *slog.Logger {
	levelVar.Set(currentLevel.toSlogLevel())
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelVar}))
}

func closeFile() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

func ensureInit() {
	if slogLogger == nil {
		slogLogger = newLogger(os.Stderr)
	}
}

// Logger returns the process-wide logger, writing to stderr until Init is
// called.
func Logger() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	ensureInit()
	return slogLogger
}

// Component returns a slog.Logger with the component attribute pre-attached.
//
// Example:
//
//	log := logger.Component("clipboard")
//	log.Debug("refreshed", "items", n)
func Component(name string) *slog.Logger {
	return Logger().With(slog.String("component", name))
}

// Close closes the log file, if any. Later log calls go to stderr.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeFile()
	slogLogger = nil
}

// Reset resets the logger state, allowing reinitialization.
// This is primarily for testing purposes.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	closeFile()
	slogLogger = nil
	currentLevel = LevelInfo
	levelVar.Set(slog.LevelInfo)
}
