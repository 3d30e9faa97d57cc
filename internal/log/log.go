// Package log exposes a process-wide charmbracelet logger through
// package-level helpers.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	charmlog "github.com/charmbracelet/log"
)

const prefix = "ambience"

var (
	loggerMu sync.RWMutex
	logger   = newLogger(os.Stderr)
)

func newLogger(w io.Writer) *charmlog.Logger {
	return charmlog.NewWithOptions(w, charmlog.Options{
		Level:           charmlog.InfoLevel,
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmlog.LogfmtFormatter,
	})
}

// SetLevel updates the minimum logging level accepted by the global logger.
// Supported levels are "debug", "info", "warn" and "error". Values are case-insensitive.
func SetLevel(level string) error {
	normalized := strings.ToLower(strings.TrimSpace(level))
	if normalized == "" {
		normalized = "info"
	}
	switch normalized {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %s", level)
	}
	parsed, err := charmlog.ParseLevel(normalized)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	Logger().SetLevel(parsed)
	return nil
}

// Logger returns the underlying charm logger.
func Logger() *charmlog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// ReplaceLogger installs a custom logger.
func ReplaceLogger(l *charmlog.Logger) {
	if l == nil {
		panic("log: nil logger provided")
	}
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

// Info logs a message at the info level using the global logger.
func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}

// Debug logs a message at the debug level using the global logger.
func Debug(msg string, args ...any) {
	Logger().Debug(msg, args...)
}

// Warn logs a message at the warn level using the global logger.
func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}

// Error logs a message at the error level using the global logger.
func Error(msg string, args ...any) {
	Logger().Error(msg, args...)
}
