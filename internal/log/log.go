// Package log is a small levelled wrapper around log/slog. Output goes to
// stderr by default so it never mixes with art written to stdout or drawn
// by the terminal UI.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// Level constants matching slog levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var (
	level  = new(slog.LevelVar)
	logger atomic.Pointer[slog.Logger]
)

func init() {
	level.Set(LevelInfo)
	SetOutput(os.Stderr)
}

// SetOutput redirects log output to w.
func SetOutput(w io.Writer) {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	logger.Store(slog.New(h))
}

// SetLevel sets the global log level.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// GetLevel returns the current log level.
func GetLevel() slog.Level {
	return level.Level()
}

// ParseLevel maps "debug", "info", "warn" or "error" to a level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", name)
}

// Logger returns the underlying slog logger, for handing to libraries.
func Logger() *slog.Logger {
	return logger.Load()
}

// Debug logs msg with key/value attributes at debug level.
func Debug(msg string, args ...any) {
	logger.Load().Debug(msg, args...)
}

// Info logs msg with key/value attributes at info level.
func Info(msg string, args ...any) {
	logger.Load().Info(msg, args...)
}

// Warn logs msg with key/value attributes at warn level.
func Warn(msg string, args ...any) {
	logger.Load().Warn(msg, args...)
}

// Error logs msg with key/value attributes at error level.
func Error(msg string, args ...any) {
	logger.Load().Error(msg, args...)
}
