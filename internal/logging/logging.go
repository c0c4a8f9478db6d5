// Package logging holds the process-wide structured logger.
// Until Init is called every record is discarded.
package logging

import (
	"io"
	"log/slog"
	"sync"
)

var (
	logger *slog.Logger
	mu     sync.RWMutex
)

// Init routes JSON records at or above level to w.
func Init(w io.Writer, level slog.Level) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = io.Discard
	}
	logger = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// Reset drops back to the discard logger.
func Reset() {
	mu.Lock()
	logger = nil
	mu.Unlock()
}

// Logger returns the configured logger or a no-op one.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if logger == nil {
		return slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return logger
}

func Debug(msg string, args ...any) { Logger().Debug(msg, args...) }
func Info(msg string, args ...any)  { Logger().Info(msg, args...) }
func Warn(msg string, args ...any)  { Logger().Warn(msg, args...) }
func Error(msg string, args ...any) { Logger().Error(msg, args...) }

// With returns a logger carrying the given attributes.
func With(args ...any) *slog.Logger {
	return Logger().With(args...)
}
