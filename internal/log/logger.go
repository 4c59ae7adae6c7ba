// Package log configures the process-wide zerolog logger. The TUI owns
// stdout, so all logging goes to a file under the data directory.
package log

import (
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	logger     = zerolog.New(io.Discard)
	loggerLock sync.RWMutex
)

// Setup directs the logger at the given writer, typically the log file.
func Setup(out io.Writer, levelStr string) {
	loggerLock.Lock()
	defer loggerLock.Unlock()

	output := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    true,
		TimeFormat: time.Kitchen,
	}

	logger = zerolog.New(output).
		Level(parseLogLevel(levelStr)).
		With().
		Timestamp().
		Logger()
}

func parseLogLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Debug logs a debug message.
func Debug() *zerolog.Event {
	loggerLock.RLock()
	defer loggerLock.RUnlock()
	return logger.Debug()
}

// Info logs an info message.
func Info() *zerolog.Event {
	loggerLock.RLock()
	defer loggerLock.RUnlock()
	return logger.Info()
}

// Warn logs a warning message.
func Warn() *zerolog.Event {
	loggerLock.RLock()
	defer loggerLock.RUnlock()
	return logger.Warn()
}

// Error logs an error message.
func Error() *zerolog.Event {
	loggerLock.RLock()
	defer loggerLock.RUnlock()
	return logger.Error()
}
