package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/jpillora/jplog"
	"github.com/pkg/errors"
)

var (
	logger   = slog.New(slog.DiscardHandler)
	logFile  *os.File
	logMutex sync.Mutex
)

// Init points the package logger at the given file. The terminal belongs to the
// TUI, so nothing is ever written to stdout or stderr.
func Init(path string, verbose bool) error {
	logMutex.Lock()
	defer logMutex.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return errors.Wrap(err, "failed to create log directory")
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return errors.Wrap(err, "failed to open log file")
	}
	h := jplog.Handler(f)
	if verbose {
		h = h.Verbose()
	}
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	logger = slog.New(h)
	return nil
}

// Close flushes and releases the log file, if any.
func Close() error {
	logMutex.Lock()
	defer logMutex.Unlock()
	logger = slog.New(slog.DiscardHandler)
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// Logger returns the structured logger.
func Logger() *slog.Logger {
	logMutex.Lock()
	defer logMutex.Unlock()
	return logger
}

func LogDebug(format string, args ...interface{}) {
	Logger().Debug(fmt.Sprintf(format, args...))
}

func LogError(format string, args ...interface{}) {
	Logger().Error(fmt.Sprintf(format, args...))
}
