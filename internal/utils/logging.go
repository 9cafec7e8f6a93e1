package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger creates a stderr logger. Debug mode switches to the console
// writer and lowers the level.
func NewLogger(debug bool) (*zerolog.Logger, error) {
	if !debug {
		return NewWriterLogger(os.Stderr, false), nil
	}
	return newLogger(os.Stderr, true, true), nil
}

// NewFileLogger creates a JSON logger appending to path. It is used while
// the TUI owns the terminal. The returned closer releases the file.
func NewFileLogger(path string, debug bool) (*zerolog.Logger, io.Closer, error) {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return newLogger(f, debug, false), f, nil
}

// NewWriterLogger creates a JSON logger on w.
func NewWriterLogger(w io.Writer, debug bool) *zerolog.Logger {
	return newLogger(w, debug, false)
}

func newLogger(w io.Writer, debug, console bool) *zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	l := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return &l
}

// DefaultLogFile is where the viewer logs when no --log-file is given.
func DefaultLogFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "tales.log")
	}
	return filepath.Join(home, ".tales", "tales.log")
}
