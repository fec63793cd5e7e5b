// Package logging builds the charmbracelet/log loggers used across showcut.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// ParseLevel maps debug, info, warn, error to a level; anything else is info.
func ParseLevel(level string) log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// New creates a logger writing to w at level.
func New(level string, w io.Writer) *log.Logger {
	lvl := ParseLevel(level)
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		ReportCaller:    lvl == log.DebugLevel,
		Prefix:          "showcut",
	})
}

// OpenFile creates a logfmt logger appending to path, for use while the
// terminal belongs to the TUI. The returned closer closes the file.
func OpenFile(level, path string) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := New(level, f)
	logger.SetFormatter(log.LogfmtFormatter)
	return logger, f, nil
}

// WithComponent returns a logger with component attribute
func WithComponent(logger *log.Logger, component string) *log.Logger {
	return logger.With("component", component)
}

// SanitizePath replaces the home directory with ~ for display and logs.
func SanitizePath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == home || strings.HasPrefix(path, home+string(filepath.Separator)) {
		return "~" + path[len(home):]
	}
	return path
}
