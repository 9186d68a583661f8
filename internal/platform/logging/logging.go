package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// New builds the process logger. With a file path the logger writes there,
// since the TUI owns stdout and stderr while it runs.
func New(level, path string) (*log.Logger, io.Closer, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("parse log level: %w", err)
	}
	var (
		w      io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	}
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "codestreak",
		Level:           lvl,
		ReportTimestamp: true,
	})
	return logger, closer, nil
}

// TUIPath is the log file used while the TUI holds the terminal. Without a
// configured path it falls back to the user cache dir; "" means none could
// be resolved.
func TUIPath(configured string) string {
	if configured != "" {
		return configured
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "codestreak", "tui.log")
}

// NewTUI is New for the interactive page: it never writes to stderr, which
// the alt screen is drawn on.
func NewTUI(level, path string) (*log.Logger, io.Closer, error) {
	path = TUIPath(path)
	if path == "" {
		if _, err := log.ParseLevel(level); err != nil {
			return nil, nil, fmt.Errorf("parse log level: %w", err)
		}
		return Discard(), nopCloser{}, nil
	}
	return New(level, path)
}

// Discard returns a logger that drops everything; used by tests.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
