// Package logging builds the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Options controls how the logger is built.
type Options struct {
	// Level is a logrus level name. Empty means info.
	Level string

	// Verbose forces the debug level regardless of Level.
	Verbose bool

	// File, when set, receives a copy of every log line. It is appended to
	// and its directory is created if needed.
	File string

	// Console receives log lines as well. Defaults to os.Stderr.
	Console io.Writer
}

// New creates a text logger writing to the console and, optionally, a file.
//
// RETURNS:
//   - The logger.
//   - A closer for the log file; always non-nil.
//   - An error if the level is unknown or the file cannot be opened.
func New(opts Options) (*logrus.Logger, io.Closer, error) {
	level := logrus.InfoLevel
	if name := strings.TrimSpace(opts.Level); name != "" {
		parsed, err := logrus.ParseLevel(name)
		if err != nil {
			return nil, nopCloser{}, fmt.Errorf("invalid log level %q: %w", name, err)
		}
		level = parsed
	}
	if opts.Verbose {
		level = logrus.DebugLevel
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if opts.File == "" {
		logger.SetOutput(console)
		return logger, nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
		return nil, nopCloser{}, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nopCloser{}, fmt.Errorf("failed to open log file: %w", err)
	}

	logger.SetOutput(io.MultiWriter(console, file))
	return logger, file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
