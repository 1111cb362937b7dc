// Package log configures the application's logrus logger.
//
// The TUI owns the terminal, so log lines never go to stdout or stderr.
// When file logging is enabled they are appended to a dated file under the
// config directory; otherwise they are discarded.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// Options controls logger setup.
type Options struct {
	// Write enables file logging.
	Write bool
	// Dir is the directory receiving <date>.log files.
	Dir string
	// Level is a logrus level name; unknown names fall back to info.
	Level string
	// JSON selects the JSON formatter instead of text.
	JSON bool
}

var logger = newDiscardLogger()

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Setup applies opts to the package logger. It returns a closer for the
// log file (a no-op when logging is disabled).
func Setup(opts Options) (func() error, error) {
	l := newDiscardLogger()
	noop := func() error { return nil }

	if !opts.Write {
		logger = l
		return noop, nil
	}

	if opts.Dir == "" {
		return noop, fmt.Errorf("log: directory path is empty")
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return noop, fmt.Errorf("log: failed to create directory %s: %w", opts.Dir, err)
	}

	path := filepath.Join(opts.Dir, time.Now().Format("2006-01-02")+".log")
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return noop, fmt.Errorf("log: open %s: %w", path, err)
	}

	l.SetOutput(f)
	configure(l, opts)
	logger = l
	return f.Close, nil
}

// SetOutput redirects the logger to w with the given options applied.
// Intended for testing.
func SetOutput(w io.Writer, opts Options) {
	l := logrus.New()
	l.SetOutput(w)
	configure(l, opts)
	logger = l
}

// Reset discards all log output. Intended for testing.
func Reset() { logger = newDiscardLogger() }

func configure(l *logrus.Logger, opts Options) {
	if opts.JSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
}

// L returns the active logger.
func L() *logrus.Logger { return logger }

// WithFields starts an entry carrying the given fields.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return logger.WithFields(fields)
}

// WithComponent starts an entry tagged with a component name.
func WithComponent(name string) *logrus.Entry {
	return logger.WithField("component", name)
}
