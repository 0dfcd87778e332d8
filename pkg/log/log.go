// Package log provides the logger used throughout the emulator. The
// core components only ever see the Logger interface, and default to
// a logger that discards everything.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the logging interface accepted by every component.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// New returns a Logger writing to stderr at the info level.
func New() Logger {
	return newLogrus(os.Stderr, logrus.InfoLevel)
}

// NewWithLevel returns a Logger writing to w at the named level
// (trace, debug, info, warn, error...).
func NewWithLevel(w io.Writer, level string) (Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return newLogrus(w, lvl), nil
}

func newLogrus(w io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return l
}
