// Package logger adapts logrus to the service logging interface.
package logger

import (
	"io"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/sirupsen/logrus"
)

var _ i.Logger = &Logger{}

// Logger writes leveled entries tagged with the component they came from.
type Logger struct {
	entry *logrus.Entry
}

// New creates a Logger for component writing to out at the given level
// ("debug", "info", "warn", "error").
func New(component string, out io.Writer, level string) (*Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	base := logrus.New()
	base.SetOutput(out)
	base.SetLevel(lvl)
	base.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &Logger{entry: base.WithField("component", component)}, nil
}

// With returns a Logger for a sub-component sharing the same output.
func (l *Logger) With(component string) *Logger {
	return &Logger{entry: l.entry.WithField("component", component)}
}

// Debug implements i.Logger.
func (l *Logger) Debug(msg string) { l.entry.Debug(msg) }

// Info implements i.Logger.
func (l *Logger) Info(msg string) { l.entry.Info(msg) }

// Warn implements i.Logger.
func (l *Logger) Warn(msg string) { l.entry.Warn(msg) }

// Error implements i.Logger.
func (l *Logger) Error(msg string) { l.entry.Error(msg) }
