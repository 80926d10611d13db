// Package logger configures the process-wide structured logger.
package logger

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Fields aliases logrus.Fields for callers.
type Fields = logrus.Fields

var log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// Configure applies the logging settings. Level accepts the logrus level
// names; format is "text" or "json". An empty value keeps the default.
func Configure(level, format string) error {
	if level != "" {
		lvl, err := logrus.ParseLevel(strings.ToLower(level))
		if err != nil {
			return fmt.Errorf("parse log level: %w", err)
		}
		log.SetLevel(lvl)
	}
	switch strings.ToLower(format) {
	case "", "text":
		// default formatter
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	return nil
}

// L returns the shared logger.
func L() *logrus.Logger {
	return log
}

// WithComponent returns an entry tagged with the originating component.
func WithComponent(component string) *logrus.Entry {
	return log.WithField("component", component)
}
