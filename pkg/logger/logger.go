// Package logger configures the shared logrus instance used across the
// library. The level comes from the MEDIAMETA_LOG_LEVEL environment
// variable; test binaries run silent unless a level is set explicitly.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var defaultLogger *logrus.Logger

func init() {
	defaultLogger = logrus.New()

	level := os.Getenv("MEDIAMETA_LOG_LEVEL")
	if level == "" {
		if strings.HasSuffix(os.Args[0], ".test") {
			level = "silent"
		} else {
			level = "info"
		}
	}

	if level == "silent" {
		defaultLogger.SetOutput(io.Discard)
	} else {
		parsed, err := logrus.ParseLevel(strings.ToLower(level))
		if err != nil {
			parsed = logrus.InfoLevel
		}
		defaultLogger.SetLevel(parsed)
		defaultLogger.SetOutput(os.Stderr)
	}

	defaultLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
}

// GetLogger returns the shared logger instance.
func GetLogger() *logrus.Logger {
	return defaultLogger
}

// WithName creates a child logger with a name field.
func WithName(name string) *logrus.Entry {
	return defaultLogger.WithField("name", name)
}

// WithFields creates a logger with additional fields.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return defaultLogger.WithFields(fields)
}

// SetLevel sets the logging level.
func SetLevel(level logrus.Level) {
	defaultLogger.SetLevel(level)
}

// IsLevelEnabled checks if a log level is enabled.
func IsLevelEnabled(level logrus.Level) bool {
	return defaultLogger.IsLevelEnabled(level)
}

// SetOutput redirects log output; callers embedding the library can
// silence it or route it into their own sink.
func SetOutput(w io.Writer) {
	defaultLogger.SetOutput(w)
}
