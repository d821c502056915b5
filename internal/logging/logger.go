// Package logging builds the logrus logger used by the command-line tools.
package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// ParseLevel maps "debug", "info", "warn"/"warning" and "error"
// (case-insensitive) to a logrus level. Unknown values map to info.
func ParseLevel(s string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// New returns a text logger writing to w at the given level.
func New(level string, w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})
	logger.SetLevel(ParseLevel(level))
	return logger
}

// Discard returns a logger that drops every entry.
func Discard() *logrus.Logger {
	return New("error", io.Discard)
}
