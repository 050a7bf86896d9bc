package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logrus logger writing to stdout in the given format.
// JSON output uses timestamp/severity/message keys so log collectors can
// pick the level up without extra config.
func New(level logrus.Level, format string) *logrus.Logger {
	return NewWithOutput(os.Stdout, level, format)
}

func NewWithOutput(out io.Writer, level logrus.Level, format string) *logrus.Logger {
	log := logrus.New()
	log.Out = out
	log.Level = level

	if format == "text" {
		log.Formatter = &logrus.TextFormatter{FullTimestamp: true}
		return log
	}

	log.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
	}
	return log
}

// Discard is a logger for tests and callers that pass no logger.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.Out = io.Discard
	return log
}
