package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogrusLogger builds the operator CLI logger. Verbose enables debug
// output; JSON switches to machine readable lines for scripted runs.
func NewLogrusLogger(verbose, jsonOutput bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	if jsonOutput {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	logger.SetLevel(logrus.InfoLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}
