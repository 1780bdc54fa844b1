// Package logging builds the process logger from configuration.
package logging

import (
	"fmt"
	"io"

	"github.com/corey/demoapp/internal/config"
	"github.com/sirupsen/logrus"
)

// New returns a logrus logger writing to out. Debug mode forces the debug level.
func New(cfg config.LogConfig, debug bool, out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	if debug && level < logrus.DebugLevel {
		level = logrus.DebugLevel
	}

	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(level)

	switch cfg.Format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	return log, nil
}
