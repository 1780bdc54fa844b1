package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/corey/demoapp/internal/adapters/web"
	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidPort indicates a port outside 0-65535
	ErrInvalidPort = errors.New("invalid port")

	// ErrEmptyHost indicates a missing bind host
	ErrEmptyHost = errors.New("empty host")

	// ErrInvalidEngine indicates an unsupported server engine
	ErrInvalidEngine = errors.New("invalid server engine")

	// ErrInvalidTimeout indicates a non-positive timeout
	ErrInvalidTimeout = errors.New("invalid timeout")

	// ErrInvalidLogLevel indicates a level logrus does not know
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidLogFormat indicates a format other than text or json
	ErrInvalidLogFormat = errors.New("invalid log format")
)

// Validate checks the configuration and reports every problem at once.
func Validate(cfg *Config) error {
	var errs []error

	s := cfg.Server
	if s.Host == "" {
		errs = append(errs, ErrEmptyHost)
	}
	if s.Port < 0 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("%w: %d (must be 0-65535)", ErrInvalidPort, s.Port))
	}
	switch web.Engine(s.Engine) {
	case web.EngineNetHTTP, web.EngineFastHTTP:
	default:
		errs = append(errs, fmt.Errorf("%w: %q (must be nethttp or fasthttp)", ErrInvalidEngine, s.Engine))
	}

	timeouts := []struct {
		name string
		val  time.Duration
	}{
		{"read_timeout", s.ReadTimeout},
		{"write_timeout", s.WriteTimeout},
		{"idle_timeout", s.IdleTimeout},
		{"shutdown_timeout", s.ShutdownTimeout},
	}
	for _, t := range timeouts {
		if t.val <= 0 {
			errs = append(errs, fmt.Errorf("%w: server.%s must be positive", ErrInvalidTimeout, t.name))
		}
	}

	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidLogLevel, cfg.Log.Level))
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: %q (must be text or json)", ErrInvalidLogFormat, cfg.Log.Format))
	}

	return errors.Join(errs...)
}
