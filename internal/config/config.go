// Package config loads demoapp settings from defaults, an optional YAML
// file, DEMOAPP_* environment variables and command-line flags.
package config

import (
	"time"

	"github.com/corey/demoapp/internal/adapters/web"
)

// Config is the complete demoapp configuration.
type Config struct {
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Debug  bool         `yaml:"debug" mapstructure:"debug"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
	Reload ReloadConfig `yaml:"reload" mapstructure:"reload"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `yaml:"host" mapstructure:"host"`
	Port            int           `yaml:"port" mapstructure:"port"`
	Engine          string        `yaml:"engine" mapstructure:"engine"` // "nethttp" or "fasthttp"
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // logrus level name
	Format string `yaml:"format" mapstructure:"format"` // "text" or "json"
}

// ReloadConfig configures the development reloader. It only runs in debug mode.
type ReloadConfig struct {
	Enabled bool     `yaml:"enabled" mapstructure:"enabled"`
	Paths   []string `yaml:"paths" mapstructure:"paths"` // empty: watch the running executable
}

// Default returns the configuration the server runs with when nothing is set:
// every interface, port 5000, debug off.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            web.DefaultHost,
			Port:            web.DefaultPort,
			Engine:          string(web.EngineNetHTTP),
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Debug: false,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Reload: ReloadConfig{
			Enabled: true,
			Paths:   []string{},
		},
	}
}
