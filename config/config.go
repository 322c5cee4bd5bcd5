// Package config holds the application configuration.
package config

import (
	"time"

	"github.com/MikaStiebitz/Git-Gud/utils/logging"
)

// Config is the root configuration.
type Config struct {
	Server   Server   `yaml:"server"`
	Logging  Logging  `yaml:"logging"`
	Session  Session  `yaml:"session"`
	Levels   Levels   `yaml:"levels"`
	Terminal Terminal `yaml:"terminal"`
}

// Server configures the HTTP and WebSocket transport.
type Server struct {
	Addr           string        `yaml:"addr"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
}

// Logging configures zap.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Session bounds the in-memory session cache.
type Session struct {
	TTL         time.Duration `yaml:"ttl"`
	MaxSessions int64         `yaml:"max_sessions"`
}

// Levels points at the lesson catalog and where progress is kept.
type Levels struct {
	Catalog      string `yaml:"catalog"`       // empty selects the built-in catalog
	ProgressFile string `yaml:"progress_file"` // empty keeps progress in memory
}

// Terminal configures the interactive console.
type Terminal struct {
	Prompt string `yaml:"prompt"`
	Color  bool   `yaml:"color"`
}

// Defaults returns a Config with sensible defaults.
func Defaults() Config {
	return Config{
		Server: Server{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
		Session: Session{
			TTL:         30 * time.Minute,
			MaxSessions: 1000,
		},
		Terminal: Terminal{
			Prompt: "gitgud",
			Color:  true,
		},
	}
}

// LoggingConfig converts the logging section for the logging package.
func (c *Config) LoggingConfig() logging.Config {
	return logging.Config{
		Level:      c.Logging.Level,
		Format:     c.Logging.Format,
		OutputPath: c.Logging.Output,
	}
}
