// Package config reads spellcanon settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds process settings. Command-line flags override these values.
type Config struct {
	DBPath   string `env:"SPELLCANON_DB_PATH"`
	Workers  int    `env:"SPELLCANON_WORKERS"   envDefault:"4"`
	LogLevel string `env:"SPELLCANON_LOG_LEVEL" envDefault:"info"`
	Format   string `env:"SPELLCANON_FORMAT"    envDefault:"text"`
}

// Load parses Config from the environment and checks it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate rejects settings no command can run with.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("config: SPELLCANON_WORKERS must be at least 1, got %d", c.Workers)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: SPELLCANON_LOG_LEVEL: %w", err)
	}
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: SPELLCANON_FORMAT must be text or json, got %q", c.Format)
	}
	return nil
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return 0, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}
