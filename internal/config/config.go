// Package config reads guessr settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds environment settings. Command-line flags take precedence
// over these.
type Config struct {
	DBPath      string        `env:"GUESSR_DB"`
	CatalogPath string        `env:"GUESSR_CATALOG"`
	Margin      float64       `env:"GUESSR_MARGIN"       envDefault:"4"`
	IdleTimeout time.Duration `env:"GUESSR_IDLE_TIMEOUT" envDefault:"10m"`
	Seed        uint64        `env:"GUESSR_SEED"`
	LogLevel    string        `env:"GUESSR_LOG_LEVEL"    envDefault:"info"`
	LogFile     string        `env:"GUESSR_LOG_FILE"`
}

// Load parses the process environment into a Config and checks it.
func Load() (Config, error) {
	return LoadFrom(nil)
}

// LoadFrom is Load over an explicit set of variables. A nil map reads the
// process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg, environ); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any, environ map[string]string) error {
	if err := env.ParseWithOptions(target, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	if c.Margin <= 0 {
		return fmt.Errorf("GUESSR_MARGIN must be positive, got %v", c.Margin)
	}
	if c.IdleTimeout <= 0 {
		return fmt.Errorf("GUESSR_IDLE_TIMEOUT must be positive, got %v", c.IdleTimeout)
	}
	return nil
}
