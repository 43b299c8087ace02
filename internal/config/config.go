// Package config loads command defaults from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds defaults for command-line flags. Flags given explicitly take
// precedence.
type Config struct {
	Root           string `env:"NGX_ENV_ROOT" envDefault:"."`
	BuilderPackage string `env:"NGX_ENV_BUILDER_PACKAGE" envDefault:"@ngx-env/builder"`
	Verbose        bool   `env:"NGX_ENV_VERBOSE"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
