// Package config loads the VM's resource limits from the environment,
// following the env-tag convention the rest of the corpus uses for
// runtime-tunable settings rather than command-line flags.
package config

import "github.com/caarlos0/env/v6"

// Config holds the VM's execution limits. A zero value means unlimited.
type Config struct {
	MaxSteps     int `env:"PLANG_MAX_STEPS" envDefault:"0"`
	MaxCallDepth int `env:"PLANG_MAX_CALL_DEPTH" envDefault:"0"`
}

// Load reads Config from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
