package config

import (
	"github.com/caarlos0/env/v11"
)

// Env holds the settings read from environment variables.
type Env struct {
	// Name suffixes the config, data and log file names so that separate
	// environments do not share state
	Name     string `env:"FOCUSPLUG_ENV"`
	LogLevel string `env:"FOCUSPLUG_LOG_LEVEL"`
	NoColor  bool   `env:"FOCUSPLUG_NO_COLOR"`
}

// ParseEnv loads Env from the environment.
func ParseEnv() (Env, error) {
	var e Env

	if err := env.Parse(&e); err != nil {
		return e, errParseEnv.Wrap(err)
	}

	return e, nil
}

// WithEnvConfig returns an Option that applies environment overrides.
func WithEnvConfig(e Env) Option {
	return func(c *Config) error {
		if e.LogLevel != "" {
			c.Log.Level = e.LogLevel
		}

		return nil
	}
}
