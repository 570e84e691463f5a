package config

import (
	"fmt"
	"time"

	"go-simpler.org/env"
)

// envConfig mirrors Config for environment loading. Zero values mean
// "not set" and keep whatever the earlier sources produced.
type envConfig struct {
	BackendURL     string        `env:"JAFA_BACKEND_URL"`
	RequestTimeout time.Duration `env:"JAFA_REQUEST_TIMEOUT"`
	DatabasePath   string        `env:"JAFA_DATABASE_PATH"`
	ToastTTL       time.Duration `env:"JAFA_TOAST_TTL"`
	ToastCapacity  int           `env:"JAFA_TOAST_CAPACITY"`
	LogLevel       string        `env:"JAFA_LOG_LEVEL"`
}

// parseEnv overlays cfg with JAFA_* variables. A nil source reads the
// process environment.
func parseEnv(cfg *Config, source env.Source) error {
	var ec envConfig
	if err := env.Load(&ec, &env.Options{Source: source}); err != nil {
		return fmt.Errorf("load environment: %w", err)
	}

	if ec.BackendURL != "" {
		cfg.BackendURL = ec.BackendURL
	}
	if ec.RequestTimeout != 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
	if ec.DatabasePath != "" {
		cfg.DatabasePath = ec.DatabasePath
	}
	if ec.ToastTTL != 0 {
		cfg.ToastTTL = ec.ToastTTL
	}
	if ec.ToastCapacity != 0 {
		cfg.ToastCapacity = ec.ToastCapacity
	}
	if ec.LogLevel != "" {
		cfg.LogLevel = ec.LogLevel
	}
	return nil
}
