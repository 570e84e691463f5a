package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

var (
	ErrMissingBackendURL = errors.New("backend url is required")
	ErrInvalidBackendURL = errors.New("backend url must be an absolute http(s) url")
)

// Config holds runtime settings for the Jafa CLI.
//
// Fields:
//   - BackendURL: base URL of the forum backend; the API lives under BackendURL + "/api".
//   - RequestTimeout: upper bound for a single HTTP call.
//   - DatabasePath: SQLite file keeping the backend session cookie between runs.
//   - ToastTTL / ToastCapacity: lifetime and size of the notification queue.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	BackendURL     string
	RequestTimeout time.Duration
	DatabasePath   string
	ToastTTL       time.Duration
	ToastCapacity  int
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults. BackendURL has no default:
// the client refuses to start without one.
func (c *Config) LoadDefaults() {
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "jafa.db"
	c.ToastTTL = 5 * time.Second
	c.ToastCapacity = 5
	c.LogLevel = "warn"
}

// Validate reports whether the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BackendURL) == "" {
		return ErrMissingBackendURL
	}
	u, err := url.Parse(c.BackendURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q", ErrInvalidBackendURL, c.BackendURL)
	}
	if c.ToastCapacity < 1 {
		return fmt.Errorf("toast capacity must be positive, got %d", c.ToastCapacity)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones. The result is validated.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	if err := parseEnv(cfg, nil); err != nil {
		return nil, err
	}
	parseFlags(cfg)
	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
