package config

import (
	"fmt"
	"os"
	"time"
)

// EnvAPIURL overrides the backend base URL.
const EnvAPIURL = "STUDIO_API_URL"

// Config holds runtime settings for the studio CLI.
//
// Fields:
//   - APIBaseURL: backend base URL, including the "/api" prefix.
//   - SessionDB: SQLite file that keeps the bearer token between runs.
//   - RequestTimeout: upper bound for a single backend request.
//   - ResendCooldown: wait before an OTP may be resent (ticks of one second).
//   - RedirectDelay: pause between a verified signup and the login page.
//   - DefaultCountryCode: preselected phone country code.
//   - LogLevel, LogBackend: see logging.New.
type Config struct {
	APIBaseURL         string
	SessionDB          string
	RequestTimeout     time.Duration
	ResendCooldown     time.Duration
	RedirectDelay      time.Duration
	DefaultCountryCode string
	LogLevel           string
	LogBackend         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:5000/api"
	c.SessionDB = "studiobook.db"
	c.RequestTimeout = 30 * time.Second
	c.ResendCooldown = 60 * time.Second
	c.RedirectDelay = 1500 * time.Millisecond
	c.DefaultCountryCode = "+91"
	c.LogLevel = "info"
	c.LogBackend = "zap"
}

// ResendTicks is the cooldown expressed in one-second countdown ticks.
func (c *Config) ResendTicks() int {
	return int(c.ResendCooldown / time.Second)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:], os.Getenv)
}

func load(args []string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	parseEnv(cfg, getenv)
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}

func parseEnv(cfg *Config, getenv func(string) string) {
	if v := getenv(EnvAPIURL); v != "" {
		cfg.APIBaseURL = v
	}
}
