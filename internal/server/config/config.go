// Package config handles configuration for the development backend,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds runtime settings for the studio development backend.
//
// Fields:
//   - HTTPAddr: bind address of the REST endpoint.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use the default outside development.
//   - TokenValidity: lifetime of an issued bearer token.
//   - OTPTTL: how long an emailed code stays valid.
//   - DevMode: echo generated codes back as devOTP instead of mailing them.
//   - AdminEmail / AdminPassword: seeded administrator account; empty email disables seeding.
//   - LogLevel, LogBackend: see logging.New.
type Config struct {
	HTTPAddr      string
	SecretKey     string
	TokenValidity time.Duration
	OTPTTL        time.Duration
	DevMode       bool
	AdminEmail    string
	AdminPassword string
	LogLevel      string
	LogBackend    string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":5000"
	c.SecretKey = "secretKey"
	c.TokenValidity = 24 * time.Hour
	c.OTPTTL = 10 * time.Minute
	c.DevMode = true
	c.AdminEmail = "admin@studio.local"
	c.AdminPassword = "admin123"
	c.LogLevel = "info"
	c.LogBackend = "zap"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}
