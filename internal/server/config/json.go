package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/studiobook/internal/flagx"
	"github.com/dmitrijs2005/studiobook/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "10m" and integer nanoseconds. DevMode is a pointer
// so that an explicit false can be told apart from an absent key.
type JsonConfig struct {
	HTTPAddr      string         `json:"http_addr"`
	SecretKey     string         `json:"secret_key"`
	TokenValidity timex.Duration `json:"token_validity"`
	OTPTTL        timex.Duration `json:"otp_ttl"`
	DevMode       *bool          `json:"dev_mode"`
	AdminEmail    string         `json:"admin_email"`
	AdminPassword string         `json:"admin_password"`
	LogLevel      string         `json:"log_level"`
	LogBackend    string         `json:"log_backend"`
}

// parseJson overlays config with the values found in the JSON file named by
// the -c or -config flag. Absent keys keep their current value.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigPath(args)

	// nothing to load
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return err
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.AdminEmail, c.AdminEmail)
	setString(&config.AdminPassword, c.AdminPassword)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogBackend, c.LogBackend)
	if c.TokenValidity.Duration > 0 {
		config.TokenValidity = c.TokenValidity.Duration
	}
	if c.OTPTTL.Duration > 0 {
		config.OTPTTL = c.OTPTTL.Duration
	}
	if c.DevMode != nil {
		config.DevMode = *c.DevMode
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
