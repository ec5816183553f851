package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/studiobook/internal/flagx"
	"github.com/dmitrijs2005/studiobook/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "1.5s" or as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL         string         `json:"api_base_url"`
	SessionDB          string         `json:"session_db"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	ResendCooldown     timex.Duration `json:"resend_cooldown"`
	RedirectDelay      timex.Duration `json:"redirect_delay"`
	DefaultCountryCode string         `json:"default_country_code"`
	LogLevel           string         `json:"log_level"`
	LogBackend         string         `json:"log_backend"`
}

// parseJson overlays cfg with the non-empty values of the JSON file named
// by -c or -config. Without such a flag nothing changes.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.SessionDB, jc.SessionDB)
	setString(&cfg.DefaultCountryCode, jc.DefaultCountryCode)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogBackend, jc.LogBackend)
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.ResendCooldown.Duration > 0 {
		cfg.ResendCooldown = jc.ResendCooldown.Duration
	}
	if jc.RedirectDelay.Duration > 0 {
		cfg.RedirectDelay = jc.RedirectDelay.Duration
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
