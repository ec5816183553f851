// Package config loads runtime configuration for the studio CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. The STUDIO_API_URL environment variable.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
// Durations are timex.Duration values, either strings like "1.5s" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "http://127.0.0.1:5000/api",
//	  "session_db": "studiobook.db",
//	  "request_timeout": "30s",
//	  "resend_cooldown": "60s",
//	  "redirect_delay": "1.5s",
//	  "default_country_code": "+91",
//	  "log_level": "info",
//	  "log_backend": "zap"
//	}
package config
