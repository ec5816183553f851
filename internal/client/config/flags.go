package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/studiobook/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     backend base URL
//	-d string     session database file
//	-t duration   request timeout, e.g. 10s
//	-cc string    default phone country code
//	-l string     log level
//	-b string     log backend (zap or slog)
//
// Only the flags above are parsed, using flagx.FilterArgs, so flags meant
// for other components pass through untouched.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-t", "-cc", "-l", "-b"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "backend base URL")
	fs.StringVar(&cfg.SessionDB, "d", cfg.SessionDB, "session database file")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")
	fs.StringVar(&cfg.DefaultCountryCode, "cc", cfg.DefaultCountryCode, "default phone country code")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogBackend, "b", cfg.LogBackend, "log backend (zap or slog)")

	return fs.Parse(args)
}
