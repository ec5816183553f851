package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/studiobook/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     HTTP bind address (e.g., ":5000")
//	-s string     JWT HMAC secret key
//	-t duration   token validity, e.g. 24h
//	-o duration   OTP lifetime, e.g. 10m
//	-dev bool     echo OTPs in responses
//	-ae string    seeded admin email
//	-ap string    seeded admin password
//	-l string     log level
//	-b string     log backend (zap or slog)
//
// The args are first filtered with flagx.FilterArgs so that flags meant for
// other components do not break parsing.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-s", "-t", "-o", "-dev", "-ae", "-ap", "-l", "-b"})

	fs := flag.NewFlagSet("devserver", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.DurationVar(&config.TokenValidity, "t", config.TokenValidity, "token validity")
	fs.DurationVar(&config.OTPTTL, "o", config.OTPTTL, "otp lifetime")
	fs.BoolVar(&config.DevMode, "dev", config.DevMode, "echo generated otp codes")
	fs.StringVar(&config.AdminEmail, "ae", config.AdminEmail, "seeded admin email")
	fs.StringVar(&config.AdminPassword, "ap", config.AdminPassword, "seeded admin password")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogBackend, "b", config.LogBackend, "log backend (zap or slog)")

	return fs.Parse(args)
}
