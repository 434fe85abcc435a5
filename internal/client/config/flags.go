package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/edcasillas/globalstats/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-u string     API base URL
//	-id string    client id
//	-secret string client secret
//	-name string  default display name
//	-v            verbose logging
//	-db string    SQLite database path
//	-t duration   request timeout, e.g. 10s
//
// Unknown arguments are filtered out first so other parsers can share args.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-u", "-id", "-secret", "-name", "-v", "-db", "-t"})

	fs := flag.NewFlagSet("globalstats", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BaseURL, "u", cfg.BaseURL, "API base URL")
	fs.StringVar(&cfg.ClientID, "id", cfg.ClientID, "client id")
	fs.StringVar(&cfg.ClientSecret, "secret", cfg.ClientSecret, "client secret")
	fs.StringVar(&cfg.DefaultUsername, "name", cfg.DefaultUsername, "default display name")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose logging")
	fs.StringVar(&cfg.DatabasePath, "db", cfg.DatabasePath, "SQLite database path")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
