package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/familyaccount/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string     backend base URL
//	-t duration   request timeout
//	-d string     path of the local SQLite database
//	-l string     log level (debug, info, warn, error)
//	-ephemeral    keep the token in memory only
//
// os.Args is filtered with flagx.FilterArgs first so flags owned by other
// loaders (-c, -env) do not break parsing.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-d", "-l", "-ephemeral"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "backend base URL")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.BoolVar(&cfg.Ephemeral, "ephemeral", cfg.Ephemeral, "do not persist the session token")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
