package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/familyaccount/internal/flagx"
	"github.com/joho/godotenv"
)

const (
	EnvServerURL       = "SERVER_URL"
	EnvRequestTimeout  = "FAMILYACCOUNT_REQUEST_TIMEOUT"
	EnvDatabasePath    = "FAMILYACCOUNT_DB"
	EnvSearchDebounce  = "FAMILYACCOUNT_SEARCH_DEBOUNCE"
	EnvSearchMinLength = "FAMILYACCOUNT_SEARCH_MIN_LENGTH"
	EnvLogLevel        = "FAMILYACCOUNT_LOG_LEVEL"
)

// parseEnv overlays Config with environment variables. A dotenv file named
// by -env is loaded first and must exist; otherwise ./.env is loaded when
// present. Variables already set in the process environment win over the
// file. Malformed values panic, like the other loaders.
func parseEnv(cfg *Config) {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if v, ok := os.LookupEnv(EnvServerURL); ok && v != "" {
		cfg.ServerURL = v
	}
	if v, ok := os.LookupEnv(EnvDatabasePath); ok && v != "" {
		cfg.DatabasePath = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvRequestTimeout); ok && v != "" {
		cfg.RequestTimeout = mustDuration(v)
	}
	if v, ok := os.LookupEnv(EnvSearchDebounce); ok && v != "" {
		cfg.SearchDebounce = mustDuration(v)
	}
	if v, ok := os.LookupEnv(EnvSearchMinLength); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.SearchMinLength = n
	}
}

func mustDuration(v string) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	return d
}
