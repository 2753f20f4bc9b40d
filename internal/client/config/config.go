package config

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/familyaccount/internal/common"
)

// Config holds runtime settings for the Family Account client.
//
// Units: RequestTimeout and SearchDebounce are time.Duration values.
type Config struct {
	ServerURL       string
	RequestTimeout  time.Duration
	DatabasePath    string
	Ephemeral       bool
	SearchDebounce  time.Duration
	SearchMinLength int
	LogLevel        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:5000"
	c.RequestTimeout = 15 * time.Second
	c.DatabasePath = "familyaccount.db"
	c.Ephemeral = false
	c.SearchDebounce = 500 * time.Millisecond
	c.SearchMinLength = common.MinSearchLength
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (and an optional .env file), JSON (if present) and
// command-line flags (if present). Later sources take precedence over
// earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	cfg.ServerURL = strings.TrimRight(cfg.ServerURL, "/")
	return cfg
}
