// Package config handles configuration for the backend: defaults, an
// environment layer (optionally fed from a .env file), a JSON overlay and
// command-line flags, applied in that order.
package config

import (
	"strings"
	"time"
)

// Config holds runtime settings for the Family Account backend.
//
// Optional integrations switch on when configured:
//   - DatabaseDSN empty: users live in memory.
//   - RedisAddr empty: revoked tokens are tracked in memory.
//   - S3Bucket empty: profile photos go to PhotoDir and are served by the
//     backend itself under /photos/.
//   - SendgridAPIKey empty: reset e-mails are written to the log.
type Config struct {
	Addr          string
	DatabaseDSN   string
	SecretKey     string
	TokenTTL      time.Duration
	ResetTokenTTL time.Duration

	RedisAddr     string
	RedisPassword string

	S3RootUser     string
	S3RootPassword string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string

	PhotoDir  string
	PublicURL string

	SendgridAPIKey string
	MailFrom       string

	AuthRateLimit float64
	AuthRateBurst int

	LogLevel string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret key is insecure and must be overridden outside development.
func (c *Config) LoadDefaults() {
	c.Addr = ":5000"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.TokenTTL = 24 * time.Hour
	c.ResetTokenTTL = time.Hour
	c.RedisAddr = ""
	c.RedisPassword = ""
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = ""
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = ""
	c.PhotoDir = "photos"
	c.PublicURL = "http://localhost:5000"
	c.SendgridAPIKey = ""
	c.MailFrom = "no-reply@familyaccount.local"
	c.AuthRateLimit = 5
	c.AuthRateBurst = 10
	c.LogLevel = "info"
}

// LoadConfig builds a Config from defaults, then the environment, then an
// optional JSON file, then command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")
	return cfg
}
