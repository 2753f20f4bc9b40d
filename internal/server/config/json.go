package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/familyaccount/internal/flagx"
	"github.com/dmitrijs2005/familyaccount/internal/timex"
)

// JsonConfig is the on-disk shape of the server configuration. Durations
// accept "24h" style strings or integer nanoseconds. Empty or zero fields
// leave the current value alone.
type JsonConfig struct {
	Addr           string         `json:"addr"`
	DatabaseDSN    string         `json:"database_dsn"`
	SecretKey      string         `json:"secret_key"`
	TokenTTL       timex.Duration `json:"token_ttl"`
	ResetTokenTTL  timex.Duration `json:"reset_token_ttl"`
	RedisAddr      string         `json:"redis_addr"`
	RedisPassword  string         `json:"redis_password"`
	S3RootUser     string         `json:"s3_root_user"`
	S3RootPassword string         `json:"s3_root_password"`
	S3Bucket       string         `json:"s3_bucket"`
	S3Region       string         `json:"s3_region"`
	S3BaseEndpoint string         `json:"s3_base_endpoint"`
	PhotoDir       string         `json:"photo_dir"`
	PublicURL      string         `json:"public_url"`
	SendgridAPIKey string         `json:"sendgrid_api_key"`
	MailFrom       string         `json:"mail_from"`
	AuthRateLimit  float64        `json:"auth_rate_limit"`
	AuthRateBurst  int            `json:"auth_rate_burst"`
	LogLevel       string         `json:"log_level"`
}

// parseJson loads the file named by -c or -config, if any, and overlays its
// non-empty fields onto config. Read or unmarshal errors panic.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.Addr, c.Addr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.RedisPassword, c.RedisPassword)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.PhotoDir, c.PhotoDir)
	setString(&config.PublicURL, c.PublicURL)
	setString(&config.SendgridAPIKey, c.SendgridAPIKey)
	setString(&config.MailFrom, c.MailFrom)
	setString(&config.LogLevel, c.LogLevel)

	if c.TokenTTL.Duration > 0 {
		config.TokenTTL = c.TokenTTL.Duration
	}
	if c.ResetTokenTTL.Duration > 0 {
		config.ResetTokenTTL = c.ResetTokenTTL.Duration
	}
	if c.AuthRateLimit > 0 {
		config.AuthRateLimit = c.AuthRateLimit
	}
	if c.AuthRateBurst > 0 {
		config.AuthRateBurst = c.AuthRateBurst
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
