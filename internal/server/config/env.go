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
	EnvAddr           = "FAMILYACCOUNT_ADDR"
	EnvDatabaseDSN    = "DATABASE_DSN"
	EnvSecretKey      = "JWT_SECRET"
	EnvTokenTTL       = "TOKEN_TTL"
	EnvResetTokenTTL  = "RESET_TOKEN_TTL"
	EnvRedisAddr      = "REDIS_ADDR"
	EnvRedisPassword  = "REDIS_PASSWORD"
	EnvS3RootUser     = "S3_ROOT_USER"
	EnvS3RootPassword = "S3_ROOT_PASSWORD"
	EnvS3Bucket       = "S3_BUCKET"
	EnvS3Region       = "S3_REGION"
	EnvS3BaseEndpoint = "S3_BASE_ENDPOINT"
	EnvPhotoDir       = "PHOTO_DIR"
	EnvPublicURL      = "PUBLIC_URL"
	EnvSendgridAPIKey = "SENDGRID_API_KEY"
	EnvMailFrom       = "MAIL_FROM"
	EnvAuthRateLimit  = "AUTH_RATE_LIMIT"
	EnvAuthRateBurst  = "AUTH_RATE_BURST"
	EnvLogLevel       = "LOG_LEVEL"
)

// parseEnv overlays Config with environment variables. A dotenv file named
// by -env must exist; otherwise ./.env is loaded when present. Values
// already in the process environment win over the file.
func parseEnv(cfg *Config) {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	strs := map[string]*string{
		EnvAddr:           &cfg.Addr,
		EnvDatabaseDSN:    &cfg.DatabaseDSN,
		EnvSecretKey:      &cfg.SecretKey,
		EnvRedisAddr:      &cfg.RedisAddr,
		EnvRedisPassword:  &cfg.RedisPassword,
		EnvS3RootUser:     &cfg.S3RootUser,
		EnvS3RootPassword: &cfg.S3RootPassword,
		EnvS3Bucket:       &cfg.S3Bucket,
		EnvS3Region:       &cfg.S3Region,
		EnvS3BaseEndpoint: &cfg.S3BaseEndpoint,
		EnvPhotoDir:       &cfg.PhotoDir,
		EnvPublicURL:      &cfg.PublicURL,
		EnvSendgridAPIKey: &cfg.SendgridAPIKey,
		EnvMailFrom:       &cfg.MailFrom,
		EnvLogLevel:       &cfg.LogLevel,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv(EnvTokenTTL); ok && v != "" {
		cfg.TokenTTL = mustDuration(v)
	}
	if v, ok := os.LookupEnv(EnvResetTokenTTL); ok && v != "" {
		cfg.ResetTokenTTL = mustDuration(v)
	}
	if v, ok := os.LookupEnv(EnvAuthRateLimit); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			panic(err)
		}
		cfg.AuthRateLimit = f
	}
	if v, ok := os.LookupEnv(EnvAuthRateBurst); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.AuthRateBurst = n
	}
}

func mustDuration(v string) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	return d
}
