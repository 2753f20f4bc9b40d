package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allEnv = []string{
	EnvAddr, EnvDatabaseDSN, EnvSecretKey, EnvTokenTTL, EnvResetTokenTTL,
	EnvRedisAddr, EnvRedisPassword, EnvS3RootUser, EnvS3RootPassword,
	EnvS3Bucket, EnvS3Region, EnvS3BaseEndpoint, EnvPhotoDir, EnvPublicURL,
	EnvSendgridAPIKey, EnvMailFrom, EnvAuthRateLimit, EnvAuthRateBurst, EnvLogLevel,
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allEnv {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":5000", c.Addr)
	assert.Empty(t, c.DatabaseDSN)
	assert.Equal(t, "secretKey", c.SecretKey)
	assert.Equal(t, 24*time.Hour, c.TokenTTL)
	assert.Equal(t, time.Hour, c.ResetTokenTTL)
	assert.Empty(t, c.RedisAddr)
	assert.Empty(t, c.S3Bucket)
	assert.Equal(t, "us-east-1", c.S3Region)
	assert.Equal(t, "photos", c.PhotoDir)
	assert.Equal(t, "http://localhost:5000", c.PublicURL)
	assert.Empty(t, c.SendgridAPIKey)
	assert.Equal(t, 5.0, c.AuthRateLimit)
	assert.Equal(t, 10, c.AuthRateBurst)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"cmd"}
	t.Chdir(t.TempDir())
	clearEnv(t)

	c := LoadConfig()
	require.NotNil(t, c, "LoadConfig must not return nil")

	var want Config
	want.LoadDefaults()
	assert.Equal(t, want, *c)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	t.Chdir(t.TempDir())
	clearEnv(t)

	t.Setenv(EnvAddr, ":7000")
	t.Setenv(EnvRedisAddr, "redis:6379")
	t.Setenv(EnvPublicURL, "http://env.example/")
	path := writeTempJSON(t, "", "", map[string]any{"addr": ":8000", "token_ttl": "2h"})
	os.Args = []string{"cmd", "-c", path, "-a", ":9000"}

	c := LoadConfig()

	assert.Equal(t, ":9000", c.Addr)
	assert.Equal(t, 2*time.Hour, c.TokenTTL)
	assert.Equal(t, "redis:6379", c.RedisAddr)
	assert.Equal(t, "http://env.example", c.PublicURL)
}
