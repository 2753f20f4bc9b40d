package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret", "-t", "90m", "-r", "localhost:6379",
			"-u", "user", "-p", "password", "-b", "bucket", "-g", "us-west-1", "-e", "http://endpoint", "-l", "debug",
		},
			expected: &Config{
				Addr:           "127.0.0.1:9090",
				DatabaseDSN:    "db",
				SecretKey:      "secret",
				TokenTTL:       90 * time.Minute,
				RedisAddr:      "localhost:6379",
				S3RootUser:     "user",
				S3RootPassword: "password",
				S3Bucket:       "bucket",
				S3Region:       "us-west-1",
				S3BaseEndpoint: "http://endpoint",
				LogLevel:       "debug",
			}},
		{name: "foreign flags ignored", args: []string{"cmd", "-c", "cfg.json", "-env", ".env", "-a", ":1"},
			expected: &Config{Addr: ":1"}},
		{name: "bad duration", args: []string{"cmd", "-t", "forever"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
