package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv makes sure variables from the developer's shell do not leak into
// the assertions below.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "SERVER_PORT", "SERVER_HOST", "SERVER_READ_TIMEOUT", "SERVER_MAX_BODY_BYTES",
		"LOG_LEVEL", "LOG_FORMAT", "RATELIMIT_RPS", "RATELIMIT_BURST",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr())
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Zero(t, cfg.RateLimit.RPS)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
	assert.Equal(t, 5*time.Minute, cfg.RateLimit.TTL)
}

func TestLoadConfigFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_READ_TIMEOUT", "5s")
	t.Setenv("SERVER_MAX_BODY_BYTES", "2048")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RATELIMIT_RPS", "2.5")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr())
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, int64(2048), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 2.5, cfg.RateLimit.RPS)
}

func TestLoadConfigPortFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)

	t.Setenv("SERVER_PORT", "9000")
	cfg, err = LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port, "SERVER_PORT takes precedence over PORT")
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "insight-agent.yaml")
	content := `server:
  port: 7000
  request_timeout: 10s
log:
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "json", cfg.Log.Format)

	t.Setenv("SERVER_PORT", "7001")
	cfg, err = LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "7001", cfg.Server.Port, "environment overrides the config file")
}

func TestLoadConfigMissingFile(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestLoadConfigFlags(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9090")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("port", "", "")
	flags.String("host", "", "")
	flags.String("log-level", "", "")
	require.NoError(t, flags.Parse([]string{"--port", "6000", "--log-level", "warn"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "6000", cfg.Server.Port, "flags override the environment")
	assert.Equal(t, "0.0.0.0", cfg.Server.Host, "unset flags keep lower-precedence values")
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:    ServerConfig{Port: "8000", MaxBodyBytes: 1024},
			Log:       LogConfig{Level: "info", Format: "text"},
			RateLimit: RateLimitConfig{Burst: 1},
		}
	}

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "empty port", mutate: func(c *Config) { c.Server.Port = "" }, wantField: "server.port"},
		{name: "zero body limit", mutate: func(c *Config) { c.Server.MaxBodyBytes = 0 }, wantField: "server.max_body_bytes"},
		{name: "unknown level", mutate: func(c *Config) { c.Log.Level = "verbose" }, wantField: "log.level"},
		{name: "unknown format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantField: "log.format"},
		{name: "negative rps", mutate: func(c *Config) { c.RateLimit.RPS = -1 }, wantField: "ratelimit.rps"},
		{name: "enabled without burst", mutate: func(c *Config) {
			c.RateLimit.RPS = 1
			c.RateLimit.Burst = 0
		}, wantField: "ratelimit.burst"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var cerr *ConfigError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.wantField, cerr.Field)
		})
	}
}
