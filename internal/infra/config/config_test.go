package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing-on-purpose"))

	cfg, err := Load()
	require.Error(t, err, "an explicit CONFIG_PATH must exist")
	require.Nil(t, cfg)

	t.Setenv("CONFIG_PATH", writeConfig(t, "{}"))
	cfg, err = Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
	require.True(t, cfg.HTTP.RateLimit.Enabled)
	require.Equal(t, "positive", cfg.Engine.Impacts.Ingress)
	require.True(t, cfg.Cache.Enabled)
	require.False(t, cfg.Cache.Valkey.Enabled)
}

func TestLoadFileOverrides(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, `
http:
  address: ":9090"
  rateLimit:
    enabled: false
engine:
  impacts:
    fullMoon: challenging
cache:
  enabled: false
`))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.False(t, cfg.HTTP.RateLimit.Enabled)
	require.Equal(t, "challenging", cfg.Engine.Impacts.FullMoon)
	require.Equal(t, "significant", cfg.Engine.Impacts.NewMoon, "unset fields keep their defaults")
	require.False(t, cfg.Cache.Enabled)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, "{}"))
	t.Setenv("HTTP_ADDRESS", ":7070")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("HTTP_RATE_LIMIT_RPM", "42")
	t.Setenv("CACHE_VALKEY_ENABLED", "true")
	t.Setenv("CACHE_VALKEY_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":7070", cfg.HTTP.Address)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	require.Equal(t, 42, cfg.HTTP.RateLimit.RequestsPerMinute)
	require.True(t, cfg.Cache.Valkey.Enabled)
	require.Equal(t, "localhost:6379", cfg.Cache.Valkey.Addr)
}

func TestValidate(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Engine.Impacts.NewMoon = "catastrophic"
	require.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.HTTP.RateLimit.RequestsPerMinute = 0
	require.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.Cache.Valkey.Enabled = true
	cfg.Cache.Valkey.Addr = " "
	require.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.HTTP.Address = ""
	require.Error(t, cfg.Validate())
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}
