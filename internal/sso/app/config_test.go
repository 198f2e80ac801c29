package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Config reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_PATH",
		"AUTH_ISSUER", "AUTH_DB_FILE", "AUTH_PEPPER_FILE", "AUTH_ADMIN_TOKEN",
		"AUTH_ENV", "AUTH_LOG_LEVEL", "AUTH_LOG_FORMAT", "AUTH_PORT",
		"AUTH_ACCESS_TTL", "AUTH_REFRESH_TTL", "AUTH_SHUTDOWN_GRACE_PERIOD",
		"AUTH_HOUSEKEEPING_INTERVAL", "AUTH_CORS_MAX_AGE",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	require.Equal(t, "aussiebroadwan-sso", cfg.Issuer)
	require.Equal(t, "sso.db", cfg.DatabaseFile)
	require.Equal(t, "pepper", cfg.PepperFile)
	require.Empty(t, cfg.AdminToken)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "json", cfg.LogFormat)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, time.Hour, cfg.AccessTTL)
	require.Equal(t, 720*time.Hour, cfg.RefreshTTL)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, time.Hour, cfg.HousekeepingInterval)
	require.Equal(t, 10*time.Minute, cfg.CORSMaxAge)
}

func TestLoadConfigFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUTH_PORT", "9090")
	t.Setenv("AUTH_ACCESS_TTL", "15m")
	t.Setenv("AUTH_REFRESH_TTL", "168h")
	t.Setenv("AUTH_ADMIN_TOKEN", "s3cret")
	t.Setenv("AUTH_LOG_FORMAT", "text")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, 15*time.Minute, cfg.AccessTTL)
	require.Equal(t, 168*time.Hour, cfg.RefreshTTL)
	require.Equal(t, "s3cret", cfg.AdminToken)
	require.Equal(t, "text", cfg.LogFormat)
}

func TestLoadConfigFromFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "sso.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database_file: /data/sso.db
port: 7000
access_ttl: 5m
cors_max_age: 1m
`), 0o600))

	t.Run("explicit path", func(t *testing.T) {
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		require.Equal(t, "/data/sso.db", cfg.DatabaseFile)
		require.Equal(t, 7000, cfg.Port)
		require.Equal(t, 5*time.Minute, cfg.AccessTTL)
		require.Equal(t, time.Minute, cfg.CORSMaxAge)
		require.Equal(t, 720*time.Hour, cfg.RefreshTTL)
	})

	t.Run("CONFIG_PATH with env override", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", path)
		t.Setenv("AUTH_PORT", "7001")

		cfg, err := LoadConfig("")
		require.NoError(t, err)
		require.Equal(t, 7001, cfg.Port)
		require.Equal(t, "/data/sso.db", cfg.DatabaseFile)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "port out of range", env: map[string]string{"AUTH_PORT": "70000"}},
		{name: "zero access ttl", env: map[string]string{"AUTH_ACCESS_TTL": "0s"}},
		{name: "refresh shorter than access", env: map[string]string{"AUTH_ACCESS_TTL": "2h", "AUTH_REFRESH_TTL": "1h"}},
		{name: "unknown log format", env: map[string]string{"AUTH_LOG_FORMAT": "xml"}},
		{name: "unparsable duration", env: map[string]string{"AUTH_ACCESS_TTL": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadConfig("")
			require.Error(t, err)
		})
	}
}

func TestUsageHelpListsVariables(t *testing.T) {
	help := UsageHelp()
	require.Contains(t, help, "AUTH_ADMIN_TOKEN")
	require.Contains(t, help, "AUTH_CORS_MAX_AGE")
}
