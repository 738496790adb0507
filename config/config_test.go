package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		os.Setenv(k, v)
	}
	t.Cleanup(func() {
		for k := range vars {
			os.Unsetenv(k)
		}
	})
}

func TestIsDevelopment(t *testing.T) {
	cfg := &Config{Environment: "development"}
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	cfg = &Config{Environment: "production"}
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.IsProduction())

	cfg = &Config{Environment: "staging"}
	assert.False(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadWithOptions(t *testing.T) {
	setEnv(t, map[string]string{
		"SERVER_PORT":                "9000",
		"SERVER_HOST":                "127.0.0.1",
		"DB_HOST":                    "testhost",
		"DB_PORT":                    "5433",
		"DB_USER":                    "testuser",
		"DB_PASSWORD":                "testpass",
		"DB_NAME":                    "test_db",
		"ENVIRONMENT":                "development",
		"EMAILIT_API_KEY":            "em_test_key",
		"EMAILIT_API_URL":            "https://api.example.test/",
		"EMAILIT_WEBHOOK_SECRET":     "whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw",
		"CRON_SECRET":                "cron-secret",
		"INGEST_RELINK_EMAIL_DOMAIN": "false",
		"DOMAIN_SYNC_ENABLED":        "true",
		"DOMAIN_SYNC_INTERVAL":       "15m",
	})

	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "testhost", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "testuser", cfg.Database.User)
	assert.Equal(t, "testpass", cfg.Database.Password)
	assert.Equal(t, "test_db", cfg.Database.DBName)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "em_test_key", cfg.Emailit.APIKey)
	assert.Equal(t, "https://api.example.test", cfg.Emailit.APIURL)
	assert.Equal(t, 30*time.Second, cfg.Emailit.Timeout)
	assert.Equal(t, "cron-secret", cfg.CronSecret)
	assert.False(t, cfg.Ingest.RelinkEmailDomain)
	assert.True(t, cfg.DomainSync.Enabled)
	assert.Equal(t, 15*time.Minute, cfg.DomainSync.Interval)
	assert.True(t, cfg.WebhookSignatureEnabled())
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "wsdmailer", cfg.Database.DBName)
	assert.Equal(t, "require", cfg.Database.SSLMode)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, VERSION, cfg.Version)
	assert.Equal(t, "https://api.emailit.com", cfg.Emailit.APIURL)
	assert.True(t, cfg.Ingest.RelinkEmailDomain)
	assert.False(t, cfg.DomainSync.Enabled)
	assert.Equal(t, time.Hour, cfg.DomainSync.Interval)
	assert.False(t, cfg.WebhookSignatureEnabled())
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "none", cfg.Tracing.TraceExporter)
}

func TestLoadValidation(t *testing.T) {
	t.Run("sync enabled without api key", func(t *testing.T) {
		setEnv(t, map[string]string{"DOMAIN_SYNC_ENABLED": "true"})

		_, err := LoadWithOptions(LoadOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "EMAILIT_API_KEY is required")
	})

	t.Run("invalid sync interval", func(t *testing.T) {
		setEnv(t, map[string]string{"DOMAIN_SYNC_INTERVAL": "0s"})

		_, err := LoadWithOptions(LoadOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DOMAIN_SYNC_INTERVAL")
	})
}

func TestLoadMissingEnvFile(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	cfg, err := LoadWithOptions(LoadOptions{EnvFile: ".env.missing"})
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}
