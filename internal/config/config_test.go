package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cvforge/pkg/oauth"
)

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := load(env.Options{Environment: map[string]string{}})
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, "http://localhost:8080", cfg.BaseURL)
	require.Equal(t, "/", cfg.SuccessURL)
	require.Equal(t, "/login", cfg.FailureURL)
	require.Equal(t, 10*time.Minute, cfg.SessionTTL)
	require.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	require.Equal(t, 5*time.Minute, cfg.SecretCacheTTL)
	require.Empty(t, cfg.RedisURL)
	require.Empty(t, cfg.Database.ConnectionString)
	require.Equal(t, "schema_migrations", cfg.Database.MigrationsTable)
	require.Equal(t, "env", cfg.Secrets.Backend)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_Overrides(t *testing.T) {
	t.Parallel()

	cfg, err := load(env.Options{Environment: map[string]string{
		"APP_BASE_URL":      "https://cv.example.com/",
		"AUTH_SESSION_TTL":  "5m",
		"REDIS_URL":         "redis://localhost:6379/0",
		"DATABASE_CONN_URL": "postgres://u:p@localhost/cv",
		"SECRETS_BACKEND":   "aws",
		"AWS_REGION":        "eu-west-1",
		"SENTRY_DSN":        "https://key@sentry.example/1",
	}})
	require.NoError(t, err)

	require.Equal(t, "https://cv.example.com", cfg.BaseURL)
	require.Equal(t, 5*time.Minute, cfg.SessionTTL)
	require.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	require.Equal(t, "postgres://u:p@localhost/cv", cfg.Database.ConnectionString)
	require.Equal(t, "https://key@sentry.example/1", cfg.Log.SentryDSN)

	sc := cfg.Secrets.Store()
	require.Equal(t, "aws", sc.Backend)
	require.Equal(t, "eu-west-1", sc.AWS.Region)
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	for name, vars := range map[string]map[string]string{
		"relative base URL": {"APP_BASE_URL": "/app"},
		"zero session TTL":  {"AUTH_SESSION_TTL": "0s"},
		"bad duration":      {"HTTP_CLIENT_TIMEOUT": "soon"},
	} {
		_, err := load(env.Options{Environment: vars})
		require.Error(t, err, name)
	}
}

func TestLoadProviders(t *testing.T) {
	t.Parallel()

	t.Run("embedded defaults", func(t *testing.T) {
		t.Parallel()

		providers, err := LoadProviders("")
		require.NoError(t, err)
		require.Len(t, providers, 2)

		reg, err := oauth.NewRegistryFromConfigs(providers...)
		require.NoError(t, err)
		require.Equal(t, []string{"github", "google"}, reg.Names())
	})

	t.Run("file override", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "providers.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
providers:
  - type: github
    secret_name: prod/github
    scopes: [read:user]
    userinfo_endpoint: https://github.example/api/v3/user
`), 0o600))

		providers, err := LoadProviders(path)
		require.NoError(t, err)
		require.Len(t, providers, 1)
		require.Equal(t, "prod/github", providers[0].SecretName)
		require.Equal(t, []string{"read:user"}, providers[0].Scopes)
		require.Equal(t, "https://github.example/api/v3/user", providers[0].UserInfoEndpoint)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadProviders(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()

		_, err := ParseProviders([]byte("providers: []"))
		require.ErrorIs(t, err, ErrInvalidConfig)
	})
}
