package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, 8000, cfg.Server.Port)
	require.Equal(t, "info", cfg.Server.LogLevel)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, "orgd", cfg.Auth.JWT.Issuer)
	require.Equal(t, 30*time.Minute, cfg.Auth.JWT.TTL)
	require.True(t, cfg.Monitoring.Prometheus.Enabled)
	require.Equal(t, "/metrics", cfg.Monitoring.Prometheus.Endpoint)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	contents := `
server:
  port: 9001
  log_level: debug
database:
  driver: postgres
  postgres:
    host: db.internal
    port: 5433
    database: orgd
    username: orgd
auth:
  jwt:
    secret: file-secret
    access_token_ttl: 2h
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(contents), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	require.Equal(t, 9001, cfg.Server.Port)
	require.Equal(t, "debug", cfg.Server.LogLevel)
	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, "db.internal", cfg.Database.Postgres.Host)
	require.Equal(t, 5433, cfg.Database.Postgres.Port)
	require.Equal(t, "file-secret", cfg.Auth.JWT.Secret)
	require.Equal(t, 2*time.Hour, cfg.Auth.JWT.TTL)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("ORGD_SERVER_PORT", "9100")
	t.Setenv("ORGD_AUTH_JWT_SECRET", "env-secret")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, 9100, cfg.Server.Port)
	require.Equal(t, "env-secret", cfg.Auth.JWT.Secret)
}
