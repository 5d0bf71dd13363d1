package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileWithDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
database:
  host: db.internal
  name: clinic_test
rate_limit:
  burst: 5
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5, cfg.RateLimit.Burst)
	assert.Equal(t, 20.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, "clinic.events", cfg.Events.Channel)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, `
database:
  host: db.internal
  password: from-file
`)
	t.Setenv("CLINIC_DATABASE_PASSWORD", "from-env")
	t.Setenv("CLINIC_RATE_LIMIT_REQUESTS_PER_SECOND", "2.5")
	t.Setenv("CLINIC_JWT_EXPIRY", "15m")
	t.Setenv("CLINIC_CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, 2.5, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 15*time.Minute, cfg.JWT.Expiry)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestAuthRequiresSecret(t *testing.T) {
	path := writeConfig(t, `
auth:
  enabled: true
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "jwt.secret is required")

	t.Setenv("CLINIC_JWT_SECRET", "s3cret")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Auth.Enabled)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
