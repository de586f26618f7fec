package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "/api/stages", cfg.Server.BasePath)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "construction_stages", cfg.Database.Name)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.True(t, cfg.Audit.Enabled)
	assert.Equal(t, "0 3 * * *", cfg.Audit.Schedule)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: "9090"
  mode: release
database:
  host: db.internal
  port: 5433
audit:
  enabled: false
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.False(t, cfg.Audit.Enabled)
	// Keys the file does not mention keep their defaults
	assert.Equal(t, "/api/stages", cfg.Server.BasePath)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \"9090\"\n"), 0o644))

	t.Setenv("PORT", "7777")
	t.Setenv("DB_HOST", "env-host")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("AUDIT_ENABLED", "false")
	t.Setenv("AUDIT_SCHEDULE", "30 2 * * *")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7777", cfg.Server.Port)
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.False(t, cfg.Audit.Enabled)
	assert.Equal(t, "30 2 * * *", cfg.Audit.Schedule)
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDatabaseConfig_GetDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "secret",
		Name:     "construction_stages",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=construction_stages sslmode=disable",
		d.GetDSN())
}
