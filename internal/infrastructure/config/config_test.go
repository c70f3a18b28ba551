package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
database:
  driver: postgres
  host: db.internal
claims:
  bulk_concurrency: 3
`), 0o600))

	t.Setenv("CLAIMDESK_REDIS_ENABLED", "true")
	t.Setenv("CLAIMDESK_CLAIMS_NUMBER_PREFIX", "WCS")

	cfg, err := Load("release", path)

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "postgres", cfg.Database.GetDriver())
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 3, cfg.Claims.BulkConcurrency)
	assert.Equal(t, "WCS", cfg.Claims.NumberPrefix)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 300, cfg.Redis.TTLSeconds)
	assert.Equal(t, "NGN", cfg.Claims.Currency)
	assert.Same(t, cfg, Get())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load("", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
