package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/claimdesk/claimdesk/internal/infrastructure/database"
	"github.com/claimdesk/claimdesk/internal/interfaces/http/handlers/testutil"
	"github.com/claimdesk/claimdesk/internal/shared/config"
)

func newHealthDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", Database: "file::memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

func decodeHealth(t *testing.T, body []byte) HealthResponse {
	t.Helper()
	var resp testutil.APIResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	var health HealthResponse
	require.NoError(t, json.Unmarshal(resp.Data, &health))
	return health
}

func TestHealthCheck_DatabaseOnly(t *testing.T) {
	handler := NewHealthHandler(newHealthDB(t), nil)

	c, w := testutil.NewTestContext(http.MethodGet, "/health", nil)
	handler.HealthCheck(c)

	assert.Equal(t, http.StatusOK, w.Code)
	health := decodeHealth(t, w.Body.Bytes())
	assert.Equal(t, "ok", health.Status)
	assert.Empty(t, health.Redis)
}

func TestHealthCheck_RedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	handler := NewHealthHandler(newHealthDB(t), client)

	c, w := testutil.NewTestContext(http.MethodGet, "/health", nil)
	handler.HealthCheck(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeHealth(t, w.Body.Bytes()).Redis)

	mr.Close()

	c, w = testutil.NewTestContext(http.MethodGet, "/health", nil)
	handler.HealthCheck(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	health := decodeHealth(t, w.Body.Bytes())
	assert.Equal(t, "degraded", health.Status)
	assert.Equal(t, "unavailable", health.Redis)
}
