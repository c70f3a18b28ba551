package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/claimdesk/claimdesk/internal/shared/utils"
)

type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewHealthHandler checks redis only when client is non-nil.
func NewHealthHandler(db *gorm.DB, client *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: client}
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis,omitempty"`
}

// HealthCheck reports dependency status
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} utils.APIResponse{data=HealthResponse}
// @Failure 503 {object} utils.APIResponse{data=HealthResponse}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{Status: "ok", Database: "ok"}
	status := http.StatusOK

	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		resp.Database = "unavailable"
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	if h.redis != nil {
		resp.Redis = "ok"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			resp.Redis = "unavailable"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
		}
	}

	utils.SuccessResponse(c, status, "", resp)
}
