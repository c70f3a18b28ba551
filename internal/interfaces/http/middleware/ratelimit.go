package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/claimdesk/claimdesk/internal/infrastructure/ratelimit"
	"github.com/claimdesk/claimdesk/internal/shared/logger"
	"github.com/claimdesk/claimdesk/internal/shared/utils"
)

// RateLimiter limits requests per authenticated user within a scope.
type RateLimiter struct {
	limiter ratelimit.RateLimiter
	logger  logger.Interface
}

func NewRateLimiter(limiter ratelimit.RateLimiter, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		logger:  logger,
	}
}

// Limit must run after RequireAuth. Requests are let through when the
// limiter backend fails.
func (rl *RateLimiter) Limit(scope string, config ratelimit.RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := scope + ":" + c.ClientIP()
		if userID, _, ok := Identity(c); ok {
			key = scope + ":" + userID
		}

		allowed, err := rl.limiter.Allow(c.Request.Context(), key, config)
		if err != nil {
			rl.logger.Warnw("rate limiter unavailable", "scope", scope, "error", err)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
