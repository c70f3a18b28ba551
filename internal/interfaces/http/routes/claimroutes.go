package routes

import (
	"github.com/gin-gonic/gin"

	vo "github.com/claimdesk/claimdesk/internal/domain/permission/valueobjects"
	"github.com/claimdesk/claimdesk/internal/infrastructure/ratelimit"
	"github.com/claimdesk/claimdesk/internal/interfaces/http/handlers"
	"github.com/claimdesk/claimdesk/internal/interfaces/http/middleware"
	"github.com/claimdesk/claimdesk/internal/shared/constants"
)

type ClaimRouteConfig struct {
	ClaimHandler         *handlers.ClaimHandler
	ImportHandler        *handlers.ClaimImportHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	// RateLimiter is optional; bulk routes are unlimited without it.
	RateLimiter *middleware.RateLimiter
	BulkLimit   ratelimit.RateLimitConfig
}

// SetupClaimRoutes registers the claim endpoints. Transition endpoints only
// require authentication: the claim authorizer decides per claim.
func SetupClaimRoutes(engine *gin.Engine, config *ClaimRouteConfig) {
	claims := engine.Group("/claims")
	claims.Use(config.AuthMiddleware.RequireAuth())
	{
		claims.POST("",
			config.PermissionMiddleware.RequireCapability(vo.CapabilityRegisterClaim),
			config.ClaimHandler.RegisterClaim)
		claims.GET("",
			config.PermissionMiddleware.RequireCapability(vo.CapabilityViewClaims),
			config.ClaimHandler.ListClaims)

		bulk := []gin.HandlerFunc{}
		if config.RateLimiter != nil {
			bulk = append(bulk, config.RateLimiter.Limit(constants.RateLimitScopeBulk, config.BulkLimit))
		}
		bulk = append(bulk, config.ClaimHandler.BulkTransition)
		claims.POST("/bulk/:transition", bulk...)

		if config.ImportHandler != nil {
			claims.POST("/import",
				config.PermissionMiddleware.RequireCapability(vo.CapabilityRegisterClaim),
				config.ImportHandler.ImportClaims)
		}

		claims.GET("/by-number/:number",
			config.PermissionMiddleware.RequireCapability(vo.CapabilityViewClaims),
			config.ClaimHandler.GetClaimByNumber)

		claims.GET("/:id/actions",
			config.ClaimHandler.GetAvailableActions)
		claims.GET("/:id/history",
			config.PermissionMiddleware.RequireCapability(vo.CapabilityViewClaims),
			config.ClaimHandler.GetClaimHistory)
		claims.POST("/:id/transitions/:transition",
			config.ClaimHandler.TransitionClaim)

		claims.GET("/:id",
			config.PermissionMiddleware.RequireCapability(vo.CapabilityViewClaims),
			config.ClaimHandler.GetClaim)
	}
}
