package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/claimdesk/claimdesk/internal/infrastructure/config"
	"github.com/claimdesk/claimdesk/internal/infrastructure/ratelimit"
	"github.com/claimdesk/claimdesk/internal/interfaces/http/middleware"
	"github.com/claimdesk/claimdesk/internal/interfaces/http/routes"
	"github.com/claimdesk/claimdesk/internal/shared/logger"
	"github.com/claimdesk/claimdesk/internal/shared/utils"

	_ "github.com/claimdesk/claimdesk/docs"
)

// Router represents the HTTP router configuration
type Router struct {
	*Container
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(ctx context.Context, gdb *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	utils.RegisterBindingValidators()

	c, err := NewContainer(ctx, gdb, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Router{Container: c}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.engine.GET("/health", r.healthHandler.HealthCheck)

	routes.SetupClaimRoutes(r.engine, &routes.ClaimRouteConfig{
		ClaimHandler:         r.claimHandler,
		ImportHandler:        r.claimImportHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
		RateLimiter:          r.rateLimiter,
		BulkLimit: ratelimit.RateLimitConfig{
			RequestsPerMinute: r.cfg.Claims.BulkRequestsPerMinute,
		},
	})

	routes.SetupPermissionRoutes(r.engine, &routes.PermissionRouteConfig{
		PermissionHandler:    r.permissionHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})

	routes.SetupRepaymentRoutes(r.engine, &routes.RepaymentRouteConfig{
		RepaymentHandler:     r.repaymentHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// NewServer builds the HTTP server for addr.
func (r *Router) NewServer(addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      r.engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
