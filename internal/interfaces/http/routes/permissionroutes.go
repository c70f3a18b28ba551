package routes

import (
	"github.com/gin-gonic/gin"

	vo "github.com/claimdesk/claimdesk/internal/domain/permission/valueobjects"
	"github.com/claimdesk/claimdesk/internal/interfaces/http/handlers"
	"github.com/claimdesk/claimdesk/internal/interfaces/http/middleware"
)

type PermissionRouteConfig struct {
	PermissionHandler    *handlers.PermissionHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupPermissionRoutes(engine *gin.Engine, config *PermissionRouteConfig) {
	me := engine.Group("/me")
	me.Use(config.AuthMiddleware.RequireAuth())
	{
		me.GET("/permissions", config.PermissionHandler.GetMyPermissions)
	}

	admin := engine.Group("/admin/permissions")
	admin.Use(
		config.AuthMiddleware.RequireAuth(),
		config.PermissionMiddleware.RequireCapability(vo.CapabilityManagePermissions),
	)
	{
		admin.GET("", config.PermissionHandler.GetPermissionTable)
		admin.POST("/reload", config.PermissionHandler.ReloadPermissions)
		admin.GET("/overrides/:user", config.PermissionHandler.GetOverride)
		admin.PUT("/overrides/:user", config.PermissionHandler.SetOverride)
		admin.DELETE("/overrides/:user", config.PermissionHandler.DeleteOverride)
	}
}
