package routes

import (
	"github.com/gin-gonic/gin"

	vo "github.com/claimdesk/claimdesk/internal/domain/permission/valueobjects"
	"github.com/claimdesk/claimdesk/internal/interfaces/http/handlers"
	"github.com/claimdesk/claimdesk/internal/interfaces/http/middleware"
)

type RepaymentRouteConfig struct {
	RepaymentHandler     *handlers.RepaymentHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupRepaymentRoutes(engine *gin.Engine, config *RepaymentRouteConfig) {
	repayments := engine.Group("/repayments")
	repayments.Use(
		config.AuthMiddleware.RequireAuth(),
		config.PermissionMiddleware.RequireCapability(vo.CapabilityViewRepaymentSchedules),
	)
	{
		repayments.POST("/projection", config.RepaymentHandler.ProjectSchedule)
	}
}
