package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/claimdesk/claimdesk/internal/domain/permission"
	vo "github.com/claimdesk/claimdesk/internal/domain/permission/valueobjects"
	"github.com/claimdesk/claimdesk/internal/shared/logger"
	"github.com/claimdesk/claimdesk/internal/shared/utils"
)

// CapabilityChecker answers capability questions against the current
// permission table.
type CapabilityChecker interface {
	HasCapability(role permission.RoleKey, c vo.Capability, user permission.UserKey) bool
}

type PermissionMiddleware struct {
	checker CapabilityChecker
	logger  logger.Interface
}

func NewPermissionMiddleware(checker CapabilityChecker, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		checker: checker,
		logger:  logger,
	}
}

// RequireCapability must run after RequireAuth.
func (m *PermissionMiddleware) RequireCapability(capability vo.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, ok := Identity(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
			c.Abort()
			return
		}

		if !m.checker.HasCapability(permission.NewRoleKey(role), capability, permission.NewUserKey(userID)) {
			m.logger.Warnw("permission denied", "user_id", userID, "role", role, "capability", capability)
			utils.ErrorResponse(c, http.StatusForbidden, "insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
