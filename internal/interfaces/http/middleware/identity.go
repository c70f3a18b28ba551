package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/claimdesk/claimdesk/internal/shared/constants"
)

// Identity returns the user ID and role set by RequireAuth.
func Identity(c *gin.Context) (userID, role string, ok bool) {
	userID = c.GetString(constants.ContextKeyUserID)
	if userID == "" {
		return "", "", false
	}
	return userID, c.GetString(constants.ContextKeyUserRole), true
}
