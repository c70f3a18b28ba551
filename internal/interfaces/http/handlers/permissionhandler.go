package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/claimdesk/claimdesk/internal/domain/permission"
	"github.com/claimdesk/claimdesk/internal/shared/errors"
	"github.com/claimdesk/claimdesk/internal/shared/logger"
	"github.com/claimdesk/claimdesk/internal/shared/utils"
)

type PermissionHandler struct {
	service permissionService
	logger  logger.Interface
}

func NewPermissionHandler(service permissionService, logger logger.Interface) *PermissionHandler {
	return &PermissionHandler{
		service: service,
		logger:  logger,
	}
}

type MyPermissionsResponse struct {
	UserID      string          `json:"user_id"`
	Role        string          `json:"role"`
	Permissions map[string]bool `json:"permissions"`
}

type PermissionTableResponse struct {
	Roles     map[string][]string        `json:"roles"`
	Overrides map[string]map[string]bool `json:"overrides"`
}

type OverrideResponse struct {
	UserID    string          `json:"user_id"`
	Overrides map[string]bool `json:"overrides"`
}

// SetOverrideRequest replaces a user's override entries. An empty map
// clears them.
type SetOverrideRequest struct {
	Overrides map[string]bool `json:"overrides" binding:"required"`
}

// GetMyPermissions returns the resolved permission set of the caller
// @Summary Get my permissions
// @Tags Permissions
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=MyPermissionsResponse}
// @Failure 401 {object} utils.APIResponse
// @Router /me/permissions [get]
func (h *PermissionHandler) GetMyPermissions(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	set := h.service.Resolve(c.Request.Context(), actor.Role, actor.UserKey())

	utils.SuccessResponse(c, http.StatusOK, "", MyPermissionsResponse{
		UserID:      actor.UserID,
		Role:        actor.Role.String(),
		Permissions: set.ToMap(),
	})
}

func (h *PermissionHandler) GetPermissionTable(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "", toPermissionTableResponse(h.service.Table()))
}

func (h *PermissionHandler) GetOverride(c *gin.Context) {
	user := permission.NewUserKey(c.Param("user"))
	if user.IsZero() {
		utils.ErrorResponse(c, http.StatusBadRequest, "user email is required")
		return
	}

	o, ok := h.service.GetOverride(user)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewNotFoundError("no permission override for user", user.String()))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", OverrideResponse{
		UserID:    user.String(),
		Overrides: o.ToMap(),
	})
}

// SetOverride replaces the override entries of a user
// @Summary Set permission override
// @Tags Permissions
// @Accept json
// @Produce json
// @Security Bearer
// @Param user path string true "User email"
// @Param request body SetOverrideRequest true "Capability overrides"
// @Success 200 {object} utils.APIResponse{data=OverrideResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /admin/permissions/overrides/{user} [put]
func (h *PermissionHandler) SetOverride(c *gin.Context) {
	email := c.Param("user")

	var req SetOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for set override", "user", email, "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	o, err := h.service.SetOverride(c.Request.Context(), email, req.Overrides)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Permission override updated", OverrideResponse{
		UserID:    permission.NewUserKey(email).String(),
		Overrides: o.ToMap(),
	})
}

func (h *PermissionHandler) DeleteOverride(c *gin.Context) {
	if err := h.service.DeleteOverride(c.Request.Context(), c.Param("user")); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// ReloadPermissions re-reads the permission table from the policy store.
func (h *PermissionHandler) ReloadPermissions(c *gin.Context) {
	if err := h.service.Load(c.Request.Context()); err != nil {
		h.logger.Errorw("failed to reload permissions", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Permissions reloaded", toPermissionTableResponse(h.service.Table()))
}

func toPermissionTableResponse(t *permission.Table) PermissionTableResponse {
	resp := PermissionTableResponse{
		Roles:     map[string][]string{},
		Overrides: map[string]map[string]bool{},
	}
	if t == nil {
		return resp
	}

	for _, role := range t.Roles() {
		grants := t.RoleGrants(role)
		names := make([]string, 0, len(grants))
		for _, g := range grants {
			names = append(names, g.String())
		}
		resp.Roles[role.String()] = names
	}
	for _, user := range t.Users() {
		if o, ok := t.Override(user); ok {
			resp.Overrides[user.String()] = o.ToMap()
		}
	}
	return resp
}
