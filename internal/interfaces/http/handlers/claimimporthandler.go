package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/claimdesk/claimdesk/internal/application/claim/dto"
	"github.com/claimdesk/claimdesk/internal/application/claim/usecases"
	"github.com/claimdesk/claimdesk/internal/shared/errors"
	"github.com/claimdesk/claimdesk/internal/shared/logger"
	"github.com/claimdesk/claimdesk/internal/shared/utils"
)

type importClaimsUseCase interface {
	Execute(ctx context.Context, cmd usecases.ImportClaimsCommand) (*dto.ImportResultDTO, error)
}

// ClaimImportHandler accepts claim records exported from the legacy API.
type ClaimImportHandler struct {
	importClaimsUC importClaimsUseCase
	logger         logger.Interface
}

func NewClaimImportHandler(importClaimsUC importClaimsUseCase, logger logger.Interface) *ClaimImportHandler {
	return &ClaimImportHandler{
		importClaimsUC: importClaimsUC,
		logger:         logger,
	}
}

type ImportClaimsRequest struct {
	Records []map[string]any `json:"records" binding:"required,min=1"`
}

// ImportClaims stores legacy claim records
// @Summary Import legacy claims
// @Tags Claims
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body ImportClaimsRequest true "Legacy claim records"
// @Success 200 {object} utils.APIResponse{data=dto.ImportResultDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /claims/import [post]
func (h *ClaimImportHandler) ImportClaims(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	var req ImportClaimsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for import claims", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.importClaimsUC.Execute(c.Request.Context(), usecases.ImportClaimsCommand{
		Records: req.Records,
		Actor:   actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
