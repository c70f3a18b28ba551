package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/claimdesk/claimdesk/internal/application/repayment/usecases"
	"github.com/claimdesk/claimdesk/internal/shared/errors"
	"github.com/claimdesk/claimdesk/internal/shared/logger"
	"github.com/claimdesk/claimdesk/internal/shared/utils"
)

type RepaymentHandler struct {
	projectScheduleUC usecases.ProjectScheduleExecutor
	logger            logger.Interface
}

func NewRepaymentHandler(projectScheduleUC usecases.ProjectScheduleExecutor, logger logger.Interface) *RepaymentHandler {
	return &RepaymentHandler{
		projectScheduleUC: projectScheduleUC,
		logger:            logger,
	}
}

// ProjectScheduleRequest takes either monthly_amount or principal.
type ProjectScheduleRequest struct {
	StartDate        string `json:"start_date" binding:"required"`
	TenureMonths     int    `json:"tenure_months" binding:"min=0"`
	MoratoriumMonths int    `json:"moratorium_months" binding:"min=0"`
	MonthlyAmount    string `json:"monthly_amount"`
	Principal        string `json:"principal"`
	Currency         string `json:"currency" binding:"omitempty,len=3"`
}

// ProjectSchedule projects a repayment schedule
// @Summary Project repayment schedule
// @Tags Repayments
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body ProjectScheduleRequest true "Schedule parameters"
// @Success 200 {object} utils.APIResponse{data=usecases.ProjectScheduleResult}
// @Failure 400 {object} utils.APIResponse
// @Router /repayments/projection [post]
func (h *RepaymentHandler) ProjectSchedule(c *gin.Context) {
	var req ProjectScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for project schedule", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.projectScheduleUC.Execute(c.Request.Context(), usecases.ProjectScheduleCommand{
		StartDate:        req.StartDate,
		TenureMonths:     req.TenureMonths,
		MoratoriumMonths: req.MoratoriumMonths,
		MonthlyAmount:    req.MonthlyAmount,
		Principal:        req.Principal,
		Currency:         req.Currency,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
