package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/claimdesk/claimdesk/internal/application/claim/dto"
	"github.com/claimdesk/claimdesk/internal/application/claim/usecases"
	vo "github.com/claimdesk/claimdesk/internal/domain/claim/valueobjects"
	"github.com/claimdesk/claimdesk/internal/domain/permission"
	"github.com/claimdesk/claimdesk/internal/interfaces/http/middleware"
	"github.com/claimdesk/claimdesk/internal/shared/errors"
	"github.com/claimdesk/claimdesk/internal/shared/logger"
	"github.com/claimdesk/claimdesk/internal/shared/utils"
)

var (
	_ = dto.ClaimDTO{}
	_ = dto.BulkResultDTO{}
)

type ClaimHandler struct {
	registerClaimUC    registerClaimUseCase
	getClaimUC         getClaimUseCase
	listClaimsUC       listClaimsUseCase
	transitionClaimUC  transitionClaimUseCase
	bulkTransitionUC   bulkTransitionUseCase
	availableActionsUC availableActionsUseCase
	claimHistoryUC     claimHistoryUseCase
	logger             logger.Interface
}

func NewClaimHandler(
	registerClaimUC registerClaimUseCase,
	getClaimUC getClaimUseCase,
	listClaimsUC listClaimsUseCase,
	transitionClaimUC transitionClaimUseCase,
	bulkTransitionUC bulkTransitionUseCase,
	availableActionsUC availableActionsUseCase,
	claimHistoryUC claimHistoryUseCase,
	logger logger.Interface,
) *ClaimHandler {
	return &ClaimHandler{
		registerClaimUC:    registerClaimUC,
		getClaimUC:         getClaimUC,
		listClaimsUC:       listClaimsUC,
		transitionClaimUC:  transitionClaimUC,
		bulkTransitionUC:   bulkTransitionUC,
		availableActionsUC: availableActionsUC,
		claimHistoryUC:     claimHistoryUC,
		logger:             logger,
	}
}

type RegisterClaimRequest struct {
	IMEI            string         `json:"imei" binding:"required,imei"`
	ProductID       string         `json:"product_id" binding:"required,notblank"`
	CustomerName    string         `json:"customer_name" binding:"required,notblank"`
	CustomerPhone   string         `json:"customer_phone"`
	CustomerEmail   string         `json:"customer_email" binding:"omitempty,email"`
	ServiceCenterID string         `json:"service_center_id"`
	RepairCost      string         `json:"repair_cost" binding:"required"`
	Currency        string         `json:"currency" binding:"omitempty,len=3"`
	Metadata        map[string]any `json:"metadata"`
}

// TransitionRequest carries the inputs of a single transition. Which
// fields are required depends on the transition.
type TransitionRequest struct {
	Notes                string `json:"notes"`
	Reason               string `json:"reason"`
	TransactionReference string `json:"transaction_reference"`
}

type BulkTransitionRequest struct {
	ClaimIDs             []string `json:"claim_ids" binding:"required,min=1,dive,required"`
	Notes                string   `json:"notes"`
	Reason               string   `json:"reason"`
	TransactionReference string   `json:"transaction_reference"`
}

type AvailableActionsResponse struct {
	ClaimID string             `json:"claim_id"`
	Stage   string             `json:"stage"`
	Actions []*dto.DecisionDTO `json:"actions"`
}

// RegisterClaim registers a new claim
// @Summary Register claim
// @Tags Claims
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body RegisterClaimRequest true "Claim details"
// @Success 201 {object} utils.APIResponse{data=dto.ClaimDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /claims [post]
func (h *ClaimHandler) RegisterClaim(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	var req RegisterClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for register claim", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	cmd := usecases.RegisterClaimCommand{
		IMEI:            req.IMEI,
		ProductID:       req.ProductID,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   req.CustomerEmail,
		ServiceCenterID: req.ServiceCenterID,
		RepairCost:      req.RepairCost,
		Currency:        strings.ToUpper(req.Currency),
		Metadata:        req.Metadata,
		Actor:           actor,
	}

	result, err := h.registerClaimUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Claim registered successfully")
}

// GetClaim returns one claim by ID
// @Summary Get claim
// @Tags Claims
// @Produce json
// @Security Bearer
// @Param id path string true "Claim ID"
// @Success 200 {object} utils.APIResponse{data=dto.ClaimDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /claims/{id} [get]
func (h *ClaimHandler) GetClaim(c *gin.Context) {
	claimID := c.Param("id")
	if err := utils.ValidateID(claimID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getClaimUC.Execute(c.Request.Context(), usecases.GetClaimQuery{ClaimID: claimID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *ClaimHandler) GetClaimByNumber(c *gin.Context) {
	number := strings.TrimSpace(c.Param("number"))
	if number == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "claim number is required")
		return
	}

	result, err := h.getClaimUC.Execute(c.Request.Context(), usecases.GetClaimQuery{ClaimNumber: number})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListClaims lists claims with filters and pagination
// @Summary List claims
// @Tags Claims
// @Produce json
// @Security Bearer
// @Param status query string false "Claim status"
// @Param payment_status query string false "Payment status"
// @Param authorized_for_payment query bool false "Authorized for payment"
// @Param service_center_id query string false "Service center"
// @Param search query string false "Search claim number, IMEI or customer name"
// @Param page query int false "Page" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Router /claims [get]
func (h *ClaimHandler) ListClaims(c *gin.Context) {
	p := utils.ParsePagination(c)

	query := usecases.ListClaimsQuery{
		Status:          c.Query("status"),
		PaymentStatus:   c.Query("payment_status"),
		ServiceCenterID: c.Query("service_center_id"),
		Search:          c.Query("search"),
		Page:            p.Page,
		PageSize:        p.PageSize,
		SortBy:          c.Query("sort_by"),
		SortOrder:       c.Query("sort_order"),
	}

	if raw := c.Query("authorized_for_payment"); raw != "" {
		authorized, err := strconv.ParseBool(raw)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid authorized_for_payment", err.Error()))
			return
		}
		query.AuthorizedForPayment = &authorized
	}

	result, err := h.listClaimsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Claims, result.Total, result.Page, result.PageSize)
}

// TransitionClaim applies one lifecycle transition to a claim
// @Summary Transition claim
// @Description transition is one of approve, reject, complete, authorize-payment, execute-payment
// @Tags Claims
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Claim ID"
// @Param transition path string true "Transition"
// @Param request body TransitionRequest false "Transition inputs"
// @Success 200 {object} utils.APIResponse{data=dto.ClaimDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /claims/{id}/transitions/{transition} [post]
func (h *ClaimHandler) TransitionClaim(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	claimID := c.Param("id")
	if err := utils.ValidateID(claimID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	transition, err := vo.ParseTransition(c.Param("transition"))
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("unknown transition", err.Error()))
		return
	}

	var req TransitionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warnw("invalid request body for transition claim",
				"claim_id", claimID,
				"transition", transition,
				"error", err)
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
			return
		}
	}

	result, err := h.transitionClaimUC.Execute(c.Request.Context(), usecases.TransitionClaimCommand{
		ClaimID:              claimID,
		Transition:           transition,
		Actor:                actor,
		Notes:                req.Notes,
		Reason:               req.Reason,
		TransactionReference: req.TransactionReference,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Claim updated successfully", result)
}

// BulkTransition applies one transition to many claims. Per-claim failures
// are reported in the result and do not fail the request.
// @Summary Bulk transition claims
// @Tags Claims
// @Accept json
// @Produce json
// @Security Bearer
// @Param transition path string true "Transition"
// @Param request body BulkTransitionRequest true "Claim IDs and inputs"
// @Success 200 {object} utils.APIResponse{data=dto.BulkResultDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /claims/bulk/{transition} [post]
func (h *ClaimHandler) BulkTransition(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	transition, err := vo.ParseTransition(c.Param("transition"))
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("unknown transition", err.Error()))
		return
	}

	var req BulkTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for bulk transition", "transition", transition, "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.bulkTransitionUC.Execute(c.Request.Context(), usecases.BulkTransitionCommand{
		ClaimIDs:             req.ClaimIDs,
		Transition:           transition,
		Actor:                actor,
		Notes:                req.Notes,
		Reason:               req.Reason,
		TransactionReference: req.TransactionReference,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *ClaimHandler) GetAvailableActions(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	claimID := c.Param("id")
	if err := utils.ValidateID(claimID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.availableActionsUC.Execute(c.Request.Context(), usecases.AvailableActionsQuery{
		ClaimID: claimID,
		Actor:   actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", AvailableActionsResponse{
		ClaimID: result.ClaimID,
		Stage:   result.Stage,
		Actions: result.Actions,
	})
}

func (h *ClaimHandler) GetClaimHistory(c *gin.Context) {
	claimID := c.Param("id")
	if err := utils.ValidateID(claimID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.claimHistoryUC.Execute(c.Request.Context(), usecases.ClaimHistoryQuery{ClaimID: claimID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// actorFromContext writes a 401 and returns false when the request is not
// authenticated.
func actorFromContext(c *gin.Context) (usecases.Actor, bool) {
	userID, role, ok := middleware.Identity(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return usecases.Actor{}, false
	}
	return usecases.Actor{
		UserID: userID,
		Role:   permission.NewRoleKey(role),
	}, true
}
