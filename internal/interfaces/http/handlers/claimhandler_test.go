package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claimdesk/claimdesk/internal/application/claim/dto"
	"github.com/claimdesk/claimdesk/internal/application/claim/usecases"
	vo "github.com/claimdesk/claimdesk/internal/domain/claim/valueobjects"
	"github.com/claimdesk/claimdesk/internal/domain/permission"
	"github.com/claimdesk/claimdesk/internal/interfaces/http/handlers/testutil"
	"github.com/claimdesk/claimdesk/internal/shared/errors"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockRegisterClaimUC struct {
	result *dto.ClaimDTO
	err    error
	cmd    usecases.RegisterClaimCommand
}

func (m *mockRegisterClaimUC) Execute(ctx context.Context, cmd usecases.RegisterClaimCommand) (*dto.ClaimDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockGetClaimUC struct {
	result *dto.ClaimDTO
	err    error
	query  usecases.GetClaimQuery
}

func (m *mockGetClaimUC) Execute(ctx context.Context, query usecases.GetClaimQuery) (*dto.ClaimDTO, error) {
	m.query = query
	return m.result, m.err
}

type mockListClaimsUC struct {
	result *usecases.ListClaimsResult
	err    error
	query  usecases.ListClaimsQuery
}

func (m *mockListClaimsUC) Execute(ctx context.Context, query usecases.ListClaimsQuery) (*usecases.ListClaimsResult, error) {
	m.query = query
	return m.result, m.err
}

type mockTransitionClaimUC struct {
	result *dto.ClaimDTO
	err    error
	cmd    usecases.TransitionClaimCommand
	called bool
}

func (m *mockTransitionClaimUC) Execute(ctx context.Context, cmd usecases.TransitionClaimCommand) (*dto.ClaimDTO, error) {
	m.called = true
	m.cmd = cmd
	return m.result, m.err
}

type mockBulkTransitionUC struct {
	result *dto.BulkResultDTO
	err    error
	cmd    usecases.BulkTransitionCommand
}

func (m *mockBulkTransitionUC) Execute(ctx context.Context, cmd usecases.BulkTransitionCommand) (*dto.BulkResultDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockAvailableActionsUC struct {
	result *usecases.AvailableActionsResult
	err    error
}

func (m *mockAvailableActionsUC) Execute(ctx context.Context, query usecases.AvailableActionsQuery) (*usecases.AvailableActionsResult, error) {
	return m.result, m.err
}

type mockClaimHistoryUC struct {
	result []*dto.AuditEntryDTO
	err    error
}

func (m *mockClaimHistoryUC) Execute(ctx context.Context, query usecases.ClaimHistoryQuery) ([]*dto.AuditEntryDTO, error) {
	return m.result, m.err
}

// =====================================================================
// Test helpers
// =====================================================================

type claimHandlerMocks struct {
	register   *mockRegisterClaimUC
	get        *mockGetClaimUC
	list       *mockListClaimsUC
	transition *mockTransitionClaimUC
	bulk       *mockBulkTransitionUC
	actions    *mockAvailableActionsUC
	history    *mockClaimHistoryUC
}

func newTestClaimHandler() (*ClaimHandler, *claimHandlerMocks) {
	m := &claimHandlerMocks{
		register:   &mockRegisterClaimUC{},
		get:        &mockGetClaimUC{},
		list:       &mockListClaimsUC{},
		transition: &mockTransitionClaimUC{},
		bulk:       &mockBulkTransitionUC{},
		actions:    &mockAvailableActionsUC{},
		history:    &mockClaimHistoryUC{},
	}
	h := NewClaimHandler(m.register, m.get, m.list, m.transition, m.bulk, m.actions, m.history, testutil.NewMockLogger())
	return h, m
}

func createTestClaimDTO() *dto.ClaimDTO {
	return &dto.ClaimDTO{
		ID:            "c0ffee00-0000-0000-0000-000000000001",
		ClaimNumber:   "CLM-000001",
		IMEI:          "356938035643809",
		ProductID:     "galaxy-s24",
		CustomerName:  "Ada Obi",
		RepairCost:    "45000.00",
		PaidAmount:    "0.00",
		Currency:      "NGN",
		Status:        "PENDING",
		Stage:         "PENDING",
		PaymentStatus: "UNPAID",
		Version:       1,
	}
}

// =====================================================================
// RegisterClaim
// =====================================================================

func TestClaimHandler_RegisterClaim_Success(t *testing.T) {
	handler, mocks := newTestClaimHandler()
	mocks.register.result = createTestClaimDTO()

	reqBody := RegisterClaimRequest{
		IMEI:         "356938035643809",
		ProductID:    "galaxy-s24",
		CustomerName: "Ada Obi",
		RepairCost:   "45000",
		Currency:     "ngn",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/claims", reqBody)
	testutil.SetAuthContext(c, "sc@example.com", "service-center")

	handler.RegisterClaim(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)

	var got dto.ClaimDTO
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, "CLM-000001", got.ClaimNumber)

	assert.Equal(t, "NGN", mocks.register.cmd.Currency)
	assert.Equal(t, "sc@example.com", mocks.register.cmd.Actor.UserID)
	assert.Equal(t, permission.RoleServiceCenter, mocks.register.cmd.Actor.Role)
}

func TestClaimHandler_RegisterClaim_InvalidRequest(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{name: "missing fields", body: map[string]any{"imei": "356938035643809"}},
		{name: "bad imei", body: map[string]any{"imei": "12345", "product_id": "p", "customer_name": "n", "repair_cost": "1"}},
		{name: "blank customer", body: map[string]any{"imei": "356938035643809", "product_id": "p", "customer_name": "   ", "repair_cost": "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newTestClaimHandler()
			c, w := testutil.NewTestContext(http.MethodPost, "/claims", tt.body)
			testutil.SetAuthContext(c, "sc@example.com", "service-center")

			handler.RegisterClaim(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, "validation_error", resp.Error.Type)
		})
	}
}

func TestClaimHandler_RegisterClaim_Unauthenticated(t *testing.T) {
	handler, _ := newTestClaimHandler()
	c, w := testutil.NewTestContext(http.MethodPost, "/claims", RegisterClaimRequest{})

	handler.RegisterClaim(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// =====================================================================
// GetClaim / ListClaims
// =====================================================================

func TestClaimHandler_GetClaim(t *testing.T) {
	handler, mocks := newTestClaimHandler()
	mocks.get.result = createTestClaimDTO()

	c, w := testutil.NewTestContext(http.MethodGet, "/claims/abc", nil)
	testutil.SetURLParam(c, "id", "abc")

	handler.GetClaim(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc", mocks.get.query.ClaimID)
}

func TestClaimHandler_GetClaim_NotFound(t *testing.T) {
	handler, mocks := newTestClaimHandler()
	mocks.get.err = errors.NewNotFoundError("claim not found")

	c, w := testutil.NewTestContext(http.MethodGet, "/claims/missing", nil)
	testutil.SetURLParam(c, "id", "missing")

	handler.GetClaim(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClaimHandler_GetClaimByNumber(t *testing.T) {
	handler, mocks := newTestClaimHandler()
	mocks.get.result = createTestClaimDTO()

	c, w := testutil.NewTestContext(http.MethodGet, "/claims/by-number/CLM-000001", nil)
	testutil.SetURLParam(c, "number", "CLM-000001")

	handler.GetClaimByNumber(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, mocks.get.query.ClaimID)
	assert.Equal(t, "CLM-000001", mocks.get.query.ClaimNumber)
}

func TestClaimHandler_ListClaims(t *testing.T) {
	handler, mocks := newTestClaimHandler()
	mocks.list.result = &usecases.ListClaimsResult{
		Claims:   []*dto.ClaimDTO{createTestClaimDTO()},
		Total:    41,
		Page:     2,
		PageSize: 20,
	}

	c, w := testutil.NewTestContext(http.MethodGet, "/claims", nil)
	testutil.SetQueryParams(c, map[string]string{
		"status":                 "COMPLETED",
		"authorized_for_payment": "true",
		"search":                 "Ada",
		"page":                   "2",
	})

	handler.ListClaims(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "COMPLETED", mocks.list.query.Status)
	assert.Equal(t, "Ada", mocks.list.query.Search)
	assert.Equal(t, 2, mocks.list.query.Page)
	require.NotNil(t, mocks.list.query.AuthorizedForPayment)
	assert.True(t, *mocks.list.query.AuthorizedForPayment)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var list struct {
		Total      int64 `json:"total"`
		TotalPages int   `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.Equal(t, int64(41), list.Total)
	assert.Equal(t, 3, list.TotalPages)
}

func TestClaimHandler_ListClaims_InvalidBool(t *testing.T) {
	handler, _ := newTestClaimHandler()

	c, w := testutil.NewTestContext(http.MethodGet, "/claims", nil)
	testutil.SetQueryParams(c, map[string]string{"authorized_for_payment": "maybe"})

	handler.ListClaims(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// =====================================================================
// TransitionClaim
// =====================================================================

func TestClaimHandler_TransitionClaim_Success(t *testing.T) {
	tests := []struct {
		name     string
		param    string
		body     any
		expected vo.Transition
	}{
		{name: "approve without body", param: "approve", expected: vo.TransitionApprove},
		{name: "reject with reason", param: "reject", body: TransitionRequest{Reason: "water damage"}, expected: vo.TransitionReject},
		{name: "snake case alias", param: "authorize_payment", expected: vo.TransitionAuthorizePayment},
		{name: "execute payment", param: "execute-payment", body: TransitionRequest{TransactionReference: "TRX-99881"}, expected: vo.TransitionExecutePayment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mocks := newTestClaimHandler()
			mocks.transition.result = createTestClaimDTO()

			c, w := testutil.NewTestContext(http.MethodPost, "/claims/abc/transitions/"+tt.param, tt.body)
			testutil.SetAuthContext(c, "admin@example.com", "admin")
			testutil.SetURLParam(c, "id", "abc")
			testutil.SetURLParam(c, "transition", tt.param)

			handler.TransitionClaim(c)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.expected, mocks.transition.cmd.Transition)
			assert.Equal(t, "abc", mocks.transition.cmd.ClaimID)
			if req, ok := tt.body.(TransitionRequest); ok {
				assert.Equal(t, req.Reason, mocks.transition.cmd.Reason)
				assert.Equal(t, req.TransactionReference, mocks.transition.cmd.TransactionReference)
			}
		})
	}
}

func TestClaimHandler_TransitionClaim_UnknownTransition(t *testing.T) {
	handler, mocks := newTestClaimHandler()

	c, w := testutil.NewTestContext(http.MethodPost, "/claims/abc/transitions/teleport", nil)
	testutil.SetAuthContext(c, "admin@example.com", "admin")
	testutil.SetURLParam(c, "id", "abc")
	testutil.SetURLParam(c, "transition", "teleport")

	handler.TransitionClaim(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, mocks.transition.called)
}

func TestClaimHandler_TransitionClaim_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not permitted", err: errors.NewForbiddenError("not permitted"), status: http.StatusForbidden},
		{name: "invalid state", err: errors.NewInvalidStateError("claim is not pending"), status: http.StatusConflict},
		{name: "missing input", err: errors.NewValidationError("reason is required"), status: http.StatusBadRequest},
		{name: "not found", err: errors.NewNotFoundError("claim not found"), status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mocks := newTestClaimHandler()
			mocks.transition.err = tt.err

			c, w := testutil.NewTestContext(http.MethodPost, "/claims/abc/transitions/approve", nil)
			testutil.SetAuthContext(c, "partner@example.com", "samsung-partners")
			testutil.SetURLParam(c, "id", "abc")
			testutil.SetURLParam(c, "transition", "approve")

			handler.TransitionClaim(c)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

// =====================================================================
// BulkTransition
// =====================================================================

func TestClaimHandler_BulkTransition(t *testing.T) {
	handler, mocks := newTestClaimHandler()
	mocks.bulk.result = &dto.BulkResultDTO{
		Transition: "Approve",
		Successful: 1,
		Failed:     1,
		Items: []*dto.BulkItemDTO{
			{ClaimID: "a", OK: true},
			{ClaimID: "b", OK: false, Error: "invalid_transition"},
		},
	}

	body := BulkTransitionRequest{ClaimIDs: []string{"a", "b"}, Notes: "batch"}
	c, w := testutil.NewTestContext(http.MethodPost, "/claims/bulk/approve", body)
	testutil.SetAuthContext(c, "admin@example.com", "admin")
	testutil.SetURLParam(c, "transition", "approve")

	handler.BulkTransition(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"a", "b"}, mocks.bulk.cmd.ClaimIDs)
	assert.Equal(t, vo.TransitionApprove, mocks.bulk.cmd.Transition)
	assert.Equal(t, "batch", mocks.bulk.cmd.Notes)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var result dto.BulkResultDTO
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "b", result.Items[1].ClaimID)
}

func TestClaimHandler_BulkTransition_EmptyIDs(t *testing.T) {
	handler, _ := newTestClaimHandler()

	c, w := testutil.NewTestContext(http.MethodPost, "/claims/bulk/approve", BulkTransitionRequest{ClaimIDs: []string{}})
	testutil.SetAuthContext(c, "admin@example.com", "admin")
	testutil.SetURLParam(c, "transition", "approve")

	handler.BulkTransition(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// =====================================================================
// Actions and history
// =====================================================================

func TestClaimHandler_GetAvailableActions(t *testing.T) {
	handler, mocks := newTestClaimHandler()
	mocks.actions.result = &usecases.AvailableActionsResult{
		ClaimID: "abc",
		Stage:   "PENDING",
		Actions: []*dto.DecisionDTO{
			{Transition: "Approve", Allowed: true, Capability: "canApproveClaim", RequiredInputs: []string{}},
			{Transition: "Reject", Allowed: true, Capability: "canRejectClaim", RequiredInputs: []string{"reason"}},
		},
	}

	c, w := testutil.NewTestContext(http.MethodGet, "/claims/abc/actions", nil)
	testutil.SetAuthContext(c, "admin@example.com", "admin")
	testutil.SetURLParam(c, "id", "abc")

	handler.GetAvailableActions(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var got AvailableActionsResponse
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, "PENDING", got.Stage)
	require.Len(t, got.Actions, 2)
	assert.Equal(t, []string{"reason"}, got.Actions[1].RequiredInputs)
}

func TestClaimHandler_GetClaimHistory(t *testing.T) {
	handler, mocks := newTestClaimHandler()
	mocks.history.result = []*dto.AuditEntryDTO{
		{ID: "1", ClaimID: "abc", Transition: "Approve", FromStatus: "PENDING", ToStatus: "APPROVED"},
	}

	c, w := testutil.NewTestContext(http.MethodGet, "/claims/abc/history", nil)
	testutil.SetURLParam(c, "id", "abc")

	handler.GetClaimHistory(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var entries []dto.AuditEntryDTO
	require.NoError(t, json.Unmarshal(resp.Data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "APPROVED", entries[0].ToStatus)
}
