package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claimdesk/claimdesk/internal/application/repayment/usecases"
	"github.com/claimdesk/claimdesk/internal/interfaces/http/handlers/testutil"
)

func newTestRepaymentHandler() *RepaymentHandler {
	uc := usecases.NewProjectScheduleUseCase("NGN", "en-NG", testutil.NewMockLogger())
	return NewRepaymentHandler(uc, testutil.NewMockLogger())
}

func TestRepaymentHandler_ProjectSchedule(t *testing.T) {
	handler := newTestRepaymentHandler()

	body := ProjectScheduleRequest{
		StartDate:     "2024-01-31",
		TenureMonths:  3,
		MonthlyAmount: "10000",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/repayments/projection", body)

	handler.ProjectSchedule(c)

	require.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var got usecases.ProjectScheduleResult
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	require.Len(t, got.Entries, 3)
	assert.Equal(t, "2024-01-31", got.Entries[0].DueDate)
	assert.Equal(t, "2024-02-29", got.Entries[1].DueDate)
	assert.Equal(t, "30000.00", got.Total)
}

func TestRepaymentHandler_ProjectSchedule_ZeroTenure(t *testing.T) {
	handler := newTestRepaymentHandler()

	body := ProjectScheduleRequest{StartDate: "2024-01-01", MonthlyAmount: "500"}
	c, w := testutil.NewTestContext(http.MethodPost, "/repayments/projection", body)

	handler.ProjectSchedule(c)

	require.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var got usecases.ProjectScheduleResult
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Empty(t, got.Entries)
}

func TestRepaymentHandler_ProjectSchedule_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{name: "missing start date", body: map[string]any{"tenure_months": 3, "monthly_amount": "1"}},
		{name: "negative tenure", body: map[string]any{"start_date": "2024-01-01", "tenure_months": -1, "monthly_amount": "1"}},
		{name: "both amounts", body: ProjectScheduleRequest{StartDate: "2024-01-01", TenureMonths: 1, MonthlyAmount: "1", Principal: "1"}},
		{name: "bad date", body: ProjectScheduleRequest{StartDate: "01/01/2024", TenureMonths: 1, MonthlyAmount: "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestRepaymentHandler()
			c, w := testutil.NewTestContext(http.MethodPost, "/repayments/projection", tt.body)

			handler.ProjectSchedule(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
