package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claimdesk/claimdesk/internal/shared/errors"
)

type paymentForm struct {
	Reference string `json:"transaction_reference" validate:"required,txref"`
	IMEI      string `json:"imei" validate:"omitempty,imei"`
	Reason    string `json:"reason" validate:"omitempty,notblank"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		form    paymentForm
		wantErr string
	}{
		{
			name: "valid",
			form: paymentForm{Reference: "TXN-0001", IMEI: "356938035643809"},
		},
		{
			name:    "short reference",
			form:    paymentForm{Reference: "TX1"},
			wantErr: "transaction_reference must be at least 5 characters long",
		},
		{
			name:    "padded reference is trimmed",
			form:    paymentForm{Reference: "  ab  "},
			wantErr: "transaction_reference must be at least 5 characters long",
		},
		{
			name:    "bad imei",
			form:    paymentForm{Reference: "TXN-0001", IMEI: "35693803564380X"},
			wantErr: "imei must be a 15-digit IMEI",
		},
		{
			name:    "blank reason",
			form:    paymentForm{Reference: "TXN-0001", Reason: "   "},
			wantErr: "reason is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.form)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, ValidateID("abc"))
	assert.Error(t, ValidateID("  "))
}
