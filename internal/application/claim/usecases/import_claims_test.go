package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claimdesk/claimdesk/internal/application/claim/dto"
	"github.com/claimdesk/claimdesk/internal/domain/claim"
	"github.com/claimdesk/claimdesk/internal/domain/permission"
	apperrors "github.com/claimdesk/claimdesk/internal/shared/errors"
	"github.com/claimdesk/claimdesk/internal/shared/logger"
)

func legacyRecords() []map[string]any {
	return []map[string]any{
		{
			"_id":            "legacy-1",
			"claimNumber":    "CLM-000099",
			"deviceImei":     "356938035643809",
			"product":        map[string]any{"id": "galaxy-s23"},
			"customerName":   "Ngozi Eze",
			"wacsRepairCost": "52,500.50",
			"status":         "AUTHORIZED",
		},
		{
			"id":           "legacy-2",
			"imei":         "356938035643809",
			"productId":    "galaxy-a55",
			"customerName": "Tunde Bello",
			"repairCost":   12000,
		},
		{"id": "legacy-3", "status": "ARCHIVED"},
	}
}

func TestImportClaimsUseCase_Execute(t *testing.T) {
	var saved []*claim.Claim
	repo := &mockClaimRepository{
		SaveFunc: func(ctx context.Context, c *claim.Claim) error {
			saved = append(saved, c)
			return nil
		},
	}
	uc := NewImportClaimsUseCase(repo, claim.NewMemoryNumberGenerator("CLM", 500), logger.NewNopLogger())

	got, err := uc.Execute(context.Background(), ImportClaimsCommand{
		Records: legacyRecords(),
		Actor:   actor(permission.RoleAdmin),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, got.Imported)
	assert.Equal(t, 1, got.Failed)
	require.Len(t, got.Items, 3)
	require.Len(t, saved, 2)

	first := got.Items[0]
	assert.True(t, first.OK)
	assert.Equal(t, "legacy-1", first.ClaimID)
	assert.Equal(t, "CLM-000099", first.Claim.ClaimNumber)
	assert.Equal(t, "52500.50", first.Claim.RepairCost)
	assert.True(t, first.Claim.AuthorizedForPayment)

	second := got.Items[1]
	assert.True(t, second.OK)
	assert.Equal(t, "CLM-000500", second.Claim.ClaimNumber, "records without a number get a fresh one")
	assert.Equal(t, "CLM-000500", saved[1].Number())
	assert.NotContains(t, saved[1].Metadata(), "claimNumber")

	third := got.Items[2]
	assert.False(t, third.OK)
	assert.Equal(t, 2, third.Index)
	assert.Equal(t, dto.ImportErrorInvalid, third.Error)
	assert.Nil(t, third.Claim)
}

func TestImportClaimsUseCase_Execute_SaveFailures(t *testing.T) {
	repo := &mockClaimRepository{
		SaveFunc: func(ctx context.Context, c *claim.Claim) error {
			if c.ID() == "legacy-1" {
				return errors.New("Error 1062: Duplicate entry 'CLM-000099' for key 'claim_number'")
			}
			return errors.New("dial tcp 10.0.0.5:3306: connection refused")
		},
	}
	uc := NewImportClaimsUseCase(repo, claim.NewMemoryNumberGenerator("CLM", 1), logger.NewNopLogger())

	got, err := uc.Execute(context.Background(), ImportClaimsCommand{
		Records: legacyRecords()[:2],
		Actor:   actor(permission.RoleAdmin),
	})

	require.NoError(t, err)
	assert.Zero(t, got.Imported)
	assert.Equal(t, 2, got.Failed)
	assert.Equal(t, dto.ImportErrorDuplicate, got.Items[0].Error)
	assert.Equal(t, dto.ImportErrorInternal, got.Items[1].Error)
	assert.Equal(t, "unexpected error", got.Items[1].Message)
}

func TestImportClaimsUseCase_Execute_RejectsRequest(t *testing.T) {
	uc := NewImportClaimsUseCase(&mockClaimRepository{}, claim.NewMemoryNumberGenerator("CLM", 1), logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), ImportClaimsCommand{Records: legacyRecords()})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeUnauthorized, apperrors.GetAppError(err).Type)

	_, err = uc.Execute(context.Background(), ImportClaimsCommand{Actor: actor(permission.RoleAdmin)})
	assert.True(t, apperrors.IsValidationError(err))

	tooMany := make([]map[string]any, MaxImportRecords+1)
	_, err = uc.Execute(context.Background(), ImportClaimsCommand{Records: tooMany, Actor: actor(permission.RoleAdmin)})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestImportClaimsUseCase_Execute_NilRecord(t *testing.T) {
	uc := NewImportClaimsUseCase(&mockClaimRepository{}, claim.NewMemoryNumberGenerator("CLM", 1), logger.NewNopLogger())

	got, err := uc.Execute(context.Background(), ImportClaimsCommand{
		Records: []map[string]any{nil},
		Actor:   actor(permission.RoleAdmin),
	})

	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, dto.ImportErrorInvalid, got.Items[0].Error)
}
