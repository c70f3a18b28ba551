package usecases

import (
	"context"

	"github.com/claimdesk/claimdesk/internal/application/claim/dto"
	"github.com/claimdesk/claimdesk/internal/domain/claim"
	"github.com/claimdesk/claimdesk/internal/shared/errors"
	"github.com/claimdesk/claimdesk/internal/shared/logger"
)

type ClaimHistoryQuery struct {
	ClaimID string
}

type ClaimHistoryUseCase struct {
	claimRepo claim.Repository
	auditRepo claim.AuditRepository
	logger    logger.Interface
}

func NewClaimHistoryUseCase(
	claimRepo claim.Repository,
	auditRepo claim.AuditRepository,
	logger logger.Interface,
) *ClaimHistoryUseCase {
	return &ClaimHistoryUseCase{
		claimRepo: claimRepo,
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// Execute returns the claim's audit trail, oldest first.
func (uc *ClaimHistoryUseCase) Execute(ctx context.Context, query ClaimHistoryQuery) ([]*dto.AuditEntryDTO, error) {
	if query.ClaimID == "" {
		return nil, errors.NewValidationError("claim ID is required")
	}

	if _, err := uc.claimRepo.GetByID(ctx, query.ClaimID); err != nil {
		uc.logger.Errorw("failed to get claim", "claim_id", query.ClaimID, "error", err)
		return nil, toAppError(err)
	}

	entries, err := uc.auditRepo.ListByClaim(ctx, query.ClaimID)
	if err != nil {
		uc.logger.Errorw("failed to list claim history", "claim_id", query.ClaimID, "error", err)
		return nil, errors.NewInternalError("failed to list claim history")
	}

	return dto.ToAuditEntryDTOs(entries), nil
}
