package usecases

import (
	"context"

	"github.com/claimdesk/claimdesk/internal/application/claim/dto"
	"github.com/claimdesk/claimdesk/internal/domain/claim"
	"github.com/claimdesk/claimdesk/internal/shared/errors"
	"github.com/claimdesk/claimdesk/internal/shared/logger"
	"github.com/claimdesk/claimdesk/internal/shared/services/markdown"
)

// GetClaimQuery looks a claim up by ID or, when ID is empty, by number.
type GetClaimQuery struct {
	ClaimID     string
	ClaimNumber string
}

type GetClaimUseCase struct {
	claimRepo claim.Repository
	renderer  markdown.Renderer
	logger    logger.Interface
}

func NewGetClaimUseCase(
	claimRepo claim.Repository,
	renderer markdown.Renderer,
	logger logger.Interface,
) *GetClaimUseCase {
	return &GetClaimUseCase{
		claimRepo: claimRepo,
		renderer:  renderer,
		logger:    logger,
	}
}

func (uc *GetClaimUseCase) Execute(ctx context.Context, query GetClaimQuery) (*dto.ClaimDTO, error) {
	if query.ClaimID == "" && query.ClaimNumber == "" {
		return nil, errors.NewValidationError("claim ID or number is required")
	}

	var (
		c   *claim.Claim
		err error
	)
	if query.ClaimID != "" {
		c, err = uc.claimRepo.GetByID(ctx, query.ClaimID)
	} else {
		c, err = uc.claimRepo.GetByNumber(ctx, query.ClaimNumber)
	}
	if err != nil {
		uc.logger.Errorw("failed to get claim", "claim_id", query.ClaimID, "claim_number", query.ClaimNumber, "error", err)
		return nil, toAppError(err)
	}

	return dto.ToClaimDTO(c, uc.renderer), nil
}
