package usecases

import (
	"context"

	"github.com/claimdesk/claimdesk/internal/application/claim/dto"
	"github.com/claimdesk/claimdesk/internal/domain/claim"
	"github.com/claimdesk/claimdesk/internal/shared/errors"
	"github.com/claimdesk/claimdesk/internal/shared/logger"
)

type AvailableActionsQuery struct {
	ClaimID string
	Actor   Actor
}

type AvailableActionsResult struct {
	ClaimID string
	Stage   string
	Actions []*dto.DecisionDTO
}

// AvailableActionsUseCase reports the authorizer's decision for every
// transition, so clients can show only the actions that would succeed.
type AvailableActionsUseCase struct {
	claimRepo  claim.Repository
	authorizer *claim.Authorizer
	logger     logger.Interface
}

func NewAvailableActionsUseCase(
	claimRepo claim.Repository,
	authorizer *claim.Authorizer,
	logger logger.Interface,
) *AvailableActionsUseCase {
	return &AvailableActionsUseCase{
		claimRepo:  claimRepo,
		authorizer: authorizer,
		logger:     logger,
	}
}

func (uc *AvailableActionsUseCase) Execute(ctx context.Context, query AvailableActionsQuery) (*AvailableActionsResult, error) {
	if query.ClaimID == "" {
		return nil, errors.NewValidationError("claim ID is required")
	}
	if err := query.Actor.validate(); err != nil {
		return nil, err
	}

	c, err := uc.claimRepo.GetByID(ctx, query.ClaimID)
	if err != nil {
		uc.logger.Errorw("failed to get claim", "claim_id", query.ClaimID, "error", err)
		return nil, toAppError(err)
	}

	decisions := uc.authorizer.AvailableActions(query.Actor.Role, query.Actor.UserKey(), c)
	actions := make([]*dto.DecisionDTO, 0, len(decisions))
	for _, d := range decisions {
		actions = append(actions, dto.ToDecisionDTO(d))
	}

	return &AvailableActionsResult{
		ClaimID: c.ID(),
		Stage:   c.Stage().String(),
		Actions: actions,
	}, nil
}
