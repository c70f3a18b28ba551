package handlers

import (
	"context"

	"github.com/claimdesk/claimdesk/internal/application/claim/dto"
	"github.com/claimdesk/claimdesk/internal/application/claim/usecases"
)

// Use case interfaces for ClaimHandler

type registerClaimUseCase interface {
	Execute(ctx context.Context, cmd usecases.RegisterClaimCommand) (*dto.ClaimDTO, error)
}

type getClaimUseCase interface {
	Execute(ctx context.Context, query usecases.GetClaimQuery) (*dto.ClaimDTO, error)
}

type listClaimsUseCase interface {
	Execute(ctx context.Context, query usecases.ListClaimsQuery) (*usecases.ListClaimsResult, error)
}

type transitionClaimUseCase interface {
	Execute(ctx context.Context, cmd usecases.TransitionClaimCommand) (*dto.ClaimDTO, error)
}

type bulkTransitionUseCase interface {
	Execute(ctx context.Context, cmd usecases.BulkTransitionCommand) (*dto.BulkResultDTO, error)
}

type availableActionsUseCase interface {
	Execute(ctx context.Context, query usecases.AvailableActionsQuery) (*usecases.AvailableActionsResult, error)
}

type claimHistoryUseCase interface {
	Execute(ctx context.Context, query usecases.ClaimHistoryQuery) ([]*dto.AuditEntryDTO, error)
}
