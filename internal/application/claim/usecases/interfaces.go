package usecases

import (
	"context"

	"github.com/claimdesk/claimdesk/internal/application/claim/dto"
	"github.com/claimdesk/claimdesk/internal/domain/claim"
)

// TransactionRunner runs fn in a single database transaction.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier is told about applied transitions after they are committed.
type Notifier interface {
	NotifyTransition(ctx context.Context, c *claim.Claim, entry claim.AuditEntry) error
}

type TransitionClaimExecutor interface {
	Execute(ctx context.Context, cmd TransitionClaimCommand) (*dto.ClaimDTO, error)
}

type BulkTransitionExecutor interface {
	Execute(ctx context.Context, cmd BulkTransitionCommand) (*dto.BulkResultDTO, error)
}

type RegisterClaimExecutor interface {
	Execute(ctx context.Context, cmd RegisterClaimCommand) (*dto.ClaimDTO, error)
}

type GetClaimExecutor interface {
	Execute(ctx context.Context, query GetClaimQuery) (*dto.ClaimDTO, error)
}

type ListClaimsExecutor interface {
	Execute(ctx context.Context, query ListClaimsQuery) (*ListClaimsResult, error)
}

type AvailableActionsExecutor interface {
	Execute(ctx context.Context, query AvailableActionsQuery) (*AvailableActionsResult, error)
}

type ClaimHistoryExecutor interface {
	Execute(ctx context.Context, query ClaimHistoryQuery) ([]*dto.AuditEntryDTO, error)
}

type noopNotifier struct{}

func (noopNotifier) NotifyTransition(context.Context, *claim.Claim, claim.AuditEntry) error {
	return nil
}

// NoopNotifier is used when outcome emails are disabled.
func NoopNotifier() Notifier {
	return noopNotifier{}
}

type ImportClaimsExecutor interface {
	Execute(ctx context.Context, cmd ImportClaimsCommand) (*dto.ImportResultDTO, error)
}
