package usecases

import (
	"context"

	"github.com/claimdesk/claimdesk/internal/application/claim/dto"
	"github.com/claimdesk/claimdesk/internal/domain/claim"
	vo "github.com/claimdesk/claimdesk/internal/domain/claim/valueobjects"
	"github.com/claimdesk/claimdesk/internal/shared/errors"
	"github.com/claimdesk/claimdesk/internal/shared/logger"
)

// MaxBulkClaims bounds the number of claims in one bulk request.
const MaxBulkClaims = 500

type BulkTransitionCommand struct {
	ClaimIDs             []string
	Transition           vo.Transition
	Actor                Actor
	Notes                string
	Reason               string
	TransactionReference string
}

// BulkTransitionUseCase applies one transition to many claims. Each claim
// is loaded, authorized and persisted on its own; a failing claim never
// affects the others.
type BulkTransitionUseCase struct {
	single      *TransitionClaimUseCase
	concurrency int
	logger      logger.Interface
}

func NewBulkTransitionUseCase(
	single *TransitionClaimUseCase,
	concurrency int,
	logger logger.Interface,
) *BulkTransitionUseCase {
	if concurrency <= 0 {
		concurrency = claim.DefaultBulkConcurrency
	}
	return &BulkTransitionUseCase{
		single:      single,
		concurrency: concurrency,
		logger:      logger,
	}
}

func (uc *BulkTransitionUseCase) Execute(ctx context.Context, cmd BulkTransitionCommand) (*dto.BulkResultDTO, error) {
	uc.logger.Infow("executing bulk transition use case",
		"transition", cmd.Transition,
		"count", len(cmd.ClaimIDs),
		"actor_id", cmd.Actor.UserID,
	)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid bulk transition command", "error", err)
		return nil, err
	}

	single := TransitionClaimCommand{
		Transition:           cmd.Transition,
		Actor:                cmd.Actor,
		Notes:                cmd.Notes,
		Reason:               cmd.Reason,
		TransactionReference: cmd.TransactionReference,
	}

	result := claim.RunBulk(dedupe(cmd.ClaimIDs), uc.concurrency, func(id string) claim.ItemResult {
		next, err := uc.single.transition(ctx, id, single)
		if err != nil {
			return claim.ItemResult{Err: err}
		}
		return claim.ItemResult{OK: true, Claim: next}
	})

	uc.logger.Infow("bulk transition finished",
		"transition", cmd.Transition,
		"successful", result.Successful,
		"failed", result.Failed,
	)

	return dto.ToBulkResultDTO(cmd.Transition.String(), result), nil
}

func (uc *BulkTransitionUseCase) ApproveMany(ctx context.Context, ids []string, actor Actor, notes string) (*dto.BulkResultDTO, error) {
	return uc.Execute(ctx, BulkTransitionCommand{ClaimIDs: ids, Transition: vo.TransitionApprove, Actor: actor, Notes: notes})
}

func (uc *BulkTransitionUseCase) RejectMany(ctx context.Context, ids []string, actor Actor, reason, notes string) (*dto.BulkResultDTO, error) {
	return uc.Execute(ctx, BulkTransitionCommand{ClaimIDs: ids, Transition: vo.TransitionReject, Actor: actor, Reason: reason, Notes: notes})
}

func (uc *BulkTransitionUseCase) AuthorizePaymentMany(ctx context.Context, ids []string, actor Actor, notes string) (*dto.BulkResultDTO, error) {
	return uc.Execute(ctx, BulkTransitionCommand{ClaimIDs: ids, Transition: vo.TransitionAuthorizePayment, Actor: actor, Notes: notes})
}

func (uc *BulkTransitionUseCase) ExecutePaymentMany(ctx context.Context, ids []string, actor Actor, txRef, notes string) (*dto.BulkResultDTO, error) {
	return uc.Execute(ctx, BulkTransitionCommand{
		ClaimIDs:             ids,
		Transition:           vo.TransitionExecutePayment,
		Actor:                actor,
		TransactionReference: txRef,
		Notes:                notes,
	})
}

func (uc *BulkTransitionUseCase) validateCommand(cmd BulkTransitionCommand) error {
	if len(cmd.ClaimIDs) == 0 {
		return errors.NewValidationError("at least one claim ID is required")
	}
	if len(cmd.ClaimIDs) > MaxBulkClaims {
		return errors.NewValidationError("too many claims in one request")
	}
	for _, id := range cmd.ClaimIDs {
		if id == "" {
			return errors.NewValidationError("claim IDs must not be empty")
		}
	}
	if !cmd.Transition.IsValid() {
		return errors.NewValidationError("unknown transition", cmd.Transition.String())
	}
	return cmd.Actor.validate()
}

// dedupe drops repeated IDs, keeping the first occurrence.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
