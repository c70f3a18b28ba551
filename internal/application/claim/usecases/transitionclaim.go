package usecases

import (
	"context"

	"github.com/claimdesk/claimdesk/internal/application/claim/dto"
	"github.com/claimdesk/claimdesk/internal/domain/claim"
	vo "github.com/claimdesk/claimdesk/internal/domain/claim/valueobjects"
	"github.com/claimdesk/claimdesk/internal/shared/errors"
	"github.com/claimdesk/claimdesk/internal/shared/goroutine"
	"github.com/claimdesk/claimdesk/internal/shared/logger"
	"github.com/claimdesk/claimdesk/internal/shared/services/markdown"
)

type TransitionClaimCommand struct {
	ClaimID              string
	Transition           vo.Transition
	Actor                Actor
	Notes                string
	Reason               string
	TransactionReference string
}

func (cmd TransitionClaimCommand) input() claim.TransitionInput {
	return claim.TransitionInput{
		ActorID:              cmd.Actor.UserID,
		Role:                 cmd.Actor.Role.String(),
		Notes:                cmd.Notes,
		Reason:               cmd.Reason,
		TransactionReference: cmd.TransactionReference,
	}
}

type TransitionClaimUseCase struct {
	claimRepo  claim.Repository
	auditRepo  claim.AuditRepository
	tx         TransactionRunner
	authorizer *claim.Authorizer
	notifier   Notifier
	renderer   markdown.Renderer
	logger     logger.Interface
}

func NewTransitionClaimUseCase(
	claimRepo claim.Repository,
	auditRepo claim.AuditRepository,
	tx TransactionRunner,
	authorizer *claim.Authorizer,
	notifier Notifier,
	renderer markdown.Renderer,
	logger logger.Interface,
) *TransitionClaimUseCase {
	if notifier == nil {
		notifier = NoopNotifier()
	}
	return &TransitionClaimUseCase{
		claimRepo:  claimRepo,
		auditRepo:  auditRepo,
		tx:         tx,
		authorizer: authorizer,
		notifier:   notifier,
		renderer:   renderer,
		logger:     logger,
	}
}

func (uc *TransitionClaimUseCase) Execute(ctx context.Context, cmd TransitionClaimCommand) (*dto.ClaimDTO, error) {
	uc.logger.Infow("executing transition claim use case",
		"claim_id", cmd.ClaimID,
		"transition", cmd.Transition,
		"actor_id", cmd.Actor.UserID,
		"role", cmd.Actor.Role,
	)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid transition claim command", "error", err)
		return nil, err
	}

	next, err := uc.transition(ctx, cmd.ClaimID, cmd)
	if err != nil {
		return nil, toAppError(err)
	}

	uc.logger.Infow("claim transitioned successfully",
		"claim_id", next.ID(),
		"transition", cmd.Transition,
		"stage", next.Stage(),
		"version", next.Version(),
	)

	return dto.ToClaimDTO(next, uc.renderer), nil
}

func (uc *TransitionClaimUseCase) validateCommand(cmd TransitionClaimCommand) error {
	if cmd.ClaimID == "" {
		return errors.NewValidationError("claim ID is required")
	}
	if !cmd.Transition.IsValid() {
		return errors.NewValidationError("unknown transition", cmd.Transition.String())
	}
	return cmd.Actor.validate()
}

// transition loads, authorizes, applies and persists one transition. It
// returns domain errors so bulk callers can classify them per item.
func (uc *TransitionClaimUseCase) transition(ctx context.Context, id string, cmd TransitionClaimCommand) (*claim.Claim, error) {
	current, err := uc.claimRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get claim", "claim_id", id, "error", err)
		return nil, err
	}

	decision := uc.authorizer.Authorize(cmd.Actor.Role, cmd.Actor.UserKey(), current, cmd.Transition)
	if !decision.Allowed {
		err := decision.Err(current, cmd.Actor.Role)
		uc.logger.Warnw("transition denied",
			"claim_id", id,
			"transition", cmd.Transition,
			"reason", decision.Reason,
			"role", cmd.Actor.Role,
		)
		return nil, err
	}

	in := cmd.input()
	if uc.renderer != nil && in.Reason != "" {
		in.Reason = uc.renderer.ToText(in.Reason)
	}

	next, entry, err := current.Apply(cmd.Transition, in)
	if err != nil {
		uc.logger.Warnw("transition rejected by claim", "claim_id", id, "transition", cmd.Transition, "error", err)
		return nil, err
	}

	err = uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.claimRepo.Update(ctx, next); err != nil {
			return err
		}
		return uc.auditRepo.Append(ctx, entry)
	})
	if err != nil {
		uc.logger.Errorw("failed to persist transition", "claim_id", id, "transition", cmd.Transition, "error", err)
		return nil, err
	}

	uc.notify(ctx, next, entry)
	return next, nil
}

func (uc *TransitionClaimUseCase) notify(ctx context.Context, c *claim.Claim, entry claim.AuditEntry) {
	ctx = context.WithoutCancel(ctx)
	goroutine.SafeGo(uc.logger, "claim-notify", func() {
		if err := uc.notifier.NotifyTransition(ctx, c, entry); err != nil {
			uc.logger.Warnw("failed to send claim notification",
				"claim_id", c.ID(),
				"transition", entry.Transition,
				"error", err,
			)
		}
	})
}
