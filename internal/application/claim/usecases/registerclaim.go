package usecases

import (
	"context"

	"github.com/claimdesk/claimdesk/internal/application/claim/dto"
	"github.com/claimdesk/claimdesk/internal/domain/claim"
	sharedvo "github.com/claimdesk/claimdesk/internal/domain/shared/valueobjects"
	"github.com/claimdesk/claimdesk/internal/shared/errors"
	"github.com/claimdesk/claimdesk/internal/shared/logger"
)

type RegisterClaimCommand struct {
	IMEI            string
	ProductID       string
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	ServiceCenterID string
	RepairCost      string
	Currency        string
	Metadata        map[string]any
	Actor           Actor
}

type RegisterClaimUseCase struct {
	claimRepo claim.Repository
	numbers   claim.NumberGenerator
	currency  string
	logger    logger.Interface
}

func NewRegisterClaimUseCase(
	claimRepo claim.Repository,
	numbers claim.NumberGenerator,
	currency string,
	logger logger.Interface,
) *RegisterClaimUseCase {
	if currency == "" {
		currency = sharedvo.DefaultCurrency
	}
	return &RegisterClaimUseCase{
		claimRepo: claimRepo,
		numbers:   numbers,
		currency:  currency,
		logger:    logger,
	}
}

func (uc *RegisterClaimUseCase) Execute(ctx context.Context, cmd RegisterClaimCommand) (*dto.ClaimDTO, error) {
	uc.logger.Infow("executing register claim use case",
		"product_id", cmd.ProductID,
		"service_center_id", cmd.ServiceCenterID,
		"actor_id", cmd.Actor.UserID,
	)

	if err := cmd.Actor.validate(); err != nil {
		return nil, err
	}

	currency := cmd.Currency
	if currency == "" {
		currency = uc.currency
	}
	cost, err := sharedvo.ParseMoney(cmd.RepairCost, currency)
	if err != nil {
		uc.logger.Errorw("invalid repair cost", "repair_cost", cmd.RepairCost, "error", err)
		return nil, errors.NewValidationError("invalid repair cost", err.Error())
	}

	number, err := uc.numbers.Generate(ctx)
	if err != nil {
		uc.logger.Errorw("failed to generate claim number", "error", err)
		return nil, errors.NewInternalError("failed to generate claim number")
	}

	c, err := claim.NewClaim(claim.NewClaimParams{
		Number:    number,
		IMEI:      cmd.IMEI,
		ProductID: cmd.ProductID,
		Customer: claim.Customer{
			Name:  cmd.CustomerName,
			Phone: cmd.CustomerPhone,
			Email: cmd.CustomerEmail,
		},
		ServiceCenterID: cmd.ServiceCenterID,
		RepairCost:      cost,
		Metadata:        cmd.Metadata,
	})
	if err != nil {
		uc.logger.Errorw("invalid claim", "error", err)
		return nil, toAppError(err)
	}

	if err := uc.claimRepo.Save(ctx, c); err != nil {
		uc.logger.Errorw("failed to save claim", "claim_number", number, "error", err)
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("claim number already exists", number)
		}
		return nil, errors.NewInternalError("failed to save claim")
	}

	uc.logger.Infow("claim registered successfully", "claim_id", c.ID(), "claim_number", c.Number())

	return dto.ToClaimDTO(c, nil), nil
}
