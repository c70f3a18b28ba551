package usecases

import (
	"context"
	"fmt"

	"github.com/claimdesk/claimdesk/internal/application/claim/dto"
	"github.com/claimdesk/claimdesk/internal/domain/claim"
	"github.com/claimdesk/claimdesk/internal/shared/errors"
	"github.com/claimdesk/claimdesk/internal/shared/logger"
)

// MaxImportRecords bounds a single import request.
const MaxImportRecords = 500

// ImportClaimsCommand carries claim records exported from the legacy API.
type ImportClaimsCommand struct {
	Records []map[string]any
	Actor   Actor
}

type ImportClaimsUseCase struct {
	claimRepo claim.Repository
	numbers   claim.NumberGenerator
	logger    logger.Interface
}

func NewImportClaimsUseCase(
	claimRepo claim.Repository,
	numbers claim.NumberGenerator,
	logger logger.Interface,
) *ImportClaimsUseCase {
	return &ImportClaimsUseCase{
		claimRepo: claimRepo,
		numbers:   numbers,
		logger:    logger,
	}
}

// Execute normalizes and stores every record. A bad record fails its own
// item only; records without a claim number get a fresh one.
func (uc *ImportClaimsUseCase) Execute(ctx context.Context, cmd ImportClaimsCommand) (*dto.ImportResultDTO, error) {
	uc.logger.Infow("executing import claims use case",
		"records", len(cmd.Records),
		"actor_id", cmd.Actor.UserID,
	)

	if err := cmd.Actor.validate(); err != nil {
		return nil, err
	}
	if len(cmd.Records) == 0 {
		return nil, errors.NewValidationError("at least one record is required")
	}
	if len(cmd.Records) > MaxImportRecords {
		return nil, errors.NewValidationError(fmt.Sprintf("at most %d records per import", MaxImportRecords))
	}

	result := &dto.ImportResultDTO{Items: make([]*dto.ImportItemDTO, 0, len(cmd.Records))}
	for i, rec := range cmd.Records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result.Add(uc.importOne(ctx, i, rec))
	}

	uc.logger.Infow("claims imported",
		"imported", result.Imported,
		"failed", result.Failed,
		"actor_id", cmd.Actor.UserID,
	)
	return result, nil
}

func (uc *ImportClaimsUseCase) importOne(ctx context.Context, index int, rec map[string]any) *dto.ImportItemDTO {
	item := &dto.ImportItemDTO{Index: index}
	if rec == nil {
		item.Error = dto.ImportErrorInvalid
		item.Message = "record is empty"
		return item
	}

	c, err := claim.FromLegacyRecord(rec)
	if err != nil {
		item.Error = dto.ImportErrorInvalid
		item.Message = err.Error()
		return item
	}
	item.ClaimID = c.ID()

	if c.Number() == "" {
		number, err := uc.numbers.Generate(ctx)
		if err != nil {
			uc.logger.Errorw("failed to generate claim number", "claim_id", c.ID(), "error", err)
			item.Error = dto.ImportErrorInternal
			item.Message = "unexpected error"
			return item
		}
		withNumber := make(map[string]any, len(rec)+1)
		for k, v := range rec {
			withNumber[k] = v
		}
		withNumber["claimNumber"] = number
		if c, err = claim.FromLegacyRecord(withNumber); err != nil {
			item.Error = dto.ImportErrorInvalid
			item.Message = err.Error()
			return item
		}
	}

	if err := uc.claimRepo.Save(ctx, c); err != nil {
		if errors.IsDuplicateError(err) {
			item.Error = dto.ImportErrorDuplicate
			item.Message = "claim already exists"
			return item
		}
		uc.logger.Errorw("failed to save imported claim", "claim_id", c.ID(), "error", err)
		item.Error = dto.ImportErrorInternal
		item.Message = "unexpected error"
		return item
	}

	item.OK = true
	item.Claim = dto.ToClaimDTO(c, nil)
	return item
}
