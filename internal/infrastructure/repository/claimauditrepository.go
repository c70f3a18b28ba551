package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/claimdesk/claimdesk/internal/domain/claim"
	"github.com/claimdesk/claimdesk/internal/infrastructure/persistence/mappers"
	"github.com/claimdesk/claimdesk/internal/infrastructure/persistence/models"
	"github.com/claimdesk/claimdesk/internal/shared/db"
)

type ClaimAuditRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ClaimMapper
}

func NewClaimAuditRepository(gdb *gorm.DB) claim.AuditRepository {
	return &ClaimAuditRepositoryImpl{
		db:     gdb,
		mapper: mappers.NewClaimMapper(),
	}
}

func (r *ClaimAuditRepositoryImpl) Append(ctx context.Context, entry claim.AuditEntry) error {
	model := r.mapper.AuditToModel(entry)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// ListByClaim returns entries oldest first.
func (r *ClaimAuditRepositoryImpl) ListByClaim(ctx context.Context, claimID string) ([]claim.AuditEntry, error) {
	var modelList []*models.ClaimAuditModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("claim_id = ?", claimID).
		Order("occurred_at ASC").
		Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	entries := make([]claim.AuditEntry, 0, len(modelList))
	for _, m := range modelList {
		entries = append(entries, r.mapper.AuditToDomain(m))
	}
	return entries, nil
}
