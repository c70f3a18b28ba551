package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/claimdesk/claimdesk/internal/domain/claim"
	"github.com/claimdesk/claimdesk/internal/infrastructure/persistence/mappers"
	"github.com/claimdesk/claimdesk/internal/infrastructure/persistence/models"
	"github.com/claimdesk/claimdesk/internal/shared/db"
	"github.com/claimdesk/claimdesk/internal/shared/logger"
)

// claimSortColumns maps API sort fields to columns.
var claimSortColumns = map[string]string{
	"createdAt":    "created_at",
	"created_at":   "created_at",
	"updatedAt":    "updated_at",
	"updated_at":   "updated_at",
	"claimNumber":  "claim_number",
	"claim_number": "claim_number",
	"repairCost":   "repair_cost",
	"repair_cost":  "repair_cost",
	"status":       "status",
}

type ClaimRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ClaimMapper
	logger logger.Interface
}

func NewClaimRepository(gdb *gorm.DB, logger logger.Interface) claim.Repository {
	return &ClaimRepositoryImpl{
		db:     gdb,
		mapper: mappers.NewClaimMapper(),
		logger: logger,
	}
}

func (r *ClaimRepositoryImpl) Save(ctx context.Context, c *claim.Claim) error {
	model := r.mapper.ToModel(c)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create claim: %w", err)
	}

	r.logger.Infow("claim created", "id", model.ID, "claim_number", model.ClaimNumber)
	return nil
}

// Update writes c only if the stored row is still at the version c was
// derived from.
func (r *ClaimRepositoryImpl) Update(ctx context.Context, c *claim.Claim) error {
	model := r.mapper.ToModel(c)

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.ClaimModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update claim: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.ClaimModel{}).Where("id = ?", model.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check claim existence: %w", err)
		}
		if count == 0 {
			return claim.ErrClaimNotFound
		}
		return claim.ErrStaleClaim
	}

	return nil
}

func (r *ClaimRepositoryImpl) GetByID(ctx context.Context, id string) (*claim.Claim, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *ClaimRepositoryImpl) GetByNumber(ctx context.Context, number string) (*claim.Claim, error) {
	return r.first(ctx, "claim_number = ?", strings.TrimSpace(number))
}

func (r *ClaimRepositoryImpl) first(ctx context.Context, query string, arg any) (*claim.Claim, error) {
	var model models.ClaimModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where(query, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, claim.ErrClaimNotFound
		}
		return nil, fmt.Errorf("failed to get claim: %w", err)
	}

	entity, err := r.mapper.ToDomain(&model)
	if err != nil {
		return nil, fmt.Errorf("failed to map claim model to entity: %w", err)
	}
	return entity, nil
}

// GetByIDs returns the claims that exist, in no particular order.
func (r *ClaimRepositoryImpl) GetByIDs(ctx context.Context, ids []string) ([]*claim.Claim, error) {
	if len(ids) == 0 {
		return []*claim.Claim{}, nil
	}

	var modelList []*models.ClaimModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("id IN ?", ids).Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to get claims by IDs: %w", err)
	}

	entities, err := r.mapper.ToDomainList(modelList)
	if err != nil {
		return nil, fmt.Errorf("failed to map claim models to entities: %w", err)
	}
	return entities, nil
}

func (r *ClaimRepositoryImpl) List(ctx context.Context, filter claim.ListFilter) ([]*claim.Claim, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.ClaimModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.PaymentStatus != nil {
		query = query.Where("payment_status = ?", filter.PaymentStatus.String())
	}
	if filter.AuthorizedForPayment != nil {
		query = query.Where("authorized_for_payment = ?", *filter.AuthorizedForPayment)
	}
	if filter.ServiceCenterID != nil {
		query = query.Where("service_center_id = ?", *filter.ServiceCenterID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("claim_number LIKE ? OR imei LIKE ? OR customer_name LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count claims: %w", err)
	}

	var modelList []*models.ClaimModel
	if err := query.
		Scopes(
			db.OrderBy(filter.SortBy, filter.SortOrder, claimSortColumns, "created_at"),
			db.Paginate(filter.Page, filter.PageSize),
		).
		Find(&modelList).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list claims: %w", err)
	}

	entities, err := r.mapper.ToDomainList(modelList)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map claim models to entities: %w", err)
	}

	return entities, total, nil
}
