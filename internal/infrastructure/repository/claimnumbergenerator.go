package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/claimdesk/claimdesk/internal/domain/claim"
	"github.com/claimdesk/claimdesk/internal/infrastructure/persistence/models"
	"github.com/claimdesk/claimdesk/internal/shared/db"
)

// ClaimNumberGenerator draws claim numbers from a row in claim_sequences
// keyed by the prefix.
type ClaimNumberGenerator struct {
	db     *gorm.DB
	prefix string
}

func NewClaimNumberGenerator(gdb *gorm.DB, prefix string) *ClaimNumberGenerator {
	if prefix == "" {
		prefix = claim.DefaultNumberPrefix
	}
	return &ClaimNumberGenerator{db: gdb, prefix: prefix}
}

func (g *ClaimNumberGenerator) Generate(ctx context.Context) (string, error) {
	var next int64

	err := db.GetTxFromContext(ctx, g.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.ClaimSequenceModel{Name: g.prefix, Value: 0}).Error; err != nil {
			return fmt.Errorf("failed to initialize claim sequence: %w", err)
		}

		if err := tx.Model(&models.ClaimSequenceModel{}).
			Where("name = ?", g.prefix).
			UpdateColumn("value", gorm.Expr("value + 1")).Error; err != nil {
			return fmt.Errorf("failed to advance claim sequence: %w", err)
		}

		var seq models.ClaimSequenceModel
		if err := tx.Where("name = ?", g.prefix).First(&seq).Error; err != nil {
			return fmt.Errorf("failed to read claim sequence: %w", err)
		}
		next = seq.Value
		return nil
	})
	if err != nil {
		return "", err
	}

	return claim.FormatNumber(g.prefix, next), nil
}
