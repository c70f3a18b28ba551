package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/claimdesk/claimdesk/internal/infrastructure/persistence/models"
	"github.com/claimdesk/claimdesk/internal/shared/logger"
)

// AutoMigrateModels lists the models owned by this service. casbin_rule is
// migrated by the casbin adapter.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.ClaimModel{},
		&models.ClaimAuditModel{},
		&models.ClaimSequenceModel{},
	}
}

// GormAutoMigrateStrategy derives the schema from the gorm models. It is
// meant for local development and tests.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy(log logger.Interface) Strategy {
	return &GormAutoMigrateStrategy{
		logger: log.With("component", "migration.gorm"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, models ...interface{}) error {
	s.logger.Infow("starting gorm auto migration", "models_count", len(models))

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}

	s.logger.Infow("gorm auto migration completed")
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}
