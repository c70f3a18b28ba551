package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/claimdesk/claimdesk/internal/shared/logger"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager uses goose scripts for driver, or gorm AutoMigrate when auto
// is set.
func NewManager(driver string, auto bool, log logger.Interface) (*Manager, error) {
	if auto {
		return NewManagerWithStrategy(NewGormAutoMigrateStrategy(log), log), nil
	}
	strategy, err := NewGooseStrategy(driver, log)
	if err != nil {
		return nil, err
	}
	return NewManagerWithStrategy(strategy, log), nil
}

func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log.With("component", "migration.manager"),
	}
}

// Migrate brings the schema up to date.
func (m *Manager) Migrate(db *gorm.DB) error {
	models := AutoMigrateModels()
	m.logger.Infow("starting database migration",
		"strategy", m.strategy.GetName(),
		"models_count", len(models))

	if err := m.strategy.Migrate(db, models...); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

func (m *Manager) Down(db *gorm.DB, steps int) error {
	g, err := m.goose()
	if err != nil {
		return err
	}
	return g.MigrateDown(db, steps)
}

func (m *Manager) Status(db *gorm.DB) error {
	g, err := m.goose()
	if err != nil {
		return err
	}
	return g.Status(db)
}

func (m *Manager) Version(db *gorm.DB) (int64, error) {
	g, err := m.goose()
	if err != nil {
		return 0, err
	}
	return g.GetVersion(db)
}

func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}

func (m *Manager) goose() (*GooseStrategy, error) {
	g, ok := m.strategy.(*GooseStrategy)
	if !ok {
		return nil, fmt.Errorf("strategy %s does not support versioned operations", m.strategy.GetName())
	}
	return g, nil
}
