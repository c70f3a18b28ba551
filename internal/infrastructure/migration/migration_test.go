package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/claimdesk/claimdesk/internal/infrastructure/database"
	"github.com/claimdesk/claimdesk/internal/shared/config"
	"github.com/claimdesk/claimdesk/internal/shared/logger"
)

func openMemoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", Database: "file::memory:"})
	require.NoError(t, err)
	return db
}

func TestGooseDialect(t *testing.T) {
	for driver, want := range map[string]string{"mysql": "mysql", "postgres": "postgres", "sqlite": "sqlite3"} {
		got, err := GooseDialect(driver)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := GooseDialect("mssql")
	assert.Error(t, err)
}

func TestEmbeddedScriptsExistForEveryDialect(t *testing.T) {
	for _, dialect := range []string{"mysql", "postgres", "sqlite3"} {
		entries, err := scripts.ReadDir("scripts/" + dialect)
		require.NoError(t, err, dialect)
		assert.NotEmpty(t, entries, dialect)
	}
}

func TestManager_GooseUpAndDown(t *testing.T) {
	db := openMemoryDB(t)
	m, err := NewManager("sqlite", false, logger.NewNopLogger())
	require.NoError(t, err)

	require.NoError(t, m.Migrate(db))
	assert.True(t, db.Migrator().HasTable("claims"))
	assert.True(t, db.Migrator().HasTable("claim_audit_entries"))

	version, err := m.Version(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	require.NoError(t, m.Down(db, 1))
	assert.False(t, db.Migrator().HasTable("claims"))
}

func TestManager_AutoMigrate(t *testing.T) {
	db := openMemoryDB(t)
	m, err := NewManager("sqlite", true, logger.NewNopLogger())
	require.NoError(t, err)

	require.NoError(t, m.Migrate(db))
	assert.True(t, db.Migrator().HasTable("claim_sequences"))

	_, err = m.Version(db)
	assert.Error(t, err)
}
