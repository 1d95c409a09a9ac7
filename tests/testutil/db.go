package testutil

import (
	"testing"

	"github.com/eest6/calendar-api/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory sqlite database with the schema migrated.
// Each call returns an isolated database, so tests don't share state.
func SetupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=private"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to open in-memory test database")

	err = db.AutoMigrate(&domain.FetchLog{})
	require.NoError(t, err, "Failed to migrate test database")

	return db
}
