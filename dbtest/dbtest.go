// Package dbtest opens throwaway catalog databases for tests.
package dbtest

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/afras-tabs/catalog-backend/models"
)

// Open returns a migrated in-memory sqlite database with foreign keys enforced. The pool is
// held to one connection because every sqlite memory connection is a separate database.
// Recount debug logs are silenced.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}
