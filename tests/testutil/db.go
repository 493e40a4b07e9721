package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kendall-kelly/cafe-tropis-api/config"
)

// NewTestDB opens a fresh in-memory SQLite database with every table migrated.
// The pool is limited to one connection so transactions and follow-up
// queries see the same in-memory database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := config.ConnectDatabase("sqlite://:memory:")
	require.NoError(t, err, "Failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, config.Migrate(db), "Failed to migrate test database")
	return db
}
