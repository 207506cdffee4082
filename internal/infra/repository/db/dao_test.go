package db

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDao opens a fresh in-memory database with the full schema. A
// single connection keeps sqlite from handing each session its own empty
// memory database.
func newTestDao(t *testing.T) *DbDao {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	dao := NewDbDao(conn)
	require.NoError(t, dao.InitMigrate())
	return dao
}
