package service

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/belghachem/beehouse/internal/infra/repository/db"
	"github.com/belghachem/beehouse/internal/infra/sms"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDao opens a fresh in-memory database with the full schema. A
// single connection keeps sqlite from handing each session its own empty
// memory database.
func newTestDao(t *testing.T) *db.DbDao {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	dao := db.NewDbDao(conn)
	require.NoError(t, dao.InitMigrate())
	return dao
}

// newFileTestDao opens a file-backed database in a per-test temp dir.
// Unlike the in-memory helper it supports concurrent sessions, WAL and a
// busy timeout keep parallel write transactions from failing outright.
func newFileTestDao(t *testing.T) *db.DbDao {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000",
		filepath.Join(t.TempDir(), "store.db"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	dao := db.NewDbDao(conn)
	require.NoError(t, dao.InitMigrate())
	return dao
}

type sentSMS struct {
	Phone string
	Body  string
}

// recordingSender captures outgoing messages; fail makes every send
// error without stopping the caller.
type recordingSender struct {
	sent []sentSMS
	fail bool
}

func (r *recordingSender) Send(ctx context.Context, phone, body string) error {
	if r.fail {
		return sms.ErrSendFailed
	}
	r.sent = append(r.sent, sentSMS{Phone: phone, Body: body})
	return nil
}

var _ sms.Sender = (*recordingSender)(nil)
