// file: internals/features/school/attendance/scheduler/attendance_scheduler_test.go
package scheduler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestRunOnceMissingTermConfigIsNoop(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec(`CREATE TABLE term_settings (
		term_setting_key TEXT PRIMARY KEY,
		term_setting_value TEXT NOT NULL,
		term_setting_updated_at DATETIME
	)`).Error)

	// Tabel term kosong: sentinel dari LoadTermConfig ditelan, run jadi
	// no-op sukses - scheduler tidak boleh crash menunggu sinkronisasi
	// kalender akademik.
	sum, err := RunOnce(context.Background(), db, nil, time.Now())
	require.NoError(t, err)
	assert.True(t, sum.Skipped)
}
