// file: internals/features/school/attendance/service/aggregation_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kampusku_backend/internals/features/school/attendance/model"
	"kampusku_backend/internals/features/school/attendance/status"
)

var (
	termStart  = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // Senin pekan 1
	reportDate = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC) // Senin pekan 2
)

func testTermConfig() *TermConfig {
	return &TermConfig{StartDate: termStart, MaxWeeks: 18}
}

func TestRunDailyAggregationRollsUpArchivesAndPurges(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAggregationService(db, nil)

	sessStart := reportDate.Add(10 * time.Hour)
	sess := seedSession(t, db, "IF2201", 2, 1, sessStart, true)

	// Sesi tanpa kewajiban check-in di hari yang sama: tidak ikut direkap.
	noCheckin := seedSession(t, db, "IF2202", 2, 1, sessStart, false)
	seedRecord(t, db, noCheckin.CourseSessionId, model.AttendanceStatusAbsent, nil)

	seedRecord(t, db, sess.CourseSessionId, model.AttendanceStatusPresent, nil)
	leaveStudent := seedRecord(t, db, sess.CourseSessionId, model.AttendanceStatusUnstarted, finalPtr(model.AttendanceStatusLeave))
	seedRecord(t, db, sess.CourseSessionId, model.AttendanceStatusAbsent, nil)
	seedRecord(t, db, sess.CourseSessionId, model.AttendanceStatusTruant, nil)
	seedRecord(t, db, sess.CourseSessionId, model.AttendanceStatusUnstarted, nil) // tidak pernah check-in → absent

	sum, err := svc.RunDailyAggregation(context.Background(), reportDate, testTermConfig())
	require.NoError(t, err)

	assert.False(t, sum.Skipped)
	assert.Equal(t, 2, sum.TeachingWeek)
	assert.Equal(t, 1, sum.Weekday)
	assert.Equal(t, 1, sum.SessionsProcessed)
	assert.Equal(t, 1, sum.StatsInserted)
	assert.Equal(t, 4, sum.DetailsInserted)
	assert.Equal(t, 5, sum.RecordsArchived)
	assert.Equal(t, 5, sum.RecordsPurged)

	var stats model.AttendanceStatsModel
	require.NoError(t, db.First(&stats, "attendance_stats_session_id = ?", sess.CourseSessionId).Error)
	assert.Equal(t, 5, stats.AttendanceStatsTotalCount)
	assert.Equal(t, 1, stats.AttendanceStatsPresentCount)
	assert.Equal(t, 2, stats.AttendanceStatsAbsentCount) // absent + unstarted
	assert.Equal(t, 1, stats.AttendanceStatsTruantCount)
	assert.Equal(t, 1, stats.AttendanceStatsLeaveCount)
	assert.Equal(t, "IF2201", stats.AttendanceStatsCourseCode)

	var details []model.AbsenceDetailModel
	require.NoError(t, db.Find(&details, "absence_detail_session_id = ?", sess.CourseSessionId).Error)
	assert.Len(t, details, 4)
	for _, d := range details {
		if d.AbsenceDetailStudentId == leaveStudent {
			assert.Equal(t, string(status.TagLeave), d.AbsenceDetailResolvedStatus)
		}
	}

	// Arsip terisi, record live sesi tsb habis di-purge.
	var histCount, liveCount int64
	require.NoError(t, db.Model(&model.AttendanceHistoryModel{}).
		Where("attendance_history_session_id = ?", sess.CourseSessionId).Count(&histCount).Error)
	assert.EqualValues(t, 5, histCount)
	require.NoError(t, db.Model(&model.AttendanceRecordModel{}).
		Where("attendance_record_session_id = ?", sess.CourseSessionId).Count(&liveCount).Error)
	assert.EqualValues(t, 0, liveCount)
}

func TestRunDailyAggregationIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAggregationService(db, nil)

	sess := seedSession(t, db, "IF2201", 2, 1, reportDate.Add(10*time.Hour), true)
	seedRecord(t, db, sess.CourseSessionId, model.AttendanceStatusAbsent, nil)
	seedRecord(t, db, sess.CourseSessionId, model.AttendanceStatusPresent, nil)

	_, err := svc.RunDailyAggregation(context.Background(), reportDate, testTermConfig())
	require.NoError(t, err)

	var statsAfterFirst model.AttendanceStatsModel
	require.NoError(t, db.First(&statsAfterFirst, "attendance_stats_session_id = ?", sess.CourseSessionId).Error)

	// Run kedua untuk tanggal yang sama: no-op, bukan error, bukan duplikat.
	sum2, err := svc.RunDailyAggregation(context.Background(), reportDate, testTermConfig())
	require.NoError(t, err)
	assert.Equal(t, 0, sum2.StatsInserted)
	assert.Equal(t, 0, sum2.DetailsInserted)
	assert.Equal(t, 0, sum2.RecordsArchived)
	assert.Equal(t, 0, sum2.RecordsPurged)

	var statsCount, detailCount, histCount int64
	db.Model(&model.AttendanceStatsModel{}).Count(&statsCount)
	db.Model(&model.AbsenceDetailModel{}).Count(&detailCount)
	db.Model(&model.AttendanceHistoryModel{}).Count(&histCount)
	assert.EqualValues(t, 1, statsCount)
	assert.EqualValues(t, 1, detailCount)
	assert.EqualValues(t, 2, histCount)

	var statsAfterSecond model.AttendanceStatsModel
	require.NoError(t, db.First(&statsAfterSecond, "attendance_stats_session_id = ?", sess.CourseSessionId).Error)
	assert.Equal(t, statsAfterFirst.AttendanceStatsId, statsAfterSecond.AttendanceStatsId)
	assert.Equal(t, statsAfterFirst.AttendanceStatsPresentCount, statsAfterSecond.AttendanceStatsPresentCount)
}

func TestRunDailyAggregationNeverPurgesOtherWeeks(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAggregationService(db, nil)

	target := seedSession(t, db, "IF2201", 2, 1, reportDate.Add(10*time.Hour), true)
	seedRecord(t, db, target.CourseSessionId, model.AttendanceStatusAbsent, nil)

	// Sesi pekan lain dan hari lain, hidup berdampingan di tabel yang sama.
	otherWeek := seedSession(t, db, "IF2201", 3, 1, reportDate.AddDate(0, 0, 7).Add(10*time.Hour), true)
	otherDay := seedSession(t, db, "MA1101", 2, 2, reportDate.AddDate(0, 0, 1).Add(8*time.Hour), true)
	seedRecord(t, db, otherWeek.CourseSessionId, model.AttendanceStatusAbsent, nil)
	seedRecord(t, db, otherDay.CourseSessionId, model.AttendanceStatusAbsent, nil)

	_, err := svc.RunDailyAggregation(context.Background(), reportDate, testTermConfig())
	require.NoError(t, err)

	var survivors []model.AttendanceRecordModel
	require.NoError(t, db.Find(&survivors).Error)
	require.Len(t, survivors, 2)
	for _, r := range survivors {
		assert.NotEqual(t, target.CourseSessionId, r.AttendanceRecordSessionId)
	}
}

func TestRunDailyAggregationLocalTimezoneNearMidnight(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAggregationService(db, nil)

	sess := seedSession(t, db, "IF2201", 2, 1, reportDate.Add(10*time.Hour), true)
	seedRecord(t, db, sess.CourseSessionId, model.AttendanceStatusAbsent, nil)

	// 23:00 Minggu waktu lokal UTC-5 = Senin 04:00 UTC. Pekan dan hari harus
	// sama-sama dihitung dari tanggal ternormalisasi (UTC) - campuran tanggal
	// UTC + hari lokal menghasilkan kunci (pekan 2, Minggu) yang tidak pernah
	// ada dan sesi hari itu lolos dari rekap tanpa suara.
	loc := time.FixedZone("UTC-5", -5*60*60)
	localNight := time.Date(2026, 3, 8, 23, 0, 0, 0, loc)

	sum, err := svc.RunDailyAggregation(context.Background(), localNight, testTermConfig())
	require.NoError(t, err)
	assert.False(t, sum.Skipped)
	assert.Equal(t, 2, sum.TeachingWeek)
	assert.Equal(t, 1, sum.Weekday)
	assert.Equal(t, 1, sum.SessionsProcessed)
	assert.Equal(t, 1, sum.RecordsArchived)
}

func TestRunDailyAggregationGuards(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAggregationService(db, nil)

	sess := seedSession(t, db, "IF2201", 2, 1, reportDate.Add(10*time.Hour), true)
	seedRecord(t, db, sess.CourseSessionId, model.AttendanceStatusAbsent, nil)

	t.Run("tanpa konfigurasi term: no-op sukses", func(t *testing.T) {
		sum, err := svc.RunDailyAggregation(context.Background(), reportDate, nil)
		require.NoError(t, err)
		assert.True(t, sum.Skipped)
	})

	t.Run("pekan melebihi panjang term: no-op sukses", func(t *testing.T) {
		cfg := &TermConfig{StartDate: termStart, MaxWeeks: 1} // pekan 2 sudah di luar
		sum, err := svc.RunDailyAggregation(context.Background(), reportDate, cfg)
		require.NoError(t, err)
		assert.True(t, sum.Skipped)
	})

	t.Run("tanggal sebelum awal term: no-op sukses", func(t *testing.T) {
		sum, err := svc.RunDailyAggregation(context.Background(), termStart.AddDate(0, 0, -3), testTermConfig())
		require.NoError(t, err)
		assert.True(t, sum.Skipped)
	})

	// Guard tidak menyentuh data apa pun.
	var liveCount int64
	db.Model(&model.AttendanceRecordModel{}).Count(&liveCount)
	assert.EqualValues(t, 1, liveCount)
}

func TestLoadTermConfig(t *testing.T) {
	db := setupTestDB(t)

	t.Run("key belum ada: sentinel, bukan error generik", func(t *testing.T) {
		cfg, err := LoadTermConfig(db)
		require.ErrorIs(t, err, ErrTermConfigMissing)
		assert.Nil(t, cfg)
	})

	t.Run("nilai valid", func(t *testing.T) {
		seedTermSettings(t, db, "2026-03-02", "18")
		cfg, err := LoadTermConfig(db)
		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, termStart, cfg.StartDate)
		assert.Equal(t, 18, cfg.MaxWeeks)
	})

	t.Run("nilai korup: InvariantError, bukan koreksi diam-diam", func(t *testing.T) {
		require.NoError(t, db.Model(&model.TermSettingModel{}).
			Where("term_setting_key = ?", model.TermSettingKeyMaxWeeks).
			Update("term_setting_value", "banyak").Error)
		_, err := LoadTermConfig(db)
		require.Error(t, err)
		assert.True(t, IsInvariant(err))
	})
}

func TestTeachingWeekMath(t *testing.T) {
	cfg := testTermConfig()

	assert.Equal(t, 1, cfg.TeachingWeekFor(termStart))
	assert.Equal(t, 1, cfg.TeachingWeekFor(termStart.AddDate(0, 0, 6)))
	assert.Equal(t, 2, cfg.TeachingWeekFor(termStart.AddDate(0, 0, 7)))
	assert.Equal(t, 0, cfg.TeachingWeekFor(termStart.AddDate(0, 0, -1)))

	assert.Equal(t, 1, WeekdayFor(termStart))                  // Senin
	assert.Equal(t, 7, WeekdayFor(termStart.AddDate(0, 0, 6))) // Minggu

	// Zona non-UTC: hari mengikuti tanggal ternormalisasi yang sama dengan
	// pekan. Minggu 23:00 UTC-5 sudah Senin menurut UTC.
	loc := time.FixedZone("UTC-5", -5*60*60)
	sundayNight := time.Date(2026, 3, 8, 23, 0, 0, 0, loc)
	assert.Equal(t, 1, WeekdayFor(sundayNight))
	assert.Equal(t, 2, cfg.TeachingWeekFor(sundayNight))
}
