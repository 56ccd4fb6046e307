// file: internals/features/school/attendance/service/testutil_test.go
package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"kampusku_backend/internals/features/school/attendance/model"
)

// Skema test sqlite ditulis manual (bukan AutoMigrate) karena tag model
// memakai default Postgres (gen_random_uuid, jsonb). Index unik wajib ada
// supaya jalur ON CONFLICT ... DO NOTHING ikut teruji.
var testSchema = []string{
	`CREATE TABLE course_sessions (
		course_session_id TEXT PRIMARY KEY,
		course_session_course_code TEXT NOT NULL,
		course_session_course_name TEXT NOT NULL,
		course_session_teacher_names TEXT,
		course_session_room TEXT,
		course_session_start_at DATETIME NOT NULL,
		course_session_end_at DATETIME NOT NULL,
		course_session_teaching_week INTEGER NOT NULL,
		course_session_weekday INTEGER NOT NULL,
		course_session_requires_checkin NUMERIC NOT NULL DEFAULT 1,
		course_session_created_at DATETIME,
		course_session_updated_at DATETIME,
		course_session_deleted_at DATETIME
	)`,
	`CREATE TABLE attendance_records (
		attendance_record_session_id TEXT NOT NULL,
		attendance_record_student_id TEXT NOT NULL,
		attendance_record_final_status TEXT,
		attendance_record_pending_status TEXT,
		attendance_record_live_status TEXT NOT NULL DEFAULT 'unstarted',
		attendance_record_checkin_at DATETIME,
		attendance_record_checkin_source TEXT,
		attendance_record_checkin_window_round INTEGER,
		attendance_record_created_at DATETIME,
		attendance_record_updated_at DATETIME,
		PRIMARY KEY (attendance_record_session_id, attendance_record_student_id)
	)`,
	`CREATE TABLE verification_windows (
		verification_window_id TEXT PRIMARY KEY,
		verification_window_session_id TEXT NOT NULL,
		verification_window_round INTEGER NOT NULL,
		verification_window_open_at DATETIME NOT NULL,
		verification_window_duration_minutes INTEGER NOT NULL,
		verification_window_created_at DATETIME,
		UNIQUE (verification_window_session_id, verification_window_round)
	)`,
	`CREATE TABLE attendance_stats (
		attendance_stats_id TEXT PRIMARY KEY,
		attendance_stats_report_date DATETIME NOT NULL,
		attendance_stats_session_id TEXT NOT NULL,
		attendance_stats_teaching_week INTEGER NOT NULL,
		attendance_stats_weekday INTEGER NOT NULL,
		attendance_stats_course_code TEXT NOT NULL,
		attendance_stats_total_count INTEGER NOT NULL,
		attendance_stats_present_count INTEGER NOT NULL,
		attendance_stats_absent_count INTEGER NOT NULL,
		attendance_stats_truant_count INTEGER NOT NULL,
		attendance_stats_leave_count INTEGER NOT NULL,
		attendance_stats_created_at DATETIME,
		UNIQUE (attendance_stats_report_date, attendance_stats_session_id)
	)`,
	`CREATE TABLE absence_details (
		absence_detail_id TEXT PRIMARY KEY,
		absence_detail_report_date DATETIME NOT NULL,
		absence_detail_session_id TEXT NOT NULL,
		absence_detail_student_id TEXT NOT NULL,
		absence_detail_resolved_status TEXT NOT NULL,
		absence_detail_created_at DATETIME,
		UNIQUE (absence_detail_report_date, absence_detail_session_id, absence_detail_student_id)
	)`,
	`CREATE TABLE attendance_histories (
		attendance_history_session_id TEXT NOT NULL,
		attendance_history_student_id TEXT NOT NULL,
		attendance_history_final_status TEXT,
		attendance_history_pending_status TEXT,
		attendance_history_live_status TEXT NOT NULL,
		attendance_history_checkin_at DATETIME,
		attendance_history_checkin_source TEXT,
		attendance_history_checkin_window_round INTEGER,
		attendance_history_archived_at DATETIME,
		PRIMARY KEY (attendance_history_session_id, attendance_history_student_id)
	)`,
	`CREATE TABLE absence_rates (
		absence_rate_id TEXT PRIMARY KEY,
		absence_rate_student_id TEXT NOT NULL,
		absence_rate_course_code TEXT NOT NULL,
		absence_rate_completed_sessions INTEGER NOT NULL,
		absence_rate_absent_count INTEGER NOT NULL,
		absence_rate_truant_count INTEGER NOT NULL,
		absence_rate_leave_count INTEGER NOT NULL,
		absence_rate_absence_rate REAL NOT NULL,
		absence_rate_truant_rate REAL NOT NULL,
		absence_rate_leave_rate REAL NOT NULL,
		absence_rate_rebuilt_at DATETIME
	)`,
	`CREATE UNIQUE INDEX uq_absence_rates_student_course
		ON absence_rates (absence_rate_student_id, absence_rate_course_code)`,
	`CREATE TABLE term_settings (
		term_setting_key TEXT PRIMARY KEY,
		term_setting_value TEXT NOT NULL,
		term_setting_updated_at DATETIME
	)`,
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	for _, ddl := range testSchema {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func seedSession(t *testing.T, db *gorm.DB, courseCode string, week, weekday int, start time.Time, requires bool) *model.CourseSessionModel {
	t.Helper()
	sess := &model.CourseSessionModel{
		CourseSessionId:              uuid.New(),
		CourseSessionCourseCode:      courseCode,
		CourseSessionCourseName:      courseCode + " (test)",
		CourseSessionStartAt:         start,
		CourseSessionEndAt:           start.Add(100 * time.Minute),
		CourseSessionTeachingWeek:    week,
		CourseSessionWeekday:         weekday,
		CourseSessionRequiresCheckin: requires,
	}
	require.NoError(t, db.Create(sess).Error)
	if !requires {
		// GORM omits zero-value fields that carry a default tag, so false
		// would silently become the schema default (true) without this.
		require.NoError(t, db.Model(sess).
			Update("course_session_requires_checkin", false).Error)
	}
	return sess
}

func seedRecord(t *testing.T, db *gorm.DB, sessionID uuid.UUID, live model.AttendanceStatus, final *model.AttendanceStatus) uuid.UUID {
	t.Helper()
	studentID := uuid.New()
	rec := &model.AttendanceRecordModel{
		AttendanceRecordSessionId:   sessionID,
		AttendanceRecordStudentId:   studentID,
		AttendanceRecordLiveStatus:  live,
		AttendanceRecordFinalStatus: final,
	}
	require.NoError(t, db.Create(rec).Error)
	return studentID
}

func seedTermSettings(t *testing.T, db *gorm.DB, startDate, maxWeeks string) {
	t.Helper()
	rows := []model.TermSettingModel{
		{TermSettingKey: model.TermSettingKeyStartDate, TermSettingValue: startDate},
		{TermSettingKey: model.TermSettingKeyMaxWeeks, TermSettingValue: maxWeeks},
	}
	require.NoError(t, db.Create(&rows).Error)
}

func finalPtr(s model.AttendanceStatus) *model.AttendanceStatus { return &s }
