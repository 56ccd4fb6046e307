// file: internals/features/school/attendance/model/attendance_stats_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceStatsModel: rekap harian per sesi. Kunci unik (report_date,
// session_id) - job agregasi insert-if-absent, run ulang untuk tanggal yang
// sama jadi no-op, bukan duplikat.
type AttendanceStatsModel struct {
	AttendanceStatsId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_stats_id" json:"attendance_stats_id"`

	AttendanceStatsReportDate time.Time `gorm:"type:date;not null;uniqueIndex:uq_attendance_stats_date_session;column:attendance_stats_report_date" json:"attendance_stats_report_date"`
	AttendanceStatsSessionId  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_stats_date_session;column:attendance_stats_session_id"  json:"attendance_stats_session_id"`

	// Snapshot alamat akademik + course, biar query rekap tidak wajib join.
	AttendanceStatsTeachingWeek int    `gorm:"type:smallint;not null;column:attendance_stats_teaching_week" json:"attendance_stats_teaching_week"`
	AttendanceStatsWeekday      int    `gorm:"type:smallint;not null;column:attendance_stats_weekday"       json:"attendance_stats_weekday"`
	AttendanceStatsCourseCode   string `gorm:"type:varchar(32);not null;index;column:attendance_stats_course_code" json:"attendance_stats_course_code"`

	AttendanceStatsTotalCount   int `gorm:"not null;column:attendance_stats_total_count"   json:"attendance_stats_total_count"`
	AttendanceStatsPresentCount int `gorm:"not null;column:attendance_stats_present_count" json:"attendance_stats_present_count"`
	AttendanceStatsAbsentCount  int `gorm:"not null;column:attendance_stats_absent_count"  json:"attendance_stats_absent_count"`
	AttendanceStatsTruantCount  int `gorm:"not null;column:attendance_stats_truant_count"  json:"attendance_stats_truant_count"`
	AttendanceStatsLeaveCount   int `gorm:"not null;column:attendance_stats_leave_count"   json:"attendance_stats_leave_count"`

	AttendanceStatsCreatedAt time.Time `gorm:"column:attendance_stats_created_at;autoCreateTime" json:"attendance_stats_created_at"`
}

func (AttendanceStatsModel) TableName() string { return "attendance_stats" }
