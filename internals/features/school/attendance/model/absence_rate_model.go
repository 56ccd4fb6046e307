// file: internals/features/school/attendance/model/absence_rate_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// AbsenceRateModel: tabel turunan murni (student x course). Tidak pernah
// di-patch inkremental - job rebuild menulis ulang seluruh isi tabel.
type AbsenceRateModel struct {
	AbsenceRateId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:absence_rate_id" json:"absence_rate_id"`

	AbsenceRateStudentId  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_absence_rates_student_course;column:absence_rate_student_id"        json:"absence_rate_student_id"`
	AbsenceRateCourseCode string    `gorm:"type:varchar(32);not null;uniqueIndex:uq_absence_rates_student_course;column:absence_rate_course_code" json:"absence_rate_course_code"`

	AbsenceRateCompletedSessions int `gorm:"not null;column:absence_rate_completed_sessions" json:"absence_rate_completed_sessions"`
	AbsenceRateAbsentCount       int `gorm:"not null;column:absence_rate_absent_count"       json:"absence_rate_absent_count"`
	AbsenceRateTruantCount       int `gorm:"not null;column:absence_rate_truant_count"       json:"absence_rate_truant_count"`
	AbsenceRateLeaveCount        int `gorm:"not null;column:absence_rate_leave_count"        json:"absence_rate_leave_count"`

	AbsenceRateAbsenceRate float64 `gorm:"not null;column:absence_rate_absence_rate" json:"absence_rate_absence_rate"`
	AbsenceRateTruantRate  float64 `gorm:"not null;column:absence_rate_truant_rate"  json:"absence_rate_truant_rate"`
	AbsenceRateLeaveRate   float64 `gorm:"not null;column:absence_rate_leave_rate"   json:"absence_rate_leave_rate"`

	AbsenceRateRebuiltAt time.Time `gorm:"column:absence_rate_rebuilt_at;autoCreateTime" json:"absence_rate_rebuilt_at"`
}

func (AbsenceRateModel) TableName() string { return "absence_rates" }
