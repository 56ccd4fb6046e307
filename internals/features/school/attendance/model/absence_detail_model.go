// file: internals/features/school/attendance/model/absence_detail_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// AbsenceDetailModel: satu baris per mahasiswa yang status resolvenya bukan
// "present" pada rekap harian. Kuncinya sama dengan kunci stats + student,
// jadi keberadaan baris detail selalu menyiratkan baris stats-nya.
type AbsenceDetailModel struct {
	AbsenceDetailId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:absence_detail_id" json:"absence_detail_id"`

	AbsenceDetailReportDate time.Time `gorm:"type:date;not null;uniqueIndex:uq_absence_details_key;column:absence_detail_report_date" json:"absence_detail_report_date"`
	AbsenceDetailSessionId  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_absence_details_key;column:absence_detail_session_id"  json:"absence_detail_session_id"`
	AbsenceDetailStudentId  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_absence_details_key;index;column:absence_detail_student_id" json:"absence_detail_student_id"`

	// Tag hasil resolve saat agregasi (absent/truant/leave/leave_pending/...).
	AbsenceDetailResolvedStatus string `gorm:"type:varchar(40);not null;column:absence_detail_resolved_status" json:"absence_detail_resolved_status"`

	AbsenceDetailCreatedAt time.Time `gorm:"column:absence_detail_created_at;autoCreateTime" json:"absence_detail_created_at"`
}

func (AbsenceDetailModel) TableName() string { return "absence_details" }
