// file: internals/features/school/attendance/model/attendance_record_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AttendanceRecordModel: satu baris per (session, student).
//
// Tiga kolom status ditulis oleh pipeline yang berbeda dan TIDAK saling
// menimpa: final (override admin / keputusan terminal), pending (workflow
// izin yang masih berjalan), live (pipeline check-in realtime). Mana yang
// berlaku ditentukan prioritas tetap final > pending > live, bukan recency.
// Jangan sekali-kali digabung jadi satu kolom.
type AttendanceRecordModel struct {
	AttendanceRecordSessionId uuid.UUID `gorm:"type:uuid;primaryKey;column:attendance_record_session_id" json:"attendance_record_session_id"`
	AttendanceRecordStudentId uuid.UUID `gorm:"type:uuid;primaryKey;column:attendance_record_student_id" json:"attendance_record_student_id"`

	AttendanceRecordFinalStatus   *AttendanceStatus `gorm:"type:varchar(20);column:attendance_record_final_status"   json:"attendance_record_final_status,omitempty"`
	AttendanceRecordPendingStatus *AttendanceStatus `gorm:"type:varchar(20);column:attendance_record_pending_status" json:"attendance_record_pending_status,omitempty"`
	AttendanceRecordLiveStatus    AttendanceStatus  `gorm:"type:varchar(20);not null;default:'unstarted';column:attendance_record_live_status" json:"attendance_record_live_status"`

	AttendanceRecordCheckinAt *time.Time `gorm:"column:attendance_record_checkin_at" json:"attendance_record_checkin_at,omitempty"`

	// Metadata sumber check-in (method/device/ip), raw JSON dari pipeline check-in.
	AttendanceRecordCheckinSource datatypes.JSON `gorm:"type:jsonb;column:attendance_record_checkin_source" json:"attendance_record_checkin_source,omitempty"`

	// Ronde verification window yang mengkredit check-in ini (nil = check-in biasa).
	AttendanceRecordCheckinWindowRound *int `gorm:"type:smallint;column:attendance_record_checkin_window_round" json:"attendance_record_checkin_window_round,omitempty"`

	AttendanceRecordCreatedAt time.Time  `gorm:"column:attendance_record_created_at;autoCreateTime" json:"attendance_record_created_at"`
	AttendanceRecordUpdatedAt *time.Time `gorm:"column:attendance_record_updated_at;autoUpdateTime" json:"attendance_record_updated_at,omitempty"`
}

func (AttendanceRecordModel) TableName() string { return "attendance_records" }
