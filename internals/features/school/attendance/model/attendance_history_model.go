// file: internals/features/school/attendance/model/attendance_history_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AttendanceHistoryModel: salinan durable AttendanceRecord saat diarsip.
// Primary key SAMA dengan record aslinya - ini jangkar idempotensi: arsip
// ulang harus jadi no-op, bukan baris ganda.
type AttendanceHistoryModel struct {
	AttendanceHistorySessionId uuid.UUID `gorm:"type:uuid;primaryKey;column:attendance_history_session_id" json:"attendance_history_session_id"`
	AttendanceHistoryStudentId uuid.UUID `gorm:"type:uuid;primaryKey;column:attendance_history_student_id" json:"attendance_history_student_id"`

	AttendanceHistoryFinalStatus   *AttendanceStatus `gorm:"type:varchar(20);column:attendance_history_final_status"   json:"attendance_history_final_status,omitempty"`
	AttendanceHistoryPendingStatus *AttendanceStatus `gorm:"type:varchar(20);column:attendance_history_pending_status" json:"attendance_history_pending_status,omitempty"`
	AttendanceHistoryLiveStatus    AttendanceStatus  `gorm:"type:varchar(20);not null;column:attendance_history_live_status" json:"attendance_history_live_status"`

	AttendanceHistoryCheckinAt          *time.Time     `gorm:"column:attendance_history_checkin_at" json:"attendance_history_checkin_at,omitempty"`
	AttendanceHistoryCheckinSource      datatypes.JSON `gorm:"type:jsonb;column:attendance_history_checkin_source" json:"attendance_history_checkin_source,omitempty"`
	AttendanceHistoryCheckinWindowRound *int           `gorm:"type:smallint;column:attendance_history_checkin_window_round" json:"attendance_history_checkin_window_round,omitempty"`

	AttendanceHistoryArchivedAt time.Time `gorm:"column:attendance_history_archived_at;autoCreateTime" json:"attendance_history_archived_at"`
}

func (AttendanceHistoryModel) TableName() string { return "attendance_histories" }

// NewHistoryFromRecord membekukan satu record live jadi baris arsip.
func NewHistoryFromRecord(r *AttendanceRecordModel) AttendanceHistoryModel {
	return AttendanceHistoryModel{
		AttendanceHistorySessionId:          r.AttendanceRecordSessionId,
		AttendanceHistoryStudentId:          r.AttendanceRecordStudentId,
		AttendanceHistoryFinalStatus:        r.AttendanceRecordFinalStatus,
		AttendanceHistoryPendingStatus:      r.AttendanceRecordPendingStatus,
		AttendanceHistoryLiveStatus:         r.AttendanceRecordLiveStatus,
		AttendanceHistoryCheckinAt:          r.AttendanceRecordCheckinAt,
		AttendanceHistoryCheckinSource:      r.AttendanceRecordCheckinSource,
		AttendanceHistoryCheckinWindowRound: r.AttendanceRecordCheckinWindowRound,
	}
}

// AsRecord merekonstruksi bentuk record dari arsip - dipakai job koreksi
// histori untuk me-resolve ulang tanpa menyentuh tabel live.
func (h *AttendanceHistoryModel) AsRecord() AttendanceRecordModel {
	return AttendanceRecordModel{
		AttendanceRecordSessionId:          h.AttendanceHistorySessionId,
		AttendanceRecordStudentId:          h.AttendanceHistoryStudentId,
		AttendanceRecordFinalStatus:        h.AttendanceHistoryFinalStatus,
		AttendanceRecordPendingStatus:      h.AttendanceHistoryPendingStatus,
		AttendanceRecordLiveStatus:         h.AttendanceHistoryLiveStatus,
		AttendanceRecordCheckinAt:          h.AttendanceHistoryCheckinAt,
		AttendanceRecordCheckinSource:      h.AttendanceHistoryCheckinSource,
		AttendanceRecordCheckinWindowRound: h.AttendanceHistoryCheckinWindowRound,
	}
}
