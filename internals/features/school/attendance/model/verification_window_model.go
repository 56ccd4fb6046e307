// file: internals/features/school/attendance/model/verification_window_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// VerificationWindowModel: jendela check-in susulan per sesi. Maksimal satu
// window aktif pada satu waktu; ronde lama tetap tersimpan dan immutable.
type VerificationWindowModel struct {
	VerificationWindowId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:verification_window_id" json:"verification_window_id"`

	VerificationWindowSessionId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_verification_windows_session_round;column:verification_window_session_id" json:"verification_window_session_id"`
	VerificationWindowRound     int       `gorm:"type:smallint;not null;uniqueIndex:uq_verification_windows_session_round;column:verification_window_round"   json:"verification_window_round"`

	VerificationWindowOpenAt          time.Time `gorm:"not null;column:verification_window_open_at"          json:"verification_window_open_at"`
	VerificationWindowDurationMinutes int       `gorm:"not null;column:verification_window_duration_minutes" json:"verification_window_duration_minutes"`

	VerificationWindowCreatedAt time.Time `gorm:"column:verification_window_created_at;autoCreateTime" json:"verification_window_created_at"`
}

func (VerificationWindowModel) TableName() string { return "verification_windows" }

// CloseAt = open + durasi (interval setengah terbuka [open, close)).
func (w *VerificationWindowModel) CloseAt() time.Time {
	return w.VerificationWindowOpenAt.Add(time.Duration(w.VerificationWindowDurationMinutes) * time.Minute)
}
