// file: internals/features/school/attendance/service/status_snapshot_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kampusku_backend/internals/features/school/attendance/model"
	"kampusku_backend/internals/features/school/attendance/status"
)

type StatusService struct {
	DB *gorm.DB
}

func NewStatusService(db *gorm.DB) *StatusService { return &StatusService{DB: db} }

// StatusSnapshot: hasil resolve + potongan data yang dipakai meresolvenya.
type StatusSnapshot struct {
	State   status.ResolvedState           `json:"state"`
	Session model.CourseSessionModel       `json:"session"`
	Record  model.AttendanceRecordModel    `json:"record"`
	Window  *model.VerificationWindowModel `json:"window,omitempty"`
}

// ResolveNow mengambil record + sesi + window dalam SATU transaksi (snapshot
// konsisten - final yang ditulis di antara dua read terpisah tidak boleh
// menghasilkan state sobek) lalu menjalankan resolver murni.
func (s *StatusService) ResolveNow(ctx context.Context, sessionID, studentID uuid.UUID, now time.Time) (*StatusSnapshot, error) {
	var snap StatusSnapshot

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&snap.Session, "course_session_id = ?", sessionID).Error; err != nil {
			return err
		}
		if err := tx.First(&snap.Record,
			"attendance_record_session_id = ? AND attendance_record_student_id = ?",
			sessionID, studentID).Error; err != nil {
			return err
		}
		window, err := latestWindow(tx, sessionID)
		if err != nil {
			return err
		}
		snap.Window = window
		return nil
	})
	if err != nil {
		return nil, err
	}

	snap.State = status.Resolve(&snap.Record, &snap.Session, snap.Window, now)
	return &snap, nil
}
