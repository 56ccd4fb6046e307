// file: internals/features/school/attendance/service/roster_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kampusku_backend/internals/features/school/attendance/model"
)

/* =========================
   Materialisasi roster + penerbitan window susulan
   ========================= */

type RosterService struct {
	DB *gorm.DB
}

func NewRosterService(db *gorm.DB) *RosterService { return &RosterService{DB: db} }

// MaterializeRoster membuat record "unstarted" untuk daftar mahasiswa satu
// sesi. Insert-if-absent per (session, student): pemanggilan ulang tidak
// menimpa status yang sudah berubah. Mengembalikan jumlah baris baru.
func (s *RosterService) MaterializeRoster(ctx context.Context, sessionID uuid.UUID, studentIDs []uuid.UUID) (int, error) {
	if len(studentIDs) == 0 {
		return 0, nil
	}

	var sess model.CourseSessionModel
	if err := s.DB.WithContext(ctx).First(&sess, "course_session_id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, invariantf(nil, "roster menunjuk sesi %s yang tidak ada", sessionID)
		}
		return 0, err
	}

	records := make([]model.AttendanceRecordModel, 0, len(studentIDs))
	for _, sid := range studentIDs {
		records = append(records, model.AttendanceRecordModel{
			AttendanceRecordSessionId:  sessionID,
			AttendanceRecordStudentId:  sid,
			AttendanceRecordLiveStatus: model.AttendanceStatusUnstarted,
		})
	}

	res := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "attendance_record_session_id"},
			{Name: "attendance_record_student_id"},
		},
		DoNothing: true,
	}).Create(&records)
	if res.Error != nil {
		return 0, fmt.Errorf("materialisasi roster sesi %s: %w", sessionID, res.Error)
	}
	return int(res.RowsAffected), nil
}

// OpenVerificationWindow menerbitkan window susulan ronde berikutnya untuk
// satu sesi. Ditolak kalau sesinya tidak ada (korupsi upstream) atau masih
// ada window yang berjalan.
func (s *RosterService) OpenVerificationWindow(ctx context.Context, sessionID uuid.UUID, durationMinutes int, now time.Time) (*model.VerificationWindowModel, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("durasi window harus > 0, dapat %d", durationMinutes)
	}

	var sess model.CourseSessionModel
	if err := s.DB.WithContext(ctx).First(&sess, "course_session_id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invariantf(nil, "window menunjuk sesi %s yang tidak ada", sessionID)
		}
		return nil, err
	}

	var window *model.VerificationWindowModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		last, err := latestWindow(tx, sessionID)
		if err != nil {
			return err
		}
		round := 1
		if last != nil {
			if now.Before(last.CloseAt()) {
				return fmt.Errorf("window ronde %d sesi %s masih berjalan", last.VerificationWindowRound, sessionID)
			}
			round = last.VerificationWindowRound + 1
		}

		w := model.VerificationWindowModel{
			VerificationWindowId:              uuid.New(),
			VerificationWindowSessionId:       sessionID,
			VerificationWindowRound:           round,
			VerificationWindowOpenAt:          now,
			VerificationWindowDurationMinutes: durationMinutes,
		}
		if err := tx.Create(&w).Error; err != nil {
			return fmt.Errorf("terbitkan window ronde %d: %w", round, err)
		}
		window = &w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return window, nil
}
