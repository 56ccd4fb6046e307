// file: internals/features/school/attendance/service/range_correction_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kampusku_backend/internals/features/school/attendance/model"
	"kampusku_backend/pkg/logger"
)

/* =========================
   Job Koreksi Rentang (backfill historis)
   ========================= */

type CorrectionService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewCorrectionService(db *gorm.DB, log *zap.Logger) *CorrectionService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CorrectionService{DB: db, Log: log}
}

// RebuildAggregationForRange membangun ulang stats + detail absen untuk satu
// (teachingWeek, weekday) - weekday nil berarti seluruh pekan. Beda dengan
// job harian: working set dibaca dari ARSIP, baris stats/detail lama untuk
// rentang itu dihapus dulu, dan arsip tidak pernah disentuh (arsip satu
// arah). Satu transaksi, rollback utuh kalau ada langkah gagal.
func (s *CorrectionService) RebuildAggregationForRange(ctx context.Context, teachingWeek int, weekday *int) error {
	now := time.Now()

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("course_session_teaching_week = ? AND course_session_requires_checkin = ?", teachingWeek, true)
		if weekday != nil {
			q = q.Where("course_session_weekday = ?", *weekday)
		}
		var sessions []model.CourseSessionModel
		if err := q.Find(&sessions).Error; err != nil {
			return fmt.Errorf("ambil sesi rentang: %w", err)
		}
		if len(sessions) == 0 {
			return nil
		}

		sessionIDs := make([]uuid.UUID, 0, len(sessions))
		for i := range sessions {
			sessionIDs = append(sessionIDs, sessions[i].CourseSessionId)
		}

		// Bersihkan hasil lama untuk rentang target, lalu isi ulang.
		if err := tx.
			Where("attendance_stats_session_id IN ?", sessionIDs).
			Delete(&model.AttendanceStatsModel{}).Error; err != nil {
			return fmt.Errorf("hapus stats lama: %w", err)
		}
		if err := tx.
			Where("absence_detail_session_id IN ?", sessionIDs).
			Delete(&model.AbsenceDetailModel{}).Error; err != nil {
			return fmt.Errorf("hapus detail lama: %w", err)
		}

		for i := range sessions {
			sess := &sessions[i]

			var hist []model.AttendanceHistoryModel
			if err := tx.
				Where("attendance_history_session_id = ?", sess.CourseSessionId).
				Find(&hist).Error; err != nil {
				return fmt.Errorf("ambil arsip sesi %s: %w", sess.CourseSessionId, err)
			}
			if len(hist) == 0 {
				continue // sesi belum pernah diarsip, tidak ada yang direkap
			}

			records := make([]model.AttendanceRecordModel, 0, len(hist))
			for j := range hist {
				records = append(records, hist[j].AsRecord())
			}

			window, err := latestWindow(tx, sess.CourseSessionId)
			if err != nil {
				return fmt.Errorf("ambil window sesi %s: %w", sess.CourseSessionId, err)
			}

			// report_date diturunkan dari tanggal sesi - koreksi historis
			// tidak bergantung "hari ini".
			roll := rollupSession(sess, records, window, dateOnly(sess.CourseSessionStartAt), now)

			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "attendance_stats_report_date"},
					{Name: "attendance_stats_session_id"},
				},
				DoNothing: true,
			}).Create(&roll.Stats).Error; err != nil {
				return fmt.Errorf("insert ulang stats: %w", err)
			}
			if len(roll.Details) > 0 {
				if err := tx.Clauses(clause.OnConflict{
					Columns: []clause.Column{
						{Name: "absence_detail_report_date"},
						{Name: "absence_detail_session_id"},
						{Name: "absence_detail_student_id"},
					},
					DoNothing: true,
				}).Create(&roll.Details).Error; err != nil {
					return fmt.Errorf("insert ulang detail: %w", err)
				}
			}
		}

		return nil
	})
	if err != nil {
		s.Log.Error("koreksi rentang gagal",
			zap.String(logger.FieldJob, "range_correction"),
			zap.Int(logger.FieldWeek, teachingWeek),
			zap.Error(err))
		return err
	}

	s.Log.Info("koreksi rentang selesai",
		zap.String(logger.FieldJob, "range_correction"),
		zap.Int(logger.FieldWeek, teachingWeek))
	return nil
}
