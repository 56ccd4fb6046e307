// file: internals/features/school/attendance/service/rate_rebuild_service.go
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kampusku_backend/internals/features/school/attendance/model"
	"kampusku_backend/internals/features/school/attendance/status"
	"kampusku_backend/pkg/logger"
)

/* =========================
   Job Rebuild Rate Jangka Panjang
   ========================= */

type RateRebuildService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewRateRebuildService(db *gorm.DB, log *zap.Logger) *RateRebuildService {
	if log == nil {
		log = zap.NewNop()
	}
	return &RateRebuildService{DB: db, Log: log}
}

type RebuildSummary struct {
	RowsWritten int `json:"rows_written"`
}

type courseCompletedRow struct {
	CourseCode string `gorm:"column:course_code"`
	Completed  int    `gorm:"column:completed"`
}

type rosterPairRow struct {
	StudentId  uuid.UUID `gorm:"column:student_id"`
	CourseCode string    `gorm:"column:course_code"`
}

type absenceCountRow struct {
	StudentId      uuid.UUID `gorm:"column:student_id"`
	CourseCode     string    `gorm:"column:course_code"`
	ResolvedStatus string    `gorm:"column:resolved_status"`
	N              int       `gorm:"column:n"`
}

// RebuildStudentAbsenceRates menulis ulang SELURUH tabel absence_rates dari
// tiga agregat independen (sesi selesai per course, roster terarsip, detail
// absen). Rebuild penuh, bukan diff inkremental - diffing tiga sumber rawan
// salah. Delete-all + reinsert dibungkus satu transaksi; di Postgres (MVCC)
// pembaca tidak pernah melihat tabel kosong.
func (s *RateRebuildService) RebuildStudentAbsenceRates(ctx context.Context) (RebuildSummary, error) {
	var sum RebuildSummary

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1) Jumlah sesi selesai per course - baris stats = sesi yang sudah
		// direkap. Sesi yang di-soft-delete dikecualikan di sini juga,
		// supaya pembagi dan pembilang dihitung dari himpunan sesi yang sama.
		var completed []courseCompletedRow
		if err := tx.Table("attendance_stats").
			Select("attendance_stats_course_code AS course_code, COUNT(*) AS completed").
			Joins("JOIN course_sessions ON course_session_id = attendance_stats_session_id AND course_session_deleted_at IS NULL").
			Group("attendance_stats_course_code").
			Scan(&completed).Error; err != nil {
			return fmt.Errorf("hitung sesi selesai per course: %w", err)
		}
		completedByCourse := make(map[string]int, len(completed))
		for _, row := range completed {
			completedByCourse[row.CourseCode] = row.Completed
		}

		// 2) Pasangan (student, course) dari roster terarsip. Sesi yang
		// di-soft-delete tidak ikut dihitung.
		var pairs []rosterPairRow
		if err := tx.Table("attendance_histories").
			Select("DISTINCT attendance_history_student_id AS student_id, course_session_course_code AS course_code").
			Joins("JOIN course_sessions ON course_session_id = attendance_history_session_id AND course_session_deleted_at IS NULL").
			Scan(&pairs).Error; err != nil {
			return fmt.Errorf("ambil pasangan student-course: %w", err)
		}

		// 3) Hitungan absen/izin/truant per (student, course, tag).
		var counts []absenceCountRow
		if err := tx.Table("absence_details").
			Select("absence_detail_student_id AS student_id, course_session_course_code AS course_code, absence_detail_resolved_status AS resolved_status, COUNT(*) AS n").
			Joins("JOIN course_sessions ON course_session_id = absence_detail_session_id AND course_session_deleted_at IS NULL").
			Group("absence_detail_student_id, course_session_course_code, absence_detail_resolved_status").
			Scan(&counts).Error; err != nil {
			return fmt.Errorf("hitung detail absen: %w", err)
		}

		type key struct {
			student uuid.UUID
			course  string
		}
		rows := make(map[key]*model.AbsenceRateModel, len(pairs))
		ensure := func(k key) *model.AbsenceRateModel {
			if r, ok := rows[k]; ok {
				return r
			}
			r := &model.AbsenceRateModel{
				AbsenceRateId:                uuid.New(),
				AbsenceRateStudentId:         k.student,
				AbsenceRateCourseCode:        k.course,
				AbsenceRateCompletedSessions: completedByCourse[k.course],
			}
			rows[k] = r
			return r
		}

		for _, p := range pairs {
			ensure(key{p.StudentId, p.CourseCode})
		}
		for _, c := range counts {
			r := ensure(key{c.StudentId, c.CourseCode})
			switch status.CountBucket(status.Tag(c.ResolvedStatus)) {
			case status.BucketTruant:
				r.AbsenceRateTruantCount += c.N
			case status.BucketLeave:
				r.AbsenceRateLeaveCount += c.N
			case status.BucketPresent:
				// detail absen tidak pernah berisi tag hadir; abaikan defensive case
			default:
				r.AbsenceRateAbsentCount += c.N
			}
		}

		out := make([]model.AbsenceRateModel, 0, len(rows))
		for _, r := range rows {
			// Pembagi nol dijaga per-rate: tanpa sesi selesai semua rate 0,
			// bukan NaN/error.
			if n := r.AbsenceRateCompletedSessions; n > 0 {
				r.AbsenceRateAbsenceRate = float64(r.AbsenceRateAbsentCount+r.AbsenceRateTruantCount) / float64(n)
				r.AbsenceRateTruantRate = float64(r.AbsenceRateTruantCount) / float64(n)
				r.AbsenceRateLeaveRate = float64(r.AbsenceRateLeaveCount) / float64(n)
			}
			out = append(out, *r)
		}

		if err := tx.Exec("DELETE FROM absence_rates").Error; err != nil {
			return fmt.Errorf("kosongkan tabel rate: %w", err)
		}
		if len(out) > 0 {
			if err := tx.CreateInBatches(out, 200).Error; err != nil {
				return fmt.Errorf("tulis ulang tabel rate: %w", err)
			}
		}
		sum.RowsWritten = len(out)
		return nil
	})
	if err != nil {
		s.Log.Error("rebuild rate gagal",
			zap.String(logger.FieldJob, "rate_rebuild"),
			zap.Error(err))
		return RebuildSummary{}, err
	}

	s.Log.Info("rebuild rate selesai",
		zap.String(logger.FieldJob, "rate_rebuild"),
		zap.Int("rows", sum.RowsWritten))
	return sum, nil
}
