// file: internals/features/school/attendance/service/aggregation_service.go
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
   Job Rekap Harian (rollup + arsip + purge)
   ========================= */

type AggregationService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewAggregationService(db *gorm.DB, log *zap.Logger) *AggregationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AggregationService{DB: db, Log: log}
}

// AggregationSummary: laporan satu run (semua angka 0 + Skipped kalau guard
// term membuat run jadi no-op).
type AggregationSummary struct {
	ReportDate        time.Time `json:"report_date"`
	TeachingWeek      int       `json:"teaching_week"`
	Weekday           int       `json:"weekday"`
	Skipped           bool      `json:"skipped"`
	SessionsProcessed int       `json:"sessions_processed"`
	StatsInserted     int       `json:"stats_inserted"`
	DetailsInserted   int       `json:"details_inserted"`
	RecordsArchived   int       `json:"records_archived"`
	RecordsPurged     int       `json:"records_purged"`
}

// RunDailyAggregation menjalankan rekap untuk satu reportDate dalam SATU
// transaksi: hitung stats per sesi, tulis detail absen, salin record mentah
// ke arsip, lalu purge record live - semua idempoten per kunci sehingga run
// ulang tanggal yang sama adalah no-op, bukan duplikat.
//
// Guard term: cfg nil atau pekan di luar term → sukses no-op. Scheduler
// boleh memanggil tiap hari tanpa logika kalender sendiri.
func (s *AggregationService) RunDailyAggregation(ctx context.Context, reportDate time.Time, cfg *TermConfig) (AggregationSummary, error) {
	sum := AggregationSummary{ReportDate: dateOnly(reportDate)}

	if cfg == nil {
		s.Log.Info("rekap dilewati: konfigurasi term belum ada",
			zap.String(logger.FieldJob, "daily_aggregation"),
			zap.Time(logger.FieldReportDate, sum.ReportDate))
		sum.Skipped = true
		return sum, nil
	}

	week := cfg.TeachingWeekFor(reportDate)
	weekday := WeekdayFor(reportDate)
	if week < 1 || week > cfg.MaxWeeks {
		s.Log.Info("rekap dilewati: di luar rentang term",
			zap.String(logger.FieldJob, "daily_aggregation"),
			zap.Int(logger.FieldWeek, week),
			zap.Int("max_weeks", cfg.MaxWeeks))
		sum.Skipped = true
		return sum, nil
	}
	sum.TeachingWeek = week
	sum.Weekday = weekday

	now := time.Now()

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sessions []model.CourseSessionModel
		if err := tx.
			Where("course_session_teaching_week = ? AND course_session_weekday = ? AND course_session_requires_checkin = ?",
				week, weekday, true).
			Find(&sessions).Error; err != nil {
			return fmt.Errorf("ambil sesi pekan %d hari %d: %w", week, weekday, err)
		}

		// Scope purge TIDAK BOLEH melebar dari daftar sesi (week, weekday)
		// ini - menghapus lintas pekan = menghancurkan data periode lain.
		sessionIDs := make([]uuid.UUID, 0, len(sessions))

		for i := range sessions {
			sess := &sessions[i]

			var records []model.AttendanceRecordModel
			if err := tx.
				Where("attendance_record_session_id = ?", sess.CourseSessionId).
				Find(&records).Error; err != nil {
				return fmt.Errorf("ambil roster sesi %s: %w", sess.CourseSessionId, err)
			}

			window, err := latestWindow(tx, sess.CourseSessionId)
			if err != nil {
				return fmt.Errorf("ambil window sesi %s: %w", sess.CourseSessionId, err)
			}

			roll := rollupSession(sess, records, window, sum.ReportDate, now)

			res := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "attendance_stats_report_date"},
					{Name: "attendance_stats_session_id"},
				},
				DoNothing: true,
			}).Create(&roll.Stats)
			if res.Error != nil {
				return fmt.Errorf("insert stats sesi %s: %w", sess.CourseSessionId, res.Error)
			}
			sum.StatsInserted += int(res.RowsAffected)

			for j := range roll.Details {
				res := tx.Clauses(clause.OnConflict{
					Columns: []clause.Column{
						{Name: "absence_detail_report_date"},
						{Name: "absence_detail_session_id"},
						{Name: "absence_detail_student_id"},
					},
					DoNothing: true,
				}).Create(&roll.Details[j])
				if res.Error != nil {
					return fmt.Errorf("insert detail absen: %w", res.Error)
				}
				sum.DetailsInserted += int(res.RowsAffected)
			}

			// Arsip: PK arsip = PK record, jadi arsip ulang otomatis no-op.
			for j := range records {
				hist := model.NewHistoryFromRecord(&records[j])
				res := tx.Clauses(clause.OnConflict{
					Columns: []clause.Column{
						{Name: "attendance_history_session_id"},
						{Name: "attendance_history_student_id"},
					},
					DoNothing: true,
				}).Create(&hist)
				if res.Error != nil {
					return fmt.Errorf("arsip record: %w", res.Error)
				}
				sum.RecordsArchived += int(res.RowsAffected)
			}

			sum.SessionsProcessed++
			sessionIDs = append(sessionIDs, sess.CourseSessionId)
		}

		if len(sessionIDs) > 0 {
			res := tx.
				Where("attendance_record_session_id IN ?", sessionIDs).
				Delete(&model.AttendanceRecordModel{})
			if res.Error != nil {
				return fmt.Errorf("purge record live: %w", res.Error)
			}
			sum.RecordsPurged = int(res.RowsAffected)
		}

		return nil
	})
	if err != nil {
		s.Log.Error("rekap harian gagal, transaksi di-rollback utuh",
			zap.String(logger.FieldJob, "daily_aggregation"),
			zap.Time(logger.FieldReportDate, sum.ReportDate),
			zap.Error(err))
		return AggregationSummary{ReportDate: sum.ReportDate}, err
	}

	s.Log.Info("rekap harian selesai",
		zap.String(logger.FieldJob, "daily_aggregation"),
		zap.Time(logger.FieldReportDate, sum.ReportDate),
		zap.Int(logger.FieldWeek, sum.TeachingWeek),
		zap.Int(logger.FieldWeekday, sum.Weekday),
		zap.Int("sessions", sum.SessionsProcessed),
		zap.Int("archived", sum.RecordsArchived),
		zap.Int("purged", sum.RecordsPurged))
	return sum, nil
}
