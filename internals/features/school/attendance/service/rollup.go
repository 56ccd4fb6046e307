// file: internals/features/school/attendance/service/rollup.go
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kampusku_backend/internals/features/school/attendance/model"
	"kampusku_backend/internals/features/school/attendance/status"
)

// latestWindow mengambil window susulan ronde tertinggi untuk satu sesi
// (nil kalau sesi tidak pernah punya window).
func latestWindow(tx *gorm.DB, sessionID uuid.UUID) (*model.VerificationWindowModel, error) {
	var w model.VerificationWindowModel
	err := tx.
		Where("verification_window_session_id = ?", sessionID).
		Order("verification_window_round DESC").
		First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// sessionRollup: hasil hitung satu sesi - baris stats + baris detail absen.
type sessionRollup struct {
	Stats   model.AttendanceStatsModel
	Details []model.AbsenceDetailModel
}

// rollupSession meresolve seluruh roster satu sesi pada satu titik waktu dan
// menghitung ember (hadir/absen/truant/izin). Izin = leave + leave_pending
// digabung (lihat DESIGN.md).
func rollupSession(
	sess *model.CourseSessionModel,
	records []model.AttendanceRecordModel,
	window *model.VerificationWindowModel,
	reportDate time.Time,
	now time.Time,
) sessionRollup {
	stats := model.AttendanceStatsModel{
		AttendanceStatsId:           uuid.New(),
		AttendanceStatsReportDate:   dateOnly(reportDate),
		AttendanceStatsSessionId:    sess.CourseSessionId,
		AttendanceStatsTeachingWeek: sess.CourseSessionTeachingWeek,
		AttendanceStatsWeekday:      sess.CourseSessionWeekday,
		AttendanceStatsCourseCode:   sess.CourseSessionCourseCode,
		AttendanceStatsTotalCount:   len(records),
	}

	var details []model.AbsenceDetailModel
	for i := range records {
		rec := &records[i]
		resolved := status.Resolve(rec, sess, window, now)
		bucket := status.CountBucket(resolved.Tag)

		switch bucket {
		case status.BucketPresent:
			stats.AttendanceStatsPresentCount++
			continue
		case status.BucketTruant:
			stats.AttendanceStatsTruantCount++
		case status.BucketLeave:
			stats.AttendanceStatsLeaveCount++
		default:
			stats.AttendanceStatsAbsentCount++
		}

		// Semua yang tidak hadir dapat baris detail, dengan tag resolve apa
		// adanya - run koreksi belakangan masih bisa re-bucket.
		details = append(details, model.AbsenceDetailModel{
			AbsenceDetailId:             uuid.New(),
			AbsenceDetailReportDate:     stats.AttendanceStatsReportDate,
			AbsenceDetailSessionId:      sess.CourseSessionId,
			AbsenceDetailStudentId:      rec.AttendanceRecordStudentId,
			AbsenceDetailResolvedStatus: string(resolved.Tag),
		})
	}

	return sessionRollup{Stats: stats, Details: details}
}
