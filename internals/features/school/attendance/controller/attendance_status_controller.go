// file: internals/features/school/attendance/controller/attendance_status_controller.go
package controller

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	d "kampusku_backend/internals/features/school/attendance/dto"
	m "kampusku_backend/internals/features/school/attendance/model"
	svc "kampusku_backend/internals/features/school/attendance/service"
	helper "kampusku_backend/internals/helpers"
)

type AttendanceStatusController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAttendanceStatusController(db *gorm.DB, v *validator.Validate) *AttendanceStatusController {
	return &AttendanceStatusController{DB: db, Validate: v}
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	idStr := strings.TrimSpace(c.Params(name))
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", name)
	}
	return uuid.Parse(idStr)
}

// --- PG error mapping ---

type pgSQLErr interface {
	SQLState() string
	Error() string
}

func mapPGError(err error) (int, string) {
	// 23503 = foreign_key_violation, 23505 = unique_violation
	var pgErr pgSQLErr
	if errors.As(err, &pgErr) {
		switch pgErr.SQLState() {
		case "23503":
			return http.StatusBadRequest, "Referensi tidak ditemukan (FK violation)."
		case "23505":
			return http.StatusConflict, "Data duplikat (unique violation)."
		}
	}
	return http.StatusInternalServerError, err.Error()
}

func writePGError(c *fiber.Ctx, err error) error {
	code, msg := mapPGError(err)
	return helper.JsonError(c, code, msg)
}

/* ========================= Status preview ========================= */

// GET /:session_id/students/:student_id/status - resolve state terkini dari
// satu snapshot konsisten. Output = tag + flag aksi, tanpa teks tampilan.
func (ctl *AttendanceStatusController) GetStudentSessionStatus(c *fiber.Ctx) error {
	sessionID, err := parseUUIDParam(c, "session_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	studentID, err := parseUUIDParam(c, "student_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	snap, err := svc.NewStatusService(ctl.DB).ResolveNow(c.UserContext(), sessionID, studentID, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "Record absensi tidak ditemukan")
		}
		return writePGError(c, err)
	}

	resp := d.StudentSessionStatusResponse{
		SessionId:       sessionID,
		StudentId:       studentID,
		Tag:             string(snap.State.Tag),
		Tier:            string(snap.State.Tier),
		CanCheckIn:      snap.State.CanCheckIn,
		CanRequestLeave: snap.State.CanRequestLeave,
		SessionStartAt:  snap.Session.CourseSessionStartAt,
		SessionEndAt:    snap.Session.CourseSessionEndAt,
	}
	if snap.Window != nil {
		w := d.NewVerificationWindowResponse(snap.Window)
		resp.ActiveWindow = &w
	}
	return helper.JsonOK(c, "OK", resp)
}

/* ========================= Roster & window ========================= */

func (ctl *AttendanceStatusController) MaterializeRoster(c *fiber.Ctx) error {
	var req d.MaterializeRosterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("[AttendanceStatus.MaterializeRoster] BodyParser error: %v", err)
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	created, err := svc.NewRosterService(ctl.DB).MaterializeRoster(c.UserContext(), req.SessionId, req.StudentIds)
	if err != nil {
		if svc.IsInvariant(err) {
			return helper.JsonError(c, http.StatusUnprocessableEntity, err.Error())
		}
		return writePGError(c, err)
	}
	return helper.JsonOKWithCode(c, http.StatusCreated, "Roster dimaterialisasi", fiber.Map{
		"session_id":      req.SessionId,
		"records_created": created,
	})
}

func (ctl *AttendanceStatusController) OpenVerificationWindow(c *fiber.Ctx) error {
	var req d.OpenWindowRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("[AttendanceStatus.OpenVerificationWindow] BodyParser error: %v", err)
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	window, err := svc.NewRosterService(ctl.DB).OpenVerificationWindow(
		c.UserContext(), req.SessionId, req.DurationMinutes, time.Now())
	if err != nil {
		if svc.IsInvariant(err) {
			return helper.JsonError(c, http.StatusUnprocessableEntity, err.Error())
		}
		return writePGError(c, err)
	}
	return helper.JsonOKWithCode(c, http.StatusCreated, "Window susulan dibuka", d.NewVerificationWindowResponse(window))
}

/* ========================= Listing rekap ========================= */

func (ctl *AttendanceStatusController) ListStats(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.UserContext()).Model(&m.AttendanceStatsModel{})
	if week := c.QueryInt("teaching_week"); week > 0 {
		q = q.Where("attendance_stats_teaching_week = ?", week)
	}
	if course := strings.TrimSpace(c.Query("course_code")); course != "" {
		q = q.Where("attendance_stats_course_code = ?", course)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return writePGError(c, err)
	}

	var rows []m.AttendanceStatsModel
	if err := q.
		Order("attendance_stats_report_date DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return writePGError(c, err)
	}
	return helper.JsonList(c, "OK", rows, helper.BuildPagination(paging, total))
}

func (ctl *AttendanceStatusController) ListRates(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.UserContext()).Model(&m.AbsenceRateModel{})
	if sid := strings.TrimSpace(c.Query("student_id")); sid != "" {
		studentID, err := uuid.Parse(sid)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "student_id tidak valid")
		}
		q = q.Where("absence_rate_student_id = ?", studentID)
	}
	if course := strings.TrimSpace(c.Query("course_code")); course != "" {
		q = q.Where("absence_rate_course_code = ?", course)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return writePGError(c, err)
	}

	var rows []m.AbsenceRateModel
	if err := q.
		Order("absence_rate_absence_rate DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return writePGError(c, err)
	}
	return helper.JsonList(c, "OK", rows, helper.BuildPagination(paging, total))
}
