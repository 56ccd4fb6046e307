// file: internals/features/school/attendance/controller/attendance_job_controller.go
package controller

import (
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	d "kampusku_backend/internals/features/school/attendance/dto"
	"kampusku_backend/internals/features/school/attendance/scheduler"
	svc "kampusku_backend/internals/features/school/attendance/service"
	helper "kampusku_backend/internals/helpers"
)

/* =========================
   Controller & Constructor
   ========================= */

// AttendanceJobController: trigger manual job batch (rekap, koreksi rentang,
// rebuild rate) untuk operator. Trigger harian normal datang dari scheduler.
type AttendanceJobController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Log      *zap.Logger
}

func NewAttendanceJobController(db *gorm.DB, v *validator.Validate, zlog *zap.Logger) *AttendanceJobController {
	if zlog == nil {
		zlog = zap.NewNop()
	}
	return &AttendanceJobController{DB: db, Validate: v, Log: zlog}
}

func jobError(c *fiber.Ctx, err error) error {
	if svc.IsInvariant(err) {
		// Korupsi data upstream - jangan disamarkan jadi 500 generik.
		return helper.JsonError(c, http.StatusUnprocessableEntity, err.Error())
	}
	return helper.JsonError(c, http.StatusInternalServerError, err.Error())
}

/* ========================= Rekap harian ========================= */

func (ctl *AttendanceJobController) RunDailyAggregation(c *fiber.Ctx) error {
	var req d.RunAggregationRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			log.Printf("[AttendanceJob.RunDailyAggregation] BodyParser error: %v", err)
			return helper.JsonError(c, http.StatusBadRequest, err.Error())
		}
		if err := ctl.Validate.Struct(&req); err != nil {
			return helper.JsonValidationError(c, err)
		}
	}

	reportDate := time.Now()
	if req.ReportDate != "" {
		parsed, err := time.Parse("2006-01-02", req.ReportDate)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "report_date harus YYYY-MM-DD")
		}
		reportDate = parsed
	}

	sum, err := scheduler.RunOnce(c.UserContext(), ctl.DB, ctl.Log, reportDate)
	if err != nil {
		return jobError(c, err)
	}
	if sum.Skipped {
		return helper.JsonOK(c, "Rekap dilewati (di luar rentang term)", sum)
	}
	return helper.JsonOK(c, "Rekap harian selesai", sum)
}

/* ========================= Koreksi rentang ========================= */

func (ctl *AttendanceJobController) RebuildRange(c *fiber.Ctx) error {
	var req d.RebuildRangeRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("[AttendanceJob.RebuildRange] BodyParser error: %v", err)
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	corr := svc.NewCorrectionService(ctl.DB, ctl.Log)
	if err := corr.RebuildAggregationForRange(c.UserContext(), req.TeachingWeek, req.Weekday); err != nil {
		return jobError(c, err)
	}
	return helper.JsonOK(c, "Koreksi rentang selesai", fiber.Map{
		"teaching_week": req.TeachingWeek,
		"weekday":       req.Weekday,
	})
}

/* ========================= Rebuild rate ========================= */

func (ctl *AttendanceJobController) RebuildRates(c *fiber.Ctx) error {
	sum, err := svc.NewRateRebuildService(ctl.DB, ctl.Log).RebuildStudentAbsenceRates(c.UserContext())
	if err != nil {
		return jobError(c, err)
	}
	return helper.JsonOK(c, "Rebuild rate selesai", sum)
}
