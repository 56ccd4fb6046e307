// file: internals/features/school/attendance/route/admin_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kampusku_backend/internals/features/school/attendance/controller"
	"kampusku_backend/internals/middlewares"
)

// AttendanceAdminRoutes: surface operasional - trigger job batch, roster,
// window susulan. Autentikasi/otorisasi diasumsikan sudah dicek gateway.
func AttendanceAdminRoutes(r fiber.Router, db *gorm.DB, zlog *zap.Logger) {
	v := validator.New()
	jobCtl := controller.NewAttendanceJobController(db, v, zlog)
	statusCtl := controller.NewAttendanceStatusController(db, v)

	jobs := r.Group("/attendance/jobs", middlewares.JobTriggerRateLimiter())
	jobs.Post("/daily-aggregation", jobCtl.RunDailyAggregation)
	jobs.Post("/range-correction", jobCtl.RebuildRange)
	jobs.Post("/rate-rebuild", jobCtl.RebuildRates)

	adm := r.Group("/attendance")
	adm.Post("/rosters", statusCtl.MaterializeRoster)
	adm.Post("/verification-windows", statusCtl.OpenVerificationWindow)
}
