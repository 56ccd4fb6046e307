// file: internals/features/school/attendance/route/user_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kampusku_backend/internals/features/school/attendance/controller"
)

func AttendanceUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewAttendanceStatusController(db, validator.New())

	grp := r.Group("/attendance")
	grp.Get("/sessions/:session_id/students/:student_id/status", ctl.GetStudentSessionStatus)
	grp.Get("/stats", ctl.ListStats)
	grp.Get("/rates", ctl.ListRates)
}
