// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	attendanceRoute "kampusku_backend/internals/features/school/attendance/route"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, zlog *zap.Logger) {
	// ===================== USER (read-only) =====================
	log.Println("[INFO] Setting up attendance user routes...")
	user := app.Group("/api/u")
	attendanceRoute.AttendanceUserRoutes(user, db)

	// ===================== ADMIN (operasional) =====================
	log.Println("[INFO] Setting up attendance admin routes...")
	admin := app.Group("/api/a")
	attendanceRoute.AttendanceAdminRoutes(admin, db, zlog)
}
