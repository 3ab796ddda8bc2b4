package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"trainingku_backend/internals/constants"
	attendanceController "trainingku_backend/internals/features/attendance/controller"
	authMiddleware "trainingku_backend/internals/middlewares/auth"
)

// AttendanceRoutes menumpang di group /api/trainings/:id/attendance.
func AttendanceRoutes(api fiber.Router, db *gorm.DB) {
	ctl := attendanceController.NewAttendanceController(db)

	requireAuth := authMiddleware.AuthMiddleware()
	requireTrainer := authMiddleware.OnlyRoles(constants.RoleErrorTrainer("attendance"), constants.TrainerRoles...)

	attendance := api.Group("/trainings/:id/attendance", requireAuth)
	attendance.Get("/", requireTrainer, ctl.GetRoster)
	attendance.Post("/", requireTrainer, ctl.Mark)
	attendance.Get("/summary", requireTrainer, ctl.GetSummary)
}
