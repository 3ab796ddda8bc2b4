package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceRoute "trainingku_backend/internals/features/attendance/route"
	feedbackRoute "trainingku_backend/internals/features/feedback/route"
	quizRoute "trainingku_backend/internals/features/quizzes/route"
	trainingRoute "trainingku_backend/internals/features/trainings/route"
	authRoute "trainingku_backend/internals/features/users/auth/route"
)

// SetupRoutes merakit seluruh endpoint aplikasi di bawah /api.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	BaseRoutes(app, db)

	api := app.Group("/api")

	authRoute.AuthRoutes(api, db)
	trainingRoute.TrainingRoutes(api, db)
	attendanceRoute.AttendanceRoutes(api, db)
	quizRoute.QuizRoutes(api, db)
	feedbackRoute.FeedbackRoutes(api, db)
}
