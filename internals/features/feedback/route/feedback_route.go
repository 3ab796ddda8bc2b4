package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	feedbackController "trainingku_backend/internals/features/feedback/controller"
	authMiddleware "trainingku_backend/internals/middlewares/auth"
)

// FeedbackRoutes menumpang di group /api/trainings.
func FeedbackRoutes(api fiber.Router, db *gorm.DB) {
	ctl := feedbackController.NewFeedbackController(db)

	requireAuth := authMiddleware.AuthMiddleware()

	trainings := api.Group("/trainings", requireAuth)
	trainings.Post("/:id/feedback", ctl.Submit)
	trainings.Get("/:id/feedback", ctl.GetByTraining)
	trainings.Delete("/feedback/:feedbackId", ctl.Delete)
}
