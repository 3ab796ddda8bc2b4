package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "trainingku_backend/internals/features/users/auth/controller"
	"trainingku_backend/internals/features/users/mailer"
	"trainingku_backend/internals/middlewares"
	authMiddleware "trainingku_backend/internals/middlewares/auth"
)

// AuthRoutes memasang endpoint auth di bawah /api/auth.
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctl := authController.NewAuthController(db, mailer.NewFromEnv())

	auth := api.Group("/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), ctl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	auth.Post("/forgot-password", middlewares.ForgotPasswordRateLimiter(), ctl.ForgotPassword)
	auth.Post("/reset-password/:token", ctl.ResetPassword)

	auth.Get("/profile", authMiddleware.AuthMiddleware(), ctl.Profile)
}
