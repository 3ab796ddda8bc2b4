package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"trainingku_backend/internals/configs"
)

// RecoveryMiddleware menangkap panic dan mengembalikan error 500.
// Stack trace hanya dicetak di luar production.
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: !configs.IsProduction(),
	})
}
