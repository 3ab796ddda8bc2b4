// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"trainingku_backend/internals/configs"
	"trainingku_backend/internals/constants"
	helper "trainingku_backend/internals/helpers"
)

// AuthMiddleware memverifikasi bearer token dan menaruh klaim ke Locals.
// Role dinormalisasi di sini — satu-satunya tempat string role mentah
// dari token disentuh.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET kosong")
			return helper.JsonError(c, fiber.StatusInternalServerError, "Missing JWT secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		}); err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid token. Please login again.")
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Token has expired. Please login again.")
		}

		userID, err := extractUserID(claims)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid token. Please login again.")
		}

		c.Locals(helper.LocUserID, userID)
		storeBasicClaimsToLocals(c, claims)

		return c.Next()
	}
}

func storeBasicClaimsToLocals(c *fiber.Ctx, claims jwt.MapClaims) {
	if role, ok := claims["role"].(string); ok {
		c.Locals(helper.LocUserRole, constants.NormalizeRole(role))
	}
	if name, ok := claims["full_name"].(string); ok {
		c.Locals(helper.LocUserName, name)
	}
	if email, ok := claims["email"].(string); ok {
		c.Locals(helper.LocUserMail, email)
	}
}
