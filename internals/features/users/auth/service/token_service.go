// internals/features/users/auth/service/token_service.go
package service

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"trainingku_backend/internals/configs"
	userModel "trainingku_backend/internals/features/users/auth/model"
)

const accessTTL = 24 * time.Hour

// CreateAccessToken menerbitkan JWT HS256 berisi identitas + role.
// Klaim inilah yang dibaca AuthMiddleware di setiap request.
func CreateAccessToken(u *userModel.UserModel) (string, error) {
	secret := configs.JWTSecret
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET belum diset")
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"id":        u.ID,
		"email":     u.Email,
		"role":      u.Role,
		"full_name": u.FullName,
		"iat":       now.Unix(),
		"exp":       now.Add(accessTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
