package helper

import (
	"github.com/gofiber/fiber/v2"
)

// Locals keys diisi oleh middleware auth. Konsisten di seluruh handler.
const (
	LocUserID   = "user_id"
	LocUserRole = "userRole"
	LocUserName = "userName"
	LocUserMail = "userEmail"
)

// GetUserID mengambil id user login dari context request.
func GetUserID(c *fiber.Ctx) (uint, error) {
	v := c.Locals(LocUserID)
	id, ok := v.(uint)
	if !ok || id == 0 {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	return id, nil
}

// GetUserRole mengambil role kanonik (sudah dinormalisasi middleware).
func GetUserRole(c *fiber.Ctx) string {
	if role, ok := c.Locals(LocUserRole).(string); ok {
		return role
	}
	return ""
}

func GetUserName(c *fiber.Ctx) string {
	if name, ok := c.Locals(LocUserName).(string); ok {
		return name
	}
	return ""
}
