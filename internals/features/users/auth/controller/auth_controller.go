package controller

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"strings"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"trainingku_backend/internals/configs"
	"trainingku_backend/internals/constants"
	authDTO "trainingku_backend/internals/features/users/auth/dto"
	userModel "trainingku_backend/internals/features/users/auth/model"
	authService "trainingku_backend/internals/features/users/auth/service"
	"trainingku_backend/internals/features/users/mailer"
	helper "trainingku_backend/internals/helpers"
)

type AuthController struct {
	DB        *gorm.DB
	Mailer    mailer.Service
	validator *validator.Validate
}

func NewAuthController(db *gorm.DB, mail mailer.Service) *AuthController {
	return &AuthController{DB: db, Mailer: mail, validator: validator.New()}
}

// POST /api/auth/register
func (ctl *AuthController) Register(c *fiber.Ctx) error {
	var req authDTO.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "All fields are required")
	}

	role := constants.NormalizeRole(req.Role)
	if role == "" {
		role = constants.RoleEmployee
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// fast path; unique index di users.email tetap sumber kebenaran
	var count int64
	if err := ctl.DB.Model(&userModel.UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Server error during registration")
	}
	if count > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := userModel.UserModel{
		FullName: strings.TrimSpace(req.FullName),
		Email:    email,
		Password: string(hash),
		Role:     role,
	}
	if err := ctl.DB.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Email already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Server error during registration")
	}

	token, err := authService.CreateAccessToken(&user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create token")
	}

	return helper.JsonCreated(c, "Registered successfully", authDTO.AuthResponse{
		Token:  token,
		UserID: user.ID,
		Role:   user.Role,
		User:   authDTO.FromModelUser(&user),
	})
}

// POST /api/auth/login
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Email and password are required")
	}

	var user userModel.UserModel
	if err := ctl.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Server error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := authService.CreateAccessToken(&user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create token")
	}

	return helper.JsonOK(c, "Login successful", authDTO.AuthResponse{
		Token:  token,
		UserID: user.ID,
		Role:   user.Role,
		User:   authDTO.FromModelUser(&user),
	})
}

// POST /api/auth/forgot-password
func (ctl *AuthController) ForgotPassword(c *fiber.Ctx) error {
	var req authDTO.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Email is required")
	}

	var user userModel.UserModel
	if err := ctl.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Server error")
	}

	// token mentah dikirim ke user, hanya hash-nya yang disimpan
	rawToken := uuid.NewString()
	tokenHash := hashResetToken(rawToken)
	expires := time.Now().Add(1 * time.Hour)

	if err := ctl.DB.Model(&user).Updates(map[string]any{
		"reset_password_token":   tokenHash,
		"reset_password_expires": expires,
	}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Server error")
	}

	resetURL := configs.ClientURL + "/reset-password/" + rawToken
	if err := ctl.Mailer.SendPasswordReset(user.Email, user.FullName, resetURL); err != nil {
		log.Printf("[ERROR] gagal kirim email reset: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to send password reset email")
	}

	return helper.JsonOK(c, "Password reset email sent", nil)
}

// POST /api/auth/reset-password/:token
func (ctl *AuthController) ResetPassword(c *fiber.Ctx) error {
	var req authDTO.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Password must be at least 8 characters")
	}

	tokenHash := hashResetToken(strings.TrimSpace(c.Params("token")))

	var user userModel.UserModel
	if err := ctl.DB.
		Where("reset_password_token = ? AND reset_password_expires > ?", tokenHash, time.Now()).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid or expired token")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Server error")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	if err := ctl.DB.Model(&user).Updates(map[string]any{
		"password":               string(hash),
		"reset_password_token":   nil,
		"reset_password_expires": nil,
	}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Server error")
	}

	return helper.JsonOK(c, "Password reset successful", nil)
}

// GET /api/auth/profile
func (ctl *AuthController) Profile(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	return helper.JsonOK(c, "", fiber.Map{
		"user": fiber.Map{
			"id":       userID,
			"role":     helper.GetUserRole(c),
			"fullName": helper.GetUserName(c),
		},
	})
}

func hashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint")
}
