package dto

import (
	"time"

	userModel "trainingku_backend/internals/features/users/auth/model"
)

type RegisterRequest struct {
	FullName string `json:"fullName" validate:"required,min=3,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"` // optional, default Employee; dinormalisasi controller
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromModelUser(m *userModel.UserModel) UserResponse {
	return UserResponse{
		ID:        m.ID,
		FullName:  m.FullName,
		Email:     m.Email,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
	}
}

type AuthResponse struct {
	Token  string       `json:"token"`
	UserID uint         `json:"userId"`
	Role   string       `json:"role"`
	User   UserResponse `json:"user"`
}
