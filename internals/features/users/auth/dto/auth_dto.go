package dto

import (
	"github.com/google/uuid"

	userModel "lms_backend/internals/features/users/user/model"
)

/* ===================== REQUESTS ===================== */

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=72"`
}

type ChangeUsernameRequest struct {
	NewUsername string `json:"newUsername" validate:"required,min=3,max=50"`
	Password    string `json:"password"    validate:"required"`
}

/* ===================== RESPONSES ===================== */

type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	FullName string    `json:"fullName"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

func NewUserSummary(u *userModel.UserModel) UserSummary {
	return UserSummary{
		ID:       u.ID,
		Username: u.UserName,
		Role:     u.Role,
		FullName: u.FullName,
	}
}
