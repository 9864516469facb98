package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms_backend/internals/features/users/auth/dto"
	"lms_backend/internals/features/users/auth/service"
	helper "lms_backend/internals/helpers"
	helperAuth "lms_backend/internals/helpers/auth"
)

type AuthController struct {
	Svc *service.AuthService
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{Svc: service.NewAuthService(db)}
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.FromServiceError(c, err)
	}
	resp, err := ac.Svc.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "Login successful", resp)
}

// POST /api/change-password
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	var req dto.ChangePasswordRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.FromServiceError(c, err)
	}
	if err := ac.Svc.ChangePassword(c.UserContext(), sess.UserID, req.OldPassword, req.NewPassword); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Password updated successfully", nil)
}

// POST /api/change-username
func (ac *AuthController) ChangeUsername(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	var req dto.ChangeUsernameRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.FromServiceError(c, err)
	}
	username, err := ac.Svc.ChangeUsername(c.UserContext(), sess.UserID, req.NewUsername, req.Password)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Username updated successfully", fiber.Map{"username": username})
}

// GET /api/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"id":       sess.UserID,
		"role":     sess.Role,
		"fullName": sess.Name,
	})
}
