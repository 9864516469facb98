package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms_backend/internals/features/users/user/dto"
	"lms_backend/internals/features/users/user/service"
	helper "lms_backend/internals/helpers"
	"lms_backend/internals/helpers/storage"
)

type StudentController struct {
	Svc *service.StudentService
}

func NewStudentController(db *gorm.DB, blob storage.BlobService) *StudentController {
	return &StudentController{Svc: service.NewStudentService(db, blob)}
}

// POST /api/register-student
func (h *StudentController) Register(c *fiber.Ctx) error {
	var req dto.RegisterStudentRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.FromServiceError(c, err)
	}
	u, err := h.Svc.Register(c.UserContext(), req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Student created successfully", dto.NewStudentResponse(u))
}

// GET /api/students
func (h *StudentController) List(c *fiber.Ctx) error {
	rows, err := h.Svc.List(c.UserContext())
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "ok", dto.NewStudentResponses(rows), nil)
}

// POST /api/students/:id/reset-password
func (h *StudentController) ResetPassword(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id", "student")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	var req dto.ResetPasswordRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.FromServiceError(c, err)
	}
	if err := h.Svc.ResetPassword(c.UserContext(), id, req.NewPassword); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Password reset successfully", nil)
}

// DELETE /api/students/:id
func (h *StudentController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id", "student")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	res, err := h.Svc.Delete(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Student and all associated data removed successfully", res)
}
