package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms_backend/internals/features/school/classes/dto"
	"lms_backend/internals/features/school/classes/service"
	helper "lms_backend/internals/helpers"
	helperAuth "lms_backend/internals/helpers/auth"
	"lms_backend/internals/helpers/storage"
)

type ClassController struct {
	Svc *service.ClassService
}

func NewClassController(db *gorm.DB, blob storage.BlobService) *ClassController {
	return &ClassController{Svc: service.NewClassService(db, blob)}
}

// POST /api/classes
func (h *ClassController) Create(c *fiber.Ctx) error {
	var req dto.CreateClassRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.FromServiceError(c, err)
	}
	m, err := h.Svc.Create(c.UserContext(), req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Class created successfully", dto.NewClassResponse(m))
}

// GET /api/classes
func (h *ClassController) List(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	rows, err := h.Svc.List(c.UserContext(), sess)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

// GET /api/classes/:id
func (h *ClassController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id", "class")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	row, err := h.Svc.Get(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", row)
}

// POST /api/enroll
func (h *ClassController) Enroll(c *fiber.Ctx) error {
	var req dto.EnrollRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.FromServiceError(c, err)
	}
	classID, err := helper.ParseUUID(req.ClassID, "class")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	studentID, err := helper.ParseUUID(req.StudentID, "student")
	if err != nil {
		return helper.FromServiceError(c, err)
	}

	res, err := h.Svc.Enroll(c.UserContext(), classID, studentID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	msg := "Student enrolled successfully"
	if !res.Created {
		msg = "Student already enrolled"
	}
	return helper.JsonOK(c, msg, res)
}

// DELETE /api/classes/:id
func (h *ClassController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id", "class")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	res, err := h.Svc.Delete(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Class and all associated data deleted successfully", res)
}

// GET /api/student/classes
func (h *ClassController) StudentClasses(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	rows, err := h.Svc.StudentClasses(c.UserContext(), sess.UserID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}
