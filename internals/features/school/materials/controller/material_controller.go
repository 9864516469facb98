package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms_backend/internals/features/school/materials/dto"
	"lms_backend/internals/features/school/materials/service"
	helper "lms_backend/internals/helpers"
	"lms_backend/internals/helpers/storage"
)

type MaterialController struct {
	Svc *service.MaterialService
}

func NewMaterialController(db *gorm.DB, blob storage.BlobService) *MaterialController {
	return &MaterialController{Svc: service.NewMaterialService(db, blob)}
}

// POST /api/material (multipart/form-data)
func (h *MaterialController) Create(c *fiber.Ctx) error {
	var req dto.CreateMaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid form data")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.FromServiceError(c, err)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		fh = nil
	}

	m, err := h.Svc.Create(c.UserContext(), req, fh)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Material uploaded successfully", dto.NewMaterialResponse(m))
}

// GET /api/classes/:classId/materials
func (h *MaterialController) ListByClass(c *fiber.Ctx) error {
	classID, err := helper.ParseUUIDParam(c, "classId", "class")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	rows, err := h.Svc.ListByClass(c.UserContext(), classID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "ok", dto.NewMaterialResponses(rows), nil)
}
