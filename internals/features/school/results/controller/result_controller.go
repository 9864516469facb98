package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms_backend/internals/features/school/results/dto"
	"lms_backend/internals/features/school/results/service"
	helper "lms_backend/internals/helpers"
	helperAuth "lms_backend/internals/helpers/auth"
)

type ResultController struct {
	Svc *service.ResultService
}

func NewResultController(db *gorm.DB) *ResultController {
	return &ResultController{Svc: service.NewResultService(db)}
}

// POST /api/results/upload
func (h *ResultController) Upload(c *fiber.Ctx) error {
	var req dto.UploadResultsRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.FromServiceError(c, err)
	}
	res, err := h.Svc.Upload(c.UserContext(), req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "Results uploaded successfully", res)
}

// PUT /api/results/:id
func (h *ResultController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id", "result")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	var req dto.UpdateResultRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.FromServiceError(c, err)
	}
	m, err := h.Svc.Update(c.UserContext(), id, req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Result updated successfully", dto.NewResultResponse(m))
}

// GET /api/results/class/:classId
func (h *ResultController) ByClass(c *fiber.Ctx) error {
	classID, err := helper.ParseUUIDParam(c, "classId", "class")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	rows, err := h.Svc.ByClass(c.UserContext(), classID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "ok", dto.NewResultResponses(rows), nil)
}

// GET /api/results/history
func (h *ResultController) History(c *fiber.Ctx) error {
	rows, err := h.Svc.History(c.UserContext())
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "ok", dto.NewResultResponses(rows), nil)
}

// GET /api/student/results
func (h *ResultController) ForStudent(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	rows, err := h.Svc.ForStudent(c.UserContext(), sess.UserID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "ok", dto.NewResultResponses(rows), nil)
}
