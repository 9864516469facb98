package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms_backend/internals/features/finance/fees/dto"
	"lms_backend/internals/features/finance/fees/service"
	helper "lms_backend/internals/helpers"
	helperAuth "lms_backend/internals/helpers/auth"
)

type FeeController struct {
	Svc *service.FeeService
}

func NewFeeController(db *gorm.DB) *FeeController {
	return &FeeController{Svc: service.NewFeeService(db)}
}

// GET /api/fees/:classId/:month/:year
func (h *FeeController) ClassSheet(c *fiber.Ctx) error {
	classID, err := helper.ParseUUIDParam(c, "classId", "class")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	month, ok := helper.NormalizeMonth(c.Params("month"))
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid month")
	}
	year, err := strconv.Atoi(c.Params("year"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid year")
	}
	rows, err := h.Svc.ClassSheet(c.UserContext(), classID, month, year)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

// POST /api/fees/mark
func (h *FeeController) Mark(c *fiber.Ctx) error {
	var req dto.MarkFeeRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.FromServiceError(c, err)
	}
	f, err := h.Svc.Mark(c.UserContext(), req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "Fee updated successfully", dto.NewFeeResponse(f))
}

// GET /api/fees-history
func (h *FeeController) History(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := h.Svc.History(c.UserContext(), p)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	if !p.Enabled {
		return helper.JsonList(c, "ok", dto.NewFeeResponses(rows), nil)
	}
	return helper.JsonList(c, "ok", dto.NewFeeResponses(rows), helper.NewPagination(total, p, len(rows)))
}

// GET /api/student/fees
func (h *FeeController) ForStudent(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	rows, err := h.Svc.ForStudent(c.UserContext(), sess.UserID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "ok", dto.NewFeeResponses(rows), nil)
}
