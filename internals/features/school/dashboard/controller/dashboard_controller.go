package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms_backend/internals/features/school/dashboard/service"
	helper "lms_backend/internals/helpers"
)

type DashboardController struct {
	Svc *service.DashboardService
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{Svc: service.NewDashboardService(db)}
}

// GET /api/teacher/stats
func (h *DashboardController) Stats(c *fiber.Ctx) error {
	res, err := h.Svc.Stats(c.UserContext())
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", res)
}

// GET /api/diagnose-enrollments
func (h *DashboardController) Diagnose(c *fiber.Ctx) error {
	res, err := h.Svc.Diagnose(c.UserContext())
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", res)
}
