package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms_backend/internals/features/school/attendance/dto"
	"lms_backend/internals/features/school/attendance/service"
	helper "lms_backend/internals/helpers"
	helperAuth "lms_backend/internals/helpers/auth"
)

type AttendanceController struct {
	Svc *service.AttendanceService
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{Svc: service.NewAttendanceService(db)}
}

// GET /api/attendance/:classId/:date
func (h *AttendanceController) ClassSheet(c *fiber.Ctx) error {
	classID, err := helper.ParseUUIDParam(c, "classId", "class")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	date, err := helper.ParseDate(c.Params("date"))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	rows, err := h.Svc.ClassSheet(c.UserContext(), classID, date)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

// POST /api/attendance/mark
func (h *AttendanceController) MarkClass(c *fiber.Ctx) error {
	var req dto.MarkClassAttendanceRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.FromServiceError(c, err)
	}
	classID, err := helper.ParseUUID(req.ClassID, "class")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	date, err := helper.ParseDate(req.Date)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	n, err := h.Svc.MarkClass(c.UserContext(), classID, date, req.AttendanceData)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "Attendance marked successfully", dto.MarkResult{Date: helper.FormatDate(date), Marked: n})
}

// GET /api/attendance-global/:date
func (h *AttendanceController) GlobalSheet(c *fiber.Ctx) error {
	date, err := helper.ParseDate(c.Params("date"))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	rows, err := h.Svc.GlobalSheet(c.UserContext(), date)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

// POST /api/attendance/mark-global
func (h *AttendanceController) MarkGlobal(c *fiber.Ctx) error {
	var req dto.MarkGlobalAttendanceRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.FromServiceError(c, err)
	}
	date, err := helper.ParseDate(req.Date)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	n, err := h.Svc.MarkGlobal(c.UserContext(), date, req.AttendanceData)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "Attendance marked successfully", dto.MarkResult{Date: helper.FormatDate(date), Marked: n})
}

// GET /api/attendance-history
func (h *AttendanceController) History(c *fiber.Ctx) error {
	rows, err := h.Svc.History(c.UserContext())
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

// GET /api/student/attendance
func (h *AttendanceController) ForStudent(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	res, err := h.Svc.ForStudent(c.UserContext(), sess.UserID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", res)
}
