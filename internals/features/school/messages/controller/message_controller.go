package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms_backend/internals/features/school/messages/dto"
	"lms_backend/internals/features/school/messages/service"
	helper "lms_backend/internals/helpers"
	helperAuth "lms_backend/internals/helpers/auth"
)

type MessageController struct {
	Svc *service.MessageService
}

func NewMessageController(db *gorm.DB) *MessageController {
	return &MessageController{Svc: service.NewMessageService(db)}
}

// GET /api/classes/:classId/messages
func (h *MessageController) ListByClass(c *fiber.Ctx) error {
	classID, err := helper.ParseUUIDParam(c, "classId", "class")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	rows, err := h.Svc.ListByClass(c.UserContext(), classID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "ok", dto.NewMessageResponses(rows), nil)
}

// POST /api/messages
func (h *MessageController) Post(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	var req dto.CreateMessageRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.FromServiceError(c, err)
	}
	classID, err := helper.ParseUUID(req.ClassID, "class")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	m, err := h.Svc.Post(c.UserContext(), classID, sess.UserID, req.Content)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Message sent", dto.NewMessageResponse(m))
}
