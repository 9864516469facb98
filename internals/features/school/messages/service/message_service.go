package service

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	classService "lms_backend/internals/features/school/classes/service"
	messageModel "lms_backend/internals/features/school/messages/model"
)

type MessageService struct {
	DB *gorm.DB
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{DB: db}
}

// ListByClass returns the chat log oldest first.
func (s *MessageService) ListByClass(ctx context.Context, classID uuid.UUID) ([]messageModel.MessageModel, error) {
	var rows []messageModel.MessageModel
	if err := s.DB.WithContext(ctx).
		Preload("Sender").
		Where("message_class_id = ?", classID).
		Order("message_created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "list messages")
	}
	return rows, nil
}

// Post appends a message and returns it with its sender loaded.
func (s *MessageService) Post(ctx context.Context, classID, senderID uuid.UUID, content string) (*messageModel.MessageModel, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Message content is required")
	}
	if _, err := classService.FindClass(ctx, s.DB, classID); err != nil {
		return nil, err
	}

	m := &messageModel.MessageModel{
		MessageClassID:  classID,
		MessageSenderID: senderID,
		MessageContent:  content,
	}
	db := s.DB.WithContext(ctx)
	if err := db.Create(m).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "create message")
	}
	if err := db.Preload("Sender").First(m, "message_id = ?", m.MessageID).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "reload message")
	}
	return m, nil
}
