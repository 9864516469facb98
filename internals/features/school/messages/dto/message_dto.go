package dto

import (
	"time"

	"github.com/google/uuid"

	messageModel "lms_backend/internals/features/school/messages/model"
)

type CreateMessageRequest struct {
	Content string `json:"content" validate:"required,max=4000"`
	ClassID string `json:"classId" validate:"required,uuid"`
}

type SenderBrief struct {
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

type MessageResponse struct {
	ID        uuid.UUID    `json:"id"`
	ClassID   uuid.UUID    `json:"classId"`
	SenderID  uuid.UUID    `json:"senderId"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"createdAt"`
	Sender    *SenderBrief `json:"sender"`
}

func NewMessageResponse(m *messageModel.MessageModel) MessageResponse {
	out := MessageResponse{
		ID:        m.MessageID,
		ClassID:   m.MessageClassID,
		SenderID:  m.MessageSenderID,
		Content:   m.MessageContent,
		CreatedAt: m.MessageCreatedAt,
	}
	if m.Sender != nil {
		out.Sender = &SenderBrief{FullName: m.Sender.FullName, Role: m.Sender.Role}
	}
	return out
}

func NewMessageResponses(rows []messageModel.MessageModel) []MessageResponse {
	out := make([]MessageResponse, 0, len(rows))
	for i := range rows {
		out = append(out, NewMessageResponse(&rows[i]))
	}
	return out
}
