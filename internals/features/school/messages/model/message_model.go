package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "lms_backend/internals/features/users/user/model"
)

// MessageModel is one entry of a class chat log.
type MessageModel struct {
	MessageID        uuid.UUID `json:"id"        gorm:"column:message_id;type:uuid;primaryKey"`
	MessageClassID   uuid.UUID `json:"classId"   gorm:"column:message_class_id;type:uuid;not null;index:idx_messages_class_created,priority:1"`
	MessageSenderID  uuid.UUID `json:"senderId"  gorm:"column:message_sender_id;type:uuid;not null;index"`
	MessageContent   string    `json:"content"   gorm:"column:message_content;type:text;not null"`
	MessageCreatedAt time.Time `json:"createdAt" gorm:"column:message_created_at;not null;autoCreateTime;index:idx_messages_class_created,priority:2"`

	Sender *userModel.UserModel `json:"sender,omitempty" gorm:"foreignKey:MessageSenderID;references:ID"`
}

func (MessageModel) TableName() string { return "messages" }

func (m *MessageModel) BeforeCreate(tx *gorm.DB) error {
	if m.MessageID == uuid.Nil {
		m.MessageID = uuid.New()
	}
	return nil
}
