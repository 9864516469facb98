package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultCategory = "General"

type MaterialModel struct {
	MaterialID        uuid.UUID `json:"id"        gorm:"column:material_id;type:uuid;primaryKey"`
	MaterialClassID   uuid.UUID `json:"classId"   gorm:"column:material_class_id;type:uuid;not null;index"`
	MaterialTitle     string    `json:"title"     gorm:"column:material_title;type:varchar(200);not null"`
	MaterialType      string    `json:"type"      gorm:"column:material_type;type:varchar(10);not null"`
	MaterialURL       string    `json:"url"       gorm:"column:material_url;type:text;not null"`
	MaterialCategory  string    `json:"category"  gorm:"column:material_category;type:varchar(80);not null;default:'General'"`
	MaterialCreatedAt time.Time `json:"createdAt" gorm:"column:material_created_at;not null;autoCreateTime"`
	MaterialUpdatedAt time.Time `json:"updatedAt" gorm:"column:material_updated_at;not null;autoUpdateTime"`
}

func (MaterialModel) TableName() string { return "materials" }

func (m *MaterialModel) BeforeCreate(tx *gorm.DB) error {
	if m.MaterialID == uuid.Nil {
		m.MaterialID = uuid.New()
	}
	if m.MaterialCategory == "" {
		m.MaterialCategory = DefaultCategory
	}
	return nil
}
