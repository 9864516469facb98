package dto

import (
	"time"

	"github.com/google/uuid"

	materialModel "lms_backend/internals/features/school/materials/model"
)

// CreateMaterialRequest is read from multipart/form-data; the file part
// is taken separately.
type CreateMaterialRequest struct {
	Title    string `form:"title"    json:"title"    validate:"required,max=200"`
	Type     string `form:"type"     json:"type"     validate:"omitempty,oneof=video pdf image link"`
	ClassID  string `form:"classId"  json:"classId"  validate:"required,uuid"`
	Category string `form:"category" json:"category" validate:"omitempty,max=80"`
	LinkURL  string `form:"linkUrl"  json:"linkUrl"  validate:"omitempty,url"`
}

type MaterialResponse struct {
	ID        uuid.UUID `json:"id"`
	ClassID   uuid.UUID `json:"classId"`
	Title     string    `json:"title"`
	Type      string    `json:"type"`
	URL       string    `json:"url"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewMaterialResponse(m *materialModel.MaterialModel) MaterialResponse {
	return MaterialResponse{
		ID:        m.MaterialID,
		ClassID:   m.MaterialClassID,
		Title:     m.MaterialTitle,
		Type:      m.MaterialType,
		URL:       m.MaterialURL,
		Category:  m.MaterialCategory,
		CreatedAt: m.MaterialCreatedAt,
	}
}

func NewMaterialResponses(rows []materialModel.MaterialModel) []MaterialResponse {
	out := make([]MaterialResponse, 0, len(rows))
	for i := range rows {
		out = append(out, NewMaterialResponse(&rows[i]))
	}
	return out
}
