package service

import (
	"context"
	"log"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"lms_backend/internals/constants"
	classService "lms_backend/internals/features/school/classes/service"
	"lms_backend/internals/features/school/materials/dto"
	materialModel "lms_backend/internals/features/school/materials/model"
	"lms_backend/internals/helpers/storage"
)

type MaterialService struct {
	DB   *gorm.DB
	Blob storage.BlobService
}

func NewMaterialService(db *gorm.DB, blob storage.BlobService) *MaterialService {
	return &MaterialService{DB: db, Blob: blob}
}

// Create stores either the uploaded file or the external link. A file wins
// when both are sent.
func (s *MaterialService) Create(ctx context.Context, req dto.CreateMaterialRequest, fh *multipart.FileHeader) (*materialModel.MaterialModel, error) {
	classID, err := uuid.Parse(req.ClassID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid class id")
	}
	if _, err := classService.FindClass(ctx, s.DB, classID); err != nil {
		return nil, err
	}

	link := strings.TrimSpace(req.LinkURL)
	if fh == nil && link == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Either a file or a link URL is required")
	}

	m := &materialModel.MaterialModel{
		MaterialClassID:  classID,
		MaterialTitle:    strings.TrimSpace(req.Title),
		MaterialCategory: strings.TrimSpace(req.Category),
	}

	if fh != nil {
		typ := req.Type
		if typ == "" || typ == constants.MaterialLink {
			typ = constants.DetectMaterialType(storage.DetectContentType(fh), fh.Filename)
		}
		if typ == "" {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Unsupported file type")
		}
		url, err := s.Blob.Save(ctx, fh)
		if err != nil {
			return nil, err
		}
		m.MaterialType = typ
		m.MaterialURL = url
	} else {
		m.MaterialType = req.Type
		if m.MaterialType == "" {
			m.MaterialType = constants.MaterialLink
		}
		m.MaterialURL = link
	}

	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		if fh != nil {
			storage.DeleteQuietly(context.Background(), s.Blob, []string{m.MaterialURL})
		}
		return nil, pkgerrors.Wrap(err, "create material")
	}
	log.Printf("[INFO] material %s (%s) added to class %s", m.MaterialID, m.MaterialType, classID)
	return m, nil
}

// ListByClass orders by category, then upload time.
func (s *MaterialService) ListByClass(ctx context.Context, classID uuid.UUID) ([]materialModel.MaterialModel, error) {
	var rows []materialModel.MaterialModel
	if err := s.DB.WithContext(ctx).
		Where("material_class_id = ?", classID).
		Order("material_category ASC, material_created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "list materials")
	}
	return rows, nil
}
