package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	classService "lms_backend/internals/features/school/classes/service"
	"lms_backend/internals/features/school/results/dto"
	resultModel "lms_backend/internals/features/school/results/model"
	helper "lms_backend/internals/helpers"
)

const (
	errInvalidMarks = "Marks must be valid numbers."
	errInvalidTotal = "Total marks must be a positive number."
)

type ResultService struct {
	DB *gorm.DB
}

func NewResultService(db *gorm.DB) *ResultService {
	return &ResultService{DB: db}
}

// Upload upserts one result per item on (test, date, user, class). Items
// without obtained marks are skipped; a non-numeric mark rejects the whole
// batch.
func (s *ResultService) Upload(ctx context.Context, req dto.UploadResultsRequest) (*dto.UploadSummary, error) {
	classID, err := helper.ParseUUID(req.ClassID, "class")
	if err != nil {
		return nil, err
	}
	testDate, err := helper.ParseDate(req.TestDate)
	if err != nil {
		return nil, err
	}
	if _, err := classService.FindClass(ctx, s.DB, classID); err != nil {
		return nil, err
	}
	totalMarks, ok := req.TotalMarks.Int()
	if !ok || totalMarks < 1 {
		return nil, fiber.NewError(fiber.StatusBadRequest, errInvalidTotal)
	}
	testName := strings.TrimSpace(req.TestName)

	rows := make([]resultModel.ResultModel, 0, len(req.ResultsData))
	summary := &dto.UploadSummary{}
	for _, it := range req.ResultsData {
		if !it.ObtainedMarks.Set {
			summary.Skipped++
			continue
		}
		if !it.ObtainedMarks.Valid {
			return nil, fiber.NewError(fiber.StatusBadRequest, errInvalidMarks)
		}
		uid, err := helper.ParseUUID(it.StudentID, "student")
		if err != nil {
			return nil, err
		}
		rows = append(rows, resultModel.ResultModel{
			ResultUserID:        uid,
			ResultClassID:       classID,
			ResultTestName:      testName,
			ResultTestDate:      testDate,
			ResultTotalMarks:    totalMarks,
			ResultObtainedMarks: it.ObtainedMarks.Value,
			ResultRemarks:       trimmedOrNil(it.Remarks),
		})
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "result_test_name"},
					{Name: "result_test_date"},
					{Name: "result_user_id"},
					{Name: "result_class_id"},
				},
				DoUpdates: clause.AssignmentColumns([]string{
					"result_total_marks", "result_obtained_marks", "result_remarks", "result_updated_at",
				}),
			}).Create(&rows[i]).Error; err != nil {
				return pkgerrors.Wrap(err, "upsert result")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	summary.Saved = len(rows)
	log.Printf("[INFO] results uploaded: class=%s test=%q saved=%d skipped=%d", classID, testName, summary.Saved, summary.Skipped)
	return summary, nil
}

// Update rewrites marks on one result. Blank remarks or test name keep the
// stored value.
func (s *ResultService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateResultRequest) (*resultModel.ResultModel, error) {
	if !req.ObtainedMarks.Set || !req.ObtainedMarks.Valid || !req.TotalMarks.Set || !req.TotalMarks.Valid {
		return nil, fiber.NewError(fiber.StatusBadRequest, errInvalidMarks)
	}

	var m resultModel.ResultModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&m, "result_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Result not found")
			}
			return pkgerrors.Wrap(err, "find result")
		}

		updates := map[string]any{
			"result_obtained_marks": req.ObtainedMarks.Value,
			"result_total_marks":    req.TotalMarks.Value,
		}
		if r := trimmedOrNil(req.Remarks); r != nil {
			updates["result_remarks"] = *r
		}
		if n := trimmedOrNil(req.TestName); n != nil {
			updates["result_test_name"] = *n
		}
		if err := tx.Model(&m).Updates(updates).Error; err != nil {
			return pkgerrors.Wrap(err, "update result")
		}
		return tx.Preload("User").Preload("Class").First(&m, "result_id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *ResultService) ByClass(ctx context.Context, classID uuid.UUID) ([]resultModel.ResultModel, error) {
	if _, err := classService.FindClass(ctx, s.DB, classID); err != nil {
		return nil, err
	}
	return s.list(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("result_class_id = ?", classID)
	})
}

func (s *ResultService) History(ctx context.Context) ([]resultModel.ResultModel, error) {
	return s.list(ctx, nil)
}

func (s *ResultService) ForStudent(ctx context.Context, userID uuid.UUID) ([]resultModel.ResultModel, error) {
	return s.list(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("result_user_id = ?", userID)
	})
}

func (s *ResultService) list(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]resultModel.ResultModel, error) {
	q := s.DB.WithContext(ctx).Preload("User").Preload("Class")
	if scope != nil {
		q = q.Scopes(scope)
	}
	var rows []resultModel.ResultModel
	if err := q.Order("result_test_date DESC, result_created_at DESC").Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "list results")
	}
	return rows, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
