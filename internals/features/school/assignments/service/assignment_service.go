package service

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"lms_backend/internals/features/school/assignments/dto"
	assignmentModel "lms_backend/internals/features/school/assignments/model"
	classModel "lms_backend/internals/features/school/classes/model"
	classService "lms_backend/internals/features/school/classes/service"
	helper "lms_backend/internals/helpers"
	helperAuth "lms_backend/internals/helpers/auth"
	"lms_backend/internals/helpers/storage"
)

type AssignmentService struct {
	DB   *gorm.DB
	Blob storage.BlobService
}

func NewAssignmentService(db *gorm.DB, blob storage.BlobService) *AssignmentService {
	return &AssignmentService{DB: db, Blob: blob}
}

func (s *AssignmentService) Create(ctx context.Context, req dto.CreateAssignmentRequest) (*assignmentModel.AssignmentModel, error) {
	classID, err := helper.ParseUUID(req.ClassID, "class")
	if err != nil {
		return nil, err
	}
	if _, err := classService.FindClass(ctx, s.DB, classID); err != nil {
		return nil, err
	}

	m := &assignmentModel.AssignmentModel{
		AssignmentClassID:     classID,
		AssignmentTitle:       strings.TrimSpace(req.Title),
		AssignmentDescription: dto.TrimmedOrNil(req.Description),
	}
	if due := strings.TrimSpace(req.DueDate); due != "" {
		t, err := helper.ParseTimestamp(due)
		if err != nil {
			return nil, err
		}
		m.AssignmentDueDate = &t
	}

	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "create assignment")
	}
	return m, nil
}

// ListForTeacher returns the class assignments with every submission.
func (s *AssignmentService) ListForTeacher(ctx context.Context, classID uuid.UUID) ([]dto.TeacherAssignment, error) {
	var rows []assignmentModel.AssignmentModel
	if err := s.DB.WithContext(ctx).
		Preload("Submissions", func(db *gorm.DB) *gorm.DB {
			return db.Order("submission_created_at ASC")
		}).
		Preload("Submissions.User").
		Where("assignment_class_id = ?", classID).
		Order("assignment_created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "list assignments")
	}

	out := make([]dto.TeacherAssignment, 0, len(rows))
	for i := range rows {
		subs := make([]dto.SubmissionResponse, 0, len(rows[i].Submissions))
		for j := range rows[i].Submissions {
			subs = append(subs, dto.NewSubmissionResponse(&rows[i].Submissions[j]))
		}
		out = append(out, dto.TeacherAssignment{
			AssignmentResponse: dto.NewAssignmentResponse(&rows[i]),
			Submissions:        subs,
		})
	}
	return out, nil
}

// ListForStudent returns the class assignments with only the caller's
// latest submission attached.
func (s *AssignmentService) ListForStudent(ctx context.Context, classID, userID uuid.UUID) ([]dto.OwnAssignment, error) {
	var rows []assignmentModel.AssignmentModel
	if err := s.DB.WithContext(ctx).
		Where("assignment_class_id = ?", classID).
		Order("assignment_created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "list assignments")
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, a := range rows {
		ids = append(ids, a.AssignmentID)
	}
	own, err := s.latestSubmissions(ctx, userID, ids)
	if err != nil {
		return nil, err
	}

	out := make([]dto.OwnAssignment, 0, len(rows))
	for i := range rows {
		item := dto.OwnAssignment{AssignmentResponse: dto.NewAssignmentResponse(&rows[i])}
		if sub, ok := own[rows[i].AssignmentID]; ok {
			r := dto.NewSubmissionResponse(&sub)
			item.Submission = &r
		}
		out = append(out, item)
	}
	return out, nil
}

// List dispatches on the caller's role.
func (s *AssignmentService) List(ctx context.Context, sess *helperAuth.Session, classID uuid.UUID) (any, error) {
	if sess.IsTeacher() {
		return s.ListForTeacher(ctx, classID)
	}
	return s.ListForStudent(ctx, classID, sess.UserID)
}

func (s *AssignmentService) latestSubmissions(ctx context.Context, userID uuid.UUID, assignmentIDs []uuid.UUID) (map[uuid.UUID]assignmentModel.SubmissionModel, error) {
	out := make(map[uuid.UUID]assignmentModel.SubmissionModel, len(assignmentIDs))
	if len(assignmentIDs) == 0 {
		return out, nil
	}
	var subs []assignmentModel.SubmissionModel
	if err := s.DB.WithContext(ctx).
		Where("submission_user_id = ? AND submission_assignment_id IN ?", userID, assignmentIDs).
		Order("submission_created_at ASC").
		Find(&subs).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load submissions")
	}
	// ascending order: the last write per assignment wins
	for _, sub := range subs {
		out[sub.SubmissionAssignmentID] = sub
	}
	return out, nil
}

// Submit stores the uploaded file and records a submission for the caller.
func (s *AssignmentService) Submit(ctx context.Context, userID, assignmentID uuid.UUID, fh *multipart.FileHeader) (*assignmentModel.SubmissionModel, error) {
	if fh == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "No file uploaded")
	}
	var a assignmentModel.AssignmentModel
	err := s.DB.WithContext(ctx).First(&a, "assignment_id = ?", assignmentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Assignment not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "find assignment")
	}

	url, err := s.Blob.Save(ctx, fh)
	if err != nil {
		return nil, err
	}
	sub := &assignmentModel.SubmissionModel{
		SubmissionAssignmentID: assignmentID,
		SubmissionUserID:       userID,
		SubmissionFileURL:      url,
		SubmissionStatus:       assignmentModel.SubmissionStatusSubmitted,
	}
	if err := s.DB.WithContext(ctx).Create(sub).Error; err != nil {
		storage.DeleteQuietly(context.Background(), s.Blob, []string{url})
		return nil, pkgerrors.Wrap(err, "create submission")
	}
	log.Printf("[INFO] submission %s for assignment %s by %s", sub.SubmissionID, assignmentID, userID)
	return sub, nil
}

// Grade sets marks and feedback and flips the status to graded.
func (s *AssignmentService) Grade(ctx context.Context, submissionID uuid.UUID, req dto.GradeSubmissionRequest) (*assignmentModel.SubmissionModel, error) {
	var sub assignmentModel.SubmissionModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&sub, "submission_id = ?", submissionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Submission not found")
			}
			return pkgerrors.Wrap(err, "find submission")
		}
		if err := tx.Model(&sub).Updates(map[string]any{
			"submission_marks":    *req.Marks,
			"submission_feedback": dto.TrimmedOrNil(req.Feedback),
			"submission_status":   assignmentModel.SubmissionStatusGraded,
		}).Error; err != nil {
			return pkgerrors.Wrap(err, "grade submission")
		}
		return tx.Preload("User").First(&sub, "submission_id = ?", submissionID).Error
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// StudentAssignments lists every assignment across the student's classes,
// soonest due first; undated ones go last.
func (s *AssignmentService) StudentAssignments(ctx context.Context, userID uuid.UUID) ([]dto.StudentAssignment, error) {
	db := s.DB.WithContext(ctx)

	var classes []classModel.ClassModel
	if err := db.
		Where("class_id IN (?)", db.Model(&classModel.EnrollmentModel{}).
			Select("enrollment_class_id").
			Where("enrollment_user_id = ?", userID)).
		Find(&classes).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load student classes")
	}
	if len(classes) == 0 {
		return []dto.StudentAssignment{}, nil
	}
	names := make(map[uuid.UUID]string, len(classes))
	classIDs := make([]uuid.UUID, 0, len(classes))
	for _, c := range classes {
		names[c.ClassID] = c.ClassName
		classIDs = append(classIDs, c.ClassID)
	}

	var rows []assignmentModel.AssignmentModel
	if err := db.Where("assignment_class_id IN ?", classIDs).
		Order("assignment_created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "list assignments")
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, a := range rows {
		ids = append(ids, a.AssignmentID)
	}
	own, err := s.latestSubmissions(ctx, userID, ids)
	if err != nil {
		return nil, err
	}

	out := make([]dto.StudentAssignment, 0, len(rows))
	for i := range rows {
		item := dto.StudentAssignment{
			AssignmentResponse: dto.NewAssignmentResponse(&rows[i]),
			ClassName:          names[rows[i].AssignmentClassID],
			Status:             dto.StatusPending,
		}
		if sub, ok := own[rows[i].AssignmentID]; ok {
			item.Status = sub.SubmissionStatus
			item.Marks = sub.SubmissionMarks
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return dueBefore(out[i].DueDate, out[j].DueDate)
	})
	return out, nil
}

func dueBefore(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.Before(*b)
	}
}
