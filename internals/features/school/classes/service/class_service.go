package service

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lms_backend/internals/constants"
	assignmentModel "lms_backend/internals/features/school/assignments/model"
	attendanceModel "lms_backend/internals/features/school/attendance/model"
	"lms_backend/internals/features/school/classes/dto"
	classModel "lms_backend/internals/features/school/classes/model"
	materialModel "lms_backend/internals/features/school/materials/model"
	messageModel "lms_backend/internals/features/school/messages/model"
	resultModel "lms_backend/internals/features/school/results/model"
	userModel "lms_backend/internals/features/users/user/model"
	helperAuth "lms_backend/internals/helpers/auth"
	"lms_backend/internals/helpers/storage"
)

type ClassService struct {
	DB   *gorm.DB
	Blob storage.BlobService
}

func NewClassService(db *gorm.DB, blob storage.BlobService) *ClassService {
	return &ClassService{DB: db, Blob: blob}
}

// FindClass returns the class or a 404.
func FindClass(ctx context.Context, db *gorm.DB, id uuid.UUID) (*classModel.ClassModel, error) {
	var m classModel.ClassModel
	err := db.WithContext(ctx).First(&m, "class_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Class not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "find class")
	}
	return &m, nil
}

func (s *ClassService) Create(ctx context.Context, req dto.CreateClassRequest) (*classModel.ClassModel, error) {
	m := req.ToModel()
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "create class")
	}
	log.Printf("[INFO] class created: %s (%s)", m.ClassName, m.ClassID)
	return m, nil
}

// List is role sensitive: teachers get every class with its students,
// students only the classes they are enrolled in.
func (s *ClassService) List(ctx context.Context, sess *helperAuth.Session) ([]dto.ClassWithStudents, error) {
	db := s.DB.WithContext(ctx)

	q := db.Model(&classModel.ClassModel{}).Order("class_created_at ASC")
	if !sess.IsTeacher() {
		q = q.Where("class_id IN (?)",
			db.Model(&classModel.EnrollmentModel{}).
				Select("enrollment_class_id").
				Where("enrollment_user_id = ?", sess.UserID))
	}
	var classes []classModel.ClassModel
	if err := q.Find(&classes).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "list classes")
	}

	ids := make([]uuid.UUID, 0, len(classes))
	for _, c := range classes {
		ids = append(ids, c.ClassID)
	}
	roster, err := s.rosters(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ClassWithStudents, 0, len(classes))
	for i := range classes {
		students := roster[classes[i].ClassID]
		if !sess.IsTeacher() {
			// students see classmates by name only
			for j := range students {
				students[j].Username = ""
			}
		}
		out = append(out, dto.ClassWithStudents{
			ClassResponse: dto.NewClassResponse(&classes[i]),
			Students:      students,
		})
	}
	return out, nil
}

// rosters loads enrolled users per class, in enrollment order.
func (s *ClassService) rosters(ctx context.Context, classIDs []uuid.UUID) (map[uuid.UUID][]dto.StudentBrief, error) {
	out := make(map[uuid.UUID][]dto.StudentBrief, len(classIDs))
	if len(classIDs) == 0 {
		return out, nil
	}
	var enrollments []classModel.EnrollmentModel
	if err := s.DB.WithContext(ctx).
		Preload("User").
		Where("enrollment_class_id IN ?", classIDs).
		Order("enrollment_created_at ASC").
		Find(&enrollments).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load enrollments")
	}
	for _, cid := range classIDs {
		out[cid] = []dto.StudentBrief{}
	}
	for _, e := range enrollments {
		if e.User == nil {
			continue
		}
		out[e.EnrollmentClassID] = append(out[e.EnrollmentClassID], dto.StudentBrief{
			ID:       e.User.ID,
			FullName: e.User.FullName,
			Username: e.User.UserName,
		})
	}
	return out, nil
}

func (s *ClassService) Get(ctx context.Context, id uuid.UUID) (*dto.ClassWithStudents, error) {
	m, err := FindClass(ctx, s.DB, id)
	if err != nil {
		return nil, err
	}
	roster, err := s.rosters(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	return &dto.ClassWithStudents{ClassResponse: dto.NewClassResponse(m), Students: roster[id]}, nil
}

// Enroll links a student to a class. A repeated call is a no-op and
// reports created=false.
func (s *ClassService) Enroll(ctx context.Context, classID, studentID uuid.UUID) (*dto.EnrollResponse, error) {
	if _, err := FindClass(ctx, s.DB, classID); err != nil {
		return nil, err
	}
	var student userModel.UserModel
	err := s.DB.WithContext(ctx).
		Where("id = ? AND role = ?", studentID, constants.RoleStudent).
		First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Student not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "find student")
	}

	e := classModel.EnrollmentModel{EnrollmentUserID: studentID, EnrollmentClassID: classID}
	res := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&e)
	if res.Error != nil {
		return nil, pkgerrors.Wrap(res.Error, "create enrollment")
	}
	return &dto.EnrollResponse{ClassID: classID, StudentID: studentID, Created: res.RowsAffected > 0}, nil
}

// StudentClasses lists the caller's classes with their head count.
func (s *ClassService) StudentClasses(ctx context.Context, userID uuid.UUID) ([]dto.StudentClass, error) {
	db := s.DB.WithContext(ctx)

	var classes []classModel.ClassModel
	if err := db.
		Joins("JOIN enrollments ON enrollments.enrollment_class_id = classes.class_id").
		Where("enrollments.enrollment_user_id = ?", userID).
		Order("enrollments.enrollment_created_at ASC").
		Find(&classes).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "list student classes")
	}
	if len(classes) == 0 {
		return []dto.StudentClass{}, nil
	}

	ids := make([]uuid.UUID, 0, len(classes))
	for _, c := range classes {
		ids = append(ids, c.ClassID)
	}
	type countRow struct {
		ClassID uuid.UUID
		Total   int
	}
	var counts []countRow
	if err := db.Model(&classModel.EnrollmentModel{}).
		Select("enrollment_class_id AS class_id, COUNT(*) AS total").
		Where("enrollment_class_id IN ?", ids).
		Group("enrollment_class_id").
		Scan(&counts).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "count enrollments")
	}
	byClass := make(map[uuid.UUID]int, len(counts))
	for _, c := range counts {
		byClass[c.ClassID] = c.Total
	}

	out := make([]dto.StudentClass, 0, len(classes))
	for i := range classes {
		out = append(out, dto.StudentClass{
			ClassResponse: dto.NewClassResponse(&classes[i]),
			TotalStudents: byClass[classes[i].ClassID],
		})
	}
	return out, nil
}

// Delete removes the class and everything that hangs off it in one
// transaction, leaf tables first. Uploaded files go after commit.
func (s *ClassService) Delete(ctx context.Context, id uuid.UUID) (*dto.DeleteClassResult, error) {
	var (
		res   dto.DeleteClassResult
		files []string
	)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := FindClass(ctx, tx, id); err != nil {
			return err
		}

		var assignmentIDs []uuid.UUID
		if err := tx.Model(&assignmentModel.AssignmentModel{}).
			Where("assignment_class_id = ?", id).
			Pluck("assignment_id", &assignmentIDs).Error; err != nil {
			return pkgerrors.Wrap(err, "collect assignments")
		}

		var materialURLs []string
		if err := tx.Model(&materialModel.MaterialModel{}).
			Where("material_class_id = ? AND material_type <> ?", id, constants.MaterialLink).
			Pluck("material_url", &materialURLs).Error; err != nil {
			return pkgerrors.Wrap(err, "collect material files")
		}
		files = append(files, materialURLs...)

		r := tx.Where("enrollment_class_id = ?", id).Delete(&classModel.EnrollmentModel{})
		if r.Error != nil {
			return pkgerrors.Wrap(r.Error, "delete enrollments")
		}
		res.Enrollments = r.RowsAffected

		r = tx.Where("material_class_id = ?", id).Delete(&materialModel.MaterialModel{})
		if r.Error != nil {
			return pkgerrors.Wrap(r.Error, "delete materials")
		}
		res.Materials = r.RowsAffected

		if len(assignmentIDs) > 0 {
			var submissionURLs []string
			if err := tx.Model(&assignmentModel.SubmissionModel{}).
				Where("submission_assignment_id IN ?", assignmentIDs).
				Pluck("submission_file_url", &submissionURLs).Error; err != nil {
				return pkgerrors.Wrap(err, "collect submission files")
			}
			files = append(files, submissionURLs...)

			r = tx.Where("submission_assignment_id IN ?", assignmentIDs).Delete(&assignmentModel.SubmissionModel{})
			if r.Error != nil {
				return pkgerrors.Wrap(r.Error, "delete submissions")
			}
			res.Submissions = r.RowsAffected
		}

		r = tx.Where("assignment_class_id = ?", id).Delete(&assignmentModel.AssignmentModel{})
		if r.Error != nil {
			return pkgerrors.Wrap(r.Error, "delete assignments")
		}
		res.Assignments = r.RowsAffected

		r = tx.Where("message_class_id = ?", id).Delete(&messageModel.MessageModel{})
		if r.Error != nil {
			return pkgerrors.Wrap(r.Error, "delete messages")
		}
		res.Messages = r.RowsAffected

		r = tx.Where("attendance_class_id = ?", id).Delete(&attendanceModel.AttendanceModel{})
		if r.Error != nil {
			return pkgerrors.Wrap(r.Error, "delete attendance")
		}
		res.Attendance = r.RowsAffected

		r = tx.Where("result_class_id = ?", id).Delete(&resultModel.ResultModel{})
		if r.Error != nil {
			return pkgerrors.Wrap(r.Error, "delete results")
		}
		res.Results = r.RowsAffected

		if err := tx.Delete(&classModel.ClassModel{}, "class_id = ?", id).Error; err != nil {
			return pkgerrors.Wrap(err, "delete class")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	storage.DeleteQuietly(context.Background(), s.Blob, files)
	log.Printf("[INFO] class %s deleted with dependents %+v", id, res)
	return &res, nil
}
