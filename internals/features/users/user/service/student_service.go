package service

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"lms_backend/internals/constants"
	feeModel "lms_backend/internals/features/finance/fees/model"
	assignmentModel "lms_backend/internals/features/school/assignments/model"
	attendanceModel "lms_backend/internals/features/school/attendance/model"
	classModel "lms_backend/internals/features/school/classes/model"
	messageModel "lms_backend/internals/features/school/messages/model"
	resultModel "lms_backend/internals/features/school/results/model"
	"lms_backend/internals/features/users/user/dto"
	userModel "lms_backend/internals/features/users/user/model"
	helper "lms_backend/internals/helpers"
	helperAuth "lms_backend/internals/helpers/auth"
	"lms_backend/internals/helpers/storage"
)

type StudentService struct {
	DB   *gorm.DB
	Blob storage.BlobService
}

func NewStudentService(db *gorm.DB, blob storage.BlobService) *StudentService {
	return &StudentService{DB: db, Blob: blob}
}

func (s *StudentService) Register(ctx context.Context, req dto.RegisterStudentRequest) (*userModel.UserModel, error) {
	hash, err := helperAuth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u := &userModel.UserModel{
		UserName: req.Username,
		Password: hash,
		Role:     constants.RoleStudent,
		FullName: req.FullName,
	}
	if err := u.Validate(); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Username already taken")
		}
		return nil, pkgerrors.Wrap(err, "create student")
	}
	log.Printf("[INFO] student registered: %s (%s)", u.UserName, u.ID)
	return u, nil
}

func (s *StudentService) List(ctx context.Context) ([]userModel.UserModel, error) {
	var rows []userModel.UserModel
	err := s.DB.WithContext(ctx).
		Where("role = ?", constants.RoleStudent).
		Order("full_name ASC").
		Find(&rows).Error
	return rows, pkgerrors.Wrap(err, "list students")
}

func (s *StudentService) findStudent(ctx context.Context, db *gorm.DB, id uuid.UUID) (*userModel.UserModel, error) {
	var u userModel.UserModel
	err := db.WithContext(ctx).
		Where("id = ? AND role = ?", id, constants.RoleStudent).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Student not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "find student")
	}
	return &u, nil
}

func (s *StudentService) ResetPassword(ctx context.Context, id uuid.UUID, newPassword string) error {
	if _, err := s.findStudent(ctx, s.DB, id); err != nil {
		return err
	}
	hash, err := helperAuth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	err = s.DB.WithContext(ctx).Model(&userModel.UserModel{}).
		Where("id = ?", id).
		Update("password", hash).Error
	return pkgerrors.Wrap(err, "reset password")
}

// Delete removes the student and every dependent row in one transaction,
// leaf tables first. Submission files are removed after commit.
func (s *StudentService) Delete(ctx context.Context, id uuid.UUID) (*dto.DeleteStudentResult, error) {
	var (
		res   dto.DeleteStudentResult
		files []string
	)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.findStudent(ctx, tx, id); err != nil {
			return err
		}

		if err := tx.Model(&assignmentModel.SubmissionModel{}).
			Where("submission_user_id = ?", id).
			Pluck("submission_file_url", &files).Error; err != nil {
			return pkgerrors.Wrap(err, "collect submission files")
		}

		steps := []struct {
			count *int64
			model any
			where string
		}{
			{&res.Enrollments, &classModel.EnrollmentModel{}, "enrollment_user_id = ?"},
			{&res.Submissions, &assignmentModel.SubmissionModel{}, "submission_user_id = ?"},
			{&res.Messages, &messageModel.MessageModel{}, "message_sender_id = ?"},
			{&res.Attendance, &attendanceModel.AttendanceModel{}, "attendance_user_id = ?"},
			{&res.Fees, &feeModel.FeeModel{}, "fee_user_id = ?"},
			{&res.Results, &resultModel.ResultModel{}, "result_user_id = ?"},
		}
		for _, st := range steps {
			r := tx.Where(st.where, id).Delete(st.model)
			if r.Error != nil {
				return pkgerrors.Wrapf(r.Error, "delete %T", st.model)
			}
			*st.count = r.RowsAffected
		}

		if err := tx.Delete(&userModel.UserModel{}, "id = ?", id).Error; err != nil {
			return pkgerrors.Wrap(err, "delete user")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	storage.DeleteQuietly(context.Background(), s.Blob, files)
	log.Printf("[INFO] student %s deleted with dependents %+v", id, res)
	return &res, nil
}
