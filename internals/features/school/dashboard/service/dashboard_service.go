package service

import (
	"context"
	"time"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"lms_backend/internals/constants"
	feeService "lms_backend/internals/features/finance/fees/service"
	attendanceService "lms_backend/internals/features/school/attendance/service"
	classModel "lms_backend/internals/features/school/classes/model"
	"lms_backend/internals/features/school/dashboard/dto"
	userModel "lms_backend/internals/features/users/user/model"
	helper "lms_backend/internals/helpers"
)

const recentAttendanceLimit = 5

type DashboardService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{DB: db, Now: time.Now}
}

// Stats aggregates the teacher overview. Monthly fees cover the current
// calendar month in UTC.
func (s *DashboardService) Stats(ctx context.Context) (*dto.TeacherStats, error) {
	db := s.DB.WithContext(ctx)
	out := &dto.TeacherStats{}

	if err := db.Model(&userModel.UserModel{}).
		Where("role = ?", constants.RoleStudent).
		Count(&out.TotalStudents).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "count students")
	}
	if err := db.Model(&classModel.ClassModel{}).Count(&out.TotalClasses).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "count classes")
	}

	now := s.Now().UTC()
	out.Month, out.Year = helper.MonthName(now.Month()), now.Year()
	sum, err := feeService.PaidTotal(ctx, s.DB, out.Month, out.Year)
	if err != nil {
		return nil, err
	}
	out.MonthlyFees = sum

	if out.AttendanceRate, err = attendanceService.Rate(ctx, s.DB); err != nil {
		return nil, err
	}
	if out.RecentAttendance, err = attendanceService.NewAttendanceService(s.DB).Recent(ctx, recentAttendanceLimit); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *DashboardService) Diagnose(ctx context.Context) (*dto.Diagnostics, error) {
	db := s.DB.WithContext(ctx)

	var enrollments []classModel.EnrollmentModel
	if err := db.Order("enrollment_created_at ASC, enrollment_id ASC").Find(&enrollments).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load enrollments")
	}
	var users []userModel.UserModel
	if err := db.Order("full_name ASC").Find(&users).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load users")
	}
	var classes []classModel.ClassModel
	if err := db.Order("class_created_at ASC").Find(&classes).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load classes")
	}

	out := &dto.Diagnostics{
		Enrollments: make([]dto.DiagnoseEnrollment, 0, len(enrollments)),
		Users:       make([]dto.DiagnoseUser, 0, len(users)),
		Classes:     make([]dto.DiagnoseClass, 0, len(classes)),
	}
	for _, e := range enrollments {
		out.Enrollments = append(out.Enrollments, dto.DiagnoseEnrollment{
			ID: e.EnrollmentID, UserID: e.EnrollmentUserID, ClassID: e.EnrollmentClassID, CreatedAt: e.EnrollmentCreatedAt,
		})
	}
	for _, u := range users {
		out.Users = append(out.Users, dto.DiagnoseUser{ID: u.ID, FullName: u.FullName, Role: u.Role})
	}
	for _, c := range classes {
		out.Classes = append(out.Classes, dto.DiagnoseClass{ID: c.ClassID, ClassName: c.ClassName})
	}
	return out, nil
}
