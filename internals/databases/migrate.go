package database

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	feeModel "lms_backend/internals/features/finance/fees/model"
	assignmentModel "lms_backend/internals/features/school/assignments/model"
	attendanceModel "lms_backend/internals/features/school/attendance/model"
	classModel "lms_backend/internals/features/school/classes/model"
	materialModel "lms_backend/internals/features/school/materials/model"
	messageModel "lms_backend/internals/features/school/messages/model"
	resultModel "lms_backend/internals/features/school/results/model"
	userModel "lms_backend/internals/features/users/user/model"
)

// Models lists every table, parents first.
func Models() []any {
	return []any{
		&userModel.UserModel{},
		&classModel.ClassModel{},
		&classModel.EnrollmentModel{},
		&materialModel.MaterialModel{},
		&assignmentModel.AssignmentModel{},
		&assignmentModel.SubmissionModel{},
		&messageModel.MessageModel{},
		&attendanceModel.AttendanceModel{},
		&feeModel.FeeModel{},
		&resultModel.ResultModel{},
	}
}

// AutoMigrate syncs the schema from the models. There are no versioned
// migration scripts; re-running it is how the schema evolves.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	// rows without a class are unique per (user, date)
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS ` + attendanceModel.UnclassedIndexName +
			` ON attendances (attendance_user_id, attendance_date) WHERE attendance_class_id IS NULL`,
	).Error; err != nil {
		return errors.Wrap(err, "create unclassed attendance index")
	}
	return nil
}
