package service

import (
	"context"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	attendanceModel "lms_backend/internals/features/school/attendance/model"
	classModel "lms_backend/internals/features/school/classes/model"
)

const NotEnrolled = "Not Enrolled"

// EarliestEnrollments maps each user to the class of their first
// enrollment (created_at, then id, ascending). Users without any
// enrollment are absent from the map.
func EarliestEnrollments(ctx context.Context, db *gorm.DB, userIDs []uuid.UUID) (map[uuid.UUID]classModel.ClassModel, error) {
	out := make(map[uuid.UUID]classModel.ClassModel, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	var rows []classModel.EnrollmentModel
	if err := db.WithContext(ctx).
		Preload("Class").
		Where("enrollment_user_id IN ?", userIDs).
		Order("enrollment_created_at ASC, enrollment_id ASC").
		Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load enrollments")
	}
	for _, e := range rows {
		if _, seen := out[e.EnrollmentUserID]; seen || e.Class == nil {
			continue
		}
		out[e.EnrollmentUserID] = *e.Class
	}
	return out, nil
}

// EarliestEnrollmentClassID is the single-user form used while marking.
func EarliestEnrollmentClassID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*uuid.UUID, error) {
	var e classModel.EnrollmentModel
	res := db.WithContext(ctx).
		Where("enrollment_user_id = ?", userID).
		Order("enrollment_created_at ASC, enrollment_id ASC").
		Limit(1).
		Find(&e)
	if res.Error != nil {
		return nil, pkgerrors.Wrap(res.Error, "find earliest enrollment")
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	id := e.EnrollmentClassID
	return &id, nil
}

// ResolveClassName falls back from the row's own class to the user's
// earliest enrollment, then to "Not Enrolled".
func ResolveClassName(row *attendanceModel.AttendanceModel, earliest map[uuid.UUID]classModel.ClassModel) string {
	if row.Class != nil && row.Class.ClassName != "" {
		return row.Class.ClassName
	}
	if c, ok := earliest[row.AttendanceUserID]; ok {
		return c.ClassName
	}
	return NotEnrolled
}

// ResolveClassNames loads what ResolveClassName needs for a batch of rows
// (with Class preloaded) and returns the names by attendance id.
func ResolveClassNames(ctx context.Context, db *gorm.DB, rows []attendanceModel.AttendanceModel) (map[uuid.UUID]string, error) {
	var missing []uuid.UUID
	seen := map[uuid.UUID]bool{}
	for i := range rows {
		if rows[i].Class != nil {
			continue
		}
		if uid := rows[i].AttendanceUserID; !seen[uid] {
			seen[uid] = true
			missing = append(missing, uid)
		}
	}
	earliest, err := EarliestEnrollments(ctx, db, missing)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]string, len(rows))
	for i := range rows {
		out[rows[i].AttendanceID] = ResolveClassName(&rows[i], earliest)
	}
	return out, nil
}
