package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lms_backend/internals/constants"
	"lms_backend/internals/features/school/attendance/dto"
	attendanceModel "lms_backend/internals/features/school/attendance/model"
	classService "lms_backend/internals/features/school/classes/service"
	userModel "lms_backend/internals/features/users/user/model"
	helper "lms_backend/internals/helpers"
)

type AttendanceService struct {
	DB *gorm.DB
}

func NewAttendanceService(db *gorm.DB) *AttendanceService {
	return &AttendanceService{DB: db}
}

/* ===================== PER CLASS ===================== */

// ClassSheet lists the enrolled students of a class with their status on
// the given day.
func (s *AttendanceService) ClassSheet(ctx context.Context, classID uuid.UUID, date datatypes.Date) ([]dto.RosterEntry, error) {
	if _, err := classService.FindClass(ctx, s.DB, classID); err != nil {
		return nil, err
	}
	db := s.DB.WithContext(ctx)

	var students []userModel.UserModel
	if err := db.
		Joins("JOIN enrollments ON enrollments.enrollment_user_id = users.id").
		Where("enrollments.enrollment_class_id = ?", classID).
		Order("users.full_name ASC").
		Find(&students).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load roster")
	}

	var marks []attendanceModel.AttendanceModel
	if err := db.
		Where("attendance_class_id = ? AND attendance_date = ?", classID, date).
		Find(&marks).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load attendance")
	}
	byUser := make(map[uuid.UUID]attendanceModel.AttendanceModel, len(marks))
	for _, m := range marks {
		byUser[m.AttendanceUserID] = m
	}

	out := make([]dto.RosterEntry, 0, len(students))
	for _, st := range students {
		e := dto.RosterEntry{ID: st.ID, FullName: st.FullName, Username: st.UserName}
		if m, ok := byUser[st.ID]; ok {
			status, id, at := m.AttendanceStatus, m.AttendanceID, m.AttendanceUpdatedAt
			e.Status, e.AttendanceID, e.UpdatedAt = &status, &id, &at
		}
		out = append(out, e)
	}
	return out, nil
}

// MarkClass upserts every item on (user, class, date) in one transaction.
func (s *AttendanceService) MarkClass(ctx context.Context, classID uuid.UUID, date datatypes.Date, items []dto.AttendanceItem) (int, error) {
	if _, err := classService.FindClass(ctx, s.DB, classID); err != nil {
		return 0, err
	}
	rows, err := toRows(items, &classID, date)
	if err != nil {
		return 0, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "attendance_user_id"},
					{Name: "attendance_class_id"},
					{Name: "attendance_date"},
				},
				DoUpdates: clause.AssignmentColumns([]string{"attendance_status", "attendance_updated_at"}),
			}).Create(&rows[i]).Error; err != nil {
				return pkgerrors.Wrap(err, "upsert attendance")
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	log.Printf("[INFO] attendance marked: class=%s date=%s count=%d", classID, helper.FormatDate(date), len(rows))
	return len(rows), nil
}

func toRows(items []dto.AttendanceItem, classID *uuid.UUID, date datatypes.Date) ([]attendanceModel.AttendanceModel, error) {
	rows := make([]attendanceModel.AttendanceModel, 0, len(items))
	for _, it := range items {
		uid, err := helper.ParseUUID(it.StudentID, "student")
		if err != nil {
			return nil, err
		}
		rows = append(rows, attendanceModel.AttendanceModel{
			AttendanceUserID:  uid,
			AttendanceClassID: classID,
			AttendanceDate:    date,
			AttendanceStatus:  it.Status,
		})
	}
	return rows, nil
}

/* ===================== GLOBAL ===================== */

// GlobalSheet lists every student with their status on the given day,
// whatever class the mark was recorded against.
func (s *AttendanceService) GlobalSheet(ctx context.Context, date datatypes.Date) ([]dto.RosterEntry, error) {
	db := s.DB.WithContext(ctx)

	var students []userModel.UserModel
	if err := db.Where("role = ?", constants.RoleStudent).
		Order("full_name ASC").
		Find(&students).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load students")
	}

	var marks []attendanceModel.AttendanceModel
	if err := db.Preload("Class").
		Where("attendance_date = ?", date).
		Order("attendance_created_at ASC, attendance_id ASC").
		Find(&marks).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load attendance")
	}
	byUser := make(map[uuid.UUID]*attendanceModel.AttendanceModel, len(marks))
	for i := range marks {
		if _, ok := byUser[marks[i].AttendanceUserID]; !ok {
			byUser[marks[i].AttendanceUserID] = &marks[i]
		}
	}

	ids := make([]uuid.UUID, 0, len(students))
	for _, st := range students {
		ids = append(ids, st.ID)
	}
	earliest, err := EarliestEnrollments(ctx, s.DB, ids)
	if err != nil {
		return nil, err
	}

	out := make([]dto.RosterEntry, 0, len(students))
	for _, st := range students {
		e := dto.RosterEntry{ID: st.ID, FullName: st.FullName, Username: st.UserName}
		if m, ok := byUser[st.ID]; ok {
			status, id, at := m.AttendanceStatus, m.AttendanceID, m.AttendanceUpdatedAt
			e.Status, e.AttendanceID, e.UpdatedAt = &status, &id, &at
			e.ClassName = ResolveClassName(m, earliest)
		} else if c, ok := earliest[st.ID]; ok {
			e.ClassName = c.ClassName
		} else {
			e.ClassName = NotEnrolled
		}
		out = append(out, e)
	}
	return out, nil
}

// MarkGlobal records each item against the student's earliest class. A
// row already present for (user, date) is updated in place and only gets
// its class filled in when it had none. Each item runs in its own
// transaction.
func (s *AttendanceService) MarkGlobal(ctx context.Context, date datatypes.Date, items []dto.AttendanceItem) (int, error) {
	rows, err := toRows(items, nil, date)
	if err != nil {
		return 0, err
	}
	marked := 0
	for i := range rows {
		if err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return markOne(ctx, tx, rows[i])
		}); err != nil {
			return marked, err
		}
		marked++
	}
	log.Printf("[INFO] global attendance marked: date=%s count=%d", helper.FormatDate(date), marked)
	return marked, nil
}

func markOne(ctx context.Context, tx *gorm.DB, row attendanceModel.AttendanceModel) error {
	inferred, err := EarliestEnrollmentClassID(ctx, tx, row.AttendanceUserID)
	if err != nil {
		return err
	}

	var existing []attendanceModel.AttendanceModel
	if err := tx.
		Where("attendance_user_id = ? AND attendance_date = ?", row.AttendanceUserID, row.AttendanceDate).
		Order("attendance_created_at ASC, attendance_id ASC").
		Find(&existing).Error; err != nil {
		return pkgerrors.Wrap(err, "load existing attendance")
	}

	if len(existing) > 0 {
		target := existing[0]
		updates := map[string]any{
			"attendance_status":     row.AttendanceStatus,
			"attendance_updated_at": time.Now().UTC(),
		}
		if target.AttendanceClassID == nil && inferred != nil && !hasClass(existing, *inferred) {
			updates["attendance_class_id"] = *inferred
		}
		if err := tx.Model(&attendanceModel.AttendanceModel{}).
			Where("attendance_id = ?", target.AttendanceID).
			Updates(updates).Error; err != nil {
			return pkgerrors.Wrap(err, "update attendance")
		}
		return nil
	}

	row.AttendanceClassID = inferred
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if res.Error != nil {
		return pkgerrors.Wrap(res.Error, "insert attendance")
	}
	if res.RowsAffected == 0 {
		// lost a race with a concurrent insert for the same key
		return tx.Model(&attendanceModel.AttendanceModel{}).
			Where("attendance_user_id = ? AND attendance_date = ?", row.AttendanceUserID, row.AttendanceDate).
			Updates(map[string]any{
				"attendance_status":     row.AttendanceStatus,
				"attendance_updated_at": time.Now().UTC(),
			}).Error
	}
	return nil
}

func hasClass(rows []attendanceModel.AttendanceModel, classID uuid.UUID) bool {
	for _, r := range rows {
		if r.AttendanceClassID != nil && *r.AttendanceClassID == classID {
			return true
		}
	}
	return false
}

/* ===================== HISTORY ===================== */

// History returns every row, newest day first, with the resolved class name.
func (s *AttendanceService) History(ctx context.Context) ([]dto.AttendanceRecord, error) {
	var rows []attendanceModel.AttendanceModel
	if err := s.DB.WithContext(ctx).
		Preload("User").
		Preload("Class").
		Order("attendance_date DESC, attendance_updated_at DESC").
		Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load attendance history")
	}
	return s.records(ctx, rows)
}

// Recent returns the newest rows by creation time.
func (s *AttendanceService) Recent(ctx context.Context, limit int) ([]dto.AttendanceRecord, error) {
	var rows []attendanceModel.AttendanceModel
	if err := s.DB.WithContext(ctx).
		Preload("User").
		Preload("Class").
		Order("attendance_created_at DESC, attendance_id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load recent attendance")
	}
	return s.records(ctx, rows)
}

func (s *AttendanceService) records(ctx context.Context, rows []attendanceModel.AttendanceModel) ([]dto.AttendanceRecord, error) {
	names, err := ResolveClassNames(ctx, s.DB, rows)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AttendanceRecord, 0, len(rows))
	for i := range rows {
		out = append(out, dto.NewAttendanceRecord(&rows[i], names[rows[i].AttendanceID]))
	}
	return out, nil
}

// ForStudent returns the caller's rows and the present ratio.
func (s *AttendanceService) ForStudent(ctx context.Context, userID uuid.UUID) (*dto.StudentAttendance, error) {
	var rows []attendanceModel.AttendanceModel
	if err := s.DB.WithContext(ctx).
		Preload("Class").
		Where("attendance_user_id = ?", userID).
		Order("attendance_date DESC, attendance_updated_at DESC").
		Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load student attendance")
	}
	records, err := s.records(ctx, rows)
	if err != nil {
		return nil, err
	}

	var present int64
	for _, r := range rows {
		if r.AttendanceStatus == attendanceModel.StatusPresent {
			present++
		}
	}
	total := int64(len(rows))
	return &dto.StudentAttendance{
		Summary: dto.AttendanceSummary{
			Total:      total,
			Present:    present,
			Percentage: helper.Percentage(present, total, 100),
		},
		Records: records,
	}, nil
}

// Rate is the overall present ratio used by the dashboard (100 when empty).
func Rate(ctx context.Context, db *gorm.DB) (int, error) {
	var total, present int64
	q := db.WithContext(ctx).Model(&attendanceModel.AttendanceModel{})
	if err := q.Count(&total).Error; err != nil {
		return 0, pkgerrors.Wrap(err, "count attendance")
	}
	if err := db.WithContext(ctx).Model(&attendanceModel.AttendanceModel{}).
		Where("attendance_status = ?", attendanceModel.StatusPresent).
		Count(&present).Error; err != nil {
		return 0, pkgerrors.Wrap(err, "count present")
	}
	return helper.Percentage(present, total, 100), nil
}
