package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	classModel "lms_backend/internals/features/school/classes/model"
	userModel "lms_backend/internals/features/users/user/model"
)

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLeave   = "leave"

	// partial unique index over (user, date) for rows without a class
	UnclassedIndexName = "uq_attendance_user_date_unclassed"
)

// AttendanceModel: one row per (user, class, date). ClassID may be nil for
// rows written by global marking when the student has no enrollment.
type AttendanceModel struct {
	AttendanceID        uuid.UUID      `json:"id"        gorm:"column:attendance_id;type:uuid;primaryKey"`
	AttendanceUserID    uuid.UUID      `json:"userId"    gorm:"column:attendance_user_id;type:uuid;not null;uniqueIndex:uq_attendance_user_class_date,priority:1"`
	AttendanceClassID   *uuid.UUID     `json:"classId"   gorm:"column:attendance_class_id;type:uuid;uniqueIndex:uq_attendance_user_class_date,priority:2;index"`
	AttendanceDate      datatypes.Date `json:"date"      gorm:"column:attendance_date;not null;uniqueIndex:uq_attendance_user_class_date,priority:3;index"`
	AttendanceStatus    string         `json:"status"    gorm:"column:attendance_status;type:varchar(10);not null"`
	AttendanceCreatedAt time.Time      `json:"createdAt" gorm:"column:attendance_created_at;not null;autoCreateTime;index"`
	AttendanceUpdatedAt time.Time      `json:"updatedAt" gorm:"column:attendance_updated_at;not null;autoUpdateTime"`

	User  *userModel.UserModel   `json:"user,omitempty"  gorm:"foreignKey:AttendanceUserID;references:ID"`
	Class *classModel.ClassModel `json:"class,omitempty" gorm:"foreignKey:AttendanceClassID;references:ClassID"`
}

func (AttendanceModel) TableName() string { return "attendances" }

func (m *AttendanceModel) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceID == uuid.Nil {
		m.AttendanceID = uuid.New()
	}
	return nil
}

func IsValidStatus(s string) bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLeave:
		return true
	}
	return false
}
