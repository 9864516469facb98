package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "lms_backend/internals/features/users/user/model"
)

const (
	ClassTypeOnline  = "online"
	ClassTypeOffline = "offline"
)

// ClassModel merepresentasikan tabel classes
type ClassModel struct {
	ClassID        uuid.UUID `json:"id"                 gorm:"column:class_id;type:uuid;primaryKey"`
	ClassName      string    `json:"className"          gorm:"column:class_name;type:varchar(120);not null"`
	ClassSchedule  *string   `json:"schedule,omitempty" gorm:"column:class_schedule;type:text"`
	ClassType      string    `json:"type"               gorm:"column:class_type;type:varchar(10);not null;default:'offline'"`
	ClassCreatedAt time.Time `json:"createdAt"          gorm:"column:class_created_at;not null;autoCreateTime"`
	ClassUpdatedAt time.Time `json:"updatedAt"          gorm:"column:class_updated_at;not null;autoUpdateTime"`

	Enrollments []EnrollmentModel `json:"-" gorm:"foreignKey:EnrollmentClassID;references:ClassID"`
}

func (ClassModel) TableName() string { return "classes" }

func (m *ClassModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassID == uuid.Nil {
		m.ClassID = uuid.New()
	}
	if m.ClassType == "" {
		m.ClassType = ClassTypeOffline
	}
	return nil
}

// EnrollmentModel is the user <-> class link; (user, class) is unique.
type EnrollmentModel struct {
	EnrollmentID        uuid.UUID `json:"id"        gorm:"column:enrollment_id;type:uuid;primaryKey"`
	EnrollmentUserID    uuid.UUID `json:"userId"    gorm:"column:enrollment_user_id;type:uuid;not null;uniqueIndex:uq_enrollments_user_class,priority:1"`
	EnrollmentClassID   uuid.UUID `json:"classId"   gorm:"column:enrollment_class_id;type:uuid;not null;uniqueIndex:uq_enrollments_user_class,priority:2;index"`
	EnrollmentCreatedAt time.Time `json:"createdAt" gorm:"column:enrollment_created_at;not null;autoCreateTime"`

	User  *userModel.UserModel `json:"user,omitempty"  gorm:"foreignKey:EnrollmentUserID;references:ID"`
	Class *ClassModel          `json:"class,omitempty" gorm:"foreignKey:EnrollmentClassID;references:ClassID"`
}

func (EnrollmentModel) TableName() string { return "enrollments" }

func (m *EnrollmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.EnrollmentID == uuid.Nil {
		m.EnrollmentID = uuid.New()
	}
	return nil
}
