package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	classModel "lms_backend/internals/features/school/classes/model"
	userModel "lms_backend/internals/features/users/user/model"
)

// ResultModel: one row per (test name, test date, user, class).
type ResultModel struct {
	ResultID            uuid.UUID      `json:"id"            gorm:"column:result_id;type:uuid;primaryKey"`
	ResultUserID        uuid.UUID      `json:"userId"        gorm:"column:result_user_id;type:uuid;not null;uniqueIndex:uq_results_test_user_class,priority:3"`
	ResultClassID       uuid.UUID      `json:"classId"       gorm:"column:result_class_id;type:uuid;not null;uniqueIndex:uq_results_test_user_class,priority:4;index"`
	ResultTestName      string         `json:"testName"      gorm:"column:result_test_name;type:varchar(160);not null;uniqueIndex:uq_results_test_user_class,priority:1"`
	ResultTestDate      datatypes.Date `json:"testDate"      gorm:"column:result_test_date;not null;uniqueIndex:uq_results_test_user_class,priority:2"`
	ResultTotalMarks    int            `json:"totalMarks"    gorm:"column:result_total_marks;not null"`
	ResultObtainedMarks int            `json:"obtainedMarks" gorm:"column:result_obtained_marks;not null"`
	ResultRemarks       *string        `json:"remarks"       gorm:"column:result_remarks;type:text"`
	ResultCreatedAt     time.Time      `json:"createdAt"     gorm:"column:result_created_at;not null;autoCreateTime"`
	ResultUpdatedAt     time.Time      `json:"updatedAt"     gorm:"column:result_updated_at;not null;autoUpdateTime"`

	User  *userModel.UserModel   `json:"user,omitempty"  gorm:"foreignKey:ResultUserID;references:ID"`
	Class *classModel.ClassModel `json:"class,omitempty" gorm:"foreignKey:ResultClassID;references:ClassID"`
}

func (ResultModel) TableName() string { return "results" }

func (m *ResultModel) BeforeCreate(tx *gorm.DB) error {
	if m.ResultID == uuid.Nil {
		m.ResultID = uuid.New()
	}
	return nil
}
