package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "lms_backend/internals/features/users/user/model"
)

const (
	SubmissionStatusSubmitted = "submitted"
	SubmissionStatusGraded    = "graded"
)

type AssignmentModel struct {
	AssignmentID          uuid.UUID  `json:"id"                 gorm:"column:assignment_id;type:uuid;primaryKey"`
	AssignmentClassID     uuid.UUID  `json:"classId"            gorm:"column:assignment_class_id;type:uuid;not null;index"`
	AssignmentTitle       string     `json:"title"              gorm:"column:assignment_title;type:varchar(200);not null"`
	AssignmentDescription *string    `json:"description"        gorm:"column:assignment_description;type:text"`
	AssignmentDueDate     *time.Time `json:"dueDate"            gorm:"column:assignment_due_date"`
	AssignmentCreatedAt   time.Time  `json:"createdAt"          gorm:"column:assignment_created_at;not null;autoCreateTime"`
	AssignmentUpdatedAt   time.Time  `json:"updatedAt"          gorm:"column:assignment_updated_at;not null;autoUpdateTime"`

	Submissions []SubmissionModel `json:"submissions,omitempty" gorm:"foreignKey:SubmissionAssignmentID;references:AssignmentID"`
}

func (AssignmentModel) TableName() string { return "assignments" }

func (m *AssignmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.AssignmentID == uuid.Nil {
		m.AssignmentID = uuid.New()
	}
	return nil
}

type SubmissionModel struct {
	SubmissionID           uuid.UUID `json:"id"                 gorm:"column:submission_id;type:uuid;primaryKey"`
	SubmissionAssignmentID uuid.UUID `json:"assignmentId"       gorm:"column:submission_assignment_id;type:uuid;not null;index"`
	SubmissionUserID       uuid.UUID `json:"userId"             gorm:"column:submission_user_id;type:uuid;not null;index"`
	SubmissionFileURL      string    `json:"fileUrl"            gorm:"column:submission_file_url;type:text;not null"`
	SubmissionMarks        *int      `json:"marks"              gorm:"column:submission_marks"`
	SubmissionFeedback     *string   `json:"feedback"           gorm:"column:submission_feedback;type:text"`
	SubmissionStatus       string    `json:"status"             gorm:"column:submission_status;type:varchar(12);not null;default:'submitted'"`
	SubmissionCreatedAt    time.Time `json:"createdAt"          gorm:"column:submission_created_at;not null;autoCreateTime"`
	SubmissionUpdatedAt    time.Time `json:"updatedAt"          gorm:"column:submission_updated_at;not null;autoUpdateTime"`

	User *userModel.UserModel `json:"user,omitempty" gorm:"foreignKey:SubmissionUserID;references:ID"`
}

func (SubmissionModel) TableName() string { return "submissions" }

func (m *SubmissionModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubmissionID == uuid.Nil {
		m.SubmissionID = uuid.New()
	}
	if m.SubmissionStatus == "" {
		m.SubmissionStatus = SubmissionStatusSubmitted
	}
	return nil
}
