package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	assignmentModel "lms_backend/internals/features/school/assignments/model"
	userModel "lms_backend/internals/features/users/user/model"
)

/* ===================== REQUESTS ===================== */

type CreateAssignmentRequest struct {
	Title       string  `json:"title"       validate:"required,max=200"`
	Description *string `json:"description"`
	DueDate     string  `json:"dueDate"`
	ClassID     string  `json:"classId"     validate:"required,uuid"`
}

// SubmitAssignmentRequest is the non-file part of the multipart upload.
type SubmitAssignmentRequest struct {
	AssignmentID string `form:"assignmentId" json:"assignmentId" validate:"required,uuid"`
}

type GradeSubmissionRequest struct {
	Marks    *int    `json:"marks"    validate:"required,min=0"`
	Feedback *string `json:"feedback"`
}

/* ===================== RESPONSES ===================== */

type AssignmentResponse struct {
	ID          uuid.UUID  `json:"id"`
	ClassID     uuid.UUID  `json:"classId"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func NewAssignmentResponse(m *assignmentModel.AssignmentModel) AssignmentResponse {
	return AssignmentResponse{
		ID:          m.AssignmentID,
		ClassID:     m.AssignmentClassID,
		Title:       m.AssignmentTitle,
		Description: m.AssignmentDescription,
		DueDate:     m.AssignmentDueDate,
		CreatedAt:   m.AssignmentCreatedAt,
	}
}

type SubmitterBrief struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"fullName"`
	Username string    `json:"username"`
}

type SubmissionResponse struct {
	ID           uuid.UUID       `json:"id"`
	AssignmentID uuid.UUID       `json:"assignmentId"`
	UserID       uuid.UUID       `json:"userId"`
	FileURL      string          `json:"fileUrl"`
	Marks        *int            `json:"marks"`
	Feedback     *string         `json:"feedback"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	User         *SubmitterBrief `json:"user,omitempty"`
}

func NewSubmissionResponse(m *assignmentModel.SubmissionModel) SubmissionResponse {
	out := SubmissionResponse{
		ID:           m.SubmissionID,
		AssignmentID: m.SubmissionAssignmentID,
		UserID:       m.SubmissionUserID,
		FileURL:      m.SubmissionFileURL,
		Marks:        m.SubmissionMarks,
		Feedback:     m.SubmissionFeedback,
		Status:       m.SubmissionStatus,
		CreatedAt:    m.SubmissionCreatedAt,
	}
	if m.User != nil {
		out.User = newSubmitter(m.User)
	}
	return out
}

func newSubmitter(u *userModel.UserModel) *SubmitterBrief {
	return &SubmitterBrief{ID: u.ID, FullName: u.FullName, Username: u.UserName}
}

// TeacherAssignment carries every submission of the assignment.
type TeacherAssignment struct {
	AssignmentResponse
	Submissions []SubmissionResponse `json:"submissions"`
}

// OwnAssignment carries only the caller's submission, when there is one.
type OwnAssignment struct {
	AssignmentResponse
	Submission *SubmissionResponse `json:"submission,omitempty"`
}

// StudentAssignment is one row of the cross-class assignment list.
type StudentAssignment struct {
	AssignmentResponse
	ClassName string `json:"className"`
	Status    string `json:"status"`
	Marks     *int   `json:"marks"`
}

const StatusPending = "pending"

func TrimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
