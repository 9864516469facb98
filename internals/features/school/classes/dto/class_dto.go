package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	classModel "lms_backend/internals/features/school/classes/model"
)

/* ===================== REQUESTS ===================== */

type CreateClassRequest struct {
	ClassName string  `json:"className" validate:"required,max=120"`
	Schedule  *string `json:"schedule"  validate:"omitempty,max=255"`
	Type      string  `json:"type"      validate:"omitempty,oneof=online offline"`
}

func (r CreateClassRequest) ToModel() *classModel.ClassModel {
	m := &classModel.ClassModel{
		ClassName: strings.TrimSpace(r.ClassName),
		ClassType: r.Type,
	}
	if m.ClassType == "" {
		m.ClassType = classModel.ClassTypeOffline
	}
	if r.Schedule != nil {
		if s := strings.TrimSpace(*r.Schedule); s != "" {
			m.ClassSchedule = &s
		}
	}
	return m
}

type EnrollRequest struct {
	ClassID   string `json:"classId"   validate:"required,uuid"`
	StudentID string `json:"studentId" validate:"required,uuid"`
}

/* ===================== RESPONSES ===================== */

type ClassResponse struct {
	ID        uuid.UUID `json:"id"`
	ClassName string    `json:"className"`
	Schedule  *string   `json:"schedule"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewClassResponse(m *classModel.ClassModel) ClassResponse {
	return ClassResponse{
		ID:        m.ClassID,
		ClassName: m.ClassName,
		Schedule:  m.ClassSchedule,
		Type:      m.ClassType,
		CreatedAt: m.ClassCreatedAt,
	}
}

type StudentBrief struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"fullName"`
	Username string    `json:"username,omitempty"`
}

// ClassWithStudents is the teacher listing and the detail view.
type ClassWithStudents struct {
	ClassResponse
	Students []StudentBrief `json:"students"`
}

// StudentClass is a class as seen by an enrolled student.
type StudentClass struct {
	ClassResponse
	TotalStudents int `json:"totalStudents"`
}

type EnrollResponse struct {
	ClassID   uuid.UUID `json:"classId"`
	StudentID uuid.UUID `json:"studentId"`
	Created   bool      `json:"created"`
}

// DeleteClassResult counts the rows removed with the class.
type DeleteClassResult struct {
	Enrollments int64 `json:"enrollments"`
	Materials   int64 `json:"materials"`
	Submissions int64 `json:"submissions"`
	Assignments int64 `json:"assignments"`
	Messages    int64 `json:"messages"`
	Attendance  int64 `json:"attendance"`
	Results     int64 `json:"results"`
}
