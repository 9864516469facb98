package dto

import (
	"time"

	"github.com/google/uuid"

	attendanceModel "lms_backend/internals/features/school/attendance/model"
	helper "lms_backend/internals/helpers"
)

/* ===================== REQUESTS ===================== */

type AttendanceItem struct {
	StudentID string `json:"studentId" validate:"required,uuid"`
	Status    string `json:"status"    validate:"required,oneof=present absent leave"`
}

type MarkClassAttendanceRequest struct {
	ClassID        string           `json:"classId"        validate:"required,uuid"`
	Date           string           `json:"date"           validate:"required"`
	AttendanceData []AttendanceItem `json:"attendanceData" validate:"required,min=1,dive"`
}

type MarkGlobalAttendanceRequest struct {
	Date           string           `json:"date"           validate:"required"`
	AttendanceData []AttendanceItem `json:"attendanceData" validate:"required,min=1,dive"`
}

/* ===================== RESPONSES ===================== */

// RosterEntry is one student on a day sheet; Status is nil when unmarked.
type RosterEntry struct {
	ID           uuid.UUID  `json:"id"`
	FullName     string     `json:"fullName"`
	Username     string     `json:"username"`
	Status       *string    `json:"status"`
	AttendanceID *uuid.UUID `json:"attendanceId"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
	ClassName    string     `json:"className,omitempty"`
}

type MarkResult struct {
	Date   string `json:"date"`
	Marked int    `json:"marked"`
}

type UserBrief struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
}

type ClassBrief struct {
	ID        uuid.UUID `json:"id"`
	ClassName string    `json:"className"`
}

type AttendanceRecord struct {
	ID                uuid.UUID   `json:"id"`
	UserID            uuid.UUID   `json:"userId"`
	ClassID           *uuid.UUID  `json:"classId"`
	Date              string      `json:"date"`
	Status            string      `json:"status"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
	User              *UserBrief  `json:"user,omitempty"`
	Class             *ClassBrief `json:"class"`
	ResolvedClassName string      `json:"resolvedClassName"`
}

func NewAttendanceRecord(m *attendanceModel.AttendanceModel, resolved string) AttendanceRecord {
	out := AttendanceRecord{
		ID:                m.AttendanceID,
		UserID:            m.AttendanceUserID,
		ClassID:           m.AttendanceClassID,
		Date:              helper.FormatDate(m.AttendanceDate),
		Status:            m.AttendanceStatus,
		CreatedAt:         m.AttendanceCreatedAt,
		UpdatedAt:         m.AttendanceUpdatedAt,
		ResolvedClassName: resolved,
	}
	if m.User != nil {
		out.User = &UserBrief{FullName: m.User.FullName, Username: m.User.UserName}
	}
	if m.Class != nil {
		out.Class = &ClassBrief{ID: m.Class.ClassID, ClassName: m.Class.ClassName}
	}
	return out
}

type AttendanceSummary struct {
	Total      int64 `json:"total"`
	Present    int64 `json:"present"`
	Percentage int   `json:"percentage"`
}

type StudentAttendance struct {
	Summary AttendanceSummary  `json:"summary"`
	Records []AttendanceRecord `json:"records"`
}
