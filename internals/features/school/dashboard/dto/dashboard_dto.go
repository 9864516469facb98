package dto

import (
	"time"

	"github.com/google/uuid"

	attendanceDTO "lms_backend/internals/features/school/attendance/dto"
)

type TeacherStats struct {
	TotalStudents    int64                            `json:"totalStudents"`
	TotalClasses     int64                            `json:"totalClasses"`
	MonthlyFees      int64                            `json:"monthlyFees"`
	Month            string                           `json:"month"`
	Year             int                              `json:"year"`
	AttendanceRate   int                              `json:"attendanceRate"`
	RecentAttendance []attendanceDTO.AttendanceRecord `json:"recentAttendance"`
}

type DiagnoseEnrollment struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	ClassID   uuid.UUID `json:"classId"`
	CreatedAt time.Time `json:"createdAt"`
}

type DiagnoseUser struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"fullName"`
	Role     string    `json:"role"`
}

type DiagnoseClass struct {
	ID        uuid.UUID `json:"id"`
	ClassName string    `json:"className"`
}

// Diagnostics is the raw enrollment dump used to debug class resolution.
type Diagnostics struct {
	Enrollments []DiagnoseEnrollment `json:"enrollments"`
	Users       []DiagnoseUser       `json:"users"`
	Classes     []DiagnoseClass      `json:"classes"`
}
