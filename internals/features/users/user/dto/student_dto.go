package dto

import (
	"time"

	"github.com/google/uuid"

	userModel "lms_backend/internals/features/users/user/model"
)

type RegisterStudentRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	FullName string `json:"fullName" validate:"required,max=120"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=6,max=72"`
}

type StudentResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewStudentResponse(u *userModel.UserModel) StudentResponse {
	return StudentResponse{
		ID:        u.ID,
		Username:  u.UserName,
		FullName:  u.FullName,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func NewStudentResponses(rows []userModel.UserModel) []StudentResponse {
	out := make([]StudentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, NewStudentResponse(&rows[i]))
	}
	return out
}

// DeleteStudentResult counts the rows removed along with the account.
type DeleteStudentResult struct {
	Enrollments int64 `json:"enrollments"`
	Submissions int64 `json:"submissions"`
	Messages    int64 `json:"messages"`
	Attendance  int64 `json:"attendance"`
	Fees        int64 `json:"fees"`
	Results     int64 `json:"results"`
}
