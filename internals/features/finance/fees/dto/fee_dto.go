package dto

import (
	"time"

	"github.com/google/uuid"

	feeModel "lms_backend/internals/features/finance/fees/model"
	helper "lms_backend/internals/helpers"
)

// MarkFeeRequest takes year and amount as numbers or numeric strings;
// the service range-checks them.
type MarkFeeRequest struct {
	StudentID string         `json:"studentId" validate:"required,uuid"`
	Month     string         `json:"month"     validate:"required"`
	Year      helper.FlexInt `json:"year"`
	Amount    helper.FlexInt `json:"amount"`
	Status    string         `json:"status"    validate:"required,oneof=paid pending"`
}

// ClassFeeRow is one enrolled student on the monthly fee sheet.
type ClassFeeRow struct {
	ID        uuid.UUID  `json:"id"`
	FullName  string     `json:"fullName"`
	FeeStatus string     `json:"feeStatus"`
	Amount    int64      `json:"amount"`
	FeeID     *uuid.UUID `json:"feeId"`
}

type FeeUser struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"fullName"`
	Username string    `json:"username"`
}

type FeeResponse struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"userId"`
	Month     string     `json:"month"`
	Year      int        `json:"year"`
	Amount    int64      `json:"amount"`
	Status    string     `json:"status"`
	PaidDate  *time.Time `json:"paidDate"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	User      *FeeUser   `json:"user,omitempty"`
}

func NewFeeResponse(m *feeModel.FeeModel) FeeResponse {
	out := FeeResponse{
		ID:        m.FeeID,
		UserID:    m.FeeUserID,
		Month:     m.FeeMonth,
		Year:      m.FeeYear,
		Amount:    m.FeeAmount,
		Status:    m.FeeStatus,
		PaidDate:  m.FeePaidDate,
		CreatedAt: m.FeeCreatedAt,
		UpdatedAt: m.FeeUpdatedAt,
	}
	if m.User != nil {
		out.User = &FeeUser{ID: m.User.ID, FullName: m.User.FullName, Username: m.User.UserName}
	}
	return out
}

func NewFeeResponses(rows []feeModel.FeeModel) []FeeResponse {
	out := make([]FeeResponse, 0, len(rows))
	for i := range rows {
		out = append(out, NewFeeResponse(&rows[i]))
	}
	return out
}
