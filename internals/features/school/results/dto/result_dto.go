package dto

import (
	"time"

	"github.com/google/uuid"

	resultModel "lms_backend/internals/features/school/results/model"
	helper "lms_backend/internals/helpers"
)

/* ===================== REQUESTS ===================== */

type ResultItem struct {
	StudentID     string         `json:"studentId"     validate:"required,uuid"`
	ObtainedMarks helper.FlexInt `json:"obtainedMarks"`
	Remarks       *string        `json:"remarks"`
}

type UploadResultsRequest struct {
	ClassID     string         `json:"classId"     validate:"required,uuid"`
	TestName    string         `json:"testName"    validate:"required,max=160"`
	TotalMarks  helper.FlexInt `json:"totalMarks"`
	TestDate    string         `json:"testDate"    validate:"required"`
	ResultsData []ResultItem   `json:"resultsData" validate:"required,min=1,dive"`
}

type UpdateResultRequest struct {
	ObtainedMarks helper.FlexInt `json:"obtainedMarks"`
	TotalMarks    helper.FlexInt `json:"totalMarks"`
	Remarks       *string        `json:"remarks"`
	TestName      *string        `json:"testName" validate:"omitempty,max=160"`
}

/* ===================== RESPONSES ===================== */

type UploadSummary struct {
	Saved   int `json:"saved"`
	Skipped int `json:"skipped"`
}

type ResultUser struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
}

type ResultClass struct {
	ID        uuid.UUID `json:"id"`
	ClassName string    `json:"className"`
}

type ResultResponse struct {
	ID            uuid.UUID    `json:"id"`
	UserID        uuid.UUID    `json:"userId"`
	ClassID       uuid.UUID    `json:"classId"`
	TestName      string       `json:"testName"`
	TestDate      string       `json:"testDate"`
	TotalMarks    int          `json:"totalMarks"`
	ObtainedMarks int          `json:"obtainedMarks"`
	Remarks       *string      `json:"remarks"`
	Percentage    int          `json:"percentage"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
	User          *ResultUser  `json:"user,omitempty"`
	Class         *ResultClass `json:"class,omitempty"`
}

func NewResultResponse(m *resultModel.ResultModel) ResultResponse {
	out := ResultResponse{
		ID:            m.ResultID,
		UserID:        m.ResultUserID,
		ClassID:       m.ResultClassID,
		TestName:      m.ResultTestName,
		TestDate:      helper.FormatDate(m.ResultTestDate),
		TotalMarks:    m.ResultTotalMarks,
		ObtainedMarks: m.ResultObtainedMarks,
		Remarks:       m.ResultRemarks,
		Percentage:    helper.Percentage(int64(m.ResultObtainedMarks), int64(m.ResultTotalMarks), 0),
		CreatedAt:     m.ResultCreatedAt,
		UpdatedAt:     m.ResultUpdatedAt,
	}
	if m.User != nil {
		out.User = &ResultUser{FullName: m.User.FullName, Username: m.User.UserName}
	}
	if m.Class != nil {
		out.Class = &ResultClass{ID: m.Class.ClassID, ClassName: m.Class.ClassName}
	}
	return out
}

func NewResultResponses(rows []resultModel.ResultModel) []ResultResponse {
	out := make([]ResultResponse, 0, len(rows))
	for i := range rows {
		out = append(out, NewResultResponse(&rows[i]))
	}
	return out
}
