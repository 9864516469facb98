package route

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms_backend/internals/features/finance/fees/dto"
	feeModel "lms_backend/internals/features/finance/fees/model"
	"lms_backend/internals/testutil"
)

func TestMarkFee(t *testing.T) {
	db := testutil.PrepareDB(t)
	app := testutil.NewApp()
	FeeRoutes(app.Group("/api"), db)
	teacher := testutil.TokenFor(t, testutil.CreateTeacher(t, db))
	amina := testutil.CreateStudent(t, db, "amina", "Amina Nakato")

	mark := func(month, status string, amount int64) (int, dto.FeeResponse) {
		resp, env := testutil.DoJSON(t, app, http.MethodPost, "/api/fees/mark", teacher, fiber.Map{
			"studentId": amina.ID.String(), "month": month, "year": 2024, "amount": amount, "status": status,
		})
		var f dto.FeeResponse
		if resp.StatusCode == http.StatusOK {
			testutil.DecodeData(t, env, &f)
		}
		return resp.StatusCode, f
	}

	code, paid := mark("jan", "paid", 5000)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "January", paid.Month)
	assert.EqualValues(t, 5000, paid.Amount)
	assert.NotNil(t, paid.PaidDate)
	require.NotNil(t, paid.User)
	assert.Equal(t, "amina", paid.User.Username)

	code, pending := mark("1", "pending", 4500)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, paid.ID, pending.ID)
	assert.Equal(t, feeModel.FeeStatusPending, pending.Status)
	assert.EqualValues(t, 4500, pending.Amount)
	assert.Nil(t, pending.PaidDate)

	var n int64
	db.Model(&feeModel.FeeModel{}).Count(&n)
	assert.EqualValues(t, 1, n)

	code, _ = mark("Smarch", "paid", 1)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = mark("February", "overdue", 1)
	assert.Equal(t, http.StatusBadRequest, code)

	resp, _ := testutil.DoJSON(t, app, http.MethodPost, "/api/fees/mark", teacher, fiber.Map{
		"studentId": "7f8e7c39-8f0a-4e0f-9a43-3f9d2d1c5b11", "month": "March", "year": 2024, "amount": 1, "status": "paid",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMarkFee_NumericStrings(t *testing.T) {
	db := testutil.PrepareDB(t)
	app := testutil.NewApp()
	FeeRoutes(app.Group("/api"), db)
	teacher := testutil.TokenFor(t, testutil.CreateTeacher(t, db))
	amina := testutil.CreateStudent(t, db, "amina", "Amina Nakato")

	post := func(year, amount any) (*http.Response, testutil.Envelope) {
		body := fiber.Map{"studentId": amina.ID.String(), "month": "May", "year": year, "status": "paid"}
		if amount != nil {
			body["amount"] = amount
		}
		return testutil.DoJSON(t, app, http.MethodPost, "/api/fees/mark", teacher, body)
	}

	resp, env := post("2024", "5000")
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)
	var f dto.FeeResponse
	testutil.DecodeData(t, env, &f)
	assert.Equal(t, 2024, f.Year)
	assert.EqualValues(t, 5000, f.Amount)

	resp, env = post(2024, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)
	testutil.DecodeData(t, env, &f)
	assert.EqualValues(t, 0, f.Amount)

	tests := []struct {
		name         string
		year, amount any
		want         string
	}{
		{name: "missing year", year: nil, amount: 10, want: "Invalid year"},
		{name: "word year", year: "twenty", amount: 10, want: "Invalid year"},
		{name: "year out of range", year: "1999", amount: 10, want: "Invalid year"},
		{name: "word amount", year: 2024, amount: "lots", want: "Invalid amount"},
		{name: "negative amount", year: 2024, amount: "-1", want: "Invalid amount"},
		{name: "NaN amount", year: 2024, amount: "NaN", want: "Invalid amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, env := post(tt.year, tt.amount)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tt.want, env.Message)
		})
	}
}

func TestFeeSheetsAndHistory(t *testing.T) {
	db := testutil.PrepareDB(t)
	app := testutil.NewApp()
	FeeRoutes(app.Group("/api"), db)
	teacher := testutil.TokenFor(t, testutil.CreateTeacher(t, db))
	amina := testutil.CreateStudent(t, db, "amina", "Amina Nakato")
	brian := testutil.CreateStudent(t, db, "brian", "Brian Ouma")
	c := testutil.CreateClass(t, db, "Physics-101")
	testutil.Enroll(t, db, amina.ID, c.ClassID)
	testutil.Enroll(t, db, brian.ID, c.ClassID)

	fees := []feeModel.FeeModel{
		{FeeUserID: amina.ID, FeeMonth: "December", FeeYear: 2023, FeeAmount: 100, FeeStatus: "paid"},
		{FeeUserID: amina.ID, FeeMonth: "March", FeeYear: 2024, FeeAmount: 300, FeeStatus: "pending"},
		{FeeUserID: amina.ID, FeeMonth: "January", FeeYear: 2024, FeeAmount: 200, FeeStatus: "paid"},
	}
	require.NoError(t, db.Create(&fees).Error)

	resp, env := testutil.DoJSON(t, app, http.MethodGet, "/api/fees/"+c.ClassID.String()+"/jan/2024", teacher, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)
	var sheet []dto.ClassFeeRow
	testutil.DecodeData(t, env, &sheet)
	require.Len(t, sheet, 2)
	assert.Equal(t, "paid", sheet[0].FeeStatus)
	assert.EqualValues(t, 200, sheet[0].Amount)
	assert.NotNil(t, sheet[0].FeeID)
	assert.Equal(t, dto.ClassFeeRow{ID: brian.ID, FullName: "Brian Ouma", FeeStatus: "pending"}, sheet[1])

	resp, _ = testutil.DoJSON(t, app, http.MethodGet, "/api/fees/"+c.ClassID.String()+"/jan/twenty", teacher, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, env = testutil.DoJSON(t, app, http.MethodGet, "/api/fees-history", teacher, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var history []dto.FeeResponse
	testutil.DecodeData(t, env, &history)
	require.Len(t, history, 3)
	assert.Equal(t, []string{"March", "January", "December"},
		[]string{history[0].Month, history[1].Month, history[2].Month})

	resp, env = testutil.DoJSON(t, app, http.MethodGet, "/api/fees-history?page=2&per_page=2", teacher, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	testutil.DecodeData(t, env, &history)
	require.Len(t, history, 1)
	assert.Equal(t, 2023, history[0].Year)

	resp, env = testutil.DoJSON(t, app, http.MethodGet, "/api/student/fees", testutil.TokenFor(t, amina), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mine []dto.FeeResponse
	testutil.DecodeData(t, env, &mine)
	require.Len(t, mine, 3)
	assert.Equal(t, "March", mine[0].Month)

	resp, env = testutil.DoJSON(t, app, http.MethodGet, "/api/student/fees", testutil.TokenFor(t, brian), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	testutil.DecodeData(t, env, &mine)
	assert.Empty(t, mine)
}
