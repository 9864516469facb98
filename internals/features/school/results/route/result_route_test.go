package route

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms_backend/internals/features/school/results/dto"
	resultModel "lms_backend/internals/features/school/results/model"
	"lms_backend/internals/testutil"
)

func TestResults(t *testing.T) {
	db := testutil.PrepareDB(t)
	app := testutil.NewApp()
	ResultRoutes(app.Group("/api"), db)
	teacher := testutil.TokenFor(t, testutil.CreateTeacher(t, db))

	amina := testutil.CreateStudent(t, db, "amina", "Amina Nakato")
	brian := testutil.CreateStudent(t, db, "brian", "Brian Ouma")
	chidi := testutil.CreateStudent(t, db, "chidi", "Chidi Eze")
	dana := testutil.CreateStudent(t, db, "dana", "Dana Mwangi")
	c := testutil.CreateClass(t, db, "Physics-101")
	classID := c.ClassID.String()

	uploadWithTotal := func(total any, items []fiber.Map) (*http.Response, dto.UploadSummary, string) {
		resp, env := testutil.DoJSON(t, app, http.MethodPost, "/api/results/upload", teacher, fiber.Map{
			"classId": classID, "testName": "Midterm", "totalMarks": total, "testDate": "2024-05-10",
			"resultsData": items,
		})
		var sum dto.UploadSummary
		if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
			testutil.DecodeData(t, env, &sum)
		}
		return resp, sum, env.Message
	}
	upload := func(items []fiber.Map) (*http.Response, dto.UploadSummary, string) {
		return uploadWithTotal(20, items)
	}

	t.Run("skips missing marks and accepts zero", func(t *testing.T) {
		resp, sum, msg := upload([]fiber.Map{
			{"studentId": amina.ID.String(), "obtainedMarks": 9, "remarks": "Needs practice"},
			{"studentId": brian.ID.String(), "obtainedMarks": "0"},
			{"studentId": chidi.ID.String(), "obtainedMarks": ""},
			{"studentId": dana.ID.String(), "obtainedMarks": nil},
		})
		require.Less(t, resp.StatusCode, 300, msg)
		assert.Equal(t, dto.UploadSummary{Saved: 2, Skipped: 2}, sum)
	})

	t.Run("re-upload overwrites", func(t *testing.T) {
		resp, sum, msg := uploadWithTotal("20", []fiber.Map{{"studentId": amina.ID.String(), "obtainedMarks": "12"}})
		require.Less(t, resp.StatusCode, 300, msg)
		assert.Equal(t, 1, sum.Saved)

		var n int64
		db.Model(&resultModel.ResultModel{}).Count(&n)
		assert.EqualValues(t, 2, n)
	})

	t.Run("non numeric rejects the batch", func(t *testing.T) {
		resp, _, msg := upload([]fiber.Map{
			{"studentId": chidi.ID.String(), "obtainedMarks": 15},
			{"studentId": dana.ID.String(), "obtainedMarks": "abc"},
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Marks must be valid numbers.", msg)

		for _, bad := range []any{"NaN", "Infinity", "-Inf", "99999999999"} {
			resp, _, msg = upload([]fiber.Map{
				{"studentId": chidi.ID.String(), "obtainedMarks": 15},
				{"studentId": dana.ID.String(), "obtainedMarks": bad},
			})
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, bad)
			assert.Equal(t, "Marks must be valid numbers.", msg, bad)
		}

		var n int64
		db.Model(&resultModel.ResultModel{}).Where("result_user_id = ?", chidi.ID).Count(&n)
		assert.Zero(t, n)
	})

	t.Run("total marks must be a positive number", func(t *testing.T) {
		for _, bad := range []any{nil, "", "abc", 0, "-5", "NaN"} {
			resp, _, msg := uploadWithTotal(bad, []fiber.Map{{"studentId": chidi.ID.String(), "obtainedMarks": 15}})
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, bad)
			assert.Equal(t, "Total marks must be a positive number.", msg, bad)
		}
		var n int64
		db.Model(&resultModel.ResultModel{}).Where("result_user_id = ?", chidi.ID).Count(&n)
		assert.Zero(t, n)
	})

	var aminaResult dto.ResultResponse
	t.Run("class listing with percentage", func(t *testing.T) {
		resp, env := testutil.DoJSON(t, app, http.MethodGet, "/api/results/class/"+classID, teacher, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var rows []dto.ResultResponse
		testutil.DecodeData(t, env, &rows)
		require.Len(t, rows, 2)
		for _, r := range rows {
			require.NotNil(t, r.User)
			if r.User.Username == "amina" {
				aminaResult = r
			}
		}
		assert.Equal(t, 12, aminaResult.ObtainedMarks)
		assert.Equal(t, 60, aminaResult.Percentage)
		assert.Equal(t, "2024-05-10", aminaResult.TestDate)
		require.NotNil(t, aminaResult.Class)
		assert.Equal(t, "Physics-101", aminaResult.Class.ClassName)
	})

	t.Run("update keeps blank fields", func(t *testing.T) {
		require.NotEqual(t, "", aminaResult.ID.String())
		path := "/api/results/" + aminaResult.ID.String()

		resp, env := testutil.DoJSON(t, app, http.MethodPut, path, teacher, fiber.Map{
			"obtainedMarks": "9", "totalMarks": 20, "remarks": "  ", "testName": "",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)
		var r dto.ResultResponse
		testutil.DecodeData(t, env, &r)
		assert.Equal(t, 9, r.ObtainedMarks)
		assert.Equal(t, 45, r.Percentage)
		assert.Equal(t, "Midterm", r.TestName)
		require.NotNil(t, r.Remarks)
		assert.Equal(t, "Needs practice", *r.Remarks)

		for _, bad := range []any{"x", "Infinity", "NaN"} {
			resp, env = testutil.DoJSON(t, app, http.MethodPut, path, teacher, fiber.Map{"obtainedMarks": bad, "totalMarks": 20})
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, bad)
			assert.Equal(t, "Marks must be valid numbers.", env.Message, bad)
		}

		resp, _ = testutil.DoJSON(t, app, http.MethodPut, "/api/results/7f8e7c39-8f0a-4e0f-9a43-3f9d2d1c5b11", teacher,
			fiber.Map{"obtainedMarks": 1, "totalMarks": 2})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("student sees only their own", func(t *testing.T) {
		resp, env := testutil.DoJSON(t, app, http.MethodGet, "/api/student/results", testutil.TokenFor(t, brian), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var rows []dto.ResultResponse
		testutil.DecodeData(t, env, &rows)
		require.Len(t, rows, 1)
		assert.Equal(t, 0, rows[0].ObtainedMarks)
		assert.Equal(t, 0, rows[0].Percentage)

		resp, _ = testutil.DoJSON(t, app, http.MethodGet, "/api/results/history", testutil.TokenFor(t, brian), nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		resp, env = testutil.DoJSON(t, app, http.MethodGet, "/api/results/history", teacher, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		testutil.DecodeData(t, env, &rows)
		assert.Len(t, rows, 2)
	})
}
