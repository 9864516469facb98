package route

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms_backend/internals/constants"
	"lms_backend/internals/features/school/dashboard/dto"
	"lms_backend/internals/testutil"
)

func TestDashboardRoutes(t *testing.T) {
	db := testutil.PrepareDB(t)
	app := testutil.NewApp()
	DashboardRoutes(app.Group("/api"), db)
	teacher := testutil.TokenFor(t, testutil.CreateTeacher(t, db))
	student := testutil.TokenFor(t, testutil.CreateStudent(t, db, "amina", "Amina Nakato"))

	resp, env := testutil.DoJSON(t, app, http.MethodGet, "/api/teacher/stats", teacher, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)
	var st dto.TeacherStats
	testutil.DecodeData(t, env, &st)
	assert.EqualValues(t, 1, st.TotalStudents)
	assert.NotEmpty(t, st.Month)

	resp, env = testutil.DoJSON(t, app, http.MethodGet, "/api/teacher/stats", student, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, constants.ErrRequiresTeacherRole, env.Message)

	resp, env = testutil.DoJSON(t, app, http.MethodGet, "/api/diagnose-enrollments", teacher, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var d dto.Diagnostics
	testutil.DecodeData(t, env, &d)
	assert.Len(t, d.Users, 2)
	assert.Empty(t, d.Enrollments)
}
