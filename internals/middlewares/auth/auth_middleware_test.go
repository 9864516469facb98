package auth

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms_backend/internals/constants"
	helper "lms_backend/internals/helpers"
	helperAuth "lms_backend/internals/helpers/auth"
	"lms_backend/internals/testutil"
)

func TestGuard(t *testing.T) {
	db := testutil.PrepareDB(t)
	teacher := testutil.CreateTeacher(t, db)
	student := testutil.CreateStudent(t, db, "amina", "Amina Nakato")

	app := testutil.NewApp()
	whoami := func(c *fiber.Ctx) error {
		sess, err := helperAuth.SessionFrom(c)
		if err != nil {
			return helper.FromServiceError(c, err)
		}
		return helper.JsonOK(c, sess.Role, nil)
	}
	app.Get("/teacher", TeacherOnly(db), whoami)
	app.Get("/student", StudentOnly(db), whoami)
	app.Get("/any", Authenticated(db), whoami)

	ghost, err := helperAuth.IssueToken(uuid.New(), constants.RoleTeacher, "Ghost")
	require.NoError(t, err)
	// claims say teacher, the stored account is a student
	forged, err := helperAuth.IssueToken(student.ID, constants.RoleTeacher, "Amina")
	require.NoError(t, err)

	tests := []struct {
		name    string
		path    string
		token   string
		status  int
		message string
	}{
		{name: "no token", path: "/teacher", status: http.StatusForbidden, message: constants.ErrNoToken},
		{name: "garbage token", path: "/teacher", token: "garbage", status: http.StatusUnauthorized, message: constants.ErrUnauthorized},
		{name: "deleted user", path: "/any", token: ghost, status: http.StatusUnauthorized, message: constants.ErrUnauthorized},
		{name: "student on teacher route", path: "/teacher", token: testutil.TokenFor(t, student), status: http.StatusForbidden, message: constants.ErrRequiresTeacherRole},
		{name: "stored role wins", path: "/teacher", token: forged, status: http.StatusForbidden, message: constants.ErrRequiresTeacherRole},
		{name: "teacher on teacher route", path: "/teacher", token: testutil.TokenFor(t, teacher), status: http.StatusOK, message: constants.RoleTeacher},
		{name: "teacher on student route", path: "/student", token: testutil.TokenFor(t, teacher), status: http.StatusForbidden, message: "Requires student Role"},
		{name: "student anywhere", path: "/any", token: testutil.TokenFor(t, student), status: http.StatusOK, message: constants.RoleStudent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, env := testutil.DoJSON(t, app, http.MethodGet, tt.path, tt.token, nil)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.message, env.Message)
		})
	}
}
