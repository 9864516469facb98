package route

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"lms_backend/internals/features/school/attendance/dto"
	attendanceModel "lms_backend/internals/features/school/attendance/model"
	"lms_backend/internals/features/school/attendance/service"
	classModel "lms_backend/internals/features/school/classes/model"
	"lms_backend/internals/testutil"
)

func enrollAt(t *testing.T, db *gorm.DB, userID, classID uuid.UUID, at time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&classModel.EnrollmentModel{
		EnrollmentUserID:    userID,
		EnrollmentClassID:   classID,
		EnrollmentCreatedAt: at,
	}).Error)
}

func day(s string) datatypes.Date {
	d, _ := time.Parse("2006-01-02", s)
	return datatypes.Date(d)
}

func countRows(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&attendanceModel.AttendanceModel{}).Count(&n).Error)
	return n
}

func TestMarkClassAttendance_Upserts(t *testing.T) {
	db := testutil.PrepareDB(t)
	app := testutil.NewApp()
	AttendanceRoutes(app.Group("/api"), db)
	teacher := testutil.TokenFor(t, testutil.CreateTeacher(t, db))

	amina := testutil.CreateStudent(t, db, "amina", "Amina Nakato")
	brian := testutil.CreateStudent(t, db, "brian", "Brian Ouma")
	c := testutil.CreateClass(t, db, "Physics-101")
	testutil.Enroll(t, db, amina.ID, c.ClassID)
	testutil.Enroll(t, db, brian.ID, c.ClassID)

	mark := func(status string) {
		resp, env := testutil.DoJSON(t, app, http.MethodPost, "/api/attendance/mark", teacher, fiber.Map{
			"classId": c.ClassID.String(),
			"date":    "2024-05-01",
			"attendanceData": []fiber.Map{
				{"studentId": amina.ID.String(), "status": status},
			},
		})
		require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)
		var res dto.MarkResult
		testutil.DecodeData(t, env, &res)
		assert.Equal(t, dto.MarkResult{Date: "2024-05-01", Marked: 1}, res)
	}
	mark("present")
	mark("absent")
	assert.EqualValues(t, 1, countRows(t, db))

	resp, env := testutil.DoJSON(t, app, http.MethodGet, "/api/attendance/"+c.ClassID.String()+"/2024-05-01", teacher, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sheet []dto.RosterEntry
	testutil.DecodeData(t, env, &sheet)
	require.Len(t, sheet, 2)
	assert.Equal(t, "Amina Nakato", sheet[0].FullName)
	require.NotNil(t, sheet[0].Status)
	assert.Equal(t, "absent", *sheet[0].Status)
	assert.Nil(t, sheet[1].Status)
	assert.Nil(t, sheet[1].AttendanceID)

	resp, _ = testutil.DoJSON(t, app, http.MethodPost, "/api/attendance/mark", teacher, fiber.Map{
		"classId": c.ClassID.String(), "date": "2024-05-01",
		"attendanceData": []fiber.Map{{"studentId": amina.ID.String(), "status": "late"}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = testutil.DoJSON(t, app, http.MethodPost, "/api/attendance/mark", teacher, fiber.Map{
		"classId": c.ClassID.String(), "date": "2024-05-01", "attendanceData": []fiber.Map{},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = testutil.DoJSON(t, app, http.MethodGet, "/api/attendance/"+c.ClassID.String()+"/not-a-date", teacher, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMarkGlobalAttendance(t *testing.T) {
	db := testutil.PrepareDB(t)
	app := testutil.NewApp()
	AttendanceRoutes(app.Group("/api"), db)
	teacher := testutil.TokenFor(t, testutil.CreateTeacher(t, db))

	amina := testutil.CreateStudent(t, db, "amina", "Amina Nakato")
	zed := testutil.CreateStudent(t, db, "zed", "Zed Unenrolled")
	physics := testutil.CreateClass(t, db, "Physics-101")
	chem := testutil.CreateClass(t, db, "Chemistry-201")
	base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	enrollAt(t, db, amina.ID, chem.ClassID, base.Add(time.Hour))
	enrollAt(t, db, amina.ID, physics.ClassID, base)

	body := fiber.Map{
		"date": "2024-05-02",
		"attendanceData": []fiber.Map{
			{"studentId": amina.ID.String(), "status": "present"},
			{"studentId": zed.ID.String(), "status": "leave"},
		},
	}
	resp, env := testutil.DoJSON(t, app, http.MethodPost, "/api/attendance/mark-global", teacher, body)
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)

	var row attendanceModel.AttendanceModel
	require.NoError(t, db.First(&row, "attendance_user_id = ?", amina.ID).Error)
	require.NotNil(t, row.AttendanceClassID)
	assert.Equal(t, physics.ClassID, *row.AttendanceClassID)

	var unclassed attendanceModel.AttendanceModel
	require.NoError(t, db.First(&unclassed, "attendance_user_id = ?", zed.ID).Error)
	assert.Nil(t, unclassed.AttendanceClassID)

	// marking again updates in place
	body["attendanceData"] = []fiber.Map{
		{"studentId": amina.ID.String(), "status": "absent"},
		{"studentId": zed.ID.String(), "status": "present"},
	}
	resp, _ = testutil.DoJSON(t, app, http.MethodPost, "/api/attendance/mark-global", teacher, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 2, countRows(t, db))

	resp, env = testutil.DoJSON(t, app, http.MethodGet, "/api/attendance-global/2024-05-02", teacher, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sheet []dto.RosterEntry
	testutil.DecodeData(t, env, &sheet)
	require.Len(t, sheet, 2)
	assert.Equal(t, "Physics-101", sheet[0].ClassName)
	require.NotNil(t, sheet[0].Status)
	assert.Equal(t, "absent", *sheet[0].Status)
	assert.Equal(t, service.NotEnrolled, sheet[1].ClassName)
	require.NotNil(t, sheet[1].Status)
	assert.Equal(t, "present", *sheet[1].Status)
}

func TestMarkGlobalAttendance_BackfillsClass(t *testing.T) {
	db := testutil.PrepareDB(t)
	app := testutil.NewApp()
	AttendanceRoutes(app.Group("/api"), db)
	teacher := testutil.TokenFor(t, testutil.CreateTeacher(t, db))

	amina := testutil.CreateStudent(t, db, "amina", "Amina Nakato")
	physics := testutil.CreateClass(t, db, "Physics-101")
	require.NoError(t, db.Create(&attendanceModel.AttendanceModel{
		AttendanceUserID: amina.ID,
		AttendanceDate:   day("2024-05-03"),
		AttendanceStatus: attendanceModel.StatusAbsent,
	}).Error)
	testutil.Enroll(t, db, amina.ID, physics.ClassID)

	resp, env := testutil.DoJSON(t, app, http.MethodPost, "/api/attendance/mark-global", teacher, fiber.Map{
		"date":           "2024-05-03",
		"attendanceData": []fiber.Map{{"studentId": amina.ID.String(), "status": "present"}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)

	var rows []attendanceModel.AttendanceModel
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, attendanceModel.StatusPresent, rows[0].AttendanceStatus)
	require.NotNil(t, rows[0].AttendanceClassID)
	assert.Equal(t, physics.ClassID, *rows[0].AttendanceClassID)
}

func TestHistoryAndStudentView(t *testing.T) {
	db := testutil.PrepareDB(t)
	app := testutil.NewApp()
	AttendanceRoutes(app.Group("/api"), db)
	teacher := testutil.TokenFor(t, testutil.CreateTeacher(t, db))

	amina := testutil.CreateStudent(t, db, "amina", "Amina Nakato")
	fresh := testutil.CreateStudent(t, db, "fresh", "Fresh Student")
	physics := testutil.CreateClass(t, db, "Physics-101")
	testutil.Enroll(t, db, amina.ID, physics.ClassID)

	rows := []attendanceModel.AttendanceModel{
		{AttendanceUserID: amina.ID, AttendanceClassID: &physics.ClassID, AttendanceDate: day("2024-05-01"), AttendanceStatus: "present"},
		{AttendanceUserID: amina.ID, AttendanceClassID: &physics.ClassID, AttendanceDate: day("2024-05-02"), AttendanceStatus: "absent"},
		{AttendanceUserID: amina.ID, AttendanceDate: day("2024-05-03"), AttendanceStatus: "present"},
	}
	require.NoError(t, db.Create(&rows).Error)

	resp, env := testutil.DoJSON(t, app, http.MethodGet, "/api/attendance-history", teacher, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var history []dto.AttendanceRecord
	testutil.DecodeData(t, env, &history)
	require.Len(t, history, 3)
	assert.Equal(t, "2024-05-03", history[0].Date)
	assert.Nil(t, history[0].Class)
	assert.Equal(t, "Physics-101", history[0].ResolvedClassName, "falls back to the earliest enrollment")
	assert.Equal(t, "2024-05-01", history[2].Date)

	resp, env = testutil.DoJSON(t, app, http.MethodGet, "/api/student/attendance", testutil.TokenFor(t, amina), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mine dto.StudentAttendance
	testutil.DecodeData(t, env, &mine)
	assert.Equal(t, dto.AttendanceSummary{Total: 3, Present: 2, Percentage: 67}, mine.Summary)
	assert.Len(t, mine.Records, 3)

	resp, env = testutil.DoJSON(t, app, http.MethodGet, "/api/student/attendance", testutil.TokenFor(t, fresh), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	testutil.DecodeData(t, env, &mine)
	assert.Equal(t, dto.AttendanceSummary{Total: 0, Present: 0, Percentage: 100}, mine.Summary)
	assert.Empty(t, mine.Records)

	resp, _ = testutil.DoJSON(t, app, http.MethodGet, "/api/attendance-history", testutil.TokenFor(t, amina), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
