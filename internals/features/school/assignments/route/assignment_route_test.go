package route

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms_backend/internals/features/school/assignments/dto"
	assignmentModel "lms_backend/internals/features/school/assignments/model"
	"lms_backend/internals/helpers/storage"
	"lms_backend/internals/testutil"
)

func TestAssignmentFlow(t *testing.T) {
	db := testutil.PrepareDB(t)
	blob := storage.NewLocalBlobService(t.TempDir(), "/uploads")
	app := testutil.NewApp()
	AssignmentRoutes(app.Group("/api"), db, blob)

	teacher := testutil.TokenFor(t, testutil.CreateTeacher(t, db))
	amina := testutil.CreateStudent(t, db, "amina", "Amina Nakato")
	student := testutil.TokenFor(t, amina)
	c := testutil.CreateClass(t, db, "Physics-101")
	testutil.Enroll(t, db, amina.ID, c.ClassID)

	create := func(title, due string) dto.AssignmentResponse {
		body := fiber.Map{"title": title, "classId": c.ClassID.String()}
		if due != "" {
			body["dueDate"] = due
		}
		resp, env := testutil.DoJSON(t, app, http.MethodPost, "/api/assignments", teacher, body)
		require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)
		var a dto.AssignmentResponse
		testutil.DecodeData(t, env, &a)
		return a
	}

	undated := create("Reading", "")
	late := create("Lab report", "2024-06-20")
	early := create("Problem set", "2024-06-10T09:00:00Z")

	resp, env := testutil.DoJSON(t, app, http.MethodPost, "/api/assignments", teacher,
		fiber.Map{"title": "Bad", "classId": c.ClassID.String(), "dueDate": "next week"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid date", env.Message)

	// submit
	resp, env = testutil.DoMultipart(t, app, "/api/submit-assignment", student,
		map[string]string{"assignmentId": early.ID.String()}, "", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "No file uploaded", env.Message)

	resp, env = testutil.DoMultipart(t, app, "/api/submit-assignment", student,
		map[string]string{"assignmentId": "7f8e7c39-8f0a-4e0f-9a43-3f9d2d1c5b11"}, "file", "answer.pdf", []byte("%PDF-1.4"))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Assignment not found", env.Message)

	resp, env = testutil.DoMultipart(t, app, "/api/submit-assignment", student,
		map[string]string{"assignmentId": early.ID.String()}, "file", "answer.pdf", []byte("%PDF-1.4"))
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)
	var sub dto.SubmissionResponse
	testutil.DecodeData(t, env, &sub)
	assert.Equal(t, assignmentModel.SubmissionStatusSubmitted, sub.Status)
	assert.Nil(t, sub.Marks)

	// grade
	path := "/api/submissions/" + sub.ID.String() + "/grade"
	resp, _ = testutil.DoJSON(t, app, http.MethodPut, path, student, fiber.Map{"marks": 8})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = testutil.DoJSON(t, app, http.MethodPut, path, teacher, fiber.Map{"feedback": "no marks"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, env = testutil.DoJSON(t, app, http.MethodPut, path, teacher, fiber.Map{"marks": 8, "feedback": " Good work "})
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)
	var graded dto.SubmissionResponse
	testutil.DecodeData(t, env, &graded)
	assert.Equal(t, assignmentModel.SubmissionStatusGraded, graded.Status)
	require.NotNil(t, graded.Marks)
	assert.Equal(t, 8, *graded.Marks)
	require.NotNil(t, graded.Feedback)
	assert.Equal(t, "Good work", *graded.Feedback)
	require.NotNil(t, graded.User)
	assert.Equal(t, "Amina Nakato", graded.User.FullName)

	resp, _ = testutil.DoJSON(t, app, http.MethodPut, "/api/submissions/7f8e7c39-8f0a-4e0f-9a43-3f9d2d1c5b11/grade", teacher, fiber.Map{"marks": 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// teacher view carries every submission
	resp, env = testutil.DoJSON(t, app, http.MethodGet, "/api/classes/"+c.ClassID.String()+"/assignments", teacher, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var teacherView []dto.TeacherAssignment
	testutil.DecodeData(t, env, &teacherView)
	require.Len(t, teacherView, 3)
	subs := 0
	for _, a := range teacherView {
		subs += len(a.Submissions)
	}
	assert.Equal(t, 1, subs)

	// student view only carries their own submission
	resp, env = testutil.DoJSON(t, app, http.MethodGet, "/api/classes/"+c.ClassID.String()+"/assignments", student, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var own []dto.OwnAssignment
	testutil.DecodeData(t, env, &own)
	require.Len(t, own, 3)
	for _, a := range own {
		if a.ID == early.ID {
			require.NotNil(t, a.Submission)
		} else {
			assert.Nil(t, a.Submission)
		}
	}

	// cross-class list sorted by due date, undated last
	resp, env = testutil.DoJSON(t, app, http.MethodGet, "/api/student/assignments", student, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mine []dto.StudentAssignment
	testutil.DecodeData(t, env, &mine)
	require.Len(t, mine, 3)
	assert.Equal(t, []string{early.Title, late.Title, undated.Title}, []string{mine[0].Title, mine[1].Title, mine[2].Title})
	assert.Equal(t, "Physics-101", mine[0].ClassName)
	assert.Equal(t, assignmentModel.SubmissionStatusGraded, mine[0].Status)
	require.NotNil(t, mine[0].Marks)
	assert.Equal(t, 8, *mine[0].Marks)
	assert.Equal(t, dto.StatusPending, mine[1].Status)
}
