// Package testutil wires an in-memory database and helpers for tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"lms_backend/internals/configs"
	"lms_backend/internals/constants"
	database "lms_backend/internals/databases"
	classModel "lms_backend/internals/features/school/classes/model"
	userModel "lms_backend/internals/features/users/user/model"
	helperAuth "lms_backend/internals/helpers/auth"
)

const TestSecret = "test-secret"

var dbSeq int64

// PrepareDB returns a fresh migrated in-memory database.
func PrepareDB(t *testing.T) *gorm.DB {
	t.Helper()
	configs.JWTSecret = TestSecret

	name := fmt.Sprintf("file:lms_test_%d?mode=memory&cache=shared&_foreign_keys=0", atomic.AddInt64(&dbSeq, 1))
	cfg := database.GormConfig()
	cfg.Logger = gormLogger.Default.LogMode(gormLogger.Silent)
	db, err := gorm.Open(sqlite.Open(name), cfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection: sqlite serialises writers anyway
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, username, role, fullName string) *userModel.UserModel {
	t.Helper()
	hash, err := helperAuth.HashPassword("secret123")
	require.NoError(t, err)
	u := &userModel.UserModel{UserName: username, Password: hash, Role: role, FullName: fullName}
	require.NoError(t, db.Create(u).Error)
	return u
}

func CreateTeacher(t *testing.T, db *gorm.DB) *userModel.UserModel {
	return CreateUser(t, db, "teacher-"+uuid.NewString()[:8], constants.RoleTeacher, "Teacher")
}

func CreateStudent(t *testing.T, db *gorm.DB, username, fullName string) *userModel.UserModel {
	return CreateUser(t, db, username, constants.RoleStudent, fullName)
}

func CreateClass(t *testing.T, db *gorm.DB, name string) *classModel.ClassModel {
	t.Helper()
	c := &classModel.ClassModel{ClassName: name, ClassType: classModel.ClassTypeOffline}
	require.NoError(t, db.Create(c).Error)
	return c
}

func Enroll(t *testing.T, db *gorm.DB, userID, classID uuid.UUID) {
	t.Helper()
	require.NoError(t, db.Create(&classModel.EnrollmentModel{
		EnrollmentUserID:  userID,
		EnrollmentClassID: classID,
	}).Error)
}

func TokenFor(t *testing.T, u *userModel.UserModel) string {
	t.Helper()
	tok, err := helperAuth.IssueToken(u.ID, u.Role, u.FullName)
	require.NoError(t, err)
	return tok
}

// NewApp returns a fiber app configured like the server.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
	})
}

// Envelope is the standard JSON response shape.
type Envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

func DoJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, Envelope) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return do(t, app, req)
}

// DoMultipart sends fields plus an optional file under fileField.
func DoMultipart(t *testing.T, app *fiber.App, path, token string, fields map[string]string, fileField, fileName string, content []byte) (*http.Response, Envelope) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return do(t, app, req)
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, Envelope) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	var env Envelope
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp, env
}

// DecodeData unmarshals the envelope data into out.
func DecodeData(t *testing.T, env Envelope, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, out), string(env.Data))
}
