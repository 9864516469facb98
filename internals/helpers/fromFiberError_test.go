package helper

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(pkgerrors.Wrap(&pq.Error{Code: "23505"}, "insert")))
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: users.user_name")))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsForeignKeyViolation(&pq.Error{Code: "23503"}))
	assert.True(t, IsForeignKeyViolation(gorm.ErrForeignKeyViolated))
	assert.False(t, IsForeignKeyViolation(errors.New("boom")))
}

func TestFromServiceError(t *testing.T) {
	type req struct {
		Name string `json:"name" validate:"required"`
	}
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "fiber error", err: fiber.NewError(fiber.StatusTeapot, "tea"), want: fiber.StatusTeapot},
		{name: "validation", err: Validate.Struct(req{}), want: fiber.StatusBadRequest},
		{name: "not found", err: pkgerrors.Wrap(gorm.ErrRecordNotFound, "find"), want: fiber.StatusNotFound},
		{name: "unique", err: &pgconn.PgError{Code: "23505"}, want: fiber.StatusConflict},
		{name: "foreign key", err: &pq.Error{Code: "23503"}, want: fiber.StatusBadRequest},
		{name: "other", err: errors.New("boom"), want: fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return FromServiceError(c, tt.err) })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tt.want, resp.StatusCode, string(body))
			assert.Contains(t, string(body), `"success":false`)
		})
	}
}
