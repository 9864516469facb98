package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginRateLimiter_PerUsername(t *testing.T) {
	app := fiber.New()
	app.Post("/login", LoginRateLimiter(), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	post := func(username string) int {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"`+username+`"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusNoContent, post("amina"))
	}
	assert.Equal(t, http.StatusTooManyRequests, post("amina"))
	assert.Equal(t, http.StatusTooManyRequests, post(" AMINA "), "username is normalised")
	assert.Equal(t, http.StatusNoContent, post("brian"))
}
