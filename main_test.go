package main

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms_backend/internals/configs"
	middlewares "lms_backend/internals/middlewares"
)

func withTrustedProxies(t *testing.T, proxies []string) {
	t.Helper()
	prev := configs.TrustedProxies
	configs.TrustedProxies = proxies
	t.Cleanup(func() { configs.TrustedProxies = prev })
}

func TestServerConfig_IgnoresForwardedForByDefault(t *testing.T) {
	withTrustedProxies(t, nil)

	cfg := serverConfig()
	assert.Empty(t, cfg.ProxyHeader)
	assert.False(t, cfg.EnableTrustedProxyCheck)

	app := fiber.New(cfg)
	app.Post("/api/auth/login", middlewares.LoginRateLimiter(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	post := func(i int) int {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"amina"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		req.Header.Set(fiber.HeaderXForwardedFor, "203.0.113."+strconv.Itoa(i))
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}
	for i := 1; i <= 5; i++ {
		assert.Equal(t, http.StatusNoContent, post(i))
	}
	assert.Equal(t, http.StatusTooManyRequests, post(6), "a new forwarded address must not reset the limit")
}

func TestServerConfig_TrustedProxies(t *testing.T) {
	withTrustedProxies(t, []string{"10.0.0.0/8", "172.16.0.1"})

	cfg := serverConfig()
	assert.Equal(t, fiber.HeaderXForwardedFor, cfg.ProxyHeader)
	assert.True(t, cfg.EnableTrustedProxyCheck)
	assert.Equal(t, []string{"10.0.0.0/8", "172.16.0.1"}, cfg.TrustedProxies)
}
