package middlewares

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"lms_backend/internals/configs"
	helper "lms_backend/internals/helpers"
)

type rateRule struct {
	max     int
	window  time.Duration
	message string
	key     func(*fiber.Ctx) string
}

func newLimiter(r rateRule) fiber.Handler {
	if r.key == nil {
		r.key = func(c *fiber.Ctx) string { return c.IP() }
	}
	return limiter.New(limiter.Config{
		Max:          r.max,
		Expiration:   r.window,
		KeyGenerator: r.key,
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, r.message)
		},
	})
}

// GlobalRateLimiter caps every client IP at RATE_LIMIT_PER_MINUTE.
func GlobalRateLimiter() fiber.Handler {
	perMinute := configs.RateLimitPerMinute
	if perMinute <= 0 {
		perMinute = 300
	}
	return newLimiter(rateRule{
		max:     perMinute,
		window:  time.Minute,
		message: "Too many requests. Please try again later.",
	})
}

// LoginRateLimiter counts attempts per IP and username, so a classroom
// behind one address does not share a single budget.
func LoginRateLimiter() fiber.Handler {
	return newLimiter(rateRule{
		max:     5,
		window:  time.Minute,
		message: "Too many login attempts. Please wait a moment.",
		key:     loginKey,
	})
}

func CredentialRateLimiter() fiber.Handler {
	return newLimiter(rateRule{
		max:     10,
		window:  10 * time.Minute,
		message: "Too many attempts. Please try again in 10 minutes.",
	})
}

func loginKey(c *fiber.Ctx) string {
	var body struct {
		Username string `json:"username"`
	}
	_ = c.BodyParser(&body)
	return c.IP() + "|" + strings.ToLower(strings.TrimSpace(body.Username))
}
