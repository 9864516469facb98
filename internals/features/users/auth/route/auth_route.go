package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "lms_backend/internals/features/users/auth/controller"
	rateLimiter "lms_backend/internals/middlewares"
	authMiddleware "lms_backend/internals/middlewares/auth"
)

// AuthRoutes mounts login and account self-service under /api.
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewAuthController(db)

	api.Post("/auth/login", rateLimiter.LoginRateLimiter(), ctl.Login)

	self := authMiddleware.Authenticated(db)
	api.Get("/me", self, ctl.Me)
	api.Post("/change-password", rateLimiter.CredentialRateLimiter(), self, ctl.ChangePassword)
	api.Post("/change-username", rateLimiter.CredentialRateLimiter(), self, ctl.ChangeUsername)
}
