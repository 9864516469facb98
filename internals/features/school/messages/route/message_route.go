package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms_backend/internals/features/school/messages/controller"
	authMiddleware "lms_backend/internals/middlewares/auth"
)

func MessageRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewMessageController(db)
	anyone := authMiddleware.Authenticated(db)

	r.Get("/classes/:classId/messages", anyone, ctl.ListByClass)
	r.Post("/messages", anyone, ctl.Post)
}
