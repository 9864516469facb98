package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms_backend/internals/features/finance/fees/controller"
	authMiddleware "lms_backend/internals/middlewares/auth"
)

func FeeRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewFeeController(db)
	teacher := authMiddleware.TeacherOnly(db)

	r.Post("/fees/mark", teacher, ctl.Mark)
	r.Get("/fees/:classId/:month/:year", teacher, ctl.ClassSheet)
	r.Get("/fees-history", teacher, ctl.History)

	r.Get("/student/fees", authMiddleware.Authenticated(db), ctl.ForStudent)
}
