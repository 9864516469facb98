package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms_backend/internals/features/school/results/controller"
	authMiddleware "lms_backend/internals/middlewares/auth"
)

func ResultRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewResultController(db)
	teacher := authMiddleware.TeacherOnly(db)

	r.Post("/results/upload", teacher, ctl.Upload)
	r.Get("/results/history", teacher, ctl.History)
	r.Get("/results/class/:classId", teacher, ctl.ByClass)
	r.Put("/results/:id", teacher, ctl.Update)

	r.Get("/student/results", authMiddleware.Authenticated(db), ctl.ForStudent)
}
