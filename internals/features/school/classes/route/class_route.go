package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms_backend/internals/features/school/classes/controller"
	"lms_backend/internals/helpers/storage"
	authMiddleware "lms_backend/internals/middlewares/auth"
)

func ClassRoutes(r fiber.Router, db *gorm.DB, blob storage.BlobService) {
	ctl := controller.NewClassController(db, blob)
	teacher := authMiddleware.TeacherOnly(db)
	anyone := authMiddleware.Authenticated(db)

	r.Post("/classes", teacher, ctl.Create)
	r.Get("/classes", anyone, ctl.List)
	r.Get("/classes/:id", anyone, ctl.Get)
	r.Delete("/classes/:id", teacher, ctl.Delete)
	r.Post("/enroll", teacher, ctl.Enroll)

	r.Get("/student/classes", anyone, ctl.StudentClasses)
}
