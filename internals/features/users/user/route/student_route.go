package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms_backend/internals/features/users/user/controller"
	"lms_backend/internals/helpers/storage"
	authMiddleware "lms_backend/internals/middlewares/auth"
)

// StudentRoutes: student account management, teachers only.
func StudentRoutes(r fiber.Router, db *gorm.DB, blob storage.BlobService) {
	ctl := controller.NewStudentController(db, blob)
	teacher := authMiddleware.TeacherOnly(db)

	r.Post("/register-student", teacher, ctl.Register)
	r.Get("/students", teacher, ctl.List)
	r.Post("/students/:id/reset-password", teacher, ctl.ResetPassword)
	r.Delete("/students/:id", teacher, ctl.Delete)
}
