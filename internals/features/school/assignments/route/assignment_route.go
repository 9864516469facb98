package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms_backend/internals/features/school/assignments/controller"
	"lms_backend/internals/helpers/storage"
	authMiddleware "lms_backend/internals/middlewares/auth"
)

func AssignmentRoutes(r fiber.Router, db *gorm.DB, blob storage.BlobService) {
	ctl := controller.NewAssignmentController(db, blob)
	teacher := authMiddleware.TeacherOnly(db)
	anyone := authMiddleware.Authenticated(db)

	r.Post("/assignments", teacher, ctl.Create)
	r.Get("/classes/:classId/assignments", anyone, ctl.ListByClass)
	r.Post("/submit-assignment", anyone, ctl.Submit)
	r.Put("/submissions/:id/grade", teacher, ctl.Grade)

	r.Get("/student/assignments", anyone, ctl.StudentAssignments)
}
