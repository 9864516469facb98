package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms_backend/internals/features/school/materials/controller"
	"lms_backend/internals/helpers/storage"
	authMiddleware "lms_backend/internals/middlewares/auth"
)

func MaterialRoutes(r fiber.Router, db *gorm.DB, blob storage.BlobService) {
	ctl := controller.NewMaterialController(db, blob)

	r.Post("/material", authMiddleware.TeacherOnly(db), ctl.Create)
	r.Get("/classes/:classId/materials", authMiddleware.Authenticated(db), ctl.ListByClass)
}
