package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms_backend/internals/features/school/dashboard/controller"
	authMiddleware "lms_backend/internals/middlewares/auth"
)

func DashboardRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewDashboardController(db)
	teacher := authMiddleware.TeacherOnly(db)

	r.Get("/teacher/stats", teacher, ctl.Stats)
	r.Get("/diagnose-enrollments", teacher, ctl.Diagnose)
}
