package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms_backend/internals/features/school/attendance/controller"
	authMiddleware "lms_backend/internals/middlewares/auth"
)

func AttendanceRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewAttendanceController(db)
	teacher := authMiddleware.TeacherOnly(db)

	r.Post("/attendance/mark", teacher, ctl.MarkClass)
	r.Post("/attendance/mark-global", teacher, ctl.MarkGlobal)
	r.Get("/attendance/:classId/:date", teacher, ctl.ClassSheet)
	r.Get("/attendance-global/:date", teacher, ctl.GlobalSheet)
	r.Get("/attendance-history", teacher, ctl.History)

	r.Get("/student/attendance", authMiddleware.Authenticated(db), ctl.ForStudent)
}
