package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	assignmentRoute "lms_backend/internals/features/school/assignments/route"
	attendanceRoute "lms_backend/internals/features/school/attendance/route"
	classRoute "lms_backend/internals/features/school/classes/route"
	dashboardRoute "lms_backend/internals/features/school/dashboard/route"
	materialRoute "lms_backend/internals/features/school/materials/route"
	messageRoute "lms_backend/internals/features/school/messages/route"
	resultRoute "lms_backend/internals/features/school/results/route"
	"lms_backend/internals/helpers/storage"
)

func SchoolRoutes(api fiber.Router, db *gorm.DB, blob storage.BlobService) {
	classRoute.ClassRoutes(api, db, blob)
	materialRoute.MaterialRoutes(api, db, blob)
	assignmentRoute.AssignmentRoutes(api, db, blob)
	messageRoute.MessageRoutes(api, db)
	attendanceRoute.AttendanceRoutes(api, db)
	resultRoute.ResultRoutes(api, db)
	dashboardRoute.DashboardRoutes(api, db)
}
