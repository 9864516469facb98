package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userRoute "lms_backend/internals/features/users/user/route"
	"lms_backend/internals/helpers/storage"
)

func UserRoutes(api fiber.Router, db *gorm.DB, blob storage.BlobService) {
	userRoute.StudentRoutes(api, db, blob)
}
