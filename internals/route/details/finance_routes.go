package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	feeRoute "lms_backend/internals/features/finance/fees/route"
)

func FinanceRoutes(api fiber.Router, db *gorm.DB) {
	feeRoute.FeeRoutes(api, db)
}
