package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms_backend/internals/helpers/storage"
	routeDetails "lms_backend/internals/route/details"
)

var startTime time.Time

// SetupRoutes mounts everything under /api. Each route carries its own
// guard, so the group itself stays open for /api/auth/login.
func SetupRoutes(app *fiber.App, db *gorm.DB, blob storage.BlobService) {
	startTime = time.Now()

	BaseRoutes(app, db)

	if local, ok := blob.(*storage.LocalBlobService); ok {
		log.Printf("[INFO] Serving uploads from %s at %s", local.Dir, local.PublicPath)
		app.Static(local.PublicPath, local.Dir, fiber.Static{
			MaxAge: 3600,
		})
	}

	api := app.Group("/api")

	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(api, db)

	log.Println("[INFO] Setting up UserRoutes...")
	routeDetails.UserRoutes(api, db, blob)

	log.Println("[INFO] Mounting School routes...")
	routeDetails.SchoolRoutes(api, db, blob)

	log.Println("[INFO] Mounting Finance routes...")
	routeDetails.FinanceRoutes(api, db)
}
