package routes

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type healthReport struct {
	Status        string `json:"status"`
	Database      string `json:"database"`
	ServerTime    string `json:"server_time"`
	UptimeSeconds int    `json:"uptime_seconds"`
	Environment   string `json:"environment,omitempty"`
}

func BaseRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("LMS backend is running")
	})
	app.Get("/health", health(db))
}

// health pings the pool; an unreachable database answers 503.
func health(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		report := healthReport{
			Status:        "OK",
			Database:      "Connected",
			ServerTime:    time.Now().UTC().Format(time.RFC3339),
			UptimeSeconds: int(time.Since(startTime).Seconds()),
			Environment:   os.Getenv("RAILWAY_ENVIRONMENT"),
		}
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.UserContext())
		}
		if err != nil {
			report.Status, report.Database = "DOWN", "Database connection error"
			return c.Status(fiber.StatusServiceUnavailable).JSON(report)
		}
		return c.JSON(report)
	}
}
