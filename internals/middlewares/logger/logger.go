package logger

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"lms_backend/internals/configs"
)

// LoggerMiddleware writes one access line per API request. Health probes
// and static upload downloads are skipped.
func LoggerMiddleware() fiber.Handler {
	return logger.New(logger.Config{
		Next:       skip,
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Format:     "[${time}] ${ip} ${locals:reqid} ${method} ${path} ${status} ${latency} ${bytesSent}B\n",
	})
}

func skip(c *fiber.Ctx) bool {
	p := c.Path()
	return p == "/health" || strings.HasPrefix(p, configs.UploadPublicPath+"/")
}
