package middlewares

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	helper "lms_backend/internals/helpers"
	"lms_backend/internals/middlewares/logger"
)

func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(RequestContext())
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}

// ErrorHandler renders errors that escape handlers in the JSON envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	log.Printf("[ERROR] unhandled %s %s: %v", c.Method(), c.OriginalURL(), err)
	return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
}
