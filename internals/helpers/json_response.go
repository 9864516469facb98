package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Envelope is the body of every successful response.
type Envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       any         `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// ErrorResponse is the body of every failed response.
type ErrorResponse struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	ErrorCode string              `json:"error_code,omitempty"`
	Errors    map[string][]string `json:"errors,omitempty"`
}

var errorCodes = map[int]string{
	fiber.StatusBadRequest:            "BAD_REQUEST",
	fiber.StatusUnauthorized:          "UNAUTHORIZED",
	fiber.StatusForbidden:             "FORBIDDEN",
	fiber.StatusNotFound:              "NOT_FOUND",
	fiber.StatusConflict:              "CONFLICT",
	fiber.StatusRequestEntityTooLarge: "PAYLOAD_TOO_LARGE",
	fiber.StatusTooManyRequests:       "TOO_MANY_REQUESTS",
}

func errorCodeFor(status int) string {
	if code, ok := errorCodes[status]; ok {
		return code
	}
	if status >= 500 {
		return "INTERNAL_ERROR"
	}
	return "ERROR"
}

func send(c *fiber.Ctx, status int, message, fallback string, data any, p *Pagination) error {
	if strings.TrimSpace(message) == "" {
		message = fallback
	}
	return c.Status(status).JSON(Envelope{Success: true, Message: message, Data: data, Pagination: p})
}

// JsonError answers with a plain (non validation) failure. A zero status
// is treated as 500.
func JsonError(c *fiber.Ctx, status int, message string) error {
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	if strings.TrimSpace(message) == "" {
		message = fiber.NewError(status).Message
	}
	return c.Status(status).JSON(ErrorResponse{
		Message:   message,
		ErrorCode: errorCodeFor(status),
	})
}

// JsonValidationError answers 400 with messages per field.
func JsonValidationError(c *fiber.Ctx, fieldErrors map[string][]string) error {
	if fieldErrors == nil {
		fieldErrors = map[string][]string{}
	}
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Message:   "validation failed",
		ErrorCode: "VALIDATION_ERROR",
		Errors:    fieldErrors,
	})
}

func JsonList(c *fiber.Ctx, message string, data any, pagination *Pagination) error {
	return send(c, fiber.StatusOK, message, "ok", data, pagination)
}

func JsonOK(c *fiber.Ctx, message string, data any) error {
	return send(c, fiber.StatusOK, message, "ok", data, nil)
}

func JsonCreated(c *fiber.Ctx, message string, data any) error {
	return send(c, fiber.StatusCreated, message, "created", data, nil)
}

func JsonUpdated(c *fiber.Ctx, message string, data any) error {
	return send(c, fiber.StatusOK, message, "updated", data, nil)
}

func JsonDeleted(c *fiber.Ctx, message string, data any) error {
	return send(c, fiber.StatusOK, message, "deleted", data, nil)
}
