package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"carcatalog/internal/http/middleware"
	"carcatalog/internal/model"
	"carcatalog/internal/service"
)

// errorPayload is the body of operational and framework-level errors.
// Catalog routes answer with a failed model.ResponseData instead.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: middleware.RequestIDFrom(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	})
}

// writeFail writes a failed envelope so clients can decode every catalog response the same way.
func writeFail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(model.Fail[any](message))
}

// failFromError maps a service error onto a status and a safe message.
// Internal errors are reported with fallback instead of their own text.
func failFromError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return writeFail(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrValidation):
		return writeFail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNoStorage):
		return writeFail(c, fiber.StatusServiceUnavailable, err.Error())
	default:
		return writeFail(c, fiber.StatusInternalServerError, fallback)
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		case fiber.StatusUnsupportedMediaType:
			return writeError(c, status, "UNSUPPORTED_MEDIA_TYPE", "unsupported media type")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
