package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"applicantpool/internal/http/middleware"
	"applicantpool/internal/service"
)

// ErrorPayload defines the standardized error response body.
type ErrorPayload struct {
	RequestID string        `json:"request_id"`
	Error     ErrorEnvelope `json:"error"`
}

// ErrorEnvelope carries a machine-readable code and a safe message.
type ErrorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := ErrorPayload{
		RequestID: requestIDFromCtx(c),
		Error: ErrorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError maps service errors to client or server errors. Validation messages
// are passed through since they only describe the caller's input.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrUnsupportedFileType):
		return writeError(c, fiber.StatusBadRequest, "INVALID_FILE_TYPE", "invalid file type: accepted formats are .xlsx, .xlsm, .xls and .csv")
	case errors.Is(err, service.ErrMissingColumns):
		return writeError(c, fiber.StatusBadRequest, "MISSING_COLUMNS", err.Error())
	case errors.Is(err, service.ErrUnreadableFile):
		return writeError(c, fiber.StatusBadRequest, "UNREADABLE_FILE", service.ErrUnreadableFile.Error())
	case errors.Is(err, service.ErrInvalidDate):
		return writeError(c, fiber.StatusBadRequest, "INVALID_DATE", err.Error())
	case errors.Is(err, service.ErrPositionRequired):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, service.ErrNoResults):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	}

	c.Locals(middleware.ErrorLocalKey, err)
	span := trace.SpanFromContext(c.UserContext())
	span.RecordError(err)
	span.SetStatus(codes.Error, "internal error")
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "FILE_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
