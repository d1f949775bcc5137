package handlers

import (
	"errors"

	"montra/internal/apperrors"

	"github.com/gofiber/fiber/v2"
)

// statusForError maps service errors to HTTP status codes. Backend error
// text is never forwarded for upstream failures.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, apperrors.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, apperrors.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, apperrors.ErrUpstream):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// errorResponse writes the typed-error body for a failed operation. Storage
// backend details stay in the logs; the client only sees the error kind.
func errorResponse(c *fiber.Ctx, message string, err error) error {
	status := statusForError(err)
	body := fiber.Map{"message": message}
	if status != fiber.StatusBadGateway && status != fiber.StatusInternalServerError {
		body["error"] = err.Error()
	}
	return c.Status(status).JSON(body)
}
