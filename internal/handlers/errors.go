// Package handlers contains the Fiber handlers for the knowledge bank and
// content APIs. All responses are JSON; errors carry a single "detail"
// field describing what went wrong.
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/openjuris/lexbank/internal/store"
)

// detail writes an error response with the given status.
func detail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"detail": msg})
}

// storeError translates store failures into API responses: conflicts map
// to 409, broken references and amendment cycles to 422, vanished rows
// to 404, anything else to 500 with a generic message.
func storeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return detail(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, store.ErrConflict):
		return detail(c, fiber.StatusConflict, "resource with the same unique value already exists")
	case errors.Is(err, store.ErrForeignKey):
		return detail(c, fiber.StatusUnprocessableEntity, "referenced resource does not exist")
	case errors.Is(err, store.ErrAmendmentCycle):
		return detail(c, fiber.StatusUnprocessableEntity, "parent reference would create an amendment cycle")
	default:
		return detail(c, fiber.StatusInternalServerError, "internal server error")
	}
}

// notFound is the uniform 404 body.
func notFound(c *fiber.Ctx, what string) error {
	return detail(c, fiber.StatusNotFound, what+" not found")
}

// ErrorHandler renders errors surfaced by the router itself, such as 405
// for a known path with an unsupported method, in the same JSON shape as
// handler errors.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "internal server error"
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		msg = e.Message
	}
	return detail(c, code, msg)
}
