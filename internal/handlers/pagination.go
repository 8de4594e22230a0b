package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// listEnvelope is the paged collection response shape shared by every
// list endpoint.
type listEnvelope struct {
	Items any `json:"items"`
	Total int `json:"total"`
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// pageParams holds validated pagination query parameters.
type pageParams struct {
	Skip  int
	Limit int
}

// parsePage validates skip and limit. Skip defaults to 0 and must be
// non-negative; limit defaults to 10, must be positive, and is capped at
// 100. The boolean reports whether a response was already written.
func parsePage(c *fiber.Ctx) (pageParams, bool) {
	p := pageParams{Skip: 0, Limit: defaultLimit}

	if raw := c.Query("skip"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			_ = detail(c, fiber.StatusUnprocessableEntity, "skip must be a non-negative integer")
			return p, false
		}
		p.Skip = n
	}

	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			_ = detail(c, fiber.StatusUnprocessableEntity, "limit must be a positive integer")
			return p, false
		}
		p.Limit = n
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}

	return p, true
}

// parseID validates the :id path parameter. A malformed id cannot name
// any record, so it reads as not found.
func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		_ = detail(c, fiber.StatusNotFound, "not found")
		return 0, false
	}
	return id, true
}

// parseBody decodes the request body into dst. An empty body is allowed
// and leaves dst zero, so a PATCH without a body is a no-op.
func parseBody(c *fiber.Ctx, dst any) bool {
	if len(c.Body()) == 0 {
		return true
	}
	if err := c.BodyParser(dst); err != nil {
		_ = detail(c, fiber.StatusUnprocessableEntity, "malformed request body")
		return false
	}
	return true
}
