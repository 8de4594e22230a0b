package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/openjuris/lexbank/internal/service"
)

// StatsHandler reports row counts across the content tables.
func StatsHandler(stats *service.StatsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := stats.Collect(c.UserContext())
		if err != nil {
			return storeError(c, err)
		}
		return c.JSON(s)
	}
}

// HealthHandler is the liveness probe.
func HealthHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
