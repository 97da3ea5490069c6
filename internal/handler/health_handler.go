package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thealbion75/sport-community-api/internal/config"
	"github.com/thealbion75/sport-community-api/internal/utils"
)

// HealthCheck reports service liveness.
func HealthCheck(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return utils.OK(c, fiber.Map{
			"app": cfg.AppName,
			"env": cfg.AppEnv,
		}, "ok", nil)
	}
}
