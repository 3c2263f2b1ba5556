package rest

import (
	"github.com/gofiber/fiber/v2"

	"github.com/postline/postline/config"
	"github.com/postline/postline/pkg/utils"
)

func InitRestHealth(app fiber.Router) {
	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(utils.ResponseData{
			Status:  200,
			Code:    "SUCCESS",
			Message: "ok",
			Results: map[string]string{"version": config.AppVersion},
		})
	})
}
