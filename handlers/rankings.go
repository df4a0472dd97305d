// handlers/rankings.go
package handlers

import (
	"card-collection-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupRankingRoutes(app *fiber.App, auth fiber.Handler, rankings *services.RankingService) {
	secured := app.Group("/", auth)

	secured.Get("/overview", func(c *fiber.Ctx) error {
		payload, err := rankings.Overview()
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(payload)
	})
}
