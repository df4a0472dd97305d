// handlers/admin.go
package handlers

import (
	"card-collection-system/middleware"
	"card-collection-system/services"
	"card-collection-system/utils"

	"github.com/gofiber/fiber/v2"
)

type distributeRequest struct {
	// Empty means every registered user.
	Receivers []string `json:"receivers" validate:"omitempty,dive,email"`
	Quantity  int      `json:"quantity" validate:"required,min=1"`
}

type selfDistributeRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

func SetupAdminRoutes(app *fiber.App, auth fiber.Handler, dist *services.DistributionService, users *services.UserService) {
	admin := app.Group("/", auth, middleware.AdminOnly())

	admin.Post("/distribute", func(c *fiber.Ctx) error {
		var req distributeRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "cause": err.Error()})
		}
		if err := utils.ValidateStruct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		caller := middleware.CurrentUser(c)
		record, err := dist.DistributeRandom(caller, req.Receivers, req.Quantity)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(record)
	})

	admin.Post("/distribute/self", func(c *fiber.Ctx) error {
		var req selfDistributeRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "cause": err.Error()})
		}
		if err := utils.ValidateStruct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		receiver, err := users.GetOrCreate(req.Email, "")
		if err != nil {
			return respondError(c, err)
		}
		own, err := dist.DistributeSelfCard(receiver, req.Quantity)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(own)
	})

	admin.Delete("/admin/users/:email", func(c *fiber.Ctx) error {
		if err := users.Delete(c.Params("email")); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
