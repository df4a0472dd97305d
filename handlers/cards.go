// handlers/cards.go
package handlers

import (
	"time"

	"card-collection-system/middleware"
	"card-collection-system/services"
	"card-collection-system/utils"

	"github.com/gofiber/fiber/v2"
)

type issueCodeRequest struct {
	CardID uint `json:"card_id" validate:"required"`
}

type transferRequest struct {
	Giver  string `json:"giver" validate:"required,email"`
	CardID uint   `json:"card_id" validate:"required"`
	Code   string `json:"code" validate:"required"`
}

func SetupCardRoutes(app *fiber.App, auth fiber.Handler, catalog *services.CatalogService, transfers *services.TransferService) {
	secured := app.Group("/", auth)

	secured.Get("/cards", func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)
		views, err := catalog.ListCards(user)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(views)
	})

	secured.Get("/users/me", func(c *fiber.Ctx) error {
		return c.JSON(middleware.CurrentUser(c))
	})

	// Giver side: request a single-use code for one of your own cards.
	secured.Post("/cards/transfer/code", func(c *fiber.Ctx) error {
		var req issueCodeRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "cause": err.Error()})
		}
		if err := utils.ValidateStruct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		user := middleware.CurrentUser(c)
		code, validTo, err := transfers.IssueCode(user, req.CardID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"code":     code,
			"valid_to": validTo.Format(time.RFC3339),
		})
	})

	// Receiver side: redeem a code to pull one copy from the giver.
	secured.Post("/cards/transfer", func(c *fiber.Ctx) error {
		var req transferRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "cause": err.Error()})
		}
		if err := utils.ValidateStruct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		receiver := middleware.CurrentUser(c)
		result, err := transfers.ExecuteTransfer(receiver, req.Giver, req.CardID, req.Code)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(result)
	})
}
