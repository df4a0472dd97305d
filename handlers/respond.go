package handlers

import (
	"errors"

	"card-collection-system/services"

	"github.com/gofiber/fiber/v2"
)

// respondError maps the service error taxonomy onto HTTP statuses. Anything
// untyped is a persistence-layer failure and surfaces as 500.
func respondError(c *fiber.Ctx, err error) error {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		return c.Status(statusForKind(svcErr.Kind)).JSON(fiber.Map{
			"error": svcErr.Message,
			"kind":  svcErr.Kind,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal error",
		"cause": err.Error(),
	})
}

func statusForKind(kind services.ErrorKind) int {
	switch kind {
	case services.KindNotFound:
		return fiber.StatusNotFound
	case services.KindInvalidCode:
		return fiber.StatusUnauthorized
	case services.KindExpired:
		return fiber.StatusGone
	case services.KindSelfTransfer, services.KindIllegalQuestionPair, services.KindValidation:
		return fiber.StatusBadRequest
	case services.KindAlreadyAnswered:
		return fiber.StatusConflict
	case services.KindForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}
