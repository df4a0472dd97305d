// handlers/quiz.go
package handlers

import (
	"card-collection-system/middleware"
	"card-collection-system/services"
	"card-collection-system/utils"

	"github.com/gofiber/fiber/v2"
)

type questionRequest struct {
	QuestionType string `json:"question_type" validate:"required"`
	AnswerType   string `json:"answer_type" validate:"required"`
	OptionCount  int    `json:"option_count" validate:"required,min=2"`
}

type answerRequest struct {
	QuizID string `json:"quiz_id" validate:"required,uuid4"`
	Answer string `json:"answer" validate:"required"`
}

func SetupQuizRoutes(app *fiber.App, auth fiber.Handler, quiz *services.QuizService) {
	secured := app.Group("/", auth)

	secured.Post("/quiz/question", func(c *fiber.Ctx) error {
		var req questionRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "cause": err.Error()})
		}
		if err := utils.ValidateStruct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		user := middleware.CurrentUser(c)
		payload, err := quiz.GenerateQuestion(user,
			services.AttributeType(req.QuestionType),
			services.AttributeType(req.AnswerType),
			req.OptionCount)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(payload)
	})

	secured.Post("/quiz/answer", func(c *fiber.Ctx) error {
		var req answerRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "cause": err.Error()})
		}
		if err := utils.ValidateStruct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		result, err := quiz.SubmitAnswer(req.QuizID, req.Answer)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(result)
	})
}
