package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/pawcare/vet-scheduler/redis"
	"github.com/pawcare/vet-scheduler/utils"
)

// Chat godoc
// @Summary Ask the FAQ chatbot
// @Tags chatbot
// @Accept json
// @Produce json
// @Param request body object true "Chat message"
// @Success 200 {object} chatbot.Answer
// @Failure 400 {object} utils.ErrorResponse
// @Router /chatbot [post]
func Chat(c *fiber.Ctx) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if body.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Message is required",
		})
	}

	answer := FAQ.Respond(body.Message)

	// Intent counters feed the analytics endpoint.
	if redis.Client != nil {
		if err := redis.Client.Incr(redis.Ctx, "chatbot:intents:"+answer.Category).Err(); err != nil {
			log.Printf("Failed to record chatbot intent: %v", err)
		}
	}
	return c.JSON(answer)
}

// GetSuggestions godoc
// @Summary Get suggested questions for a category
// @Tags chatbot
// @Produce json
// @Param category query string false "Category name"
// @Success 200 {object} map[string][]string
// @Router /chatbot/suggestions [get]
func GetSuggestions(c *fiber.Ctx) error {
	category := c.Query("category")
	return c.JSON(fiber.Map{
		"suggestions": FAQ.SuggestedQuestions(category),
	})
}
