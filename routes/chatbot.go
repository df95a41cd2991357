package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pawcare/vet-scheduler/controllers"
)

// SetupChatbotRoutes configures all chatbot related routes
func SetupChatbotRoutes(app *fiber.App) {
	chat := app.Group("/chatbot")
	chat.Post("/", controllers.Chat)
	chat.Get("/suggestions", controllers.GetSuggestions)
}
