package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pawcare/vet-scheduler/controllers"
)

// SetupSlotRoutes configures all slot related routes
func SetupSlotRoutes(app *fiber.App) {
	slots := app.Group("/slots")
	slots.Get("/", controllers.GetAvailableSlots)
	slots.Post("/", controllers.CreateSlot)
	slots.Get("/conflicts", controllers.FindConflicts)
}
