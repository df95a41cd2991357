package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pawcare/vet-scheduler/controllers"
)

// SetupAnalyticsRoutes configures the analytics and status routes
func SetupAnalyticsRoutes(app *fiber.App) {
	app.Get("/analytics", controllers.GetAnalytics)
	app.Get("/api/status", controllers.GetStatus)
}
