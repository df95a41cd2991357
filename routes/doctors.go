package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pawcare/vet-scheduler/controllers"
)

// SetupDoctorRoutes configures all doctor related routes
func SetupDoctorRoutes(app *fiber.App) {
	doctors := app.Group("/doctors")
	doctors.Get("/", controllers.GetDoctors)
	doctors.Get("/:id/schedule", controllers.GetDoctorSchedule)
	doctors.Get("/:id/availability", controllers.GetDoctorAvailability)
}
