package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pawcare/vet-scheduler/controllers"
)

// SetupScheduleRoutes configures all scheduling related routes
func SetupScheduleRoutes(app *fiber.App) {
	schedule := app.Group("/schedule")
	schedule.Post("/", controllers.ScheduleAppointment)
	schedule.Post("/batch", controllers.ScheduleBatch)
	schedule.Post("/recommendations", controllers.GetRecommendations)
	schedule.Get("/bookings/:id", controllers.GetBooking)
	schedule.Post("/bookings/:id/reschedule", controllers.RescheduleBooking)
	schedule.Delete("/bookings/:id", controllers.CancelBooking)
}
