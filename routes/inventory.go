package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pawcare/vet-scheduler/controllers"
)

// SetupInventoryRoutes configures all inventory related routes
func SetupInventoryRoutes(app *fiber.App) {
	inv := app.Group("/inventory")
	inv.Get("/medicines", controllers.SearchMedicines)
	inv.Post("/medicines", controllers.AddMedicine)
	inv.Get("/medicines/:id", controllers.GetMedicine)
	inv.Patch("/medicines/:id", controllers.UpdateMedicine)
	inv.Post("/transactions", controllers.RecordTransaction)
	inv.Get("/low-stock", controllers.GetLowStock)
	inv.Get("/expiring", controllers.GetExpiring)
	inv.Get("/report", controllers.GetInventoryReport)
}
