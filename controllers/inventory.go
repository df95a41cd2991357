package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/pawcare/vet-scheduler/inventory"
	"github.com/pawcare/vet-scheduler/models"
	"github.com/pawcare/vet-scheduler/utils"
)

// AddMedicine godoc
// @Summary Add a medicine to the inventory
// @Tags inventory
// @Accept json
// @Produce json
// @Param medicine body models.Medicine true "Medicine"
// @Success 201 {object} models.Medicine
// @Failure 400 {object} utils.ErrorResponse
// @Router /inventory/medicines [post]
func AddMedicine(c *fiber.Ctx) error {
	var medicine models.Medicine
	if err := c.BodyParser(&medicine); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	created, err := Tracker.AddMedicine(medicine)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to add medicine",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetMedicine godoc
// @Summary Get a medicine by ID
// @Tags inventory
// @Produce json
// @Param id path int true "Medicine ID"
// @Success 200 {object} models.Medicine
// @Failure 404 {object} utils.ErrorResponse
// @Router /inventory/medicines/{id} [get]
func GetMedicine(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid medicine ID",
			Error:   err.Error(),
		})
	}

	medicine, err := Tracker.GetMedicine(uint(id))
	if errors.Is(err, inventory.ErrMedicineNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Medicine not found",
			Error:   err.Error(),
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch medicine",
			Error:   err.Error(),
		})
	}
	return c.JSON(medicine)
}

// UpdateMedicine godoc
// @Summary Update a medicine
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path int true "Medicine ID"
// @Param updates body object true "Fields to update"
// @Success 200 {object} models.Medicine
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /inventory/medicines/{id} [patch]
func UpdateMedicine(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid medicine ID",
			Error:   err.Error(),
		})
	}

	var updates map[string]interface{}
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if err := Tracker.UpdateMedicine(uint(id), updates); err != nil {
		if errors.Is(err, inventory.ErrMedicineNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
				Message: "Medicine not found",
				Error:   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update medicine",
			Error:   err.Error(),
		})
	}

	medicine, err := Tracker.GetMedicine(uint(id))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch medicine",
			Error:   err.Error(),
		})
	}
	return c.JSON(medicine)
}

// SearchMedicines godoc
// @Summary Search medicines
// @Tags inventory
// @Produce json
// @Param q query string false "Name query"
// @Param category query string false "Category filter"
// @Success 200 {array} models.Medicine
// @Failure 500 {object} utils.ErrorResponse
// @Router /inventory/medicines [get]
func SearchMedicines(c *fiber.Ctx) error {
	medicines, err := Tracker.SearchMedicines(c.Query("q"), c.Query("category"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to search medicines",
			Error:   err.Error(),
		})
	}
	return c.JSON(medicines)
}

// RecordTransaction godoc
// @Summary Record a stock transaction
// @Description Record a purchase, sale or adjustment against a medicine
// @Tags inventory
// @Accept json
// @Produce json
// @Param transaction body models.StockTransaction true "Transaction"
// @Success 201 {object} models.StockTransaction
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /inventory/transactions [post]
func RecordTransaction(c *fiber.Ctx) error {
	var txn models.StockTransaction
	if err := c.BodyParser(&txn); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	created, err := Tracker.RecordTransaction(txn)
	if errors.Is(err, inventory.ErrMedicineNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Medicine not found",
			Error:   err.Error(),
		})
	}
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to record transaction",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetLowStock godoc
// @Summary List medicines at or below their minimum stock level
// @Tags inventory
// @Produce json
// @Success 200 {array} models.Medicine
// @Failure 500 {object} utils.ErrorResponse
// @Router /inventory/low-stock [get]
func GetLowStock(c *fiber.Ctx) error {
	medicines, err := Tracker.LowStock()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch low stock medicines",
			Error:   err.Error(),
		})
	}
	return c.JSON(medicines)
}

// GetExpiring godoc
// @Summary List medicines expiring within a window
// @Tags inventory
// @Produce json
// @Param days query int false "Days ahead" default(30)
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponse
// @Router /inventory/expiring [get]
func GetExpiring(c *fiber.Ctx) error {
	days := c.QueryInt("days", 30)

	expiring, err := Tracker.ExpiringWithin(days)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch expiring medicines",
			Error:   err.Error(),
		})
	}
	expired, err := Tracker.Expired()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch expired medicines",
			Error:   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"expiring_soon": expiring,
		"expired":       expired,
	})
}

// GetInventoryReport godoc
// @Summary Get the inventory report
// @Description Stock summary with low-stock, expiry and seller analytics
// @Tags inventory
// @Produce json
// @Param days query int false "Seller report window in days" default(30)
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponse
// @Router /inventory/report [get]
func GetInventoryReport(c *fiber.Ctx) error {
	days := c.QueryInt("days", 30)

	summary, err := Tracker.Summary()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to build inventory report",
			Error:   err.Error(),
		})
	}
	top, low, err := Tracker.SellerReport(days, 5)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to build seller report",
			Error:   err.Error(),
		})
	}
	reorders, err := Tracker.ReorderRecommendations()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to build reorder recommendations",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"stock":                   summary,
		"top_sellers":             top,
		"low_sellers":             low,
		"reorder_recommendations": reorders,
	})
}
