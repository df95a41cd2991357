package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pawcare/vet-scheduler/scheduler"
	"github.com/pawcare/vet-scheduler/utils"
)

// GetAvailableSlots godoc
// @Summary List available slots
// @Description List bookable slots, optionally filtered by doctor and time window
// @Tags slots
// @Produce json
// @Param doctor_id query int false "Doctor ID"
// @Param from query string false "Window start (RFC3339 or 2006-01-02)"
// @Param to query string false "Window end (RFC3339 or 2006-01-02)"
// @Success 200 {array} models.AvailabilitySlot
// @Failure 400 {object} utils.ErrorResponse
// @Router /slots [get]
func GetAvailableSlots(c *fiber.Ctx) error {
	filter := scheduler.SlotFilter{
		DoctorID: uint(c.QueryInt("doctor_id", 0)),
	}
	if from := c.Query("from"); from != "" {
		t, err := utils.ParseTimestamp(from)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid from parameter",
				Error:   err.Error(),
			})
		}
		filter.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := utils.ParseTimestamp(to)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid to parameter",
				Error:   err.Error(),
			})
		}
		filter.To = t
	}

	slots, err := Store.AvailableSlots(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch slots",
			Error:   err.Error(),
		})
	}
	return c.JSON(slots)
}

// CreateSlot godoc
// @Summary Create an availability slot
// @Tags slots
// @Accept json
// @Produce json
// @Param slot body object true "Slot"
// @Success 201 {object} models.AvailabilitySlot
// @Failure 400 {object} utils.ErrorResponse
// @Router /slots [post]
func CreateSlot(c *fiber.Ctx) error {
	var body struct {
		DoctorID        uint      `json:"doctor_id"`
		StartTime       time.Time `json:"start_time"`
		DurationMinutes int       `json:"duration_minutes"`
		SlotType        string    `json:"slot_type"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	slot, err := Store.AddSlot(body.DoctorID, body.StartTime, body.DurationMinutes, body.SlotType)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to create slot",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(slot)
}

// FindConflicts godoc
// @Summary Find booking conflicts
// @Description List active bookings overlapping a proposed interval for a doctor
// @Tags slots
// @Produce json
// @Param doctor_id query int true "Doctor ID"
// @Param start query string true "Proposed start (RFC3339)"
// @Param duration query int false "Duration in minutes"
// @Success 200 {array} scheduler.Conflict
// @Failure 400 {object} utils.ErrorResponse
// @Router /slots/conflicts [get]
func FindConflicts(c *fiber.Ctx) error {
	doctorID := uint(c.QueryInt("doctor_id", 0))
	start, err := utils.ParseTimestamp(c.Query("start"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid start parameter",
			Error:   err.Error(),
		})
	}
	duration := c.QueryInt("duration", 30)

	conflicts, err := Store.FindConflicts(doctorID, start, duration)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to find conflicts",
			Error:   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"has_conflicts": len(conflicts) > 0,
		"conflicts":     conflicts,
	})
}
