package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pawcare/vet-scheduler/scheduler"
	"github.com/pawcare/vet-scheduler/utils"
)

// GetDoctors godoc
// @Summary List doctors
// @Tags doctors
// @Produce json
// @Success 200 {array} models.Doctor
// @Failure 500 {object} utils.ErrorResponse
// @Router /doctors [get]
func GetDoctors(c *fiber.Ctx) error {
	doctors, err := Store.Doctors()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch doctors",
			Error:   err.Error(),
		})
	}
	return c.JSON(doctors)
}

// GetDoctorSchedule godoc
// @Summary Get a doctor's schedule for a day
// @Tags doctors
// @Produce json
// @Param id path int true "Doctor ID"
// @Param date query string false "Date (2006-01-02), defaults to today"
// @Success 200 {array} scheduler.ScheduleEntry
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /doctors/{id}/schedule [get]
func GetDoctorSchedule(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid doctor ID",
			Error:   err.Error(),
		})
	}

	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		date, err = utils.ParseDate(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid date parameter",
				Error:   err.Error(),
			})
		}
	}

	entries, err := Store.DoctorSchedule(uint(id), date)
	if errors.Is(err, scheduler.ErrDoctorNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
			Error:   err.Error(),
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch schedule",
			Error:   err.Error(),
		})
	}
	return c.JSON(entries)
}

// GetDoctorAvailability godoc
// @Summary Get a doctor's availability summary
// @Tags doctors
// @Produce json
// @Param id path int true "Doctor ID"
// @Param days query int false "Days ahead" default(7)
// @Success 200 {object} scheduler.AvailabilitySummary
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /doctors/{id}/availability [get]
func GetDoctorAvailability(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid doctor ID",
			Error:   err.Error(),
		})
	}
	days := c.QueryInt("days", 7)

	summary, err := Store.AvailabilitySummary(uint(id), days)
	if errors.Is(err, scheduler.ErrDoctorNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
			Error:   err.Error(),
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch availability",
			Error:   err.Error(),
		})
	}
	return c.JSON(summary)
}
