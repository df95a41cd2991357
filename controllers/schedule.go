package controllers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pawcare/vet-scheduler/models"
	"github.com/pawcare/vet-scheduler/redis"
	"github.com/pawcare/vet-scheduler/scheduler"
	"github.com/pawcare/vet-scheduler/utils"
)

// scheduleRequest is the inbound payload for scheduling endpoints.
type scheduleRequest struct {
	models.SchedulingRequest
	Preferences *models.Preferences `json:"preferences,omitempty"`
}

// ScheduleAppointment godoc
// @Summary Schedule an appointment
// @Description Rank available slots and book the best one for the request
// @Tags scheduling
// @Accept json
// @Produce json
// @Param request body scheduleRequest true "Scheduling request"
// @Success 201 {object} scheduler.BookingResult
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} scheduler.BookingResult
// @Router /schedule [post]
func ScheduleAppointment(c *fiber.Ctx) error {
	var req scheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	result := Sched.Schedule(req.SchedulingRequest, req.Preferences)
	if !result.Success {
		return c.Status(scheduleFailureStatus(result.Message)).JSON(result)
	}

	if result.Booking.ContactEmail != "" {
		go sendConfirmationEmail(result)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// GetRecommendations godoc
// @Summary Get slot recommendations
// @Description Rank available slots for a request without booking
// @Tags scheduling
// @Accept json
// @Produce json
// @Param request body models.SchedulingRequest true "Scheduling request"
// @Success 200 {array} scheduler.Candidate
// @Failure 400 {object} utils.ErrorResponse
// @Router /schedule/recommendations [post]
func GetRecommendations(c *fiber.Ctx) error {
	var req models.SchedulingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	count := c.QueryInt("count", 5)

	cacheKey := recommendationCacheKey(req, count)
	if redis.Client != nil {
		if cached, err := redis.Client.Get(redis.Ctx, cacheKey).Result(); err == nil {
			var candidates []scheduler.Candidate
			if json.Unmarshal([]byte(cached), &candidates) == nil {
				return c.JSON(candidates)
			}
		}
	}

	candidates, err := Sched.GetRecommendations(req, count)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to get recommendations",
			Error:   err.Error(),
		})
	}

	if redis.Client != nil {
		if payload, err := json.Marshal(candidates); err == nil {
			redis.Client.Set(redis.Ctx, cacheKey, payload, 30*time.Second)
		}
	}
	return c.JSON(candidates)
}

// RescheduleBooking godoc
// @Summary Reschedule a booking
// @Description Move an existing booking to the best newly ranked slot
// @Tags scheduling
// @Accept json
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} scheduler.BookingResult
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} scheduler.BookingResult
// @Router /schedule/bookings/{id}/reschedule [post]
func RescheduleBooking(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid booking ID",
			Error:   err.Error(),
		})
	}

	var body struct {
		Preferences *models.Preferences `json:"preferences,omitempty"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Failed to parse request body",
				Error:   err.Error(),
			})
		}
	}

	result := Sched.Reschedule(uint(id), body.Preferences)
	if !result.Success {
		return c.Status(scheduleFailureStatus(result.Message)).JSON(result)
	}
	return c.JSON(result)
}

// CancelBooking godoc
// @Summary Cancel a booking
// @Description Cancel an active booking and free its slot
// @Tags scheduling
// @Accept json
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Router /schedule/bookings/{id} [delete]
func CancelBooking(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid booking ID",
			Error:   err.Error(),
		})
	}

	// Unknown and already-cancelled ids both report cancelled: false.
	cancelled, err := Store.Cancel(uint(id))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to cancel booking",
			Error:   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"cancelled": cancelled})
}

// GetBooking godoc
// @Summary Get a booking by ID
// @Tags scheduling
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} models.Booking
// @Failure 404 {object} utils.ErrorResponse
// @Router /schedule/bookings/{id} [get]
func GetBooking(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid booking ID",
			Error:   err.Error(),
		})
	}

	booking, err := Store.GetBooking(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Booking not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(booking)
}

// ScheduleBatch godoc
// @Summary Schedule a batch of requests
// @Description Process a queue of scheduling requests sequentially
// @Tags scheduling
// @Accept json
// @Produce json
// @Param requests body []models.SchedulingRequest true "Scheduling requests"
// @Success 200 {array} scheduler.BatchResult
// @Failure 400 {object} utils.ErrorResponse
// @Router /schedule/batch [post]
func ScheduleBatch(c *fiber.Ctx) error {
	var queue []models.SchedulingRequest
	if err := c.BodyParser(&queue); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	return c.JSON(Sched.ScheduleBatch(queue))
}

// scheduleFailureStatus maps scheduler failure messages to HTTP statuses.
func scheduleFailureStatus(message string) int {
	switch message {
	case scheduler.ErrNoSlotsAvailable.Error():
		return fiber.StatusConflict
	case scheduler.ErrBookingNotFound.Error():
		return fiber.StatusNotFound
	case scheduler.ErrModelNotLoaded.Error():
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusBadRequest
	}
}

func recommendationCacheKey(req models.SchedulingRequest, count int) string {
	return fmt.Sprintf("recommendations:%s:%s:%s:%s:%d:%d",
		req.PetType, req.AppointmentType, req.Urgency, req.PetName, req.DurationMinutes, count)
}

func sendConfirmationEmail(result scheduler.BookingResult) {
	subject := fmt.Sprintf("Appointment Confirmed for %s", result.Booking.PetName)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment for %s has been confirmed.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Appointment Type:</strong> %s</li>
			<li><strong>Start Time:</strong> %s</li>
			<li><strong>Duration:</strong> %d minutes</li>
		</ul>
		<p>Best regards,</p>
		<p>PawCare Veterinary Clinic</p>
	`, result.Booking.PatientName, result.Booking.PetName, result.Booking.AppointmentType,
		result.Slot.StartTime.Format("2006-01-02 15:04:05"), result.Slot.DurationMinutes)

	if err := utils.SendEmail(result.Booking.ContactEmail, subject, body); err != nil {
		fmt.Printf("Failed to send confirmation email for booking %d: %v\n", result.Booking.ID, err)
	}
}
