package controllers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pawcare/vet-scheduler/db"
	"github.com/pawcare/vet-scheduler/models"
	"github.com/pawcare/vet-scheduler/redis"
	"github.com/pawcare/vet-scheduler/scheduler"
	"github.com/pawcare/vet-scheduler/utils"
)

type countRow struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// GetAnalytics godoc
// @Summary System analytics
// @Description Booking totals, distributions, model feature importance and chatbot intents
// @Tags analytics
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponse
// @Router /analytics [get]
func GetAnalytics(c *fiber.Ctx) error {
	var total, active, cancelled int64
	if err := db.DB.Model(&models.Booking{}).Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to build analytics",
			Error:   err.Error(),
		})
	}
	db.DB.Model(&models.Booking{}).
		Where("status IN (?, ?)", models.StatusConfirmed, models.StatusRescheduled).
		Count(&active)
	db.DB.Model(&models.Booking{}).
		Where("status = ?", models.StatusCancelled).
		Count(&cancelled)

	activeRate := 0.0
	if total > 0 {
		activeRate = float64(active) / float64(total)
	}

	analytics := fiber.Map{
		"total_bookings":     total,
		"active_bookings":    active,
		"cancelled_bookings": cancelled,
		"active_rate":        activeRate,
		"by_pet_type":        groupBookings("pet_type"),
		"by_urgency":         groupBookings("urgency"),
		"by_appointment":     groupBookings("appointment_type"),
		"by_doctor":          bookingsByDoctor(),
	}

	if model, err := Models.Current(); err == nil {
		analytics["feature_importance"] = model.FeatureImportance()
		analytics["model_trained_at"] = model.TrainedAt
	}
	if intents := chatbotIntents(); len(intents) > 0 {
		analytics["chatbot_intents"] = intents
	}
	return c.JSON(analytics)
}

// GetStatus godoc
// @Summary Service status
// @Tags analytics
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/status [get]
func GetStatus(c *fiber.Ctx) error {
	status := fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	}

	if model, err := Models.Current(); err == nil {
		status["model_loaded"] = true
		status["model_trained_at"] = model.TrainedAt
	} else {
		status["model_loaded"] = false
	}

	if doctors, err := Store.Doctors(); err == nil {
		status["doctors"] = len(doctors)
	}
	if slots, err := Store.AvailableSlots(scheduler.SlotFilter{From: time.Now()}); err == nil {
		status["available_slots"] = len(slots)
	}
	status["redis_connected"] = redis.Client != nil
	return c.JSON(status)
}

func groupBookings(column string) []countRow {
	var rows []countRow
	db.DB.Model(&models.Booking{}).
		Select(column + " AS key, COUNT(*) AS count").
		Group(column).
		Order("count DESC").
		Scan(&rows)
	return rows
}

func bookingsByDoctor() []countRow {
	var rows []countRow
	db.DB.Model(&models.Booking{}).
		Select("doctors.name AS key, COUNT(*) AS count").
		Joins("JOIN availability_slots ON availability_slots.id = bookings.slot_id").
		Joins("JOIN doctors ON doctors.id = availability_slots.doctor_id").
		Group("doctors.name").
		Order("count DESC").
		Scan(&rows)
	return rows
}

// chatbotIntents reads the per-category counters incremented by Chat.
func chatbotIntents() map[string]string {
	if redis.Client == nil {
		return nil
	}
	keys, err := redis.Client.Keys(redis.Ctx, "chatbot:intents:*").Result()
	if err != nil {
		return nil
	}
	intents := make(map[string]string, len(keys))
	for _, key := range keys {
		if value, err := redis.Client.Get(redis.Ctx, key).Result(); err == nil {
			intents[strings.TrimPrefix(key, "chatbot:intents:")] = value
		}
	}
	return intents
}
