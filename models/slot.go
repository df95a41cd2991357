package models

import (
	"time"
)

const (
	SlotTypeRegular   = "regular"
	SlotTypeEmergency = "emergency"
)

// AvailabilitySlot is a bookable (doctor, time-interval) unit of capacity.
// Slots are never deleted; IsAvailable is toggled only by booking, cancel
// and reschedule operations.
type AvailabilitySlot struct {
	ID              uint      `json:"slot_id" gorm:"primaryKey"`
	DoctorID        uint      `json:"doctor_id"`
	Doctor          Doctor    `json:"-" gorm:"foreignKey:DoctorID"`
	StartTime       time.Time `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	SlotType        string    `json:"slot_type"`
	IsAvailable     bool      `json:"is_available"`
	CreatedAt       time.Time `json:"created_at"`
}

// EndTime returns the exclusive end of the slot interval.
func (s AvailabilitySlot) EndTime() time.Time {
	return s.StartTime.Add(time.Duration(s.DurationMinutes) * time.Minute)
}

// Overlaps reports whether the slot interval overlaps [start, end).
// Half-open intervals: touching endpoints are not an overlap.
func (s AvailabilitySlot) Overlaps(start, end time.Time) bool {
	return start.Before(s.EndTime()) && end.After(s.StartTime)
}
