package models

import (
	"fmt"
	"time"
)

type BookingStatus string

const (
	StatusConfirmed   BookingStatus = "confirmed"
	StatusCancelled   BookingStatus = "cancelled"
	StatusRescheduled BookingStatus = "rescheduled"
)

// Booking is a confirmed assignment of a patient/pet request to a slot.
type Booking struct {
	ID              uint          `json:"booking_id" gorm:"primaryKey"`
	SlotID          uint          `json:"slot_id"`
	Slot            AvailabilitySlot `json:"-" gorm:"foreignKey:SlotID"`
	PatientName     string        `json:"patient_name"`
	PetName         string        `json:"pet_name"`
	PetType         string        `json:"pet_type"`
	AppointmentType string        `json:"appointment_type"`
	Urgency         string        `json:"urgency"`
	Notes           string        `json:"notes"`
	ContactEmail    string        `json:"contact_email,omitempty"`
	Status          BookingStatus `json:"status"`
	BookedAt        time.Time     `json:"booked_at"`
	CancelledAt     *time.Time    `json:"cancelled_at,omitempty"`
	RescheduledAt   *time.Time    `json:"rescheduled_at,omitempty"`
}

// IsActive reports whether the booking currently occupies its slot.
func (b Booking) IsActive() bool {
	return b.Status == StatusConfirmed || b.Status == StatusRescheduled
}

// CanTransition validates a status change. Cancelled is terminal; an active
// booking may be cancelled or moved to a new slot.
func (b Booking) CanTransition(next BookingStatus) error {
	switch b.Status {
	case StatusConfirmed, StatusRescheduled:
		if next != StatusCancelled && next != StatusRescheduled {
			return fmt.Errorf("invalid transition from %s to %s", b.Status, next)
		}
	case StatusCancelled:
		return fmt.Errorf("no transitions allowed from %s", b.Status)
	}
	return nil
}
