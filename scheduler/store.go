package scheduler

import (
	"time"

	"github.com/pawcare/vet-scheduler/models"
)

// SlotFilter narrows AvailableSlots by doctor and/or time window. Zero
// values mean no filtering.
type SlotFilter struct {
	DoctorID uint
	From     time.Time
	To       time.Time
}

// Conflict is an overlap between a proposed appointment interval and an
// existing active booking for the same doctor.
type Conflict struct {
	Booking      models.Booking          `json:"booking"`
	Slot         models.AvailabilitySlot `json:"slot"`
	OverlapStart time.Time               `json:"overlap_start"`
	OverlapEnd   time.Time               `json:"overlap_end"`
}

// ScheduleEntry is a booking joined with its slot, as rendered in a
// doctor's day view.
type ScheduleEntry struct {
	Booking   models.Booking          `json:"booking"`
	Slot      models.AvailabilitySlot `json:"slot"`
	StartTime time.Time               `json:"start_time"`
	EndTime   time.Time               `json:"end_time"`
}

// DailyCount summarises one calendar day of a doctor's inventory.
type DailyCount struct {
	Available int `json:"available"`
	Booked    int `json:"booked"`
}

// AvailabilitySummary aggregates a doctor's slot inventory over a window.
type AvailabilitySummary struct {
	DoctorID       uint                  `json:"doctor_id"`
	From           time.Time             `json:"from"`
	To             time.Time             `json:"to"`
	TotalAvailable int                   `json:"total_available_slots"`
	TotalBooked    int                   `json:"total_booked_slots"`
	Daily          map[string]DailyCount `json:"daily_summary"` // keyed "2006-01-02"
}

// SlotStore owns the slot inventory and its booking records. Implementations
// must serialize book/cancel/reschedule per slot so that at most one active
// booking ever references a slot, and must reject lost-update races with
// ErrAlreadyBooked rather than overwriting.
type SlotStore interface {
	AddDoctor(doctor models.Doctor) (models.Doctor, error)
	Doctors() ([]models.Doctor, error)
	Doctor(doctorID uint) (models.Doctor, error)

	AddSlot(doctorID uint, start time.Time, durationMinutes int, slotType string) (models.AvailabilitySlot, error)
	GetSlot(slotID uint) (models.AvailabilitySlot, error)
	// AvailableSlots returns slots whose availability flag is true and which
	// no active booking references. Order is stable for a fixed store state.
	AvailableSlots(filter SlotFilter) ([]models.AvailabilitySlot, error)

	// Book creates a confirmed booking and flips the slot unavailable, as one
	// atomic step.
	Book(slotID uint, req models.SchedulingRequest) (models.Booking, error)
	GetBooking(bookingID uint) (models.Booking, error)
	// Cancel returns false without error when the booking is unknown or
	// already cancelled.
	Cancel(bookingID uint) (bool, error)
	// Reschedule frees the old slot and claims the new one atomically.
	Reschedule(bookingID, newSlotID uint) (models.Booking, error)

	FindConflicts(doctorID uint, start time.Time, durationMinutes int) ([]Conflict, error)
	// DoctorSchedule lists active bookings whose slot starts within the
	// calendar day of date, ordered by start time ascending.
	DoctorSchedule(doctorID uint, date time.Time) ([]ScheduleEntry, error)
	AvailabilitySummary(doctorID uint, daysAhead int) (AvailabilitySummary, error)
}
