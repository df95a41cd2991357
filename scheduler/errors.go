package scheduler

import "errors"

var (
	// ErrSlotNotFound is returned when a slot id is unknown.
	ErrSlotNotFound = errors.New("slot not found")
	// ErrSlotUnavailable is returned when a slot's availability flag is false.
	ErrSlotUnavailable = errors.New("slot is not available")
	// ErrAlreadyBooked is returned when an active booking already references
	// the slot. It defends against two callers both reading a slot as free.
	ErrAlreadyBooked = errors.New("slot is already booked")
	// ErrBookingNotFound is returned when a booking id is unknown.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrDoctorNotFound is returned when a doctor id is unknown.
	ErrDoctorNotFound = errors.New("doctor not found")
	// ErrNoSlotsAvailable is returned when no candidate slots exist or all
	// were rejected by preference filters or booking conflicts.
	ErrNoSlotsAvailable = errors.New("no available slots found")
	// ErrModelNotLoaded is returned when ranking is invoked before a model
	// has been trained or loaded.
	ErrModelNotLoaded = errors.New("model not trained or loaded")
)
