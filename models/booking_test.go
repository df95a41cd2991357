package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingTransitions(t *testing.T) {
	confirmed := Booking{Status: StatusConfirmed}
	assert.NoError(t, confirmed.CanTransition(StatusCancelled))
	assert.NoError(t, confirmed.CanTransition(StatusRescheduled))
	assert.Error(t, confirmed.CanTransition(StatusConfirmed))

	rescheduled := Booking{Status: StatusRescheduled}
	assert.NoError(t, rescheduled.CanTransition(StatusCancelled))
	assert.NoError(t, rescheduled.CanTransition(StatusRescheduled))

	cancelled := Booking{Status: StatusCancelled}
	assert.Error(t, cancelled.CanTransition(StatusConfirmed))
	assert.Error(t, cancelled.CanTransition(StatusRescheduled))
}

func TestBookingIsActive(t *testing.T) {
	assert.True(t, Booking{Status: StatusConfirmed}.IsActive())
	assert.True(t, Booking{Status: StatusRescheduled}.IsActive())
	assert.False(t, Booking{Status: StatusCancelled}.IsActive())
}

func TestSlotOverlapsHalfOpen(t *testing.T) {
	slot := AvailabilitySlot{
		StartTime:       time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
	}
	start := slot.StartTime

	assert.True(t, slot.Overlaps(start, start.Add(30*time.Minute)))
	assert.True(t, slot.Overlaps(start.Add(15*time.Minute), start.Add(45*time.Minute)))
	assert.True(t, slot.Overlaps(start.Add(-15*time.Minute), start.Add(15*time.Minute)))
	// Touching endpoints do not overlap.
	assert.False(t, slot.Overlaps(start.Add(30*time.Minute), start.Add(60*time.Minute)))
	assert.False(t, slot.Overlaps(start.Add(-30*time.Minute), start))
}

func TestSchedulingRequestValidate(t *testing.T) {
	valid := SchedulingRequest{
		PatientName:     "John Smith",
		PetName:         "Buddy",
		PetType:         "Dog",
		AppointmentType: "Checkup",
		Urgency:         UrgencyMedium,
	}
	assert.NoError(t, valid.Validate())

	missing := valid
	missing.AppointmentType = ""
	err := missing.Validate()
	assert.ErrorContains(t, err, "appointment_type")
}

func TestPreferencesMatchesDate(t *testing.T) {
	day := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

	assert.True(t, Preferences{}.MatchesDate(day))
	assert.True(t, Preferences{PreferredDates: []string{"2026-09-07"}}.MatchesDate(day))
	assert.False(t, Preferences{PreferredDates: []string{"2026-09-08"}}.MatchesDate(day))
}
