package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pawcare/vet-scheduler/models"
)

func TestExtractFeaturesDeterministic(t *testing.T) {
	req := models.SchedulingRequest{
		PetType:         "Dog",
		AppointmentType: "Checkup",
		Urgency:         models.UrgencyHigh,
	}
	slot := models.AvailabilitySlot{
		// Monday 2026-09-07, 10:00.
		StartTime:       time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
	}
	doctor := models.Doctor{Specialty: "General Practice", ExperienceYears: 8}

	got := ExtractFeatures(req, slot, doctor)
	want := FeatureVector{8, 0.9, 0.8, 0, 10, 9, 0, 1, 1}
	assert.Equal(t, want, got)
	assert.Equal(t, got, ExtractFeatures(req, slot, doctor))
}

func TestDayOfWeekMondayZero(t *testing.T) {
	monday := models.AvailabilitySlot{StartTime: time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)}
	sunday := models.AvailabilitySlot{StartTime: time.Date(2026, 9, 6, 10, 0, 0, 0, time.UTC)}
	saturday := models.AvailabilitySlot{StartTime: time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)}

	assert.Equal(t, 0, dayOfWeek(monday))
	assert.Equal(t, 5, dayOfWeek(saturday))
	assert.Equal(t, 6, dayOfWeek(sunday))
}

func TestWeekendFlag(t *testing.T) {
	req := models.SchedulingRequest{PetType: "Cat", AppointmentType: "Checkup", Urgency: models.UrgencyLow}
	doctor := models.Doctor{Specialty: "General Practice", ExperienceYears: 5}

	weekday := ExtractFeatures(req, models.AvailabilitySlot{StartTime: time.Date(2026, 9, 9, 10, 0, 0, 0, time.UTC)}, doctor)
	weekend := ExtractFeatures(req, models.AvailabilitySlot{StartTime: time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)}, doctor)

	assert.Equal(t, 0.0, weekday[6])
	assert.Equal(t, 1.0, weekend[6])
}

func TestUrgencyScores(t *testing.T) {
	assert.Equal(t, 0.2, UrgencyScore(models.UrgencyLow))
	assert.Equal(t, 0.5, UrgencyScore(models.UrgencyMedium))
	assert.Equal(t, 0.8, UrgencyScore(models.UrgencyHigh))
	assert.Equal(t, 1.0, UrgencyScore(models.UrgencyEmergency))
	assert.Equal(t, 0.5, UrgencyScore("Whenever"))
}

func TestSpecialtyMatch(t *testing.T) {
	assert.Equal(t, 1.0, SpecialtyMatch("Surgery", "Surgery"))
	assert.Equal(t, 1.0, SpecialtyMatch("Emergency", "Emergency"))
	assert.Equal(t, 0.9, SpecialtyMatch("General Practice", "Checkup"))
	assert.Equal(t, 0.8, SpecialtyMatch("General Practice", "Vaccination"))
	assert.Equal(t, 0.7, SpecialtyMatch("Dermatology", "Checkup"))
	assert.Equal(t, 0.6, SpecialtyMatch("Cardiology", "Checkup"))
	assert.Equal(t, 0.5, SpecialtyMatch("Dermatology", "Surgery"))
}

func TestCategoricalCodesStable(t *testing.T) {
	assert.Equal(t, 1, PetTypeCode("Dog"))
	assert.Equal(t, 2, PetTypeCode("Cat"))
	assert.Equal(t, 7, PetTypeCode("Reptile"))
	assert.Equal(t, unknownCode, PetTypeCode("Dragon"))

	assert.Equal(t, 1, AppointmentTypeCode("Checkup"))
	assert.Equal(t, 6, AppointmentTypeCode("Grooming"))
	assert.Equal(t, unknownCode, AppointmentTypeCode("Telepathy"))
}
