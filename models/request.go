package models

import (
	"fmt"
	"time"
)

// Urgency levels influence ranking: higher urgency scores higher.
const (
	UrgencyLow       = "Low"
	UrgencyMedium    = "Medium"
	UrgencyHigh      = "High"
	UrgencyEmergency = "Emergency"
)

// SchedulingRequest is the ephemeral inbound payload for the scheduler.
type SchedulingRequest struct {
	PatientName     string `json:"patient_name"`
	PetName         string `json:"pet_name"`
	PetType         string `json:"pet_type"`
	AppointmentType string `json:"appointment_type"`
	Urgency         string `json:"urgency"`
	Notes           string `json:"notes,omitempty"`
	ContactEmail    string `json:"contact_email,omitempty"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
}

// Validate rejects malformed requests before any repository mutation. The
// returned error names the specific missing field.
func (r SchedulingRequest) Validate() error {
	switch {
	case r.PatientName == "":
		return fmt.Errorf("missing required field: patient_name")
	case r.PetName == "":
		return fmt.Errorf("missing required field: pet_name")
	case r.PetType == "":
		return fmt.Errorf("missing required field: pet_type")
	case r.AppointmentType == "":
		return fmt.Errorf("missing required field: appointment_type")
	case r.Urgency == "":
		return fmt.Errorf("missing required field: urgency")
	}
	return nil
}

// Preferences are optional hard filters plus a score bonus applied to the
// candidates that survive them.
type Preferences struct {
	PreferredDoctorID uint     `json:"preferred_doctor_id,omitempty"`
	PreferredHourRange *[2]int `json:"preferred_hour_range,omitempty"` // inclusive [start, end]
	PreferredDates    []string `json:"preferred_dates,omitempty"`      // "2006-01-02"
	PreferenceBonus   float64  `json:"preference_bonus,omitempty"`
}

// MatchesDate reports whether t falls on one of the preferred dates.
func (p Preferences) MatchesDate(t time.Time) bool {
	if len(p.PreferredDates) == 0 {
		return true
	}
	day := t.Format("2006-01-02")
	for _, d := range p.PreferredDates {
		if d == day {
			return true
		}
	}
	return false
}
