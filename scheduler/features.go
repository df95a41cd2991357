package scheduler

import (
	"github.com/pawcare/vet-scheduler/models"
)

// FeatureCount is the fixed width of every feature vector.
const FeatureCount = 9

// EncodingVersion identifies the categorical enumeration tables below. Bump
// it whenever a code assignment changes, since trained models are only valid
// against the encoding they were fit with.
const EncodingVersion = 1

// unknownCode is the reserved bucket for category values not in the tables.
const unknownCode = 0

// Stable enumerations: each known category maps to a fixed small integer so
// feature vectors are reproducible across process restarts. Never reassign
// an existing code; append new categories at the end.
var petTypeCodes = map[string]int{
	"Dog":     1,
	"Cat":     2,
	"Bird":    3,
	"Rabbit":  4,
	"Hamster": 5,
	"Fish":    6,
	"Reptile": 7,
}

var appointmentTypeCodes = map[string]int{
	"Checkup":     1,
	"Vaccination": 2,
	"Surgery":     3,
	"Emergency":   4,
	"Follow-up":   5,
	"Grooming":    6,
}

var urgencyScores = map[string]float64{
	models.UrgencyLow:       0.2,
	models.UrgencyMedium:    0.5,
	models.UrgencyHigh:      0.8,
	models.UrgencyEmergency: 1.0,
}

type specialtyPair struct {
	Specialty       string
	AppointmentType string
}

var specialtyMatchScores = map[specialtyPair]float64{
	{"Surgery", "Surgery"}:              1.0,
	{"Emergency", "Emergency"}:          1.0,
	{"General Practice", "Checkup"}:     0.9,
	{"General Practice", "Vaccination"}: 0.8,
	{"Dermatology", "Checkup"}:          0.7,
	{"Cardiology", "Checkup"}:           0.6,
}

// FeatureVector is the fixed 9-dimensional numeric encoding of a
// (request, slot, doctor) triple. Order matters and must not change.
type FeatureVector [FeatureCount]float64

// FeatureNames lists the vector dimensions in order, for diagnostics.
var FeatureNames = [FeatureCount]string{
	"doctor_experience",
	"specialty_match",
	"urgency_score",
	"day_of_week",
	"hour_of_day",
	"month",
	"is_weekend",
	"pet_type_encoded",
	"appointment_type_encoded",
}

// ExtractFeatures derives the feature vector for one candidate slot. It is a
// pure function: the same inputs always produce the same vector.
func ExtractFeatures(req models.SchedulingRequest, slot models.AvailabilitySlot, doctor models.Doctor) FeatureVector {
	dow := dayOfWeek(slot)
	weekend := 0.0
	if dow >= 5 {
		weekend = 1.0
	}
	return FeatureVector{
		float64(doctor.ExperienceYears),
		SpecialtyMatch(doctor.Specialty, req.AppointmentType),
		UrgencyScore(req.Urgency),
		float64(dow),
		float64(slot.StartTime.Hour()),
		float64(int(slot.StartTime.Month())),
		weekend,
		float64(PetTypeCode(req.PetType)),
		float64(AppointmentTypeCode(req.AppointmentType)),
	}
}

// dayOfWeek returns the slot's weekday with Monday = 0 through Sunday = 6.
func dayOfWeek(slot models.AvailabilitySlot) int {
	return (int(slot.StartTime.Weekday()) + 6) % 7
}

// SpecialtyMatch scores how well a doctor's specialty fits an appointment
// type. Unlisted pairs score a neutral 0.5.
func SpecialtyMatch(specialty, appointmentType string) float64 {
	if score, ok := specialtyMatchScores[specialtyPair{specialty, appointmentType}]; ok {
		return score
	}
	return 0.5
}

// UrgencyScore maps an urgency tag to its numeric score, defaulting to 0.5.
func UrgencyScore(urgency string) float64 {
	if score, ok := urgencyScores[urgency]; ok {
		return score
	}
	return 0.5
}

// PetTypeCode returns the stable integer code for a pet type, or the
// unknown bucket for unseen values.
func PetTypeCode(petType string) int {
	if code, ok := petTypeCodes[petType]; ok {
		return code
	}
	return unknownCode
}

// AppointmentTypeCode returns the stable integer code for an appointment
// type, or the unknown bucket for unseen values.
func AppointmentTypeCode(appointmentType string) int {
	if code, ok := appointmentTypeCodes[appointmentType]; ok {
		return code
	}
	return unknownCode
}
