package scheduler

import (
	"math/rand"
	"time"

	"github.com/pawcare/vet-scheduler/models"
)

// DefaultDoctors is the bootstrap roster used when no doctor reference data
// has been loaded.
func DefaultDoctors() []models.Doctor {
	return []models.Doctor{
		{ID: 1, Name: "Dr. Sarah Johnson", Specialty: "General Practice", ExperienceYears: 8},
		{ID: 2, Name: "Dr. Michael Chen", Specialty: "Surgery", ExperienceYears: 12},
		{ID: 3, Name: "Dr. Emily Rodriguez", Specialty: "Emergency", ExperienceYears: 6},
		{ID: 4, Name: "Dr. James Wilson", Specialty: "Dermatology", ExperienceYears: 10},
		{ID: 5, Name: "Dr. Lisa Thompson", Specialty: "Cardiology", ExperienceYears: 15},
	}
}

var (
	genPetTypes         = []string{"Dog", "Cat", "Bird", "Rabbit", "Hamster", "Fish", "Reptile"}
	genUrgencies        = []string{models.UrgencyLow, models.UrgencyMedium, models.UrgencyHigh, models.UrgencyEmergency}
	genAppointmentTypes = []string{"Checkup", "Vaccination", "Surgery", "Emergency", "Follow-up", "Grooming"}
	genDurations        = []float64{30, 45, 60}
)

// DataGenerator produces synthetic demo datasets: a historical appointment
// corpus for training and an initial slot inventory.
type DataGenerator struct {
	rng     *rand.Rand
	doctors []models.Doctor
}

func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng:     rand.New(rand.NewSource(seed)),
		doctors: DefaultDoctors(),
	}
}

// GenerateHistory builds n synthetic historical appointments with outcomes
// drawn from a success probability that rewards experience, specialty match,
// urgency, mid-morning and mid-afternoon hours, weekdays and common pets.
func (g *DataGenerator) GenerateHistory(n int) []TrainingExample {
	examples := make([]TrainingExample, 0, n)
	now := time.Now()
	for i := 0; i < n; i++ {
		doctor := g.doctors[g.rng.Intn(len(g.doctors))]
		petType := genPetTypes[g.rng.Intn(len(genPetTypes))]
		urgency := genUrgencies[g.rng.Intn(len(genUrgencies))]
		appointmentType := genAppointmentTypes[g.rng.Intn(len(genAppointmentTypes))]

		daysAgo := g.rng.Intn(180) + 1
		when := now.AddDate(0, 0, -daysAgo)
		when = time.Date(when.Year(), when.Month(), when.Day(), 8+g.rng.Intn(10), 0, 0, 0, when.Location())

		slot := models.AvailabilitySlot{
			DoctorID:        doctor.ID,
			StartTime:       when,
			DurationMinutes: 30,
			SlotType:        models.SlotTypeRegular,
		}
		req := models.SchedulingRequest{
			PetType:         petType,
			AppointmentType: appointmentType,
			Urgency:         urgency,
		}

		successProb := g.successProbability(doctor, petType, urgency, appointmentType, when)
		examples = append(examples, TrainingExample{
			Features:        ExtractFeatures(req, slot, doctor),
			WasSuccessful:   g.rng.Float64() < successProb,
			DurationMinutes: genDurations[g.rng.Intn(len(genDurations))],
		})
	}
	return examples
}

func (g *DataGenerator) successProbability(doctor models.Doctor, petType, urgency, appointmentType string, when time.Time) float64 {
	prob := 0.8

	expFactor := float64(doctor.ExperienceYears) / 15
	if expFactor > 1 {
		expFactor = 1
	}
	prob += expFactor * 0.1
	prob += SpecialtyMatch(doctor.Specialty, appointmentType) * 0.15
	prob += UrgencyScore(urgency) * 0.1

	switch when.Hour() {
	case 9, 10, 14, 15:
		prob += 0.05
	default:
		prob -= 0.05
	}
	if when.Weekday() == time.Saturday || when.Weekday() == time.Sunday {
		prob -= 0.1
	} else {
		prob += 0.05
	}
	if petType == "Dog" || petType == "Cat" {
		prob += 0.05
	} else {
		prob -= 0.05
	}

	if prob < 0.1 {
		prob = 0.1
	}
	if prob > 0.95 {
		prob = 0.95
	}
	return prob
}

// SeedSlots populates the store with availability for the next daysAhead
// days: 4 to 8 hourly 30-minute slots per doctor per day from 09:00, with
// weekends occasionally skipped.
func (g *DataGenerator) SeedSlots(store SlotStore, daysAhead int) (int, error) {
	doctors, err := store.Doctors()
	if err != nil {
		return 0, err
	}
	base := time.Now()
	created := 0
	for _, doctor := range doctors {
		for day := 0; day < daysAhead; day++ {
			date := base.AddDate(0, 0, day)
			if (date.Weekday() == time.Saturday || date.Weekday() == time.Sunday) && g.rng.Float64() < 0.3 {
				continue
			}
			numSlots := 4 + g.rng.Intn(5)
			for i := 0; i < numSlots; i++ {
				start := time.Date(date.Year(), date.Month(), date.Day(), 9+i, 0, 0, 0, date.Location())
				if _, err := store.AddSlot(doctor.ID, start, 30, models.SlotTypeRegular); err != nil {
					return created, err
				}
				created++
			}
		}
	}
	return created, nil
}
