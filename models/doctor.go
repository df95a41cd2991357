package models

import (
	"time"
)

// Doctor is immutable reference data, seeded once at bootstrap.
type Doctor struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Name            string    `json:"name"`
	Specialty       string    `json:"specialty"`
	ExperienceYears int       `json:"experience_years"`
	Slots           []AvailabilitySlot `json:"slots,omitempty" gorm:"foreignKey:DoctorID"`
	CreatedAt       time.Time `json:"created_at"`
}
