package db

import (
	"log"

	"github.com/pawcare/vet-scheduler/models"
	"github.com/pawcare/vet-scheduler/scheduler"
)

// SeedDoctors inserts the default roster when the doctors table is empty.
func SeedDoctors() {
	var count int64
	if err := DB.Model(&models.Doctor{}).Count(&count).Error; err != nil {
		log.Fatal("Failed to count doctors: ", err)
	}
	if count > 0 {
		return
	}

	doctors := scheduler.DefaultDoctors()
	if err := DB.Create(&doctors).Error; err != nil {
		log.Fatal("Failed to seed doctors: ", err)
	}
	log.Printf("✅ Seeded %d doctors!", len(doctors))
}
