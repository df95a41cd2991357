package db

import (
	"log"

	"github.com/pawcare/vet-scheduler/models"
)

func Migrate() {
	err := DB.AutoMigrate(
		&models.Doctor{},
		&models.AvailabilitySlot{},
		&models.Booking{},
		&models.Medicine{},
		&models.StockTransaction{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}
	log.Println("✅ Database migrated successfully!")
}
