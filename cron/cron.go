package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/pawcare/vet-scheduler/db"
	"github.com/pawcare/vet-scheduler/models"
	"github.com/pawcare/vet-scheduler/utils"
	"github.com/robfig/cron/v3"
)

// StartCronJobs initializes and starts the cron scheduler for booking reminders
func StartCronJobs() {
	fmt.Println("Starting cron job scheduler...")
	c := cron.New()
	// Run every minute to check for bookings in the next hour
	_, err := c.AddFunc("* * * * *", sendBookingReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for booking reminders")
}

// sendBookingReminders checks for upcoming bookings and sends reminders
func sendBookingReminders() {
	var bookings []models.Booking
	now := time.Now()
	// Look for bookings whose slot starts in the next hour
	startWindow := now.Add(55 * time.Minute)
	endWindow := now.Add(65 * time.Minute)

	err := db.DB.Preload("Slot").Preload("Slot.Doctor").
		Joins("JOIN availability_slots ON availability_slots.id = bookings.slot_id").
		Where("bookings.status IN (?, ?) AND availability_slots.start_time BETWEEN ? AND ?",
			models.StatusConfirmed, models.StatusRescheduled, startWindow, endWindow).
		Find(&bookings).Error
	if err != nil {
		log.Printf("Error fetching bookings for reminders: %v", err)
		return
	}

	fmt.Printf("Found %d bookings for reminders\n", len(bookings))

	for _, booking := range bookings {
		if booking.ContactEmail == "" {
			continue
		}
		err := sendReminderEmail(&booking)
		if err != nil {
			log.Printf("Failed to send reminder for booking %d: %v", booking.ID, err)
			continue
		}
		log.Printf("Sent reminder for booking %d to %s", booking.ID, booking.ContactEmail)
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(booking *models.Booking) error {
	subject := fmt.Sprintf("Reminder: Upcoming Appointment for %s", booking.PetName)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for %s's upcoming appointment scheduled in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Appointment Type:</strong> %s</li>
			<li><strong>Doctor:</strong> %s</li>
			<li><strong>Start Time:</strong> %s</li>
			<li><strong>Duration:</strong> %d minutes</li>
		</ul>
		<p>Please arrive on time. If you need to reschedule or cancel, contact us as soon as possible.</p>
		<p>Best regards,</p>
		<p>PawCare Veterinary Clinic</p>
	`, booking.PatientName, booking.PetName, booking.AppointmentType,
		booking.Slot.Doctor.Name,
		booking.Slot.StartTime.Format("2006-01-02 15:04:05"),
		booking.Slot.DurationMinutes)

	return utils.SendEmail(booking.ContactEmail, subject, body)
}
