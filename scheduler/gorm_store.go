package scheduler

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/pawcare/vet-scheduler/models"
)

var activeStatuses = []models.BookingStatus{models.StatusConfirmed, models.StatusRescheduled}

// GormStore is the Postgres-backed SlotStore. Booking mutations run inside a
// transaction with the slot row locked FOR UPDATE, so two requests that both
// read a slot as free cannot both claim it.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) AddDoctor(doctor models.Doctor) (models.Doctor, error) {
	if err := s.db.Create(&doctor).Error; err != nil {
		return models.Doctor{}, err
	}
	return doctor, nil
}

func (s *GormStore) Doctors() ([]models.Doctor, error) {
	var doctors []models.Doctor
	if err := s.db.Order("id").Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

func (s *GormStore) Doctor(doctorID uint) (models.Doctor, error) {
	var doctor models.Doctor
	if err := s.db.First(&doctor, doctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Doctor{}, ErrDoctorNotFound
		}
		return models.Doctor{}, err
	}
	return doctor, nil
}

func (s *GormStore) AddSlot(doctorID uint, start time.Time, durationMinutes int, slotType string) (models.AvailabilitySlot, error) {
	if _, err := s.Doctor(doctorID); err != nil {
		return models.AvailabilitySlot{}, err
	}
	if slotType == "" {
		slotType = models.SlotTypeRegular
	}
	slot := models.AvailabilitySlot{
		DoctorID:        doctorID,
		StartTime:       start,
		DurationMinutes: durationMinutes,
		SlotType:        slotType,
		IsAvailable:     true,
	}
	if err := s.db.Create(&slot).Error; err != nil {
		return models.AvailabilitySlot{}, err
	}
	return slot, nil
}

func (s *GormStore) GetSlot(slotID uint) (models.AvailabilitySlot, error) {
	var slot models.AvailabilitySlot
	if err := s.db.First(&slot, slotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.AvailabilitySlot{}, ErrSlotNotFound
		}
		return models.AvailabilitySlot{}, err
	}
	return slot, nil
}

func (s *GormStore) AvailableSlots(filter SlotFilter) ([]models.AvailabilitySlot, error) {
	query := s.db.Model(&models.AvailabilitySlot{}).
		Where("is_available = ?", true).
		Where("id NOT IN (?)", s.db.Model(&models.Booking{}).
			Select("slot_id").
			Where("status IN ?", activeStatuses))
	if filter.DoctorID != 0 {
		query = query.Where("doctor_id = ?", filter.DoctorID)
	}
	if !filter.From.IsZero() {
		query = query.Where("start_time >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("start_time <= ?", filter.To)
	}

	var slots []models.AvailabilitySlot
	if err := query.Order("id").Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (s *GormStore) Book(slotID uint, req models.SchedulingRequest) (models.Booking, error) {
	var booking models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Lock the slot row so concurrent bookings serialize here.
		var slot models.AvailabilitySlot
		if err := tx.Raw(`SELECT * FROM availability_slots WHERE id = ? FOR UPDATE`, slotID).
			Scan(&slot).Error; err != nil {
			return err
		}
		if slot.ID == 0 {
			return ErrSlotNotFound
		}
		if !slot.IsAvailable {
			return ErrSlotUnavailable
		}

		var active int64
		if err := tx.Model(&models.Booking{}).
			Where("slot_id = ? AND status IN ?", slotID, activeStatuses).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return ErrAlreadyBooked
		}

		booking = models.Booking{
			SlotID:          slotID,
			PatientName:     req.PatientName,
			PetName:         req.PetName,
			PetType:         req.PetType,
			AppointmentType: req.AppointmentType,
			Urgency:         req.Urgency,
			Notes:           req.Notes,
			ContactEmail:    req.ContactEmail,
			Status:          models.StatusConfirmed,
			BookedAt:        time.Now(),
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		return tx.Model(&models.AvailabilitySlot{}).
			Where("id = ?", slotID).
			Update("is_available", false).Error
	})
	if err != nil {
		return models.Booking{}, err
	}
	return booking, nil
}

func (s *GormStore) GetBooking(bookingID uint) (models.Booking, error) {
	var booking models.Booking
	if err := s.db.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, ErrBookingNotFound
		}
		return models.Booking{}, err
	}
	return booking, nil
}

func (s *GormStore) Cancel(bookingID uint) (bool, error) {
	cancelled := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if booking.Status == models.StatusCancelled {
			return nil
		}
		now := time.Now()
		if err := tx.Model(&booking).Updates(map[string]interface{}{
			"status":       models.StatusCancelled,
			"cancelled_at": &now,
		}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.AvailabilitySlot{}).
			Where("id = ?", booking.SlotID).
			Update("is_available", true).Error; err != nil {
			return err
		}
		cancelled = true
		return nil
	})
	return cancelled, err
}

func (s *GormStore) Reschedule(bookingID, newSlotID uint) (models.Booking, error) {
	var booking models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if err := booking.CanTransition(models.StatusRescheduled); err != nil {
			return err
		}

		// Lock both slot rows in id order to avoid deadlock between
		// concurrent reschedules.
		first, second := booking.SlotID, newSlotID
		if second < first {
			first, second = second, first
		}
		var locked []models.AvailabilitySlot
		if err := tx.Raw(`SELECT * FROM availability_slots WHERE id IN (?, ?) ORDER BY id FOR UPDATE`,
			first, second).Scan(&locked).Error; err != nil {
			return err
		}
		var newSlot models.AvailabilitySlot
		for _, sl := range locked {
			if sl.ID == newSlotID {
				newSlot = sl
			}
		}
		if newSlot.ID == 0 {
			return ErrSlotNotFound
		}
		if !newSlot.IsAvailable {
			return ErrSlotUnavailable
		}

		var active int64
		if err := tx.Model(&models.Booking{}).
			Where("slot_id = ? AND status IN ?", newSlotID, activeStatuses).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return ErrAlreadyBooked
		}

		if err := tx.Model(&models.AvailabilitySlot{}).
			Where("id = ?", booking.SlotID).
			Update("is_available", true).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.AvailabilitySlot{}).
			Where("id = ?", newSlotID).
			Update("is_available", false).Error; err != nil {
			return err
		}

		now := time.Now()
		booking.SlotID = newSlotID
		booking.Status = models.StatusRescheduled
		booking.RescheduledAt = &now
		return tx.Model(&models.Booking{}).
			Where("id = ?", bookingID).
			Updates(map[string]interface{}{
				"slot_id":        newSlotID,
				"status":         models.StatusRescheduled,
				"rescheduled_at": &now,
			}).Error
	})
	if err != nil {
		return models.Booking{}, err
	}
	return booking, nil
}

// activeBookingsForDoctor fetches active bookings with their slots for one
// doctor, optionally bounded to a slot start window.
func (s *GormStore) activeBookingsForDoctor(doctorID uint, from, to *time.Time) ([]models.Booking, error) {
	query := s.db.Model(&models.Booking{}).
		Joins("JOIN availability_slots ON availability_slots.id = bookings.slot_id").
		Where("availability_slots.doctor_id = ? AND bookings.status IN ?", doctorID, activeStatuses).
		Preload("Slot")
	if from != nil {
		query = query.Where("availability_slots.start_time >= ?", *from)
	}
	if to != nil {
		query = query.Where("availability_slots.start_time < ?", *to)
	}

	var bookings []models.Booking
	if err := query.Order("availability_slots.start_time").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *GormStore) FindConflicts(doctorID uint, start time.Time, durationMinutes int) ([]Conflict, error) {
	bookings, err := s.activeBookingsForDoctor(doctorID, nil, nil)
	if err != nil {
		return nil, err
	}

	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	var conflicts []Conflict
	for _, booking := range bookings {
		if !booking.Slot.Overlaps(start, end) {
			continue
		}
		conflicts = append(conflicts, Conflict{
			Booking:      booking,
			Slot:         booking.Slot,
			OverlapStart: maxTime(start, booking.Slot.StartTime),
			OverlapEnd:   minTime(end, booking.Slot.EndTime()),
		})
	}
	return conflicts, nil
}

func (s *GormStore) DoctorSchedule(doctorID uint, date time.Time) ([]ScheduleEntry, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	bookings, err := s.activeBookingsForDoctor(doctorID, &dayStart, &dayEnd)
	if err != nil {
		return nil, err
	}

	entries := make([]ScheduleEntry, 0, len(bookings))
	for _, booking := range bookings {
		entries = append(entries, ScheduleEntry{
			Booking:   booking,
			Slot:      booking.Slot,
			StartTime: booking.Slot.StartTime,
			EndTime:   booking.Slot.EndTime(),
		})
	}
	return entries, nil
}

func (s *GormStore) AvailabilitySummary(doctorID uint, daysAhead int) (AvailabilitySummary, error) {
	from := time.Now()
	to := from.AddDate(0, 0, daysAhead)

	available, err := s.AvailableSlots(SlotFilter{DoctorID: doctorID, From: from, To: to})
	if err != nil {
		return AvailabilitySummary{}, err
	}
	booked, err := s.activeBookingsForDoctor(doctorID, &from, &to)
	if err != nil {
		return AvailabilitySummary{}, err
	}

	summary := AvailabilitySummary{
		DoctorID: doctorID,
		From:     from,
		To:       to,
		Daily:    make(map[string]DailyCount),
	}
	for _, slot := range available {
		day := slot.StartTime.Format("2006-01-02")
		counts := summary.Daily[day]
		counts.Available++
		summary.Daily[day] = counts
		summary.TotalAvailable++
	}
	for _, booking := range booked {
		day := booking.Slot.StartTime.Format("2006-01-02")
		counts := summary.Daily[day]
		counts.Booked++
		summary.Daily[day] = counts
		summary.TotalBooked++
	}
	return summary, nil
}
