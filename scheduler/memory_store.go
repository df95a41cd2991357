package scheduler

import (
	"sort"
	"sync"
	"time"

	"github.com/pawcare/vet-scheduler/models"
)

// MemoryStore is an in-process SlotStore guarded by a single mutex. It backs
// tests and demo mode; production wiring uses GormStore.
type MemoryStore struct {
	mu            sync.Mutex
	doctors       map[uint]models.Doctor
	slots         map[uint]*models.AvailabilitySlot
	bookings      map[uint]*models.Booking
	nextDoctorID  uint
	nextSlotID    uint
	nextBookingID uint
	now           func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		doctors:  make(map[uint]models.Doctor),
		slots:    make(map[uint]*models.AvailabilitySlot),
		bookings: make(map[uint]*models.Booking),
		now:      time.Now,
	}
}

func (s *MemoryStore) AddDoctor(doctor models.Doctor) (models.Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doctor.ID == 0 {
		s.nextDoctorID++
		doctor.ID = s.nextDoctorID
	} else if doctor.ID > s.nextDoctorID {
		s.nextDoctorID = doctor.ID
	}
	doctor.CreatedAt = s.now()
	s.doctors[doctor.ID] = doctor
	return doctor, nil
}

func (s *MemoryStore) Doctors() ([]models.Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doctors := make([]models.Doctor, 0, len(s.doctors))
	for _, d := range s.doctors {
		doctors = append(doctors, d)
	}
	sort.Slice(doctors, func(i, j int) bool { return doctors[i].ID < doctors[j].ID })
	return doctors, nil
}

func (s *MemoryStore) Doctor(doctorID uint) (models.Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doctor, ok := s.doctors[doctorID]
	if !ok {
		return models.Doctor{}, ErrDoctorNotFound
	}
	return doctor, nil
}

func (s *MemoryStore) AddSlot(doctorID uint, start time.Time, durationMinutes int, slotType string) (models.AvailabilitySlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.doctors[doctorID]; !ok {
		return models.AvailabilitySlot{}, ErrDoctorNotFound
	}
	if slotType == "" {
		slotType = models.SlotTypeRegular
	}
	s.nextSlotID++
	slot := &models.AvailabilitySlot{
		ID:              s.nextSlotID,
		DoctorID:        doctorID,
		StartTime:       start,
		DurationMinutes: durationMinutes,
		SlotType:        slotType,
		IsAvailable:     true,
		CreatedAt:       s.now(),
	}
	s.slots[slot.ID] = slot
	return *slot, nil
}

func (s *MemoryStore) GetSlot(slotID uint) (models.AvailabilitySlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.slots[slotID]
	if !ok {
		return models.AvailabilitySlot{}, ErrSlotNotFound
	}
	return *slot, nil
}

// activeBookingForSlot must be called with the mutex held.
func (s *MemoryStore) activeBookingForSlot(slotID uint) *models.Booking {
	for _, b := range s.bookings {
		if b.SlotID == slotID && b.IsActive() {
			return b
		}
	}
	return nil
}

func (s *MemoryStore) AvailableSlots(filter SlotFilter) ([]models.AvailabilitySlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var available []models.AvailabilitySlot
	for _, slot := range s.slots {
		if filter.DoctorID != 0 && slot.DoctorID != filter.DoctorID {
			continue
		}
		if !filter.From.IsZero() && slot.StartTime.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && slot.StartTime.After(filter.To) {
			continue
		}
		if !slot.IsAvailable {
			continue
		}
		if s.activeBookingForSlot(slot.ID) != nil {
			continue
		}
		available = append(available, *slot)
	}
	// Stable order for a fixed store state.
	sort.Slice(available, func(i, j int) bool { return available[i].ID < available[j].ID })
	return available, nil
}

func (s *MemoryStore) Book(slotID uint, req models.SchedulingRequest) (models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.slots[slotID]
	if !ok {
		return models.Booking{}, ErrSlotNotFound
	}
	if !slot.IsAvailable {
		return models.Booking{}, ErrSlotUnavailable
	}
	if s.activeBookingForSlot(slotID) != nil {
		return models.Booking{}, ErrAlreadyBooked
	}

	s.nextBookingID++
	booking := &models.Booking{
		ID:              s.nextBookingID,
		SlotID:          slotID,
		PatientName:     req.PatientName,
		PetName:         req.PetName,
		PetType:         req.PetType,
		AppointmentType: req.AppointmentType,
		Urgency:         req.Urgency,
		Notes:           req.Notes,
		ContactEmail:    req.ContactEmail,
		Status:          models.StatusConfirmed,
		BookedAt:        s.now(),
	}
	s.bookings[booking.ID] = booking
	slot.IsAvailable = false
	return *booking, nil
}

func (s *MemoryStore) GetBooking(bookingID uint) (models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[bookingID]
	if !ok {
		return models.Booking{}, ErrBookingNotFound
	}
	return *booking, nil
}

func (s *MemoryStore) Cancel(bookingID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[bookingID]
	if !ok || booking.Status == models.StatusCancelled {
		return false, nil
	}
	now := s.now()
	booking.Status = models.StatusCancelled
	booking.CancelledAt = &now
	if slot, ok := s.slots[booking.SlotID]; ok {
		slot.IsAvailable = true
	}
	return true, nil
}

func (s *MemoryStore) Reschedule(bookingID, newSlotID uint) (models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[bookingID]
	if !ok {
		return models.Booking{}, ErrBookingNotFound
	}
	if err := booking.CanTransition(models.StatusRescheduled); err != nil {
		return models.Booking{}, err
	}
	newSlot, ok := s.slots[newSlotID]
	if !ok {
		return models.Booking{}, ErrSlotNotFound
	}
	if !newSlot.IsAvailable {
		return models.Booking{}, ErrSlotUnavailable
	}
	if s.activeBookingForSlot(newSlotID) != nil {
		return models.Booking{}, ErrAlreadyBooked
	}

	// Both slot flips happen under the same lock, so the store is never
	// observed with neither or both slots claimed by this booking.
	if oldSlot, ok := s.slots[booking.SlotID]; ok {
		oldSlot.IsAvailable = true
	}
	newSlot.IsAvailable = false

	now := s.now()
	booking.SlotID = newSlotID
	booking.Status = models.StatusRescheduled
	booking.RescheduledAt = &now
	return *booking, nil
}

func (s *MemoryStore) FindConflicts(doctorID uint, start time.Time, durationMinutes int) ([]Conflict, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	var conflicts []Conflict
	for _, booking := range s.bookings {
		if !booking.IsActive() {
			continue
		}
		slot, ok := s.slots[booking.SlotID]
		if !ok || slot.DoctorID != doctorID {
			continue
		}
		if !slot.Overlaps(start, end) {
			continue
		}
		conflicts = append(conflicts, Conflict{
			Booking:      *booking,
			Slot:         *slot,
			OverlapStart: maxTime(start, slot.StartTime),
			OverlapEnd:   minTime(end, slot.EndTime()),
		})
	}
	sort.Slice(conflicts, func(i, j int) bool { return conflicts[i].Booking.ID < conflicts[j].Booking.ID })
	return conflicts, nil
}

func (s *MemoryStore) DoctorSchedule(doctorID uint, date time.Time) ([]ScheduleEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var entries []ScheduleEntry
	for _, booking := range s.bookings {
		if !booking.IsActive() {
			continue
		}
		slot, ok := s.slots[booking.SlotID]
		if !ok || slot.DoctorID != doctorID {
			continue
		}
		if slot.StartTime.Before(dayStart) || !slot.StartTime.Before(dayEnd) {
			continue
		}
		entries = append(entries, ScheduleEntry{
			Booking:   *booking,
			Slot:      *slot,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime(),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].StartTime.Before(entries[j].StartTime) })
	return entries, nil
}

func (s *MemoryStore) AvailabilitySummary(doctorID uint, daysAhead int) (AvailabilitySummary, error) {
	from := s.now()
	to := from.AddDate(0, 0, daysAhead)

	available, err := s.AvailableSlots(SlotFilter{DoctorID: doctorID, From: from, To: to})
	if err != nil {
		return AvailabilitySummary{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

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
	for _, booking := range s.bookings {
		if !booking.IsActive() {
			continue
		}
		slot, ok := s.slots[booking.SlotID]
		if !ok || slot.DoctorID != doctorID {
			continue
		}
		if slot.StartTime.Before(from) || slot.StartTime.After(to) {
			continue
		}
		day := slot.StartTime.Format("2006-01-02")
		counts := summary.Daily[day]
		counts.Booked++
		summary.Daily[day] = counts
		summary.TotalBooked++
	}
	return summary, nil
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
