package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawcare/vet-scheduler/models"
)

func testRequest() models.SchedulingRequest {
	return models.SchedulingRequest{
		PatientName:     "John Smith",
		PetName:         "Buddy",
		PetType:         "Dog",
		AppointmentType: "Checkup",
		Urgency:         models.UrgencyMedium,
	}
}

func newSeededStore(t *testing.T) (*MemoryStore, models.Doctor) {
	t.Helper()
	store := NewMemoryStore()
	doctor, err := store.AddDoctor(models.Doctor{Name: "Dr. Sarah Johnson", Specialty: "General Practice", ExperienceYears: 8})
	require.NoError(t, err)
	return store, doctor
}

func mustAddSlot(t *testing.T, store *MemoryStore, doctorID uint, start time.Time) models.AvailabilitySlot {
	t.Helper()
	slot, err := store.AddSlot(doctorID, start, 30, models.SlotTypeRegular)
	require.NoError(t, err)
	return slot
}

func TestBookRemovesSlotFromAvailability(t *testing.T) {
	store, doctor := newSeededStore(t)
	start := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	slot := mustAddSlot(t, store, doctor.ID, start)
	other := mustAddSlot(t, store, doctor.ID, start.Add(time.Hour))

	booking, err := store.Book(slot.ID, testRequest())
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, booking.Status)
	assert.Equal(t, slot.ID, booking.SlotID)

	available, err := store.AvailableSlots(SlotFilter{})
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, other.ID, available[0].ID)
}

func TestBookUnknownSlot(t *testing.T) {
	store, _ := newSeededStore(t)
	_, err := store.Book(999, testRequest())
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestBookTwiceFails(t *testing.T) {
	store, doctor := newSeededStore(t)
	slot := mustAddSlot(t, store, doctor.ID, time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC))

	_, err := store.Book(slot.ID, testRequest())
	require.NoError(t, err)

	_, err = store.Book(slot.ID, testRequest())
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestCancelFreesSlot(t *testing.T) {
	store, doctor := newSeededStore(t)
	slot := mustAddSlot(t, store, doctor.ID, time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC))

	booking, err := store.Book(slot.ID, testRequest())
	require.NoError(t, err)

	cancelled, err := store.Cancel(booking.ID)
	require.NoError(t, err)
	assert.True(t, cancelled)

	stored, err := store.GetBooking(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, stored.Status)
	require.NotNil(t, stored.CancelledAt)

	available, err := store.AvailableSlots(SlotFilter{})
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, slot.ID, available[0].ID)
}

func TestCancelIsIdempotent(t *testing.T) {
	store, doctor := newSeededStore(t)
	slot := mustAddSlot(t, store, doctor.ID, time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC))

	booking, err := store.Book(slot.ID, testRequest())
	require.NoError(t, err)

	cancelled, err := store.Cancel(booking.ID)
	require.NoError(t, err)
	assert.True(t, cancelled)

	cancelled, err = store.Cancel(booking.ID)
	require.NoError(t, err)
	assert.False(t, cancelled)
}

func TestCancelUnknownBooking(t *testing.T) {
	store, _ := newSeededStore(t)
	cancelled, err := store.Cancel(42)
	require.NoError(t, err)
	assert.False(t, cancelled)
}

func TestRescheduleMovesBookingAtomically(t *testing.T) {
	store, doctor := newSeededStore(t)
	start := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	oldSlot := mustAddSlot(t, store, doctor.ID, start)
	newSlot := mustAddSlot(t, store, doctor.ID, start.Add(2*time.Hour))

	booking, err := store.Book(oldSlot.ID, testRequest())
	require.NoError(t, err)

	moved, err := store.Reschedule(booking.ID, newSlot.ID)
	require.NoError(t, err)
	assert.Equal(t, newSlot.ID, moved.SlotID)
	assert.Equal(t, models.StatusRescheduled, moved.Status)
	require.NotNil(t, moved.RescheduledAt)

	// Old slot freed, new slot claimed.
	available, err := store.AvailableSlots(SlotFilter{})
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, oldSlot.ID, available[0].ID)

	// Rescheduled bookings still occupy their slot.
	_, err = store.Book(newSlot.ID, testRequest())
	assert.Error(t, err)
}

func TestRescheduleCancelledBookingFails(t *testing.T) {
	store, doctor := newSeededStore(t)
	start := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	oldSlot := mustAddSlot(t, store, doctor.ID, start)
	newSlot := mustAddSlot(t, store, doctor.ID, start.Add(time.Hour))

	booking, err := store.Book(oldSlot.ID, testRequest())
	require.NoError(t, err)
	_, err = store.Cancel(booking.ID)
	require.NoError(t, err)

	_, err = store.Reschedule(booking.ID, newSlot.ID)
	assert.Error(t, err)
}

func TestRescheduleToTakenSlotLeavesBookingUntouched(t *testing.T) {
	store, doctor := newSeededStore(t)
	start := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	oldSlot := mustAddSlot(t, store, doctor.ID, start)
	takenSlot := mustAddSlot(t, store, doctor.ID, start.Add(time.Hour))

	booking, err := store.Book(oldSlot.ID, testRequest())
	require.NoError(t, err)
	_, err = store.Book(takenSlot.ID, testRequest())
	require.NoError(t, err)

	_, err = store.Reschedule(booking.ID, takenSlot.ID)
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	stored, err := store.GetBooking(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, oldSlot.ID, stored.SlotID)
	assert.Equal(t, models.StatusConfirmed, stored.Status)
}

func TestAvailableSlotsFilterAndOrder(t *testing.T) {
	store, doctor := newSeededStore(t)
	other, err := store.AddDoctor(models.Doctor{Name: "Dr. Michael Chen", Specialty: "Surgery", ExperienceYears: 12})
	require.NoError(t, err)

	base := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	mustAddSlot(t, store, doctor.ID, base.Add(2*time.Hour))
	mustAddSlot(t, store, doctor.ID, base)
	mustAddSlot(t, store, other.ID, base.Add(time.Hour))

	all, err := store.AvailableSlots(SlotFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Stable: ascending slot ID for a fixed state.
	assert.True(t, all[0].ID < all[1].ID && all[1].ID < all[2].ID)

	mine, err := store.AvailableSlots(SlotFilter{DoctorID: doctor.ID})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	windowed, err := store.AvailableSlots(SlotFilter{From: base.Add(30 * time.Minute), To: base.Add(90 * time.Minute)})
	require.NoError(t, err)
	require.Len(t, windowed, 1)
	assert.Equal(t, other.ID, windowed[0].DoctorID)
}

func TestFindConflictsHalfOpenIntervals(t *testing.T) {
	store, doctor := newSeededStore(t)
	start := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	slot := mustAddSlot(t, store, doctor.ID, start) // 09:00-09:30

	_, err := store.Book(slot.ID, testRequest())
	require.NoError(t, err)

	// Overlapping interval conflicts.
	conflicts, err := store.FindConflicts(doctor.ID, start.Add(15*time.Minute), 30)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, start.Add(15*time.Minute), conflicts[0].OverlapStart)
	assert.Equal(t, start.Add(30*time.Minute), conflicts[0].OverlapEnd)

	// Back-to-back is not a conflict: [09:30, 10:00) touches [09:00, 09:30) only at the endpoint.
	conflicts, err = store.FindConflicts(doctor.ID, start.Add(30*time.Minute), 30)
	require.NoError(t, err)
	assert.Empty(t, conflicts)

	// Ending exactly at the slot start is not a conflict either.
	conflicts, err = store.FindConflicts(doctor.ID, start.Add(-30*time.Minute), 30)
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestFindConflictsIgnoresCancelled(t *testing.T) {
	store, doctor := newSeededStore(t)
	start := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	slot := mustAddSlot(t, store, doctor.ID, start)

	booking, err := store.Book(slot.ID, testRequest())
	require.NoError(t, err)
	_, err = store.Cancel(booking.ID)
	require.NoError(t, err)

	conflicts, err := store.FindConflicts(doctor.ID, start, 30)
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestDoctorScheduleOrdersByStartTime(t *testing.T) {
	store, doctor := newSeededStore(t)
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	late := mustAddSlot(t, store, doctor.ID, day.Add(14*time.Hour))
	early := mustAddSlot(t, store, doctor.ID, day.Add(9*time.Hour))
	nextDay := mustAddSlot(t, store, doctor.ID, day.Add(33*time.Hour))

	for _, id := range []uint{late.ID, early.ID, nextDay.ID} {
		_, err := store.Book(id, testRequest())
		require.NoError(t, err)
	}

	entries, err := store.DoctorSchedule(doctor.ID, day)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, early.ID, entries[0].Slot.ID)
	assert.Equal(t, late.ID, entries[1].Slot.ID)
}

func TestAvailabilitySummaryCountsPerDay(t *testing.T) {
	store, doctor := newSeededStore(t)
	now := time.Now()
	store.now = func() time.Time { return now }

	day1 := time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	mustAddSlot(t, store, doctor.ID, day1)
	mustAddSlot(t, store, doctor.ID, day1.Add(time.Hour))
	booked := mustAddSlot(t, store, doctor.ID, day1.AddDate(0, 0, 1))
	_, err := store.Book(booked.ID, testRequest())
	require.NoError(t, err)

	summary, err := store.AvailabilitySummary(doctor.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalAvailable)
	assert.Equal(t, 1, summary.TotalBooked)
	assert.Equal(t, DailyCount{Available: 2}, summary.Daily[day1.Format("2006-01-02")])
	assert.Equal(t, DailyCount{Booked: 1}, summary.Daily[day1.AddDate(0, 0, 1).Format("2006-01-02")])
}

func TestConcurrentBookingSingleWinner(t *testing.T) {
	store, doctor := newSeededStore(t)
	slot := mustAddSlot(t, store, doctor.ID, time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC))

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = store.Book(slot.ID, testRequest())
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		}
	}
	assert.Equal(t, 1, wins)
}
