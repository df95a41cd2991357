package scheduler

import (
	"errors"
	"fmt"
	"log"

	"github.com/pawcare/vet-scheduler/models"
)

// alternateCount caps how many ranked alternates a result carries.
const alternateCount = 4

// MLPredictions is the scoring detail for the chosen slot.
type MLPredictions struct {
	SuccessProbability  float64 `json:"success_probability"`
	PredictedDuration   float64 `json:"predicted_duration"`
	RecommendationScore float64 `json:"recommendation_score"`
}

// BookingResult is the structured outcome of a schedule or reschedule call.
// Failures are reported here rather than raised, so the presentation layer
// can render a message without inspecting error types.
type BookingResult struct {
	Success       bool                     `json:"success"`
	Booking       *models.Booking          `json:"booking,omitempty"`
	Slot          *models.AvailabilitySlot `json:"slot,omitempty"`
	MLPredictions *MLPredictions           `json:"ml_predictions,omitempty"`
	Alternatives  []Candidate              `json:"alternatives,omitempty"`
	Message       string                   `json:"message,omitempty"`
}

// BatchResult pairs one queued request with its outcome.
type BatchResult struct {
	Request models.SchedulingRequest `json:"request"`
	Result  BookingResult            `json:"result"`
}

// Scheduler is the top-level entry point tying the slot store, the ranking
// model and the scoring policy together.
type Scheduler struct {
	store  SlotStore
	models *ModelHolder
	policy ScoringPolicy
}

func New(store SlotStore, models *ModelHolder, policy ScoringPolicy) *Scheduler {
	return &Scheduler{store: store, models: models, policy: policy}
}

// rankCandidates runs the shared candidate pipeline: fetch available slots,
// extract features, predict, score, then apply preferences.
func (s *Scheduler) rankCandidates(req models.SchedulingRequest, prefs *models.Preferences) ([]Candidate, error) {
	model, err := s.models.Current()
	if err != nil {
		return nil, err
	}
	slots, err := s.store.AvailableSlots(SlotFilter{})
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, ErrNoSlotsAvailable
	}

	candidates := make([]Candidate, 0, len(slots))
	for _, slot := range slots {
		doctor, err := s.store.Doctor(slot.DoctorID)
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", slot.ID, err)
		}
		features := ExtractFeatures(req, slot, doctor)
		successProb := model.PredictSuccess(features)
		predictedDuration := model.PredictDuration(features)
		candidates = append(candidates, Candidate{
			Slot:               slot,
			Doctor:             doctor,
			SuccessProbability: successProb,
			PredictedDuration:  predictedDuration,
			Score:              s.policy.Score(successProb, predictedDuration, slot, req),
		})
	}
	s.policy.Rank(candidates)
	candidates = s.policy.ApplyPreferences(candidates, prefs)
	if len(candidates) == 0 {
		return nil, ErrNoSlotsAvailable
	}
	return candidates, nil
}

// Schedule books the top-ranked available slot for the request. When a
// candidate is lost to a concurrent booking the next-ranked one is tried,
// bounded by the candidate list, so the call terminates.
func (s *Scheduler) Schedule(req models.SchedulingRequest, prefs *models.Preferences) BookingResult {
	if err := req.Validate(); err != nil {
		return failure(err)
	}
	candidates, err := s.rankCandidates(req, prefs)
	if err != nil {
		return failure(err)
	}

	for i, chosen := range candidates {
		booking, err := s.store.Book(chosen.Slot.ID, req)
		if errors.Is(err, ErrSlotUnavailable) || errors.Is(err, ErrAlreadyBooked) {
			log.Printf("slot %d taken concurrently, trying next candidate", chosen.Slot.ID)
			continue
		}
		if err != nil {
			return failure(err)
		}
		slot := chosen.Slot
		slot.IsAvailable = false
		return BookingResult{
			Success: true,
			Booking: &booking,
			Slot:    &slot,
			MLPredictions: &MLPredictions{
				SuccessProbability:  chosen.SuccessProbability,
				PredictedDuration:   chosen.PredictedDuration,
				RecommendationScore: chosen.Score,
			},
			Alternatives: alternates(candidates, i+1),
		}
	}
	return failure(ErrNoSlotsAvailable)
}

// Reschedule moves an existing booking to the best newly ranked slot,
// rebuilding an equivalent request from the booking's stored fields.
func (s *Scheduler) Reschedule(bookingID uint, prefs *models.Preferences) BookingResult {
	booking, err := s.store.GetBooking(bookingID)
	if err != nil {
		return failure(err)
	}
	req := models.SchedulingRequest{
		PatientName:     booking.PatientName,
		PetName:         booking.PetName,
		PetType:         booking.PetType,
		AppointmentType: booking.AppointmentType,
		Urgency:         booking.Urgency,
		Notes:           booking.Notes,
		ContactEmail:    booking.ContactEmail,
	}
	candidates, err := s.rankCandidates(req, prefs)
	if err != nil {
		return failure(err)
	}

	for i, chosen := range candidates {
		moved, err := s.store.Reschedule(bookingID, chosen.Slot.ID)
		if errors.Is(err, ErrSlotUnavailable) || errors.Is(err, ErrAlreadyBooked) {
			log.Printf("slot %d taken concurrently, trying next candidate", chosen.Slot.ID)
			continue
		}
		if err != nil {
			return failure(err)
		}
		slot := chosen.Slot
		slot.IsAvailable = false
		return BookingResult{
			Success: true,
			Booking: &moved,
			Slot:    &slot,
			MLPredictions: &MLPredictions{
				SuccessProbability:  chosen.SuccessProbability,
				PredictedDuration:   chosen.PredictedDuration,
				RecommendationScore: chosen.Score,
			},
			Alternatives: alternates(candidates, i+1),
		}
	}
	return failure(ErrNoSlotsAvailable)
}

// GetRecommendations runs the scoring pipeline without booking side effects,
// returning at most count ranked candidates.
func (s *Scheduler) GetRecommendations(req models.SchedulingRequest, count int) ([]Candidate, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	candidates, err := s.rankCandidates(req, nil)
	if err != nil {
		if errors.Is(err, ErrNoSlotsAvailable) {
			return []Candidate{}, nil
		}
		return nil, err
	}
	if count > 0 && len(candidates) > count {
		candidates = candidates[:count]
	}
	return candidates, nil
}

// ScheduleBatch processes a queue of requests sequentially. One request's
// failure never aborts the batch.
func (s *Scheduler) ScheduleBatch(queue []models.SchedulingRequest) []BatchResult {
	results := make([]BatchResult, 0, len(queue))
	for i, req := range queue {
		log.Printf("processing batch request %d/%d for %s", i+1, len(queue), req.PatientName)
		results = append(results, BatchResult{
			Request: req,
			Result:  s.Schedule(req, nil),
		})
	}
	return results
}

func failure(err error) BookingResult {
	return BookingResult{Success: false, Message: err.Error()}
}

func alternates(candidates []Candidate, from int) []Candidate {
	if from >= len(candidates) {
		return nil
	}
	rest := candidates[from:]
	if len(rest) > alternateCount {
		rest = rest[:alternateCount]
	}
	out := make([]Candidate, len(rest))
	copy(out, rest)
	return out
}
