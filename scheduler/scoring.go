package scheduler

import (
	"math"
	"sort"

	"github.com/pawcare/vet-scheduler/models"
)

// ScoringConfig holds the ranking weights. The defaults reproduce the
// long-standing policy constants; they are configuration, not algorithmic
// truths, so deployments may tune them.
type ScoringConfig struct {
	SuccessWeight      float64 `json:"success_weight"`
	PreferredHourStart int     `json:"preferred_hour_start"`
	PreferredHourEnd   int     `json:"preferred_hour_end"` // inclusive
	PreferredHourBonus float64 `json:"preferred_hour_bonus"`
	OffHourBonus       float64 `json:"off_hour_bonus"`
	DurationWeight     float64 `json:"duration_weight"`
	UrgencyBonus       float64 `json:"urgency_bonus"`
	BaseUrgencyBonus   float64 `json:"base_urgency_bonus"`
	DefaultDuration    int     `json:"default_duration_minutes"`
}

func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		SuccessWeight:      0.4,
		PreferredHourStart: 9,
		PreferredHourEnd:   11,
		PreferredHourBonus: 0.3,
		OffHourBonus:       0.1,
		DurationWeight:     0.2,
		UrgencyBonus:       0.1,
		BaseUrgencyBonus:   0.05,
		DefaultDuration:    30,
	}
}

// Candidate is one scored slot in a ranking.
type Candidate struct {
	Slot               models.AvailabilitySlot `json:"slot"`
	Doctor             models.Doctor           `json:"doctor"`
	SuccessProbability float64                 `json:"success_probability"`
	PredictedDuration  float64                 `json:"predicted_duration"`
	Score              float64                 `json:"recommendation_score"`
}

// ScoringPolicy combines model outputs with deterministic heuristics into a
// single ordering score.
type ScoringPolicy struct {
	cfg ScoringConfig
}

func NewScoringPolicy(cfg ScoringConfig) ScoringPolicy {
	return ScoringPolicy{cfg: cfg}
}

// Score computes the recommendation score for one candidate: the success
// probability weighted highest, a time-of-day bonus for the preferred hour
// band, a duration-match term penalizing distance from the requested
// duration, and an urgency bonus for high or emergency requests.
func (p ScoringPolicy) Score(successProb, predictedDuration float64, slot models.AvailabilitySlot, req models.SchedulingRequest) float64 {
	score := successProb * p.cfg.SuccessWeight

	hour := slot.StartTime.Hour()
	if hour >= p.cfg.PreferredHourStart && hour <= p.cfg.PreferredHourEnd {
		score += p.cfg.PreferredHourBonus
	} else {
		score += p.cfg.OffHourBonus
	}

	requested := float64(req.DurationMinutes)
	if requested <= 0 {
		requested = float64(p.cfg.DefaultDuration)
	}
	durationMatch := 1.0 - math.Abs(predictedDuration-requested)/requested
	score += durationMatch * p.cfg.DurationWeight

	if req.Urgency == models.UrgencyHigh || req.Urgency == models.UrgencyEmergency {
		score += p.cfg.UrgencyBonus
	} else {
		score += p.cfg.BaseUrgencyBonus
	}
	return score
}

// Rank sorts candidates descending by score. The sort is stable, so ties
// keep the extractor's candidate order and repeated calls agree.
func (p ScoringPolicy) Rank(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
}

// ApplyPreferences drops candidates violating the hard constraints, adds the
// preference bonus to the survivors and re-sorts.
func (p ScoringPolicy) ApplyPreferences(candidates []Candidate, prefs *models.Preferences) []Candidate {
	if prefs == nil {
		return candidates
	}
	filtered := make([]Candidate, 0, len(candidates))
	for _, cand := range candidates {
		if prefs.PreferredDoctorID != 0 && cand.Slot.DoctorID != prefs.PreferredDoctorID {
			continue
		}
		if prefs.PreferredHourRange != nil {
			hour := cand.Slot.StartTime.Hour()
			if hour < prefs.PreferredHourRange[0] || hour > prefs.PreferredHourRange[1] {
				continue
			}
		}
		if !prefs.MatchesDate(cand.Slot.StartTime) {
			continue
		}
		cand.Score += prefs.PreferenceBonus
		filtered = append(filtered, cand)
	}
	p.Rank(filtered)
	return filtered
}
