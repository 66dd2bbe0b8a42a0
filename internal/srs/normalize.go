package srs

import (
	"math"
	"time"

	"github.com/vytor/lexiflash/internal/models"
)

// NewState is the memory state of an item that has never been reviewed.
func NewState(now time.Time) models.MemoryState {
	return models.MemoryState{
		NextReviewAt: now,
		IntervalDays: 0,
		EaseFactor:   DefaultEaseFactor,
		Streak:       0,
	}
}

// Normalize repairs a state loaded from a partially written record so that
// the scheduler invariants hold. Missing values take the defaults of a new item.
func Normalize(state models.MemoryState, now time.Time) models.MemoryState {
	if math.IsNaN(state.IntervalDays) || math.IsInf(state.IntervalDays, 0) || state.IntervalDays < 0 {
		state.IntervalDays = 0
	}
	state.IntervalDays = math.Min(state.IntervalDays, MaxIntervalDays)
	switch {
	case math.IsNaN(state.EaseFactor) || math.IsInf(state.EaseFactor, 0) || state.EaseFactor <= 0:
		state.EaseFactor = DefaultEaseFactor
	case state.EaseFactor < MinEaseFactor:
		state.EaseFactor = MinEaseFactor
	}
	if state.Streak < 0 {
		state.Streak = 0
	}
	if state.NextReviewAt.IsZero() {
		state.NextReviewAt = now
	}
	return state
}
