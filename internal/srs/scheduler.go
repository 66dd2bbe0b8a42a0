// Package srs implements the spaced-repetition core: grading, queue
// selection and interaction mode choice for vocabulary items.
package srs

import (
	"errors"
	"math"
	"time"

	"github.com/vytor/lexiflash/internal/models"
)

const (
	MinEaseFactor     = 1.3
	DefaultEaseFactor = 2.5

	// RelearnDelay is how long an item graded "again" waits before it is due.
	RelearnDelay = time.Minute

	// MaxIntervalDays caps the review interval at one hundred years.
	MaxIntervalDays = 36500.0

	minHardInterval = 0.5
	day             = 24 * time.Hour
)

var (
	ErrInvalidGrade = errors.New("invalid grade")
	ErrInvalidMode  = errors.New("invalid study mode")
)

// ParseGrade converts user input into a Grade.
func ParseGrade(s string) (models.Grade, error) {
	g := models.Grade(s)
	if !g.Valid() {
		return "", ErrInvalidGrade
	}
	return g, nil
}

// ParseMode converts user input into a StudyMode. The empty string means auto.
func ParseMode(s string) (models.StudyMode, error) {
	if s == "" {
		return models.ModeAuto, nil
	}
	m := models.StudyMode(s)
	if !m.Valid() {
		return "", ErrInvalidMode
	}
	return m, nil
}

// Grade applies an SM-2 variant to state and returns the new state.
// The input is never modified.
func Grade(state models.MemoryState, grade models.Grade, now time.Time) (models.MemoryState, error) {
	next := state

	switch grade {
	case models.GradeAgain:
		next.Streak = 0
		next.IntervalDays = 0
		next.EaseFactor = math.Max(MinEaseFactor, state.EaseFactor-0.2)
		next.NextReviewAt = now.Add(RelearnDelay)
		return next, nil
	case models.GradeHard:
		next.Streak = 0
		next.IntervalDays = math.Max(minHardInterval, state.IntervalDays*1.2)
		next.EaseFactor = math.Max(MinEaseFactor, state.EaseFactor-0.15)
	case models.GradeGood:
		next.Streak = state.Streak + 1
		if next.Streak == 1 {
			next.IntervalDays = 1
		} else {
			next.IntervalDays = state.IntervalDays * state.EaseFactor
		}
	case models.GradeEasy:
		next.Streak = state.Streak + 1
		if next.Streak == 1 {
			next.IntervalDays = 4
		} else {
			next.IntervalDays = state.IntervalDays * state.EaseFactor * 1.3
		}
		next.EaseFactor = state.EaseFactor + 0.15
	default:
		return state, ErrInvalidGrade
	}

	next.IntervalDays = math.Min(next.IntervalDays, MaxIntervalDays)
	next.NextReviewAt = now.Add(daysToDuration(next.IntervalDays))
	return next, nil
}

// daysToDuration saturates instead of wrapping around on overflow.
func daysToDuration(days float64) time.Duration {
	maxDays := float64(math.MaxInt64) / float64(day)
	if math.IsNaN(days) || days <= 0 {
		return 0
	}
	if days >= maxDays {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(days * float64(day))
}
