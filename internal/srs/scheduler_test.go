package srs_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/srs"
)

var now = time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)

func TestGrade_GoodOnNewItem(t *testing.T) {
	state := models.MemoryState{IntervalDays: 0, EaseFactor: 2.5, Streak: 0, NextReviewAt: now}

	updated, err := srs.Grade(state, models.GradeGood, now)

	require.NoError(t, err)
	assert.Equal(t, 1, updated.Streak)
	assert.Equal(t, 1.0, updated.IntervalDays)
	assert.Equal(t, 2.5, updated.EaseFactor, "good should leave ease unchanged")
	assert.True(t, updated.NextReviewAt.Equal(now.Add(24*time.Hour)))
}

func TestGrade_EasyOnSecondReview(t *testing.T) {
	state := models.MemoryState{IntervalDays: 1, EaseFactor: 2.5, Streak: 1, NextReviewAt: now}

	updated, err := srs.Grade(state, models.GradeEasy, now)

	require.NoError(t, err)
	assert.Equal(t, 2, updated.Streak)
	assert.InDelta(t, 3.25, updated.IntervalDays, 1e-9)
	assert.InDelta(t, 2.65, updated.EaseFactor, 1e-9)
	assert.WithinDuration(t, now.Add(78*time.Hour), updated.NextReviewAt, time.Second)
}

func TestGrade_EasyOnNewItem(t *testing.T) {
	state := srs.NewState(now)

	updated, err := srs.Grade(state, models.GradeEasy, now)

	require.NoError(t, err)
	assert.Equal(t, 1, updated.Streak)
	assert.Equal(t, 4.0, updated.IntervalDays)
	assert.InDelta(t, 2.65, updated.EaseFactor, 1e-9)
}

func TestGrade_GoodMultipliesByEase(t *testing.T) {
	state := models.MemoryState{IntervalDays: 6, EaseFactor: 2.5, Streak: 3, NextReviewAt: now}

	updated, err := srs.Grade(state, models.GradeGood, now)

	require.NoError(t, err)
	assert.Equal(t, 4, updated.Streak)
	assert.InDelta(t, 15.0, updated.IntervalDays, 1e-9)
}

func TestGrade_Again(t *testing.T) {
	state := models.MemoryState{IntervalDays: 30, EaseFactor: 2.5, Streak: 7, NextReviewAt: now}

	updated, err := srs.Grade(state, models.GradeAgain, now)

	require.NoError(t, err)
	assert.Equal(t, 0, updated.Streak)
	assert.Equal(t, 0.0, updated.IntervalDays)
	assert.InDelta(t, 2.3, updated.EaseFactor, 1e-9)
	assert.True(t, updated.NextReviewAt.Equal(now.Add(time.Minute)), "again should relearn in one minute")
}

func TestGrade_Hard(t *testing.T) {
	tests := []struct {
		name     string
		interval float64
		expected float64
	}{
		{name: "grows existing interval", interval: 10, expected: 12},
		{name: "floors new item at half a day", interval: 0, expected: 0.5},
		{name: "floors tiny interval", interval: 0.2, expected: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := models.MemoryState{IntervalDays: tt.interval, EaseFactor: 2.5, Streak: 4, NextReviewAt: now}

			updated, err := srs.Grade(state, models.GradeHard, now)

			require.NoError(t, err)
			assert.Equal(t, 0, updated.Streak)
			assert.InDelta(t, tt.expected, updated.IntervalDays, 1e-9)
			assert.InDelta(t, 2.35, updated.EaseFactor, 1e-9)
		})
	}
}

func TestGrade_InvalidGrade(t *testing.T) {
	state := srs.NewState(now)

	updated, err := srs.Grade(state, models.Grade("perfect"), now)

	assert.ErrorIs(t, err, srs.ErrInvalidGrade)
	assert.Equal(t, state, updated)
}

func TestGrade_DoesNotMutateInput(t *testing.T) {
	state := models.MemoryState{IntervalDays: 3, EaseFactor: 2.1, Streak: 2, NextReviewAt: now}
	before := state

	_, err := srs.Grade(state, models.GradeEasy, now)

	require.NoError(t, err)
	assert.Equal(t, before, state)
}

func TestGrade_Invariants(t *testing.T) {
	states := []models.MemoryState{
		{IntervalDays: 0, EaseFactor: 1.3, Streak: 0},
		{IntervalDays: 0.5, EaseFactor: 1.35, Streak: 0},
		{IntervalDays: 12, EaseFactor: 1.4, Streak: 9},
		{IntervalDays: 200, EaseFactor: 3.8, Streak: 20},
	}

	for _, start := range states {
		for _, g := range models.Grades {
			state := start
			for i := 0; i < 40; i++ {
				var err error
				state, err = srs.Grade(state, g, now)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, state.EaseFactor, srs.MinEaseFactor)
				assert.GreaterOrEqual(t, state.IntervalDays, 0.0)
				assert.GreaterOrEqual(t, state.Streak, 0)
				assert.False(t, math.IsNaN(state.IntervalDays))
				assert.False(t, math.IsInf(state.IntervalDays, 0))
				assert.LessOrEqual(t, state.IntervalDays, srs.MaxIntervalDays)
				if g != models.GradeAgain {
					assert.False(t, state.NextReviewAt.Before(now))
				}
			}
			if g == models.GradeAgain {
				assert.Equal(t, 0.0, state.IntervalDays)
				assert.Equal(t, 0, state.Streak)
			}
		}
	}
}

func TestGrade_LongRunsStayInTheFuture(t *testing.T) {
	for _, g := range []models.Grade{models.GradeGood, models.GradeEasy, models.GradeHard} {
		t.Run(string(g), func(t *testing.T) {
			state := srs.NewState(now)
			for i := 0; i < 60; i++ {
				var err error
				state, err = srs.Grade(state, g, now)
				require.NoError(t, err)
				require.False(t, math.IsNaN(state.IntervalDays) || math.IsInf(state.IntervalDays, 0), "step %d", i)
				require.LessOrEqual(t, state.IntervalDays, srs.MaxIntervalDays, "step %d", i)
				require.True(t, state.NextReviewAt.After(now), "step %d: next review %v", i, state.NextReviewAt)
				require.False(t, state.IsDue(now), "step %d", i)
			}
		})
	}
}

func TestGrade_EasyStreakReachesCap(t *testing.T) {
	state := srs.NewState(now)
	for i := 0; i < 12; i++ {
		var err error
		state, err = srs.Grade(state, models.GradeEasy, now)
		require.NoError(t, err)
	}

	assert.Equal(t, srs.MaxIntervalDays, state.IntervalDays)
	assert.Equal(t, now.Add(time.Duration(srs.MaxIntervalDays)*24*time.Hour), state.NextReviewAt)
	assert.False(t, state.IsDue(now))
	assert.Empty(t, srs.DueQueue([]models.VocabularyItem{{ID: "a", Memory: state}}, now))
}

func TestGrade_MinEaseFactor(t *testing.T) {
	state := models.MemoryState{IntervalDays: 10, EaseFactor: 1.3, NextReviewAt: now}

	// Repeated failures should never push ease below the floor
	for i := 0; i < 10; i++ {
		var err error
		state, err = srs.Grade(state, models.GradeAgain, now)
		require.NoError(t, err)
		assert.Equal(t, srs.MinEaseFactor, state.EaseFactor)
	}
}

func TestParseGrade(t *testing.T) {
	g, err := srs.ParseGrade("good")
	require.NoError(t, err)
	assert.Equal(t, models.GradeGood, g)

	_, err = srs.ParseGrade("GOOD")
	assert.ErrorIs(t, err, srs.ErrInvalidGrade)
}

func TestParseMode(t *testing.T) {
	m, err := srs.ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, models.ModeAuto, m)

	m, err = srs.ParseMode("speaking")
	require.NoError(t, err)
	assert.Equal(t, models.ModeSpeaking, m)

	_, err = srs.ParseMode("karaoke")
	assert.ErrorIs(t, err, srs.ErrInvalidMode)
}
