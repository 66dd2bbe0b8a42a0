package srs_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/srs"
)

func TestNormalize_MissingBlock(t *testing.T) {
	state := srs.Normalize(models.MemoryState{}, now)

	assert.Equal(t, srs.NewState(now), state)
	assert.True(t, state.IsDue(now))
}

func TestNormalize_RepairsCorruptValues(t *testing.T) {
	tests := []struct {
		name     string
		in       models.MemoryState
		interval float64
		ease     float64
		streak   int
	}{
		{name: "negative interval", in: models.MemoryState{IntervalDays: -3, EaseFactor: 2.1, Streak: 2}, interval: 0, ease: 2.1, streak: 2},
		{name: "nan interval", in: models.MemoryState{IntervalDays: math.NaN(), EaseFactor: 2.1}, interval: 0, ease: 2.1},
		{name: "ease below floor", in: models.MemoryState{IntervalDays: 4, EaseFactor: 0.9}, interval: 4, ease: 1.3},
		{name: "negative ease", in: models.MemoryState{IntervalDays: 4, EaseFactor: -1}, interval: 4, ease: 2.5},
		{name: "interval beyond cap", in: models.MemoryState{IntervalDays: 1e9, EaseFactor: 2.5}, interval: srs.MaxIntervalDays, ease: 2.5},
		{name: "negative streak", in: models.MemoryState{IntervalDays: 4, EaseFactor: 2.7, Streak: -2}, interval: 4, ease: 2.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := srs.Normalize(tt.in, now)
			assert.Equal(t, tt.interval, got.IntervalDays)
			assert.Equal(t, tt.ease, got.EaseFactor)
			assert.Equal(t, tt.streak, got.Streak)
		})
	}
}

func TestNormalize_KeepsValidState(t *testing.T) {
	state := models.MemoryState{IntervalDays: 7.5, EaseFactor: 2.2, Streak: 3, NextReviewAt: now.Add(48 * time.Hour)}

	assert.Equal(t, state, srs.Normalize(state, now))
}
