package srs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/srs"
)

func TestPreviewIntervals_NewItem(t *testing.T) {
	preview := srs.PreviewIntervals(srs.NewState(now))

	assert.Equal(t, srs.Preview{
		Again: "1 minute",
		Hard:  "6 minutes",
		Good:  "10 minutes",
		Easy:  "1 day",
	}, preview)
}

func TestPreviewIntervals_ReviewedItem(t *testing.T) {
	state := models.MemoryState{IntervalDays: 10, EaseFactor: 2.5, Streak: 3, NextReviewAt: now}

	preview := srs.PreviewIntervals(state)

	assert.Equal(t, "1 minute", preview.Again)
	assert.Equal(t, "12 days", preview.Hard)
	assert.Equal(t, "25 days", preview.Good)
	assert.Equal(t, "1.3 months", preview.Easy) // 37.5 days
}

func TestPreviewIntervals_DoesNotMutate(t *testing.T) {
	state := models.MemoryState{IntervalDays: 4, EaseFactor: 2.2, Streak: 2, NextReviewAt: now}
	before := state

	first := srs.PreviewIntervals(state)
	second := srs.PreviewIntervals(state)

	assert.Equal(t, before, state)
	assert.Equal(t, first, second)
}

func TestFormatDays(t *testing.T) {
	tests := []struct {
		days     float64
		expected string
	}{
		{days: 1, expected: "1 day"},
		{days: 1.2, expected: "1 day"},
		{days: 2.6, expected: "3 days"},
		{days: 29.4, expected: "29 days"},
		{days: 30, expected: "1 month"},
		{days: 45, expected: "1.5 months"},
		{days: 90, expected: "3 months"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, srs.FormatDays(tt.days))
		})
	}
}
