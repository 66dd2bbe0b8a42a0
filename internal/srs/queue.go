package srs

import (
	"cmp"
	"slices"
	"time"

	"github.com/vytor/lexiflash/internal/models"
)

const (
	WeakEaseThreshold = 2.3
	WeakQueueLimit    = 10
)

// DueQueue returns the items due at now, most overdue first. Ties are broken
// by ID so the order is stable across calls.
func DueQueue(items []models.VocabularyItem, now time.Time) []models.VocabularyItem {
	due := make([]models.VocabularyItem, 0, len(items))
	for _, it := range items {
		if it.Memory.IsDue(now) {
			due = append(due, it)
		}
	}
	slices.SortFunc(due, func(a, b models.VocabularyItem) int {
		if c := a.Memory.NextReviewAt.Compare(b.Memory.NextReviewAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return due
}

// IsWeak reports whether a retained item has a below-threshold ease.
func IsWeak(state models.MemoryState) bool {
	return state.EaseFactor < WeakEaseThreshold && state.Streak > 0
}

// WeakQueue returns up to WeakQueueLimit weak items, weakest first.
func WeakQueue(items []models.VocabularyItem) []models.VocabularyItem {
	weak := make([]models.VocabularyItem, 0)
	for _, it := range items {
		if IsWeak(it.Memory) {
			weak = append(weak, it)
		}
	}
	slices.SortFunc(weak, func(a, b models.VocabularyItem) int {
		if c := cmp.Compare(a.Memory.EaseFactor, b.Memory.EaseFactor); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if len(weak) > WeakQueueLimit {
		weak = weak[:WeakQueueLimit]
	}
	return weak
}

// NextItem returns the item to present next: the head of the due queue, or
// the head of the weak queue when nothing is due. fromDue reports which queue
// it came from.
func NextItem(due, weak []models.VocabularyItem) (item models.VocabularyItem, fromDue, ok bool) {
	if len(due) > 0 {
		return due[0], true, true
	}
	if len(weak) > 0 {
		return weak[0], false, true
	}
	return models.VocabularyItem{}, false, false
}
