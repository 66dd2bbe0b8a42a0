// Package session tracks progress through a single study session. A Ledger
// lives in memory only and is dropped when the session ends.
package session

import (
	"time"

	"github.com/vytor/lexiflash/internal/models"
)

type Ledger struct {
	state    models.SessionState
	reviewed map[string]struct{}
}

// Start begins a session. The two queues are alternatives (weak items only
// surface when nothing is due) so the denominator is the larger of the two.
func Start(dueCount, weakCount int, now time.Time) *Ledger {
	return &Ledger{
		state: models.SessionState{
			InitialQueueSize: max(dueCount, weakCount, 0),
			Results:          []models.SessionResult{},
			StartedAt:        now,
		},
		reviewed: make(map[string]struct{}),
	}
}

// Record appends a graded item.
func (l *Ledger) Record(itemID, term string, grade models.Grade) {
	l.state.Results = append(l.state.Results, models.SessionResult{
		ItemID:    itemID,
		Term:      term,
		IsCorrect: grade != models.GradeAgain,
		Grade:     grade,
	})
	l.state.CompletedCount++
	l.reviewed[itemID] = struct{}{}
}

// Reviewed reports whether itemID has been graded in this session.
func (l *Ledger) Reviewed(itemID string) bool {
	_, ok := l.reviewed[itemID]
	return ok
}

// ProgressPercent is capped at 100; items that become due mid-session are not
// part of the denominator.
func (l *Ledger) ProgressPercent() float64 {
	if l.state.InitialQueueSize == 0 {
		return 0
	}
	pct := float64(l.state.CompletedCount) / float64(l.state.InitialQueueSize) * 100
	return min(100, pct)
}

// IsComplete is driven by the live queues, not by the counter.
func (l *Ledger) IsComplete(dueCount, weakCount int) bool {
	return dueCount == 0 && weakCount == 0
}

// State returns a copy of the session state.
func (l *Ledger) State() models.SessionState {
	st := l.state
	st.Results = append([]models.SessionResult(nil), l.state.Results...)
	return st
}

func (l *Ledger) Summary(now time.Time) models.SessionSummary {
	sum := models.SessionSummary{
		Total:    len(l.state.Results),
		ByGrade:  make(map[models.Grade]int, len(models.Grades)),
		Duration: now.Sub(l.state.StartedAt),
	}
	for _, g := range models.Grades {
		sum.ByGrade[g] = 0
	}
	for _, r := range l.state.Results {
		sum.ByGrade[r.Grade]++
		if r.IsCorrect {
			sum.Correct++
		} else {
			sum.Incorrect++
		}
	}
	if sum.Total > 0 {
		sum.AccuracyPercent = float64(sum.Correct) / float64(sum.Total) * 100
	}
	return sum
}
