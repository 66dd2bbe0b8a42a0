package models

import "time"

const (
	ImportStatusPending   = "pending"
	ImportStatusRunning   = "running"
	ImportStatusCompleted = "completed"
	ImportStatusFailed    = "failed"
)

// VocabularyImport tracks one uploaded spreadsheet being turned into items.
type VocabularyImport struct {
	ID           int64      `json:"id"`
	ProfileID    int64      `json:"profile_id"`
	Filename     string     `json:"filename"`
	Status       string     `json:"status"`
	TotalRows    int        `json:"total_rows"`
	CreatedCount int        `json:"created_count"`
	SkippedCount int        `json:"skipped_count"`
	Error        string     `json:"error,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	FinishedAt   *time.Time `json:"finished_at"`
}
