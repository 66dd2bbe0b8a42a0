package models

import "time"

type SessionResult struct {
	ItemID    string `json:"item_id"`
	Term      string `json:"term"`
	IsCorrect bool   `json:"is_correct"`
	Grade     Grade  `json:"grade"`
}

// SessionState is the in-memory record of one study session.
type SessionState struct {
	InitialQueueSize int             `json:"initial_queue_size"`
	CompletedCount   int             `json:"completed_count"`
	Results          []SessionResult `json:"results"`
	StartedAt        time.Time       `json:"started_at"`
}

type SessionSummary struct {
	Total           int           `json:"total"`
	Correct         int           `json:"correct"`
	Incorrect       int           `json:"incorrect"`
	AccuracyPercent float64       `json:"accuracy_percent"`
	ByGrade         map[Grade]int `json:"by_grade"`
	Duration        time.Duration `json:"duration"`
}
